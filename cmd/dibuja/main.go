package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"dibuja/internal/app"
	"dibuja/internal/config"
	"dibuja/internal/logging"
	"dibuja/internal/palette"
	"dibuja/internal/wizard"
	"dibuja/internal/zones"
)

func main() {
	defaults := flag.Bool("defaults", false, "skip the prompts and render with defaults")
	out := flag.String("out", "", "output PNG path (overrides DIBUJA_OUTPUT)")
	palName := flag.String("paleta", "", "palette name from paletas.json (overrides the wizard choice)")
	flag.Parse()

	cfg := config.Load()
	if *out != "" {
		cfg.Output = *out
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	palettes, err := palette.Load(filepath.Join(cfg.DataDir, "paletas.json"))
	if err != nil {
		log.Fatal("palette registry", zap.Error(err))
	}
	refs, err := zones.LoadRegistry(filepath.Join(cfg.DataDir, "capas_zonas.json"))
	if err != nil {
		log.Fatal("zone layer registry", zap.Error(err))
	}

	sel := app.DefaultSelection(palettes)
	if !*defaults {
		m := wizard.New(palettes, refs, cfg.DataDir)
		final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
		if err != nil {
			log.Fatal("wizard", zap.Error(err))
		}
		var ok bool
		sel, ok = final.(wizard.Model).Selection()
		if !ok {
			log.Info("cancelled")
			return
		}
	}
	if *palName != "" {
		p, ok := palette.Resolve(palettes, *palName)
		if !ok {
			log.Warn("palette not usable, falling back to default", zap.String("name", *palName))
		}
		sel.Palette = p
	}

	path, err := app.Run(context.Background(), cfg, log, sel)
	if err != nil {
		log.Fatal("run", zap.Error(err))
	}
	fmt.Println(path)
}
