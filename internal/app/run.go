// Package app wires the pipeline: acquire datasets, filter the region, load
// zone overlays and render the map.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"dibuja/internal/config"
	"dibuja/internal/geo"
	"dibuja/internal/natearth"
	"dibuja/internal/palette"
	"dibuja/internal/region"
	"dibuja/internal/render"
	"dibuja/internal/zones"
)

// Selection is everything the wizard (or -defaults) decided before the run.
type Selection struct {
	Datasets   []string // catalog ids, states always present
	Palette    palette.Palette
	ZoneLayers []zones.LayerRef
	Viewport   geo.Viewport
}

// DefaultSelection is the no-prompt run: base layer only, first palette,
// no zones, Baja viewport.
func DefaultSelection(palettes []palette.Palette) Selection {
	p := palette.Default()
	if len(palettes) > 0 {
		p = palettes[0]
	}
	return Selection{
		Datasets: []string{natearth.States},
		Palette:  p,
		Viewport: geo.DefaultViewport(),
	}
}

// Run executes the full pipeline and returns the output path.
func Run(ctx context.Context, cfg config.Config, log *zap.Logger, sel Selection) (string, error) {
	v := sel.Viewport.Normalize()
	if !v.Valid() {
		return "", fmt.Errorf("app: degenerate viewport")
	}
	fetcher := natearth.NewFetcher(cfg.DataDir, cfg.MirrorURL, log)

	var layers render.Layers
	for _, id := range sel.Datasets {
		ds, ok := natearth.Lookup(id)
		if !ok {
			return "", fmt.Errorf("app: unknown dataset %q", id)
		}
		shpPath, err := fetcher.Ensure(ctx, ds)
		if err != nil {
			return "", err
		}
		features, err := natearth.LoadShapefile(shpPath)
		if err != nil {
			return "", err
		}
		log.Info("dataset loaded", zap.String("dataset", id), zap.Int("records", len(features)))

		switch id {
		case natearth.States:
			states, err := region.Peninsula(features)
			if err != nil {
				return "", err
			}
			names := make([]string, 0, len(states))
			for _, s := range states {
				names = append(names, s.Attr("name"))
			}
			log.Info("states filtered", zap.Strings("names", names))
			layers.States = states
		case natearth.Places:
			layers.Places = region.ClipPoints(features, v)
			log.Info("places clipped", zap.Int("count", len(layers.Places)))
		case natearth.Countries:
			layers.Countries = region.Countries(features, v)
			log.Info("countries selected", zap.Int("count", len(layers.Countries)))
		case natearth.Roads:
			layers.Roads = region.ClipBound(features, v)
			log.Info("roads clipped", zap.Int("count", len(layers.Roads)))
		}
	}

	boundary, err := region.Union(layers.States)
	if err != nil {
		return "", err
	}
	layers.Boundary = boundary

	var visible []zones.Zone
	if len(sel.ZoneLayers) > 0 {
		all, err := zones.LoadLayers(cfg.DataDir, sel.ZoneLayers)
		if err != nil {
			return "", err
		}
		visible = zones.Visible(all, v)
		if hidden := len(all) - len(visible); hidden > 0 {
			log.Info("zones outside the visible area", zap.Int("hidden", hidden))
		}
		log.Info("zones loaded", zap.Int("total", len(all)), zap.Int("visible", len(visible)))
	}

	if err := render.WriteMap(cfg.Output, layers, sel.Palette, visible, v); err != nil {
		return "", err
	}
	log.Info("map written",
		zap.String("output", cfg.Output),
		zap.Int("dpi", render.DefaultDPI),
		zap.String("palette", sel.Palette.Name))
	return cfg.Output, nil
}
