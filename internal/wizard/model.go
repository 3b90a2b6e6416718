// Package wizard gathers the run configuration interactively before the
// pipeline starts: datasets, palette, zone layers and viewport bounds.
package wizard

import (
	"fmt"
	"os"
	"path/filepath"

	list "github.com/charmbracelet/bubbles/list"
	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"dibuja/internal/app"
	"dibuja/internal/geo"
	"dibuja/internal/natearth"
	"dibuja/internal/palette"
	"dibuja/internal/zones"
)

type step int

const (
	stepDatasets step = iota
	stepPalette
	stepLayers
	stepViewport
	stepDone
)

type datasetOption struct {
	ds       natearth.Dataset
	selected bool
	fixed    bool // the base layer cannot be toggled off
}

type layerOption struct {
	ref      zones.LayerRef
	exists   bool
	selected bool
}

type paletteItem struct {
	p palette.Palette
}

func (i paletteItem) Title() string { return i.p.Name }
func (i paletteItem) Description() string {
	return fmt.Sprintf("fondo %s  contorno %s  relleno %s", i.p.FigureBG, i.p.Outline, i.p.LandFill)
}
func (i paletteItem) FilterValue() string { return i.p.Name }

type Model struct {
	width  int
	height int

	step   step
	status string

	datasets []datasetOption
	cursor   int

	palettes []palette.Palette
	l        list.Model
	chosen   palette.Palette

	layers      []layerOption
	layerCursor int

	inputs []textinput.Model
	focus  int

	viewport geo.Viewport
	aborted  bool
}

func New(palettes []palette.Palette, refs []zones.LayerRef, dataDir string) Model {
	m := Model{
		step:     stepDatasets,
		palettes: palettes,
		status:   "dibuja ready",
		chosen:   palette.Default(),
		viewport: geo.DefaultViewport(),
	}
	for _, ds := range natearth.Catalog {
		m.datasets = append(m.datasets, datasetOption{
			ds:       ds,
			selected: ds.ID == natearth.States,
			fixed:    ds.ID == natearth.States,
		})
	}
	for _, ref := range refs {
		_, err := os.Stat(filepath.Join(dataDir, ref.File))
		m.layers = append(m.layers, layerOption{ref: ref, exists: err == nil})
	}
	// palette list setup
	items := make([]list.Item, 0, len(palettes))
	for _, p := range palettes {
		items = append(items, paletteItem{p: p})
	}
	d := list.NewDefaultDelegate()
	m.l = list.New(items, d, 0, 0)
	m.l.Title = "Paletas de colores"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// viewport inputs
	defaults := []struct {
		prompt string
		value  float64
	}{
		{"Latitud mínima", geo.DefaultMinLat},
		{"Latitud máxima", geo.DefaultMaxLat},
		{"Longitud mínima", geo.DefaultMinLon},
		{"Longitud máxima", geo.DefaultMaxLon},
	}
	for _, dflt := range defaults {
		ti := textinput.New()
		ti.Prompt = fmt.Sprintf("%-16s [%v]: ", dflt.prompt, dflt.value)
		ti.CharLimit = 12
		ti.SetValue("")
		m.inputs = append(m.inputs, ti)
	}
	m.inputs[0].Focus()
	return m
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

// Selection returns the gathered choices; ok is false when the user aborted
// before finishing.
func (m Model) Selection() (app.Selection, bool) {
	if m.aborted || m.step != stepDone {
		return app.Selection{}, false
	}
	sel := app.Selection{
		Palette:  m.chosen,
		Viewport: m.viewport,
	}
	for _, o := range m.datasets {
		if o.selected {
			sel.Datasets = append(sel.Datasets, o.ds.ID)
		}
	}
	for _, o := range m.layers {
		if o.selected {
			sel.ZoneLayers = append(sel.ZoneLayers, o.ref)
		}
	}
	return sel, true
}
