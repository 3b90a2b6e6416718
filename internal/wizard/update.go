package wizard

import (
	"fmt"
	"strconv"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"dibuja/internal/geo"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.l.SetSize(min(60, m.width-4), m.height-8)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.aborted = true
			return m, tea.Quit
		}
		switch m.step {
		case stepDatasets:
			return m.updateDatasets(msg)
		case stepPalette:
			return m.updatePalette(msg)
		case stepLayers:
			return m.updateLayers(msg)
		case stepViewport:
			return m.updateViewport(msg)
		}
	}
	return m, nil
}

func (m Model) updateDatasets(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.aborted = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.datasets)-1 {
			m.cursor++
		}
	case " ":
		o := &m.datasets[m.cursor]
		if o.fixed {
			m.status = "el dataset base siempre se incluye"
			return m, nil
		}
		o.selected = !o.selected
		m.status = fmt.Sprintf("%s: %v", o.ds.ID, o.selected)
	case "enter":
		m.step = stepPalette
		m.status = "elige una paleta"
	}
	return m, nil
}

func (m Model) updatePalette(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.l.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	switch msg.String() {
	case "q", "esc":
		m.aborted = true
		return m, tea.Quit
	case "enter":
		if it, ok := m.l.SelectedItem().(paletteItem); ok {
			m.chosen = it.p
		}
		if len(m.layers) == 0 {
			m.step = stepViewport
		} else {
			m.step = stepLayers
		}
		m.status = "paleta: " + m.chosen.Name
		return m, nil
	}
	var cmd tea.Cmd
	m.l, cmd = m.l.Update(msg)
	return m, cmd
}

func (m Model) updateLayers(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.aborted = true
		return m, tea.Quit
	case "up", "k":
		if m.layerCursor > 0 {
			m.layerCursor--
		}
	case "down", "j":
		if m.layerCursor < len(m.layers)-1 {
			m.layerCursor++
		}
	case " ":
		o := &m.layers[m.layerCursor]
		if !o.exists {
			m.status = "archivo no encontrado: " + o.ref.File
			return m, nil
		}
		o.selected = !o.selected
		m.status = fmt.Sprintf("%s: %v", o.ref.File, o.selected)
	case "enter":
		m.step = stepViewport
		m.status = "área del mapa (ENTER = valor por defecto)"
	}
	return m, nil
}

func (m Model) updateViewport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.aborted = true
		return m, tea.Quit
	case "enter", "tab", "down":
		if msg.String() == "enter" && m.focus == len(m.inputs)-1 {
			v, err := m.parseViewport()
			if err != nil {
				m.status = err.Error()
				return m, nil
			}
			m.viewport = v.Normalize()
			m.step = stepDone
			return m, tea.Quit
		}
		m.inputs[m.focus].Blur()
		m.focus = (m.focus + 1) % len(m.inputs)
		return m, m.inputs[m.focus].Focus()
	case "shift+tab", "up":
		m.inputs[m.focus].Blur()
		m.focus = (m.focus + len(m.inputs) - 1) % len(m.inputs)
		return m, m.inputs[m.focus].Focus()
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// parseViewport reads the four inputs; empty fields keep the defaults.
func (m Model) parseViewport() (geo.Viewport, error) {
	vals := []float64{geo.DefaultMinLat, geo.DefaultMaxLat, geo.DefaultMinLon, geo.DefaultMaxLon}
	for i, ti := range m.inputs {
		s := strings.TrimSpace(ti.Value())
		if s == "" {
			continue
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return geo.Viewport{}, fmt.Errorf("valor inválido %q", s)
		}
		vals[i] = f
	}
	v := geo.Viewport{MinLat: vals[0], MaxLat: vals[1], MinLon: vals[2], MaxLon: vals[3]}
	if !v.Normalize().Valid() {
		return geo.Viewport{}, fmt.Errorf("área degenerada")
	}
	return v, nil
}
