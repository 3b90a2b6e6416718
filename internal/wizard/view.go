package wizard

import (
	"fmt"
	"strings"
)

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("dibuja — mapa de Baja California"))
	b.WriteString("\n\n")

	switch m.step {
	case stepDatasets:
		b.WriteString("Capas de Natural Earth\n\n")
		for i, o := range m.datasets {
			b.WriteString(m.checkRow(i == m.cursor, o.selected, o.ds.Name, o.fixed))
		}
		b.WriteString(dimStyle.Render("\nespacio: marcar  enter: continuar  q: salir"))
	case stepPalette:
		b.WriteString(m.l.View())
		b.WriteString(dimStyle.Render("\nenter: elegir  /: filtrar  q: salir"))
	case stepLayers:
		b.WriteString("Capas de zonas\n\n")
		for i, o := range m.layers {
			label := o.ref.File
			if o.ref.Description != "" {
				label = fmt.Sprintf("%s — %s", o.ref.File, o.ref.Description)
			}
			if !o.exists {
				label += warnStyle.Render("  (no encontrado)")
			}
			b.WriteString(m.checkRow(i == m.layerCursor, o.selected, label, false))
		}
		b.WriteString(dimStyle.Render("\nespacio: marcar  enter: continuar  q: salir"))
	case stepViewport:
		b.WriteString("Área del mapa (grados, ENTER en blanco = valor por defecto)\n\n")
		for _, ti := range m.inputs {
			b.WriteString(ti.View())
			b.WriteString("\n")
		}
		b.WriteString(dimStyle.Render("\ntab: siguiente campo  enter: generar  esc: salir"))
	case stepDone:
		b.WriteString("Generando mapa...")
	}

	if m.status != "" {
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render(m.status))
	}
	return appStyle.Render(b.String())
}

func (m Model) checkRow(active, selected bool, label string, fixed bool) string {
	mark := "○"
	if selected {
		mark = "●"
	}
	if fixed {
		mark = "●"
		label += dimStyle.Render("  (siempre)")
	}
	cursor := "  "
	if active {
		cursor = cursorStyle.Render("> ")
	}
	return fmt.Sprintf("%s%s %s\n", cursor, mark, label)
}
