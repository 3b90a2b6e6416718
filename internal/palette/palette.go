// Package palette loads named color palettes from paletas.json and resolves
// color strings (Spanish vocabulary or hex) into renderable values.
package palette

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
)

// Palette assigns colors to the semantic roles of the map. JSON field names
// are the on-disk registry format and must not change.
type Palette struct {
	Name         string  `json:"nombre"`
	FigureBG     string  `json:"fondo_figura"`
	MapBG        string  `json:"fondo_mapa"`
	LandFill     string  `json:"relleno_tierra"`
	Outline      string  `json:"contorno"`
	StateDivider string  `json:"division_estados"`
	LabelText    string  `json:"texto_etiquetas"`
	LabelStroke  string  `json:"texto_stroke"`
	Title        string  `json:"titulo"`
	Subtitle     string  `json:"subtitulo"`
	AxisText     string  `json:"ejes_texto"`
	AxisTicks    string  `json:"ejes_ticks"`
	AxisBorder   string  `json:"ejes_bordes"`
	Grid         string  `json:"cuadricula"`
	GridAlpha    float64 `json:"cuadricula_alpha"`
	InfoText     string  `json:"texto_info"`
	NorthArrow   string  `json:"indicador_norte"`
}

type registryFile struct {
	Palettes []Palette `json:"paletas"`
}

// Default returns the built-in fallback palette (classic, white background).
func Default() Palette {
	return Palette{
		Name:         "Clásico (fondo blanco)",
		FigureBG:     "#ffffff",
		MapBG:        "#ffffff",
		LandFill:     "#f5e6ca",
		Outline:      "#1a3c6e",
		StateDivider: "#cc3333",
		LabelText:    "#1a1a1a",
		LabelStroke:  "#ffffff",
		Title:        "#1a3c6e",
		Subtitle:     "#666666",
		AxisText:     "#333333",
		AxisTicks:    "#444444",
		AxisBorder:   "#cccccc",
		Grid:         "#cccccc",
		GridAlpha:    0.3,
		InfoText:     "#777777",
		NorthArrow:   "#1a3c6e",
	}
}

// Load reads the palette registry. A missing or empty registry is not an
// error: the caller gets the default palette alone.
func Load(path string) ([]Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Palette{Default()}, nil
		}
		return nil, fmt.Errorf("palettes: %w", err)
	}
	var reg registryFile
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("palettes %s: %w", path, err)
	}
	if len(reg.Palettes) == 0 {
		return []Palette{Default()}, nil
	}
	return reg.Palettes, nil
}

// Resolve finds a palette by name. Unknown names and palettes missing
// required roles fall back to the default rather than failing the run.
func Resolve(palettes []Palette, name string) (Palette, bool) {
	for _, p := range palettes {
		if p.Name == name {
			if !p.complete() {
				return Default(), false
			}
			return p, true
		}
	}
	return Default(), false
}

// complete reports whether every required role has a value. GridAlpha may be
// zero; missing color strings disqualify the palette.
func (p Palette) complete() bool {
	required := []string{
		p.FigureBG, p.MapBG, p.LandFill, p.Outline, p.StateDivider,
		p.LabelText, p.LabelStroke, p.Title, p.Subtitle,
		p.AxisText, p.AxisTicks, p.AxisBorder, p.Grid, p.InfoText, p.NorthArrow,
	}
	for _, r := range required {
		if r == "" {
			return false
		}
	}
	return true
}

// Colors resolves every role to RGBA. A palette that passed complete() can
// still carry a malformed color string; that is a configuration error.
func (p Palette) Colors() (Colors, error) {
	var c Colors
	var err error
	resolve := func(dst *color.RGBA, role, s string) {
		if err != nil {
			return
		}
		var v color.RGBA
		if v, err = ResolveColor(s); err != nil {
			err = fmt.Errorf("palette %q role %s: %w", p.Name, role, err)
			return
		}
		*dst = v
	}
	resolve(&c.FigureBG, "fondo_figura", p.FigureBG)
	resolve(&c.MapBG, "fondo_mapa", p.MapBG)
	resolve(&c.LandFill, "relleno_tierra", p.LandFill)
	resolve(&c.Outline, "contorno", p.Outline)
	resolve(&c.StateDivider, "division_estados", p.StateDivider)
	resolve(&c.LabelText, "texto_etiquetas", p.LabelText)
	resolve(&c.LabelStroke, "texto_stroke", p.LabelStroke)
	resolve(&c.Title, "titulo", p.Title)
	resolve(&c.Subtitle, "subtitulo", p.Subtitle)
	resolve(&c.AxisText, "ejes_texto", p.AxisText)
	resolve(&c.AxisTicks, "ejes_ticks", p.AxisTicks)
	resolve(&c.AxisBorder, "ejes_bordes", p.AxisBorder)
	resolve(&c.Grid, "cuadricula", p.Grid)
	resolve(&c.InfoText, "texto_info", p.InfoText)
	resolve(&c.NorthArrow, "indicador_norte", p.NorthArrow)
	if err != nil {
		return Colors{}, err
	}
	c.GridAlpha = p.GridAlpha
	if c.GridAlpha <= 0 || c.GridAlpha > 1 {
		c.GridAlpha = 0.3
	}
	return c, nil
}

// Colors is a fully resolved palette ready for the renderer.
type Colors struct {
	FigureBG     color.RGBA
	MapBG        color.RGBA
	LandFill     color.RGBA
	Outline      color.RGBA
	StateDivider color.RGBA
	LabelText    color.RGBA
	LabelStroke  color.RGBA
	Title        color.RGBA
	Subtitle     color.RGBA
	AxisText     color.RGBA
	AxisTicks    color.RGBA
	AxisBorder   color.RGBA
	Grid         color.RGBA
	GridAlpha    float64
	InfoText     color.RGBA
	NorthArrow   color.RGBA
}
