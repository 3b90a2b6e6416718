package palette

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// spanishColors maps the fixed Spanish color vocabulary to hex codes.
// Zone files may use either these names or #RRGGBB directly.
var spanishColors = map[string]string{
	"rojo":     "#e63946",
	"azul":     "#1d3557",
	"verde":    "#2a9d8f",
	"amarillo": "#f4a261",
	"naranja":  "#e76f51",
	"morado":   "#6a0dad",
	"rosa":     "#ff69b4",
	"negro":    "#000000",
	"blanco":   "#ffffff",
	"gris":     "#888888",
	"cafe":     "#8b4513",
	"cyan":     "#00bcd4",
	"magenta":  "#e91e63",
	"turquesa": "#40e0d0",
	"dorado":   "#ffd700",
	"plateado": "#c0c0c0",
}

// ResolveColor turns a Spanish color name or a #RRGGBB code into an RGBA value.
// Anything else is a configuration error.
func ResolveColor(s string) (color.RGBA, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return color.RGBA{}, fmt.Errorf("color: empty value")
	}
	if hex, ok := spanishColors[name]; ok {
		name = hex
	}
	if !strings.HasPrefix(name, "#") {
		return color.RGBA{}, fmt.Errorf("color %q: not in vocabulary and not a #RRGGBB code", s)
	}
	return parseHex(name)
}

func parseHex(s string) (color.RGBA, error) {
	if len(s) != 7 {
		return color.RGBA{}, fmt.Errorf("color %q: want #RRGGBB", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: want #RRGGBB", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// ContrastText picks white or black text for readability on the given fill,
// using relative luminance.
func ContrastText(c color.RGBA) color.RGBA {
	brightness := (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
	if brightness < 0.5 {
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return color.RGBA{A: 0xff}
}
