package palette

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveColorVocabulary(t *testing.T) {
	c, err := ResolveColor("rojo")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0xe6, G: 0x39, B: 0x46, A: 0xff}, c)

	c, err = ResolveColor("  Verde ")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x2a, G: 0x9d, B: 0x8f, A: 0xff}, c)
}

func TestResolveColorHex(t *testing.T) {
	c, err := ResolveColor("#1A3C6E")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x1a, G: 0x3c, B: 0x6e, A: 0xff}, c)
}

func TestResolveColorRejectsBadInput(t *testing.T) {
	for _, s := range []string{"", "carmesí", "#fff", "#12345g", "1a3c6e", "#1a3c6e00"} {
		_, err := ResolveColor(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestContrastText(t *testing.T) {
	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	black := color.RGBA{A: 0xff}

	assert.Equal(t, white, ContrastText(color.RGBA{R: 0x1d, G: 0x35, B: 0x57, A: 0xff})) // azul
	assert.Equal(t, black, ContrastText(color.RGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff})) // dorado
	assert.Equal(t, black, ContrastText(white))
	assert.Equal(t, white, ContrastText(black))
}

func TestLoadMissingRegistryYieldsDefault(t *testing.T) {
	ps, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, Default().Name, ps[0].Name)
}

func TestLoadEmptyRegistryYieldsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paletas.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"paletas":[]}`), 0o644))
	ps, err := Load(path)
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, Default().Name, ps[0].Name)
}

func TestLoadRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paletas.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"paletas":[{"nombre":"Una","fondo_figura":"#ffffff"}]}`), 0o644))
	ps, err := Load(path)
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, "Una", ps[0].Name)
	assert.Equal(t, "#ffffff", ps[0].FigureBG)
}

func TestResolveFallsBackToDefault(t *testing.T) {
	full := Default()
	full.Name = "Completa"
	incomplete := Palette{Name: "Rota", FigureBG: "#ffffff"}
	palettes := []Palette{full, incomplete}

	p, ok := Resolve(palettes, "Completa")
	assert.True(t, ok)
	assert.Equal(t, "Completa", p.Name)

	p, ok = Resolve(palettes, "Rota")
	assert.False(t, ok)
	assert.Equal(t, Default().Name, p.Name)

	p, ok = Resolve(palettes, "No existe")
	assert.False(t, ok)
	assert.Equal(t, Default().Name, p.Name)
}

func TestColorsResolvesEveryRole(t *testing.T) {
	c, err := Default().Colors()
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0xf5, G: 0xe6, B: 0xca, A: 0xff}, c.LandFill)
	assert.Equal(t, 0.3, c.GridAlpha)
}

func TestColorsRejectsMalformedRole(t *testing.T) {
	p := Default()
	p.LandFill = "verdeazul"
	_, err := p.Colors()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "relleno_tierra")
}

func TestColorsClampsGridAlpha(t *testing.T) {
	p := Default()
	p.GridAlpha = 4.2
	c, err := p.Colors()
	require.NoError(t, err)
	assert.Equal(t, 0.3, c.GridAlpha)
}
