package zones

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dibuja/internal/geo"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadRegistryMissingIsEmpty(t *testing.T) {
	refs, err := LoadRegistry(filepath.Join(t.TempDir(), "capas_zonas.json"))
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestLoadRegistry(t *testing.T) {
	path := writeFile(t, t.TempDir(), "capas_zonas.json",
		`{"archivos":[{"archivo":"zonas_pesca.json","descripcion":"Pesca"}]}`)
	refs, err := LoadRegistry(path)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "zonas_pesca.json", refs[0].File)
	assert.Equal(t, "Pesca", refs[0].Description)
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "zonas.json", `{
		"nombre": "Pesca",
		"zonas": [
			{"id":1,"nombre":"Bahía Almejas","latitud":24.47,"longitud":-111.8,"figura":"circulo","color":"rojo"},
			{"id":2,"nombre":"Loreto","latitud":26.01,"longitud":-111.35,"figura":"cuadrado","color":"#40e0d0"}
		]
	}`)
	zs, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, zs, 2)
	assert.Equal(t, "Bahía Almejas", zs[0].Name)
	assert.Equal(t, "Pesca", zs[0].Layer)
	assert.Equal(t, FigureSquare, zs[1].Figure)
}

func TestLoadFileLayerDefaultsToFilename(t *testing.T) {
	path := writeFile(t, t.TempDir(), "zonas_x.json",
		`{"zonas":[{"id":1,"nombre":"A","latitud":24,"longitud":-111,"figura":"circulo","color":"rojo"}]}`)
	zs, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "zonas_x.json", zs[0].Layer)
}

func TestLoadFileValidation(t *testing.T) {
	cases := map[string]string{
		"bad latitude":  `{"zonas":[{"id":1,"nombre":"A","latitud":95,"longitud":-111,"figura":"circulo","color":"rojo"}]}`,
		"bad longitude": `{"zonas":[{"id":1,"nombre":"A","latitud":24,"longitud":-200,"figura":"circulo","color":"rojo"}]}`,
		"bad figure":    `{"zonas":[{"id":1,"nombre":"A","latitud":24,"longitud":-111,"figura":"estrella","color":"rojo"}]}`,
		"bad color":     `{"zonas":[{"id":1,"nombre":"A","latitud":24,"longitud":-111,"figura":"circulo","color":"carmesí"}]}`,
		"duplicate id": `{"zonas":[
			{"id":1,"nombre":"A","latitud":24,"longitud":-111,"figura":"circulo","color":"rojo"},
			{"id":1,"nombre":"B","latitud":25,"longitud":-112,"figura":"rombo","color":"azul"}]}`,
	}
	dir := t.TempDir()
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, dir, "zonas.json", body)
			_, err := LoadFile(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadLayersConcatenatesInOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json",
		`{"nombre":"A","zonas":[{"id":1,"nombre":"Uno","latitud":24,"longitud":-111,"figura":"circulo","color":"rojo"}]}`)
	writeFile(t, dir, "b.json",
		`{"nombre":"B","zonas":[{"id":2,"nombre":"Dos","latitud":25,"longitud":-112,"figura":"rombo","color":"azul"}]}`)
	zs, err := LoadLayers(dir, []LayerRef{{File: "a.json"}, {File: "b.json"}})
	require.NoError(t, err)
	require.Len(t, zs, 2)
	assert.Equal(t, []string{"Uno", "Dos"}, []string{zs[0].Name, zs[1].Name})
}

func TestVisible(t *testing.T) {
	v := geo.DefaultViewport()
	zs := []Zone{
		{ID: 1, Name: "dentro", Lat: 24.47, Lon: -111.8},
		{ID: 2, Name: "fuera", Lat: 40, Lon: -74},
		{ID: 3, Name: "borde", Lat: 22, Lon: -108},
	}
	got := Visible(zs, v)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 3, got[1].ID)
}
