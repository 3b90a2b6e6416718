// Package zones reads user-authored JSON files of named point locations and
// decides which of them fall inside the current map viewport.
package zones

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"dibuja/internal/geo"
	"dibuja/internal/palette"
)

// Zone is a point of interest drawn as a labeled marker.
type Zone struct {
	ID     int     `json:"id"`
	Name   string  `json:"nombre"`
	Lat    float64 `json:"latitud"`
	Lon    float64 `json:"longitud"`
	Figure string  `json:"figura"`
	Color  string  `json:"color"`

	// Layer is the display name of the file the zone came from.
	Layer string `json:"-"`
}

// Marker shapes a zone may use.
const (
	FigureCircle   = "circulo"
	FigureSquare   = "cuadrado"
	FigureTriangle = "triangulo"
	FigureDiamond  = "rombo"
)

var validFigures = map[string]bool{
	FigureCircle:   true,
	FigureSquare:   true,
	FigureTriangle: true,
	FigureDiamond:  true,
}

// LayerRef is one entry of the zone layer registry (capas_zonas.json).
type LayerRef struct {
	File        string `json:"archivo"`
	Description string `json:"descripcion"`
}

type registryFile struct {
	Files []LayerRef `json:"archivos"`
}

type layerFile struct {
	Name  string `json:"nombre"`
	Zones []Zone `json:"zonas"`
}

// LoadRegistry reads the zone layer registry. A missing registry simply means
// no zone layers are available.
func LoadRegistry(path string) ([]LayerRef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("zone registry: %w", err)
	}
	var reg registryFile
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("zone registry %s: %w", path, err)
	}
	return reg.Files, nil
}

// LoadFile reads one zone file and validates every zone. Validation failures
// are configuration errors and abort the load.
func LoadFile(path string) ([]Zone, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("zones: %w", err)
	}
	var lf layerFile
	if err := json.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("zones %s: %w", path, err)
	}
	layer := lf.Name
	if layer == "" {
		layer = filepath.Base(path)
	}
	seen := make(map[int]bool, len(lf.Zones))
	out := make([]Zone, 0, len(lf.Zones))
	for _, z := range lf.Zones {
		z.Layer = layer
		if err := z.validate(); err != nil {
			return nil, fmt.Errorf("zones %s: %w", path, err)
		}
		if seen[z.ID] {
			return nil, fmt.Errorf("zones %s: duplicate id %d", path, z.ID)
		}
		seen[z.ID] = true
		out = append(out, z)
	}
	return out, nil
}

func (z Zone) validate() error {
	if z.Lat < -90 || z.Lat > 90 {
		return fmt.Errorf("zone %d (%s): latitude %v out of range", z.ID, z.Name, z.Lat)
	}
	if z.Lon < -180 || z.Lon > 180 {
		return fmt.Errorf("zone %d (%s): longitude %v out of range", z.ID, z.Name, z.Lon)
	}
	if !validFigures[z.Figure] {
		return fmt.Errorf("zone %d (%s): unknown figure %q", z.ID, z.Name, z.Figure)
	}
	if _, err := palette.ResolveColor(z.Color); err != nil {
		return fmt.Errorf("zone %d (%s): %w", z.ID, z.Name, err)
	}
	return nil
}

// LoadLayers loads the selected registry entries from dir, concatenating
// their zones in registry order.
func LoadLayers(dir string, refs []LayerRef) ([]Zone, error) {
	var all []Zone
	for _, ref := range refs {
		zs, err := LoadFile(filepath.Join(dir, ref.File))
		if err != nil {
			return nil, err
		}
		all = append(all, zs...)
	}
	return all, nil
}

// Visible returns the zones whose coordinates lie inside the viewport,
// bounds inclusive, preserving input order.
func Visible(zs []Zone, v geo.Viewport) []Zone {
	var out []Zone
	for _, z := range zs {
		if v.Contains(z.Lat, z.Lon) {
			out = append(out, z)
		}
	}
	return out
}
