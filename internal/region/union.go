package region

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
	sf "github.com/peterstace/simplefeatures/geom"

	"dibuja/internal/natearth"
)

// Union merges the polygonal features into one combined boundary geometry.
// The union itself is delegated to simplefeatures; geometries cross the
// library boundary as WKB.
func Union(fs []natearth.Feature) (orb.Geometry, error) {
	var acc sf.Geometry
	first := true
	for _, f := range fs {
		switch f.Geometry.(type) {
		case orb.Polygon, orb.MultiPolygon:
		default:
			continue
		}
		raw, err := wkb.Marshal(f.Geometry)
		if err != nil {
			return nil, fmt.Errorf("region: union: %w", err)
		}
		g, err := sf.UnmarshalWKB(raw)
		if err != nil {
			return nil, fmt.Errorf("region: union: %w", err)
		}
		if first {
			acc = g
			first = false
			continue
		}
		if acc, err = sf.Union(acc, g); err != nil {
			return nil, fmt.Errorf("region: union: %w", err)
		}
	}
	if first {
		return nil, fmt.Errorf("region: union: no polygons")
	}
	out, err := wkb.Unmarshal(acc.AsBinary())
	if err != nil {
		return nil, fmt.Errorf("region: union: %w", err)
	}
	return out, nil
}
