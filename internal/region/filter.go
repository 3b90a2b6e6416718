// Package region narrows world-scale datasets to the features relevant to
// the map: attribute filtering for the peninsula states, viewport clipping
// for the auxiliary layers, and the boundary union.
package region

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"

	"dibuja/internal/geo"
	"dibuja/internal/natearth"
)

// PeninsulaStates are the admin-1 names that make up the map's subject.
var PeninsulaStates = []string{"Baja California", "Baja California Sur"}

// Predicate selects features by their attributes.
type Predicate func(natearth.Feature) bool

// Filter returns the subset matching pred, preserving order and geometry.
func Filter(fs []natearth.Feature, pred Predicate) []natearth.Feature {
	var out []natearth.Feature
	for _, f := range fs {
		if pred(f) {
			out = append(out, f)
		}
	}
	return out
}

// Peninsula selects the two Baja California states by exact attribute match.
// When nothing matches (column drift between Natural Earth releases), it
// retries with a case-insensitive "Baja" substring over Mexican states.
func Peninsula(fs []natearth.Feature) ([]natearth.Feature, error) {
	exact := Filter(fs, func(f natearth.Feature) bool {
		if f.Attr("admin") != "Mexico" {
			return false
		}
		name := f.Attr("name")
		for _, want := range PeninsulaStates {
			if name == want {
				return true
			}
		}
		return false
	})
	if len(exact) > 0 {
		return exact, nil
	}
	partial := Filter(fs, func(f natearth.Feature) bool {
		return f.Attr("admin") == "Mexico" &&
			strings.Contains(strings.ToLower(f.Attr("name")), "baja")
	})
	if len(partial) == 0 {
		return nil, fmt.Errorf("region: no Baja California states in dataset")
	}
	return partial, nil
}

// ClipPoints keeps point features inside the viewport. When the dataset has
// a sovereign-country column and some of the clipped points are Mexican,
// the result narrows to those.
func ClipPoints(fs []natearth.Feature, v geo.Viewport) []natearth.Feature {
	inside := Filter(fs, func(f natearth.Feature) bool {
		p, ok := f.Geometry.(orb.Point)
		if !ok {
			return false
		}
		return v.Contains(p.Lat(), p.Lon())
	})
	for _, col := range []string{"SOV0NAME", "ADM0NAME"} {
		mx := Filter(inside, func(f natearth.Feature) bool {
			return f.Attr(col) == "Mexico"
		})
		if len(mx) > 0 {
			return mx
		}
	}
	return inside
}

// ClipBound keeps features whose bounding box intersects the viewport.
func ClipBound(fs []natearth.Feature, v geo.Viewport) []natearth.Feature {
	b := v.Bound()
	return Filter(fs, func(f natearth.Feature) bool {
		return f.Geometry.Bound().Intersects(b)
	})
}

// Countries selects the peninsula's neighborhood (Mexico and the United
// States) from the admin-0 layer, falling back to a viewport clip when the
// name columns are absent.
func Countries(fs []natearth.Feature, v geo.Viewport) []natearth.Feature {
	want := map[string]bool{"Mexico": true, "United States of America": true}
	for _, col := range []string{"ADMIN", "NAME"} {
		named := Filter(fs, func(f natearth.Feature) bool {
			return want[f.Attr(col)]
		})
		if len(named) > 0 {
			return named
		}
	}
	return ClipBound(fs, v)
}
