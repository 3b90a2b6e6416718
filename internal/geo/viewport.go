package geo

import "github.com/paulmach/orb"

// Default map area: the Baja California peninsula.
const (
	DefaultMinLat = 22.0
	DefaultMaxLat = 33.0
	DefaultMinLon = -120.0
	DefaultMaxLon = -108.0
)

// Viewport is the lat/lon box that defines both the rendered extent and
// which zones are visible.
type Viewport struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

func DefaultViewport() Viewport {
	return Viewport{
		MinLat: DefaultMinLat,
		MaxLat: DefaultMaxLat,
		MinLon: DefaultMinLon,
		MaxLon: DefaultMaxLon,
	}
}

// Normalize swaps reversed bounds so min <= max on both axes.
func (v Viewport) Normalize() Viewport {
	if v.MinLat > v.MaxLat {
		v.MinLat, v.MaxLat = v.MaxLat, v.MinLat
	}
	if v.MinLon > v.MaxLon {
		v.MinLon, v.MaxLon = v.MaxLon, v.MinLon
	}
	return v
}

// Contains reports whether the coordinate lies inside the box, bounds inclusive.
func (v Viewport) Contains(lat, lon float64) bool {
	return lat >= v.MinLat && lat <= v.MaxLat && lon >= v.MinLon && lon <= v.MaxLon
}

// Valid reports whether the box has positive extent on both axes.
func (v Viewport) Valid() bool {
	return v.MaxLat > v.MinLat && v.MaxLon > v.MinLon
}

func (v Viewport) Width() float64  { return v.MaxLon - v.MinLon }
func (v Viewport) Height() float64 { return v.MaxLat - v.MinLat }

// Bound converts the viewport to an orb bound (lon/lat order).
func (v Viewport) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{v.MinLon, v.MinLat},
		Max: orb.Point{v.MaxLon, v.MaxLat},
	}
}
