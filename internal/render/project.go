package render

import (
	"math"

	"dibuja/internal/geo"
)

// projector maps lon/lat into the pixel rectangle of the plot area.
// Y grows downward in image space, so latitude is flipped.
type projector struct {
	v          geo.Viewport
	x, y, w, h float64
}

func newProjector(v geo.Viewport, x, y, w, h float64) projector {
	return projector{v: v, x: x, y: y, w: w, h: h}
}

func (p projector) point(lon, lat float64) (float64, float64) {
	nx := (lon - p.v.MinLon) / p.v.Width()
	ny := (lat - p.v.MinLat) / p.v.Height()
	return p.x + nx*p.w, p.y + (1-ny)*p.h
}

// degToPx converts degree spans to pixel spans on each axis.
func (p projector) degToPx(dLon, dLat float64) (float64, float64) {
	return dLon / p.v.Width() * p.w, dLat / p.v.Height() * p.h
}

// niceStep picks a tick interval giving roughly the target tick count.
func niceStep(span float64, target int) float64 {
	if span <= 0 || target <= 0 {
		return 1
	}
	raw := span / float64(target)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 2.5, 5, 10} {
		if raw <= m*mag {
			return m * mag
		}
	}
	return 10 * mag
}

// ticks returns the tick positions in [min, max] at the given step,
// starting from the first multiple of step at or above min.
func ticks(min, max, step float64) []float64 {
	var out []float64
	start := math.Ceil(min/step) * step
	for t := start; t <= max+step*1e-9; t += step {
		out = append(out, t)
	}
	return out
}
