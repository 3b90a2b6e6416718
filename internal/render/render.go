// Package render composes the filtered geometries, resolved palette and zone
// markers into a static PNG.
package render

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"dibuja/internal/geo"
	"dibuja/internal/natearth"
	"dibuja/internal/palette"
	"dibuja/internal/zones"
)

const (
	DefaultDPI = 200

	mapWidthIn   = 10.0 // map figure width, inches
	panelWidthIn = 3.5  // zone table panel, inches
)

// Layers holds everything the map draws, already filtered to the region.
// States is the base layer; the rest are optional.
type Layers struct {
	Countries []natearth.Feature
	States    []natearth.Feature
	Boundary  orb.Geometry // unified peninsula outline
	Roads     []natearth.Feature
	Places    []natearth.Feature
}

// WriteMap renders the map to a PNG at path using the default 200 DPI.
func WriteMap(path string, l Layers, pal palette.Palette, zs []zones.Zone, v geo.Viewport) error {
	return WriteMapDPI(path, l, pal, zs, v, DefaultDPI)
}

func WriteMapDPI(path string, l Layers, pal palette.Palette, zs []zones.Zone, v geo.Viewport, dpi int) error {
	if !v.Valid() {
		return fmt.Errorf("render: degenerate viewport")
	}
	c, err := pal.Colors()
	if err != nil {
		return err
	}
	fonts, err := newFontSet(float64(dpi))
	if err != nil {
		return err
	}

	inch := float64(dpi)
	ratio := v.Height() / v.Width()
	figH := math.Max(6, mapWidthIn*ratio)
	panelW := 0.0
	if len(zs) > 0 {
		panelW = panelWidthIn
		figH = math.Max(8, figH)
	}

	width := int((panelW + mapWidthIn) * inch)
	height := int(figH * inch)
	dc := gg.NewContext(width, height)

	r := &renderer{
		dc:    dc,
		c:     c,
		fonts: fonts,
		inch:  inch,
		lw:    inch / 72, // 1pt line width in pixels
	}

	// plot area inside the map figure
	px := (panelW + 0.9) * inch
	py := 0.9 * inch
	pw := (mapWidthIn - 0.9 - 0.3) * inch
	ph := figH*inch - py - 0.65*inch
	r.proj = newProjector(v, px, py, pw, ph)
	r.px, r.py, r.pw, r.ph = px, py, pw, ph

	dc.SetColor(c.FigureBG)
	dc.Clear()
	dc.SetColor(c.MapBG)
	dc.DrawRectangle(px, py, pw, ph)
	dc.Fill()

	// geometry layers are clipped to the plot rectangle
	dc.Push()
	dc.DrawRectangle(px, py, pw, ph)
	dc.Clip()
	r.drawCountries(l.Countries)
	r.drawStates(l.States)
	r.drawBoundary(l.Boundary)
	r.drawDividers(l.States)
	r.drawRoads(l.Roads)
	if err := r.drawPlaces(l.Places); err != nil {
		return err
	}
	if err := r.drawStateLabels(l.States); err != nil {
		return err
	}
	if err := r.drawZones(zs); err != nil {
		return err
	}
	r.drawGrid(v)
	dc.ResetClip()
	dc.Pop()

	if err := r.drawFrame(v, l, len(zs)); err != nil {
		return err
	}
	if len(zs) > 0 {
		if err := r.drawZoneTable(zs, panelW*inch); err != nil {
			return err
		}
	}
	return dc.SavePNG(path)
}

type renderer struct {
	dc    *gg.Context
	c     palette.Colors
	fonts *fontSet
	proj  projector
	inch  float64
	lw    float64

	px, py, pw, ph float64
}

func (r *renderer) setColor(c color.RGBA, a float64) {
	r.dc.SetRGBA255(int(c.R), int(c.G), int(c.B), int(a*255))
}

func (r *renderer) pathRing(ring orb.Ring) {
	if len(ring) == 0 {
		return
	}
	r.dc.NewSubPath()
	x, y := r.proj.point(ring[0][0], ring[0][1])
	r.dc.MoveTo(x, y)
	for _, p := range ring[1:] {
		x, y = r.proj.point(p[0], p[1])
		r.dc.LineTo(x, y)
	}
	r.dc.ClosePath()
}

func (r *renderer) pathPolygons(g orb.Geometry) {
	switch v := g.(type) {
	case orb.Polygon:
		for _, ring := range v {
			r.pathRing(ring)
		}
	case orb.MultiPolygon:
		for _, poly := range v {
			for _, ring := range poly {
				r.pathRing(ring)
			}
		}
	}
}

func (r *renderer) pathLines(g orb.Geometry) {
	drawLine := func(ls orb.LineString) {
		if len(ls) == 0 {
			return
		}
		r.dc.NewSubPath()
		x, y := r.proj.point(ls[0][0], ls[0][1])
		r.dc.MoveTo(x, y)
		for _, p := range ls[1:] {
			x, y = r.proj.point(p[0], p[1])
			r.dc.LineTo(x, y)
		}
	}
	switch v := g.(type) {
	case orb.LineString:
		drawLine(v)
	case orb.MultiLineString:
		for _, ls := range v {
			drawLine(ls)
		}
	}
}

func (r *renderer) drawCountries(fs []natearth.Feature) {
	for _, f := range fs {
		r.pathPolygons(f.Geometry)
		r.dc.SetFillRule(gg.FillRuleEvenOdd)
		r.setColor(r.c.LandFill, 0.3)
		r.dc.FillPreserve()
		r.setColor(r.c.Outline, 0.3)
		r.dc.SetLineWidth(0.5 * r.lw)
		r.dc.Stroke()
	}
}

func (r *renderer) drawStates(fs []natearth.Feature) {
	for _, f := range fs {
		r.pathPolygons(f.Geometry)
		r.dc.SetFillRule(gg.FillRuleEvenOdd)
		r.setColor(r.c.LandFill, 0.8)
		r.dc.Fill()
	}
}

func (r *renderer) drawBoundary(g orb.Geometry) {
	if g == nil {
		return
	}
	r.pathPolygons(g)
	r.setColor(r.c.Outline, 0.9)
	r.dc.SetLineWidth(1.5 * r.lw)
	r.dc.Stroke()
}

// drawDividers strokes the per-state boundaries dashed, drawing the internal
// division between the two states over the unified outline.
func (r *renderer) drawDividers(fs []natearth.Feature) {
	r.dc.SetDash(6*r.lw, 4*r.lw)
	for _, f := range fs {
		r.pathPolygons(f.Geometry)
		r.setColor(r.c.StateDivider, 0.6)
		r.dc.SetLineWidth(1.0 * r.lw)
		r.dc.Stroke()
	}
	r.dc.SetDash()
}

func (r *renderer) drawRoads(fs []natearth.Feature) {
	for _, f := range fs {
		r.pathLines(f.Geometry)
		r.setColor(r.c.StateDivider, 0.5)
		r.dc.SetLineWidth(0.8 * r.lw)
		r.dc.Stroke()
	}
}

// placeFontSize follows the original population tiers.
func placeFontSize(pop int) float64 {
	switch {
	case pop > 500000:
		return 10
	case pop > 100000:
		return 9
	case pop > 50000:
		return 8
	default:
		return 7
	}
}

func (r *renderer) drawPlaces(fs []natearth.Feature) error {
	for _, f := range fs {
		p, ok := f.Geometry.(orb.Point)
		if !ok {
			continue
		}
		x, y := r.proj.point(p.Lon(), p.Lat())
		r.setColor(r.c.NorthArrow, 0.8)
		r.dc.DrawCircle(x, y, 2.5*r.lw)
		r.dc.FillPreserve()
		r.setColor(r.c.LabelStroke, 1)
		r.dc.SetLineWidth(0.5 * r.lw)
		r.dc.Stroke()

		name := f.Attr("NAME")
		if name == "" {
			continue
		}
		pop, _ := strconv.Atoi(f.Attr("POP_MAX"))
		face, err := r.fonts.face(placeFontSize(pop), false)
		if err != nil {
			return err
		}
		r.dc.SetFontFace(face)
		r.strokedText(name, x+5*r.lw, y-5*r.lw, 0, 0.5, r.c.LabelText, r.c.LabelStroke)
	}
	return nil
}

func (r *renderer) drawStateLabels(fs []natearth.Feature) error {
	face, err := r.fonts.face(11, true)
	if err != nil {
		return err
	}
	r.dc.SetFontFace(face)
	for _, f := range fs {
		name := f.Attr("name")
		if name == "" {
			continue
		}
		centroid, _ := planar.CentroidArea(f.Geometry)
		x, y := r.proj.point(centroid.Lon(), centroid.Lat())
		r.strokedText(name, x, y, 0.5, 0.5, r.c.LabelText, r.c.LabelStroke)
	}
	return nil
}

// strokedText draws s with a stroke halo so labels stay readable over fills.
func (r *renderer) strokedText(s string, x, y, ax, ay float64, fill, stroke color.RGBA) {
	r.dc.SetColor(stroke)
	d := 1.5 * r.lw
	for _, off := range [][2]float64{{-d, 0}, {d, 0}, {0, -d}, {0, d}, {-d, -d}, {-d, d}, {d, -d}, {d, d}} {
		r.dc.DrawStringAnchored(s, x+off[0], y+off[1], ax, ay)
	}
	r.dc.SetColor(fill)
	r.dc.DrawStringAnchored(s, x, y, ax, ay)
}

func (r *renderer) drawZones(zs []zones.Zone) error {
	if len(zs) == 0 {
		return nil
	}
	idFace, err := r.fonts.face(7, true)
	if err != nil {
		return err
	}
	// marker radius: 0.8% of the latitude range, longitude-corrected so
	// markers stay round in degree space
	radLat := r.proj.v.Height() * 0.008
	for _, z := range zs {
		fill, err := palette.ResolveColor(z.Color)
		if err != nil {
			return fmt.Errorf("render: zone %d: %w", z.ID, err)
		}
		cosLat := math.Cos(z.Lat * math.Pi / 180)
		radLon := radLat
		if cosLat > 0 {
			radLon = radLat / cosLat
		}
		x, y := r.proj.point(z.Lon, z.Lat)
		rx, ry := r.proj.degToPx(radLon, radLat)
		r.markerPath(z.Figure, x, y, rx, ry)
		r.setColor(fill, 0.85)
		r.dc.FillPreserve()
		r.setColor(color.RGBA{A: 0xff}, 1)
		r.dc.SetLineWidth(1.0 * r.lw)
		r.dc.Stroke()

		text := palette.ContrastText(fill)
		halo := color.RGBA{A: 0xff}
		if text.R == 0 {
			halo = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
		}
		r.dc.SetFontFace(idFace)
		r.strokedText(strconv.Itoa(z.ID), x, y, 0.5, 0.5, text, halo)
	}
	return nil
}

func (r *renderer) markerPath(figure string, x, y, rx, ry float64) {
	switch figure {
	case zones.FigureSquare:
		r.dc.DrawRectangle(x-rx, y-ry, 2*rx, 2*ry)
	case zones.FigureTriangle:
		r.dc.NewSubPath()
		r.dc.MoveTo(x, y-ry)
		r.dc.LineTo(x-rx, y+ry)
		r.dc.LineTo(x+rx, y+ry)
		r.dc.ClosePath()
	case zones.FigureDiamond:
		r.dc.NewSubPath()
		r.dc.MoveTo(x, y-ry)
		r.dc.LineTo(x+rx, y)
		r.dc.LineTo(x, y+ry)
		r.dc.LineTo(x-rx, y)
		r.dc.ClosePath()
	default: // circulo
		r.dc.DrawEllipse(x, y, rx, ry)
	}
}

func (r *renderer) drawGrid(v geo.Viewport) {
	r.setColor(r.c.Grid, r.c.GridAlpha)
	r.dc.SetLineWidth(0.5 * r.lw)
	lonStep := niceStep(v.Width(), 6)
	latStep := niceStep(v.Height(), 6)
	for _, lon := range ticks(v.MinLon, v.MaxLon, lonStep) {
		x, _ := r.proj.point(lon, v.MinLat)
		r.dc.DrawLine(x, r.py, x, r.py+r.ph)
	}
	for _, lat := range ticks(v.MinLat, v.MaxLat, latStep) {
		_, y := r.proj.point(v.MinLon, lat)
		r.dc.DrawLine(r.px, y, r.px+r.pw, y)
	}
	r.dc.Stroke()
}

// drawFrame draws everything outside the clipped plot: border, ticks, title,
// axis labels, north indicator and info annotations.
func (r *renderer) drawFrame(v geo.Viewport, l Layers, nZones int) error {
	dc := r.dc

	r.setColor(r.c.AxisBorder, 1)
	dc.SetLineWidth(0.5 * r.lw)
	dc.DrawRectangle(r.px, r.py, r.pw, r.ph)
	dc.Stroke()

	tickFace, err := r.fonts.face(8, false)
	if err != nil {
		return err
	}
	dc.SetFontFace(tickFace)
	dc.SetColor(r.c.AxisTicks)
	lonStep := niceStep(v.Width(), 6)
	latStep := niceStep(v.Height(), 6)
	for _, lon := range ticks(v.MinLon, v.MaxLon, lonStep) {
		x, _ := r.proj.point(lon, v.MinLat)
		dc.DrawStringAnchored(trimFloat(lon), x, r.py+r.ph+0.06*r.inch, 0.5, 1)
	}
	for _, lat := range ticks(v.MinLat, v.MaxLat, latStep) {
		_, y := r.proj.point(v.MinLon, lat)
		dc.DrawStringAnchored(trimFloat(lat), r.px-0.06*r.inch, y, 1, 0.5)
	}

	axisFace, err := r.fonts.face(10, false)
	if err != nil {
		return err
	}
	dc.SetFontFace(axisFace)
	dc.SetColor(r.c.AxisText)
	dc.DrawStringAnchored("Longitud", r.px+r.pw/2, r.py+r.ph+0.35*r.inch, 0.5, 0.5)
	dc.Push()
	dc.RotateAbout(-math.Pi/2, r.px-0.6*r.inch, r.py+r.ph/2)
	dc.DrawStringAnchored("Latitud", r.px-0.6*r.inch, r.py+r.ph/2, 0.5, 0.5)
	dc.Pop()

	titleFace, err := r.fonts.face(20, true)
	if err != nil {
		return err
	}
	dc.SetFontFace(titleFace)
	dc.SetColor(r.c.Title)
	dc.DrawStringAnchored("Península de Baja California", r.px+r.pw/2, 0.4*r.inch, 0.5, 0.5)

	subFace, err := r.fonts.face(9, false)
	if err != nil {
		return err
	}
	dc.SetFontFace(subFace)
	dc.SetColor(r.c.Subtitle)
	dc.DrawStringAnchored(subtitle(l, nZones), r.px+r.pw/2, 0.7*r.inch, 0.5, 0.5)

	// north indicator inside the plot, top right
	northFace, err := r.fonts.face(14, true)
	if err != nil {
		return err
	}
	dc.SetFontFace(northFace)
	dc.SetColor(r.c.NorthArrow)
	nx := r.px + 0.95*r.pw
	dc.DrawStringAnchored("N", nx, r.py+0.05*r.ph, 0.5, 0.5)
	arrowFace, err := r.fonts.face(18, false)
	if err != nil {
		return err
	}
	dc.SetFontFace(arrowFace)
	dc.DrawStringAnchored("↑", nx, r.py+0.09*r.ph, 0.5, 0.5)

	infoFace, err := r.fonts.face(7, false)
	if err != nil {
		return err
	}
	dc.SetFontFace(infoFace)
	dc.SetColor(r.c.InfoText)
	dc.DrawStringAnchored("Proyección: WGS84 (EPSG:4326)",
		r.px+0.95*r.pw, r.py+0.98*r.ph-0.04*r.inch, 1, 0.5)
	area := fmt.Sprintf("Área: Lat [%s°, %s°]  Lon [%s°, %s°]",
		trimFloat(v.MinLat), trimFloat(v.MaxLat), trimFloat(v.MinLon), trimFloat(v.MaxLon))
	dc.DrawStringAnchored(area, r.px+0.05*r.pw, r.py+0.98*r.ph-0.04*r.inch, 0, 0.5)
	return nil
}

func subtitle(l Layers, nZones int) string {
	parts := []string{"Estados"}
	if len(l.Places) > 0 {
		parts = append(parts, "Ciudades")
	}
	if len(l.Countries) > 0 {
		parts = append(parts, "Países")
	}
	if len(l.Roads) > 0 {
		parts = append(parts, "Carreteras")
	}
	s := "Natural Earth 1:10m — Capas: " + strings.Join(parts, ", ")
	if nZones > 0 {
		s += fmt.Sprintf(" — %d zonas de interés", nZones)
	}
	return s
}

// drawZoneTable renders the reference panel on the left: id and name per
// visible zone.
func (r *renderer) drawZoneTable(zs []zones.Zone, panelW float64) error {
	dc := r.dc
	titleFace, err := r.fonts.face(11, true)
	if err != nil {
		return err
	}
	headFace, err := r.fonts.face(8, true)
	if err != nil {
		return err
	}
	rowFace, err := r.fonts.face(7, false)
	if err != nil {
		return err
	}

	left := 0.2 * r.inch
	right := panelW - 0.2*r.inch
	y := 0.5 * r.inch

	dc.SetFontFace(titleFace)
	dc.SetColor(r.c.Title)
	dc.DrawStringAnchored("Zonas", panelW/2, y, 0.5, 0.5)
	y += 0.35 * r.inch

	idX := left + 0.25*r.inch
	nameX := left + 0.7*r.inch
	dc.SetFontFace(headFace)
	dc.SetColor(r.c.AxisText)
	dc.DrawStringAnchored("ID", idX, y, 0.5, 0.5)
	dc.DrawStringAnchored("Nombre", nameX, y, 0, 0.5)
	y += 0.12 * r.inch
	r.setColor(r.c.AxisBorder, 1)
	dc.SetLineWidth(0.8 * r.lw)
	dc.DrawLine(left, y, right, y)
	dc.Stroke()
	y += 0.18 * r.inch

	rowH := 0.22 * r.inch
	avail := float64(dc.Height()) - y - 0.3*r.inch
	if n := float64(len(zs)); n*rowH > avail && n > 0 {
		rowH = avail / n
	}
	for _, z := range zs {
		dc.SetFontFace(headFace)
		dc.SetColor(r.c.LabelText)
		dc.DrawStringAnchored(strconv.Itoa(z.ID), idX, y, 0.5, 0.5)
		dc.SetFontFace(rowFace)
		dc.DrawStringAnchored(z.Name, nameX, y, 0, 0.5)
		y += rowH
	}
	return nil
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
