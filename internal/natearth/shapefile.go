package natearth

import (
	"fmt"
	"strings"

	shp "github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
)

// Feature is one shapefile record: a geometry plus its DBF attributes.
type Feature struct {
	Geometry orb.Geometry
	Attrs    map[string]string
}

// Attr returns an attribute value; lookup is exact first, then
// case-insensitive (Natural Earth mixes lowercase and uppercase columns
// across datasets).
func (f Feature) Attr(name string) string {
	if v, ok := f.Attrs[name]; ok {
		return v
	}
	for k, v := range f.Attrs {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// LoadShapefile reads every record of a .shp/.dbf pair into features.
func LoadShapefile(path string) ([]Feature, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("shapefile: %w", err)
	}
	defer r.Close()

	fields := r.Fields()
	names := make([]string, len(fields))
	for i := range fields {
		names[i] = fields[i].String()
	}

	var out []Feature
	for r.Next() {
		row, shape := r.Shape()
		g := toOrb(shape)
		if g == nil {
			continue
		}
		attrs := make(map[string]string, len(names))
		for i, name := range names {
			attrs[name] = strings.TrimSpace(r.ReadAttribute(row, i))
		}
		out = append(out, Feature{Geometry: g, Attrs: attrs})
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("shapefile %s: %w", path, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("shapefile %s: no records", path)
	}
	return out, nil
}

// toOrb converts a go-shp shape to the orb model. Null and unsupported shape
// types yield nil and the record is skipped.
func toOrb(s shp.Shape) orb.Geometry {
	switch v := s.(type) {
	case *shp.Point:
		return orb.Point{v.X, v.Y}
	case *shp.MultiPoint:
		mp := make(orb.MultiPoint, 0, len(v.Points))
		for _, p := range v.Points {
			mp = append(mp, orb.Point{p.X, p.Y})
		}
		return mp
	case *shp.PolyLine:
		return linesFromParts(v.Points, v.Parts)
	case *shp.Polygon:
		return polygonsFromParts(v.Points, v.Parts)
	default:
		return nil
	}
}

func splitParts(points []shp.Point, parts []int32) [][]orb.Point {
	if len(parts) == 0 {
		parts = []int32{0}
	}
	out := make([][]orb.Point, 0, len(parts))
	for i, start := range parts {
		end := len(points)
		if i+1 < len(parts) {
			end = int(parts[i+1])
		}
		if int(start) >= end {
			continue
		}
		seg := make([]orb.Point, 0, end-int(start))
		for _, p := range points[start:end] {
			seg = append(seg, orb.Point{p.X, p.Y})
		}
		out = append(out, seg)
	}
	return out
}

func linesFromParts(points []shp.Point, parts []int32) orb.Geometry {
	segs := splitParts(points, parts)
	mls := make(orb.MultiLineString, 0, len(segs))
	for _, seg := range segs {
		mls = append(mls, orb.LineString(seg))
	}
	if len(mls) == 1 {
		return mls[0]
	}
	return mls
}

// polygonsFromParts groups rings into polygons. Shapefile outer rings are
// clockwise (negative shoelace area); counter-clockwise rings are holes of
// the preceding outer ring.
func polygonsFromParts(points []shp.Point, parts []int32) orb.Geometry {
	var mp orb.MultiPolygon
	for _, seg := range splitParts(points, parts) {
		ring := orb.Ring(seg)
		if shoelace(ring) < 0 || len(mp) == 0 {
			mp = append(mp, orb.Polygon{ring})
		} else {
			mp[len(mp)-1] = append(mp[len(mp)-1], ring)
		}
	}
	if len(mp) == 1 {
		return mp[0]
	}
	return mp
}

func shoelace(r orb.Ring) float64 {
	var sum float64
	for i := 0; i < len(r); i++ {
		j := (i + 1) % len(r)
		sum += r[i][0]*r[j][1] - r[j][0]*r[i][1]
	}
	return sum / 2
}
