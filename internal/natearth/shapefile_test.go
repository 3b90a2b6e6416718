package natearth

import (
	"path/filepath"
	"testing"

	shp "github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttrLookup(t *testing.T) {
	f := Feature{Attrs: map[string]string{"ADMIN": "Mexico", "name": "Baja California"}}
	assert.Equal(t, "Mexico", f.Attr("ADMIN"))
	assert.Equal(t, "Mexico", f.Attr("admin"))
	assert.Equal(t, "Baja California", f.Attr("NAME"))
	assert.Equal(t, "", f.Attr("POP_EST"))
}

func TestLoadShapefilePoints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "places.shp")
	w, err := shp.Create(path, shp.POINT)
	require.NoError(t, err)
	require.NoError(t, w.SetFields([]shp.Field{
		shp.StringField("NAME", 30),
		shp.StringField("SOV0NAME", 30),
	}))
	points := []shp.Point{
		{X: -110.3, Y: 24.14},
		{X: -116.6, Y: 31.87},
	}
	names := []string{"La Paz", "Ensenada"}
	for i := range points {
		w.Write(&points[i])
		w.WriteAttribute(i, 0, names[i])
		w.WriteAttribute(i, 1, "Mexico")
	}
	w.Close()

	fs, err := LoadShapefile(path)
	require.NoError(t, err)
	require.Len(t, fs, 2)
	assert.Equal(t, orb.Point{-110.3, 24.14}, fs[0].Geometry)
	assert.Equal(t, "La Paz", fs[0].Attr("NAME"))
	assert.Equal(t, "Mexico", fs[1].Attr("SOV0NAME"))
}

func TestLoadShapefileMissing(t *testing.T) {
	_, err := LoadShapefile(filepath.Join(t.TempDir(), "nope.shp"))
	assert.Error(t, err)
}

// Shapefile winding: clockwise rings open polygons, counter-clockwise rings
// are holes of the preceding one.
func TestPolygonsFromParts(t *testing.T) {
	cw := []shp.Point{{X: 0, Y: 0}, {X: 0, Y: 4}, {X: 4, Y: 4}, {X: 4, Y: 0}, {X: 0, Y: 0}}
	hole := []shp.Point{{X: 1, Y: 1}, {X: 3, Y: 1}, {X: 3, Y: 3}, {X: 1, Y: 3}, {X: 1, Y: 1}}
	cw2 := []shp.Point{{X: 10, Y: 0}, {X: 10, Y: 2}, {X: 12, Y: 2}, {X: 12, Y: 0}, {X: 10, Y: 0}}

	var points []shp.Point
	var parts []int32
	for _, ring := range [][]shp.Point{cw, hole, cw2} {
		parts = append(parts, int32(len(points)))
		points = append(points, ring...)
	}

	g := polygonsFromParts(points, parts)
	mp, ok := g.(orb.MultiPolygon)
	require.True(t, ok)
	require.Len(t, mp, 2)
	assert.Len(t, mp[0], 2, "first polygon carries the hole")
	assert.Len(t, mp[1], 1)
}

func TestPolygonsFromPartsSingle(t *testing.T) {
	cw := []shp.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 0}}
	g := polygonsFromParts(cw, []int32{0})
	_, ok := g.(orb.Polygon)
	assert.True(t, ok)
}

func TestShoelaceSign(t *testing.T) {
	ccw := orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}
	cw := orb.Ring{{0, 0}, {0, 1}, {1, 1}, {1, 0}, {0, 0}}
	assert.Greater(t, shoelace(ccw), 0.0)
	assert.Less(t, shoelace(cw), 0.0)
}
