package geo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectCenter(t *testing.T) {
	p := NewOrthographic()
	p.SetScale(100)
	p.SetTranslate(50, 40)
	p.SetRotation(Rotation{-80, -10, 0})

	x, y, ok := p.Project(80, 10)
	require.True(t, ok)
	assert.InDelta(t, 50, x, 1e-9)
	assert.InDelta(t, 40, y, 1e-9)

	_, _, ok = p.Project(-100, -10)
	assert.False(t, ok, "antipode is hidden")
}

func TestProjectOrientation(t *testing.T) {
	p := NewOrthographic()
	p.SetScale(10)

	_, _, ok := p.Project(120, 0)
	assert.False(t, ok)

	x, y, ok := p.Project(45, 0)
	require.True(t, ok)
	assert.Greater(t, x, 0.0, "east maps right")
	assert.InDelta(t, 0, y, 1e-9)

	x, y, ok = p.Project(0, 45)
	require.True(t, ok)
	assert.InDelta(t, 0, x, 1e-9)
	assert.Less(t, y, 0.0, "north maps up")
}

func TestFrontFacingMatchesProjection(t *testing.T) {
	rot := Rotation{-30, -20, 0}
	p := NewOrthographic()
	p.SetRotation(rot)

	for lon := -180.0; lon < 180; lon += 17 {
		for lat := -80.0; lat <= 80; lat += 13 {
			_, _, ok := p.Project(lon, lat)
			assert.Equal(t, ok, FrontFacing(rot, lon, lat), "lon=%v lat=%v", lon, lat)
		}
	}
}

func TestGraticule(t *testing.T) {
	lines := Graticule(15, 3)
	// 24 meridians and 11 parallels
	require.Len(t, lines, 35)
	assert.Equal(t, LonLat{Lon: -180, Lat: -90}, lines[0][0])
	assert.Equal(t, 90.0, lines[0][len(lines[0])-1].Lat)
	assert.Nil(t, Graticule(0, 3))
}

const quantized = `{
  "type": "Topology",
  "transform": {"scale": [1, 1], "translate": [0, 0]},
  "objects": {"countries": {"type": "GeometryCollection", "geometries": [
    {"type": "Polygon", "id": "A", "properties": {"name": "Alpha"}, "arcs": [[0, 1]]},
    {"type": "MultiPolygon", "id": 7, "arcs": [[[-2, -1]]]},
    {"type": "Point", "coordinates": [0, 0]}
  ]}},
  "arcs": [[[0, 0], [10, 0], [0, 10]], [[10, 10], [-10, 0], [0, -10]]]
}`

func TestDecodeTopoJSONQuantized(t *testing.T) {
	features, err := DecodeTopoJSON(strings.NewReader(quantized), "countries")
	require.NoError(t, err)
	require.Len(t, features, 2)

	alpha := features[0]
	assert.Equal(t, "A", alpha.ID)
	assert.Equal(t, "Alpha", alpha.Name)
	require.Len(t, alpha.Polygons, 1)
	assert.Equal(t, Line{
		{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0},
	}, alpha.Polygons[0][0])

	multi := features[1]
	assert.Equal(t, "7", multi.ID)
	assert.Equal(t, Line{
		{0, 0}, {0, 10}, {10, 10}, {10, 0}, {0, 0},
	}, multi.Polygons[0][0])
}

func TestDecodeTopoJSONErrors(t *testing.T) {
	_, err := DecodeTopoJSON(strings.NewReader(quantized), "land")
	assert.ErrorIs(t, err, ErrNoObject)

	_, err = DecodeTopoJSON(strings.NewReader("{"), "countries")
	assert.Error(t, err)

	bad := `{"type":"Topology","objects":{"c":{"type":"Polygon","arcs":[[5]]}},"arcs":[]}`
	_, err = DecodeTopoJSON(strings.NewReader(bad), "c")
	assert.Error(t, err)
}
