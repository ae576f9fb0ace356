package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-butts/quadtree"
	"github.com/robert-butts/quadtree/pointgen"
)

func scenarioTree(t *testing.T) *quadtree.Quadtree {
	t.Helper()

	qt, err := quadtree.New(quadtree.NewBoundingBox(quadtree.Point{}, 100), 1)
	require.NoError(t, err)

	qt.Insert(quadtree.Point{X: 10, Y: 10})
	qt.Insert(quadtree.Point{X: -10, Y: -10})
	qt.Insert(quadtree.Point{X: 60, Y: 60})
	return qt
}

func randomTree(t *testing.T, seed int64, n int) *quadtree.Quadtree {
	t.Helper()

	qt, err := quadtree.New(quadtree.NewBoundingBox(quadtree.Point{}, 1000), 4)
	require.NoError(t, err)

	for _, p := range pointgen.Scaled(seed, n, 1000) {
		qt.Insert(p)
	}
	return qt
}

func TestFromTree_Leaf(t *testing.T) {
	t.Parallel()

	qt, err := quadtree.New(quadtree.NewBoundingBox(quadtree.Point{}, 10), 4)
	require.NoError(t, err)
	qt.Insert(quadtree.Point{X: 1.5, Y: -2})

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FromTree(qt), JSON))

	assert.JSONEq(t, `{
		"boundary": {"center": {"x": 0, "y": 0}, "half_size": 10},
		"capacity": 4,
		"points": [{"x": 1.5, "y": -2}],
		"divided": false,
		"ne": null, "nw": null, "se": null, "sw": null
	}`, buf.String())
}

func TestFromTree_Scenario(t *testing.T) {
	t.Parallel()

	rec := FromTree(scenarioTree(t))

	require.True(t, rec.Divided)
	assert.Empty(t, rec.Points)
	assert.Equal(t, 3, rec.Count())
	assert.Equal(t, 9, rec.Nodes())
	assert.NoError(t, rec.Validate())

	assert.Equal(t, []quadtree.Point{{X: -10, Y: -10}}, rec.NW.Points)
	assert.Empty(t, rec.NE.Points)
	assert.Empty(t, rec.SW.Points)

	se := rec.Quadrant(quadtree.SE)
	require.True(t, se.Divided)
	assert.Equal(t, quadtree.NewBoundingBox(quadtree.Point{X: 50, Y: 50}, 50), se.Boundary)
	assert.Equal(t, []quadtree.Point{{X: 10, Y: 10}}, se.NW.Points)
	assert.Equal(t, []quadtree.Point{{X: 60, Y: 60}}, se.SE.Points)
	assert.Equal(t, 1, se.SE.Capacity)
}

func TestFromTree_MatchesTree(t *testing.T) {
	t.Parallel()

	qt := randomTree(t, 4, 400)
	rec := FromTree(qt)

	nodes := 0
	require.NoError(t, qt.Walk(func(*quadtree.Quadtree) error {
		nodes++
		return nil
	}))

	assert.Equal(t, qt.Len(), rec.Count())
	assert.Equal(t, nodes, rec.Nodes())
	assert.NoError(t, rec.Validate())
}

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	rec := FromTree(randomTree(t, 5, 400))

	for _, format := range []Format{JSON, YAML} {
		format := format

		t.Run(string(format), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, rec, format))

			decoded, err := Decode(&buf, format)
			require.NoError(t, err)

			if diff := cmp.Diff(rec, decoded, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("decoded record mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncode_UnknownFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	assert.ErrorIs(t, Encode(&buf, &Record{}, Format("xml")), ErrUnknownFormat)

	_, err := Decode(strings.NewReader("{}"), Format("xml"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	for _, tcase := range []*struct {
		Name string
		Doc  string
	}{
		{"divided without quadrants", `{"boundary": {"center": {"x": 0, "y": 0}, "half_size": 1}, "capacity": 1, "points": [], "divided": true}`},
		{"leaf with quadrant", `{"boundary": {"center": {"x": 0, "y": 0}, "half_size": 1}, "capacity": 1, "points": [], "divided": false,
			"ne": {"boundary": {"center": {"x": 0.5, "y": -0.5}, "half_size": 0.5}, "capacity": 1, "points": [], "divided": false}}`},
		{"point outside root", `{"boundary": {"center": {"x": 0, "y": 0}, "half_size": 1}, "capacity": 2,
			"points": [{"x": 0.5, "y": 0.5}, {"x": 50, "y": 50}], "divided": false}`},
		{"quadrant point outside root", `{"boundary": {"center": {"x": 0, "y": 0}, "half_size": 1}, "capacity": 1, "points": [], "divided": true,
			"ne": {"boundary": {"center": {"x": 0.5, "y": -0.5}, "half_size": 0.5}, "capacity": 1, "points": [{"x": 3, "y": -0.5}], "divided": false},
			"nw": {"boundary": {"center": {"x": -0.5, "y": -0.5}, "half_size": 0.5}, "capacity": 1, "points": [], "divided": false},
			"se": {"boundary": {"center": {"x": 0.5, "y": 0.5}, "half_size": 0.5}, "capacity": 1, "points": [], "divided": false},
			"sw": {"boundary": {"center": {"x": -0.5, "y": 0.5}, "half_size": 0.5}, "capacity": 1, "points": [], "divided": false}}`},
	} {
		tcase := tcase

		t.Run(tcase.Name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tcase.Doc), JSON)

			assert.ErrorIs(t, err, ErrMalformed)
		})
	}

	_, err := Decode(strings.NewReader("{not json"), JSON)
	assert.Error(t, err)
}

func TestRebuild(t *testing.T) {
	t.Parallel()

	qt := randomTree(t, 6, 400)
	rec := FromTree(qt)

	rebuilt, err := Rebuild(rec)
	require.NoError(t, err)

	if diff := cmp.Diff(rec, FromTree(rebuilt)); diff != "" {
		t.Errorf("rebuilt tree mismatch (-want +got):\n%s", diff)
	}

	r := quadtree.NewBoundingBox(quadtree.Point{X: 0, Y: 0}, 50)
	assert.Equal(t, qt.QueryRange(r), rebuilt.QueryRange(r))
}

func TestRebuild_Invalid(t *testing.T) {
	t.Parallel()

	_, err := Rebuild(&Record{Boundary: quadtree.NewBoundingBox(quadtree.Point{}, 1)})

	assert.ErrorIs(t, err, quadtree.ErrInvalidCapacity)
}

func TestRebuild_OutsideRoot(t *testing.T) {
	t.Parallel()

	rec := &Record{
		Boundary: quadtree.NewBoundingBox(quadtree.Point{}, 1),
		Capacity: 2,
		Points:   []quadtree.Point{{X: 0.5, Y: 0.5}, {X: 50, Y: 50}},
	}

	_, err := Rebuild(rec)

	assert.ErrorIs(t, err, ErrMalformed)
}

func TestDecode_EdgePoints(t *testing.T) {
	t.Parallel()

	// a point on the east edge ends up in quadrants whose rounded boundary may miss it
	box := quadtree.NewBoundingBox(quadtree.Point{X: -571.4722548352502, Y: -238.68562140062795}, 318.1263685128968)
	qt := quadtree.MustNew(box, 1)
	for _, p := range []quadtree.Point{box.Center, {X: box.Max().X, Y: -132.64349856299566}, box.Min(), box.Max()} {
		require.True(t, qt.Insert(p))
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FromTree(qt), JSON))
	rec, err := Decode(&buf, JSON)
	require.NoError(t, err)

	rebuilt, err := Rebuild(rec)
	require.NoError(t, err)
	assert.Equal(t, qt.Len(), rebuilt.Len())
	assert.Equal(t, qt.QueryRange(box), rebuilt.QueryRange(box))
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for in, exp := range map[string]Format{
		"json":  JSON,
		"JSON":  JSON,
		"yaml":  YAML,
		" yml ": YAML,
	} {
		f, err := ParseFormat(in)

		assert.NoError(t, err, in)
		assert.Equal(t, exp, f, in)
	}

	_, err := ParseFormat("toml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
