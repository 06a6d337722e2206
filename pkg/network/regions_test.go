package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azybler/transitnet/pkg/geo"
)

// buildRegions creates
//
//	country
//	├── north
//	│   ├── harbour   (stops 1, 2)
//	│   └── hills     (stop 3)
//	└── south         (stop 4)
//
// plus a detached "island" region holding stop 5, and stop 6 in no region.
func buildRegions(t *testing.T) *Network {
	t.Helper()
	n := New()
	stops := []struct {
		id StopID
		at geo.Coord
	}{
		{1, xy(0, 0)}, {2, xy(4, 1)}, {3, xy(-2, 8)}, {4, xy(10, -5)}, {5, xy(50, 50)}, {6, xy(7, 7)},
	}
	for _, s := range stops {
		require.NoError(t, n.AddStop(s.id, "stop", s.at))
	}
	for _, r := range []RegionID{"country", "north", "south", "harbour", "hills", "island"} {
		require.NoError(t, n.AddRegion(r, Name(r)))
	}
	require.NoError(t, n.AddSubregionToRegion("north", "country"))
	require.NoError(t, n.AddSubregionToRegion("south", "country"))
	require.NoError(t, n.AddSubregionToRegion("harbour", "north"))
	require.NoError(t, n.AddSubregionToRegion("hills", "north"))

	require.NoError(t, n.AddStopToRegion(1, "harbour"))
	require.NoError(t, n.AddStopToRegion(2, "harbour"))
	require.NoError(t, n.AddStopToRegion(3, "hills"))
	require.NoError(t, n.AddStopToRegion(4, "south"))
	require.NoError(t, n.AddStopToRegion(5, "island"))
	return n
}

func TestAddRegion(t *testing.T) {
	n := New()
	require.NoError(t, n.AddRegion("r", "Riverside"))
	assert.ErrorIs(t, n.AddRegion("r", "Other"), ErrRegionExists)

	name, ok := n.RegionName("r")
	assert.True(t, ok)
	assert.Equal(t, Name("Riverside"), name)

	name, ok = n.RegionName("nope")
	assert.False(t, ok)
	assert.Equal(t, NoName, name)

	require.NoError(t, n.AddRegion("a", "A"))
	assert.Equal(t, []RegionID{"r", "a"}, n.AllRegions())
}

func TestAddStopToRegionErrors(t *testing.T) {
	n := buildRegions(t)

	tests := []struct {
		name   string
		stop   StopID
		region RegionID
		want   error
	}{
		{"unknown stop", 99, "north", ErrStopNotFound},
		{"unknown stop and region", 99, "nowhere", ErrStopNotFound},
		{"unknown region", 6, "nowhere", ErrRegionNotFound},
		{"already attached", 1, "south", ErrStopAttached},
		{"already attached, unknown region", 1, "nowhere", ErrRegionNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, n.AddStopToRegion(tt.stop, tt.region), tt.want)
		})
	}

	regions, _ := n.StopRegions(1)
	assert.Equal(t, RegionID("harbour"), regions[0], "failed attach must not move the stop")
}

func TestAddSubregionErrors(t *testing.T) {
	n := buildRegions(t)

	assert.ErrorIs(t, n.AddSubregionToRegion("nope", "country"), ErrRegionNotFound)
	assert.ErrorIs(t, n.AddSubregionToRegion("island", "nope"), ErrRegionNotFound)
	assert.ErrorIs(t, n.AddSubregionToRegion("north", "island"), ErrRegionAttached)

	// country is the root; making it a child of its own descendant is refused.
	assert.ErrorIs(t, n.AddSubregionToRegion("country", "hills"), ErrRegionCycle)
	assert.ErrorIs(t, n.AddSubregionToRegion("country", "country"), ErrRegionCycle)

	// A separate tree can still be attached.
	require.NoError(t, n.AddSubregionToRegion("island", "hills"))
	subs, _ := n.Subregions("north")
	assert.Equal(t, []RegionID{"harbour", "hills", "island"}, subs)
}

func TestStopRegions(t *testing.T) {
	n := buildRegions(t)

	tests := []struct {
		stop   StopID
		want   []RegionID
		wantOK bool
	}{
		{1, []RegionID{"harbour", "north", "country", NoRegion}, true},
		{3, []RegionID{"hills", "north", "country", NoRegion}, true},
		{4, []RegionID{"south", "country", NoRegion}, true},
		{5, []RegionID{"island", NoRegion}, true},
		{6, []RegionID{NoRegion}, true},
		{99, []RegionID{NoRegion}, false},
	}
	for _, tt := range tests {
		got, ok := n.StopRegions(tt.stop)
		if ok != tt.wantOK {
			t.Errorf("StopRegions(%d) ok = %v, want %v", tt.stop, ok, tt.wantOK)
		}
		assert.Equal(t, tt.want, got, "StopRegions(%d)", tt.stop)
	}
}

func TestSubregionsPreOrder(t *testing.T) {
	n := buildRegions(t)

	subs, ok := n.Subregions("country")
	assert.True(t, ok)
	assert.Equal(t, []RegionID{"north", "harbour", "hills", "south"}, subs)

	subs, ok = n.Subregions("hills")
	assert.True(t, ok)
	assert.Empty(t, subs)

	_, ok = n.Subregions("nope")
	assert.False(t, ok)
}

func TestRegionStops(t *testing.T) {
	n := buildRegions(t)

	stops, ok := n.RegionStops("country")
	assert.True(t, ok)
	assert.Equal(t, []StopID{1, 2, 3, 4}, stops)

	stops, _ = n.RegionStops("north")
	assert.Equal(t, []StopID{1, 2, 3}, stops)

	_, ok = n.RegionStops("nope")
	assert.False(t, ok)
}

func TestRegionBoundingBox(t *testing.T) {
	n := buildRegions(t)

	box, ok := n.RegionBoundingBox("north")
	assert.True(t, ok)
	assert.Equal(t, geo.BBox{Min: xy(-2, 0), Max: xy(4, 8)}, box)

	box, ok = n.RegionBoundingBox("country")
	assert.True(t, ok)
	assert.Equal(t, geo.BBox{Min: xy(-2, -5), Max: xy(10, 8)}, box)

	require.NoError(t, n.AddRegion("empty", "Empty"))
	box, ok = n.RegionBoundingBox("empty")
	assert.False(t, ok)
	assert.Equal(t, geo.NoBBox, box)

	_, ok = n.RegionBoundingBox("nope")
	assert.False(t, ok)
}

func TestStopsCommonRegion(t *testing.T) {
	n := buildRegions(t)

	tests := []struct {
		name   string
		a, b   StopID
		want   RegionID
		wantOK bool
	}{
		{"same region", 1, 2, "harbour", true},
		{"siblings", 1, 3, "north", true},
		{"cousins", 2, 4, "country", true},
		{"same stop", 3, 3, "hills", true},
		{"separate trees", 1, 5, NoRegion, false},
		{"one unattached", 1, 6, NoRegion, false},
		{"unknown stop", 1, 99, NoRegion, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := n.StopsCommonRegion(tt.a, tt.b)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegionForest(t *testing.T) {
	f := newRegionForest()
	for _, r := range []RegionID{"a", "b", "c"} {
		f.add(r)
	}
	f.add("a")
	assert.Len(t, f.parent, 3)

	assert.False(t, f.connected("a", "b"))
	assert.True(t, f.union("a", "b"))
	assert.False(t, f.union("b", "a"))
	assert.True(t, f.connected("a", "b"))
	assert.False(t, f.connected("a", "c"))
	assert.False(t, f.connected("a", "missing"))

	f.reset()
	assert.False(t, f.connected("a", "b"))
}
