package tilemap

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLevel = `{
	"width": 3,
	"height": 2,
	"tile_size": 16,
	"layers": [
		[0, 0, 5,
		 1, 2, 1],
		[1, 0, 0,
		 0, 0, 0]
	],
	"layer_meta": [
		{"has_physics": true, "color": "#3c78ff"},
		{"has_physics": false}
	],
	"spawn_x": 1,
	"spawn_y": 0
}`

func TestLevelGrid(t *testing.T) {
	lvl, err := ParseLevel([]byte(testLevel))
	require.NoError(t, err)

	g, err := lvl.Grid()
	require.NoError(t, err)
	assert.Equal(t, "..#\n#^#", g.String(), "decor layer tiles are not solid, spikes are hazards")
	assert.Equal(t, 16, g.CellSize())

	x, y := lvl.Spawn()
	assert.Equal(t, 16.0, x)
	assert.Equal(t, 0.0, y)
}

func TestParseLevelErrors(t *testing.T) {
	cases := []struct {
		name    string
		json    string
		wantErr error
	}{
		{"zero_width", `{"width":0,"height":2}`, ErrInvalidDimensions},
		{"negative_tile", `{"width":1,"height":1,"tile_size":-4}`, ErrInvalidCellSize},
		{"short_layer", `{"width":2,"height":2,"layers":[[0,0,0]]}`, ErrDimensionMismatch},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseLevel([]byte(c.json))
			require.ErrorIs(t, err, c.wantErr)
		})
	}

	_, err := ParseLevel([]byte(`{`))
	require.Error(t, err)
}

func TestLevelDefaultsAndSpawnClamp(t *testing.T) {
	lvl, err := ParseLevel([]byte(`{"width":2,"height":2,"layers":[[1,0,0,0]],"spawn_x":9,"spawn_y":-1}`))
	require.NoError(t, err)
	assert.Equal(t, DefaultTileSize, lvl.TileSize)

	g, err := lvl.Grid()
	require.NoError(t, err)
	assert.True(t, g.IsSolid(0, 0), "levels without layer_meta collide on every layer")

	x, y := lvl.Spawn()
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestLoadLevelFromFS(t *testing.T) {
	fsys := fstest.MapFS{"room.json": {Data: []byte(testLevel)}}
	lvl, err := LoadLevelFromFS(fsys, "levels/room")
	require.NoError(t, err)
	assert.Equal(t, 3, lvl.Width)

	_, err = LoadLevelFromFS(fsys, "missing.json")
	require.Error(t, err)
}
