package tilemap

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultTileSize is used when a level file does not specify tile_size.
const DefaultTileSize = 32

const (
	tileEmpty = 0
	tileSolid = 1
	tileSpike = 2
)

// Level represents a tile map stored as JSON.
type Level struct {
	Width    int `json:"width"`
	Height   int `json:"height"`
	TileSize int `json:"tile_size,omitempty"`
	// Layers is a slice of flat row-major arrays of length Width*Height.
	Layers [][]int `json:"layers,omitempty"`
	// LayerMeta marks which layers take part in collision.
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`

	// player spawn in tile coordinates
	SpawnX int `json:"spawn_x,omitempty"`
	SpawnY int `json:"spawn_y,omitempty"`
}

type LayerMeta struct {
	HasPhysics bool   `json:"has_physics"`
	Color      string `json:"color,omitempty"`
}

// LoadLevel loads a level from a JSON file at path.
func LoadLevel(path string) (*Level, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tilemap: read level %s: %w", path, err)
	}
	return ParseLevel(b)
}

// LoadLevelFromFS loads a level JSON from an fs.FS (e.g. embedded levels).
func LoadLevelFromFS(fsys fs.FS, name string) (*Level, error) {
	clean := strings.TrimPrefix(filepath.ToSlash(name), "levels/")
	if filepath.Ext(clean) == "" {
		clean += ".json"
	}
	b, err := fs.ReadFile(fsys, clean)
	if err != nil {
		return nil, fmt.Errorf("tilemap: read level %s: %w", clean, err)
	}
	return ParseLevel(b)
}

// ParseLevel decodes and validates level JSON.
func ParseLevel(b []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(b, &lvl); err != nil {
		return nil, fmt.Errorf("tilemap: unmarshal level: %w", err)
	}
	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, lvl.Width, lvl.Height)
	}
	if lvl.TileSize == 0 {
		lvl.TileSize = DefaultTileSize
	}
	if lvl.TileSize < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCellSize, lvl.TileSize)
	}
	for i, layer := range lvl.Layers {
		if len(layer) != lvl.Width*lvl.Height {
			return nil, fmt.Errorf("%w: layer %d has %d tiles, want %d", ErrDimensionMismatch, i, len(layer), lvl.Width*lvl.Height)
		}
	}
	return &lvl, nil
}

// hasPhysics reports whether a layer collides. Levels without layer
// metadata treat every layer as physical.
func (l *Level) hasPhysics(layer int) bool {
	if len(l.LayerMeta) == 0 {
		return true
	}
	return layer < len(l.LayerMeta) && l.LayerMeta[layer].HasPhysics
}

// Grid builds the collision grid. Spike tiles are hazards on any layer; other
// non-empty tiles are solid on physics layers.
func (l *Level) Grid() (*Grid, error) {
	g, err := NewEmpty(l.TileSize, l.Width, l.Height)
	if err != nil {
		return nil, err
	}
	for i, layer := range l.Layers {
		physics := l.hasPhysics(i)
		for idx, v := range layer {
			col, row := idx%l.Width, idx/l.Width
			switch {
			case v == tileEmpty:
			case v == tileSpike:
				g.hazard[row][col] = true
			case physics:
				g.solid[row][col] = true
			}
		}
	}
	return g, nil
}

// Spawn returns the spawn position in world units (top-left of the spawn
// cell). An out-of-bounds spawn is clamped to the origin cell.
func (l *Level) Spawn() (x, y float64) {
	sx, sy := l.SpawnX, l.SpawnY
	if sx < 0 || sx >= l.Width {
		sx = 0
	}
	if sy < 0 || sy >= l.Height {
		sy = 0
	}
	return float64(sx * l.TileSize), float64(sy * l.TileSize)
}
