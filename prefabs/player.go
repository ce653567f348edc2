package prefabs

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/milk9111/tilemotion/collision"
	"github.com/milk9111/tilemotion/motion"
	"gopkg.in/yaml.v3"
)

const PlayerPrefab = "player.yaml"

var ErrInvalidCollider = errors.New("prefabs: collider must have positive size")

// PlayerSpec is the tunable description of the player actor.
type PlayerSpec struct {
	Name     string             `yaml:"name" toml:"name"`
	Color    YAMLColor          `yaml:"color" toml:"color"`
	Collider ColliderSpec       `yaml:"collider" toml:"collider"`
	Motion   motion.Config      `yaml:"motion" toml:"motion"`
	Resolver collision.Resolver `yaml:"resolver" toml:"resolver"`
}

func DefaultPlayerSpec() PlayerSpec {
	return PlayerSpec{
		Name:     "player",
		Color:    YAMLColor{Color: color.NRGBA{R: 0x4f, G: 0xc3, B: 0xf7, A: 0xff}},
		Collider: ColliderSpec{Width: 16, Height: 24},
		Motion:   motion.DefaultConfig(),
		Resolver: collision.DefaultResolver(),
	}
}

// LoadPlayerSpec loads a player prefab on top of DefaultPlayerSpec. An empty
// name loads player.yaml.
func LoadPlayerSpec(name string) (*PlayerSpec, error) {
	if name == "" {
		name = PlayerPrefab
	}
	spec := DefaultPlayerSpec()
	if err := LoadInto(name, &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s PlayerSpec) MotionConfig() motion.Config { return s.Motion }

func (s PlayerSpec) ResolverConfig() collision.Resolver { return s.Resolver }

// Validate checks every section against the grid the player will run in.
func (s PlayerSpec) Validate(cellSize int) error {
	if !(s.Collider.Width > 0) || !(s.Collider.Height > 0) {
		return fmt.Errorf("%w: %vx%v", ErrInvalidCollider, s.Collider.Width, s.Collider.Height)
	}
	if err := s.Motion.Validate(); err != nil {
		return fmt.Errorf("prefabs: player %s: %w", s.Name, err)
	}
	if err := s.Resolver.Validate(cellSize); err != nil {
		return fmt.Errorf("prefabs: player %s: %w", s.Name, err)
	}
	return nil
}

// EncodeYAML renders the spec in prefab form.
func (s PlayerSpec) EncodeYAML() ([]byte, error) {
	return yaml.Marshal(s)
}
