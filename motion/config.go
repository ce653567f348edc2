package motion

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidConfig = errors.New("motion: invalid config")

// Config holds the movement tunables. Speeds are world units per second,
// accelerations units per second squared, windows and cooldowns seconds.
type Config struct {
	Gravity      float64 `yaml:"gravity" toml:"gravity"`
	MaxFallSpeed float64 `yaml:"max_fall_speed" toml:"max_fall_speed"`

	MoveSpeed      float64 `yaml:"move_speed" toml:"move_speed"`
	GroundAccel    float64 `yaml:"ground_accel" toml:"ground_accel"`
	GroundFriction float64 `yaml:"ground_friction" toml:"ground_friction"`
	AirAccel       float64 `yaml:"air_accel" toml:"air_accel"`
	AirFriction    float64 `yaml:"air_friction" toml:"air_friction"`

	JumpSpeed      float64 `yaml:"jump_speed" toml:"jump_speed"`
	JumpCut        float64 `yaml:"jump_cut" toml:"jump_cut"`
	CoyoteTime     float64 `yaml:"coyote_time" toml:"coyote_time"`
	JumpBufferTime float64 `yaml:"jump_buffer_time" toml:"jump_buffer_time"`

	DashSpeed    float64 `yaml:"dash_speed" toml:"dash_speed"`
	DashDuration float64 `yaml:"dash_duration" toml:"dash_duration"`
	DashCooldown float64 `yaml:"dash_cooldown" toml:"dash_cooldown"`
	DashDiagonal bool    `yaml:"dash_diagonal" toml:"dash_diagonal"`

	WallSlideSpeed   float64 `yaml:"wall_slide_speed" toml:"wall_slide_speed"`
	WallJumpSpeedX   float64 `yaml:"wall_jump_speed_x" toml:"wall_jump_speed_x"`
	WallJumpLift     float64 `yaml:"wall_jump_lift" toml:"wall_jump_lift"`
	WallJumpCooldown float64 `yaml:"wall_jump_cooldown" toml:"wall_jump_cooldown"`
}

// DefaultConfig returns tuning for a 16px-tile platformer at 60 TPS.
func DefaultConfig() Config {
	return Config{
		Gravity:          1800,
		MaxFallSpeed:     600,
		MoveSpeed:        180,
		GroundAccel:      2400,
		GroundFriction:   2800,
		AirAccel:         1400,
		AirFriction:      600,
		JumpSpeed:        420,
		JumpCut:          0.5,
		CoyoteTime:       0.1,
		JumpBufferTime:   0.1,
		DashSpeed:        480,
		DashDuration:     0.15,
		DashCooldown:     0.5,
		DashDiagonal:     true,
		WallSlideSpeed:   90,
		WallJumpSpeedX:   220,
		WallJumpLift:     0.9,
		WallJumpCooldown: 0.15,
	}
}

// Validate rejects non-positive or non-finite tunables and a jump cut
// outside (0, 1].
func (c Config) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"gravity", c.Gravity},
		{"max_fall_speed", c.MaxFallSpeed},
		{"move_speed", c.MoveSpeed},
		{"ground_accel", c.GroundAccel},
		{"ground_friction", c.GroundFriction},
		{"air_accel", c.AirAccel},
		{"air_friction", c.AirFriction},
		{"jump_speed", c.JumpSpeed},
		{"jump_cut", c.JumpCut},
		{"coyote_time", c.CoyoteTime},
		{"jump_buffer_time", c.JumpBufferTime},
		{"dash_speed", c.DashSpeed},
		{"dash_duration", c.DashDuration},
		{"dash_cooldown", c.DashCooldown},
		{"wall_slide_speed", c.WallSlideSpeed},
		{"wall_jump_speed_x", c.WallJumpSpeedX},
		{"wall_jump_lift", c.WallJumpLift},
		{"wall_jump_cooldown", c.WallJumpCooldown},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, f.name, f.value)
		}
	}
	if c.JumpCut > 1 {
		return fmt.Errorf("%w: jump_cut must be in (0, 1], got %v", ErrInvalidConfig, c.JumpCut)
	}
	return nil
}
