// Package motion turns per-frame input into a velocity for a platformer
// actor: gravity, run acceleration, buffered/coyote jumps, jump cut, wall
// slide and wall jump, and dashing.
package motion

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilemotion/common"
)

// Events reports what happened during one Advance call.
type Events uint8

const (
	EventJumped Events = 1 << iota
	EventWallJumped
	EventJumpCut
	EventDashStarted
	EventDashEnded
)

func (e Events) Has(flag Events) bool {
	return e&flag != 0
}

// State is the movement state machine of one actor. Grounded and wall
// contact come from the collision resolver through SetContacts; everything
// else is driven by Advance.
type State struct {
	cfg Config

	velocity    cp.Vector
	grounded    bool
	wallDir     int
	wallSliding bool
	dashing     bool
	facing      int

	coyote           Timer
	jumpBuffer       Timer
	wallJumpCooldown Timer
	dashTime         Timer
	dashCooldown     Timer
}

// NewState validates cfg and returns an actor at rest facing right.
func NewState(cfg Config) (*State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &State{cfg: cfg, facing: 1}, nil
}

func (s *State) Config() Config { return s.cfg }

// SetConfig swaps the tunables without touching velocity or timers.
func (s *State) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.cfg = cfg
	return nil
}

func (s *State) Velocity() cp.Vector { return s.velocity }

// SetVelocity overwrites the velocity, typically with the resolver's
// corrected value.
func (s *State) SetVelocity(v cp.Vector) { s.velocity = v }

// SetContacts feeds the resolver's contact flags into the next Advance.
// wall is -1 (left), 0 or +1 (right).
func (s *State) SetContacts(grounded bool, wall int) {
	s.grounded = grounded
	s.wallDir = clampDir(wall)
}

func (s *State) Grounded() bool    { return s.grounded }
func (s *State) WallDir() int      { return s.wallDir }
func (s *State) WallSliding() bool { return s.wallSliding }
func (s *State) Dashing() bool     { return s.dashing }
func (s *State) Facing() int       { return s.facing }

// CanDash reports whether a dash press this frame would start a dash.
func (s *State) CanDash() bool {
	return !s.dashing && s.dashCooldown.Expired()
}

func (s *State) CoyoteRemaining() float64       { return s.coyote.Remaining() }
func (s *State) JumpBufferRemaining() float64   { return s.jumpBuffer.Remaining() }
func (s *State) DashRemaining() float64         { return s.dashTime.Remaining() }
func (s *State) DashCooldownRemaining() float64 { return s.dashCooldown.Remaining() }
func (s *State) WallJumpCooldownRemaining() float64 {
	return s.wallJumpCooldown.Remaining()
}

// Respawn clears velocity, flags and every timer.
func (s *State) Respawn() {
	cfg := s.cfg
	*s = State{cfg: cfg, facing: 1}
}

func (s *State) String() string {
	return fmt.Sprintf("vel=(%.2f,%.2f) grounded=%t wall=%d slide=%t dash=%t",
		s.velocity.X, s.velocity.Y, s.grounded, s.wallDir, s.wallSliding, s.dashing)
}

// Advance runs one simulation step of dt seconds. A non-positive or
// non-finite dt is ignored.
func (s *State) Advance(dt float64, in Input) Events {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return 0
	}
	in = in.Sanitize()
	var events Events

	if in.MoveX > common.Epsilon {
		s.facing = 1
	} else if in.MoveX < -common.Epsilon {
		s.facing = -1
	}

	// timers
	if s.grounded {
		s.coyote.Set(s.cfg.CoyoteTime)
	} else {
		s.coyote.Tick(dt)
	}
	if in.JumpPressed {
		s.jumpBuffer.Set(s.cfg.JumpBufferTime)
	} else {
		s.jumpBuffer.Tick(dt)
	}
	s.wallJumpCooldown.Tick(dt)
	s.dashCooldown.Tick(dt)

	if s.dashing {
		s.wallSliding = false
		s.dashTime.Tick(dt)
		if s.dashTime.Expired() {
			s.dashing = false
			s.velocity = s.velocity.Mult(0.5)
			events |= EventDashEnded
		}
	} else {
		s.applyGravity(dt, in)
		s.applyHorizontal(dt, in)
		events |= s.applyJump(in)
	}

	if in.DashPressed && s.CanDash() {
		s.startDash(in)
		events |= EventDashStarted
	}
	return events
}

func (s *State) applyGravity(dt float64, in Input) {
	s.velocity.Y = math.Min(s.velocity.Y+s.cfg.Gravity*dt, s.cfg.MaxFallSpeed)

	s.wallSliding = !s.grounded &&
		s.wallDir != 0 &&
		math.Abs(in.MoveX) > common.Epsilon &&
		int(common.Sign(in.MoveX)) == s.wallDir &&
		s.velocity.Y > 0
	if s.wallSliding {
		s.velocity.Y = math.Min(s.velocity.Y, s.cfg.WallSlideSpeed)
	}
}

func (s *State) applyHorizontal(dt float64, in Input) {
	// input is locked out while pushing off a wall
	if s.wallJumpCooldown.Active() {
		return
	}
	accel, friction := s.cfg.AirAccel, s.cfg.AirFriction
	if s.grounded {
		accel, friction = s.cfg.GroundAccel, s.cfg.GroundFriction
	}
	if math.Abs(in.MoveX) > common.Epsilon {
		target := common.Sign(in.MoveX) * s.cfg.MoveSpeed
		s.velocity.X = common.Approach(s.velocity.X, target, accel*dt)
		s.velocity.X = cp.Clamp(s.velocity.X, -s.cfg.MoveSpeed, s.cfg.MoveSpeed)
		return
	}
	s.velocity.X = common.Approach(s.velocity.X, 0, friction*dt)
}

func (s *State) applyJump(in Input) Events {
	var events Events
	switch {
	case s.wallSliding && in.JumpPressed && s.wallJumpCooldown.Expired():
		s.velocity = cp.Vector{
			X: -float64(s.wallDir) * s.cfg.WallJumpSpeedX,
			Y: -s.cfg.JumpSpeed * s.cfg.WallJumpLift,
		}
		s.facing = -s.wallDir
		s.wallSliding = false
		s.wallJumpCooldown.Set(s.cfg.WallJumpCooldown)
		s.coyote.Clear()
		s.jumpBuffer.Clear()
		events |= EventWallJumped
	case s.jumpBuffer.Active() && s.coyote.Active():
		s.velocity.Y = -s.cfg.JumpSpeed
		s.jumpBuffer.Clear()
		s.coyote.Clear()
		events |= EventJumped
	}

	// The cut applies once per release edge; the caller edge-detects, so a
	// release reported on consecutive frames is two releases. A release
	// that contradicts the held flag is ignored.
	released := in.JumpReleased && !in.JumpHeld
	if released && s.velocity.Y < 0 {
		s.velocity.Y *= s.cfg.JumpCut
		events |= EventJumpCut
	}
	return events
}

func (s *State) startDash(in Input) {
	dir := cp.Vector{X: common.Sign(in.MoveX)}
	if s.cfg.DashDiagonal {
		dir.Y = common.Sign(in.MoveY)
	}
	if dir.X == 0 && dir.Y == 0 {
		dir.X = float64(s.facing)
	}
	dir = dir.Normalize()

	s.velocity = dir.Mult(s.cfg.DashSpeed)
	s.dashing = true
	s.wallSliding = false
	s.dashTime.Set(s.cfg.DashDuration)
	s.dashCooldown.Set(s.cfg.DashCooldown)
}

func clampDir(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
