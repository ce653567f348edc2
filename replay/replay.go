// Package replay drives player input from a tengo script so a run can be
// reproduced frame for frame.
//
// A script is evaluated once per step with the global `frame` set to the
// step index. It assigns any of `move_x`, `move_y` (floats in [-1, 1]),
// `jump`, `dash` (held buttons) and `done`. Outputs are reset before every
// step, so a script only writes what is held on that frame.
package replay

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/tilemotion/motion"
	"github.com/milk9111/tilemotion/prefabs"
)

var outputs = []struct {
	name string
	zero any
}{
	{"move_x", 0.0},
	{"move_y", 0.0},
	{"jump", false},
	{"dash", false},
	{"done", false},
}

// Source is a scripted system.InputSource.
type Source struct {
	name     string
	compiled *tengo.Compiled

	frame    int
	prevJump bool
	prevDash bool
	done     bool
	err      error
}

// Compile builds a Source from script text. name is used in errors only.
func Compile(name string, src []byte) (*Source, error) {
	script := tengo.NewScript(src)
	_ = script.Add("frame", 0)
	for _, out := range outputs {
		_ = script.Add(out.name, out.zero)
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("replay: compile %s: %w", name, err)
	}
	return &Source{name: name, compiled: compiled}, nil
}

// Load compiles a script from prefabs/scripts.
func Load(name string) (*Source, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("replay: load %s: %w", name, err)
	}
	return Compile(name, src)
}

func (s *Source) Name() string { return s.name }

// Frame is the index of the next step to be polled.
func (s *Source) Frame() int { return s.frame }

// Done reports whether the script has set `done`.
func (s *Source) Done() bool { return s.done }

// Err returns the first runtime error. Polling stops producing input once
// the script has failed.
func (s *Source) Err() error { return s.err }

// Reset rewinds to frame 0.
func (s *Source) Reset() {
	s.frame = 0
	s.prevJump, s.prevDash = false, false
	s.done = false
	s.err = nil
}

// Poll evaluates the script for the current frame and turns held buttons
// into press and release edges.
func (s *Source) Poll() motion.Input {
	held, err := s.eval()
	if err != nil {
		if s.err == nil {
			log.Printf("replay: %s frame %d: %v", s.name, s.frame, err)
		}
		s.err = err
		held = heldState{}
	}
	s.frame++

	in := motion.Input{
		MoveX:        held.moveX,
		MoveY:        held.moveY,
		JumpHeld:     held.jump,
		JumpPressed:  held.jump && !s.prevJump,
		JumpReleased: !held.jump && s.prevJump,
		DashPressed:  held.dash && !s.prevDash,
	}
	s.prevJump, s.prevDash = held.jump, held.dash
	return in
}

type heldState struct {
	moveX, moveY float64
	jump, dash   bool
}

func (s *Source) eval() (heldState, error) {
	if s.err != nil {
		return heldState{}, s.err
	}
	if err := s.compiled.Set("frame", s.frame); err != nil {
		return heldState{}, err
	}
	for _, out := range outputs {
		if err := s.compiled.Set(out.name, out.zero); err != nil {
			return heldState{}, err
		}
	}
	if err := s.compiled.Run(); err != nil {
		return heldState{}, err
	}
	s.done = s.compiled.Get("done").Bool()
	return heldState{
		moveX: s.compiled.Get("move_x").Float(),
		moveY: s.compiled.Get("move_y").Float(),
		jump:  s.compiled.Get("jump").Bool(),
		dash:  s.compiled.Get("dash").Bool(),
	}, nil
}
