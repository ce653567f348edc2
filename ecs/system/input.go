package system

import (
	"github.com/milk9111/tilemotion/ecs"
	"github.com/milk9111/tilemotion/ecs/component"
	"github.com/milk9111/tilemotion/motion"
)

// InputSource produces one frame of player input. Sources that edge-detect
// held buttons must be polled exactly once per step.
type InputSource interface {
	Poll() motion.Input
}

// InputFunc adapts a function to InputSource.
type InputFunc func() motion.Input

func (f InputFunc) Poll() motion.Input { return f() }

type InputSystem struct {
	source InputSource
}

func NewInputSystem(source InputSource) *InputSystem {
	return &InputSystem{source: source}
}

// SetSource swaps the input source, e.g. from keyboard to a replay script.
func (i *InputSystem) SetSource(source InputSource) {
	if i == nil {
		return
	}
	i.source = source
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil {
		return
	}

	var in motion.Input
	if i.source != nil {
		in = i.source.Poll().Sanitize()
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *motion.Input) {
		*input = in
	})
}
