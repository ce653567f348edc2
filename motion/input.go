package motion

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilemotion/common"
)

// Input is one frame of player intent. Button fields are edges detected by
// the caller: JumpPressed and DashPressed are true only on the frame the
// button goes down, JumpReleased only on the frame it comes up.
type Input struct {
	MoveX        float64
	MoveY        float64
	JumpPressed  bool
	JumpReleased bool
	JumpHeld     bool
	DashPressed  bool
}

// Sanitize clamps the axes to [-1, 1] and replaces non-finite values with 0.
func (in Input) Sanitize() Input {
	in.MoveX = sanitizeAxis(in.MoveX)
	in.MoveY = sanitizeAxis(in.MoveY)
	return in
}

func sanitizeAxis(v float64) float64 {
	if !common.Finite(v) {
		return 0
	}
	return cp.Clamp(v, -1, 1)
}
