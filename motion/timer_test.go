package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimer(t *testing.T) {
	var tm Timer
	assert.True(t, tm.Expired())

	tm.Set(0.25)
	assert.True(t, tm.Active())
	tm.Tick(0.125)
	assert.Equal(t, 0.125, tm.Remaining())
	tm.Tick(0.5)
	assert.Zero(t, tm.Remaining(), "floors at zero")
	assert.True(t, tm.Expired())

	tm.Set(-1)
	assert.True(t, tm.Expired())

	tm.Set(1)
	tm.Clear()
	assert.True(t, tm.Expired())
}

func TestTimerAbsorbsRoundingResidue(t *testing.T) {
	var tm Timer
	tm.Set(0.1)
	for i := 0; i < 6; i++ {
		tm.Tick(1.0 / 60)
	}
	assert.True(t, tm.Expired(), "six 60Hz frames exhaust a 0.1s window")
}
