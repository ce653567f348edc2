package motion

const timerEpsilon = 1e-9

// Timer is a countdown in seconds that floors at zero.
type Timer struct {
	remaining float64
}

// Set restarts the countdown at d seconds.
func (t *Timer) Set(d float64) {
	if d < 0 {
		d = 0
	}
	t.remaining = d
}

// Clear stops the countdown.
func (t *Timer) Clear() {
	t.remaining = 0
}

// Tick advances the countdown by dt seconds.
func (t *Timer) Tick(dt float64) {
	t.remaining -= dt
	if t.remaining < timerEpsilon {
		t.remaining = 0
	}
}

func (t Timer) Remaining() float64 {
	return t.remaining
}

// Active reports whether time is left on the countdown.
func (t Timer) Active() bool {
	return t.remaining > 0
}

// Expired reports whether the countdown has run out.
func (t Timer) Expired() bool {
	return !t.Active()
}
