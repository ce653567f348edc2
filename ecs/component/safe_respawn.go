package component

// SafeRespawn stores the last grounded position that was clear of hazards.
type SafeRespawn struct {
	X           float64
	Y           float64
	Initialized bool
}

var SafeRespawnComponent = NewComponent[SafeRespawn]()
