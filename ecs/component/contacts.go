package component

// Contacts stores the collision outcome of the entity's last physics step.
type Contacts struct {
	Grounded bool
	// Wall: -1 = left, 0 = none, 1 = right
	Wall     int
	HeadBump bool
	Residual bool
	Hazard   bool
	// AirFrames counts steps since the entity was last grounded.
	AirFrames int
}

var ContactsComponent = NewComponent[Contacts]()
