package component

// RespawnRequest marks an entity to be moved back to its SafeRespawn
// position. RespawnSystem handles it after physics and hazards have run.
type RespawnRequest struct {
	Reason string
}

var RespawnRequestComponent = NewComponent[RespawnRequest]()
