package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

// CollisionEventKind identifies collision and movement event types.
type CollisionEventKind string

const (
	CollisionEventLanded     CollisionEventKind = "landed"
	CollisionEventLeftGround CollisionEventKind = "left_ground"
	CollisionEventWall       CollisionEventKind = "wall"
	CollisionEventHeadBump   CollisionEventKind = "head_bump"
	CollisionEventResidual   CollisionEventKind = "residual"
	CollisionEventHitHazard  CollisionEventKind = "hazard"
	CollisionEventRespawned  CollisionEventKind = "respawned"

	MotionEventJumped      CollisionEventKind = "jumped"
	MotionEventWallJumped  CollisionEventKind = "wall_jumped"
	MotionEventJumpCut     CollisionEventKind = "jump_cut"
	MotionEventDashStarted CollisionEventKind = "dash_started"
	MotionEventDashEnded   CollisionEventKind = "dash_ended"
)

// EventTypeCollision is the Event.Type used for CollisionEvent payloads.
const EventTypeCollision = "collision"

// CollisionEvent is emitted when an entity's contact or movement state
// changes.
type CollisionEvent struct {
	Entity Entity
	Kind   CollisionEventKind
	Frame  uint64
	X, Y   float64
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// PushCollision queues a CollisionEvent.
func (q *EventQueue) PushCollision(evt CollisionEvent) {
	q.Push(Event{Type: EventTypeCollision, Data: evt})
}

// Len reports the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Collisions drains the queue and returns only the collision events.
func (q *EventQueue) Collisions() []CollisionEvent {
	var out []CollisionEvent
	for _, evt := range q.Drain() {
		if ce, ok := evt.Data.(CollisionEvent); ok {
			out = append(out, ce)
		}
	}
	return out
}
