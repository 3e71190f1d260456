package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventTypeHeight    = "height"
	EventTypeCollision = "collision"
)

// HeightEventKind identifies height state changes.
type HeightEventKind string

const (
	HeightEventJumpStarted   HeightEventKind = "jump_started"
	HeightEventLanded        HeightEventKind = "landed"
	HeightEventTargetChanged HeightEventKind = "target_changed"
)

// HeightEvent is emitted when a player's height state changes.
type HeightEvent struct {
	Entity    Entity
	Kind      HeightEventKind
	Effective float64
	Target    float64
}

// CollisionEventKind identifies traversal gate outcomes.
type CollisionEventKind string

const (
	CollisionEventBlocked  CollisionEventKind = "blocked"
	CollisionEventPassOver CollisionEventKind = "pass_over"
)

// CollisionEvent is emitted when the gate decision for a player/obstacle
// contact changes.
type CollisionEvent struct {
	Entity    Entity
	Obstacle  Entity
	Kind      CollisionEventKind
	Effective float64
	Height    float64
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

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
