package segment

// CreatedEvent fires after a creation cascade commits. Result is the
// re-read root of the cascade, not its materialized counterparts.
type CreatedEvent struct {
	Result Segment
}

func NewCreatedEvent(result Segment) *CreatedEvent {
	return &CreatedEvent{Result: result}
}

// UpdatedEvent fires after an update (and any child propagation) commits.
type UpdatedEvent struct {
	Old    Segment
	Result Segment
}

func NewUpdatedEvent(old, result Segment) *UpdatedEvent {
	return &UpdatedEvent{Old: old, Result: result}
}
