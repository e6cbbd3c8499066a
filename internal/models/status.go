package models

// Status is the lifecycle state of an admin or user. Rows are never deleted;
// removal is a transition to StatusInactive.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}
