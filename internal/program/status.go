package program

import "slices"

type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
	StatusReverted Status = "reverted"
)

var statuses = []Status{
	StatusActive,
	StatusArchived,
	StatusReverted,
}

func (s Status) IsValid() bool {
	return slices.Contains(statuses, s)
}

// CanTransitionTo is the program lifecycle in one place. A program
// starts out active. Regeneration archives it, a revert marks it
// reverted and restores the archived predecessor. Reverted is
// terminal, such a program can only be replaced by a fresh
// regeneration, never resurrected.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusActive:
		return next == StatusArchived || next == StatusReverted
	case StatusArchived:
		return next == StatusActive
	default:
		return false
	}
}
