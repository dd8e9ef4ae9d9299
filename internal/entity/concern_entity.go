package entity

import (
	"time"

	"github.com/google/uuid"
)

// ConcernStatus is the lifecycle stage of a tracked health topic.
// Transitions go active -> improving -> resolved (active may jump straight
// to resolved); a resolved concern is never re-activated — a new mention of
// the topic creates a fresh concern.
type ConcernStatus string

const (
	ConcernActive    ConcernStatus = "active"
	ConcernImproving ConcernStatus = "improving"
	ConcernResolved  ConcernStatus = "resolved"
)

// Concern is a single tracked health topic for a user, with its own
// evolving summary. For one user no two active concerns may fuzzy-match
// each other; uniqueness is enforced by matching, not exact title equality.
type Concern struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	Title          string
	Status         ConcernStatus
	SummaryContent *string
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

// IsOpen reports whether the concern still appears in active listings and
// the legacy aggregate.
func (c *Concern) IsOpen() bool {
	return c.Status == ConcernActive || c.Status == ConcernImproving
}

// CanTransitionTo validates the status state machine.
func (c *Concern) CanTransitionTo(next ConcernStatus) bool {
	switch c.Status {
	case ConcernActive:
		return next == ConcernImproving || next == ConcernResolved
	case ConcernImproving:
		return next == ConcernResolved
	default:
		return false
	}
}
