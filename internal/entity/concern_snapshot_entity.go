package entity

import (
	"time"

	"github.com/google/uuid"
)

// SnapshotReason records what triggered a snapshot.
type SnapshotReason string

const (
	SnapshotAutoUpdate SnapshotReason = "auto_update"
	SnapshotUserEdit   SnapshotReason = "user_edit"
)

// ConcernSnapshot is an immutable copy of a concern's content taken at the
// moment of a meaningful update. Append-only: snapshots are never mutated
// or deleted, and they are retained even after the owning concern is
// deleted (audit trail).
type ConcernSnapshot struct {
	Id        uuid.UUID
	ConcernId uuid.UUID
	Content   string
	Reason    SnapshotReason
	CreatedAt time.Time
}
