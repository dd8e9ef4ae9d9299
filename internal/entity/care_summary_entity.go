package entity

import (
	"time"

	"github.com/google/uuid"
)

// CareSummary is the legacy per-user aggregate: one materialized text blob
// combining every open concern's summary, kept for backward-compatible
// consumers. It is recomputed from the concern set after every mutation and
// never edited independently.
type CareSummary struct {
	UserId    uuid.UUID
	Content   string
	UpdatedAt time.Time
}
