package model

import (
	"time"

	"github.com/google/uuid"
)

// ConcernSnapshot rows are append-only. There is deliberately no updated_at
// and no soft delete: snapshots survive concern deletion for audit.
type ConcernSnapshot struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ConcernId uuid.UUID `gorm:"type:uuid;not null;index"`
	Content   string    `gorm:"type:text;not null"`
	Reason    string    `gorm:"type:varchar(32);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ConcernSnapshot) TableName() string {
	return "concern_snapshots"
}
