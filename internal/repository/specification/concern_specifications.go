package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByStatuses filters concerns by lifecycle status.
type ByStatuses struct {
	Statuses []string
}

func (s ByStatuses) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status IN ?", s.Statuses)
}

// ByConcernID filters snapshots by owning concern.
type ByConcernID struct {
	ConcernID uuid.UUID
}

func (s ByConcernID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("concern_id = ?", s.ConcernID)
}

// ByConversationRef filters patients by their chat-channel handle.
type ByConversationRef struct {
	ConversationRef string
}

func (s ByConversationRef) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("conversation_ref = ?", s.ConversationRef)
}
