package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// ConversationState caches what the webhook layer needs between messages of
// a live exchange, keyed by conversation ref, so the hot path skips a
// patient lookup per inbound message.
type ConversationState struct {
	UserID          string `json:"user_id"`
	ConversationRef string `json:"conversation_ref"`
	Language        string `json:"language"`
	FullName        string `json:"full_name"`
}

type ConversationRepository struct {
	cache *cache.Cache
}

func NewConversationRepository() *ConversationRepository {
	// Entries expire after an hour of silence; expired items are purged
	// every 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &ConversationRepository{
		cache: c,
	}
}

func (r *ConversationRepository) Save(state *ConversationState) {
	r.cache.Set(state.ConversationRef, state, cache.DefaultExpiration)
}

func (r *ConversationRepository) Get(conversationRef string) (*ConversationState, bool) {
	if x, found := r.cache.Get(conversationRef); found {
		return x.(*ConversationState), true
	}
	return nil, false
}

func (r *ConversationRepository) Delete(conversationRef string) {
	r.cache.Delete(conversationRef)
}
