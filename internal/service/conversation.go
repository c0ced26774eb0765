package service

import (
	"sync"
	"time"

	"catalogbot/internal/domain"
)

// ConversationStore keeps active dialogues in memory, keyed by chat id
type ConversationStore struct {
	mu    sync.RWMutex
	items map[int64]domain.Conversation
	now   func() time.Time
}

// NewConversationStore creates an empty store
func NewConversationStore() *ConversationStore {
	return &ConversationStore{
		items: make(map[int64]domain.Conversation),
		now:   time.Now,
	}
}

// Get returns the user's dialogue, or an inactive one
func (s *ConversationStore) Get(chatID int64) domain.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, exists := s.items[chatID]
	if !exists {
		return domain.Conversation{Step: domain.StepComplete}
	}
	return conv
}

// Set replaces the user's dialogue
func (s *ConversationStore) Set(chatID int64, step domain.Step, mode domain.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[chatID] = domain.Conversation{Step: step, Mode: mode, UpdatedAt: s.now()}
}

// Clear ends the user's dialogue
func (s *ConversationStore) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, chatID)
}

// Prune drops dialogues idle longer than maxIdle and returns how many were dropped
func (s *ConversationStore) Prune(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	pruned := 0
	for chatID, conv := range s.items {
		if conv.UpdatedAt.Before(cutoff) {
			delete(s.items, chatID)
			pruned++
		}
	}
	return pruned
}

// Len returns the number of active dialogues
func (s *ConversationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}
