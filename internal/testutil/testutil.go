package testutil

import (
	"time"

	"catalogbot/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a fresh profile with nothing filled in
func NewTestUser(chatID int64) *domain.User {
	return &domain.User{
		ChatID:      chatID,
		DisplayName: "Test User",
		JoinedAt:    time.Now(),
	}
}

// NewOnboardedUser creates a profile with language, full name and phone set
func NewOnboardedUser(chatID, languageID int64) *domain.User {
	user := NewTestUser(chatID)
	name := "Jane Doe"
	phone := "+10000000000"
	user.LanguageID = &languageID
	user.RealName = &name
	user.Phone = &phone
	return user
}

// NewTestLanguage creates a language
func NewTestLanguage(id int64, name string, isDefault bool) *domain.Language {
	return &domain.Language{ID: id, Name: name, IsDefault: isDefault}
}

// NewTestCategory creates a category. A nil parent makes it a root category.
func NewTestCategory(id int64, parentID *int64, childCount int, hasModels bool) *domain.Category {
	return &domain.Category{
		ID:         id,
		ParentID:   parentID,
		HasModels:  hasModels,
		Name:       "Category",
		ChildCount: childCount,
	}
}

// Int64 returns a pointer to v
func Int64(v int64) *int64 {
	return &v
}
