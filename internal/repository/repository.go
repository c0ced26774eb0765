package repository

import (
	"context"
	"time"

	"catalogbot/internal/domain"
)

// UserRepository defines user profile operations
type UserRepository interface {
	Upsert(ctx context.Context, chatID int64, displayName, username string) (*domain.User, bool, error)
	Get(ctx context.Context, chatID int64) (*domain.User, error)
	SetLanguage(ctx context.Context, chatID, languageID int64) error
	SetRealName(ctx context.Context, chatID int64, realName string) error
	SetPhone(ctx context.Context, chatID int64, phone string) error
	SetReferrer(ctx context.Context, chatID, referrerID int64) error
	Count(ctx context.Context) (int, error)
	CountJoinedSince(ctx context.Context, since time.Time) (int, error)
	ListChatIDs(ctx context.Context) ([]int64, error)
	ListAdminChatIDs(ctx context.Context) ([]int64, error)
}

// LanguageRepository defines language lookups
type LanguageRepository interface {
	List(ctx context.Context) ([]domain.Language, error)
	GetByID(ctx context.Context, id int64) (*domain.Language, error)
	GetByName(ctx context.Context, name string) (*domain.Language, error)
	GetDefault(ctx context.Context) (*domain.Language, error)
}

// CategoryRepository defines read access to the catalog tree.
// Names are resolved in languageID with the default language as fallback.
type CategoryRepository interface {
	ListRoot(ctx context.Context, languageID int64) ([]domain.Category, error)
	ListChildren(ctx context.Context, parentID, languageID int64) ([]domain.Category, error)
	Get(ctx context.Context, id, languageID int64) (*domain.Category, error)
}

// ItemRepository defines read access to items, ordered by id
type ItemRepository interface {
	ListByCategory(ctx context.Context, categoryID int64) ([]domain.Item, error)
	Get(ctx context.Context, categoryID, itemID int64) (*domain.Item, error)
	First(ctx context.Context, categoryID int64) (*domain.Item, error)
	After(ctx context.Context, categoryID, itemID int64) (*domain.Item, error)
	Before(ctx context.Context, categoryID, itemID int64) (*domain.Item, error)
	Entries(ctx context.Context, itemID, languageID int64) ([]domain.Entry, error)
	Covers(ctx context.Context, itemID int64) ([]domain.Cover, error)
}

// InfoRepository defines read access to info pages
type InfoRepository interface {
	List(ctx context.Context, languageID int64) ([]domain.InfoPage, error)
	Get(ctx context.Context, id, languageID int64) (*domain.InfoPage, error)
	Maps(ctx context.Context, infoID int64) ([]domain.MapPoint, error)
	Covers(ctx context.Context, infoID int64) ([]domain.Cover, error)
}

// MessageRepository defines localized template lookups
type MessageRepository interface {
	Get(ctx context.Context, name string, languageID int64) (string, bool, error)
}
