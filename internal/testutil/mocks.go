package testutil

import (
	"context"
	"time"

	"catalogbot/internal/domain"

	"github.com/stretchr/testify/mock"
	tele "gopkg.in/telebot.v3"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Upsert(ctx context.Context, chatID int64, displayName, username string) (*domain.User, bool, error) {
	args := m.Called(ctx, chatID, displayName, username)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.User), args.Bool(1), args.Error(2)
}

func (m *MockUserRepository) Get(ctx context.Context, chatID int64) (*domain.User, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SetLanguage(ctx context.Context, chatID, languageID int64) error {
	args := m.Called(ctx, chatID, languageID)
	return args.Error(0)
}

func (m *MockUserRepository) SetRealName(ctx context.Context, chatID int64, realName string) error {
	args := m.Called(ctx, chatID, realName)
	return args.Error(0)
}

func (m *MockUserRepository) SetPhone(ctx context.Context, chatID int64, phone string) error {
	args := m.Called(ctx, chatID, phone)
	return args.Error(0)
}

func (m *MockUserRepository) SetReferrer(ctx context.Context, chatID, referrerID int64) error {
	args := m.Called(ctx, chatID, referrerID)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) CountJoinedSince(ctx context.Context, since time.Time) (int, error) {
	args := m.Called(ctx, since)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) ListChatIDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockUserRepository) ListAdminChatIDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// MockLanguageRepository is a mock for LanguageRepository
type MockLanguageRepository struct {
	mock.Mock
}

func (m *MockLanguageRepository) List(ctx context.Context) ([]domain.Language, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Language), args.Error(1)
}

func (m *MockLanguageRepository) GetByID(ctx context.Context, id int64) (*domain.Language, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Language), args.Error(1)
}

func (m *MockLanguageRepository) GetByName(ctx context.Context, name string) (*domain.Language, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Language), args.Error(1)
}

func (m *MockLanguageRepository) GetDefault(ctx context.Context) (*domain.Language, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Language), args.Error(1)
}

// MockCategoryRepository is a mock for CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) ListRoot(ctx context.Context, languageID int64) ([]domain.Category, error) {
	args := m.Called(ctx, languageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListChildren(ctx context.Context, parentID, languageID int64) ([]domain.Category, error) {
	args := m.Called(ctx, parentID, languageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) Get(ctx context.Context, id, languageID int64) (*domain.Category, error) {
	args := m.Called(ctx, id, languageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

// MockItemRepository is a mock for ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) ListByCategory(ctx context.Context, categoryID int64) ([]domain.Item, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemRepository) Get(ctx context.Context, categoryID, itemID int64) (*domain.Item, error) {
	return m.item(m.Called(ctx, categoryID, itemID))
}

func (m *MockItemRepository) First(ctx context.Context, categoryID int64) (*domain.Item, error) {
	return m.item(m.Called(ctx, categoryID))
}

func (m *MockItemRepository) After(ctx context.Context, categoryID, itemID int64) (*domain.Item, error) {
	return m.item(m.Called(ctx, categoryID, itemID))
}

func (m *MockItemRepository) Before(ctx context.Context, categoryID, itemID int64) (*domain.Item, error) {
	return m.item(m.Called(ctx, categoryID, itemID))
}

func (m *MockItemRepository) Entries(ctx context.Context, itemID, languageID int64) ([]domain.Entry, error) {
	args := m.Called(ctx, itemID, languageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockItemRepository) Covers(ctx context.Context, itemID int64) ([]domain.Cover, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Cover), args.Error(1)
}

func (m *MockItemRepository) item(args mock.Arguments) (*domain.Item, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

// MockInfoRepository is a mock for InfoRepository
type MockInfoRepository struct {
	mock.Mock
}

func (m *MockInfoRepository) List(ctx context.Context, languageID int64) ([]domain.InfoPage, error) {
	args := m.Called(ctx, languageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InfoPage), args.Error(1)
}

func (m *MockInfoRepository) Get(ctx context.Context, id, languageID int64) (*domain.InfoPage, error) {
	args := m.Called(ctx, id, languageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InfoPage), args.Error(1)
}

func (m *MockInfoRepository) Maps(ctx context.Context, infoID int64) ([]domain.MapPoint, error) {
	args := m.Called(ctx, infoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MapPoint), args.Error(1)
}

func (m *MockInfoRepository) Covers(ctx context.Context, infoID int64) ([]domain.Cover, error) {
	args := m.Called(ctx, infoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Cover), args.Error(1)
}

// MockMessageRepository is a mock for MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Get(ctx context.Context, name string, languageID int64) (string, bool, error) {
	args := m.Called(ctx, name, languageID)
	return args.String(0), args.Bool(1), args.Error(2)
}

// MockTransport is a mock for the outbound chat transport
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) SendText(chatID int64, text string, markup *tele.ReplyMarkup) error {
	args := m.Called(chatID, text, markup)
	return args.Error(0)
}

func (m *MockTransport) SendPhotoGroup(chatID int64, refs []string) error {
	args := m.Called(chatID, refs)
	return args.Error(0)
}

func (m *MockTransport) SendLocation(chatID int64, lat, long float64) error {
	args := m.Called(chatID, lat, long)
	return args.Error(0)
}

func (m *MockTransport) AnswerCallback(callbackID string) error {
	args := m.Called(callbackID)
	return args.Error(0)
}
