package middleware

import (
	"errors"
	"testing"

	"catalogbot/internal/domain"
	"catalogbot/internal/service"
	"catalogbot/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

func newContext(t *testing.T, upd tele.Update) tele.Context {
	t.Helper()
	bot, err := tele.NewBot(tele.Settings{Offline: true})
	require.NoError(t, err)
	return bot.NewContext(upd)
}

func messageFrom(id int64) tele.Update {
	return tele.Update{
		ID: 100,
		Message: &tele.Message{
			Sender: &tele.User{ID: id, FirstName: "Jane", LastName: "Doe", Username: "jane"},
			Chat:   &tele.Chat{ID: id},
			Text:   "hello",
		},
	}
}

func TestInjectUser(t *testing.T) {
	tests := []struct {
		name        string
		created     bool
		mockError   error
		expectNext  bool
		expectError bool
	}{
		{name: "new user", created: true, expectNext: true},
		{name: "returning user", created: false, expectNext: true},
		{name: "database error", mockError: errors.New("db error"), expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(testutil.MockUserRepository)
			users := service.NewUserService(repo, new(testutil.MockLanguageRepository), testutil.NewTestLogger())

			stored := testutil.NewTestUser(7)
			if tt.mockError != nil {
				repo.On("Upsert", mock.Anything, int64(7), "Jane Doe", "jane").Return(nil, false, tt.mockError)
			} else {
				repo.On("Upsert", mock.Anything, int64(7), "Jane Doe", "jane").Return(stored, tt.created, nil)
			}

			c := newContext(t, messageFrom(7))
			called := false
			handler := InjectUser(users, testutil.NewTestLogger())(func(c tele.Context) error {
				called = true
				assert.Equal(t, stored, User(c))
				assert.Equal(t, tt.created, Created(c))
				return nil
			})

			err := handler(c)

			assert.Equal(t, tt.expectNext, called)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestInjectUser_KeysProfileByChat(t *testing.T) {
	tests := []struct {
		name   string
		upd    tele.Update
		chatID int64
	}{
		{
			name: "message in chat",
			upd: tele.Update{ID: 101, Message: &tele.Message{
				Sender: &tele.User{ID: 7, FirstName: "Jane"},
				Chat:   &tele.Chat{ID: 70},
				Text:   "hello",
			}},
			chatID: 70,
		},
		{
			name: "callback without message",
			upd: tele.Update{ID: 102, Callback: &tele.Callback{
				ID:     "cb",
				Sender: &tele.User{ID: 7, FirstName: "Jane"},
			}},
			chatID: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(testutil.MockUserRepository)
			users := service.NewUserService(repo, new(testutil.MockLanguageRepository), testutil.NewTestLogger())
			repo.On("Upsert", mock.Anything, tt.chatID, "Jane", "").Return(testutil.NewTestUser(tt.chatID), false, nil)

			handler := InjectUser(users, testutil.NewTestLogger())(func(c tele.Context) error {
				assert.Equal(t, tt.chatID, User(c).ChatID)
				return nil
			})

			require.NoError(t, handler(newContext(t, tt.upd)))
			repo.AssertExpectations(t)
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		user       *domain.User
		role       domain.Role
		expectNext bool
	}{
		{
			name:       "admin passes",
			user:       &domain.User{ChatID: 1, IsAdmin: true},
			role:       domain.RoleAdmin,
			expectNext: true,
		},
		{
			name: "plain user rejected",
			user: &domain.User{ChatID: 1},
			role: domain.RoleAdmin,
		},
		{
			name:       "manager passes manager check",
			user:       &domain.User{ChatID: 1, IsManager: true},
			role:       domain.RoleManager,
			expectNext: true,
		},
		{
			name: "no user rejected",
			role: domain.RoleManager,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newContext(t, messageFrom(1))
			if tt.user != nil {
				c.Set(keyUser, tt.user)
			}

			nextCalled, rejected := false, false
			handler := RequireRole(tt.role, func(tele.Context) error {
				rejected = true
				return nil
			})(func(tele.Context) error {
				nextCalled = true
				return nil
			})

			require.NoError(t, handler(c))
			assert.Equal(t, tt.expectNext, nextCalled)
			assert.Equal(t, !tt.expectNext, rejected)
		})
	}
}

func TestLogging(t *testing.T) {
	c := newContext(t, messageFrom(1))
	wantErr := errors.New("boom")

	handler := Logging(testutil.NewTestLogger())(func(c tele.Context) error {
		assert.NotEmpty(t, RequestID(c))
		assert.NotNil(t, Logger(c, nil))
		return wantErr
	})

	assert.ErrorIs(t, handler(c), wantErr)
}

func TestRecover(t *testing.T) {
	c := newContext(t, messageFrom(1))

	handler := Recover(testutil.NewTestLogger())(func(tele.Context) error {
		panic("nil map write")
	})

	err := handler(c)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil map write")
}

func TestContextAccessorsWithoutValues(t *testing.T) {
	c := newContext(t, messageFrom(1))
	fallback := testutil.NewTestLogger()

	assert.Nil(t, User(c))
	assert.False(t, Created(c))
	assert.Equal(t, "", RequestID(c))
	assert.Same(t, fallback, Logger(c, fallback))
}
