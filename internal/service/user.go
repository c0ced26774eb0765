package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"catalogbot/internal/domain"
	"catalogbot/internal/repository"

	"go.uber.org/zap"
)

// UserService handles profiles and role checks
type UserService struct {
	users     repository.UserRepository
	languages repository.LanguageRepository
	logger    *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(users repository.UserRepository, languages repository.LanguageRepository, logger *zap.Logger) *UserService {
	return &UserService{
		users:     users,
		languages: languages,
		logger:    logger,
	}
}

// EnsureUser creates the profile on first contact and refreshes the Telegram names otherwise.
// Reports whether the profile was created.
func (s *UserService) EnsureUser(ctx context.Context, chatID int64, displayName, username string) (*domain.User, bool, error) {
	user, created, err := s.users.Upsert(ctx, chatID, displayName, username)
	if err != nil {
		return nil, false, fmt.Errorf("failed to upsert user: %w", err)
	}

	if created {
		s.logger.Info("New user", zap.Int64("chat_id", chatID), zap.String("username", username))
	}
	return user, created, nil
}

// AttachReferrer records who invited a newly created user.
// The payload is the referrer's chat id; anything else is ignored.
func (s *UserService) AttachReferrer(ctx context.Context, user *domain.User, payload string) error {
	if payload == "" || user.ReferrerID != nil {
		return nil
	}

	referrerID, err := strconv.ParseInt(payload, 10, 64)
	if err != nil || referrerID == user.ChatID {
		s.logger.Debug("Ignoring start payload", zap.String("payload", payload))
		return nil
	}

	if err := s.users.SetReferrer(ctx, user.ChatID, referrerID); err != nil {
		return fmt.Errorf("failed to set referrer: %w", err)
	}
	return nil
}

// ResolveLanguage returns the user's language, or the default one when unset
func (s *UserService) ResolveLanguage(ctx context.Context, user *domain.User) (*domain.Language, error) {
	if user != nil && user.HasLanguage() {
		lang, err := s.languages.GetByID(ctx, *user.LanguageID)
		if err != nil {
			return nil, fmt.Errorf("failed to get language: %w", err)
		}
		if lang != nil {
			return lang, nil
		}
	}

	lang, err := s.languages.GetDefault(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get default language: %w", err)
	}
	if lang == nil {
		return nil, fmt.Errorf("no default language: %w", domain.ErrNotFound)
	}
	return lang, nil
}

// Authorize returns domain.ErrAccessDenied unless the user holds the role
func (s *UserService) Authorize(user *domain.User, role domain.Role) error {
	if !user.HasRole(role) {
		return domain.ErrAccessDenied
	}
	return nil
}

// InviteLink returns a deep link that registers chatID as the referrer
func InviteLink(botUsername string, chatID int64) string {
	u := url.URL{
		Scheme:   "https",
		Host:     "t.me",
		Path:     "/" + botUsername,
		RawQuery: url.Values{"start": {strconv.FormatInt(chatID, 10)}}.Encode(),
	}
	return u.String()
}
