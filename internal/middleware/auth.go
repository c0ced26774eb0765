package middleware

import (
	"context"
	"strings"

	"catalogbot/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// UserEnsurer creates or refreshes the profile of the sender
type UserEnsurer interface {
	EnsureUser(ctx context.Context, chatID int64, displayName, username string) (*domain.User, bool, error)
}

// InjectUser upserts the profile of the chat the update came from and stores it in the context.
// The profile is keyed by chat id since replies go to that chat; the sender id is used
// only when the update carries no chat. Updates without a sender pass through untouched.
func InjectUser(users UserEnsurer, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return next(c)
			}

			chatID := sender.ID
			if chat := c.Chat(); chat != nil {
				chatID = chat.ID
			}

			displayName := strings.TrimSpace(sender.FirstName + " " + sender.LastName)
			user, created, err := users.EnsureUser(context.Background(), chatID, displayName, sender.Username)
			if err != nil {
				Logger(c, logger).Error("Failed to ensure user exists in middleware", zap.Error(err))
				return err
			}

			c.Set(keyUser, user)
			c.Set(keyCreated, created)
			return next(c)
		}
	}
}

// RequireRole lets only users holding role through; others get onReject
func RequireRole(role domain.Role, onReject tele.HandlerFunc) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if !User(c).HasRole(role) {
				if onReject != nil {
					return onReject(c)
				}
				return nil
			}
			return next(c)
		}
	}
}
