package handler

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"catalogbot/internal/callback"
	"catalogbot/internal/domain"
	"catalogbot/internal/middleware"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleCallback handles ALL callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	cb := c.Callback()
	if cb == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	logger := middleware.Logger(c, h.logger)
	logger.Info("Processing callback",
		zap.String("data", cb.Data),
		zap.String("id", cb.ID),
	)

	return h.callback(context.Background(), middleware.User(c), cb.ID, cb.Data, logger)
}

// callback shows the screen a token leads to. The callback is always acknowledged;
// stale or malformed tokens change nothing.
func (h *Handler) callback(ctx context.Context, user *domain.User, callbackID, data string, logger *zap.Logger) error {
	defer func() {
		if err := h.transport.AnswerCallback(callbackID); err != nil {
			logger.Warn("Failed to acknowledge callback", zap.Error(err))
		}
	}()

	tok, err := callback.Decode(cleanCallbackData(data))
	if err != nil {
		logger.Warn("Unhandled callback", zap.String("data", data), zap.Error(err))
		return nil
	}

	lang, err := h.users.ResolveLanguage(ctx, user)
	if err != nil {
		return err
	}

	screen, err := h.navigator.Navigate(ctx, tok, lang.ID)
	switch {
	case err == nil:
	case errors.Is(err, callback.ErrMalformed):
		logger.Warn("Malformed callback arguments", zap.String("data", data), zap.Error(err))
		return nil
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrNoItem):
		logger.Debug("Nothing to show for callback", zap.String("data", data), zap.Error(err))
		return nil
	default:
		return err
	}

	return h.presenter.Show(ctx, user.ChatID, lang, screen)
}
