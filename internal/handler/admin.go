package handler

import (
	"context"

	"catalogbot/internal/domain"
	"catalogbot/internal/middleware"
	"catalogbot/internal/service"

	tele "gopkg.in/telebot.v3"
)

// handleStats shows audience numbers. Guarded by RequireRole(admin).
func (h *Handler) handleStats(c tele.Context) error {
	return h.showStats(context.Background(), middleware.User(c))
}

func (h *Handler) showStats(ctx context.Context, user *domain.User) error {
	lang, err := h.users.ResolveLanguage(ctx, user)
	if err != nil {
		return err
	}

	if err := h.users.Authorize(user, domain.RoleAdmin); err != nil {
		return h.presenter.Text(ctx, user.ChatID, lang, service.MsgAccessRequired, nil, nil)
	}

	stats, err := h.stats.Stats(ctx)
	if err != nil {
		return err
	}

	return h.presenter.Text(ctx, user.ChatID, lang, service.MsgStats, map[string]interface{}{
		"days":  stats.Days,
		"total": stats.TotalUsers,
		"new":   stats.NewUsersToday,
	}, nil)
}

// handleInvite sends the user's referral link. Guarded by RequireRole(manager).
func (h *Handler) handleInvite(c tele.Context) error {
	return h.invite(context.Background(), middleware.User(c))
}

func (h *Handler) invite(ctx context.Context, user *domain.User) error {
	lang, err := h.users.ResolveLanguage(ctx, user)
	if err != nil {
		return err
	}

	if err := h.users.Authorize(user, domain.RoleManager); err != nil {
		return h.presenter.Text(ctx, user.ChatID, lang, service.MsgAccessRequired, nil, nil)
	}

	return h.presenter.Text(ctx, user.ChatID, lang, service.MsgInvite, map[string]interface{}{
		"link": service.InviteLink(h.opts.BotUsername, user.ChatID),
	}, nil)
}
