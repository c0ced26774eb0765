package handler

import (
	"context"
	"errors"

	"catalogbot/internal/domain"
	"catalogbot/internal/keyboard"
	"catalogbot/internal/middleware"
	"catalogbot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start, optionally carrying a referrer chat id
func (h *Handler) handleStart(c tele.Context) error {
	user := middleware.User(c)

	middleware.Logger(c, h.logger).Info("User started bot",
		zap.Int64("chat_id", user.ChatID),
		zap.String("username", user.Username),
	)

	return h.start(context.Background(), user, middleware.Created(c), c.Message().Payload)
}

func (h *Handler) start(ctx context.Context, user *domain.User, created bool, payload string) error {
	if created {
		if err := h.users.AttachReferrer(ctx, user, payload); err != nil {
			h.logger.Warn("Failed to attach referrer", zap.Error(err), zap.Int64("chat_id", user.ChatID))
		}
	}

	return h.respond(ctx, user, h.onboarding.Start(ctx, user))
}

func (h *Handler) handleChangeLanguage(c tele.Context) error {
	return h.change(context.Background(), middleware.User(c), domain.StepLanguage)
}

func (h *Handler) handleChangeFullName(c tele.Context) error {
	return h.change(context.Background(), middleware.User(c), domain.StepFullName)
}

func (h *Handler) change(ctx context.Context, user *domain.User, step domain.Step) error {
	reply, err := h.onboarding.Change(ctx, user, step)
	if err != nil {
		return err
	}
	return h.respond(ctx, user, reply)
}

func (h *Handler) handleCancel(c tele.Context) error {
	ctx := context.Background()
	user := middleware.User(c)
	return h.respond(ctx, user, h.onboarding.Cancel(ctx, user))
}

func (h *Handler) handleHelp(c tele.Context) error {
	return h.help(context.Background(), middleware.User(c))
}

func (h *Handler) help(ctx context.Context, user *domain.User) error {
	lang, err := h.users.ResolveLanguage(ctx, user)
	if err != nil {
		return err
	}

	var markup *tele.ReplyMarkup
	if domain.DeriveStep(user) == domain.StepComplete {
		if markup, err = h.mainKeyboard(ctx, lang); err != nil {
			return err
		}
	}
	return h.presenter.Text(ctx, user.ChatID, lang, service.MsgHelp, nil, markup)
}

// handleText routes reply keyboard labels to their commands and everything else to the dialogue
func (h *Handler) handleText(c tele.Context) error {
	return h.text(context.Background(), middleware.User(c), c.Text())
}

func (h *Handler) text(ctx context.Context, user *domain.User, text string) error {
	key, matched, err := h.messages.MatchCommand(ctx, text,
		service.BtnChangeLanguage,
		service.BtnChangeFullName,
		service.BtnCancel,
		service.BtnHelp,
	)
	if err != nil {
		return err
	}

	if matched {
		switch key {
		case service.BtnChangeLanguage:
			return h.change(ctx, user, domain.StepLanguage)
		case service.BtnChangeFullName:
			return h.change(ctx, user, domain.StepFullName)
		case service.BtnCancel:
			return h.respond(ctx, user, h.onboarding.Cancel(ctx, user))
		case service.BtnHelp:
			return h.help(ctx, user)
		}
	}

	return h.submit(ctx, user, service.Input{Text: text})
}

// handleContact takes the shared phone number
func (h *Handler) handleContact(c tele.Context) error {
	contact := c.Message().Contact
	return h.submit(context.Background(), middleware.User(c), service.Input{
		Contact: &domain.Contact{UserID: contact.UserID, PhoneNumber: contact.PhoneNumber},
	})
}

func (h *Handler) submit(ctx context.Context, user *domain.User, in service.Input) error {
	reply, err := h.onboarding.Submit(ctx, user, in)
	if err != nil {
		return err
	}

	if reply.Idle() {
		h.logger.Debug("Ignoring text outside of a dialogue", zap.Int64("chat_id", user.ChatID))
		return nil
	}
	return h.respond(ctx, user, reply)
}

// respond shows whatever a dialogue transition calls for, in the user's current language
func (h *Handler) respond(ctx context.Context, user *domain.User, reply service.Reply) error {
	lang, err := h.users.ResolveLanguage(ctx, user)
	if err != nil {
		return err
	}

	if reply.Err != nil {
		key := service.MsgWrongLanguage
		if errors.Is(reply.Err, domain.ErrInvalidPhoneOwner) {
			key = service.MsgWrongPhone
		}
		if err := h.presenter.Text(ctx, user.ChatID, lang, key, nil, nil); err != nil {
			return err
		}
	}

	if reply.Menu {
		intro := service.MsgWelcome
		switch {
		case reply.Saved:
			intro = service.MsgDataSaved
		case reply.Cancelled:
			intro = service.MsgCancelled
		}
		return h.showMainMenu(ctx, user.ChatID, lang, intro)
	}

	switch reply.Step {
	case domain.StepLanguage, domain.StepFullName, domain.StepPhone:
		return h.prompt(ctx, user, lang, reply)
	}
	return nil
}

func (h *Handler) prompt(ctx context.Context, user *domain.User, lang *domain.Language, reply service.Reply) error {
	var cancel []string
	if reply.Mode == domain.ModeUpdate {
		labels, err := h.presenter.Labels(ctx, lang, service.BtnCancel)
		if err != nil {
			return err
		}
		cancel = labels
	}

	var (
		key    string
		markup *tele.ReplyMarkup
	)
	switch reply.Step {
	case domain.StepLanguage:
		names, err := h.onboarding.LanguageNames(ctx)
		if err != nil {
			return err
		}
		key, markup = service.MsgLanguage, keyboard.Reply(append(names, cancel...)...)

	case domain.StepFullName:
		key, markup = service.MsgFullName, keyboard.Remove()
		if len(cancel) > 0 {
			markup = keyboard.Reply(cancel...)
		}

	case domain.StepPhone:
		labels, err := h.presenter.Labels(ctx, lang, service.BtnPhone)
		if err != nil {
			return err
		}
		key, markup = service.MsgPhone, keyboard.Contact(labels[0], cancel...)
	}

	return h.presenter.Text(ctx, user.ChatID, lang, key, map[string]interface{}{"name": user.DisplayName}, markup)
}

// showMainMenu sends intro with the main reply keyboard, then the catalog root
func (h *Handler) showMainMenu(ctx context.Context, chatID int64, lang *domain.Language, intro string) error {
	markup, err := h.mainKeyboard(ctx, lang)
	if err != nil {
		return err
	}
	if err := h.presenter.Text(ctx, chatID, lang, intro, nil, markup); err != nil {
		return err
	}

	screen, err := h.navigator.RootMenu(ctx, lang.ID)
	if err != nil {
		return err
	}
	return h.presenter.Show(ctx, chatID, lang, screen)
}

func (h *Handler) mainKeyboard(ctx context.Context, lang *domain.Language) (*tele.ReplyMarkup, error) {
	labels, err := h.presenter.Labels(ctx, lang, service.BtnChangeLanguage, service.BtnChangeFullName, service.BtnHelp)
	if err != nil {
		return nil, err
	}
	return keyboard.Reply(labels...), nil
}
