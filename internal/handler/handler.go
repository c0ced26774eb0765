package handler

import (
	"context"
	"fmt"
	"html"

	"catalogbot/internal/domain"
	"catalogbot/internal/middleware"
	"catalogbot/internal/render"
	"catalogbot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Services groups what the handlers call into
type Services struct {
	Users      *service.UserService
	Onboarding *service.OnboardingService
	Navigator  *service.Navigator
	Stats      *service.StatsService
	Messages   *service.MessageCatalog
}

// Options holds deployment settings the handlers need
type Options struct {
	BotUsername    string
	OperatorChatID int64
}

// Handler manages all bot interactions
type Handler struct {
	bot        *tele.Bot
	users      *service.UserService
	onboarding *service.OnboardingService
	navigator  *service.Navigator
	stats      *service.StatsService
	messages   *service.MessageCatalog
	presenter  *render.Presenter
	transport  render.Transport
	opts       Options
	logger     *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	services Services,
	transport render.Transport,
	presenter *render.Presenter,
	opts Options,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:        bot,
		users:      services.Users,
		onboarding: services.Onboarding,
		navigator:  services.Navigator,
		stats:      services.Stats,
		messages:   services.Messages,
		presenter:  presenter,
		transport:  transport,
		opts:       opts,
		logger:     logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	h.bot.Use(
		middleware.Recover(h.logger),
		middleware.Logging(h.logger),
		middleware.InjectUser(h.users, h.logger),
	)

	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/help", h.handleHelp)
	h.bot.Handle("/language", h.handleChangeLanguage)
	h.bot.Handle("/name", h.handleChangeFullName)
	h.bot.Handle("/cancel", h.handleCancel)

	// Admin commands
	h.bot.Handle("/stats", h.handleStats, middleware.RequireRole(domain.RoleAdmin, h.handleAccessDenied))
	h.bot.Handle("/invite", h.handleInvite, middleware.RequireRole(domain.RoleManager, h.handleAccessDenied))

	// Dialogue answers and reply keyboard labels
	h.bot.Handle(tele.OnText, h.handleText)
	h.bot.Handle(tele.OnContact, h.handleContact)

	// Catalog navigation
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// OnError logs a failed update and forwards it to the operator chat when one is configured
func (h *Handler) OnError(err error, c tele.Context) {
	logger := h.logger
	var chatID int64
	if c != nil {
		logger = middleware.Logger(c, h.logger)
		if chat := c.Chat(); chat != nil {
			chatID = chat.ID
		}
	}

	logger.Error("Failed to handle update", zap.Error(err), zap.Int64("chat_id", chatID))

	if chatID != 0 {
		ctx := context.Background()
		lang, langErr := h.users.ResolveLanguage(ctx, middleware.User(c))
		if langErr == nil {
			if sendErr := h.presenter.Text(ctx, chatID, lang, service.MsgError, nil, nil); sendErr != nil {
				logger.Warn("Failed to report error to user", zap.Error(sendErr))
			}
		}
	}

	h.notifyOperator(err, chatID, c)
}

func (h *Handler) notifyOperator(err error, chatID int64, c tele.Context) {
	if h.opts.OperatorChatID == 0 {
		return
	}

	rid := ""
	if c != nil {
		rid = middleware.RequestID(c)
	}
	text := fmt.Sprintf("<b>Update failed</b>\nchat: <code>%d</code>\nrid: <code>%s</code>\n<pre>%s</pre>",
		chatID, html.EscapeString(rid), html.EscapeString(err.Error()))

	if sendErr := h.transport.SendText(h.opts.OperatorChatID, text, nil); sendErr != nil {
		h.logger.Warn("Failed to notify operator", zap.Error(sendErr))
	}
}

// handleAccessDenied answers a privileged command from an unprivileged user
func (h *Handler) handleAccessDenied(c tele.Context) error {
	ctx := context.Background()
	user := middleware.User(c)
	middleware.Logger(c, h.logger).Info("Access denied", zap.String("command", c.Text()))

	lang, err := h.users.ResolveLanguage(ctx, user)
	if err != nil {
		return err
	}
	return h.presenter.Text(ctx, c.Chat().ID, lang, service.MsgAccessRequired, nil, nil)
}
