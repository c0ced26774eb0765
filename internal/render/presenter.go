package render

import (
	"context"
	"fmt"

	"catalogbot/internal/domain"
	"catalogbot/internal/keyboard"
	"catalogbot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Presenter renders screens and localized messages through a Transport.
// It keeps albums within keyboard.AlbumSize photos and rows within keyboard.RowSize buttons.
type Presenter struct {
	transport Transport
	messages  *service.MessageCatalog
	media     MediaResolver
	logger    *zap.Logger
}

// NewPresenter creates a new presenter
func NewPresenter(transport Transport, messages *service.MessageCatalog, media MediaResolver, logger *zap.Logger) *Presenter {
	return &Presenter{
		transport: transport,
		messages:  messages,
		media:     media,
		logger:    logger,
	}
}

// Show sends a screen: maps first, then covers in albums, then the text with its keyboard
func (p *Presenter) Show(ctx context.Context, chatID int64, lang *domain.Language, screen *service.Screen) error {
	text, err := p.messages.Render(ctx, screen.Template, lang, screen.Vars)
	if err != nil {
		return err
	}

	markup, err := p.Inline(ctx, lang, screen.Keyboard)
	if err != nil {
		return err
	}

	for _, point := range screen.Maps {
		if err := p.transport.SendLocation(chatID, point.Lat, point.Long); err != nil {
			return fmt.Errorf("failed to send location: %w", err)
		}
	}

	refs := make([]string, 0, len(screen.Covers))
	for _, cover := range screen.Covers {
		refs = append(refs, p.media.Resolve(cover.File))
	}
	for _, album := range keyboard.Chunk(refs, keyboard.AlbumSize) {
		if err := p.transport.SendPhotoGroup(chatID, album); err != nil {
			return fmt.Errorf("failed to send photos: %w", err)
		}
	}

	if err := p.transport.SendText(chatID, text, markup); err != nil {
		return fmt.Errorf("failed to send screen: %w", err)
	}

	p.logger.Debug("Screen shown",
		zap.Int64("chat_id", chatID),
		zap.String("template", screen.Template),
		zap.Int("covers", len(refs)),
		zap.Int("maps", len(screen.Maps)),
	)
	return nil
}

// Text renders a message and sends it with an optional keyboard
func (p *Presenter) Text(ctx context.Context, chatID int64, lang *domain.Language, key string, vars map[string]interface{}, markup *tele.ReplyMarkup) error {
	text, err := p.messages.Render(ctx, key, lang, vars)
	if err != nil {
		return err
	}

	if err := p.transport.SendText(chatID, text, markup); err != nil {
		return fmt.Errorf("failed to send %s: %w", key, err)
	}
	return nil
}

// Labels renders button labels in order
func (p *Presenter) Labels(ctx context.Context, lang *domain.Language, keys ...string) ([]string, error) {
	labels := make([]string, 0, len(keys))
	for _, key := range keys {
		label, err := p.messages.Label(ctx, key, lang, nil)
		if err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}
	return labels, nil
}

// Inline resolves button labels and builds the inline keyboard.
// Rows longer than keyboard.RowSize are split. Returns nil for no buttons.
func (p *Presenter) Inline(ctx context.Context, lang *domain.Language, rows [][]keyboard.Button) (*tele.ReplyMarkup, error) {
	var resolved [][]keyboard.Button
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}

		buttons := make([]keyboard.Button, 0, len(row))
		for _, b := range row {
			if b.Text == "" && b.Label != "" {
				label, err := p.messages.Label(ctx, b.Label, lang, b.Vars)
				if err != nil {
					return nil, err
				}
				b.Text = label
			}
			buttons = append(buttons, b)
		}
		resolved = append(resolved, keyboard.Chunk(buttons, keyboard.RowSize)...)
	}

	if len(resolved) == 0 {
		return nil, nil
	}
	return keyboard.Inline(resolved), nil
}
