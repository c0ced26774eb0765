package render

import (
	"path/filepath"
	"strings"

	tele "gopkg.in/telebot.v3"
)

// Transport sends messages to a chat
type Transport interface {
	SendText(chatID int64, text string, markup *tele.ReplyMarkup) error
	SendPhotoGroup(chatID int64, refs []string) error
	SendLocation(chatID int64, lat, long float64) error
	AnswerCallback(callbackID string) error
}

// TeleTransport sends through the Telegram Bot API. Texts use HTML parse mode.
type TeleTransport struct {
	bot *tele.Bot
}

// NewTeleTransport creates a new Telegram transport
func NewTeleTransport(bot *tele.Bot) *TeleTransport {
	return &TeleTransport{bot: bot}
}

func (t *TeleTransport) SendText(chatID int64, text string, markup *tele.ReplyMarkup) error {
	opts := &tele.SendOptions{ParseMode: tele.ModeHTML}
	if markup != nil {
		opts.ReplyMarkup = markup
	}
	_, err := t.bot.Send(tele.ChatID(chatID), text, opts)
	return err
}

// SendPhotoGroup sends refs as one album. Refs starting with http(s) are sent as URLs, others read from disk.
func (t *TeleTransport) SendPhotoGroup(chatID int64, refs []string) error {
	album := make(tele.Album, 0, len(refs))
	for _, ref := range refs {
		album = append(album, &tele.Photo{File: mediaFile(ref)})
	}
	_, err := t.bot.SendAlbum(tele.ChatID(chatID), album)
	return err
}

func (t *TeleTransport) SendLocation(chatID int64, lat, long float64) error {
	_, err := t.bot.Send(tele.ChatID(chatID), &tele.Location{Lat: float32(lat), Lng: float32(long)})
	return err
}

func (t *TeleTransport) AnswerCallback(callbackID string) error {
	return t.bot.Respond(&tele.Callback{ID: callbackID})
}

func mediaFile(ref string) tele.File {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return tele.FromURL(ref)
	}
	return tele.FromDisk(ref)
}

// MediaResolver turns stored cover paths into something the transport can send
type MediaResolver struct {
	// BaseURL is the public prefix of media files; takes precedence over Dir
	BaseURL string
	Dir     string
}

// Resolve returns a URL when BaseURL is set, otherwise a local path
func (r MediaResolver) Resolve(file string) string {
	if r.BaseURL != "" {
		return strings.TrimRight(r.BaseURL, "/") + "/" + strings.TrimLeft(file, "/")
	}
	return filepath.Join(r.Dir, file)
}
