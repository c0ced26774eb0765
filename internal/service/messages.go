package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"os"
	texttemplate "text/template"

	"catalogbot/internal/domain"
	"catalogbot/internal/repository"

	"gopkg.in/yaml.v3"
)

// ErrMissingTranslation is returned when neither the requested nor the default
// language has a template for a key
var ErrMissingTranslation = errors.New("missing translation")

// Message keys
const (
	MsgLanguage       = "language"
	MsgWrongLanguage  = "wrong_language"
	MsgFullName       = "full_name"
	MsgPhone          = "phone"
	MsgWrongPhone     = "wrong_phone"
	MsgDataSaved      = "data_saved"
	MsgCancelled      = "cancelled"
	MsgWelcome        = "welcome"
	MsgMenu           = "menu"
	MsgSubmenu        = "submenu"
	MsgItemList       = "item_list"
	MsgItem           = "item"
	MsgInfo           = "info"
	MsgHelp           = "help"
	MsgStats          = "stats"
	MsgInvite         = "invite"
	MsgAccessRequired = "admin_access_required"
	MsgError          = "error"
)

// Button label keys
const (
	BtnAllCategories  = "btn_all_categories"
	BtnBack           = "btn_back"
	BtnPrev           = "btn_prev"
	BtnNext           = "btn_next"
	BtnModel          = "btn_model"
	BtnPhone          = "btn_phone"
	BtnChangeLanguage = "btn_change_language"
	BtnChangeFullName = "btn_change_full_name"
	BtnCancel         = "btn_cancel"
	BtnHelp           = "btn_help"
)

// MessageSource provides raw templates
type MessageSource interface {
	Lookup(ctx context.Context, key string, lang domain.Language) (string, bool, error)
}

// DBMessages serves templates edited in the database
type DBMessages struct {
	repo repository.MessageRepository
}

// NewDBMessages creates a database-backed message source
func NewDBMessages(repo repository.MessageRepository) *DBMessages {
	return &DBMessages{repo: repo}
}

// Lookup returns the template stored for the key and language
func (s *DBMessages) Lookup(ctx context.Context, key string, lang domain.Language) (string, bool, error) {
	return s.repo.Get(ctx, key, lang.ID)
}

// FileMessages serves built-in templates keyed by message key, then language name
type FileMessages struct {
	messages map[string]map[string]string
}

// LoadFileMessages reads built-in templates from a YAML file
func LoadFileMessages(path string) (*FileMessages, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read messages file: %w", err)
	}
	return ParseFileMessages(data)
}

// ParseFileMessages parses built-in templates from YAML
func ParseFileMessages(data []byte) (*FileMessages, error) {
	messages := map[string]map[string]string{}
	if err := yaml.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}
	return &FileMessages{messages: messages}, nil
}

// Lookup returns the built-in template for the key and language name
func (s *FileMessages) Lookup(_ context.Context, key string, lang domain.Language) (string, bool, error) {
	byLang, ok := s.messages[key]
	if !ok {
		return "", false, nil
	}
	value, ok := byLang[lang.Name]
	return value, ok, nil
}

// MessageCatalog renders localized templates.
// Sources are consulted in order for the requested language, then for the default language.
type MessageCatalog struct {
	sources   []MessageSource
	languages repository.LanguageRepository
}

// NewMessageCatalog creates a catalog over the given sources
func NewMessageCatalog(languages repository.LanguageRepository, sources ...MessageSource) *MessageCatalog {
	return &MessageCatalog{sources: sources, languages: languages}
}

// Render renders a message body. Variables are HTML-escaped since bodies are sent in HTML mode.
func (c *MessageCatalog) Render(ctx context.Context, key string, lang *domain.Language, vars map[string]interface{}) (string, error) {
	raw, err := c.template(ctx, key, lang)
	if err != nil {
		return "", err
	}

	tmpl, err := htmltemplate.New(key).Funcs(htmltemplate.FuncMap{"emojize": Emojize}).Parse(raw)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %q: %w", key, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("failed to render template %q: %w", key, err)
	}
	return buf.String(), nil
}

// Label renders a button label as plain text
func (c *MessageCatalog) Label(ctx context.Context, key string, lang *domain.Language, vars map[string]interface{}) (string, error) {
	raw, err := c.template(ctx, key, lang)
	if err != nil {
		return "", err
	}

	tmpl, err := texttemplate.New(key).Funcs(texttemplate.FuncMap{"emojize": Emojize}).Parse(raw)
	if err != nil {
		return "", fmt.Errorf("failed to parse label %q: %w", key, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("failed to render label %q: %w", key, err)
	}
	return buf.String(), nil
}

// MatchCommand reports which of the label keys has text as its label in any language
func (c *MessageCatalog) MatchCommand(ctx context.Context, text string, keys ...string) (string, bool, error) {
	languages, err := c.languages.List(ctx)
	if err != nil {
		return "", false, err
	}

	for _, key := range keys {
		for _, lang := range languages {
			label, found, err := c.lookup(ctx, key, lang)
			if err != nil {
				return "", false, err
			}
			if found && label == text {
				return key, true, nil
			}
		}
	}
	return "", false, nil
}

func (c *MessageCatalog) template(ctx context.Context, key string, lang *domain.Language) (string, error) {
	if lang != nil {
		raw, found, err := c.lookup(ctx, key, *lang)
		if err != nil {
			return "", err
		}
		if found {
			return raw, nil
		}
	}

	def, err := c.languages.GetDefault(ctx)
	if err != nil {
		return "", err
	}
	if def != nil && (lang == nil || def.ID != lang.ID) {
		raw, found, err := c.lookup(ctx, key, *def)
		if err != nil {
			return "", err
		}
		if found {
			return raw, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrMissingTranslation, key)
}

func (c *MessageCatalog) lookup(ctx context.Context, key string, lang domain.Language) (string, bool, error) {
	for _, src := range c.sources {
		raw, found, err := src.Lookup(ctx, key, lang)
		if err != nil {
			return "", false, err
		}
		if found {
			return raw, true, nil
		}
	}
	return "", false, nil
}
