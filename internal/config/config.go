package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// LaunchDateLayout is the format of LAUNCH_DATE
const LaunchDateLayout = "02.01.2006"

// Config holds all application configuration
type Config struct {
	BotToken        string        `envconfig:"BOT_TOKEN"`
	BotUsername     string        `envconfig:"BOT_USERNAME"`
	Debug           bool          `envconfig:"DEBUG"`
	LongPollTimeout time.Duration `envconfig:"LONGPOLL_TIMEOUT" default:"10s"`
	OperatorChatID  int64         `envconfig:"OPERATOR_CHAT_ID"`
	LaunchDateRaw   string        `envconfig:"LAUNCH_DATE"`
	MediaBaseURL    string        `envconfig:"MEDIA_BASE_URL"`
	MediaDir        string        `envconfig:"MEDIA_DIR" default:"media"`
	MessagesFile    string        `envconfig:"MESSAGES_FILE" default:"messages.yaml"`
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	StateMaxIdle    time.Duration `envconfig:"STATE_MAX_IDLE" default:"24h"`
	Database        DatabaseConfig

	// LaunchDate is parsed from LaunchDateRaw; zero when unset
	LaunchDate time.Time `ignored:"true"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"catalogbot"`
	User     string `envconfig:"DB_USER" default:"catalogbot"`
	Password string `envconfig:"DB_PASSWORD"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns int    `envconfig:"DB_MAX_CONNS" default:"10"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required fields and parses derived values
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.StateMaxIdle <= 0 {
		return fmt.Errorf("STATE_MAX_IDLE must be positive")
	}

	c.BotUsername = strings.TrimPrefix(strings.TrimSpace(c.BotUsername), "@")

	if raw := strings.TrimSpace(c.LaunchDateRaw); raw != "" {
		date, err := time.ParseInLocation(LaunchDateLayout, raw, time.Local)
		if err != nil {
			return fmt.Errorf("LAUNCH_DATE must look like %s: %w", LaunchDateLayout, err)
		}
		c.LaunchDate = date
	}
	return nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
