package middleware

import (
	"catalogbot/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	keyUser    = "user"
	keyCreated = "user_created"
	keyLogger  = "logger"
	keyRID     = "rid"
)

// User returns the profile stored by InjectUser, or nil
func User(c tele.Context) *domain.User {
	user, _ := c.Get(keyUser).(*domain.User)
	return user
}

// Created reports whether InjectUser created the profile on this update
func Created(c tele.Context) bool {
	created, _ := c.Get(keyCreated).(bool)
	return created
}

// Logger returns the per-update logger stored by Logging, or fallback
func Logger(c tele.Context, fallback *zap.Logger) *zap.Logger {
	if logger, ok := c.Get(keyLogger).(*zap.Logger); ok {
		return logger
	}
	return fallback
}

// RequestID returns the id Logging assigned to the update
func RequestID(c tele.Context) string {
	rid, _ := c.Get(keyRID).(string)
	return rid
}
