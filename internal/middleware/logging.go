package middleware

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Logging assigns a request id to every update and stores a child logger carrying it
func Logging(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			rid := uuid.NewString()
			start := time.Now()

			fields := []zap.Field{
				zap.String("rid", rid),
				zap.Int("update_id", c.Update().ID),
			}
			if chat := c.Chat(); chat != nil {
				fields = append(fields, zap.Int64("chat_id", chat.ID))
			}
			updateLogger := logger.With(fields...)

			c.Set(keyRID, rid)
			c.Set(keyLogger, updateLogger)

			kind := "other"
			switch upd := c.Update(); {
			case upd.Callback != nil:
				kind = "callback"
			case upd.Message != nil:
				kind = "message"
			}
			updateLogger.Debug("Update received", zap.String("kind", kind))

			err := next(c)

			updateLogger.Debug("Update handled",
				zap.Duration("took", time.Since(start)),
				zap.Bool("failed", err != nil),
			)
			return err
		}
	}
}
