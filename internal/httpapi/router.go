package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// ChatLister provides the chat ids the reports expose
type ChatLister interface {
	ChatIDs(ctx context.Context) ([]int64, error)
	AdminChatIDs(ctx context.Context) ([]int64, error)
}

// chatEntry is one row of a chat report
type chatEntry struct {
	TelegramID int64 `json:"Telegram ID"`
}

// NewRouter creates the report endpoints
func NewRouter(chats ChatLister, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("ok")); err != nil {
			logger.Warn("Failed to write health response", zap.Error(err))
		}
	})
	r.Get("/sendlist", chatReport(chats.ChatIDs, logger))
	r.Get("/admins", chatReport(chats.AdminChatIDs, logger))

	return r
}

func chatReport(list func(context.Context) ([]int64, error), logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ids, err := list(req.Context())
		if err != nil {
			logger.Error("Failed to build chat report", zap.String("path", req.URL.Path), zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		entries := make([]chatEntry, 0, len(ids))
		for _, id := range ids {
			entries = append(entries, chatEntry{TelegramID: id})
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if err := json.NewEncoder(w).Encode(entries); err != nil {
			logger.Warn("Failed to write chat report", zap.Error(err))
		}
	}
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, req.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, req)

			logger.Info("HTTP request",
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("took", time.Since(start)),
			)
		})
	}
}
