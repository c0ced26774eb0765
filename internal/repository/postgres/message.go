package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// MessageRepo implements repository.MessageRepository
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo creates a new message repository
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// Get returns the template stored for name in the language
func (r *MessageRepo) Get(ctx context.Context, name string, languageID int64) (string, bool, error) {
	var value string
	query := `SELECT value FROM messages WHERE name = $1 AND language_id = $2`
	err := r.db.GetContext(ctx, &value, query, name, languageID)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}
