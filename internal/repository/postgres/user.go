package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"catalogbot/internal/domain"

	"github.com/jmoiron/sqlx"
)

const userColumns = `chat_id, display_name, username, real_name, phone, language_id,
	is_admin, is_manager, referrer_id, joined_at`

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

type upsertedUser struct {
	domain.User
	Created bool `db:"created"`
}

// Upsert creates the user on first contact and refreshes Telegram names otherwise.
// The second result reports whether the row was created.
func (r *UserRepo) Upsert(ctx context.Context, chatID int64, displayName, username string) (*domain.User, bool, error) {
	query := `
		INSERT INTO users (chat_id, display_name, username)
		VALUES ($1, $2, $3)
		ON CONFLICT (chat_id)
		DO UPDATE SET display_name = EXCLUDED.display_name, username = EXCLUDED.username
		RETURNING ` + userColumns + `, (xmax = 0) AS created
	`
	var row upsertedUser
	if err := r.db.GetContext(ctx, &row, query, chatID, displayName, username); err != nil {
		return nil, false, err
	}
	return &row.User, row.Created, nil
}

// Get returns the user or nil if it does not exist
func (r *UserRepo) Get(ctx context.Context, chatID int64) (*domain.User, error) {
	var u domain.User
	query := `SELECT ` + userColumns + ` FROM users WHERE chat_id = $1`
	err := r.db.GetContext(ctx, &u, query, chatID)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// SetLanguage stores the chosen language
func (r *UserRepo) SetLanguage(ctx context.Context, chatID, languageID int64) error {
	query := `UPDATE users SET language_id = $2 WHERE chat_id = $1`
	_, err := r.db.ExecContext(ctx, query, chatID, languageID)
	return err
}

// SetRealName stores the full name entered by the user
func (r *UserRepo) SetRealName(ctx context.Context, chatID int64, realName string) error {
	query := `UPDATE users SET real_name = $2 WHERE chat_id = $1`
	_, err := r.db.ExecContext(ctx, query, chatID, realName)
	return err
}

// SetPhone stores the phone shared by the user
func (r *UserRepo) SetPhone(ctx context.Context, chatID int64, phone string) error {
	query := `UPDATE users SET phone = $2 WHERE chat_id = $1`
	_, err := r.db.ExecContext(ctx, query, chatID, phone)
	return err
}

// SetReferrer links the user to an existing referrer once
func (r *UserRepo) SetReferrer(ctx context.Context, chatID, referrerID int64) error {
	query := `
		UPDATE users SET referrer_id = $2
		WHERE chat_id = $1
			AND referrer_id IS NULL
			AND chat_id <> $2
			AND EXISTS (SELECT 1 FROM users r WHERE r.chat_id = $2)
	`
	_, err := r.db.ExecContext(ctx, query, chatID, referrerID)
	return err
}

// Count returns the total number of users
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`)
	return count, err
}

// CountJoinedSince returns the number of users joined after since
func (r *UserRepo) CountJoinedSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users WHERE joined_at >= $1`, since)
	return count, err
}

// ListChatIDs returns chat ids of all users
func (r *UserRepo) ListChatIDs(ctx context.Context) ([]int64, error) {
	ids := []int64{}
	err := r.db.SelectContext(ctx, &ids, `SELECT chat_id FROM users ORDER BY chat_id`)
	return ids, err
}

// ListAdminChatIDs returns chat ids of admins
func (r *UserRepo) ListAdminChatIDs(ctx context.Context) ([]int64, error) {
	ids := []int64{}
	err := r.db.SelectContext(ctx, &ids, `SELECT chat_id FROM users WHERE is_admin ORDER BY chat_id`)
	return ids, err
}
