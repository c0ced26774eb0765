package postgres

import (
	"context"
	"database/sql"
	"errors"

	"catalogbot/internal/domain"

	"github.com/jmoiron/sqlx"
)

// defaultLanguage selects the id of the default language
const defaultLanguage = `(SELECT id FROM languages WHERE is_default LIMIT 1)`

// LanguageRepo implements repository.LanguageRepository
type LanguageRepo struct {
	db *sqlx.DB
}

// NewLanguageRepo creates a new language repository
func NewLanguageRepo(db *sqlx.DB) *LanguageRepo {
	return &LanguageRepo{db: db}
}

// List returns all languages ordered by id
func (r *LanguageRepo) List(ctx context.Context) ([]domain.Language, error) {
	var languages []domain.Language
	err := r.db.SelectContext(ctx, &languages, `SELECT id, name, is_default FROM languages ORDER BY id`)
	return languages, err
}

// GetByID returns the language or nil
func (r *LanguageRepo) GetByID(ctx context.Context, id int64) (*domain.Language, error) {
	return r.get(ctx, `SELECT id, name, is_default FROM languages WHERE id = $1`, id)
}

// GetByName returns the language whose name matches exactly, or nil
func (r *LanguageRepo) GetByName(ctx context.Context, name string) (*domain.Language, error) {
	return r.get(ctx, `SELECT id, name, is_default FROM languages WHERE name = $1`, name)
}

// GetDefault returns the default language, or nil if none is flagged
func (r *LanguageRepo) GetDefault(ctx context.Context) (*domain.Language, error) {
	return r.get(ctx, `SELECT id, name, is_default FROM languages WHERE is_default LIMIT 1`)
}

func (r *LanguageRepo) get(ctx context.Context, query string, args ...interface{}) (*domain.Language, error) {
	var l domain.Language
	err := r.db.GetContext(ctx, &l, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}
