package postgres

import (
	"context"
	"database/sql"
	"errors"

	"catalogbot/internal/domain"

	"github.com/jmoiron/sqlx"
)

// categorySelect resolves the name in $1 falling back to the default language,
// then to any non-empty name. child_count is computed on every read.
const categorySelect = `
	SELECT c.id, c.parent_id, c.has_models, c.priority,
		COALESCE(NULLIF(n.name, ''), NULLIF(d.name, ''),
			(SELECT a.name FROM category_names a
			WHERE a.category_id = c.id AND a.name <> ''
			ORDER BY a.language_id LIMIT 1), '') AS name,
		(SELECT COUNT(*) FROM categories s WHERE s.parent_id = c.id) AS child_count
	FROM categories c
	LEFT JOIN category_names n ON n.category_id = c.id AND n.language_id = $1
	LEFT JOIN category_names d ON d.category_id = c.id AND d.language_id = ` + defaultLanguage

// CategoryRepo implements repository.CategoryRepository
type CategoryRepo struct {
	db *sqlx.DB
}

// NewCategoryRepo creates a new category repository
func NewCategoryRepo(db *sqlx.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// ListRoot returns top-level categories by priority descending
func (r *CategoryRepo) ListRoot(ctx context.Context, languageID int64) ([]domain.Category, error) {
	query := categorySelect + `
	WHERE c.parent_id IS NULL
	ORDER BY c.priority DESC, c.id`

	var categories []domain.Category
	err := r.db.SelectContext(ctx, &categories, query, languageID)
	return categories, err
}

// ListChildren returns subcategories of parentID by priority descending
func (r *CategoryRepo) ListChildren(ctx context.Context, parentID, languageID int64) ([]domain.Category, error) {
	query := categorySelect + `
	WHERE c.parent_id = $2
	ORDER BY c.priority DESC, c.id`

	var categories []domain.Category
	err := r.db.SelectContext(ctx, &categories, query, languageID, parentID)
	return categories, err
}

// Get returns the category or nil if it does not exist
func (r *CategoryRepo) Get(ctx context.Context, id, languageID int64) (*domain.Category, error) {
	query := categorySelect + `
	WHERE c.id = $2`

	var c domain.Category
	err := r.db.GetContext(ctx, &c, query, languageID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
