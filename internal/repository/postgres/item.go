package postgres

import (
	"context"
	"database/sql"
	"errors"

	"catalogbot/internal/domain"

	"github.com/jmoiron/sqlx"
)

// ItemRepo implements repository.ItemRepository.
// Items are sequenced by primary key inside their category.
type ItemRepo struct {
	db *sqlx.DB
}

// NewItemRepo creates a new item repository
func NewItemRepo(db *sqlx.DB) *ItemRepo {
	return &ItemRepo{db: db}
}

// ListByCategory returns all items of a category ordered by id
func (r *ItemRepo) ListByCategory(ctx context.Context, categoryID int64) ([]domain.Item, error) {
	var items []domain.Item
	query := `SELECT id, category_id FROM items WHERE category_id = $1 ORDER BY id`
	err := r.db.SelectContext(ctx, &items, query, categoryID)
	return items, err
}

// Get returns the item if it belongs to the category
func (r *ItemRepo) Get(ctx context.Context, categoryID, itemID int64) (*domain.Item, error) {
	query := `SELECT id, category_id FROM items WHERE category_id = $1 AND id = $2`
	return r.get(ctx, query, categoryID, itemID)
}

// First returns the item with the smallest id
func (r *ItemRepo) First(ctx context.Context, categoryID int64) (*domain.Item, error) {
	query := `SELECT id, category_id FROM items WHERE category_id = $1 ORDER BY id LIMIT 1`
	return r.get(ctx, query, categoryID)
}

// After returns the first item with id strictly greater than itemID
func (r *ItemRepo) After(ctx context.Context, categoryID, itemID int64) (*domain.Item, error) {
	query := `SELECT id, category_id FROM items WHERE category_id = $1 AND id > $2 ORDER BY id LIMIT 1`
	return r.get(ctx, query, categoryID, itemID)
}

// Before returns the last item with id strictly less than itemID
func (r *ItemRepo) Before(ctx context.Context, categoryID, itemID int64) (*domain.Item, error) {
	query := `SELECT id, category_id FROM items WHERE category_id = $1 AND id < $2 ORDER BY id DESC LIMIT 1`
	return r.get(ctx, query, categoryID, itemID)
}

// Entries returns item entries in the language, or in the default language
// when the item has none in the requested one
func (r *ItemRepo) Entries(ctx context.Context, itemID, languageID int64) ([]domain.Entry, error) {
	query := `
		SELECT id, item_id, description, long_description, price, currency, show_price
		FROM entries
		WHERE item_id = $1
			AND language_id = COALESCE(
				(SELECT language_id FROM entries WHERE item_id = $1 AND language_id = $2 LIMIT 1),
				` + defaultLanguage + `
			)
		ORDER BY id
	`
	var entries []domain.Entry
	err := r.db.SelectContext(ctx, &entries, query, itemID, languageID)
	return entries, err
}

// Covers returns item images ordered by id
func (r *ItemRepo) Covers(ctx context.Context, itemID int64) ([]domain.Cover, error) {
	var covers []domain.Cover
	err := r.db.SelectContext(ctx, &covers, `SELECT id, file FROM covers WHERE item_id = $1 ORDER BY id`, itemID)
	return covers, err
}

func (r *ItemRepo) get(ctx context.Context, query string, args ...interface{}) (*domain.Item, error) {
	var it domain.Item
	err := r.db.GetContext(ctx, &it, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}
