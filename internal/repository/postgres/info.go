package postgres

import (
	"context"
	"database/sql"
	"errors"

	"catalogbot/internal/domain"

	"github.com/jmoiron/sqlx"
)

const infoSelect = `
	SELECT i.id, i.priority,
		COALESCE(NULLIF(n.name, ''), NULLIF(dn.name, ''),
			(SELECT a.name FROM info_page_names a
			WHERE a.info_id = i.id AND a.name <> ''
			ORDER BY a.language_id LIMIT 1), '') AS name,
		COALESCE(ds.description, dd.description, '') AS description
	FROM info_pages i
	LEFT JOIN info_page_names n ON n.info_id = i.id AND n.language_id = $1
	LEFT JOIN info_page_names dn ON dn.info_id = i.id AND dn.language_id = ` + defaultLanguage + `
	LEFT JOIN info_page_descriptions ds ON ds.info_id = i.id AND ds.language_id = $1
	LEFT JOIN info_page_descriptions dd ON dd.info_id = i.id AND dd.language_id = ` + defaultLanguage

// InfoRepo implements repository.InfoRepository
type InfoRepo struct {
	db *sqlx.DB
}

// NewInfoRepo creates a new info page repository
func NewInfoRepo(db *sqlx.DB) *InfoRepo {
	return &InfoRepo{db: db}
}

// List returns all info pages by priority descending
func (r *InfoRepo) List(ctx context.Context, languageID int64) ([]domain.InfoPage, error) {
	var pages []domain.InfoPage
	err := r.db.SelectContext(ctx, &pages, infoSelect+`
	ORDER BY i.priority DESC, i.id`, languageID)
	return pages, err
}

// Get returns the info page or nil if it does not exist
func (r *InfoRepo) Get(ctx context.Context, id, languageID int64) (*domain.InfoPage, error) {
	var p domain.InfoPage
	err := r.db.GetContext(ctx, &p, infoSelect+`
	WHERE i.id = $2`, languageID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Maps returns the locations of an info page
func (r *InfoRepo) Maps(ctx context.Context, infoID int64) ([]domain.MapPoint, error) {
	var points []domain.MapPoint
	err := r.db.SelectContext(ctx, &points, `SELECT id, lat, long FROM maps WHERE info_id = $1 ORDER BY id`, infoID)
	return points, err
}

// Covers returns info page images ordered by id
func (r *InfoRepo) Covers(ctx context.Context, infoID int64) ([]domain.Cover, error) {
	var covers []domain.Cover
	err := r.db.SelectContext(ctx, &covers, `SELECT id, file FROM covers WHERE info_id = $1 ORDER BY id`, infoID)
	return covers, err
}
