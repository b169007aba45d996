package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/Xadero/slsd/internal/domain/series"
	qb "github.com/Xadero/slsd/internal/platform/querybuilder"
)

const seriesTable = "tournament_series"

type SeriesRepository struct {
	db *sqlx.DB
}

func NewSeriesRepository(db *sqlx.DB) *SeriesRepository {
	return &SeriesRepository{db: db}
}

func (r *SeriesRepository) Create(ctx context.Context, s series.Series) error {
	query, args, err := qb.InsertModel(seriesTable, seriesTableModel{ID: s.ID, Name: s.Name, CreatedAt: s.CreatedAt.UTC()}, "")
	if err != nil {
		return crerr.Wrap(err, "build insert series query")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrapf(err, "insert series id=%s", s.ID)
	}
	return nil
}

func (r *SeriesRepository) GetByID(ctx context.Context, id string) (series.Series, bool, error) {
	query, args, err := qb.Select(qb.Columns(seriesTableModel{})...).From(seriesTable).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return series.Series{}, false, crerr.Wrap(err, "build get series query")
	}

	var row seriesTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return series.Series{}, false, nil
		}
		return series.Series{}, false, crerr.Wrapf(err, "get series id=%s", id)
	}
	return series.Series(row), true, nil
}

func (r *SeriesRepository) List(ctx context.Context) ([]series.Series, error) {
	query, args, err := qb.Select(qb.Columns(seriesTableModel{})...).From(seriesTable).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build list series query")
	}

	var rows []seriesTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "list series")
	}

	out := make([]series.Series, 0, len(rows))
	for _, row := range rows {
		out = append(out, series.Series(row))
	}
	return out, nil
}
