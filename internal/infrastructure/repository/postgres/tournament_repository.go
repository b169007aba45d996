package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/Xadero/slsd/internal/domain/tournament"
	qb "github.com/Xadero/slsd/internal/platform/querybuilder"
)

const tournamentTable = "tournaments"

var tournamentSelectColumns = []string{
	"id",
	"name",
	"date",
	"data::text AS data",
	"completed",
	"series_id",
	"created_at",
	"updated_at",
}

// TournamentRepository stores each tournament as one jsonb snapshot. Header
// columns are kept next to it for filtering.
type TournamentRepository struct {
	db *sqlx.DB
}

func NewTournamentRepository(db *sqlx.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func (r *TournamentRepository) Create(ctx context.Context, t tournament.Tournament) error {
	model, err := tournamentInsertModelFrom(t)
	if err != nil {
		return err
	}
	query, args, err := qb.InsertModel(tournamentTable, model, "")
	if err != nil {
		return crerr.Wrap(err, "build insert tournament query")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrapf(err, "insert tournament id=%d", t.ID)
	}
	return nil
}

func (r *TournamentRepository) Update(ctx context.Context, t tournament.Tournament) error {
	model, err := tournamentInsertModelFrom(t)
	if err != nil {
		return err
	}
	query, args, err := qb.Update(tournamentTable).
		Set("name", model.Name).
		Set("date", model.Date).
		Set("data", model.Data).
		Set("completed", model.Completed).
		Set("series_id", model.SeriesID).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", t.ID)).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build update tournament query")
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return crerr.Wrapf(err, "update tournament id=%d", t.ID)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return crerr.Wrap(err, "read affected rows")
	}
	if affected == 0 {
		return crerr.Newf("tournament id=%d not found", t.ID)
	}
	return nil
}

func (r *TournamentRepository) GetByID(ctx context.Context, id int64) (tournament.Tournament, bool, error) {
	query, args, err := qb.Select(tournamentSelectColumns...).From(tournamentTable).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return tournament.Tournament{}, false, crerr.Wrap(err, "build get tournament query")
	}

	var row tournamentTableModel
	err = r.db.GetContext(ctx, &row, query, args...)
	if isRetryablePooling(err) {
		err = r.db.GetContext(ctx, &row, query, args...)
	}
	if err != nil {
		if isNotFound(err) {
			return tournament.Tournament{}, false, nil
		}
		return tournament.Tournament{}, false, crerr.Wrapf(err, "get tournament id=%d", id)
	}

	t, err := tournamentFromRow(row)
	if err != nil {
		return tournament.Tournament{}, false, err
	}
	return t, true, nil
}

func (r *TournamentRepository) List(ctx context.Context, filter tournament.Filter) ([]tournament.Tournament, error) {
	conditions := make([]qb.Condition, 0, 2)
	switch filter.Status {
	case tournament.StatusCompleted:
		conditions = append(conditions, qb.Eq("completed", true))
	case tournament.StatusIncomplete:
		conditions = append(conditions, qb.Eq("completed", false))
	}
	if filter.SeriesID != "" {
		conditions = append(conditions, qb.Eq("series_id", filter.SeriesID))
	}

	query, args, err := qb.Select(tournamentSelectColumns...).From(tournamentTable).
		Where(conditions...).
		OrderBy("date", "id").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build list tournaments query")
	}

	var rows []tournamentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "list tournaments")
	}

	out := make([]tournament.Tournament, 0, len(rows))
	for _, row := range rows {
		t, err := tournamentFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *TournamentRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := qb.DeleteFrom(tournamentTable).Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build delete tournament query")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrapf(err, "delete tournament id=%d", id)
	}
	return nil
}

func tournamentInsertModelFrom(t tournament.Tournament) (tournamentInsertModel, error) {
	data, err := tournament.MarshalSnapshot(t)
	if err != nil {
		return tournamentInsertModel{}, crerr.Wrapf(err, "encode tournament id=%d", t.ID)
	}
	return tournamentInsertModel{
		ID:        t.ID,
		Name:      t.Name,
		Date:      t.Date.UTC(),
		Data:      string(data),
		Completed: t.Completed,
		SeriesID:  nullString(t.SeriesID),
	}, nil
}

func tournamentFromRow(row tournamentTableModel) (tournament.Tournament, error) {
	t, err := tournament.UnmarshalSnapshot([]byte(row.Data))
	if err != nil {
		return tournament.Tournament{}, crerr.Wrapf(err, "decode tournament id=%d", row.ID)
	}
	// Header columns are authoritative.
	t.ID = row.ID
	t.Completed = row.Completed
	t.SeriesID = row.SeriesID.String
	return t, nil
}
