package postgres

import (
	"database/sql"
	"time"
)

type tournamentTableModel struct {
	ID        int64          `db:"id"`
	Name      string         `db:"name"`
	Date      time.Time      `db:"date"`
	Data      string         `db:"data"`
	Completed bool           `db:"completed"`
	SeriesID  sql.NullString `db:"series_id"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

type tournamentInsertModel struct {
	ID        int64          `db:"id"`
	Name      string         `db:"name"`
	Date      time.Time      `db:"date"`
	Data      string         `db:"data"`
	Completed bool           `db:"completed"`
	SeriesID  sql.NullString `db:"series_id"`
}
