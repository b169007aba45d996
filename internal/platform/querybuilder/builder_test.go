package querybuilder

import (
	"reflect"
	"testing"
)

func TestBuilders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		build     func() (string, []any, error)
		wantQuery string
		wantArgs  []any
	}{
		{
			name: "select with filters",
			build: Select("id", "data").
				From("tournaments").
				Where(Eq("completed", true), Expr("series_id = ?", "winter")).
				OrderBy("date ASC", "id ASC").
				Limit(5).
				ToSQL,
			wantQuery: "SELECT id, data FROM tournaments WHERE completed = $1 AND series_id = $2 ORDER BY date ASC, id ASC LIMIT 5",
			wantArgs:  []any{true, "winter"},
		},
		{
			name: "multi row insert",
			build: InsertInto("tournament_series").
				Columns("id", "name").
				Values("s1", "Winter").
				Values("s2", "Summer").
				Suffix("ON CONFLICT (id) DO NOTHING").
				ToSQL,
			wantQuery: "INSERT INTO tournament_series (id, name) VALUES ($1, $2), ($3, $4) ON CONFLICT (id) DO NOTHING",
			wantArgs:  []any{"s1", "Winter", "s2", "Summer"},
		},
		{
			name: "update",
			build: Update("tournaments").
				Set("name", "Friday Open").
				SetExpr("updated_at", "NOW()").
				Where(Eq("id", int64(7))).
				ToSQL,
			wantQuery: "UPDATE tournaments SET name = $1, updated_at = NOW() WHERE id = $2",
			wantArgs:  []any{"Friday Open", int64(7)},
		},
		{
			name:      "delete",
			build:     DeleteFrom("tournaments").Where(Eq("id", int64(7)), Expr("completed = ?", false)).ToSQL,
			wantQuery: "DELETE FROM tournaments WHERE id = $1 AND completed = $2",
			wantArgs:  []any{int64(7), false},
		},
		{
			name:      "delete all",
			build:     DeleteFrom("player_rankings").All().ToSQL,
			wantQuery: "DELETE FROM player_rankings",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			query, args, err := tc.build()
			if err != nil {
				t.Fatalf("build query: %v", err)
			}
			if query != tc.wantQuery {
				t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", tc.wantQuery, query)
			}
			if len(args) != len(tc.wantArgs) || (len(args) > 0 && !reflect.DeepEqual(args, tc.wantArgs)) {
				t.Fatalf("unexpected args: %+v", args)
			}
		})
	}
}

func TestBuilders_RejectUnscopedWrites(t *testing.T) {
	t.Parallel()

	if _, _, err := Update("tournaments").Set("name", "x").ToSQL(); err == nil {
		t.Fatalf("expected update without where to fail")
	}
	if _, _, err := DeleteFrom("tournaments").ToSQL(); err == nil {
		t.Fatalf("expected delete without where to fail")
	}
	if _, _, err := InsertInto("t").Columns("a", "b").Values(1).ToSQL(); err == nil {
		t.Fatalf("expected short row to fail")
	}
}

type rowModel struct {
	ID      int64  `db:"id"`
	Name    string `db:"name"`
	Skipped string `db:"-"`
	Plain   string
	hidden  string
}

func TestInsertModels(t *testing.T) {
	t.Parallel()

	rows := []rowModel{{ID: 1, Name: "a", hidden: "x"}, {ID: 2, Name: "b"}}
	query, args, err := InsertModels("players", rows, "ON CONFLICT (id) DO NOTHING")
	if err != nil {
		t.Fatalf("insert models: %v", err)
	}
	wantQuery := "INSERT INTO players (id, name) VALUES ($1, $2), ($3, $4) ON CONFLICT (id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if !reflect.DeepEqual(args, []any{int64(1), "a", int64(2), "b"}) {
		t.Fatalf("unexpected args: %+v", args)
	}
	if cols := Columns(rowModel{}); !reflect.DeepEqual(cols, []string{"id", "name"}) {
		t.Fatalf("unexpected columns: %v", cols)
	}
	if _, _, err := InsertModels[rowModel]("players", nil, ""); err == nil {
		t.Fatalf("expected error for empty model list")
	}
}
