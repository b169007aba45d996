package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Xadero/slsd/internal/domain/series"
)

func TestRankingService_CreatePlayer(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newTournamentFixture(t)

	first, err := f.rankingSvc.CreatePlayer(ctx, "  Phil  ")
	if err != nil {
		t.Fatalf("create player: %v", err)
	}
	if first.Name != "Phil" || first.ID <= 0 {
		t.Fatalf("unexpected player: %+v", first)
	}
	if _, err := f.rankingSvc.CreatePlayer(ctx, "phil"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate name, got %v", err)
	}
	if _, err := f.rankingSvc.CreatePlayer(ctx, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}

	row, err := f.rankingSvc.PlayerRanking(ctx, first.ID)
	if err != nil {
		t.Fatalf("player ranking: %v", err)
	}
	if row.CurrentRank != 1 || row.TotalPoints != 0 {
		t.Fatalf("unexpected ranking row: %+v", row)
	}
	if _, err := f.rankingSvc.PlayerRanking(ctx, 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := f.rankingSvc.PlayerRanking(ctx, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRankingService_ListPlayersSortedByName(t *testing.T) {
	t.Parallel()

	f := newTournamentFixture(t)
	f.createPlayers(t, "Cleo", "anna", "Ben")

	got, err := f.rankingSvc.ListPlayers(context.Background())
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	want := []string{"anna", "Ben", "Cleo"}
	for i, p := range got {
		if p.Name != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], p.Name)
		}
	}
}

func TestRankingService_TournamentPointsAndRebuild(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newTournamentFixture(t)
	ids := f.createPlayers(t, "a", "b", "c", "d", "e", "f", "g", "h")
	tour := completeTournament(t, f, CreateTournamentInput{Name: "Cup", PlayerIDs: ids, Seed: seed(11)})

	awards, err := f.rankingSvc.TournamentPoints(ctx, tour.ID)
	if err != nil {
		t.Fatalf("tournament points: %v", err)
	}
	if len(awards) != 8 || awards[0].Points != 40 || awards[1].Points != 32 {
		t.Fatalf("unexpected awards: %+v", awards)
	}

	before, err := f.rankingSvc.GlobalRanking(ctx)
	if err != nil {
		t.Fatalf("global ranking: %v", err)
	}
	rebuilt, err := f.rankingSvc.Rebuild(ctx)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if len(rebuilt) != len(before) {
		t.Fatalf("expected %d rows after rebuild, got %d", len(before), len(rebuilt))
	}
	for i := range before {
		if rebuilt[i].Player.ID != before[i].Player.ID || rebuilt[i].TotalPoints != before[i].TotalPoints {
			t.Fatalf("row %d differs after rebuild: %+v vs %+v", i, rebuilt[i], before[i])
		}
	}
}

func TestRankingService_SeriesRanking(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newTournamentFixture(t)
	if err := f.series.Create(ctx, series.Series{ID: "spring", Name: "Spring", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("seed series: %v", err)
	}
	ids := f.createPlayers(t, "a", "b", "c", "d", "e", "f", "g", "h")
	completeTournament(t, f, CreateTournamentInput{Name: "Spring 1", PlayerIDs: ids, SeriesID: "spring", Seed: seed(5)})
	completeTournament(t, f, CreateTournamentInput{Name: "Open", PlayerIDs: ids, Seed: seed(6)})

	rows, err := f.rankingSvc.SeriesRanking(ctx, "spring")
	if err != nil {
		t.Fatalf("series ranking: %v", err)
	}
	total := 0
	for _, row := range rows {
		total += row.TotalPoints
		if len(row.TournamentPoints) != 1 {
			t.Fatalf("expected one series result per player, got %+v", row.TournamentPoints)
		}
	}
	if total != 210 {
		t.Fatalf("expected only the series tournament to count, got %d points", total)
	}

	if _, err := f.rankingSvc.SeriesRanking(ctx, "autumn"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := f.rankingSvc.SeriesRanking(ctx, " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
