package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/Xadero/slsd/internal/domain/player"
	"github.com/Xadero/slsd/internal/domain/ranking"
	"github.com/Xadero/slsd/internal/domain/series"
	"github.com/Xadero/slsd/internal/domain/tournament"
	"github.com/Xadero/slsd/internal/platform/id"
)

type stubTournamentRepo struct {
	mu    sync.Mutex
	items map[int64]tournament.Tournament
}

func newStubTournamentRepo(items ...tournament.Tournament) *stubTournamentRepo {
	r := &stubTournamentRepo{items: make(map[int64]tournament.Tournament)}
	for _, t := range items {
		r.items[t.ID] = t.Clone()
	}
	return r
}

func (r *stubTournamentRepo) Create(_ context.Context, t tournament.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[t.ID]; ok {
		return fmt.Errorf("tournament %d already exists", t.ID)
	}
	r.items[t.ID] = t.Clone()
	return nil
}

func (r *stubTournamentRepo) Update(_ context.Context, t tournament.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[t.ID]; !ok {
		return fmt.Errorf("tournament %d not found", t.ID)
	}
	r.items[t.ID] = t.Clone()
	return nil
}

func (r *stubTournamentRepo) GetByID(_ context.Context, id int64) (tournament.Tournament, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.items[id]
	if !ok {
		return tournament.Tournament{}, false, nil
	}
	return t.Clone(), true, nil
}

func (r *stubTournamentRepo) List(_ context.Context, filter tournament.Filter) ([]tournament.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]tournament.Tournament, 0, len(r.items))
	for _, t := range r.items {
		if filter.Matches(t) {
			out = append(out, t.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *stubTournamentRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

type stubRankingRepo struct {
	mu   sync.Mutex
	rows []ranking.PlayerRanking
}

func (r *stubRankingRepo) List(context.Context) ([]ranking.PlayerRanking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ranking.PlayerRanking(nil), r.rows...), nil
}

func (r *stubRankingRepo) GetByPlayerID(_ context.Context, playerID int64) (ranking.PlayerRanking, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.Player.ID == playerID {
			return row, true, nil
		}
	}
	return ranking.PlayerRanking{}, false, nil
}

func (r *stubRankingRepo) Create(_ context.Context, row ranking.PlayerRanking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, row)
	return nil
}

func (r *stubRankingRepo) ReplaceAll(_ context.Context, rows []ranking.PlayerRanking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append([]ranking.PlayerRanking(nil), rows...)
	return nil
}

type stubSeriesRepo struct {
	mu    sync.Mutex
	items []series.Series
}

func (r *stubSeriesRepo) Create(_ context.Context, s series.Series) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, s)
	return nil
}

func (r *stubSeriesRepo) GetByID(_ context.Context, id string) (series.Series, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.items {
		if s.ID == id {
			return s, true, nil
		}
	}
	return series.Series{}, false, nil
}

func (r *stubSeriesRepo) List(context.Context) ([]series.Series, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]series.Series(nil), r.items...), nil
}

type stubSeriesIDs struct {
	mu   sync.Mutex
	next int
}

func (g *stubSeriesIDs) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("series-%d", g.next), nil
}

func playerNamed(id int64) player.Player {
	return player.Player{ID: id, Name: fmt.Sprintf("player-%02d", id)}
}

// openTournament is a single-group, four-player tournament with no results.
func openTournament(t *testing.T) tournament.Tournament {
	t.Helper()

	players := []player.Player{playerNamed(1), playerNamed(2), playerNamed(3), playerNamed(4)}
	ids := id.NewSequence(0)
	return tournament.Tournament{
		ID:           500,
		Name:         "Open Night",
		Date:         time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Participants: players,
		Groups: []tournament.Group{{
			ID:      1,
			Players: players,
			Matches: tournament.ScheduleGroup(1, players, ids),
		}},
	}
}
