package guarded

import (
	"context"

	"github.com/Xadero/slsd/internal/domain/ranking"
	"github.com/Xadero/slsd/internal/domain/series"
	"github.com/Xadero/slsd/internal/domain/tournament"
	"github.com/Xadero/slsd/internal/platform/resilience"
)

type TournamentRepository struct {
	next  tournament.Repository
	guard guard
}

func NewTournamentRepository(next tournament.Repository, breaker *resilience.CircuitBreaker) *TournamentRepository {
	return &TournamentRepository{next: next, guard: guard{breaker: breaker, name: "tournaments"}}
}

func (r *TournamentRepository) Create(ctx context.Context, t tournament.Tournament) error {
	return exec(ctx, r.guard, "create", func(ctx context.Context) error { return r.next.Create(ctx, t) })
}

func (r *TournamentRepository) Update(ctx context.Context, t tournament.Tournament) error {
	return exec(ctx, r.guard, "update", func(ctx context.Context) error { return r.next.Update(ctx, t) })
}

func (r *TournamentRepository) Delete(ctx context.Context, id int64) error {
	return exec(ctx, r.guard, "delete", func(ctx context.Context) error { return r.next.Delete(ctx, id) })
}

type tournamentLookup struct {
	value  tournament.Tournament
	exists bool
}

func (r *TournamentRepository) GetByID(ctx context.Context, id int64) (tournament.Tournament, bool, error) {
	found, err := call(ctx, r.guard, "get", func(ctx context.Context) (tournamentLookup, error) {
		t, exists, err := r.next.GetByID(ctx, id)
		return tournamentLookup{value: t, exists: exists}, err
	})
	return found.value, found.exists, err
}

func (r *TournamentRepository) List(ctx context.Context, filter tournament.Filter) ([]tournament.Tournament, error) {
	return call(ctx, r.guard, "list", func(ctx context.Context) ([]tournament.Tournament, error) {
		return r.next.List(ctx, filter)
	})
}

type RankingRepository struct {
	next  ranking.Repository
	guard guard
}

func NewRankingRepository(next ranking.Repository, breaker *resilience.CircuitBreaker) *RankingRepository {
	return &RankingRepository{next: next, guard: guard{breaker: breaker, name: "player_rankings"}}
}

func (r *RankingRepository) List(ctx context.Context) ([]ranking.PlayerRanking, error) {
	return call(ctx, r.guard, "list", r.next.List)
}

type rankingLookup struct {
	value  ranking.PlayerRanking
	exists bool
}

func (r *RankingRepository) GetByPlayerID(ctx context.Context, playerID int64) (ranking.PlayerRanking, bool, error) {
	found, err := call(ctx, r.guard, "get", func(ctx context.Context) (rankingLookup, error) {
		row, exists, err := r.next.GetByPlayerID(ctx, playerID)
		return rankingLookup{value: row, exists: exists}, err
	})
	return found.value, found.exists, err
}

func (r *RankingRepository) Create(ctx context.Context, row ranking.PlayerRanking) error {
	return exec(ctx, r.guard, "create", func(ctx context.Context) error { return r.next.Create(ctx, row) })
}

func (r *RankingRepository) ReplaceAll(ctx context.Context, rows []ranking.PlayerRanking) error {
	return exec(ctx, r.guard, "replace", func(ctx context.Context) error { return r.next.ReplaceAll(ctx, rows) })
}

type SeriesRepository struct {
	next  series.Repository
	guard guard
}

func NewSeriesRepository(next series.Repository, breaker *resilience.CircuitBreaker) *SeriesRepository {
	return &SeriesRepository{next: next, guard: guard{breaker: breaker, name: "tournament_series"}}
}

func (r *SeriesRepository) Create(ctx context.Context, s series.Series) error {
	return exec(ctx, r.guard, "create", func(ctx context.Context) error { return r.next.Create(ctx, s) })
}

type seriesLookup struct {
	value  series.Series
	exists bool
}

func (r *SeriesRepository) GetByID(ctx context.Context, id string) (series.Series, bool, error) {
	found, err := call(ctx, r.guard, "get", func(ctx context.Context) (seriesLookup, error) {
		s, exists, err := r.next.GetByID(ctx, id)
		return seriesLookup{value: s, exists: exists}, err
	})
	return found.value, found.exists, err
}

func (r *SeriesRepository) List(ctx context.Context) ([]series.Series, error) {
	return call(ctx, r.guard, "list", r.next.List)
}
