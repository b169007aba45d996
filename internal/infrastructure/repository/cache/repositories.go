package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/Xadero/slsd/internal/domain/ranking"
	"github.com/Xadero/slsd/internal/domain/series"
	"github.com/Xadero/slsd/internal/domain/tournament"
	basecache "github.com/Xadero/slsd/internal/platform/cache"
)

type cachedTournamentByID struct {
	value  tournament.Tournament
	exists bool
}

// TournamentRepository caches snapshot reads. Every write drops the
// tournament's entry and all cached lists.
type TournamentRepository struct {
	next  tournament.Repository
	byID  *basecache.Store[cachedTournamentByID]
	lists *basecache.Store[[]tournament.Tournament]
}

func NewTournamentRepository(next tournament.Repository, ttl time.Duration) *TournamentRepository {
	return &TournamentRepository{
		next:  next,
		byID:  basecache.NewStore[cachedTournamentByID](ttl),
		lists: basecache.NewStore[[]tournament.Tournament](ttl),
	}
}

func tournamentKey(id int64) string {
	return "tournament:id:" + strconv.FormatInt(id, 10)
}

func (r *TournamentRepository) Create(ctx context.Context, t tournament.Tournament) error {
	if err := r.next.Create(ctx, t); err != nil {
		return err
	}
	r.invalidate(ctx, t.ID)
	return nil
}

func (r *TournamentRepository) Update(ctx context.Context, t tournament.Tournament) error {
	if err := r.next.Update(ctx, t); err != nil {
		return err
	}
	r.invalidate(ctx, t.ID)
	return nil
}

func (r *TournamentRepository) Delete(ctx context.Context, id int64) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *TournamentRepository) GetByID(ctx context.Context, id int64) (tournament.Tournament, bool, error) {
	cached, err := r.byID.GetOrLoad(ctx, tournamentKey(id), func(ctx context.Context) (cachedTournamentByID, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return cachedTournamentByID{}, err
		}
		return cachedTournamentByID{value: item.Clone(), exists: exists}, nil
	})
	if err != nil {
		return tournament.Tournament{}, false, err
	}

	return cached.value.Clone(), cached.exists, nil
}

func (r *TournamentRepository) List(ctx context.Context, filter tournament.Filter) ([]tournament.Tournament, error) {
	key := "tournament:list:" + string(filter.Status) + ":" + filter.SeriesID
	items, err := r.lists.GetOrLoad(ctx, key, func(ctx context.Context) ([]tournament.Tournament, error) {
		return r.next.List(ctx, filter)
	})
	if err != nil {
		return nil, err
	}

	out := make([]tournament.Tournament, 0, len(items))
	for _, t := range items {
		out = append(out, t.Clone())
	}
	return out, nil
}

func (r *TournamentRepository) invalidate(ctx context.Context, id int64) {
	r.byID.Invalidate(ctx, tournamentKey(id))
	r.lists.InvalidatePrefix(ctx, "tournament:list:")
}

type RankingRepository struct {
	next  ranking.Repository
	cache *basecache.Store[[]ranking.PlayerRanking]
}

func NewRankingRepository(next ranking.Repository, ttl time.Duration) *RankingRepository {
	return &RankingRepository{next: next, cache: basecache.NewStore[[]ranking.PlayerRanking](ttl)}
}

const rankingListKey = "ranking:list"

func (r *RankingRepository) List(ctx context.Context) ([]ranking.PlayerRanking, error) {
	rows, err := r.cache.GetOrLoad(ctx, rankingListKey, r.next.List)
	if err != nil {
		return nil, err
	}

	return cloneRows(rows), nil
}

// GetByPlayerID is served from the cached table.
func (r *RankingRepository) GetByPlayerID(ctx context.Context, playerID int64) (ranking.PlayerRanking, bool, error) {
	rows, err := r.List(ctx)
	if err != nil {
		return ranking.PlayerRanking{}, false, err
	}
	for _, row := range rows {
		if row.Player.ID == playerID {
			return row, true, nil
		}
	}

	return ranking.PlayerRanking{}, false, nil
}

func (r *RankingRepository) Create(ctx context.Context, row ranking.PlayerRanking) error {
	if err := r.next.Create(ctx, row); err != nil {
		return err
	}
	r.cache.Invalidate(ctx, rankingListKey)
	return nil
}

func (r *RankingRepository) ReplaceAll(ctx context.Context, rows []ranking.PlayerRanking) error {
	if err := r.next.ReplaceAll(ctx, rows); err != nil {
		return err
	}
	r.cache.Invalidate(ctx, rankingListKey)
	return nil
}

func cloneRows(rows []ranking.PlayerRanking) []ranking.PlayerRanking {
	out := make([]ranking.PlayerRanking, 0, len(rows))
	for _, row := range rows {
		row.TournamentPoints = append([]int{}, row.TournamentPoints...)
		out = append(out, row)
	}
	return out
}

type SeriesRepository struct {
	next  series.Repository
	cache *basecache.Store[[]series.Series]
}

func NewSeriesRepository(next series.Repository, ttl time.Duration) *SeriesRepository {
	return &SeriesRepository{next: next, cache: basecache.NewStore[[]series.Series](ttl)}
}

const seriesListKey = "series:list"

func (r *SeriesRepository) Create(ctx context.Context, s series.Series) error {
	if err := r.next.Create(ctx, s); err != nil {
		return err
	}
	r.cache.Invalidate(ctx, seriesListKey)
	return nil
}

func (r *SeriesRepository) List(ctx context.Context) ([]series.Series, error) {
	items, err := r.cache.GetOrLoad(ctx, seriesListKey, r.next.List)
	if err != nil {
		return nil, err
	}

	return append([]series.Series(nil), items...), nil
}

func (r *SeriesRepository) GetByID(ctx context.Context, id string) (series.Series, bool, error) {
	items, err := r.List(ctx)
	if err != nil {
		return series.Series{}, false, err
	}
	for _, s := range items {
		if s.ID == id {
			return s, true, nil
		}
	}

	return series.Series{}, false, nil
}
