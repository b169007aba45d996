package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/Xadero/slsd/internal/domain/ranking"
)

// RankingRepository keeps the ranking table in display order.
type RankingRepository struct {
	mu   sync.RWMutex
	rows []ranking.PlayerRanking
}

func NewRankingRepository(rows []ranking.PlayerRanking) *RankingRepository {
	return &RankingRepository{rows: cloneRows(rows)}
}

func (r *RankingRepository) List(_ context.Context) ([]ranking.PlayerRanking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return cloneRows(r.rows), nil
}

func (r *RankingRepository) GetByPlayerID(_ context.Context, playerID int64) (ranking.PlayerRanking, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, row := range r.rows {
		if row.Player.ID == playerID {
			return cloneRow(row), true, nil
		}
	}

	return ranking.PlayerRanking{}, false, nil
}

func (r *RankingRepository) Create(_ context.Context, row ranking.PlayerRanking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.rows {
		if existing.Player.ID == row.Player.ID {
			return fmt.Errorf("ranking for player id=%d already exists", row.Player.ID)
		}
	}
	r.rows = append(r.rows, cloneRow(row))
	return nil
}

func (r *RankingRepository) ReplaceAll(_ context.Context, rows []ranking.PlayerRanking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows = cloneRows(rows)
	return nil
}

func cloneRows(rows []ranking.PlayerRanking) []ranking.PlayerRanking {
	out := make([]ranking.PlayerRanking, 0, len(rows))
	for _, row := range rows {
		out = append(out, cloneRow(row))
	}
	return out
}

func cloneRow(row ranking.PlayerRanking) ranking.PlayerRanking {
	row.TournamentPoints = append([]int{}, row.TournamentPoints...)
	return row
}
