package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Xadero/slsd/internal/domain/tournament"
)

type TournamentRepository struct {
	mu    sync.RWMutex
	items map[int64]tournament.Tournament
}

func NewTournamentRepository(tournaments []tournament.Tournament) *TournamentRepository {
	items := make(map[int64]tournament.Tournament, len(tournaments))
	for _, t := range tournaments {
		items[t.ID] = t.Clone()
	}

	return &TournamentRepository{items: items}
}

func (r *TournamentRepository) Create(_ context.Context, t tournament.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[t.ID]; exists {
		return fmt.Errorf("tournament id=%d already exists", t.ID)
	}
	r.items[t.ID] = t.Clone()
	return nil
}

func (r *TournamentRepository) Update(_ context.Context, t tournament.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[t.ID]; !exists {
		return fmt.Errorf("tournament id=%d not found", t.ID)
	}
	r.items[t.ID] = t.Clone()
	return nil
}

func (r *TournamentRepository) GetByID(_ context.Context, id int64) (tournament.Tournament, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.items[id]
	if !ok {
		return tournament.Tournament{}, false, nil
	}

	return t.Clone(), true, nil
}

func (r *TournamentRepository) List(_ context.Context, filter tournament.Filter) ([]tournament.Tournament, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

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

func (r *TournamentRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}
