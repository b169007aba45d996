package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/Xadero/slsd/internal/domain/series"
)

type SeriesRepository struct {
	mu     sync.RWMutex
	items  map[string]series.Series
	orders []string
}

func NewSeriesRepository(items []series.Series) *SeriesRepository {
	r := &SeriesRepository{
		items:  make(map[string]series.Series, len(items)),
		orders: make([]string, 0, len(items)),
	}
	for _, s := range items {
		r.items[s.ID] = s
		r.orders = append(r.orders, s.ID)
	}

	return r
}

func (r *SeriesRepository) Create(_ context.Context, s series.Series) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[s.ID]; exists {
		return fmt.Errorf("series id=%s already exists", s.ID)
	}
	r.items[s.ID] = s
	r.orders = append(r.orders, s.ID)
	return nil
}

func (r *SeriesRepository) GetByID(_ context.Context, id string) (series.Series, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[id]
	if !ok {
		return series.Series{}, false, nil
	}

	return s, true, nil
}

func (r *SeriesRepository) List(_ context.Context) ([]series.Series, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]series.Series, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}

	return out, nil
}
