package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Xadero/slsd/internal/domain/ranking"
	"github.com/Xadero/slsd/internal/domain/series"
	"github.com/Xadero/slsd/internal/domain/tournament"
	"github.com/Xadero/slsd/internal/platform/id"
	"github.com/Xadero/slsd/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

// SeriesOverview is the dashboard card of one series.
type SeriesOverview struct {
	Series      series.Series           `json:"series"`
	Tournaments int                     `json:"tournaments"`
	Leader      *ranking.PlayerRanking  `json:"leader,omitempty"`
	Rankings    []ranking.PlayerRanking `json:"rankings"`
}

type SeriesService struct {
	seriesRepo     series.Repository
	tournamentRepo tournament.Repository
	ids            id.Generator
	scoring        ScoringConfig
	workers        int
	logger         *logging.Logger
	now            func() time.Time
}

func NewSeriesService(
	seriesRepo series.Repository,
	tournamentRepo tournament.Repository,
	ids id.Generator,
	scoring ScoringConfig,
	workers int,
	logger *logging.Logger,
) *SeriesService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers <= 0 {
		workers = 4
	}
	return &SeriesService{
		seriesRepo:     seriesRepo,
		tournamentRepo: tournamentRepo,
		ids:            ids,
		scoring:        scoring,
		workers:        workers,
		logger:         logger.Named("series"),
		now:            time.Now,
	}
}

func (s *SeriesService) Create(ctx context.Context, name string) (series.Series, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeriesService.Create")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return series.Series{}, fmt.Errorf("%w: series name is required", ErrInvalidInput)
	}
	seriesID, err := s.ids.NewID()
	if err != nil {
		return series.Series{}, spanError(span, fmt.Errorf("generate series id: %w", err))
	}

	item := series.Series{ID: seriesID, Name: name, CreatedAt: s.now().UTC()}
	if err := item.Validate(); err != nil {
		return series.Series{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.seriesRepo.Create(ctx, item); err != nil {
		return series.Series{}, spanError(span, fmt.Errorf("create series: %w", err))
	}

	s.logger.InfoContext(ctx, "series created", "series_id", item.ID, "name", item.Name)
	return item, nil
}

func (s *SeriesService) List(ctx context.Context) ([]series.Series, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeriesService.List")
	defer span.End()

	items, err := s.seriesRepo.List(ctx)
	if err != nil {
		return nil, spanError(span, fmt.Errorf("list series: %w", err))
	}
	return items, nil
}

func (s *SeriesService) Get(ctx context.Context, seriesID string) (series.Series, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeriesService.Get", attribute.String("series.id", seriesID))
	defer span.End()

	seriesID = strings.TrimSpace(seriesID)
	if seriesID == "" {
		return series.Series{}, fmt.Errorf("%w: series id is required", ErrInvalidInput)
	}
	item, exists, err := s.seriesRepo.GetByID(ctx, seriesID)
	if err != nil {
		return series.Series{}, spanError(span, fmt.Errorf("get series: %w", err))
	}
	if !exists {
		return series.Series{}, fmt.Errorf("%w: series=%s", ErrNotFound, seriesID)
	}
	return item, nil
}

// Overview computes every series ranking in parallel from one history read.
func (s *SeriesService) Overview(ctx context.Context) ([]SeriesOverview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeriesService.Overview")
	defer span.End()

	registry, err := s.seriesRepo.List(ctx)
	if err != nil {
		return nil, spanError(span, fmt.Errorf("list series: %w", err))
	}
	if len(registry) == 0 {
		return []SeriesOverview{}, nil
	}
	history, err := s.tournamentRepo.List(ctx, tournament.Filter{Status: tournament.StatusCompleted})
	if err != nil {
		return nil, spanError(span, fmt.Errorf("list completed tournaments: %w", err))
	}

	bySeries := make(map[string][]tournament.Tournament, len(registry))
	for _, t := range history {
		if t.SeriesID != "" {
			bySeries[t.SeriesID] = append(bySeries[t.SeriesID], t)
		}
	}

	p := pool.NewWithResults[SeriesOverview]().
		WithContext(ctx).
		WithMaxGoroutines(s.workers)
	for _, item := range registry {
		item := item
		items := bySeries[item.ID]
		p.Go(func(ctx context.Context) (SeriesOverview, error) {
			if err := ctx.Err(); err != nil {
				return SeriesOverview{}, err
			}
			rows := ranking.ComputeSeries(items, item.ID, s.scoring.Points, s.scoring.Rules)
			out := SeriesOverview{Series: item, Tournaments: len(items), Rankings: rows}
			if len(rows) > 0 {
				leader := rows[0]
				out.Leader = &leader
			}
			return out, nil
		})
	}
	out, err := p.Wait()
	if err != nil {
		return nil, spanError(span, fmt.Errorf("compute series overview: %w", err))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Series.CreatedAt.Equal(out[j].Series.CreatedAt) {
			return out[i].Series.CreatedAt.Before(out[j].Series.CreatedAt)
		}
		return out[i].Series.ID < out[j].Series.ID
	})
	return out, nil
}
