package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/Xadero/slsd/internal/domain/ranking"
	"github.com/Xadero/slsd/internal/domain/series"
	"github.com/Xadero/slsd/internal/domain/tournament"
	"github.com/Xadero/slsd/internal/platform/logging"
	"github.com/Xadero/slsd/internal/platform/resilience"
	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/attribute"
)

const (
	ImportStatusCreated = "created"
	ImportStatusUpdated = "updated"
	ImportStatusFailed  = "failed"
)

type ImportDocument struct {
	Source string
	Data   []byte
}

type ImportItem struct {
	Source       string `json:"source"`
	TournamentID int64  `json:"tournamentId,omitempty"`
	Status       string `json:"status"`
	Message      string `json:"message,omitempty"`
}

type ImportResult struct {
	Created int          `json:"created"`
	Updated int          `json:"updated"`
	Failed  int          `json:"failed"`
	Items   []ImportItem `json:"items"`
}

type idObserver interface {
	Observe(id int64)
}

type rankingRebuilder interface {
	Rebuild(ctx context.Context) ([]ranking.PlayerRanking, error)
}

// ImportService loads tournament snapshots exported elsewhere. Documents are
// decoded in parallel and written one at a time in input order, each under the
// same per-tournament lock TournamentService mutates with.
type ImportService struct {
	tournamentRepo tournament.Repository
	seriesRepo     series.Repository
	rankings       rankingRebuilder
	ids            idObserver
	locks          *resilience.KeyedMutex[int64]
	workers        int
	logger         *logging.Logger
}

func NewImportService(
	tournamentRepo tournament.Repository,
	seriesRepo series.Repository,
	rankings rankingRebuilder,
	ids idObserver,
	locks *resilience.KeyedMutex[int64],
	workers int,
	logger *logging.Logger,
) *ImportService {
	if logger == nil {
		logger = logging.Default()
	}
	if locks == nil {
		locks = &resilience.KeyedMutex[int64]{}
	}
	if workers <= 0 {
		workers = 4
	}
	return &ImportService{
		tournamentRepo: tournamentRepo,
		seriesRepo:     seriesRepo,
		rankings:       rankings,
		ids:            ids,
		locks:          locks,
		workers:        workers,
		logger:         logger.Named("import"),
	}
}

type decoded struct {
	tournament tournament.Tournament
	err        error
}

// Import stores every valid document and, when rebuild is set and anything
// was stored, recomputes the global ranking.
func (s *ImportService) Import(ctx context.Context, docs []ImportDocument, rebuild bool) (ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.Import", attribute.Int("documents", len(docs)))
	defer span.End()

	result := ImportResult{Items: make([]ImportItem, 0, len(docs))}
	if len(docs) == 0 {
		return result, nil
	}

	parsed, err := s.decodeAll(docs)
	if err != nil {
		return ImportResult{}, spanError(span, err)
	}

	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		item := ImportItem{Source: doc.Source}
		status, err := s.store(ctx, parsed[i], rebuild)
		if err != nil {
			item.Status = ImportStatusFailed
			item.Message = err.Error()
			result.Failed++
			s.logger.WarnContext(ctx, "import document failed", "source", doc.Source, "error", err)
		} else {
			item.Status = status
			item.TournamentID = parsed[i].tournament.ID
			if status == ImportStatusCreated {
				result.Created++
			} else {
				result.Updated++
			}
		}
		result.Items = append(result.Items, item)
	}

	if rebuild && result.Created+result.Updated > 0 {
		if _, err := s.rankings.Rebuild(ctx); err != nil {
			return result, spanError(span, fmt.Errorf("rebuild ranking: %w", err))
		}
	}

	s.logger.InfoContext(ctx, "import finished",
		"created", result.Created,
		"updated", result.Updated,
		"failed", result.Failed,
	)
	return result, nil
}

func (s *ImportService) decodeAll(docs []ImportDocument) ([]decoded, error) {
	out := make([]decoded, len(docs))

	pool, err := ants.NewPool(min(s.workers, len(docs)))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i := range docs {
		i := i
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			t, err := tournament.UnmarshalSnapshot(docs[i].Data)
			out[i] = decoded{tournament: t, err: err}
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit decode task to worker pool: %w", err)
		}
	}
	workers.Wait()
	return out, nil
}

func (s *ImportService) store(ctx context.Context, doc decoded, rebuild bool) (string, error) {
	if doc.err != nil {
		return "", classify(doc.err)
	}
	t := doc.tournament
	if t.ID <= 0 {
		return "", fmt.Errorf("%w: tournament id must be > 0", ErrInvalidInput)
	}
	if t.SeriesID != "" {
		_, exists, err := s.seriesRepo.GetByID(ctx, t.SeriesID)
		if err != nil {
			return "", fmt.Errorf("get series: %w", err)
		}
		if !exists {
			return "", fmt.Errorf("%w: series=%s", ErrNotFound, t.SeriesID)
		}
	}

	s.observeIDs(t)

	unlock := s.locks.Lock(t.ID)
	defer unlock()

	stored, exists, err := s.tournamentRepo.GetByID(ctx, t.ID)
	if err != nil {
		return "", fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		if err := s.tournamentRepo.Create(ctx, t); err != nil {
			return "", fmt.Errorf("create tournament: %w", err)
		}
		return ImportStatusCreated, nil
	}
	// A completed tournament is already part of the global ranking.
	if stored.Completed && !rebuild {
		return "", fmt.Errorf("%w: tournament=%d is completed; import with rebuild to replace it", ErrConflict, t.ID)
	}
	if err := s.tournamentRepo.Update(ctx, t); err != nil {
		return "", fmt.Errorf("update tournament: %w", err)
	}
	return ImportStatusUpdated, nil
}

// observeIDs keeps locally issued ids clear of the imported ones.
func (s *ImportService) observeIDs(t tournament.Tournament) {
	s.ids.Observe(t.ID)
	for _, p := range t.Participants {
		s.ids.Observe(p.ID)
	}
	for _, g := range t.Groups {
		for _, m := range g.Matches {
			s.ids.Observe(m.ID)
		}
	}
	for _, m := range t.KnockoutMatches {
		s.ids.Observe(m.ID)
	}
}
