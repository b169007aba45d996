package usecase

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/Xadero/slsd/internal/domain/player"
	"github.com/Xadero/slsd/internal/domain/ranking"
	"github.com/Xadero/slsd/internal/domain/series"
	"github.com/Xadero/slsd/internal/domain/tournament"
	"github.com/Xadero/slsd/internal/platform/logging"
	"github.com/Xadero/slsd/internal/platform/resilience"
	"go.opentelemetry.io/otel/attribute"
)

type CreateTournamentInput struct {
	Name      string
	Date      time.Time
	PlayerIDs []int64
	SeriesID  string
	// Seed makes the group draw reproducible. Nil draws randomly.
	Seed *uint64
}

type RecordResultInput struct {
	TournamentID int64
	MatchID      int64
	Result       tournament.Result
}

type GroupStandings struct {
	GroupID   int                   `json:"groupId"`
	Completed bool                  `json:"completed"`
	Standings []tournament.Standing `json:"standings"`
}

type playerResolver interface {
	Players(ctx context.Context, ids []int64) ([]player.Player, error)
}

type rankingUpdater interface {
	ApplyTournament(ctx context.Context, t tournament.Tournament) ([]ranking.PlayerRanking, error)
}

// TournamentService drives a tournament from group draw to final. Mutations of
// one tournament are serialized through locks, which ImportService shares;
// different tournaments proceed in parallel.
type TournamentService struct {
	tournamentRepo    tournament.Repository
	seriesRepo        series.Repository
	players           playerResolver
	rankings          rankingUpdater
	ids               tournament.IDSource
	scoring           ScoringConfig
	defaultQualifiers int
	logger            *logging.Logger
	now               func() time.Time
	locks             *resilience.KeyedMutex[int64]
}

func NewTournamentService(
	tournamentRepo tournament.Repository,
	seriesRepo series.Repository,
	players playerResolver,
	rankings rankingUpdater,
	ids tournament.IDSource,
	scoring ScoringConfig,
	defaultQualifiers int,
	locks *resilience.KeyedMutex[int64],
	logger *logging.Logger,
) *TournamentService {
	if logger == nil {
		logger = logging.Default()
	}
	if defaultQualifiers <= 0 {
		defaultQualifiers = 8
	}
	if locks == nil {
		locks = &resilience.KeyedMutex[int64]{}
	}
	return &TournamentService{
		tournamentRepo:    tournamentRepo,
		seriesRepo:        seriesRepo,
		players:           players,
		rankings:          rankings,
		ids:               ids,
		scoring:           scoring,
		defaultQualifiers: defaultQualifiers,
		logger:            logger.Named("tournament"),
		now:               time.Now,
		locks:             locks,
	}
}

func (s *TournamentService) Create(ctx context.Context, input CreateTournamentInput) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Create", attribute.Int("players", len(input.PlayerIDs)))
	defer span.End()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament name is required", ErrInvalidInput)
	}
	seriesID := strings.TrimSpace(input.SeriesID)
	if seriesID != "" {
		_, exists, err := s.seriesRepo.GetByID(ctx, seriesID)
		if err != nil {
			return tournament.Tournament{}, spanError(span, fmt.Errorf("get series: %w", err))
		}
		if !exists {
			return tournament.Tournament{}, fmt.Errorf("%w: series=%s", ErrNotFound, seriesID)
		}
	}

	participants, err := s.players.Players(ctx, input.PlayerIDs)
	if err != nil {
		return tournament.Tournament{}, err
	}

	var rng *rand.Rand
	if input.Seed != nil {
		rng = rand.New(rand.NewPCG(*input.Seed, *input.Seed))
	}
	groups, err := tournament.GenerateGroups(participants, s.scoring.Rules, rng, s.ids)
	if err != nil {
		return tournament.Tournament{}, classify(err)
	}

	date := input.Date
	if date.IsZero() {
		date = s.now()
	}
	t := tournament.Tournament{
		ID:           s.ids.NextID(),
		Name:         name,
		Date:         date.UTC(),
		Participants: participants,
		Groups:       groups,
		SeriesID:     seriesID,
	}
	if err := s.tournamentRepo.Create(ctx, t); err != nil {
		return tournament.Tournament{}, spanError(span, fmt.Errorf("create tournament: %w", err))
	}

	s.logger.InfoContext(ctx, "tournament created",
		"tournament_id", t.ID,
		"participants", len(participants),
		"groups", len(groups),
		"series_id", seriesID,
	)
	return t, nil
}

func (s *TournamentService) Get(ctx context.Context, id int64) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Get", attribute.Int64("tournament.id", id))
	defer span.End()

	t, err := loadTournament(ctx, s.tournamentRepo, id)
	if err != nil {
		return tournament.Tournament{}, spanError(span, err)
	}
	return t, nil
}

// List returns tournaments matching the filter. Completed tournaments are
// listed newest first; otherwise the repository order (oldest first) is kept.
func (s *TournamentService) List(ctx context.Context, filter tournament.Filter) ([]tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.List", attribute.String("status", string(filter.Status)))
	defer span.End()

	switch filter.Status {
	case tournament.StatusAny, tournament.StatusCompleted, tournament.StatusIncomplete:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, filter.Status)
	}

	items, err := s.tournamentRepo.List(ctx, filter)
	if err != nil {
		return nil, spanError(span, fmt.Errorf("list tournaments: %w", err))
	}
	if filter.Status == tournament.StatusCompleted {
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Date.After(items[j].Date)
		})
	}
	return items, nil
}

// ListHistory returns completed tournaments, newest first.
func (s *TournamentService) ListHistory(ctx context.Context) ([]tournament.Tournament, error) {
	return s.List(ctx, tournament.Filter{Status: tournament.StatusCompleted})
}

// ListIncomplete returns tournaments that can still be resumed.
func (s *TournamentService) ListIncomplete(ctx context.Context) ([]tournament.Tournament, error) {
	return s.List(ctx, tournament.Filter{Status: tournament.StatusIncomplete})
}

// Abandon deletes a tournament that has not been finalized.
func (s *TournamentService) Abandon(ctx context.Context, id int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Abandon", attribute.Int64("tournament.id", id))
	defer span.End()

	unlock := s.locks.Lock(id)
	defer unlock()

	t, err := loadTournament(ctx, s.tournamentRepo, id)
	if err != nil {
		return spanError(span, err)
	}
	if t.Completed {
		return fmt.Errorf("%w: tournament=%d is completed", ErrConflict, id)
	}
	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		return spanError(span, fmt.Errorf("delete tournament: %w", err))
	}

	s.logger.InfoContext(ctx, "tournament abandoned", "tournament_id", id)
	return nil
}

func (s *TournamentService) RecordResult(ctx context.Context, input RecordResultInput) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.RecordResult",
		attribute.Int64("tournament.id", input.TournamentID),
		attribute.Int64("match.id", input.MatchID),
	)
	defer span.End()

	return s.mutate(ctx, input.TournamentID, func(t *tournament.Tournament) error {
		if err := t.RecordResult(input.MatchID, input.Result, s.ids); err != nil {
			return err
		}
		s.logger.DebugContext(ctx, "result recorded",
			"tournament_id", t.ID,
			"match_id", input.MatchID,
			"score", fmt.Sprintf("%d-%d", input.Result.Player1Score, input.Result.Player2Score),
		)
		return nil
	})
}

// StartKnockout closes the group stage. qualifiers <= 0 uses the configured default.
func (s *TournamentService) StartKnockout(ctx context.Context, id int64, qualifiers int) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.StartKnockout", attribute.Int64("tournament.id", id))
	defer span.End()

	if qualifiers <= 0 {
		qualifiers = s.defaultQualifiers
	}
	return s.mutate(ctx, id, func(t *tournament.Tournament) error {
		if err := t.StartKnockout(qualifiers, s.scoring.Rules, s.ids); err != nil {
			return err
		}
		s.logger.InfoContext(ctx, "knockout started", "tournament_id", t.ID, "qualifiers", qualifiers)
		return nil
	})
}

// Finalize completes the tournament and folds it into the global ranking.
func (s *TournamentService) Finalize(ctx context.Context, id int64) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Finalize", attribute.Int64("tournament.id", id))
	defer span.End()

	t, err := s.mutate(ctx, id, func(t *tournament.Tournament) error {
		return t.Finalize()
	})
	if err != nil {
		return tournament.Tournament{}, err
	}
	if _, err := s.rankings.ApplyTournament(ctx, t); err != nil {
		s.logger.ErrorContext(ctx, "ranking update after finalize failed", "tournament_id", id, "error", err)
		return tournament.Tournament{}, spanError(span, fmt.Errorf("apply tournament to ranking: %w", err))
	}

	s.logger.InfoContext(ctx, "tournament finalized", "tournament_id", id)
	return t, nil
}

func (s *TournamentService) GroupStandings(ctx context.Context, id int64) ([]GroupStandings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.GroupStandings", attribute.Int64("tournament.id", id))
	defer span.End()

	t, err := loadTournament(ctx, s.tournamentRepo, id)
	if err != nil {
		return nil, spanError(span, err)
	}
	out := make([]GroupStandings, 0, len(t.Groups))
	for _, g := range t.Groups {
		out = append(out, GroupStandings{
			GroupID:   g.ID,
			Completed: g.Completed(),
			Standings: g.Standings(s.scoring.Rules),
		})
	}
	return out, nil
}

func (s *TournamentService) Bracket(ctx context.Context, id int64) ([]tournament.BracketRound, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Bracket", attribute.Int64("tournament.id", id))
	defer span.End()

	t, err := loadTournament(ctx, s.tournamentRepo, id)
	if err != nil {
		return nil, spanError(span, err)
	}
	return t.Bracket(), nil
}

func (s *TournamentService) Summary(ctx context.Context, id int64) (tournament.Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Summary", attribute.Int64("tournament.id", id))
	defer span.End()

	t, err := loadTournament(ctx, s.tournamentRepo, id)
	if err != nil {
		return tournament.Summary{}, spanError(span, err)
	}
	return t.Summarize(), nil
}

// mutate loads, changes and saves one tournament under its lock. The engine
// works on a copy so a rejected change never reaches the repository.
func (s *TournamentService) mutate(ctx context.Context, id int64, change func(t *tournament.Tournament) error) (tournament.Tournament, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	stored, err := loadTournament(ctx, s.tournamentRepo, id)
	if err != nil {
		return tournament.Tournament{}, err
	}
	working := stored.Clone()
	if err := change(&working); err != nil {
		return tournament.Tournament{}, classify(err)
	}
	if err := s.tournamentRepo.Update(ctx, working); err != nil {
		return tournament.Tournament{}, fmt.Errorf("update tournament: %w", err)
	}
	return working, nil
}
