package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Xadero/slsd/internal/domain/player"
	"github.com/Xadero/slsd/internal/domain/ranking"
	"github.com/Xadero/slsd/internal/domain/series"
	"github.com/Xadero/slsd/internal/domain/tournament"
	"github.com/Xadero/slsd/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// ScoringConfig selects the rule set and points table used across services.
type ScoringConfig struct {
	Rules  tournament.Rules
	Points ranking.PointsTable
}

func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Rules:  tournament.DefaultRules(),
		Points: ranking.StandardPoints(),
	}
}

// RankingService owns the global ranking table. Writes to the table are serialized.
type RankingService struct {
	rankingRepo    ranking.Repository
	tournamentRepo tournament.Repository
	seriesRepo     series.Repository
	ids            tournament.IDSource
	scoring        ScoringConfig
	logger         *logging.Logger

	writeMu sync.Mutex
}

func NewRankingService(
	rankingRepo ranking.Repository,
	tournamentRepo tournament.Repository,
	seriesRepo series.Repository,
	ids tournament.IDSource,
	scoring ScoringConfig,
	logger *logging.Logger,
) *RankingService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RankingService{
		rankingRepo:    rankingRepo,
		tournamentRepo: tournamentRepo,
		seriesRepo:     seriesRepo,
		ids:            ids,
		scoring:        scoring,
		logger:         logger.Named("ranking"),
	}
}

func (s *RankingService) CreatePlayer(ctx context.Context, name string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.CreatePlayer")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return player.Player{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	rows, err := s.rankingRepo.List(ctx)
	if err != nil {
		return player.Player{}, spanError(span, fmt.Errorf("list rankings: %w", err))
	}
	for _, row := range rows {
		if strings.EqualFold(row.Player.Name, name) {
			return player.Player{}, fmt.Errorf("%w: player %q already exists", ErrConflict, name)
		}
	}

	p := player.Player{ID: s.ids.NextID(), Name: name}
	if err := p.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.rankingRepo.Create(ctx, ranking.NewPlayerRanking(p, len(rows))); err != nil {
		return player.Player{}, spanError(span, fmt.Errorf("create player ranking: %w", err))
	}

	s.logger.InfoContext(ctx, "player created", "player_id", p.ID, "name", p.Name)
	return p, nil
}

// ListPlayers returns every known player ordered by name.
func (s *RankingService) ListPlayers(ctx context.Context) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.ListPlayers")
	defer span.End()

	rows, err := s.rankingRepo.List(ctx)
	if err != nil {
		return nil, spanError(span, fmt.Errorf("list rankings: %w", err))
	}
	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Player)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

// Players resolves ids against the ranking table, keeping the requested order.
func (s *RankingService) Players(ctx context.Context, ids []int64) ([]player.Player, error) {
	rows, err := s.rankingRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rankings: %w", err)
	}
	known := make(map[int64]player.Player, len(rows))
	for _, row := range rows {
		known[row.Player.ID] = row.Player
	}

	out := make([]player.Player, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: player=%d listed twice", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
		p, ok := known[id]
		if !ok {
			return nil, fmt.Errorf("%w: player=%d", ErrNotFound, id)
		}
		p.TotalPoints = 0
		out = append(out, p)
	}
	return out, nil
}

func (s *RankingService) GlobalRanking(ctx context.Context) ([]ranking.PlayerRanking, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.GlobalRanking")
	defer span.End()

	rows, err := s.rankingRepo.List(ctx)
	if err != nil {
		return nil, spanError(span, fmt.Errorf("list rankings: %w", err))
	}
	return rows, nil
}

func (s *RankingService) PlayerRanking(ctx context.Context, playerID int64) (ranking.PlayerRanking, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.PlayerRanking", attribute.Int64("player.id", playerID))
	defer span.End()

	if playerID <= 0 {
		return ranking.PlayerRanking{}, fmt.Errorf("%w: player id must be > 0", ErrInvalidInput)
	}
	row, exists, err := s.rankingRepo.GetByPlayerID(ctx, playerID)
	if err != nil {
		return ranking.PlayerRanking{}, spanError(span, fmt.Errorf("get player ranking: %w", err))
	}
	if !exists {
		return ranking.PlayerRanking{}, fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
	}
	return row, nil
}

// TournamentPoints returns every participant's placement award for one tournament.
func (s *RankingService) TournamentPoints(ctx context.Context, tournamentID int64) ([]ranking.Award, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.TournamentPoints", attribute.Int64("tournament.id", tournamentID))
	defer span.End()

	t, err := loadTournament(ctx, s.tournamentRepo, tournamentID)
	if err != nil {
		return nil, spanError(span, err)
	}
	awards := ranking.Awards(t, s.scoring.Points, s.scoring.Rules)
	sort.SliceStable(awards, func(i, j int) bool {
		return awards[i].Points > awards[j].Points
	})
	return awards, nil
}

func (s *RankingService) SeriesRanking(ctx context.Context, seriesID string) ([]ranking.PlayerRanking, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.SeriesRanking", attribute.String("series.id", seriesID))
	defer span.End()

	seriesID = strings.TrimSpace(seriesID)
	if seriesID == "" {
		return nil, fmt.Errorf("%w: series id is required", ErrInvalidInput)
	}
	_, exists, err := s.seriesRepo.GetByID(ctx, seriesID)
	if err != nil {
		return nil, spanError(span, fmt.Errorf("get series: %w", err))
	}
	if !exists {
		return nil, fmt.Errorf("%w: series=%s", ErrNotFound, seriesID)
	}

	items, err := s.tournamentRepo.List(ctx, tournament.Filter{Status: tournament.StatusCompleted, SeriesID: seriesID})
	if err != nil {
		return nil, spanError(span, fmt.Errorf("list series tournaments: %w", err))
	}
	return ranking.ComputeSeries(items, seriesID, s.scoring.Points, s.scoring.Rules), nil
}

// ApplyTournament folds a freshly finalized tournament into the global table.
func (s *RankingService) ApplyTournament(ctx context.Context, t tournament.Tournament) ([]ranking.PlayerRanking, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.ApplyTournament", attribute.Int64("tournament.id", t.ID))
	defer span.End()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current, err := s.rankingRepo.List(ctx)
	if err != nil {
		return nil, spanError(span, fmt.Errorf("list rankings: %w", err))
	}
	next, err := ranking.ApplyTournament(current, t, s.scoring.Points, s.scoring.Rules)
	if err != nil {
		return nil, classify(err)
	}
	if err := s.rankingRepo.ReplaceAll(ctx, next); err != nil {
		return nil, spanError(span, fmt.Errorf("replace rankings: %w", err))
	}

	s.logger.InfoContext(ctx, "ranking updated", "tournament_id", t.ID, "participants", len(t.Participants), "rows", len(next))
	return next, nil
}

// Rebuild recomputes the global table by replaying every completed tournament.
func (s *RankingService) Rebuild(ctx context.Context) ([]ranking.PlayerRanking, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.Rebuild")
	defer span.End()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current, err := s.rankingRepo.List(ctx)
	if err != nil {
		return nil, spanError(span, fmt.Errorf("list rankings: %w", err))
	}
	completed, err := s.tournamentRepo.List(ctx, tournament.Filter{Status: tournament.StatusCompleted})
	if err != nil {
		return nil, spanError(span, fmt.Errorf("list completed tournaments: %w", err))
	}

	players := make([]player.Player, 0, len(current))
	for _, row := range current {
		players = append(players, row.Player)
	}
	next, err := ranking.Replay(players, completed, s.scoring.Points, s.scoring.Rules)
	if err != nil {
		return nil, spanError(span, classify(err))
	}
	if err := s.rankingRepo.ReplaceAll(ctx, next); err != nil {
		return nil, spanError(span, fmt.Errorf("replace rankings: %w", err))
	}

	s.logger.InfoContext(ctx, "ranking rebuilt", "tournaments", len(completed), "rows", len(next))
	return next, nil
}

func loadTournament(ctx context.Context, repo tournament.Repository, id int64) (tournament.Tournament, error) {
	if id <= 0 {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament id must be > 0", ErrInvalidInput)
	}
	t, exists, err := repo.GetByID(ctx, id)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament=%d", ErrNotFound, id)
	}
	return t, nil
}
