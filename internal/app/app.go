package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Xadero/slsd/internal/config"
	"github.com/Xadero/slsd/internal/domain/ranking"
	"github.com/Xadero/slsd/internal/domain/tournament"
	"github.com/Xadero/slsd/internal/interfaces/httpapi"
	"github.com/Xadero/slsd/internal/platform/id"
	"github.com/Xadero/slsd/internal/platform/logging"
	"github.com/Xadero/slsd/internal/platform/resilience"
	"github.com/Xadero/slsd/internal/usecase"
)

// Services is the wired usecase layer shared by the API server and the CLI tools.
type Services struct {
	Tournaments *usecase.TournamentService
	Rankings    *usecase.RankingService
	Series      *usecase.SeriesService
	Import      *usecase.ImportService

	closers []func() error
}

func NewServices(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Services, error) {
	if logger == nil {
		logger = logging.Default()
	}

	scoring, err := scoringConfig(cfg)
	if err != nil {
		return nil, err
	}

	repos, err := newRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	ids := id.NewClockSequence()
	locks := &resilience.KeyedMutex[int64]{}
	rankingSvc := usecase.NewRankingService(repos.rankings, repos.tournaments, repos.series, ids, scoring, logger)
	tournamentSvc := usecase.NewTournamentService(
		repos.tournaments,
		repos.series,
		rankingSvc,
		rankingSvc,
		ids,
		scoring,
		cfg.DefaultQualifiers,
		locks,
		logger,
	)
	seriesSvc := usecase.NewSeriesService(repos.series, repos.tournaments, id.NewUUIDGenerator(), scoring, cfg.SeriesOverviewWorkers, logger)
	importSvc := usecase.NewImportService(repos.tournaments, repos.series, rankingSvc, ids, locks, cfg.ImportWorkers, logger)

	logger.Info("services ready",
		"storage_driver", cfg.StorageDriver,
		"cache_enabled", cfg.CacheEnabled,
		"rule_set", cfg.TournamentRuleSet,
		"points_table", cfg.PointsTable,
		"default_qualifiers", cfg.DefaultQualifiers,
	)

	return &Services{
		Tournaments: tournamentSvc,
		Rankings:    rankingSvc,
		Series:      seriesSvc,
		Import:      importSvc,
		closers:     repos.closers,
	}, nil
}

// Close releases storage handles in reverse order of acquisition.
func (s *Services) Close() error {
	if s == nil {
		return nil
	}
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

func NewHTTPServer(cfg config.Config, services *Services, logger *logging.Logger) (*http.Server, error) {
	if services == nil {
		return nil, fmt.Errorf("services are required")
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := httpapi.NewHandler(services.Tournaments, services.Rankings, services.Series, logger)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}

func scoringConfig(cfg config.Config) (usecase.ScoringConfig, error) {
	rules, err := tournament.RulesByName(cfg.TournamentRuleSet)
	if err != nil {
		return usecase.ScoringConfig{}, fmt.Errorf("resolve TOURNAMENT_RULESET: %w", err)
	}
	points, err := ranking.PointsTableByName(cfg.PointsTable)
	if err != nil {
		return usecase.ScoringConfig{}, fmt.Errorf("resolve POINTS_TABLE: %w", err)
	}
	return usecase.ScoringConfig{Rules: rules, Points: points}, nil
}
