package app

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Xadero/slsd/internal/config"
	"github.com/Xadero/slsd/internal/domain/ranking"
	"github.com/Xadero/slsd/internal/domain/series"
	"github.com/Xadero/slsd/internal/domain/tournament"
	cacherepo "github.com/Xadero/slsd/internal/infrastructure/repository/cache"
	"github.com/Xadero/slsd/internal/infrastructure/repository/guarded"
	"github.com/Xadero/slsd/internal/infrastructure/repository/memory"
	"github.com/Xadero/slsd/internal/infrastructure/repository/postgres"
	"github.com/Xadero/slsd/internal/platform/logging"
	"github.com/Xadero/slsd/internal/platform/resilience"
	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

const (
	dbPingTimeout     = 5 * time.Second
	maxTracedQueryLen = 512
)

type repositories struct {
	tournaments tournament.Repository
	rankings    ranking.Repository
	series      series.Repository
	closers     []func() error
}

func newRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	var out repositories

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		breaker := resilience.NewCircuitBreaker(dbCircuitConfig(cfg))
		out = repositories{
			tournaments: guarded.NewTournamentRepository(postgres.NewTournamentRepository(db), breaker),
			rankings:    guarded.NewRankingRepository(postgres.NewRankingRepository(db), breaker),
			series:      guarded.NewSeriesRepository(postgres.NewSeriesRepository(db), breaker),
			closers:     []func() error{db.Close},
		}
		logger.Info("postgres storage ready",
			"db_name", dbNameFromURL(cfg.DBURL),
			"max_open_conns", cfg.DBMaxOpenConns,
			"max_idle_conns", cfg.DBMaxIdleConns,
			"circuit_enabled", cfg.DBCircuitEnabled,
		)
	default:
		var rows []ranking.PlayerRanking
		if cfg.MemorySeedPlayers {
			rows = memory.SeedRankings(memory.SeedPlayers())
		}
		out = repositories{
			tournaments: memory.NewTournamentRepository(nil),
			rankings:    memory.NewRankingRepository(rows),
			series:      memory.NewSeriesRepository(nil),
		}
		logger.Info("memory storage ready", "seeded_players", len(rows))
	}

	if cfg.CacheEnabled {
		out.tournaments = cacherepo.NewTournamentRepository(out.tournaments, cfg.CacheTTL)
		out.rankings = cacherepo.NewRankingRepository(out.rankings, cfg.CacheTTL)
		out.series = cacherepo.NewSeriesRepository(out.series, cfg.CacheTTL)
	}

	return out, nil
}

func dbCircuitConfig(cfg config.Config) resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{
		Enabled:          cfg.DBCircuitEnabled,
		FailureThreshold: cfg.DBCircuitFailureCount,
		OpenTimeout:      cfg.DBCircuitOpenTimeout,
		HalfOpenMaxReq:   cfg.DBCircuitHalfOpenMaxReq,
	}
}

// openDB opens an instrumented sqlx handle and verifies connectivity.
func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres",
		normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(compactQuery),
	)
	if err != nil {
		return nil, crerr.Wrap(err, "open postgres")
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, crerr.Wrapf(err, "ping postgres %s", dbNameFromURL(cfg.DBURL))
	}

	return db, nil
}

// compactQuery folds the multi-line SQL emitted by the query builder onto one
// line for span attributes and caps it at maxTracedQueryLen bytes.
func compactQuery(query string) string {
	query = strings.Join(strings.Fields(query), " ")
	if len(query) <= maxTracedQueryLen {
		return query
	}
	cut := maxTracedQueryLen
	for cut > 0 && !utf8.RuneStart(query[cut]) {
		cut--
	}
	return query[:cut] + "..."
}
