// Package guarded wraps repositories with a circuit breaker. Infrastructure
// failures and calls rejected by an open breaker surface as
// usecase.ErrDependencyUnavailable.
package guarded

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/Xadero/slsd/internal/platform/resilience"
	"github.com/Xadero/slsd/internal/usecase"
	"github.com/lib/pq"
)

type guard struct {
	breaker *resilience.CircuitBreaker
	name    string
}

func call[T any](ctx context.Context, g guard, op string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if err := g.breaker.Allow(); err != nil {
		return zero, fmt.Errorf("%w: %s %s: %w", usecase.ErrDependencyUnavailable, g.name, op, err)
	}

	out, err := fn(ctx)
	unavailable := err != nil && isUnavailable(err)
	g.breaker.Record(unavailable)
	if unavailable {
		return zero, fmt.Errorf("%w: %s %s: %w", usecase.ErrDependencyUnavailable, g.name, op, err)
	}
	return out, err
}

func exec(ctx context.Context, g guard, op string, fn func(context.Context) error) error {
	_, err := call(ctx, g, op, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// isUnavailable separates infrastructure failures from errors the database
// answered with (constraint violations, bad input). A deadline hit while
// waiting for a pooled connection counts as unavailable.
func isUnavailable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case "08", "53":
			// connection exception, insufficient resources (too_many_connections)
			return true
		case "57":
			// admin_shutdown, crash_shutdown, cannot_connect_now
			return strings.HasPrefix(string(pqErr.Code), "57P")
		}
	}
	return false
}
