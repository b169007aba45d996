package usecase

import (
	"errors"
	"fmt"

	"github.com/Xadero/slsd/internal/domain/ranking"
	"github.com/Xadero/slsd/internal/domain/tournament"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrConflict              = errors.New("conflict")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// classify tags engine errors with the usecase error they surface as. The
// original error stays in the chain.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, tournament.ErrInvalidScore),
		errors.Is(err, tournament.ErrInvalidQualifierCount),
		errors.Is(err, tournament.ErrNotEnoughPlayers),
		errors.Is(err, tournament.ErrGroupTooLarge),
		errors.Is(err, tournament.ErrInvalidSnapshot),
		errors.Is(err, tournament.ErrUnknownRuleSet),
		errors.Is(err, ranking.ErrUnknownPointsTable):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, tournament.ErrUnknownEntity):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, tournament.ErrNotReady),
		errors.Is(err, tournament.ErrStageClosed),
		errors.Is(err, tournament.ErrTournamentCompleted),
		errors.Is(err, tournament.ErrInsufficientQualifiers):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	default:
		return err
	}
}
