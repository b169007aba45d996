package ranking

import "context"

// Repository stores the global ranking table keyed by player id. List returns
// rows ordered by current rank.
type Repository interface {
	List(ctx context.Context) ([]PlayerRanking, error)
	GetByPlayerID(ctx context.Context, playerID int64) (PlayerRanking, bool, error)
	Create(ctx context.Context, row PlayerRanking) error
	ReplaceAll(ctx context.Context, rows []PlayerRanking) error
}
