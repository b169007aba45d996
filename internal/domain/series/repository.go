package series

import "context"

// Repository is the series registry. List returns series ordered by creation time.
type Repository interface {
	Create(ctx context.Context, s Series) error
	GetByID(ctx context.Context, id string) (Series, bool, error)
	List(ctx context.Context) ([]Series, error)
}
