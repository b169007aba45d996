package tournament

import "context"

type Status string

const (
	StatusAny        Status = ""
	StatusCompleted  Status = "completed"
	StatusIncomplete Status = "incomplete"
)

// Filter narrows List results. Zero value lists everything.
type Filter struct {
	Status   Status
	SeriesID string
}

func (f Filter) Matches(t Tournament) bool {
	switch f.Status {
	case StatusCompleted:
		if !t.Completed {
			return false
		}
	case StatusIncomplete:
		if t.Completed {
			return false
		}
	}
	return f.SeriesID == "" || t.SeriesID == f.SeriesID
}

// Repository persists tournament snapshots keyed by id. List returns
// tournaments ordered by date ascending, then id.
type Repository interface {
	Create(ctx context.Context, t Tournament) error
	Update(ctx context.Context, t Tournament) error
	GetByID(ctx context.Context, id int64) (Tournament, bool, error)
	List(ctx context.Context, filter Filter) ([]Tournament, error)
	Delete(ctx context.Context, id int64) error
}
