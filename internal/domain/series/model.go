package series

import (
	"fmt"
	"strings"
	"time"
)

// Series is a named collection of tournaments ranked together.
type Series struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s Series) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("series id is required")
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("series name is required")
	}
	return nil
}
