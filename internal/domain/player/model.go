package player

import (
	"fmt"
	"strings"
)

// Player is a darts player known to the ranking table.
type Player struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	TotalPoints int    `json:"totalPoints"`
}

func (p Player) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("player id must be > 0")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}

	return nil
}

// SameAs reports whether both values refer to the same player identity.
func (p Player) SameAs(other Player) bool {
	return p.ID == other.ID
}
