package tournament

import (
	"fmt"
	"strings"

	sonic "github.com/bytedance/sonic"
)

// MarshalSnapshot encodes the full tournament structure as JSON.
func MarshalSnapshot(t Tournament) ([]byte, error) {
	data, err := sonic.ConfigDefault.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("marshal tournament snapshot: %w", err)
	}
	return data, nil
}

// UnmarshalSnapshot decodes and validates a JSON tournament snapshot.
func UnmarshalSnapshot(data []byte) (Tournament, error) {
	var t Tournament
	if err := sonic.ConfigDefault.Unmarshal(data, &t); err != nil {
		return Tournament{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if err := t.Validate(); err != nil {
		return Tournament{}, err
	}
	return t, nil
}

// Validate checks the structural invariants of a tournament.
func (t Tournament) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidSnapshot)
	}
	for _, g := range t.Groups {
		for _, m := range g.Matches {
			if !m.IsGroupMatch() || *m.GroupID != g.ID {
				return fmt.Errorf("%w: match=%d is not scoped to group %d", ErrInvalidSnapshot, m.ID, g.ID)
			}
			if err := validateMatchResult(m); err != nil {
				return err
			}
		}
	}
	for _, m := range t.KnockoutMatches {
		if !m.IsKnockoutMatch() || !m.Round.Valid() {
			return fmt.Errorf("%w: match=%d has invalid knockout round %q", ErrInvalidSnapshot, m.ID, m.Round)
		}
		if err := validateMatchResult(m); err != nil {
			return err
		}
	}
	return nil
}

func validateMatchResult(m Match) error {
	if !m.Completed {
		return nil
	}
	if !m.Ready() {
		return fmt.Errorf("%w: completed match=%d has an unassigned slot", ErrInvalidSnapshot, m.ID)
	}
	if m.Player1Score == nil || m.Player2Score == nil || *m.Player1Score == *m.Player2Score {
		return fmt.Errorf("%w: completed match=%d has no decisive score", ErrInvalidSnapshot, m.ID)
	}
	return nil
}
