package tournament

import (
	"fmt"
	"strings"
)

const (
	RuleSetStandard = "standard"
	RuleSetClassic  = "classic"

	MaxGroupSize = 6
)

// Pairing is a 1-based seed pairing of a bracket slot.
type Pairing struct {
	HighSeed int
	LowSeed  int
}

// Rules is the swappable rule-set configuration of the engine.
type Rules struct {
	Name                string
	PointsPerWin        int
	TwoGroupMaxPlayers  int
	FourGroupMaxPlayers int
	RoundOf16Seeding    []Pairing
	QuarterFinalSeeding []Pairing
}

var roundOf16Seeding = []Pairing{
	{1, 16}, {8, 9}, {4, 13}, {5, 12}, {2, 15}, {7, 10}, {3, 14}, {6, 11},
}

// StandardRules: two points per win, four groups up to 24 players,
// quarter-finals 1v8, 4v5, 3v6, 2v7.
func StandardRules() Rules {
	return Rules{
		Name:                RuleSetStandard,
		PointsPerWin:        2,
		TwoGroupMaxPlayers:  8,
		FourGroupMaxPlayers: 24,
		RoundOf16Seeding:    append([]Pairing(nil), roundOf16Seeding...),
		QuarterFinalSeeding: []Pairing{{1, 8}, {4, 5}, {3, 6}, {2, 7}},
	}
}

// ClassicRules: one point per win, four groups up to 16 players,
// quarter-finals 1v8, 4v5, 2v7, 3v6.
func ClassicRules() Rules {
	return Rules{
		Name:                RuleSetClassic,
		PointsPerWin:        1,
		TwoGroupMaxPlayers:  8,
		FourGroupMaxPlayers: 16,
		RoundOf16Seeding:    append([]Pairing(nil), roundOf16Seeding...),
		QuarterFinalSeeding: []Pairing{{1, 8}, {4, 5}, {2, 7}, {3, 6}},
	}
}

func DefaultRules() Rules {
	return StandardRules()
}

func RulesByName(name string) (Rules, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", RuleSetStandard:
		return StandardRules(), nil
	case RuleSetClassic:
		return ClassicRules(), nil
	default:
		return Rules{}, fmt.Errorf("%w: %q", ErrUnknownRuleSet, name)
	}
}

func (r Rules) Validate() error {
	if r.PointsPerWin <= 0 {
		return fmt.Errorf("points per win must be > 0")
	}
	if r.TwoGroupMaxPlayers <= 0 || r.FourGroupMaxPlayers <= r.TwoGroupMaxPlayers {
		return fmt.Errorf("group thresholds must be increasing and > 0")
	}
	if err := validateSeeding(r.RoundOf16Seeding, 16); err != nil {
		return fmt.Errorf("round of 16 seeding: %w", err)
	}
	if err := validateSeeding(r.QuarterFinalSeeding, 8); err != nil {
		return fmt.Errorf("quarter-final seeding: %w", err)
	}
	return nil
}

func validateSeeding(pairings []Pairing, entrants int) error {
	if len(pairings)*2 != entrants {
		return fmt.Errorf("expected %d pairings, got %d", entrants/2, len(pairings))
	}
	seen := make(map[int]struct{}, entrants)
	for _, p := range pairings {
		for _, seed := range []int{p.HighSeed, p.LowSeed} {
			if seed < 1 || seed > entrants {
				return fmt.Errorf("seed %d out of range", seed)
			}
			if _, dup := seen[seed]; dup {
				return fmt.Errorf("seed %d used twice", seed)
			}
			seen[seed] = struct{}{}
		}
	}
	return nil
}
