package ranking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Xadero/slsd/internal/domain/player"
	"github.com/Xadero/slsd/internal/domain/tournament"
)

const (
	PointsTableStandard  = "standard"
	PointsTableSemiFinal = "semifinal"
)

var ErrUnknownPointsTable = errors.New("unknown points table")

// PointsTable maps a final placement to ranking points. A zero tier is not
// awarded: the player falls through to the next tier down.
type PointsTable struct {
	Name             string `json:"name"`
	Winner           int    `json:"winner"`
	RunnerUp         int    `json:"runnerUp"`
	ThirdPlaceWinner int    `json:"thirdPlaceWinner"`
	ThirdPlaceLoser  int    `json:"thirdPlaceLoser"`
	SemiFinalist     int    `json:"semiFinalist"`
	QuarterFinalist  int    `json:"quarterFinalist"`
	RoundOf16        int    `json:"roundOf16"`
	GroupThird       int    `json:"groupThird"`
	GroupLower       int    `json:"groupLower"`
}

func StandardPoints() PointsTable {
	return PointsTable{
		Name:             PointsTableStandard,
		Winner:           40,
		RunnerUp:         32,
		ThirdPlaceWinner: 30,
		ThirdPlaceLoser:  28,
		QuarterFinalist:  20,
		RoundOf16:        16,
		GroupThird:       14,
		GroupLower:       8,
	}
}

// SemiFinalPoints awards both semi-final losers the same tier regardless of
// the third-place match.
func SemiFinalPoints() PointsTable {
	return PointsTable{
		Name:            PointsTableSemiFinal,
		Winner:          40,
		RunnerUp:        32,
		SemiFinalist:    24,
		QuarterFinalist: 20,
		RoundOf16:       16,
		GroupThird:      14,
		GroupLower:      8,
	}
}

func PointsTableByName(name string) (PointsTable, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PointsTableStandard:
		return StandardPoints(), nil
	case PointsTableSemiFinal:
		return SemiFinalPoints(), nil
	default:
		return PointsTable{}, fmt.Errorf("%w: %q", ErrUnknownPointsTable, name)
	}
}

type Placement string

const (
	PlacementWinner           Placement = "winner"
	PlacementRunnerUp         Placement = "runner-up"
	PlacementThirdPlaceWinner Placement = "third-place"
	PlacementThirdPlaceLoser  Placement = "fourth-place"
	PlacementSemiFinalist     Placement = "semi-finalist"
	PlacementQuarterFinalist  Placement = "quarter-finalist"
	PlacementRoundOf16        Placement = "round-of-16"
	PlacementGroupThird       Placement = "group-third"
	PlacementGroupLower       Placement = "group-lower"
	PlacementNone             Placement = "none"
)

// Award is the points one player earned from one tournament.
type Award struct {
	Player    player.Player `json:"player"`
	Placement Placement     `json:"placement"`
	Points    int           `json:"points"`
}

// TournamentPoints returns the placement award of p. Knockout tiers apply
// only once the knockout stage started and the deciding match is completed;
// everyone else is scored by group position.
func TournamentPoints(p player.Player, t tournament.Tournament, table PointsTable, rules tournament.Rules) Award {
	award := Award{Player: p, Placement: PlacementNone}
	if t.KnockoutStageStarted {
		if placement, points, ok := knockoutPlacement(p.ID, t, table); ok {
			award.Placement, award.Points = placement, points
			return award
		}
	}

	for _, g := range t.Groups {
		for i, row := range g.Standings(rules) {
			if row.Player.ID != p.ID {
				continue
			}
			switch {
			case i == 2:
				award.Placement, award.Points = PlacementGroupThird, table.GroupThird
			case i >= 3:
				award.Placement, award.Points = PlacementGroupLower, table.GroupLower
			}
		}
	}
	return award
}

func knockoutPlacement(playerID int64, t tournament.Tournament, table PointsTable) (Placement, int, bool) {
	completedIn := func(round tournament.Round) (tournament.Match, bool) {
		for _, pos := range t.RoundMatches(round) {
			m := t.KnockoutMatches[pos]
			if m.Completed && m.Involves(playerID) {
				return m, true
			}
		}
		return tournament.Match{}, false
	}
	won := func(m tournament.Match) bool {
		w, ok := m.Winner()
		return ok && w.ID == playerID
	}

	if m, ok := completedIn(tournament.RoundFinal); ok {
		if won(m) && table.Winner > 0 {
			return PlacementWinner, table.Winner, true
		}
		if !won(m) && table.RunnerUp > 0 {
			return PlacementRunnerUp, table.RunnerUp, true
		}
	}
	if m, ok := completedIn(tournament.RoundThirdPlace); ok {
		if won(m) && table.ThirdPlaceWinner > 0 {
			return PlacementThirdPlaceWinner, table.ThirdPlaceWinner, true
		}
		if !won(m) && table.ThirdPlaceLoser > 0 {
			return PlacementThirdPlaceLoser, table.ThirdPlaceLoser, true
		}
	}

	tiers := []struct {
		round     tournament.Round
		placement Placement
		points    int
	}{
		{tournament.RoundSemiFinal, PlacementSemiFinalist, table.SemiFinalist},
		{tournament.RoundQuarterFinal, PlacementQuarterFinalist, table.QuarterFinalist},
		{tournament.RoundOf16, PlacementRoundOf16, table.RoundOf16},
	}
	for _, tier := range tiers {
		if tier.points <= 0 {
			continue
		}
		if _, ok := completedIn(tier.round); ok {
			return tier.placement, tier.points, true
		}
	}
	return "", 0, false
}

// Awards lists the award of every participant in participant order.
func Awards(t tournament.Tournament, table PointsTable, rules tournament.Rules) []Award {
	out := make([]Award, 0, len(t.Participants))
	for _, p := range t.Participants {
		out = append(out, TournamentPoints(p, t, table, rules))
	}
	return out
}
