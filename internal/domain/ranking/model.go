package ranking

import "github.com/Xadero/slsd/internal/domain/player"

// Statistics are raw per-player counters. 180s, 171s and legs/matches are
// summed across tournaments; HighestFinish and BestLeg keep the maximum.
type Statistics struct {
	Total180s     int `json:"total180s"`
	Total171s     int `json:"total171s"`
	HighestFinish int `json:"highestFinish"`
	BestLeg       int `json:"bestLeg"`
	LegDifference int `json:"legDifference"`
	MatchesPlayed int `json:"matchesPlayed"`
	LegsPlayed    int `json:"legsPlayed"`
	LegsWon       int `json:"legsWon"`
	MatchesWon    int `json:"matchesWon"`
}

func (s Statistics) add(other Statistics) Statistics {
	return Statistics{
		Total180s:     s.Total180s + other.Total180s,
		Total171s:     s.Total171s + other.Total171s,
		HighestFinish: max(s.HighestFinish, other.HighestFinish),
		BestLeg:       max(s.BestLeg, other.BestLeg),
		LegDifference: s.LegDifference + other.LegDifference,
		MatchesPlayed: s.MatchesPlayed + other.MatchesPlayed,
		LegsPlayed:    s.LegsPlayed + other.LegsPlayed,
		LegsWon:       s.LegsWon + other.LegsWon,
		MatchesWon:    s.MatchesWon + other.MatchesWon,
	}
}

// PlayerRanking is one row of a ranking table.
type PlayerRanking struct {
	Player           player.Player `json:"player"`
	TotalPoints      int           `json:"totalPoints"`
	RankChange       int           `json:"rankChange"`
	CurrentRank      int           `json:"currentRank"`
	TournamentPoints []int         `json:"tournamentPoints"`
	Statistics
	WonLegsPercentage    float64 `json:"wonLegsPercentage"`
	WonMatchesPercentage float64 `json:"wonMatchesPercentage"`
}

// NewPlayerRanking returns an empty row placed at the bottom of a table of size existing.
func NewPlayerRanking(p player.Player, existing int) PlayerRanking {
	return PlayerRanking{
		Player:           p,
		CurrentRank:      existing + 1,
		TournamentPoints: []int{},
	}
}

// Percentages returns won legs and won matches as percentages, 0 when nothing was played.
func Percentages(s Statistics) (wonLegs, wonMatches float64) {
	if s.LegsPlayed > 0 {
		wonLegs = float64(s.LegsWon) / float64(s.LegsPlayed) * 100
	}
	if s.MatchesPlayed > 0 {
		wonMatches = float64(s.MatchesWon) / float64(s.MatchesPlayed) * 100
	}
	return wonLegs, wonMatches
}

func (r PlayerRanking) clone() PlayerRanking {
	out := r
	out.TournamentPoints = append([]int{}, r.TournamentPoints...)
	return out
}

func (r *PlayerRanking) refreshPercentages() {
	r.WonLegsPercentage, r.WonMatchesPercentage = Percentages(r.Statistics)
}
