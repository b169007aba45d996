package ranking

import "github.com/Xadero/slsd/internal/domain/tournament"

// PlayerStatistics tallies one player's completed group and knockout matches.
func PlayerStatistics(playerID int64, t tournament.Tournament) Statistics {
	var s Statistics
	visit := func(m tournament.Match) {
		if !m.Completed {
			return
		}
		legsFor, legsAgainst, ok := m.LegsFor(playerID)
		if !ok {
			return
		}
		s.MatchesPlayed++
		if legsFor > legsAgainst {
			s.MatchesWon++
		}
		s.LegsPlayed += legsFor + legsAgainst
		s.LegsWon += legsFor

		if stats, ok := m.StatsFor(playerID); ok {
			s.Total180s += stats.Count180s
			s.Total171s += stats.Count171s
			s.HighestFinish = max(s.HighestFinish, stats.HighestFinish)
			s.BestLeg = max(s.BestLeg, stats.BestLeg)
		}
	}

	for _, g := range t.Groups {
		for _, m := range g.Matches {
			visit(m)
		}
	}
	for _, m := range t.KnockoutMatches {
		visit(m)
	}
	s.LegDifference = s.LegsWon - (s.LegsPlayed - s.LegsWon)
	return s
}
