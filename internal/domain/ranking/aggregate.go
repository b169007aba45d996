package ranking

import (
	"fmt"
	"sort"

	"github.com/Xadero/slsd/internal/domain/player"
	"github.com/Xadero/slsd/internal/domain/tournament"
)

// ApplyTournament adds a completed tournament to the global table. Participants
// gain their award and statistics; everyone else keeps their entry. The input
// slice is not modified.
func ApplyTournament(current []PlayerRanking, t tournament.Tournament, table PointsTable, rules tournament.Rules) ([]PlayerRanking, error) {
	if !t.Completed {
		return nil, fmt.Errorf("%w: tournament=%d is not completed", tournament.ErrNotReady, t.ID)
	}

	previous := make(map[int64]PlayerRanking, len(current))
	for _, row := range current {
		previous[row.Player.ID] = row
	}

	out := make([]PlayerRanking, 0, len(current)+len(t.Participants))
	seen := make(map[int64]struct{}, len(t.Participants))
	for _, p := range t.Participants {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}

		row, ok := previous[p.ID]
		if ok {
			row = row.clone()
		} else {
			row = PlayerRanking{TournamentPoints: []int{}}
		}
		award := TournamentPoints(p, t, table, rules)

		row.Player = p
		row.TotalPoints += award.Points
		row.Player.TotalPoints = row.TotalPoints
		row.TournamentPoints = append(row.TournamentPoints, award.Points)
		row.Statistics = row.Statistics.add(PlayerStatistics(p.ID, t))
		out = append(out, row)
	}
	for _, row := range current {
		if _, ok := seen[row.Player.ID]; ok {
			continue
		}
		out = append(out, row.clone())
	}

	previousRank := make(map[int64]int, len(current))
	for _, row := range current {
		previousRank[row.Player.ID] = row.CurrentRank
	}
	rank(out, previousRank)
	return out, nil
}

// ComputeSeries builds the ranking of one series from scratch. Only completed
// tournaments of the series count, in date order. Rank change compares the
// table without the latest tournament against the full table.
func ComputeSeries(tournaments []tournament.Tournament, seriesID string, table PointsTable, rules tournament.Rules) []PlayerRanking {
	selected := make([]tournament.Tournament, 0, len(tournaments))
	for _, t := range tournaments {
		if t.Completed && t.SeriesID == seriesID {
			selected = append(selected, t)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		if !selected[i].Date.Equal(selected[j].Date) {
			return selected[i].Date.Before(selected[j].Date)
		}
		return selected[i].ID < selected[j].ID
	})

	current := accumulate(selected, table, rules)
	if len(selected) < 2 {
		rank(current, nil)
		return current
	}

	before := accumulate(selected[:len(selected)-1], table, rules)
	rank(before, nil)
	previousRank := make(map[int64]int, len(before))
	for _, row := range before {
		previousRank[row.Player.ID] = row.CurrentRank
	}
	rank(current, previousRank)
	return current
}

func accumulate(tournaments []tournament.Tournament, table PointsTable, rules tournament.Rules) []PlayerRanking {
	index := make(map[int64]int)
	var out []PlayerRanking
	for ti, t := range tournaments {
		for _, p := range t.Participants {
			pos, ok := index[p.ID]
			if !ok {
				pos = len(out)
				index[p.ID] = pos
				out = append(out, PlayerRanking{Player: p, TournamentPoints: make([]int, len(tournaments))})
			}
			row := &out[pos]
			award := TournamentPoints(p, t, table, rules)
			row.TournamentPoints[ti] = award.Points
			row.TotalPoints += award.Points
			row.Player.TotalPoints = row.TotalPoints
			row.Statistics = row.Statistics.add(PlayerStatistics(p.ID, t))
		}
	}
	return out
}

// rank sorts by total points (stable), assigns CurrentRank and computes
// RankChange against previousRank. Players without a previous rank get 0.
func rank(rows []PlayerRanking, previousRank map[int64]int) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalPoints > rows[j].TotalPoints
	})
	for i := range rows {
		rows[i].CurrentRank = i + 1
		rows[i].RankChange = 0
		if prev, ok := previousRank[rows[i].Player.ID]; ok && prev > 0 {
			rows[i].RankChange = prev - rows[i].CurrentRank
		}
		rows[i].refreshPercentages()
	}
}

// Replay rebuilds the global table from scratch: every known player starts
// empty and completed tournaments are applied in date order.
func Replay(players []player.Player, tournaments []tournament.Tournament, table PointsTable, rules tournament.Rules) ([]PlayerRanking, error) {
	rows := make([]PlayerRanking, 0, len(players))
	seen := make(map[int64]struct{}, len(players))
	for _, p := range players {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		p.TotalPoints = 0
		rows = append(rows, PlayerRanking{Player: p, TournamentPoints: []int{}})
	}

	ordered := make([]tournament.Tournament, 0, len(tournaments))
	for _, t := range tournaments {
		if t.Completed {
			ordered = append(ordered, t)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].Date.Before(ordered[j].Date)
		}
		return ordered[i].ID < ordered[j].ID
	})

	if len(ordered) == 0 {
		rank(rows, nil)
		return rows, nil
	}
	for _, t := range ordered {
		next, err := ApplyTournament(rows, t, table, rules)
		if err != nil {
			return nil, fmt.Errorf("replay tournament=%d: %w", t.ID, err)
		}
		rows = next
	}
	return rows, nil
}
