package tournament

import (
	"sort"

	"github.com/Xadero/slsd/internal/domain/player"
)

// Standing is a derived table row. It is never persisted.
type Standing struct {
	Position      int           `json:"position"`
	Player        player.Player `json:"player"`
	Played        int           `json:"matches"`
	Wins          int           `json:"wins"`
	Losses        int           `json:"losses"`
	Points        int           `json:"points"`
	LegDifference int           `json:"legDifference"`
}

type pairKey struct {
	low, high int64
}

func newPairKey(a, b int64) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{low: a, high: b}
}

// ComputeStandings ranks players by points, then leg difference, then the
// head-to-head result between the tied pair; remaining ties keep input order.
// Only completed matches between listed players are counted.
func ComputeStandings(players []player.Player, matches []Match, pointsPerWin int) []Standing {
	rows := make([]Standing, len(players))
	index := make(map[int64]int, len(players))
	for i, p := range players {
		rows[i] = Standing{Player: p}
		index[p.ID] = i
	}

	headToHead := make(map[pairKey]int64)
	for _, m := range matches {
		if !m.Completed || !m.Ready() {
			continue
		}
		winner, ok := m.Winner()
		if !ok {
			continue
		}
		i1, ok1 := index[m.Player1.ID]
		i2, ok2 := index[m.Player2.ID]
		if !ok1 || !ok2 {
			continue
		}

		s1, s2 := *m.Player1Score, *m.Player2Score
		tally(&rows[i1], s1, s2, winner.ID == m.Player1.ID)
		tally(&rows[i2], s2, s1, winner.ID == m.Player2.ID)
		headToHead[newPairKey(m.Player1.ID, m.Player2.ID)] = winner.ID
	}

	for i := range rows {
		rows[i].Losses = rows[i].Played - rows[i].Wins
		rows[i].Points = rows[i].Wins * pointsPerWin
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.LegDifference != b.LegDifference {
			return a.LegDifference > b.LegDifference
		}
		winnerID, played := headToHead[newPairKey(a.Player.ID, b.Player.ID)]
		return played && winnerID == a.Player.ID
	})

	for i := range rows {
		rows[i].Position = i + 1
	}
	return rows
}

func tally(row *Standing, legsFor, legsAgainst int, won bool) {
	row.Played++
	row.LegDifference += legsFor - legsAgainst
	if won {
		row.Wins++
	}
}
