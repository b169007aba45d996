package tournament

import (
	"sort"

	"github.com/Xadero/slsd/internal/domain/player"
)

// Performer is a participant's tally on the history summary.
type Performer struct {
	Player player.Player `json:"player"`
	Points int           `json:"points"`
}

// Summary is the history card of a tournament.
type Summary struct {
	TournamentID int64          `json:"tournamentId"`
	Name         string         `json:"name"`
	Winner       *player.Player `json:"winner,omitempty"`
	RunnerUp     *player.Player `json:"runnerUp,omitempty"`
	TopPlayers   []Performer    `json:"topPlayers"`
}

// Summarize reports the Final's result and the three best performers by
// match-win weight: group win 2, semi-final win 8, final win 12, other knockout wins 5.
func (t *Tournament) Summarize() Summary {
	out := Summary{TournamentID: t.ID, Name: t.Name}
	if final, ok := t.FinalMatch(); ok && t.Completed {
		if winner, ok := final.Winner(); ok {
			out.Winner = &winner
		}
		if loser, ok := final.Loser(); ok {
			out.RunnerUp = &loser
		}
	}

	tally := make(map[int64]*Performer)
	order := make([]int64, 0, len(t.Participants))
	credit := func(p player.Player, points int) {
		row, ok := tally[p.ID]
		if !ok {
			row = &Performer{Player: p}
			tally[p.ID] = row
			order = append(order, p.ID)
		}
		row.Points += points
	}

	for _, g := range t.Groups {
		for _, m := range g.Matches {
			if winner, ok := m.Winner(); ok {
				credit(winner, 2)
			}
		}
	}
	for _, m := range t.KnockoutMatches {
		winner, ok := m.Winner()
		if !ok {
			continue
		}
		switch m.Round {
		case RoundFinal:
			credit(winner, 12)
		case RoundSemiFinal:
			credit(winner, 8)
		default:
			credit(winner, 5)
		}
	}

	rows := make([]Performer, 0, len(order))
	for _, id := range order {
		rows = append(rows, *tally[id])
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Points > rows[j].Points
	})
	if len(rows) > 3 {
		rows = rows[:3]
	}
	out.TopPlayers = rows
	return out
}
