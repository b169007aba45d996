package tournament

import (
	"fmt"
	"testing"

	"github.com/Xadero/slsd/internal/domain/player"
)

type seqIDs struct {
	next int64
}

func (s *seqIDs) NextID() int64 {
	s.next++
	return s.next
}

func makePlayers(n int) []player.Player {
	out := make([]player.Player, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, player.Player{ID: int64(i), Name: fmt.Sprintf("player-%02d", i)})
	}
	return out
}

func played(groupID int, p1, p2 player.Player, s1, s2 int) Match {
	gid := groupID
	a, b := p1, p2
	return Match{
		Player1:      &a,
		Player2:      &b,
		Player1Score: &s1,
		Player2Score: &s2,
		Completed:    true,
		GroupID:      &gid,
	}
}

// completeGroups plays every group match; the lower player id wins 3-1.
func completeGroups(t *testing.T, tour *Tournament, ids IDSource) {
	t.Helper()
	for _, g := range tour.Groups {
		for _, m := range g.Matches {
			res := Result{Player1Score: 3, Player2Score: 1}
			if m.Player1.ID > m.Player2.ID {
				res = Result{Player1Score: 1, Player2Score: 3}
			}
			if err := tour.RecordResult(m.ID, res, ids); err != nil {
				t.Fatalf("record group match %d: %v", m.ID, err)
			}
		}
	}
}

// newGroupTournament builds groups without shuffling: players are dealt in order.
func newGroupTournament(sizes []int, ids IDSource) Tournament {
	total := 0
	for _, n := range sizes {
		total += n
	}
	players := makePlayers(total)
	tour := Tournament{ID: 1, Name: "Friday Open", Participants: players}
	next := 0
	for i, n := range sizes {
		members := append([]player.Player(nil), players[next:next+n]...)
		next += n
		tour.Groups = append(tour.Groups, Group{
			ID:      i + 1,
			Players: members,
			Matches: ScheduleGroup(i+1, members, ids),
		})
	}
	return tour
}

func playKnockout(t *testing.T, tour *Tournament, round Round, ids IDSource, player1Wins bool) {
	t.Helper()
	for _, pos := range tour.RoundMatches(round) {
		m := tour.KnockoutMatches[pos]
		res := Result{Player1Score: 3, Player2Score: 1}
		if !player1Wins {
			res = Result{Player1Score: 1, Player2Score: 3}
		}
		if err := tour.RecordResult(m.ID, res, ids); err != nil {
			t.Fatalf("record %s match %d: %v", round, m.ID, err)
		}
	}
}

func slotIDs(m Match) (int64, int64) {
	var a, b int64
	if m.Player1 != nil {
		a = m.Player1.ID
	}
	if m.Player2 != nil {
		b = m.Player2.ID
	}
	return a, b
}
