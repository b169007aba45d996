package ranking

import (
	"fmt"
	"testing"
	"time"

	"github.com/Xadero/slsd/internal/domain/player"
	"github.com/Xadero/slsd/internal/domain/tournament"
)

type seqIDs struct {
	next int64
}

func (s *seqIDs) NextID() int64 {
	s.next++
	return s.next
}

func roster(ids ...int64) []player.Player {
	out := make([]player.Player, 0, len(ids))
	for _, id := range ids {
		out = append(out, player.Player{ID: id, Name: fmt.Sprintf("player-%02d", id)})
	}
	return out
}

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

// playedTournament runs two groups of four and an 8-player knockout to
// completion. Earlier roster entries beat later ones in groups; the knockout
// always goes to player1. With standard points roster[0] wins, roster[2]
// is runner-up, roster[3] third, roster[1] fourth and the rest are
// quarter-finalists.
func playedTournament(t *testing.T, id int64, date time.Time, seriesID string, entrants []player.Player) tournament.Tournament {
	t.Helper()

	ids := &seqIDs{next: id * 1000}
	strength := make(map[int64]int, len(entrants))
	for i, p := range entrants {
		strength[p.ID] = i
	}

	tour := tournament.Tournament{
		ID:           id,
		Name:         fmt.Sprintf("Night %d", id),
		Date:         date,
		Participants: entrants,
		SeriesID:     seriesID,
	}
	for g := 0; g < 2; g++ {
		members := append([]player.Player(nil), entrants[g*4:g*4+4]...)
		tour.Groups = append(tour.Groups, tournament.Group{
			ID:      g + 1,
			Players: members,
			Matches: tournament.ScheduleGroup(g+1, members, ids),
		})
	}
	for _, g := range tour.Groups {
		for _, m := range g.Matches {
			res := tournament.Result{Player1Score: 3, Player2Score: 1}
			if strength[m.Player1.ID] > strength[m.Player2.ID] {
				res = tournament.Result{Player1Score: 1, Player2Score: 3}
			}
			if err := tour.RecordResult(m.ID, res, ids); err != nil {
				t.Fatalf("record group match: %v", err)
			}
		}
	}

	if err := tour.StartKnockout(8, tournament.StandardRules(), ids); err != nil {
		t.Fatalf("start knockout: %v", err)
	}
	for _, round := range tournament.RoundOrder {
		for _, pos := range tour.RoundMatches(round) {
			m := tour.KnockoutMatches[pos]
			if err := tour.RecordResult(m.ID, tournament.Result{Player1Score: 3, Player2Score: 1}, ids); err != nil {
				t.Fatalf("record %s match: %v", round, err)
			}
		}
	}
	if err := tour.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	return tour
}

func groupOnlyTournament(t *testing.T, entrants []player.Player) tournament.Tournament {
	t.Helper()

	ids := &seqIDs{}
	tour := tournament.Tournament{ID: 7, Name: "Small Night", Date: day(1), Participants: entrants}
	tour.Groups = []tournament.Group{{ID: 1, Players: entrants, Matches: tournament.ScheduleGroup(1, entrants, ids)}}
	for _, m := range tour.Groups[0].Matches {
		res := tournament.Result{Player1Score: 3, Player2Score: 0}
		if m.Player1.ID > m.Player2.ID {
			res = tournament.Result{Player1Score: 0, Player2Score: 3}
		}
		if err := tour.RecordResult(m.ID, res, ids); err != nil {
			t.Fatalf("record group match: %v", err)
		}
	}
	if err := tour.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	return tour
}

func byPlayer(rows []PlayerRanking) map[int64]PlayerRanking {
	out := make(map[int64]PlayerRanking, len(rows))
	for _, row := range rows {
		out[row.Player.ID] = row
	}
	return out
}
