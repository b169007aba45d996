package tournament

import (
	"reflect"
	"testing"

	"github.com/Xadero/slsd/internal/domain/player"
)

func TestComputeStandings_SeedFixture(t *testing.T) {
	t.Parallel()

	ids := &seqIDs{}
	tour := newGroupTournament([]int{4}, ids)
	scores := [][2]int{{3, 1}, {3, 2}, {3, 0}, {1, 3}, {2, 3}, {0, 3}}
	for i, m := range tour.Groups[0].Matches {
		res := Result{Player1Score: scores[i][0], Player2Score: scores[i][1]}
		if err := tour.RecordResult(m.ID, res, ids); err != nil {
			t.Fatalf("record match %d: %v", i, err)
		}
	}

	got := tour.Groups[0].Standings(StandardRules())

	want := []struct {
		id       int64
		points   int
		legDiff  int
		wins     int
		position int
	}{
		{id: 2, points: 6, legDiff: 6, wins: 3, position: 1},
		{id: 1, points: 4, legDiff: 1, wins: 2, position: 2},
		{id: 4, points: 2, legDiff: 0, wins: 1, position: 3},
		{id: 3, points: 0, legDiff: -7, wins: 0, position: 4},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(got))
	}
	for i, w := range want {
		row := got[i]
		if row.Player.ID != w.id || row.Points != w.points || row.LegDifference != w.legDiff || row.Wins != w.wins || row.Position != w.position {
			t.Fatalf("row %d: got %+v, want %+v", i, row, w)
		}
		if row.Played != 3 || row.Losses != 3-w.wins {
			t.Fatalf("row %d: unexpected played/losses %+v", i, row)
		}
	}
}

func TestComputeStandings_PointsPerWinFollowsRules(t *testing.T) {
	t.Parallel()

	players := makePlayers(2)
	matches := []Match{played(1, players[0], players[1], 3, 0)}

	got := ComputeStandings(players, matches, ClassicRules().PointsPerWin)
	if got[0].Points != 1 {
		t.Fatalf("expected 1 point per win, got %d", got[0].Points)
	}
}

func TestComputeStandings_HeadToHeadBreaksTie(t *testing.T) {
	t.Parallel()

	p := makePlayers(4)
	a, b, c, d := p[0], p[1], p[2], p[3]
	// b is listed before a; both end on one win and -1 legs, a beat b.
	matches := []Match{
		played(1, a, b, 3, 2),
		played(1, a, c, 2, 3),
		played(1, a, d, 2, 3),
		played(1, b, c, 3, 2),
		played(1, b, d, 2, 3),
		played(1, c, d, 0, 3),
	}

	got := ComputeStandings([]player.Player{b, a, c, d}, matches, 2)

	order := []int64{d.ID, a.ID, b.ID, c.ID}
	for i, id := range order {
		if got[i].Player.ID != id {
			t.Fatalf("position %d: got player %d, want %d (rows=%+v)", i+1, got[i].Player.ID, id, got)
		}
	}
	if got[1].Points != got[2].Points || got[1].LegDifference != got[2].LegDifference {
		t.Fatalf("expected a full tie between positions 2 and 3: %+v", got[1:3])
	}
}

func TestComputeStandings_IgnoresIncompleteMatches(t *testing.T) {
	t.Parallel()

	p := makePlayers(3)
	pending := played(1, p[2], p[0], 3, 0)
	pending.Completed = false
	matches := []Match{
		played(1, p[1], p[0], 3, 1),
		pending,
	}

	got := ComputeStandings(p, matches, 2)
	if got[0].Player.ID != p[1].ID || got[0].Played != 1 {
		t.Fatalf("unexpected leader: %+v", got[0])
	}
	for _, row := range got {
		if row.Player.ID == p[2].ID && row.Played != 0 {
			t.Fatalf("incomplete match should not count: %+v", row)
		}
	}
	// p[2] has no legs conceded yet, p[0] is -2
	if got[1].Player.ID != p[2].ID || got[2].Player.ID != p[0].ID {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestComputeStandings_Idempotent(t *testing.T) {
	t.Parallel()

	ids := &seqIDs{}
	tour := newGroupTournament([]int{5}, ids)
	completeGroups(t, &tour, ids)

	first := tour.Groups[0].Standings(StandardRules())
	second := tour.Groups[0].Standings(StandardRules())
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("standings differ between calls:\n%+v\n%+v", first, second)
	}
}
