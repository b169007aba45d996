package tournament

import "testing"

func TestSummarize(t *testing.T) {
	t.Parallel()

	ids := &seqIDs{}
	tour := newGroupTournament([]int{4, 4}, ids)
	completeGroups(t, &tour, ids)
	if err := tour.StartKnockout(8, StandardRules(), ids); err != nil {
		t.Fatalf("start knockout: %v", err)
	}
	playKnockout(t, &tour, RoundQuarterFinal, ids, true)
	playKnockout(t, &tour, RoundSemiFinal, ids, true)
	playKnockout(t, &tour, RoundFinal, ids, true)
	playKnockout(t, &tour, RoundThirdPlace, ids, true)

	open := tour.Summarize()
	if open.Winner != nil || open.RunnerUp != nil {
		t.Fatalf("winner must stay empty until the tournament is finalized: %+v", open)
	}

	if err := tour.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	got := tour.Summarize()
	if got.TournamentID != 1 || got.Name != "Friday Open" {
		t.Fatalf("unexpected header: %+v", got)
	}
	if got.Winner == nil || got.Winner.ID != 1 {
		t.Fatalf("expected player 1 as winner, got %+v", got.Winner)
	}
	if got.RunnerUp == nil || got.RunnerUp.ID != 3 {
		t.Fatalf("expected player 3 as runner-up, got %+v", got.RunnerUp)
	}

	want := []struct {
		id     int64
		points int
	}{
		{id: 1, points: 31},
		{id: 3, points: 15},
		{id: 4, points: 10},
	}
	if len(got.TopPlayers) != len(want) {
		t.Fatalf("expected %d top players, got %+v", len(want), got.TopPlayers)
	}
	for i, w := range want {
		row := got.TopPlayers[i]
		if row.Player.ID != w.id || row.Points != w.points {
			t.Fatalf("top player %d: got id=%d points=%d, want id=%d points=%d", i, row.Player.ID, row.Points, w.id, w.points)
		}
	}
}

func TestSummarize_GroupOnly(t *testing.T) {
	t.Parallel()

	ids := &seqIDs{}
	tour := newGroupTournament([]int{3}, ids)
	completeGroups(t, &tour, ids)
	if err := tour.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	got := tour.Summarize()
	if got.Winner != nil {
		t.Fatalf("group-only tournament has no final winner: %+v", got.Winner)
	}
	if len(got.TopPlayers) != 2 || got.TopPlayers[0].Player.ID != 1 || got.TopPlayers[0].Points != 4 {
		t.Fatalf("unexpected top players: %+v", got.TopPlayers)
	}
}
