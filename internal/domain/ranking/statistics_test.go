package ranking

import (
	"testing"

	"github.com/Xadero/slsd/internal/domain/tournament"
)

func TestPlayerStatistics(t *testing.T) {
	t.Parallel()

	ps := roster(1, 2, 3)
	score := func(v int) *int { return &v }
	gid := 1
	tour := tournament.Tournament{
		Name:         "Stats Night",
		Participants: ps,
		Groups: []tournament.Group{{
			ID:      1,
			Players: ps,
			Matches: []tournament.Match{
				{
					ID: 1, GroupID: &gid, Player1: &ps[0], Player2: &ps[1],
					Player1Score: score(3), Player2Score: score(2), Completed: true,
					Player1Stats: tournament.MatchStatistics{Count180s: 2, Count171s: 1, HighestFinish: 121, BestLeg: 15},
				},
				{
					ID: 2, GroupID: &gid, Player1: &ps[2], Player2: &ps[0],
					Player1Score: score(3), Player2Score: score(0), Completed: true,
					Player2Stats: tournament.MatchStatistics{Count180s: 1, HighestFinish: 80, BestLeg: 12},
				},
				{
					ID: 3, GroupID: &gid, Player1: &ps[1], Player2: &ps[2],
				},
			},
		}},
	}

	got := PlayerStatistics(1, tour)
	want := Statistics{
		Total180s:     3,
		Total171s:     1,
		HighestFinish: 121,
		BestLeg:       15,
		LegDifference: -2,
		MatchesPlayed: 2,
		LegsPlayed:    8,
		LegsWon:       3,
		MatchesWon:    1,
	}
	if got != want {
		t.Fatalf("unexpected statistics:\n got %+v\nwant %+v", got, want)
	}

	if none := PlayerStatistics(99, tour); none != (Statistics{}) {
		t.Fatalf("expected zero statistics for absent player, got %+v", none)
	}
}

func TestPercentages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		stats       Statistics
		wantLegs    float64
		wantMatches float64
	}{
		{name: "nothing played", stats: Statistics{}},
		{name: "half", stats: Statistics{LegsPlayed: 10, LegsWon: 5, MatchesPlayed: 4, MatchesWon: 1}, wantLegs: 50, wantMatches: 25},
		{name: "all won", stats: Statistics{LegsPlayed: 3, LegsWon: 3, MatchesPlayed: 1, MatchesWon: 1}, wantLegs: 100, wantMatches: 100},
	}

	for _, tc := range tests {
		legs, matches := Percentages(tc.stats)
		if legs != tc.wantLegs || matches != tc.wantMatches {
			t.Fatalf("%s: got %.2f/%.2f, want %.2f/%.2f", tc.name, legs, matches, tc.wantLegs, tc.wantMatches)
		}
	}
}
