package ranking

import (
	"errors"
	"testing"

	"github.com/Xadero/slsd/internal/domain/tournament"
)

func TestTournamentPoints_KnockoutTables(t *testing.T) {
	t.Parallel()

	tour := playedTournament(t, 1, day(1), "", roster(1, 2, 3, 4, 5, 6, 7, 8))

	tests := []struct {
		name  string
		table PointsTable
		want  map[int64]Award
	}{
		{
			name:  "standard",
			table: StandardPoints(),
			want: map[int64]Award{
				1: {Placement: PlacementWinner, Points: 40},
				3: {Placement: PlacementRunnerUp, Points: 32},
				4: {Placement: PlacementThirdPlaceWinner, Points: 30},
				2: {Placement: PlacementThirdPlaceLoser, Points: 28},
				5: {Placement: PlacementQuarterFinalist, Points: 20},
				8: {Placement: PlacementQuarterFinalist, Points: 20},
			},
		},
		{
			name:  "semifinal",
			table: SemiFinalPoints(),
			want: map[int64]Award{
				1: {Placement: PlacementWinner, Points: 40},
				3: {Placement: PlacementRunnerUp, Points: 32},
				4: {Placement: PlacementSemiFinalist, Points: 24},
				2: {Placement: PlacementSemiFinalist, Points: 24},
				6: {Placement: PlacementQuarterFinalist, Points: 20},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, p := range tour.Participants {
				want, ok := tc.want[p.ID]
				if !ok {
					continue
				}
				got := TournamentPoints(p, tour, tc.table, tournament.StandardRules())
				if got.Placement != want.Placement || got.Points != want.Points {
					t.Fatalf("player %d: got %s/%d, want %s/%d", p.ID, got.Placement, got.Points, want.Placement, want.Points)
				}
			}
		})
	}
}

func TestTournamentPoints_GroupPositions(t *testing.T) {
	t.Parallel()

	tour := groupOnlyTournament(t, roster(1, 2, 3, 4, 5))
	want := map[int64]int{1: 0, 2: 0, 3: 14, 4: 8, 5: 8}
	for _, award := range Awards(tour, StandardPoints(), tournament.StandardRules()) {
		if award.Points != want[award.Player.ID] {
			t.Fatalf("player %d: got %d points, want %d", award.Player.ID, award.Points, want[award.Player.ID])
		}
	}
}

func TestTournamentPoints_IgnoresUndecidedKnockout(t *testing.T) {
	t.Parallel()

	tour := playedTournament(t, 1, day(1), "", roster(1, 2, 3, 4, 5, 6, 7, 8))
	for i := range tour.KnockoutMatches {
		if tour.KnockoutMatches[i].Round == tournament.RoundFinal {
			tour.KnockoutMatches[i].Completed = false
		}
	}

	got := TournamentPoints(roster(1)[0], tour, StandardPoints(), tournament.StandardRules())
	if got.Placement != PlacementQuarterFinalist || got.Points != 20 {
		t.Fatalf("expected fallback to the last decided round, got %+v", got)
	}
}

func TestPointsTableByName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{name: "", want: PointsTableStandard},
		{name: "Standard", want: PointsTableStandard},
		{name: " semifinal ", want: PointsTableSemiFinal},
		{name: "legacy", wantErr: true},
	}

	for _, tc := range tests {
		got, err := PointsTableByName(tc.name)
		if tc.wantErr {
			if !errors.Is(err, ErrUnknownPointsTable) {
				t.Fatalf("%q: expected ErrUnknownPointsTable, got %v", tc.name, err)
			}
			continue
		}
		if err != nil || got.Name != tc.want {
			t.Fatalf("%q: got %q err=%v, want %q", tc.name, got.Name, err, tc.want)
		}
	}
}
