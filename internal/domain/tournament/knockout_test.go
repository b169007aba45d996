package tournament

import (
	"errors"
	"testing"
)

func TestBuildBracket_RoundOf16Seeding(t *testing.T) {
	t.Parallel()

	seeds := makePlayers(16)
	matches, err := BuildBracket(seeds, StandardRules(), &seqIDs{})
	if err != nil {
		t.Fatalf("build bracket: %v", err)
	}

	want := [][2]int64{{1, 16}, {8, 9}, {4, 13}, {5, 12}, {2, 15}, {7, 10}, {3, 14}, {6, 11}}
	if len(matches) != len(want) {
		t.Fatalf("expected %d matches, got %d", len(want), len(matches))
	}
	for i, m := range matches {
		a, b := slotIDs(m)
		if a != want[i][0] || b != want[i][1] || m.Round != RoundOf16 {
			t.Fatalf("match %d: got %d v %d (%s)", i, a, b, m.Round)
		}
		if m.GroupID != nil {
			t.Fatalf("knockout match %d must not carry a group id", i)
		}
	}
}

func TestBuildBracket_QuarterFinalPresets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		rules Rules
		want  [][2]int64
	}{
		{name: "standard", rules: StandardRules(), want: [][2]int64{{1, 8}, {4, 5}, {3, 6}, {2, 7}}},
		{name: "classic", rules: ClassicRules(), want: [][2]int64{{1, 8}, {4, 5}, {2, 7}, {3, 6}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			matches, err := BuildBracket(makePlayers(8), tc.rules, &seqIDs{})
			if err != nil {
				t.Fatalf("build bracket: %v", err)
			}
			for i, m := range matches {
				a, b := slotIDs(m)
				if a != tc.want[i][0] || b != tc.want[i][1] || m.Round != RoundQuarterFinal {
					t.Fatalf("match %d: got %d v %d (%s)", i, a, b, m.Round)
				}
			}
		})
	}
}

func TestBuildBracket_RejectsUnsupportedSize(t *testing.T) {
	t.Parallel()

	if _, err := BuildBracket(makePlayers(6), StandardRules(), &seqIDs{}); !errors.Is(err, ErrInvalidQualifierCount) {
		t.Fatalf("expected ErrInvalidQualifierCount, got %v", err)
	}
}

func TestStartKnockout(t *testing.T) {
	t.Parallel()

	t.Run("requires completed groups", func(t *testing.T) {
		ids := &seqIDs{}
		tour := newGroupTournament([]int{4, 4}, ids)
		if err := tour.StartKnockout(8, StandardRules(), ids); !errors.Is(err, ErrNotReady) {
			t.Fatalf("expected ErrNotReady, got %v", err)
		}
		if tour.KnockoutStageStarted || len(tour.KnockoutMatches) != 0 {
			t.Fatalf("failed start must not mutate the tournament")
		}
	})

	t.Run("rejects unsupported count", func(t *testing.T) {
		ids := &seqIDs{}
		tour := newGroupTournament([]int{4, 4}, ids)
		completeGroups(t, &tour, ids)
		if err := tour.StartKnockout(4, StandardRules(), ids); !errors.Is(err, ErrInvalidQualifierCount) {
			t.Fatalf("expected ErrInvalidQualifierCount, got %v", err)
		}
	})

	t.Run("seeds quarter finals and closes group stage", func(t *testing.T) {
		ids := &seqIDs{}
		tour := newGroupTournament([]int{4, 4}, ids)
		completeGroups(t, &tour, ids)
		if err := tour.StartKnockout(8, StandardRules(), ids); err != nil {
			t.Fatalf("start knockout: %v", err)
		}
		if !tour.KnockoutStageStarted || len(tour.RoundMatches(RoundQuarterFinal)) != 4 {
			t.Fatalf("expected 4 quarter-finals, got %+v", tour.KnockoutMatches)
		}

		groupMatch := tour.Groups[0].Matches[0]
		err := tour.RecordResult(groupMatch.ID, Result{Player1Score: 0, Player2Score: 3}, ids)
		if !errors.Is(err, ErrStageClosed) {
			t.Fatalf("expected ErrStageClosed for group result, got %v", err)
		}
		if err := tour.StartKnockout(8, StandardRules(), ids); !errors.Is(err, ErrStageClosed) {
			t.Fatalf("expected ErrStageClosed on second start, got %v", err)
		}
	})
}

func TestKnockout_RoundOf16FillsQuarterFinals(t *testing.T) {
	t.Parallel()

	ids := &seqIDs{next: 100}
	tour := Tournament{Name: "Masters", KnockoutStageStarted: true}
	matches, err := BuildBracket(makePlayers(16), StandardRules(), ids)
	if err != nil {
		t.Fatalf("build bracket: %v", err)
	}
	tour.KnockoutMatches = matches

	playKnockout(t, &tour, RoundOf16, ids, true)

	qf := tour.RoundMatches(RoundQuarterFinal)
	if len(qf) != 4 {
		t.Fatalf("expected 4 quarter-finals, got %d", len(qf))
	}
	want := [][2]int64{{1, 8}, {4, 5}, {2, 7}, {3, 6}}
	for i, pos := range qf {
		m := tour.KnockoutMatches[pos]
		if !m.Ready() {
			t.Fatalf("quarter-final %d still has an unassigned slot", i)
		}
		a, b := slotIDs(m)
		if a != want[i][0] || b != want[i][1] {
			t.Fatalf("quarter-final %d: got %d v %d, want %d v %d", i, a, b, want[i][0], want[i][1])
		}
	}
}

func TestKnockout_QuarterFinalsPairIntoSemiFinals(t *testing.T) {
	t.Parallel()

	ids := &seqIDs{next: 100}
	tour := Tournament{Name: "Classic Cup", KnockoutStageStarted: true}
	matches, err := BuildBracket(makePlayers(8), ClassicRules(), ids)
	if err != nil {
		t.Fatalf("build bracket: %v", err)
	}
	tour.KnockoutMatches = matches

	playKnockout(t, &tour, RoundQuarterFinal, ids, true)

	sf := tour.RoundMatches(RoundSemiFinal)
	if len(sf) != 2 {
		t.Fatalf("expected 2 semi-finals, got %d", len(sf))
	}
	a, b := slotIDs(tour.KnockoutMatches[sf[0]])
	if a != 1 || b != 4 {
		t.Fatalf("first semi-final: got %d v %d, want 1 v 4", a, b)
	}
	a, b = slotIDs(tour.KnockoutMatches[sf[1]])
	if a != 2 || b != 3 {
		t.Fatalf("second semi-final: got %d v %d, want 2 v 3", a, b)
	}
}

func TestKnockout_SemiFinalsCreateFinalAndThirdPlace(t *testing.T) {
	t.Parallel()

	ids := &seqIDs{next: 100}
	tour := Tournament{Name: "Classic Cup", KnockoutStageStarted: true}
	matches, _ := BuildBracket(makePlayers(8), ClassicRules(), ids)
	tour.KnockoutMatches = matches
	playKnockout(t, &tour, RoundQuarterFinal, ids, true)

	sf := tour.RoundMatches(RoundSemiFinal)
	first := tour.KnockoutMatches[sf[0]]
	if err := tour.RecordResult(first.ID, Result{Player1Score: 3, Player2Score: 2}, ids); err != nil {
		t.Fatalf("record first semi-final: %v", err)
	}

	final, ok := tour.FinalMatch()
	if !ok {
		t.Fatalf("expected final after first semi-final")
	}
	if final.Player1 == nil || final.Player1.ID != 1 || final.Player2 != nil {
		t.Fatalf("unexpected final slots: %+v", final)
	}
	if len(tour.RoundMatches(RoundThirdPlace)) != 0 {
		t.Fatalf("third-place match must wait for both semi-finals")
	}
	if err := tour.RecordResult(final.ID, Result{Player1Score: 3, Player2Score: 0}, ids); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady for half-filled final, got %v", err)
	}

	second := tour.KnockoutMatches[sf[1]]
	if err := tour.RecordResult(second.ID, Result{Player1Score: 1, Player2Score: 3}, ids); err != nil {
		t.Fatalf("record second semi-final: %v", err)
	}

	final, _ = tour.FinalMatch()
	if a, b := slotIDs(final); a != 1 || b != 3 {
		t.Fatalf("final: got %d v %d, want 1 v 3", a, b)
	}
	third := tour.RoundMatches(RoundThirdPlace)
	if len(third) != 1 {
		t.Fatalf("expected one third-place match, got %d", len(third))
	}
	if a, b := slotIDs(tour.KnockoutMatches[third[0]]); a != 4 || b != 2 {
		t.Fatalf("third place: got %d v %d, want 4 v 2", a, b)
	}
}

func TestKnockout_OutOfOrderEntryCreatesMissingMatches(t *testing.T) {
	t.Parallel()

	ids := &seqIDs{next: 100}
	tour := Tournament{Name: "Late Entry", KnockoutStageStarted: true}
	matches, _ := BuildBracket(makePlayers(8), ClassicRules(), ids)
	tour.KnockoutMatches = matches

	qf := tour.RoundMatches(RoundQuarterFinal)
	third := tour.KnockoutMatches[qf[3]]
	if err := tour.RecordResult(third.ID, Result{Player1Score: 2, Player2Score: 3}, ids); err != nil {
		t.Fatalf("record quarter-final: %v", err)
	}

	sf := tour.RoundMatches(RoundSemiFinal)
	if len(sf) != 2 {
		t.Fatalf("expected both semi-finals to exist, got %d", len(sf))
	}
	if tour.KnockoutMatches[sf[0]].Player1 != nil || tour.KnockoutMatches[sf[0]].Player2 != nil {
		t.Fatalf("first semi-final should still be empty")
	}
	if a, b := slotIDs(tour.KnockoutMatches[sf[1]]); a != 0 || b != 6 {
		t.Fatalf("second semi-final: got %d v %d, want empty v 6", a, b)
	}
}

func TestKnockout_CorrectionReplacesWinnerDownstream(t *testing.T) {
	t.Parallel()

	ids := &seqIDs{next: 100}
	tour := Tournament{Name: "Correction", KnockoutStageStarted: true}
	matches, _ := BuildBracket(makePlayers(8), ClassicRules(), ids)
	tour.KnockoutMatches = matches
	playKnockout(t, &tour, RoundQuarterFinal, ids, true)

	sf := tour.RoundMatches(RoundSemiFinal)
	if err := tour.RecordResult(tour.KnockoutMatches[sf[0]].ID, Result{Player1Score: 3, Player2Score: 1}, ids); err != nil {
		t.Fatalf("record semi-final: %v", err)
	}

	// Same winner with a new score keeps the semi-final result.
	qf := tour.RoundMatches(RoundQuarterFinal)
	if err := tour.RecordResult(tour.KnockoutMatches[qf[0]].ID, Result{Player1Score: 3, Player2Score: 2}, ids); err != nil {
		t.Fatalf("re-record quarter-final: %v", err)
	}
	if !tour.KnockoutMatches[sf[0]].Completed {
		t.Fatalf("semi-final should stay completed when its players are unchanged")
	}

	// Flipping the winner resets the semi-final and withdraws the finalist.
	if err := tour.RecordResult(tour.KnockoutMatches[qf[0]].ID, Result{Player1Score: 1, Player2Score: 3}, ids); err != nil {
		t.Fatalf("correct quarter-final: %v", err)
	}
	semi := tour.KnockoutMatches[sf[0]]
	if semi.Completed || semi.Player1Score != nil || semi.Player2Score != nil {
		t.Fatalf("semi-final should be reset: %+v", semi)
	}
	if semi.Player1 == nil || semi.Player1.ID != 8 {
		t.Fatalf("semi-final slot should hold the corrected winner: %+v", semi.Player1)
	}
	final, ok := tour.FinalMatch()
	if !ok {
		t.Fatalf("final should remain in the bracket")
	}
	if final.Player1 != nil {
		t.Fatalf("final slot fed by the reset semi-final should be cleared: %+v", final.Player1)
	}
}

func TestRecordResult_Rejections(t *testing.T) {
	t.Parallel()

	ids := &seqIDs{}
	tour := newGroupTournament([]int{4}, ids)
	target := tour.Groups[0].Matches[0]

	tests := []struct {
		name    string
		matchID int64
		result  Result
		wantErr error
	}{
		{name: "draw", matchID: target.ID, result: Result{Player1Score: 2, Player2Score: 2}, wantErr: ErrInvalidScore},
		{name: "negative", matchID: target.ID, result: Result{Player1Score: -1, Player2Score: 3}, wantErr: ErrInvalidScore},
		{name: "unknown match", matchID: 9999, result: Result{Player1Score: 3, Player2Score: 1}, wantErr: ErrUnknownEntity},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tour.RecordResult(tc.matchID, tc.result, ids)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			got, _ := tour.Match(target.ID)
			if got.Completed || got.Player1Score != nil {
				t.Fatalf("rejected result must leave the match untouched: %+v", got)
			}
		})
	}
}

func TestFinalize(t *testing.T) {
	t.Parallel()

	t.Run("group only tournament", func(t *testing.T) {
		ids := &seqIDs{}
		tour := newGroupTournament([]int{4}, ids)
		if err := tour.Finalize(); !errors.Is(err, ErrNotReady) {
			t.Fatalf("expected ErrNotReady, got %v", err)
		}
		completeGroups(t, &tour, ids)
		if err := tour.Finalize(); err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if err := tour.Finalize(); !errors.Is(err, ErrTournamentCompleted) {
			t.Fatalf("expected ErrTournamentCompleted, got %v", err)
		}
	})

	t.Run("knockout requires every match", func(t *testing.T) {
		ids := &seqIDs{}
		tour := newGroupTournament([]int{4, 4}, ids)
		completeGroups(t, &tour, ids)
		if err := tour.StartKnockout(8, StandardRules(), ids); err != nil {
			t.Fatalf("start knockout: %v", err)
		}
		playKnockout(t, &tour, RoundQuarterFinal, ids, true)
		playKnockout(t, &tour, RoundSemiFinal, ids, true)
		playKnockout(t, &tour, RoundFinal, ids, true)

		if err := tour.Finalize(); !errors.Is(err, ErrNotReady) {
			t.Fatalf("expected ErrNotReady while third place is open, got %v", err)
		}
		playKnockout(t, &tour, RoundThirdPlace, ids, false)
		if err := tour.Finalize(); err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if !tour.Completed {
			t.Fatalf("expected tournament to be completed")
		}
		err := tour.RecordResult(tour.KnockoutMatches[0].ID, Result{Player1Score: 3, Player2Score: 0}, ids)
		if !errors.Is(err, ErrTournamentCompleted) {
			t.Fatalf("expected ErrTournamentCompleted, got %v", err)
		}
	})
}
