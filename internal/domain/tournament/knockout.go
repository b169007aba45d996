package tournament

import (
	"fmt"

	"github.com/Xadero/slsd/internal/domain/player"
)

// Result is a submitted score entry for one match.
type Result struct {
	Player1Score int
	Player2Score int
	Player1Stats MatchStatistics
	Player2Stats MatchStatistics
}

func (r Result) Validate() error {
	if r.Player1Score < 0 || r.Player2Score < 0 {
		return fmt.Errorf("%w: scores must be >= 0", ErrInvalidScore)
	}
	if r.Player1Score == r.Player2Score {
		return fmt.Errorf("%w: draws are not allowed", ErrInvalidScore)
	}
	return nil
}

// BracketRound groups knockout matches of one round in bracket order.
type BracketRound struct {
	Round   Round   `json:"round"`
	Matches []Match `json:"matches"`
}

// BuildBracket seeds the entry round. seeds[0] is seed 1.
func BuildBracket(seeds []player.Player, rules Rules, ids IDSource) ([]Match, error) {
	var (
		round    Round
		pairings []Pairing
	)
	switch len(seeds) {
	case 16:
		round, pairings = RoundOf16, rules.RoundOf16Seeding
	case 8:
		round, pairings = RoundQuarterFinal, rules.QuarterFinalSeeding
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidQualifierCount, len(seeds))
	}
	if err := validateSeeding(pairings, len(seeds)); err != nil {
		return nil, fmt.Errorf("%s seeding: %w", round, err)
	}

	matches := make([]Match, 0, len(pairings))
	for _, pairing := range pairings {
		high := seeds[pairing.HighSeed-1]
		low := seeds[pairing.LowSeed-1]
		matches = append(matches, Match{
			ID:      ids.NextID(),
			Player1: &high,
			Player2: &low,
			Round:   round,
		})
	}
	return matches, nil
}

// StartKnockout runs qualification and seeds the bracket. It accepts 8 or 16 qualifiers.
func (t *Tournament) StartKnockout(count int, rules Rules, ids IDSource) error {
	if t.Completed {
		return ErrTournamentCompleted
	}
	if t.KnockoutStageStarted {
		return fmt.Errorf("%w: knockout stage already started", ErrStageClosed)
	}
	if count != 8 && count != 16 {
		return fmt.Errorf("%w: %d", ErrInvalidQualifierCount, count)
	}

	seeds, err := SelectQualifiers(t, count, rules)
	if err != nil {
		return err
	}
	matches, err := BuildBracket(seeds, rules, ids)
	if err != nil {
		return err
	}

	t.KnockoutMatches = matches
	t.KnockoutStageStarted = true
	return nil
}

// Match returns a copy of the group or knockout match with the given id.
func (t *Tournament) Match(matchID int64) (Match, error) {
	for _, g := range t.Groups {
		for _, m := range g.Matches {
			if m.ID == matchID {
				return m, nil
			}
		}
	}
	for _, m := range t.KnockoutMatches {
		if m.ID == matchID {
			return m, nil
		}
	}
	return Match{}, fmt.Errorf("%w: match=%d", ErrUnknownEntity, matchID)
}

// RecordResult stores a score entry and, for knockout matches, moves the
// winner forward. A rejected result leaves the tournament untouched.
func (t *Tournament) RecordResult(matchID int64, result Result, ids IDSource) error {
	if t.Completed {
		return ErrTournamentCompleted
	}
	if err := result.Validate(); err != nil {
		return err
	}

	for gi := range t.Groups {
		for mi := range t.Groups[gi].Matches {
			m := &t.Groups[gi].Matches[mi]
			if m.ID != matchID {
				continue
			}
			if t.KnockoutStageStarted {
				return fmt.Errorf("%w: group stage is closed", ErrStageClosed)
			}
			applyResult(m, result)
			return nil
		}
	}

	for pos := range t.KnockoutMatches {
		m := &t.KnockoutMatches[pos]
		if m.ID != matchID {
			continue
		}
		if !m.Ready() {
			return fmt.Errorf("%w: match=%d has an unassigned slot", ErrNotReady, matchID)
		}
		applyResult(m, result)
		t.advance(pos, ids)
		return nil
	}

	return fmt.Errorf("%w: match=%d", ErrUnknownEntity, matchID)
}

// Finalize marks the tournament completed. With a knockout stage the Final and
// every other knockout match must be resolved; without one every group match must be.
func (t *Tournament) Finalize() error {
	if t.Completed {
		return ErrTournamentCompleted
	}
	if !t.GroupMatchesCompleted() {
		return fmt.Errorf("%w: group stage", ErrNotReady)
	}
	if t.KnockoutStageStarted {
		final, ok := t.FinalMatch()
		if !ok || !final.Completed {
			return fmt.Errorf("%w: final", ErrNotReady)
		}
		for _, m := range t.KnockoutMatches {
			if !m.Completed {
				return fmt.Errorf("%w: %s match=%d", ErrNotReady, m.Round, m.ID)
			}
		}
	}

	t.Completed = true
	return nil
}

// Bracket returns knockout matches grouped by round, rounds in play order.
func (t *Tournament) Bracket() []BracketRound {
	out := make([]BracketRound, 0, len(RoundOrder))
	for _, round := range RoundOrder {
		positions := t.RoundMatches(round)
		if len(positions) == 0 {
			continue
		}
		matches := make([]Match, 0, len(positions))
		for _, pos := range positions {
			matches = append(matches, t.KnockoutMatches[pos].clone())
		}
		out = append(out, BracketRound{Round: round, Matches: matches})
	}
	return out
}

func applyResult(m *Match, result Result) {
	s1, s2 := result.Player1Score, result.Player2Score
	m.Player1Score = &s1
	m.Player2Score = &s2
	m.Player1Stats = result.Player1Stats
	m.Player2Stats = result.Player2Stats
	m.Completed = true
}

// advance places the winner of the match at pos into match i/2 of the next
// round, slot i%2, and seeds the third-place match once both semi-finals are done.
func (t *Tournament) advance(pos int, ids IDSource) {
	m := t.KnockoutMatches[pos]
	winner, ok := m.Winner()
	if !ok {
		return
	}
	next, ok := m.Round.Next()
	if !ok {
		return
	}

	idx := t.indexInRound(pos)
	t.place(next, idx/2, idx%2, winner, ids)
	if m.Round == RoundSemiFinal {
		t.syncThirdPlace(ids)
	}
}

func (t *Tournament) syncThirdPlace(ids IDSource) {
	semis := t.RoundMatches(RoundSemiFinal)
	if len(semis) < 2 {
		return
	}
	first, ok1 := t.KnockoutMatches[semis[0]].Loser()
	second, ok2 := t.KnockoutMatches[semis[1]].Loser()
	if !ok1 || !ok2 {
		return
	}
	t.place(RoundThirdPlace, 0, 0, first, ids)
	t.place(RoundThirdPlace, 0, 1, second, ids)
}

// place puts p into a slot, creating missing matches of the round on the way.
// Replacing a different occupant resets the match and withdraws whatever its
// old result fed into later rounds.
func (t *Tournament) place(round Round, index, slot int, p player.Player, ids IDSource) {
	pos := t.ensureMatch(round, index, ids)
	if current := t.KnockoutMatches[pos].slot(slot); current != nil && current.ID == p.ID {
		return
	}
	if t.KnockoutMatches[pos].Completed {
		t.retract(pos)
	}

	m := &t.KnockoutMatches[pos]
	m.setSlot(slot, &p)
	m.resetResult()
}

func (t *Tournament) retract(pos int) {
	m := t.KnockoutMatches[pos]
	next, ok := m.Round.Next()
	if !ok {
		return
	}
	idx := t.indexInRound(pos)
	t.clearSlot(next, idx/2, idx%2)
	if m.Round == RoundSemiFinal {
		t.clearSlot(RoundThirdPlace, 0, idx%2)
	}
}

func (t *Tournament) clearSlot(round Round, index, slot int) {
	positions := t.RoundMatches(round)
	if index >= len(positions) {
		return
	}
	pos := positions[index]
	if t.KnockoutMatches[pos].slot(slot) == nil {
		return
	}
	if t.KnockoutMatches[pos].Completed {
		t.retract(pos)
	}

	m := &t.KnockoutMatches[pos]
	m.setSlot(slot, nil)
	m.resetResult()
}

func (t *Tournament) ensureMatch(round Round, index int, ids IDSource) int {
	positions := t.RoundMatches(round)
	for len(positions) <= index {
		t.KnockoutMatches = append(t.KnockoutMatches, Match{ID: ids.NextID(), Round: round})
		positions = append(positions, len(t.KnockoutMatches)-1)
	}
	return positions[index]
}
