package tournament

import (
	"time"

	"github.com/Xadero/slsd/internal/domain/player"
)

// Round tags a knockout match.
type Round string

const (
	RoundOf16         Round = "Round-16"
	RoundQuarterFinal Round = "Quarter-Finals"
	RoundSemiFinal    Round = "Semi-Finals"
	RoundFinal        Round = "Final"
	RoundThirdPlace   Round = "Third-Place"
)

// RoundOrder lists knockout rounds in display order.
var RoundOrder = []Round{RoundOf16, RoundQuarterFinal, RoundSemiFinal, RoundFinal, RoundThirdPlace}

// Next returns the round a winner advances into. Final and Third-Place are terminal.
func (r Round) Next() (Round, bool) {
	switch r {
	case RoundOf16:
		return RoundQuarterFinal, true
	case RoundQuarterFinal:
		return RoundSemiFinal, true
	case RoundSemiFinal:
		return RoundFinal, true
	default:
		return "", false
	}
}

func (r Round) Valid() bool {
	for _, item := range RoundOrder {
		if item == r {
			return true
		}
	}
	return false
}

// MatchStatistics holds per-player counters for one match.
type MatchStatistics struct {
	Count180s     int `json:"count180s"`
	Count171s     int `json:"count171s"`
	HighestFinish int `json:"highestFinish"`
	BestLeg       int `json:"bestLeg"`
}

// Match is either group scoped (GroupID set) or knockout scoped (Round set).
// A nil player is an unassigned bracket slot.
type Match struct {
	ID           int64           `json:"id"`
	Player1      *player.Player  `json:"player1,omitempty"`
	Player2      *player.Player  `json:"player2,omitempty"`
	Player1Score *int            `json:"player1Score,omitempty"`
	Player2Score *int            `json:"player2Score,omitempty"`
	Completed    bool            `json:"completed"`
	GroupID      *int            `json:"groupId,omitempty"`
	Round        Round           `json:"round,omitempty"`
	Player1Stats MatchStatistics `json:"player1Stats"`
	Player2Stats MatchStatistics `json:"player2Stats"`
}

func (m Match) IsGroupMatch() bool {
	return m.GroupID != nil && m.Round == ""
}

func (m Match) IsKnockoutMatch() bool {
	return m.Round != "" && m.GroupID == nil
}

// Ready reports whether both slots hold a player.
func (m Match) Ready() bool {
	return m.Player1 != nil && m.Player2 != nil
}

func (m Match) hasResult() bool {
	return m.Completed && m.Player1Score != nil && m.Player2Score != nil && *m.Player1Score != *m.Player2Score
}

// Winner returns the player with the strictly higher leg score of a completed match.
func (m Match) Winner() (player.Player, bool) {
	if !m.hasResult() || !m.Ready() {
		return player.Player{}, false
	}
	if *m.Player1Score > *m.Player2Score {
		return *m.Player1, true
	}
	return *m.Player2, true
}

// Loser returns the player with the lower leg score of a completed match.
func (m Match) Loser() (player.Player, bool) {
	if !m.hasResult() || !m.Ready() {
		return player.Player{}, false
	}
	if *m.Player1Score > *m.Player2Score {
		return *m.Player2, true
	}
	return *m.Player1, true
}

func (m Match) Involves(playerID int64) bool {
	return (m.Player1 != nil && m.Player1.ID == playerID) || (m.Player2 != nil && m.Player2.ID == playerID)
}

// LegsFor returns legs won and legs conceded by the player in a completed match.
func (m Match) LegsFor(playerID int64) (int, int, bool) {
	if !m.hasResult() {
		return 0, 0, false
	}
	switch {
	case m.Player1 != nil && m.Player1.ID == playerID:
		return *m.Player1Score, *m.Player2Score, true
	case m.Player2 != nil && m.Player2.ID == playerID:
		return *m.Player2Score, *m.Player1Score, true
	default:
		return 0, 0, false
	}
}

func (m Match) StatsFor(playerID int64) (MatchStatistics, bool) {
	switch {
	case m.Player1 != nil && m.Player1.ID == playerID:
		return m.Player1Stats, true
	case m.Player2 != nil && m.Player2.ID == playerID:
		return m.Player2Stats, true
	default:
		return MatchStatistics{}, false
	}
}

func (m *Match) slot(index int) *player.Player {
	if index == 0 {
		return m.Player1
	}
	return m.Player2
}

func (m *Match) setSlot(index int, p *player.Player) {
	if index == 0 {
		m.Player1 = p
		m.Player1Stats = MatchStatistics{}
		return
	}
	m.Player2 = p
	m.Player2Stats = MatchStatistics{}
}

func (m *Match) resetResult() {
	m.Completed = false
	m.Player1Score = nil
	m.Player2Score = nil
}

// Group is one round-robin pool.
type Group struct {
	ID      int             `json:"id"`
	Players []player.Player `json:"players"`
	Matches []Match         `json:"matches"`
}

func (g Group) Completed() bool {
	for _, m := range g.Matches {
		if !m.Completed {
			return false
		}
	}
	return true
}

// Standings ranks the group's players from its completed matches.
func (g Group) Standings(rules Rules) []Standing {
	return ComputeStandings(g.Players, g.Matches, rules.PointsPerWin)
}

// Tournament is the aggregate owning groups and knockout matches.
type Tournament struct {
	ID                   int64           `json:"id"`
	Name                 string          `json:"name"`
	Date                 time.Time       `json:"date"`
	Participants         []player.Player `json:"participants"`
	Groups               []Group         `json:"groups"`
	KnockoutMatches      []Match         `json:"knockoutMatches"`
	Completed            bool            `json:"completed"`
	KnockoutStageStarted bool            `json:"knockoutStageStarted"`
	SeriesID             string          `json:"seriesId,omitempty"`
}

// IDSource hands out match identifiers unique within a tournament.
type IDSource interface {
	NextID() int64
}

func (t *Tournament) GroupMatchesCompleted() bool {
	for _, g := range t.Groups {
		if !g.Completed() {
			return false
		}
	}
	return true
}

// Participant looks up a participant by id.
func (t *Tournament) Participant(playerID int64) (player.Player, bool) {
	for _, p := range t.Participants {
		if p.ID == playerID {
			return p, true
		}
	}
	return player.Player{}, false
}

// RoundMatches returns positions in KnockoutMatches for the round, in bracket order.
func (t *Tournament) RoundMatches(round Round) []int {
	out := make([]int, 0, 8)
	for i, m := range t.KnockoutMatches {
		if m.Round == round {
			out = append(out, i)
		}
	}
	return out
}

func (t *Tournament) indexInRound(pos int) int {
	round := t.KnockoutMatches[pos].Round
	idx := 0
	for i := 0; i < pos; i++ {
		if t.KnockoutMatches[i].Round == round {
			idx++
		}
	}
	return idx
}

// FinalMatch returns the Final if it exists.
func (t *Tournament) FinalMatch() (Match, bool) {
	positions := t.RoundMatches(RoundFinal)
	if len(positions) == 0 {
		return Match{}, false
	}
	return t.KnockoutMatches[positions[0]], true
}

// Clone returns a deep copy that shares no slices or pointers with t.
func (t Tournament) Clone() Tournament {
	out := t
	out.Participants = append([]player.Player(nil), t.Participants...)
	out.Groups = make([]Group, len(t.Groups))
	for i, g := range t.Groups {
		out.Groups[i] = Group{
			ID:      g.ID,
			Players: append([]player.Player(nil), g.Players...),
			Matches: cloneMatches(g.Matches),
		}
	}
	out.KnockoutMatches = cloneMatches(t.KnockoutMatches)
	return out
}

func cloneMatches(in []Match) []Match {
	if in == nil {
		return nil
	}
	out := make([]Match, len(in))
	for i, m := range in {
		out[i] = m.clone()
	}
	return out
}

func (m Match) clone() Match {
	out := m
	out.Player1 = clonePlayer(m.Player1)
	out.Player2 = clonePlayer(m.Player2)
	out.Player1Score = cloneInt(m.Player1Score)
	out.Player2Score = cloneInt(m.Player2Score)
	out.GroupID = cloneInt(m.GroupID)
	return out
}

func clonePlayer(p *player.Player) *player.Player {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
