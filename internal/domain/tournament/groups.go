package tournament

import (
	"fmt"
	"math/rand/v2"

	"github.com/Xadero/slsd/internal/domain/player"
)

// scheduleOrder is the fixed round-robin sequence over group positions 0..5.
// Consecutive pairs rarely share a player, so boards rotate without idle players.
var scheduleOrder = [15][2]int{
	{0, 5}, {4, 1}, {3, 2}, {4, 0}, {5, 2},
	{1, 3}, {2, 4}, {3, 5}, {0, 2}, {5, 4},
	{2, 1}, {3, 0}, {1, 5}, {4, 3}, {0, 1},
}

// GroupCount returns the number of groups used for n participants.
func GroupCount(n int, rules Rules) int {
	switch {
	case n <= rules.TwoGroupMaxPlayers:
		return 2
	case n <= rules.FourGroupMaxPlayers:
		return 4
	default:
		return 8
	}
}

// GenerateGroups shuffles participants into balanced groups and schedules each one.
// A nil rng uses the package-level source.
func GenerateGroups(participants []player.Player, rules Rules, rng *rand.Rand, ids IDSource) ([]Group, error) {
	n := len(participants)
	groupCount := GroupCount(n, rules)
	if n < groupCount*2 {
		return nil, fmt.Errorf("%w: %d players for %d groups", ErrNotEnoughPlayers, n, groupCount)
	}
	if largest := (n + groupCount - 1) / groupCount; largest > MaxGroupSize {
		return nil, fmt.Errorf("%w: %d players per group, max %d", ErrGroupTooLarge, largest, MaxGroupSize)
	}

	shuffled := append([]player.Player(nil), participants...)
	swap := func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] }
	if rng != nil {
		rng.Shuffle(len(shuffled), swap)
	} else {
		rand.Shuffle(len(shuffled), swap)
	}

	groups := make([]Group, groupCount)
	for i := range groups {
		groups[i] = Group{ID: i + 1, Players: make([]player.Player, 0, MaxGroupSize)}
	}

	next := 0
	for i := range groups {
		groups[i].Players = append(groups[i].Players, shuffled[next], shuffled[next+1])
		next += 2
	}
	for i := 0; next < n; i, next = i+1, next+1 {
		g := i % groupCount
		groups[g].Players = append(groups[g].Players, shuffled[next])
	}

	for i := range groups {
		groups[i].Matches = ScheduleGroup(groups[i].ID, groups[i].Players, ids)
	}

	return groups, nil
}

// ScheduleGroup emits the subset of the fixed pair order that fits the group size.
func ScheduleGroup(groupID int, players []player.Player, ids IDSource) []Match {
	size := len(players)
	matches := make([]Match, 0, size*(size-1)/2)
	for _, pair := range scheduleOrder {
		a, b := pair[0], pair[1]
		if a >= size || b >= size {
			continue
		}
		gid := groupID
		p1 := players[a]
		p2 := players[b]
		matches = append(matches, Match{
			ID:      ids.NextID(),
			Player1: &p1,
			Player2: &p2,
			GroupID: &gid,
		})
	}
	return matches
}
