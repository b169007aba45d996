package tournament

import (
	"fmt"
	"sort"

	"github.com/Xadero/slsd/internal/domain/player"
)

// SelectQualifiers picks count players for the knockout stage. Every group
// contributes its top count/groups finishers; the remaining count%groups slots
// go to the best third-placed players. The result is in seed order.
func SelectQualifiers(t *Tournament, count int, rules Rules) ([]player.Player, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQualifierCount, count)
	}
	if len(t.Groups) == 0 {
		return nil, fmt.Errorf("%w: tournament has no groups", ErrInsufficientQualifiers)
	}
	if !t.GroupMatchesCompleted() {
		return nil, fmt.Errorf("%w: group stage", ErrNotReady)
	}

	perGroup := count / len(t.Groups)
	extra := count % len(t.Groups)

	out := make([]player.Player, 0, count)
	thirds := make([]Standing, 0, len(t.Groups))
	for _, g := range t.Groups {
		standings := g.Standings(rules)
		if len(standings) < perGroup {
			return nil, fmt.Errorf("%w: group %d has %d players, need %d", ErrInsufficientQualifiers, g.ID, len(standings), perGroup)
		}
		for _, s := range standings[:perGroup] {
			out = append(out, s.Player)
		}
		if len(standings) > 2 {
			thirds = append(thirds, standings[2])
		}
	}

	if extra > 0 {
		sort.SliceStable(thirds, func(i, j int) bool {
			return thirds[i].Points > thirds[j].Points
		})
		if len(thirds) < extra {
			return nil, fmt.Errorf("%w: %d third-placed players for %d extra slots", ErrInsufficientQualifiers, len(thirds), extra)
		}
		for _, s := range thirds[:extra] {
			out = append(out, s.Player)
		}
	}

	seen := make(map[int64]struct{}, len(out))
	for _, p := range out {
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("%w: player %d selected twice", ErrInsufficientQualifiers, p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	return out, nil
}
