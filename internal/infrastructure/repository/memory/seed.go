package memory

import (
	"github.com/Xadero/slsd/internal/domain/player"
	"github.com/Xadero/slsd/internal/domain/ranking"
)

// SeedPlayers is the demo roster loaded when the memory driver starts seeded.
func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: 1, Name: "Adam Nowak"},
		{ID: 2, Name: "Bartek Zielinski"},
		{ID: 3, Name: "Celina Wojcik"},
		{ID: 4, Name: "Dawid Kaminski"},
		{ID: 5, Name: "Ewa Lewandowska"},
		{ID: 6, Name: "Filip Dabrowski"},
		{ID: 7, Name: "Grzegorz Mazur"},
		{ID: 8, Name: "Hanna Krawczyk"},
	}
}

// SeedRankings turns players into a zeroed ranking table in input order.
func SeedRankings(players []player.Player) []ranking.PlayerRanking {
	out := make([]ranking.PlayerRanking, 0, len(players))
	for i, p := range players {
		out = append(out, ranking.NewPlayerRanking(p, i))
	}
	return out
}
