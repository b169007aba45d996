package postgres

import (
	"time"

	"github.com/lib/pq"
)

type playerRankingTableModel struct {
	PlayerID         int64         `db:"player_id"`
	PlayerName       string        `db:"player_name"`
	TotalPoints      int           `db:"total_points"`
	RankChange       int           `db:"rank_change"`
	CurrentRank      int           `db:"current_rank"`
	TournamentPoints pq.Int64Array `db:"tournament_points"`
	Total180s        int           `db:"total_180s"`
	Total171s        int           `db:"total_171s"`
	HighestFinish    int           `db:"highest_finish"`
	BestLeg          int           `db:"best_leg"`
	LegDifference    int           `db:"leg_difference"`
	MatchesPlayed    int           `db:"matches_played"`
	LegsPlayed       int           `db:"legs_played"`
	LegsWon          int           `db:"legs_won"`
	MatchesWon       int           `db:"matches_won"`
	UpdatedAt        time.Time     `db:"updated_at"`
}

type playerRankingInsertModel struct {
	PlayerID         int64         `db:"player_id"`
	PlayerName       string        `db:"player_name"`
	TotalPoints      int           `db:"total_points"`
	RankChange       int           `db:"rank_change"`
	CurrentRank      int           `db:"current_rank"`
	TournamentPoints pq.Int64Array `db:"tournament_points"`
	Total180s        int           `db:"total_180s"`
	Total171s        int           `db:"total_171s"`
	HighestFinish    int           `db:"highest_finish"`
	BestLeg          int           `db:"best_leg"`
	LegDifference    int           `db:"leg_difference"`
	MatchesPlayed    int           `db:"matches_played"`
	LegsPlayed       int           `db:"legs_played"`
	LegsWon          int           `db:"legs_won"`
	MatchesWon       int           `db:"matches_won"`
}
