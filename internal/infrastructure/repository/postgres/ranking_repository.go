package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Xadero/slsd/internal/domain/player"
	"github.com/Xadero/slsd/internal/domain/ranking"
	qb "github.com/Xadero/slsd/internal/platform/querybuilder"
)

const (
	rankingTable = "player_rankings"
	// rankingInsertChunk keeps one multi-row insert under the 65535 bind limit.
	rankingInsertChunk = 500
)

type RankingRepository struct {
	db *sqlx.DB
}

func NewRankingRepository(db *sqlx.DB) *RankingRepository {
	return &RankingRepository{db: db}
}

func rankingSelectBuilder() *qb.SelectBuilder {
	return qb.Select(qb.Columns(playerRankingTableModel{})...).From(rankingTable)
}

func (r *RankingRepository) List(ctx context.Context) ([]ranking.PlayerRanking, error) {
	query, args, err := rankingSelectBuilder().OrderBy("current_rank", "player_id").ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build list rankings query")
	}

	var rows []playerRankingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "list rankings")
	}

	out := make([]ranking.PlayerRanking, 0, len(rows))
	for _, row := range rows {
		out = append(out, rankingFromRow(row))
	}
	return out, nil
}

func (r *RankingRepository) GetByPlayerID(ctx context.Context, playerID int64) (ranking.PlayerRanking, bool, error) {
	query, args, err := rankingSelectBuilder().Where(qb.Eq("player_id", playerID)).ToSQL()
	if err != nil {
		return ranking.PlayerRanking{}, false, crerr.Wrap(err, "build get ranking query")
	}

	var row playerRankingTableModel
	err = r.db.GetContext(ctx, &row, query, args...)
	if isRetryablePooling(err) {
		err = r.db.GetContext(ctx, &row, query, args...)
	}
	if err != nil {
		if isNotFound(err) {
			return ranking.PlayerRanking{}, false, nil
		}
		return ranking.PlayerRanking{}, false, crerr.Wrapf(err, "get ranking player_id=%d", playerID)
	}
	return rankingFromRow(row), true, nil
}

func (r *RankingRepository) Create(ctx context.Context, row ranking.PlayerRanking) error {
	query, args, err := qb.InsertModel(rankingTable, rankingInsertModelFrom(row), "")
	if err != nil {
		return crerr.Wrap(err, "build insert ranking query")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrapf(err, "insert ranking player_id=%d", row.Player.ID)
	}
	return nil
}

// ReplaceAll swaps the whole table in one transaction.
func (r *RankingRepository) ReplaceAll(ctx context.Context, rows []ranking.PlayerRanking) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return crerr.Wrap(err, "begin tx replace rankings")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.DeleteFrom(rankingTable).All().ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build clear rankings query")
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrap(err, "clear rankings")
	}

	for start := 0; start < len(rows); start += rankingInsertChunk {
		end := min(start+rankingInsertChunk, len(rows))
		models := make([]playerRankingInsertModel, 0, end-start)
		for _, row := range rows[start:end] {
			models = append(models, rankingInsertModelFrom(row))
		}
		query, args, err := qb.InsertModels(rankingTable, models, "")
		if err != nil {
			return crerr.Wrap(err, "build insert rankings query")
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return crerr.Wrapf(err, "insert rankings %d..%d", start, end)
		}
	}

	if err := tx.Commit(); err != nil {
		return crerr.Wrap(err, "commit replace rankings tx")
	}
	return nil
}

func rankingInsertModelFrom(row ranking.PlayerRanking) playerRankingInsertModel {
	points := make(pq.Int64Array, 0, len(row.TournamentPoints))
	for _, p := range row.TournamentPoints {
		points = append(points, int64(p))
	}
	return playerRankingInsertModel{
		PlayerID:         row.Player.ID,
		PlayerName:       row.Player.Name,
		TotalPoints:      row.TotalPoints,
		RankChange:       row.RankChange,
		CurrentRank:      row.CurrentRank,
		TournamentPoints: points,
		Total180s:        row.Total180s,
		Total171s:        row.Total171s,
		HighestFinish:    row.HighestFinish,
		BestLeg:          row.BestLeg,
		LegDifference:    row.LegDifference,
		MatchesPlayed:    row.MatchesPlayed,
		LegsPlayed:       row.LegsPlayed,
		LegsWon:          row.LegsWon,
		MatchesWon:       row.MatchesWon,
	}
}

func rankingFromRow(row playerRankingTableModel) ranking.PlayerRanking {
	points := make([]int, 0, len(row.TournamentPoints))
	for _, p := range row.TournamentPoints {
		points = append(points, int(p))
	}
	out := ranking.PlayerRanking{
		Player:           player.Player{ID: row.PlayerID, Name: row.PlayerName, TotalPoints: row.TotalPoints},
		TotalPoints:      row.TotalPoints,
		RankChange:       row.RankChange,
		CurrentRank:      row.CurrentRank,
		TournamentPoints: points,
		Statistics: ranking.Statistics{
			Total180s:     row.Total180s,
			Total171s:     row.Total171s,
			HighestFinish: row.HighestFinish,
			BestLeg:       row.BestLeg,
			LegDifference: row.LegDifference,
			MatchesPlayed: row.MatchesPlayed,
			LegsPlayed:    row.LegsPlayed,
			LegsWon:       row.LegsWon,
			MatchesWon:    row.MatchesWon,
		},
	}
	out.WonLegsPercentage, out.WonMatchesPercentage = ranking.Percentages(out.Statistics)
	return out
}
