package httpapi

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/valyala/bytebufferpool"
)

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	var req createPlayerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	p, err := h.rankingService.CreatePlayer(ctx, req.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "create player failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(p))
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	players, err := h.rankingService.ListPlayers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(players))
}

func (h *Handler) ListRankings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRankings")
	defer span.End()

	rows, err := h.rankingService.GlobalRanking(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list rankings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rankingsToDTO(rows))
}

func (h *Handler) GetPlayerRanking(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerRanking")
	defer span.End()

	playerID, err := pathInt64(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	row, err := h.rankingService.PlayerRanking(ctx, playerID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerRankingToDTO(row))
}

func (h *Handler) RebuildRankings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RebuildRankings")
	defer span.End()

	rows, err := h.rankingService.Rebuild(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "rebuild rankings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rankingsToDTO(rows))
}

var rankingCSVHeader = []string{
	"rank", "rank_change", "player_id", "player", "total_points", "tournament_points",
	"matches_played", "matches_won", "won_matches_pct", "legs_played", "legs_won", "won_legs_pct",
	"leg_difference", "180s", "171s", "highest_finish", "best_leg",
}

// ExportRankingsCSV streams the global ranking as a CSV attachment.
func (h *Handler) ExportRankingsCSV(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportRankingsCSV")
	defer span.End()

	rows, err := h.rankingService.GlobalRanking(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "export rankings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	cw := csv.NewWriter(buf)
	_ = cw.Write(rankingCSVHeader)
	for _, row := range rows {
		points := make([]string, 0, len(row.TournamentPoints))
		for _, p := range row.TournamentPoints {
			points = append(points, strconv.Itoa(p))
		}
		_ = cw.Write([]string{
			strconv.Itoa(row.CurrentRank),
			strconv.Itoa(row.RankChange),
			strconv.FormatInt(row.Player.ID, 10),
			row.Player.Name,
			strconv.Itoa(row.TotalPoints),
			strings.Join(points, ";"),
			strconv.Itoa(row.MatchesPlayed),
			strconv.Itoa(row.MatchesWon),
			strconv.FormatFloat(row.WonMatchesPercentage, 'f', 2, 64),
			strconv.Itoa(row.LegsPlayed),
			strconv.Itoa(row.LegsWon),
			strconv.FormatFloat(row.WonLegsPercentage, 'f', 2, 64),
			strconv.Itoa(row.LegDifference),
			strconv.Itoa(row.Total180s),
			strconv.Itoa(row.Total171s),
			strconv.Itoa(row.HighestFinish),
			strconv.Itoa(row.BestLeg),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		h.logger.ErrorContext(ctx, "encode rankings csv failed", "error", err)
		writeError(ctx, w, fmt.Errorf("encode rankings csv: %w", err))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="rankings.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.B)
}
