package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Xadero/slsd/internal/domain/tournament"
	"github.com/Xadero/slsd/internal/usecase"
)

func (h *Handler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTournament")
	defer span.End()

	var req createTournamentRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := time.Parse(time.DateOnly, req.Date)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid date: %v", usecase.ErrInvalidInput, err))
			return
		}
		date = parsed
	}

	t, err := h.tournamentService.Create(ctx, usecase.CreateTournamentInput{
		Name:      req.Name,
		Date:      date,
		PlayerIDs: req.PlayerIDs,
		SeriesID:  req.SeriesID,
		Seed:      req.Seed,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create tournament failed", "players", len(req.PlayerIDs), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, tournamentToDTO(t))
}

func (h *Handler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTournaments")
	defer span.End()

	filter := tournament.Filter{
		Status:   tournament.Status(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status")))),
		SeriesID: strings.TrimSpace(r.URL.Query().Get("series_id")),
	}
	items, err := h.tournamentService.List(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list tournaments failed", "status", filter.Status, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]tournamentListItemDTO, 0, len(items))
	for _, t := range items {
		out = append(out, tournamentToListItemDTO(t))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTournament")
	defer span.End()

	tournamentID, err := pathInt64(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	t, err := h.tournamentService.Get(ctx, tournamentID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentToDTO(t))
}

func (h *Handler) AbandonTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AbandonTournament")
	defer span.End()

	tournamentID, err := pathInt64(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.tournamentService.Abandon(ctx, tournamentID); err != nil {
		h.logger.WarnContext(ctx, "abandon tournament failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int64{"deleted_id": tournamentID})
}

func (h *Handler) GetGroupStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGroupStandings")
	defer span.End()

	tournamentID, err := pathInt64(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	groups, err := h.tournamentService.GroupStandings(ctx, tournamentID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, groupStandingsToDTO(groups))
}

func (h *Handler) GetBracket(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBracket")
	defer span.End()

	tournamentID, err := pathInt64(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	rounds, err := h.tournamentService.Bracket(ctx, tournamentID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, bracketToDTO(rounds))
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSummary")
	defer span.End()

	tournamentID, err := pathInt64(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	summary, err := h.tournamentService.Summary(ctx, tournamentID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summaryToDTO(summary))
}

func (h *Handler) GetTournamentPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTournamentPoints")
	defer span.End()

	tournamentID, err := pathInt64(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	awards, err := h.rankingService.TournamentPoints(ctx, tournamentID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, awardsToDTO(awards))
}

func (h *Handler) RecordResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordResult")
	defer span.End()

	tournamentID, err := pathInt64(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	matchID, err := pathInt64(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req recordResultRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	t, err := h.tournamentService.RecordResult(ctx, usecase.RecordResultInput{
		TournamentID: tournamentID,
		MatchID:      matchID,
		Result: tournament.Result{
			Player1Score: *req.Player1Score,
			Player2Score: *req.Player2Score,
			Player1Stats: matchStatsFromRequest(req.Player1Stats),
			Player2Stats: matchStatsFromRequest(req.Player2Stats),
		},
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record result failed", "tournament_id", tournamentID, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentToDTO(t))
}

func (h *Handler) StartKnockout(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartKnockout")
	defer span.End()

	tournamentID, err := pathInt64(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req startKnockoutRequest
	if r.ContentLength != 0 {
		if err := h.decodeRequest(ctx, r, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	t, err := h.tournamentService.StartKnockout(ctx, tournamentID, req.Qualifiers)
	if err != nil {
		h.logger.WarnContext(ctx, "start knockout failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentToDTO(t))
}

func (h *Handler) FinalizeTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FinalizeTournament")
	defer span.End()

	tournamentID, err := pathInt64(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	t, err := h.tournamentService.Finalize(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "finalize tournament failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summaryToDTO(t.Summarize()))
}
