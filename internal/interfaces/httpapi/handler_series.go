package httpapi

import (
	"net/http"
)

func (h *Handler) CreateSeries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSeries")
	defer span.End()

	var req createSeriesRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	s, err := h.seriesService.Create(ctx, req.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "create series failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, seriesToDTO(s))
}

func (h *Handler) ListSeries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeries")
	defer span.End()

	items, err := h.seriesService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list series failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]seriesDTO, 0, len(items))
	for _, s := range items {
		out = append(out, seriesToDTO(s))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetSeries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeries")
	defer span.End()

	s, err := h.seriesService.Get(ctx, r.PathValue("seriesID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seriesToDTO(s))
}

func (h *Handler) GetSeriesRanking(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeriesRanking")
	defer span.End()

	seriesID := r.PathValue("seriesID")
	rows, err := h.rankingService.SeriesRanking(ctx, seriesID)
	if err != nil {
		h.logger.WarnContext(ctx, "series ranking failed", "series_id", seriesID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rankingsToDTO(rows))
}

func (h *Handler) GetSeriesOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeriesOverview")
	defer span.End()

	items, err := h.seriesService.Overview(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "series overview failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seriesOverviewToDTO(items))
}
