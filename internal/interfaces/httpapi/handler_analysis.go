package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/propwatch/nhl-hitrate/internal/domain/metrics"
	"github.com/propwatch/nhl-hitrate/internal/usecase"
)

func (h *Handler) GetPlayerAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerAnalysis")
	defer span.End()

	playerID, err := strconv.ParseInt(r.PathValue("playerID"), 10, 64)
	if err != nil || playerID <= 0 {
		writeError(ctx, w, fmt.Errorf("%w: player id must be a positive integer", usecase.ErrInvalidInput))
		return
	}

	query := r.URL.Query()

	threshold, err := parseThreshold(query.Get("threshold"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	window, err := parseWindow(query.Get("window"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.analysisService.Analyze(ctx, usecase.AnalysisInput{
		PlayerID:  playerID,
		Season:    query.Get("season"),
		Stat:      query.Get("stat"),
		Threshold: threshold,
		Window:    window,
		Columns:   metrics.DefaultColumns(),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "player analysis failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, analysisToDTO(result))
}

func parseThreshold(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: threshold query parameter is required", usecase.ErrInvalidInput)
	}
	threshold, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: threshold must be a number", usecase.ErrInvalidInput)
	}
	return threshold, nil
}

func parseWindow(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	window, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: window must be an integer", usecase.ErrInvalidInput)
	}
	return window, nil
}
