package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/propwatch/nhl-hitrate/internal/usecase"
)

type saveWatchlistRequest struct {
	PlayerID   int64   `json:"playerId" validate:"required,gt=0"`
	PlayerName string  `json:"playerName" validate:"required,max=120"`
	Club       string  `json:"club" validate:"required,min=2,max=5"`
	Season     string  `json:"season" validate:"omitempty,len=8,numeric"`
	Stat       string  `json:"stat" validate:"required"`
	Threshold  float64 `json:"threshold" validate:"gte=0"`
	Window     int     `json:"window" validate:"omitempty,gte=1"`
	MarketOdds string  `json:"marketOdds" validate:"omitempty,max=40"`
}

func (h *Handler) ListWatchlist(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWatchlist")
	defer span.End()

	groupBy := strings.TrimSpace(r.URL.Query().Get("group_by"))
	switch groupBy {
	case "":
		entries, err := h.watchlistService.List(ctx)
		if err != nil {
			h.logger.ErrorContext(ctx, "list watchlist failed", "error", err)
			writeError(ctx, w, err)
			return
		}
		writeSuccess(ctx, w, http.StatusOK, watchlistEntriesToDTO(entries))
	case "opponent":
		groups, err := h.watchlistService.ListGrouped(ctx)
		if err != nil {
			h.logger.ErrorContext(ctx, "list grouped watchlist failed", "error", err)
			writeError(ctx, w, err)
			return
		}
		writeSuccess(ctx, w, http.StatusOK, watchlistGroupsToDTO(groups))
	default:
		writeError(ctx, w, fmt.Errorf("%w: unsupported group_by value %q", usecase.ErrInvalidInput, groupBy))
	}
}

func (h *Handler) SaveWatchlistEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveWatchlistEntry")
	defer span.End()

	var req saveWatchlistRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	entry, err := h.watchlistService.Save(ctx, usecase.SaveWatchInput{
		PlayerID:   req.PlayerID,
		PlayerName: req.PlayerName,
		ClubAbbrev: req.Club,
		Season:     req.Season,
		Stat:       req.Stat,
		Threshold:  req.Threshold,
		Window:     req.Window,
		MarketOdds: req.MarketOdds,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save watchlist entry failed", "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, watchlistEntryToDTO(entry))
}

func (h *Handler) RemoveWatchlistEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveWatchlistEntry")
	defer span.End()

	entryID := r.PathValue("entryID")
	if err := h.watchlistService.Remove(ctx, entryID); err != nil {
		h.logger.WarnContext(ctx, "remove watchlist entry failed", "entry_id", entryID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"removed": entryID})
}
