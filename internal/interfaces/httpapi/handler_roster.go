package httpapi

import (
	"net/http"
)

func (h *Handler) ListClubs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListClubs")
	defer span.End()

	clubs, err := h.rosterService.ListClubs(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list clubs failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]clubDTO, 0, len(clubs))
	for _, club := range clubs {
		items = append(items, clubToDTO(club))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	club := r.URL.Query().Get("club")
	players, err := h.rosterService.ListPlayers(ctx, club)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "club", club, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, player := range players {
		items = append(items, playerToDTO(player))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
