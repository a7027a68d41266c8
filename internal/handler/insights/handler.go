package insights

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/anshgupta/merchant-desk/backend/internal/model/insights"
	"github.com/anshgupta/merchant-desk/backend/pkg/utils"
)

// Handler serves the weekly analytics panel.
type Handler struct {
	provider insights.Provider
}

// New creates the insights handler.
func New(provider insights.Provider) *Handler {
	return &Handler{provider: provider}
}

// RegisterRoutes mounts the insights endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/insights/weekly", h.handleWeekly)
}

func (h *Handler) handleWeekly(w http.ResponseWriter, r *http.Request) {
	record, err := h.provider.Weekly(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to fetch insights")
		return
	}
	utils.RespondJSON(w, http.StatusOK, record)
}
