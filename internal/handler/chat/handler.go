package chat

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	model "github.com/anshgupta/merchant-desk/backend/internal/model/chat"
	"github.com/anshgupta/merchant-desk/backend/internal/service/assist"
	chatService "github.com/anshgupta/merchant-desk/backend/internal/service/chat"
	"github.com/anshgupta/merchant-desk/backend/pkg/utils"
)

// Handler exposes the conversation API consumed by the chat widget.
type Handler struct {
	store     *chatService.Store
	assistSvc *assist.Service
}

// New creates the conversation handler.
func New(store *chatService.Store, assistSvc *assist.Service) *Handler {
	return &Handler{store: store, assistSvc: assistSvc}
}

// RegisterRoutes mounts the conversation endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat/session", h.handleSession)
	r.Get("/chat/{sessionID}/messages", h.handleListMessages)
	r.Get("/chat/{sessionID}/search", h.handleSearchMessages)
	r.Post("/chat/{sessionID}/message", h.handleSendMessage)
}

// handleSession creates the session on first call and refreshes activity on
// every later one. Clients normally mint their own id; when they don't, the
// server hands one out.
func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"sessionId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(payload.SessionID) == "" {
		payload.SessionID = uuid.NewString()
	}

	session, err := h.store.EnsureSession(r.Context(), payload.SessionID)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, session)
}

func (h *Handler) handleListMessages(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	messages := h.store.ListMessages(r.Context(), sessionID)
	utils.RespondJSON(w, http.StatusOK, messages)
}

func (h *Handler) handleSearchMessages(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		utils.RespondError(w, http.StatusBadRequest, "search query is required")
		return
	}

	messages := h.store.SearchMessages(r.Context(), sessionID, query)
	utils.RespondJSON(w, http.StatusOK, messages)
}

// handleSendMessage runs the full response pipeline. Past validation it
// cannot fail from the widget's point of view: completion outages are
// absorbed into fallback replies downstream.
func (h *Handler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var payload struct {
		Content string `json:"content"`
		Sender  string `json:"sender"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(payload.Content) == "" {
		utils.RespondError(w, http.StatusBadRequest, "message content is required")
		return
	}
	if payload.Sender != "" && payload.Sender != model.SenderUser {
		utils.RespondError(w, http.StatusBadRequest, "sender must be user")
		return
	}

	exchange, err := h.assistSvc.Respond(r.Context(), sessionID, payload.Content)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to send message")
		return
	}

	utils.RespondJSON(w, http.StatusOK, exchange)
}
