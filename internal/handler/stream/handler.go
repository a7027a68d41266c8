// Package stream delivers replies incrementally over Server-Sent Events.
// It runs the same pipeline as the REST send endpoint; a completion
// failure degrades to the canned fallback emitted as a single chunk.
package stream

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	model "github.com/anshgupta/merchant-desk/backend/internal/model/chat"
	aiService "github.com/anshgupta/merchant-desk/backend/internal/service/ai"
	"github.com/anshgupta/merchant-desk/backend/internal/service/assist"
	chatService "github.com/anshgupta/merchant-desk/backend/internal/service/chat"
	"github.com/anshgupta/merchant-desk/backend/pkg/utils"
)

// Handler streams bot replies for one user turn.
type Handler struct {
	completions *aiService.Service
	assistSvc   *assist.Service
	store       *chatService.Store
}

// New creates the streaming handler. completions may be nil; every reply
// then comes from the local fallback.
func New(completions *aiService.Service, assistSvc *assist.Service, store *chatService.Store) *Handler {
	return &Handler{completions: completions, assistSvc: assistSvc, store: store}
}

// RegisterRoutes mounts the streaming endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/chat/{sessionID}/stream", h.handleStream)
}

func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	userMessage := strings.TrimSpace(r.URL.Query().Get("message"))
	if userMessage == "" {
		utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	ctx := r.Context()
	h.store.TouchSession(ctx, sessionID)
	h.store.AppendMessage(ctx, sessionID, model.SenderUser, userMessage)
	systemPrompt := h.assistSvc.SystemPrompt(ctx, sessionID, userMessage)

	utils.SetupSSEHeaders(w)
	utils.SendSSEEvent(w, flusher, "start", map[string]string{"sessionId": sessionID})

	reply := h.streamReply(ctx, w, flusher, sessionID, systemPrompt, userMessage)
	botMessage := h.store.AppendMessage(ctx, sessionID, model.SenderBot, reply)

	utils.SendSSEEvent(w, flusher, "done", botMessage)
	log.Printf("[stream] completed reply for session=%s, length=%d", sessionID, len(reply))
}

// streamReply forwards completion chunks as they arrive and returns the
// full reply text to persist. Every failure path ends in a locally
// synthesized reply, never an error event for the widget.
func (h *Handler) streamReply(ctx context.Context, w http.ResponseWriter, flusher http.Flusher, sessionID, systemPrompt, userMessage string) string {
	if h.completions == nil {
		return h.sendFallback(w, flusher, userMessage)
	}

	streamReader, err := h.completions.Stream(ctx, systemPrompt, userMessage)
	if err != nil {
		log.Printf("[stream] completion failed for session=%s, using fallback: %v", sessionID, err)
		return h.sendFallback(w, flusher, userMessage)
	}
	defer streamReader.Close()

	var reply strings.Builder
	for {
		chunk, err := streamReader.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			log.Printf("[stream] recv failed for session=%s: %v", sessionID, err)
			if reply.Len() == 0 {
				return h.sendFallback(w, flusher, userMessage)
			}
			// Keep the partial reply already delivered to the widget.
			break
		}
		if chunk.Content == "" {
			continue
		}
		reply.WriteString(chunk.Content)
		utils.SendSSEEvent(w, flusher, "chunk", map[string]string{"content": chunk.Content})
	}

	if strings.TrimSpace(reply.String()) == "" {
		utils.SendSSEEvent(w, flusher, "chunk", map[string]string{"content": assist.EmptyReplyText})
		return assist.EmptyReplyText
	}
	return reply.String()
}

func (h *Handler) sendFallback(w http.ResponseWriter, flusher http.Flusher, userMessage string) string {
	reply := aiService.FallbackReply(userMessage)
	utils.SendSSEEvent(w, flusher, "chunk", map[string]string{"content": reply})
	return reply
}
