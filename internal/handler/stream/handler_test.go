package stream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/anshgupta/merchant-desk/backend/internal/knowledge"
	model "github.com/anshgupta/merchant-desk/backend/internal/model/chat"
	aiService "github.com/anshgupta/merchant-desk/backend/internal/service/ai"
	"github.com/anshgupta/merchant-desk/backend/internal/service/assist"
	chatservice "github.com/anshgupta/merchant-desk/backend/internal/service/chat"
)

func setupRouter() (*chi.Mux, *chatservice.Store) {
	store := chatservice.NewStore()
	assistSvc := assist.NewService(store, knowledge.NewBase(), nil)
	handler := New(nil, assistSvc, store)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, store
}

func TestStreamRequiresMessage(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/chat/widget-1/stream", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing message, got %d", resp.Code)
	}
}

func TestStreamWithoutCompletionsFallsBack(t *testing.T) {
	r, store := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/chat/widget-1/stream?message=I+need+a+refund", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Content-Type"); got != "text/event-stream" {
		t.Fatalf("expected SSE content type, got %q", got)
	}

	body := resp.Body.String()
	for _, want := range []string{"event: start", "event: chunk", "event: done"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in stream, got:\n%s", want, body)
		}
	}
	if !strings.Contains(body, "5-7 business days") {
		t.Fatalf("expected refund fallback chunk, got:\n%s", body)
	}

	transcript := store.ListMessages(context.Background(), "widget-1")
	if len(transcript) != 2 {
		t.Fatalf("expected persisted user and bot turns, got %d", len(transcript))
	}
	if transcript[1].Sender != model.SenderBot || transcript[1].Content != aiService.FallbackReply("I need a refund") {
		t.Fatalf("unexpected persisted bot turn %+v", transcript[1])
	}
}
