package assist_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/anshgupta/merchant-desk/backend/internal/knowledge"
	model "github.com/anshgupta/merchant-desk/backend/internal/model/chat"
	"github.com/anshgupta/merchant-desk/backend/internal/service/ai"
	"github.com/anshgupta/merchant-desk/backend/internal/service/assist"
	chat "github.com/anshgupta/merchant-desk/backend/internal/service/chat"
)

type stubCompleter struct {
	reply      string
	err        error
	lastSystem string
}

func (s *stubCompleter) Complete(_ context.Context, systemPrompt, _ string) (string, error) {
	s.lastSystem = systemPrompt
	return s.reply, s.err
}

func newService(completer assist.Completer) (*assist.Service, *chat.Store) {
	store := chat.NewStore()
	return assist.NewService(store, knowledge.NewBase(), completer), store
}

func TestRespondPersistsBothMessages(t *testing.T) {
	svc, store := newService(&stubCompleter{reply: "Settlements land in 1-2 days."})
	ctx := context.Background()

	exchange, err := svc.Respond(ctx, "widget-1", "When do settlements arrive?")
	if err != nil {
		t.Fatalf("Respond err: %v", err)
	}

	if exchange.UserMessage.Sender != model.SenderUser || exchange.UserMessage.Content != "When do settlements arrive?" {
		t.Fatalf("unexpected user message %+v", exchange.UserMessage)
	}
	if exchange.BotMessage.Sender != model.SenderBot || exchange.BotMessage.Content != "Settlements land in 1-2 days." {
		t.Fatalf("unexpected bot message %+v", exchange.BotMessage)
	}
	if exchange.BotMessage.ID <= exchange.UserMessage.ID {
		t.Fatal("bot message must be appended after the user message")
	}

	if transcript := store.ListMessages(ctx, "widget-1"); len(transcript) != 2 {
		t.Fatalf("expected 2 persisted messages, got %d", len(transcript))
	}
}

func TestRespondCompleterFailureFallsBack(t *testing.T) {
	svc, store := newService(&stubCompleter{err: errors.New("quota exceeded")})
	ctx := context.Background()

	exchange, err := svc.Respond(ctx, "widget-1", "I need a refund")
	if err != nil {
		t.Fatalf("completion failure must not surface, got %v", err)
	}

	if exchange.BotMessage.Content != ai.FallbackReply("I need a refund") {
		t.Fatalf("expected fallback reply, got %q", exchange.BotMessage.Content)
	}
	if transcript := store.ListMessages(ctx, "widget-1"); len(transcript) != 2 {
		t.Fatalf("fallback reply must still be persisted, got %d messages", len(transcript))
	}
}

func TestRespondEmptyCompletionSubstituted(t *testing.T) {
	svc, _ := newService(&stubCompleter{reply: "   "})

	exchange, err := svc.Respond(context.Background(), "widget-1", "hello")
	if err != nil {
		t.Fatalf("Respond err: %v", err)
	}

	if exchange.BotMessage.Content != assist.EmptyReplyText {
		t.Fatalf("expected placeholder reply, got %q", exchange.BotMessage.Content)
	}
}

func TestRespondNilCompleterUsesFallback(t *testing.T) {
	svc, _ := newService(nil)

	exchange, err := svc.Respond(context.Background(), "widget-1", "what are your fees")
	if err != nil {
		t.Fatalf("Respond err: %v", err)
	}
	if exchange.BotMessage.Content != ai.FallbackReply("what are your fees") {
		t.Fatalf("expected fallback reply, got %q", exchange.BotMessage.Content)
	}
}

func TestSystemPromptCarriesKnowledgeAndHistory(t *testing.T) {
	completer := &stubCompleter{reply: "done"}
	svc, _ := newService(completer)

	if _, err := svc.Respond(context.Background(), "widget-1", "What are my settlement timings?"); err != nil {
		t.Fatalf("Respond err: %v", err)
	}

	if !strings.Contains(completer.lastSystem, "Settlement Timings:") {
		t.Fatalf("prompt missing knowledge snippet:\n%s", completer.lastSystem)
	}
	if !strings.Contains(completer.lastSystem, "user: What are my settlement timings?") {
		t.Fatalf("prompt missing transcript line:\n%s", completer.lastSystem)
	}
}

func TestSystemPromptWindowsHistory(t *testing.T) {
	svc, store := newService(&stubCompleter{reply: "ok"})
	ctx := context.Background()

	for _, content := range []string{"oldest", "second", "third", "fourth", "fifth", "sixth", "seventh", "eighth", "ninth", "tenth", "eleventh", "twelfth"} {
		store.AppendMessage(ctx, "widget-1", model.SenderUser, content)
	}

	prompt := svc.SystemPrompt(ctx, "widget-1", "latest question")

	if strings.Contains(prompt, "user: oldest") || strings.Contains(prompt, "user: second") {
		t.Fatalf("prompt must only carry the most recent 10 turns:\n%s", prompt)
	}
	if !strings.Contains(prompt, "user: third") || !strings.Contains(prompt, "user: twelfth") {
		t.Fatalf("prompt lost recent turns:\n%s", prompt)
	}
}
