// Package assist runs the send-message pipeline: persist the user turn,
// build the knowledge-augmented prompt, call the completion service,
// absorb its failure into a canned fallback, persist the bot turn.
package assist

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/anshgupta/merchant-desk/backend/internal/knowledge"
	model "github.com/anshgupta/merchant-desk/backend/internal/model/chat"
	"github.com/anshgupta/merchant-desk/backend/internal/service/ai"
	chat "github.com/anshgupta/merchant-desk/backend/internal/service/chat"
)

// historyLimit caps how many recent turns are rendered into the prompt.
const historyLimit = 10

// EmptyReplyText substitutes a completion that succeeded but came back blank.
const EmptyReplyText = "I'm sorry, I couldn't generate a response. Please try again or contact our support team."

const promptPreamble = "You are a customer support assistant helping merchants with their payment processing needs."

// Completer is the single fallible external dependency: one completion
// call taking a system instruction and the raw user turn. Failure is a
// designed business path here, which is why it surfaces as an explicit
// error value rather than anything fancier.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userTurn string) (string, error)
}

// Service orchestrates one chat exchange end to end.
type Service struct {
	store     *chat.Store
	kb        *knowledge.Base
	completer Completer
}

// NewService wires the pipeline. A nil completer degrades every reply to
// the local fallback, keeping the widget alive without credentials.
func NewService(store *chat.Store, kb *knowledge.Base, completer Completer) *Service {
	return &Service{store: store, kb: kb, completer: completer}
}

// Exchange bundles the two records produced by one send.
type Exchange struct {
	UserMessage model.Message `json:"userMessage"`
	BotMessage  model.Message `json:"botMessage"`
}

// Respond persists the user turn, generates a reply and persists it. The
// returned error only covers store-level problems; completion failures are
// absorbed, so the caller always gets a bot message.
func (s *Service) Respond(ctx context.Context, sessionID, content string) (Exchange, error) {
	s.store.TouchSession(ctx, sessionID)
	userMessage := s.store.AppendMessage(ctx, sessionID, model.SenderUser, content)

	reply := s.generate(ctx, sessionID, content)
	botMessage := s.store.AppendMessage(ctx, sessionID, model.SenderBot, reply)

	return Exchange{UserMessage: userMessage, BotMessage: botMessage}, nil
}

func (s *Service) generate(ctx context.Context, sessionID, content string) string {
	if s.completer == nil {
		return ai.FallbackReply(content)
	}

	reply, err := s.completer.Complete(ctx, s.SystemPrompt(ctx, sessionID, content), content)
	if err != nil {
		log.Printf("[assist] completion failed for session=%s, using fallback: %v", sessionID, err)
		return ai.FallbackReply(content)
	}
	if strings.TrimSpace(reply) == "" {
		return EmptyReplyText
	}
	return reply
}

// SystemPrompt assembles the role preamble, the knowledge snippets matched
// against the user turn, and a window of recent transcript lines. The
// transcript is read after the user turn was persisted, so the window
// includes it.
func (s *Service) SystemPrompt(ctx context.Context, sessionID, content string) string {
	messages := s.store.ListMessages(ctx, sessionID)

	start := 0
	if len(messages) > historyLimit {
		start = len(messages) - historyLimit
	}
	lines := make([]string, 0, len(messages)-start)
	for _, message := range messages[start:] {
		lines = append(lines, fmt.Sprintf("%s: %s", message.Sender, message.Content))
	}

	var b strings.Builder
	b.WriteString(promptPreamble)
	b.WriteString("\n\nUse this knowledge base information to answer questions:\n")
	b.WriteString(s.kb.RelevantInfo(content))
	b.WriteString("\n\nGuidelines:\n")
	b.WriteString("- Be helpful, professional, and concise\n")
	b.WriteString("- Focus on the merchant platform's own products and flows\n")
	b.WriteString("- If you don't know something specific, offer to connect them with support\n")
	b.WriteString("- Always maintain a supportive tone for merchant success\n")
	b.WriteString("- Provide step-by-step guidance when possible\n")
	b.WriteString("\nRecent conversation context:\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\nRespond in a helpful, professional manner as a merchant support assistant.")
	return b.String()
}
