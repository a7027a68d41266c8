// Package ai wraps the hosted completion service and the local canned
// fallback used when that service is unreachable.
package ai

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/anshgupta/merchant-desk/backend/internal/config"
)

// Service runs completions through the configured chat model.
type Service struct {
	cfg   config.AIConfig
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewService compiles the completion chain: a system instruction carrying
// knowledge snippets and conversation context, plus the raw user turn.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile completion chain: %w", err)
	}

	return &Service{cfg: cfg, chain: runnable}, nil
}

// Complete generates one reply. A timeout failure is indistinguishable from
// any other completion failure; callers route both to the fallback.
func (s *Service) Complete(ctx context.Context, systemPrompt, userTurn string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout())
	defer cancel()

	response, err := s.chain.Invoke(ctx, map[string]any{
		"system": systemPrompt,
		"query":  userTurn,
	})
	if err != nil {
		return "", fmt.Errorf("failed to run completion chain: %w", err)
	}

	log.Printf("[ai] completion generated, length=%d", len(response.Content))
	return response.Content, nil
}

// Stream returns completion chunks for the SSE endpoint. The caller owns
// the reader and its lifetime, so no timeout is attached here.
func (s *Service) Stream(ctx context.Context, systemPrompt, userTurn string) (*schema.StreamReader[*schema.Message], error) {
	stream, err := s.chain.Stream(ctx, map[string]any{
		"system": systemPrompt,
		"query":  userTurn,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to stream completion chain: %w", err)
	}
	return stream, nil
}
