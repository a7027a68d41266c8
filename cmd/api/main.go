package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/anshgupta/merchant-desk/backend/internal/config"
	"github.com/anshgupta/merchant-desk/backend/internal/handler"
	"github.com/anshgupta/merchant-desk/backend/internal/knowledge"
	"github.com/anshgupta/merchant-desk/backend/internal/model/insights"
	"github.com/anshgupta/merchant-desk/backend/internal/service/ai"
	"github.com/anshgupta/merchant-desk/backend/internal/service/assist"
	"github.com/anshgupta/merchant-desk/backend/internal/service/chat"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	store := chat.NewStore()
	kb := knowledge.NewBase()

	// The completion service is optional: without credentials every reply
	// comes from the local fallback selector.
	var completions *ai.Service
	if cfg.AI.Enabled() {
		completions, err = ai.NewService(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize completion service: %v", err)
			log.Println("continuing with fallback replies only")
		} else {
			log.Println("completion service initialized successfully")
		}
	} else {
		log.Println("OPENAI_API_KEY not set, replies will use the local fallback")
	}

	var completer assist.Completer
	if completions != nil {
		completer = completions
	}
	assistSvc := assist.NewService(store, kb, completer)

	provider := insights.NewStaticProvider(insights.Seed())

	router := handler.NewRouter(store, assistSvc, completions, provider)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("merchant support backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
