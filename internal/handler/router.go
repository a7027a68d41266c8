package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/anshgupta/merchant-desk/backend/internal/handler/chat"
	"github.com/anshgupta/merchant-desk/backend/internal/handler/insights"
	"github.com/anshgupta/merchant-desk/backend/internal/handler/stream"
	insightsModel "github.com/anshgupta/merchant-desk/backend/internal/model/insights"
	aiService "github.com/anshgupta/merchant-desk/backend/internal/service/ai"
	"github.com/anshgupta/merchant-desk/backend/internal/service/assist"
	chatService "github.com/anshgupta/merchant-desk/backend/internal/service/chat"
	"github.com/anshgupta/merchant-desk/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services. completions may be nil
// when the completion service is not configured.
func NewRouter(store *chatService.Store, assistSvc *assist.Service, completions *aiService.Service, provider insightsModel.Provider) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// The widget is served from the merchant dashboard origin; keep CORS
	// permissive for this anonymous, credential-free API.
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}).Handler)

	chatHandler := chat.New(store, assistSvc)
	insightsHandler := insights.New(provider)
	streamHandler := stream.New(completions, assistSvc, store)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", handleHealth)
		chatHandler.RegisterRoutes(api)
		insightsHandler.RegisterRoutes(api)
		streamHandler.RegisterRoutes(api)
	})

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "merchant support API is running",
		"status":  "healthy",
	})
}
