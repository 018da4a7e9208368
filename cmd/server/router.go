package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/lexi-api/internal/api"
	apiMiddleware "github.com/phrazzld/lexi-api/internal/api/middleware"
)

// requestTimeout bounds the time a handler may spend on one request.
const requestTimeout = 30 * time.Second

// setupRouter registers every route and the middleware chain.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	practiceHandler := api.NewPracticeHandler(app.practiceService, app.logger)
	xpHandler := api.NewXPHandler(app.progressionService, app.logger)
	achievementHandler := api.NewAchievementHandler(app.achievementService, app.logger)

	r.Get("/health", api.Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Route("/practice", func(r chi.Router) {
			r.Get("/words", practiceHandler.GetWords)
			r.Post("/sessions", practiceHandler.StartSession)
			r.Post("/submit", practiceHandler.SubmitResult)
			r.Post("/complete", practiceHandler.CompleteSession)
		})

		r.Post("/vocabulary/registered", practiceHandler.RegisterVocabulary)

		r.Route("/xp", func(r chi.Router) {
			r.Get("/", xpHandler.GetInfo)
			r.Post("/award", xpHandler.Award)
			r.Get("/leaderboard", xpHandler.GetLeaderboard)
		})

		r.Route("/achievements", func(r chi.Router) {
			r.Get("/", achievementHandler.List)
			r.Post("/check", achievementHandler.Check)
			r.Get("/{key}/progress", achievementHandler.Progress)
		})
	})

	return r
}
