package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/padelgrid/tournament-system/handlers"
	"github.com/padelgrid/tournament-system/middleware"
	"github.com/padelgrid/tournament-system/models"
)

// SetupRoutes wires every handler into the router. Read endpoints are
// public; everything that mutates tournament state requires an
// organizer or admin token.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	tournamentHandler *handlers.TournamentHandler,
	teamHandler *handlers.TeamHandler,
	poolHandler *handlers.PoolHandler,
	bracketHandler *handlers.BracketHandler,
	matchHandler *handlers.MatchHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	organizerOnly := func(r chi.Router) chi.Router {
		r.Use(middleware.Authenticate(jwtSecret))
		r.Use(middleware.RequireRole(models.RoleOrganizer, models.RoleAdmin))
		return r
	}

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.List)
		r.Get("/{tournamentID}", tournamentHandler.GetByID)
		r.Get("/{tournamentID}/teams", teamHandler.List)
		r.Get("/{tournamentID}/pools", poolHandler.List)
		r.Get("/{tournamentID}/bracket", bracketHandler.Get)
		r.Get("/{tournamentID}/qualifiers", bracketHandler.Qualifiers)

		r.Group(func(r chi.Router) {
			organizerOnly(r)

			r.Post("/", tournamentHandler.Create)
			r.Patch("/{tournamentID}/status", tournamentHandler.UpdateStatus)

			r.Post("/{tournamentID}/teams", teamHandler.Create)
			r.Post("/{tournamentID}/pools", poolHandler.Create)
			r.Post("/{tournamentID}/schedule", tournamentHandler.GenerateSchedule)

			r.Post("/{tournamentID}/bracket", bracketHandler.BuildMain)
			r.Post("/{tournamentID}/bracket/consolation", bracketHandler.BuildConsolation)
			r.Post("/{tournamentID}/bracket/regenerate", bracketHandler.Regenerate)
			r.Post("/{tournamentID}/bracket/reseed", bracketHandler.Reseed)
		})
	})

	router.Route("/pools", func(r chi.Router) {
		r.Get("/{poolID}/standings", poolHandler.Standings)
		r.Get("/{poolID}/matches", poolHandler.Matches)

		r.Group(func(r chi.Router) {
			organizerOnly(r)
			r.Post("/{poolID}/teams", poolHandler.AddTeam)
		})
	})

	router.Route("/teams", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			organizerOnly(r)
			r.Patch("/{teamID}/seeded", teamHandler.SetSeeded)
			r.Put("/{teamID}/crest", teamHandler.UploadCrest)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			organizerOnly(r)
			r.Post("/pool/{matchID}/result", matchHandler.RecordPoolResult)
			r.Post("/bracket/{matchID}/result", matchHandler.RecordBracketResult)
			r.Post("/bracket/{matchID}/slot", matchHandler.OverrideSlot)
		})
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)
}
