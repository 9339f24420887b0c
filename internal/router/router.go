package router

import (
	"net/http"
	"time"

	"github.com/comunidad/petition-service/internal/auth"
	"github.com/comunidad/petition-service/internal/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Handlers собирает все обработчики приложения для инициализации маршрутов.
type Handlers struct {
	Auth         *handlers.AuthHandler
	User         *handlers.UserHandler
	Metadata     *handlers.MetadataHandler
	Petition     *handlers.PetitionHandler
	Postulation  *handlers.PostulationHandler
	Grade        *handlers.GradeHandler
	Chat         *handlers.ChatHandler
	Notification *handlers.NotificationHandler
}

// InitRoutes настраивает маршруты приложения.
func InitRoutes(h Handlers, jwtManager *auth.JWTManager, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", handlers.PingHandler)

		r.Post("/auth/register", h.Auth.Register)
		r.Post("/auth/login", h.Auth.Login)

		r.Get("/providers/{providerId}", h.User.GetProviderProfile)

		r.Get("/metadata/professions", h.Metadata.Professions)
		r.Get("/metadata/cities", h.Metadata.Cities)
		r.Get("/metadata/types", h.Metadata.PetitionTypes)

		r.Group(func(r chi.Router) {
			r.Use(jwtManager.Middleware)

			r.Get("/users/me", h.User.GetMe)
			r.Put("/users/me", h.User.UpdateMe)
			r.Delete("/users/me", h.User.DeleteMe)

			r.Post("/petitions", h.Petition.Create)
			r.Get("/petitions/feed", h.Petition.Feed)
			r.Get("/petitions/my", h.Petition.Mine)
			r.Put("/petitions/{petitionId}/complete", h.Petition.Complete)
			r.Put("/petitions/{petitionId}/cancel", h.Petition.Cancel)
			r.Put("/petitions/{petitionId}/reactivate", h.Petition.Reactivate)

			r.Post("/postulations", h.Postulation.Apply)
			r.Get("/postulations/my", h.Postulation.Mine)
			r.Get("/postulations/petition/{petitionId}", h.Postulation.ListForPetition)
			r.Put("/postulations/{postulationId}/accept", h.Postulation.Accept)
			r.Get("/postulations/check/{petitionId}", h.Postulation.CheckApplied)

			r.Post("/grades/rate-provider", h.Grade.RateProvider)
			r.Post("/grades/rate-customer", h.Grade.RateCustomer)
			r.Get("/grades/provider/{providerId}", h.Grade.ProviderReviews)
			r.Get("/grades/check-rated/{providerId}/{petitionId}", h.Grade.CheckRated)

			r.Post("/chat/conversations", h.Chat.Start)
			r.Get("/chat/conversations", h.Chat.MyConversations)
			r.Get("/chat/conversations/{conversationId}/messages", h.Chat.Messages)
			r.Post("/chat/conversations/{conversationId}/messages", h.Chat.SendMessage)
			r.Put("/chat/conversations/{conversationId}/read", h.Chat.MarkRead)

			r.Get("/notifications", h.Notification.List)
			r.Get("/notifications/unread-count", h.Notification.UnreadCount)
			r.Put("/notifications/{notificationId}/read", h.Notification.MarkRead)
		})
	})

	return r
}

// requestLogger логирует каждый запрос с его статусом и длительностью.
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}
