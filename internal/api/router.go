// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"user-directory/internal/api/handler"
	custommw "user-directory/internal/api/middleware"
)

// NewRouter sets up and returns a new HTTP router.
//
// Pipeline order, outermost first: Recoverer, audit interceptor, credential
// gate, handlers. The audit interceptor sits outside the gate so the log
// record fires exactly once per request, including gate denials; the
// Recoverer sits outside the audit interceptor so a fault re-raised by it
// still becomes a generic 500.
func NewRouter(userHandler *handler.UserHandler, gate func(http.Handler) http.Handler, logger *slog.Logger, serveDiagnostics bool) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)         // Add a request ID to the context
	r.Use(middleware.RealIP)            // Use the real IP address
	r.Use(middleware.Recoverer)         // Recover from panics and return 500
	r.Use(custommw.Audit(logger))       // One audit record per request, no exceptions

	// Health check endpoint, outside the credential gate
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Interactive API description, registered only in non-production mode.
	if serveDiagnostics {
		r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"title":"User Directory API","version":"v1"}`))
		})
	}

	// User directory routes, behind the credential gate
	r.Group(func(r chi.Router) {
		r.Use(gate)

		r.Route("/Users", func(r chi.Router) {
			r.Post("/", userHandler.CreateUser)
			r.Get("/", userHandler.ListUsers)
			r.Patch("/", userHandler.UpdateUser)
			r.Post("/validate", userHandler.ValidatePassword)
			r.Get("/{userID}", userHandler.GetUser)
			r.Delete("/{userID}", userHandler.DeleteUser)
		})
	})

	return r
}
