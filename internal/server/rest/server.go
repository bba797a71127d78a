// Package rest serves the listing site API, the session endpoints and the
// remote collection used by the CLI.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/realty/internal/catalog"
	"github.com/dmitrijs2005/realty/internal/contact"
	"github.com/dmitrijs2005/realty/internal/logging"
	"github.com/dmitrijs2005/realty/internal/server/contracts"
	"github.com/dmitrijs2005/realty/internal/server/images"
	"github.com/dmitrijs2005/realty/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const shutdownTimeout = 5 * time.Second

// ImageSigner hands out upload URLs for listing photos.
type ImageSigner interface {
	PresignUpload(ctx context.Context, contentType string) (images.Upload, error)
}

// Observer receives request and login outcomes.
type Observer interface {
	ObserveRequest(method, route string, status int, d time.Duration)
	ObserveLogin(err error)
	Handler() http.Handler
}

// Deps are the collaborators of the REST server. Images may be nil when no
// object storage is configured.
type Deps struct {
	Store      *catalog.Store
	Gateway    *catalog.Gateway
	Collection catalog.Collection
	Verifier   session.CredentialVerifier
	Issuer     *session.Issuer
	Linker     contact.Linker
	Validator  *contracts.Validator
	Images     ImageSigner
	Metrics    Observer
	Logger     logging.Logger
}

type Server struct {
	address        string
	apiKey         string
	allowedOrigins []string
	deps           Deps
	logger         logging.Logger
	now            func() time.Time
}

func NewServer(address, apiKey string, allowedOrigins []string, d Deps) *Server {
	return &Server{
		address:        address,
		apiKey:         apiKey,
		allowedOrigins: allowedOrigins,
		deps:           d,
		logger:         d.Logger.With("module", "rest_server"),
		now:            time.Now,
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, s.traceLogger, middleware.Recoverer, securityHeaders, s.sessionFromRequest)

	r.Get("/healthz", s.healthz)
	r.Method(http.MethodGet, "/metrics", s.deps.Metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.allowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))

		r.Get("/listings", s.listListings)
		r.Get("/listings/{id}", s.getListing)
		r.Get("/listings/{id}/inquiry", s.inquiry)
		r.Post("/contact", s.contactLink)
		r.Get("/filters", s.filters)

		r.Post("/session/login", s.login)
		r.Post("/session/logout", s.logout)
		r.Get("/session", s.currentSession)

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Get("/admin/stats", s.stats)
			r.Post("/admin/images", s.presignImage)
		})
	})

	r.Route("/rest/v1/properties", func(r chi.Router) {
		r.Use(s.requireAPIKey)
		r.Get("/", s.collectionList)

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/", s.collectionInsert)
			r.Put("/{id}", s.collectionUpdate)
			r.Patch("/{id}", s.collectionSetActive)
			r.Delete("/{id}", s.collectionDelete)
		})
	})

	return r
}

// Run serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping REST server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "REST shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting REST server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"loaded": s.deps.Store.Loaded(),
	})
}
