package httpserver

import (
	"net/http"

	"bookkeeping-app-go/internal/config"
	"bookkeeping-app-go/internal/transport/httpserver/handler"
	"bookkeeping-app-go/internal/transport/httpserver/middleware"
	"bookkeeping-app-go/pkg/logger"
	"bookkeeping-app-go/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the REST API under /api, uploaded blobs under /uploads and
// the Prometheus endpoint at /metrics when m is non-nil.
func NewRouter(cfg config.Config, handlers *handler.Handlers, m *metrics.Metrics, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.NewAccessLog(log))
	if m != nil {
		r.Use(m.Middleware)
	}
	r.Use(chimw.Recoverer)
	r.Use(middleware.NewCORS(cfg.CORSOrigins))

	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	uploads := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Uploads.Dir)))
	r.Handle("/uploads/*", uploads)

	r.Route("/api", func(r chi.Router) {
		r.Use(chimw.Timeout(cfg.RequestTimeout))

		r.Get("/health", handlers.Health)

		r.Post("/signup", handlers.Signup)
		r.Post("/login", handlers.Login)
		r.Post("/forgot-password", handlers.ForgotPassword)
		r.Post("/reset-password", handlers.ResetPassword)

		r.Get("/clients", handlers.ListClients)
		r.Get("/users", handlers.ListUsers)
		r.Get("/client-accounts", handlers.ListClientAccounts)

		r.Get("/personal-info/{userId}", handlers.GetPersonalInfo)
		r.Post("/personal-info/{userId}", handlers.SavePersonalInfo)
		r.Get("/due-dates/{userId}", handlers.ListDueDates)

		r.Get("/gross-records/{userId}", handlers.ListGrossRecords)
		r.Post("/gross-records/{userId}", handlers.CreateGrossRecord)

		r.Get("/messages/{userId}", handlers.ListMessages)
		r.Post("/messages", handlers.SendMessage)

		r.Get("/home-stats", handlers.HomeStats)
		r.Get("/reminders", handlers.Reminders)
		r.Get("/user-activities/{userId}", handlers.UserActivities)

		r.Get("/bir-forms", handlers.ListForms)
		r.Post("/bir-forms", handlers.CreateForm)

		r.Post("/upload", handlers.UploadDocuments)
		r.Get("/documents", handlers.ListAllDocuments)
		r.Get("/documents/{id}", handlers.ListClientDocuments)
		r.Get("/documents/{id}/{formName}", handlers.ListClientFormDocuments)
		r.Delete("/documents/{id}", handlers.DeleteDocument)
		r.Get("/download/{id}", handlers.DownloadDocument)
	})

	return r
}
