package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/config"
	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/handlers"
	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/middleware"
	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/repository/postgres"
	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/service"
	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/storage"
	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/zendesk"
)

func New(log zerolog.Logger, db *pgxpool.Pool, blobs storage.BlobStore, cfg config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(httprate.LimitByIP(200, time.Minute))
	r.Use(middleware.WithSession(cfg))

	// Health
	r.Get("/healthz", handlers.Health())

	// Repos
	issueRepo := postgres.NewIssueRepo(db)
	categoryRepo := postgres.NewCategoryRepo(db)
	noteRepo := postgres.NewNoteRepo(db)
	attachmentRepo := postgres.NewAttachmentRepo(db)
	actionItemRepo := postgres.NewActionItemRepo(db)
	templateRepo := postgres.NewEmailTemplateRepo(db)
	draftRepo := postgres.NewEmailDraftRepo(db)

	// Services
	authSvc := service.NewAuthService(cfg.Bypass, cfg.SessionSecret)
	assistSvc := service.NewAssistService(cfg.OpenAI, log)
	dashboardSvc := service.NewDashboardService(issueRepo)
	oauth := zendesk.NewOAuth(cfg.Zendesk)

	// Handlers
	ih := handlers.NewIssueHTTP(issueRepo, noteRepo, dashboardSvc)
	ch := handlers.NewCategoryHTTP(categoryRepo)
	nh := handlers.NewNoteHTTP(noteRepo)
	ah := handlers.NewAttachmentHTTP(attachmentRepo, noteRepo, blobs, log)
	aih := handlers.NewActionItemHTTP(actionItemRepo)
	eh := handlers.NewEmailHTTP(templateRepo, draftRepo, issueRepo, assistSvc)
	zh := handlers.NewZendeskHTTP(oauth, log)
	dh := handlers.NewDashboardHTTP(dashboardSvc)
	auh := handlers.NewAuthHTTP(authSvc, cfg)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Get("/config", auh.Config())
			r.Post("/login", auh.Login())
			r.Post("/logout", auh.Logout())
			r.Get("/me", auh.Me())
		})

		r.Route("/issues", func(r chi.Router) {
			r.Get("/", ih.List())
			r.Post("/", ih.Create())
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", ih.Get())
				r.Patch("/", ih.Update())
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", ch.List())
			r.Post("/", ch.Create())
		})

		r.Route("/action-items", func(r chi.Router) {
			r.Get("/", aih.List())
			r.Post("/", aih.Create())
			r.Patch("/{id}", aih.Update())
			r.Delete("/{id}", aih.Delete())
		})

		r.Route("/notes", func(r chi.Router) {
			r.Get("/", nh.List())
			r.Post("/", nh.Create())
		})

		r.Route("/attachments", func(r chi.Router) {
			r.Post("/upload", ah.Upload())
			r.Get("/{id}/download", ah.Download())
		})

		r.Route("/email-templates", func(r chi.Router) {
			r.Get("/", eh.ListTemplates())
			r.Post("/", eh.CreateTemplate())
			r.Post("/init", eh.InitTemplates())
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", eh.GetTemplate())
				r.Put("/", eh.UpdateTemplate())
				r.Delete("/", eh.DeleteTemplate())
			})
		})

		r.Route("/email-drafts", func(r chi.Router) {
			r.Get("/", eh.ListDrafts())
			r.Post("/", eh.CreateDraft())
			r.Post("/suggest", eh.SuggestDraft())
		})

		r.Route("/zendesk/oauth", func(r chi.Router) {
			r.Get("/authorize", zh.Authorize())
			r.Get("/callback", zh.Callback())
		})

		r.Get("/dashboard/summary", dh.Summary())
	})

	return r
}
