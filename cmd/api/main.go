package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lesptitsgilets/contacts-sync/internal/infra/database"
	"github.com/lesptitsgilets/contacts-sync/internal/infra/export"
	"github.com/lesptitsgilets/contacts-sync/internal/infra/http/handlers"
	ownmiddleware "github.com/lesptitsgilets/contacts-sync/internal/infra/http/middleware"
	"github.com/lesptitsgilets/contacts-sync/internal/infra/integration/brevo"
	"github.com/lesptitsgilets/contacts-sync/internal/infra/integration/gsheets"
	"github.com/lesptitsgilets/contacts-sync/internal/infra/integration/helloasso"
	"github.com/lesptitsgilets/contacts-sync/internal/infra/mail"
	"github.com/lesptitsgilets/contacts-sync/internal/infra/queue"
	"github.com/lesptitsgilets/contacts-sync/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		envOr("RABBITMQ_USER", "guest"),
		envOr("RABBITMQ_PASS", "guest"),
		envOr("RABBITMQ_HOST", "localhost"),
		envOr("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositories
	runRepo := database.NewRunRepository(db)
	rowRepo := database.NewRowRepository(db)

	// 2. Gateways and adapters
	directory := brevo.NewClient(os.Getenv("BREVO_API_KEY"), envOr("BREVO_URL", "https://api.brevo.com/v3"))

	memberSource := helloasso.NewClient(helloasso.Config{
		BaseURL:      envOr("HELLOASSO_URL", "https://api.helloasso.com"),
		ClientID:     os.Getenv("HELLOASSO_CLIENT_ID"),
		ClientSecret: os.Getenv("HELLOASSO_CLIENT_SECRET"),
		OrgSlug:      os.Getenv("HELLOASSO_ORG_SLUG"),
		FormType:     envOr("HELLOASSO_FORM_TYPE", "membership"),
		FormSlug:     os.Getenv("HELLOASSO_FORM_SLUG"),
	})

	skipRows, _ := strconv.Atoi(envOr("SHEET_SKIP_ROWS", "7"))
	volunteerSource := gsheets.NewClient(
		os.Getenv("GOOGLE_API_KEY"),
		os.Getenv("SHEET_ID"),
		os.Getenv("SHEET_RANGE"),
		skipRows,
	)

	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	exporter := export.NewCSVExporter()

	var mailSender usecase.EmailService
	if host := os.Getenv("MAIL_HOST"); host != "" {
		mailSender = mail.NewEmailSender(
			host, 587, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
			envOr("MAIL_FROM", "ne-pas-repondre@lesptitsgilets.fr"),
		)
	}
	exportRecipient := os.Getenv("EXPORT_RECIPIENT")

	// 3. UseCases
	syncMembersUC := usecase.NewSyncMembersUseCase(
		memberSource, directory, runRepo, rowRepo, exporter, mailSender, exportRecipient,
	)
	syncVolunteersUC := usecase.NewSyncVolunteersUseCase(
		volunteerSource, directory, runRepo, rowRepo, exporter, mailSender, exportRecipient,
	)

	// 4. Worker (consumes the queue and executes runs)
	worker := queue.NewWorker(rabbitMQ.Ch, syncMembersUC, syncVolunteersUC, runRepo)
	go worker.Start(queue.QueueName)

	// 5. Handlers
	syncHandler := handlers.NewSyncHandler(runRepo, producer)
	runHandler := handlers.NewRunHandler(runRepo)
	exportHandler := handlers.NewExportHandler(runRepo, rowRepo, exporter)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(ownmiddleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	r.Post("/sync/members", syncHandler.HandleMembers)
	r.Post("/sync/volunteers", syncHandler.HandleVolunteers)
	r.Get("/runs/{runID}", runHandler.HandleGetRun)
	r.Get("/runs/{runID}/export", exportHandler.HandleDownload)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := ":8080"
	log.Printf("🔥 contacts-sync running on %s", port)
	http.ListenAndServe(port, r)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
