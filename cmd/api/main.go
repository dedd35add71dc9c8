package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/covercredit/cover-credit-backend/internal/infra/database"
	"github.com/covercredit/cover-credit-backend/internal/infra/http/handlers"
	"github.com/covercredit/cover-credit-backend/internal/infra/http/middleware"
	"github.com/covercredit/cover-credit-backend/internal/infra/integration/brevo"
	"github.com/covercredit/cover-credit-backend/internal/infra/integration/whatsapp"
	"github.com/covercredit/cover-credit-backend/internal/infra/mail"
	"github.com/covercredit/cover-credit-backend/internal/infra/queue"
	"github.com/covercredit/cover-credit-backend/internal/infra/worker"
	"github.com/covercredit/cover-credit-backend/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("❌ Schema setup failed: %v", err)
	}

	rabbitMQ, err := queue.NewRabbitMQ(os.Getenv("RABBITMQ_URL"))
	if err != nil {
		log.Fatalf("❌ RabbitMQ connection failed: %v", err)
	}
	defer rabbitMQ.Close()

	// Repositories
	contactRepo := database.NewContactRepository(db)
	bookingRepo := database.NewBookingRepository(db)
	blogRepo := database.NewBlogRepository(db)

	// Gateways and adapters
	producer := queue.NewProducer(rabbitMQ.Ch)
	brevoClient := brevo.NewClient(os.Getenv("BREVO_API_KEY"))
	alertMailer := mail.NewAlertMailer(
		brevoClient,
		os.Getenv("ALERT_FROM_EMAIL"),
		splitEmails(os.Getenv("ALERT_TO_EMAILS")),
	)
	waClient := whatsapp.NewClient(os.Getenv("WHATSAPP_ACCESS_TOKEN"), os.Getenv("WHATSAPP_PHONE_ID"))
	waNotifier := mail.NewWhatsAppNotifier(waClient, os.Getenv("WHATSAPP_ADMIN_TO"))
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), envInt("MAIL_PORT", 587),
		os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"), os.Getenv("MAIL_FROM"),
	)

	// Alert worker consumes the queue and fans out to email + WhatsApp
	alertWorker := queue.NewWorker(rabbitMQ.Ch, alertMailer, waNotifier)
	alertWorker.Start(queue.QueueName)

	// Reminder scheduler polls for due follow-ups
	reminderNotifier := mail.NewReminderNotifier(alertMailer, waNotifier)
	reminderWorker := worker.NewReminderWorker(bookingRepo, reminderNotifier)
	go reminderWorker.Start(ctx)

	// UseCases
	submitContactUC := usecase.NewSubmitContactUseCase(contactRepo, producer, mailSender)
	submitBookingUC := usecase.NewSubmitBookingUseCase(bookingRepo, producer, mailSender)
	manageLeadsUC := usecase.NewManageLeadsUseCase(contactRepo, bookingRepo)
	statsUC := usecase.NewStatsUseCase(contactRepo, bookingRepo)
	blogUC := usecase.NewBlogUseCase(blogRepo)

	// Handlers
	formLimiter := handlers.NewRateLimiter(10, time.Minute)
	contactHandler := handlers.NewContactHandler(submitContactUC, formLimiter)
	bookingHandler := handlers.NewBookingHandler(submitBookingUC, formLimiter)
	adminHandler := handlers.NewAdminHandler(manageLeadsUC, statsUC)
	blogHandler := handlers.NewBlogHandler(blogUC)
	authHandler := handlers.NewAuthHandler(
		os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD"), os.Getenv("JWT_SECRET"),
	)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins(),
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Handle)

		r.Post("/contact", contactHandler.Submit)
		r.Post("/book", bookingHandler.Submit)

		r.Get("/blog", blogHandler.ListPublic)
		r.Get("/blog/{slug}", blogHandler.ReadBySlug)

		r.Post("/auth/login", authHandler.Login)
		r.With(middleware.RequireAdmin(os.Getenv("JWT_SECRET"))).Get("/auth/verify", authHandler.Verify)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(os.Getenv("JWT_SECRET")))

			r.Get("/stats", adminHandler.Dashboard)

			r.Get("/contacts", adminHandler.ListContacts)
			r.Patch("/contacts/{id}", adminHandler.UpdateContact)
			r.Post("/contacts/{id}/notes", adminHandler.AddContactNote)
			r.Delete("/contacts/{id}", adminHandler.DeleteContact)

			r.Get("/bookings", adminHandler.ListBookings)
			r.Patch("/bookings/{id}", adminHandler.UpdateBooking)
			r.Post("/bookings/{id}/notes", adminHandler.AddBookingNote)
			r.Put("/bookings/{id}/reminder", adminHandler.SetReminder)
			r.Delete("/bookings/{id}", adminHandler.DeleteBooking)

			r.Get("/blog", blogHandler.ListAdmin)
			r.Post("/blog", blogHandler.Create)
			r.Put("/blog/{id}", blogHandler.Update)
			r.Delete("/blog/{id}", blogHandler.Delete)
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("🔥 Cover Credit API running on port %s", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️ Shutdown incomplete: %v", err)
	}
}

func splitEmails(value string) []string {
	parts := strings.Split(value, ",")
	emails := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			emails = append(emails, p)
		}
	}
	return emails
}

func envInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return n
}

func corsOrigins() []string {
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		return splitEmails(raw)
	}
	return []string{"http://localhost:5173", "*"}
}
