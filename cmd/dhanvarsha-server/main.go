package main

import (
	"log"
	"net/http"
	"os"

	"github.com/dhanvarsha/backend/internal/api"
	"github.com/dhanvarsha/backend/internal/auth"
	"github.com/dhanvarsha/backend/internal/config"
	"github.com/dhanvarsha/backend/internal/database"
	"github.com/dhanvarsha/backend/internal/email"
	"github.com/dhanvarsha/backend/internal/push"
	"github.com/dhanvarsha/backend/internal/realtime"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

// main is the entry point for the Dhanvarsha results backend.
func main() {
	// --- 1. Load Configuration ---
	// A .env file is a convenience for development; in production these are
	// real environment variables.
	if err := godotenv.Load(); err != nil {
		log.Println("INFO: No .env file found, using environment variables from the system.")
	}

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("FATAL: Failed to load application configuration: %v", err)
	}

	// --- 2. Ensure the Data Directory Exists ---
	if err := os.MkdirAll(cfg.DataPath, 0755); err != nil {
		log.Fatalf("FATAL: Failed to create data directory at %s: %v", cfg.DataPath, err)
	}

	// --- 3. Initialize the Database Service ---
	dbService, err := database.NewService(cfg.DbFile)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database service: %v", err)
	}
	defer dbService.Close()

	log.Println("INFO: Database service initialized successfully.")

	// --- 4. Initialize Schema & Seed the Admin Account ---
	// A schema failure is logged but deliberately not fatal: the service
	// keeps serving whatever the store can still answer. Risky, but it is
	// the behavior the site has always had.
	if err := dbService.InitSchema(); err != nil {
		log.Printf("ERROR: Failed to initialize database schema: %v", err)
	} else {
		log.Println("INFO: Database schema verified.")
	}

	passwordHash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Fatalf("FATAL: Failed to hash default admin password: %v", err)
	}
	if err := dbService.SeedAdmin(cfg.AdminUsername, passwordHash); err != nil {
		log.Printf("ERROR: Failed to seed admin account: %v", err)
	}

	// --- 5. Wire Up the Components ---
	dispatcher := push.NewDispatcher(dbService, push.VAPIDConfig{
		PublicKey:  cfg.VapidPublicKey,
		PrivateKey: cfg.VapidPrivateKey,
		Subscriber: cfg.VapidEmail,
	})

	broker := realtime.NewBroker()

	emailService := email.NewEmailService(email.SMTPServerConfig{
		Host:     cfg.SmtpHost,
		Port:     cfg.SmtpPort,
		Username: cfg.SmtpUser,
		Password: cfg.SmtpPass,
		Sender:   cfg.SmtpSender,
		Inbox:    cfg.ContactInbox,
	})

	serverAPI := api.NewServer(cfg, dbService, dispatcher, broker, emailService)

	router := chi.NewRouter()
	serverAPI.RegisterRoutes(router)

	log.Println("INFO: API routes registered.")

	// --- 6. Start the HTTP Server ---
	log.Printf("INFO: Dhanvarsha server starting on %s", cfg.ServerAddr)

	if err := http.ListenAndServe(cfg.ServerAddr, router); err != nil {
		log.Fatalf("FATAL: Failed to start server: %v", err)
	}
}
