package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// Development-only VAPID fallbacks so the push flow works out of the box.
// Production deployments must supply their own key pair via the environment.
const (
	devVapidPublicKey  = "BMCGbFCVp3-9I01uEpRk0fSjJplMC9T4rzxRn-bkOT6gl1BrY9GdcY92mMKVMzT8z6NlbpNNymA1h5INVlX_zu4"
	devVapidPrivateKey = "0wwLIk9w79_PzdCCgZH0HVh7dCwamZ8jZqgOjP9aXTE"
	devVapidEmail      = "mailto:notification@example.com"
)

// Config holds all configuration for the application. Every value is read
// from the environment with a fixed fallback default, so the server starts
// with zero configuration in development.
type Config struct {
	// --- Server & Paths ---
	ServerAddr  string
	DataPath    string
	DbFile      string
	FrontendURL string

	// --- Default admin account (seeded on first boot only) ---
	AdminUsername string
	AdminPassword string

	// --- Web Push (VAPID) ---
	VapidPublicKey  string
	VapidPrivateKey string
	VapidEmail      string

	// --- Email (SMTP, optional contact-form forwarding) ---
	SmtpHost     string
	SmtpPort     int
	SmtpUser     string
	SmtpPass     string
	SmtpSender   string
	ContactInbox string
}

// New creates a new Config instance by loading values from environment
// variables, falling back to the development defaults.
func New() (*Config, error) {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

	cfg := &Config{
		ServerAddr:      os.Getenv("SERVER_ADDR"),
		DataPath:        os.Getenv("DATA_PATH"),
		FrontendURL:     os.Getenv("FRONTEND_URL"),
		AdminUsername:   os.Getenv("ADMIN_USERNAME"),
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
		VapidPublicKey:  os.Getenv("VAPID_PUBLIC_KEY"),
		VapidPrivateKey: os.Getenv("VAPID_PRIVATE_KEY"),
		VapidEmail:      os.Getenv("VAPID_EMAIL"),
		SmtpHost:        os.Getenv("SMTP_HOST"),
		SmtpPort:        port,
		SmtpUser:        os.Getenv("SMTP_USER"),
		SmtpPass:        os.Getenv("SMTP_PASS"),
		SmtpSender:      os.Getenv("SMTP_SENDER"),
		ContactInbox:    os.Getenv("CONTACT_INBOX"),
	}

	// --- Provide sensible defaults ---
	if cfg.ServerAddr == "" {
		cfg.ServerAddr = ":8080"
	}
	if cfg.DataPath == "" {
		cfg.DataPath = "./data"
	}
	if cfg.FrontendURL == "" {
		cfg.FrontendURL = "http://localhost:5173"
	}
	if cfg.AdminUsername == "" {
		cfg.AdminUsername = "admin"
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = "admin123"
	}
	if cfg.VapidPublicKey == "" {
		cfg.VapidPublicKey = devVapidPublicKey
	}
	if cfg.VapidPrivateKey == "" {
		cfg.VapidPrivateKey = devVapidPrivateKey
	}
	if cfg.VapidEmail == "" {
		cfg.VapidEmail = devVapidEmail
	}

	cfg.DbFile = filepath.Join(cfg.DataPath, "dhanvarsha.db")

	return cfg, nil
}
