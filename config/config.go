package config

import (
	"os"
	"strconv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Admin    AdminConfig
	CRM      CRMConfig
	Booking  BookingConfig
}

type ServerConfig struct {
	Port    string
	GinMode string
}

type DatabaseConfig struct {
	URL string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type AdminConfig struct {
	Token string
}

type CRMConfig struct {
	WebhookURL string
	QueueSize  int
	MaxRetries int
}

type BookingConfig struct {
	// PendingTTLHours is how long a booking may sit unclaimed before the
	// expiration job cancels it. Zero disables the job.
	PendingTTLHours int
}

var AppConfig *Config

func Load() {
	AppConfig = &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DB_URL", ""),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", "change-this-jwt-secret-in-production"),
			ExpiryHours: getEnvAsInt("JWT_EXPIRY_HOURS", 24),
		},
		Admin: AdminConfig{
			Token: getEnv("ADMIN_TOKEN", ""),
		},
		CRM: CRMConfig{
			WebhookURL: getEnv("CRM_WEBHOOK_URL", ""),
			QueueSize:  getEnvAsInt("CRM_QUEUE_SIZE", 256),
			MaxRetries: getEnvAsInt("CRM_MAX_RETRIES", 3),
		},
		Booking: BookingConfig{
			PendingTTLHours: getEnvAsInt("BOOKING_PENDING_TTL_HOURS", 0),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
