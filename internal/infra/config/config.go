// internal/infra/config/config.go
package config

import "os"

// Config holds the env-resolved settings for the whole service.
type Config struct {
	Port     string
	GCPCreds string

	FirestoreProjectID       string
	FirestoreCredentialsFile string
	FirebaseProjectID        string

	// Postgres (orders / order_items / store_settings)
	DatabaseURL string

	// Private bucket for payment receipts
	ReceiptBucket string

	// Frontend origin allowed by CORS ("" -> "*", dev only)
	AllowedOrigin string

	// SendGrid (order confirmation mail); the API key may instead come
	// from Secret Manager, see SendGridSecretName.
	SendGridAPIKey     string
	SendGridSecretName string
	MailFrom           string
	MailFromName       string
}

// Load reads the environment and returns a Config.
func Load() *Config {
	defaultProject := getenvDefault("GCP_PROJECT_ID", "")

	return &Config{
		Port:     getenvDefault("PORT", "8080"),
		GCPCreds: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),

		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		FirebaseProjectID:        getenvDefault("FIREBASE_PROJECT_ID", defaultProject),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		ReceiptBucket: os.Getenv("RECEIPT_BUCKET"),

		AllowedOrigin: os.Getenv("ALLOWED_ORIGIN"),

		SendGridAPIKey:     os.Getenv("SENDGRID_API_KEY"),
		SendGridSecretName: getenvDefault("SENDGRID_SECRET_NAME", "sendgrid-api-key"),
		MailFrom:           os.Getenv("MAIL_FROM"),
		MailFromName:       getenvDefault("MAIL_FROM_NAME", "Storefront"),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
