package config

import "os"

// Config holds all application configuration
type Config struct {
	Port   string
	DBPath string

	// Path to an optional YAML seed file describing default channels
	// and accounts. Empty means the built-in defaults.
	SeedFile string

	// Default password assigned to admin-created and imported accounts
	// until the user changes it.
	DefaultPassword string

	// SMTP settings for the email notification dispatcher. Email
	// delivery is skipped when SMTPPassword is unset.
	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	SenderName   string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		DBPath:          getEnv("JAMBOHUB_DB_PATH", "jambohub.db"),
		SeedFile:        getEnv("JAMBOHUB_SEED_FILE", ""),
		DefaultPassword: getEnv("JAMBOHUB_DEFAULT_PASSWORD", "Jambo2026!"),
		SMTPHost:        getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:        getEnv("SMTP_PORT", "465"),
		SMTPUser:        getEnv("GMAIL_USER", "jambohub@gmail.com"),
		SMTPPassword:    getEnv("GMAIL_APP_PASSWORD", ""),
		SenderName:      getEnv("JAMBOHUB_SENDER_NAME", "JamboHub"),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}
