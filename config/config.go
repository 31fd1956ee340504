package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// cutoffLayout is the date layout accepted by INGEST_CUTOFF_DATE.
const cutoffLayout = "2006-01-02"

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	DB_HOST=localhost
//	DB_PORT=5432
//	DB_USER=postgres
//	DB_PASS=secret
//	DB_NAME=spimex
//	DB_SSLMODE=disable
//	SPIMEX_BASE_URL=https://spimex.com
//	INGEST_CUTOFF_DATE=2023-01-01
type Config struct {
	Server   ServerConfig   // HTTP server configuration
	Postgres PostgresConfig // PostgreSQL connection settings
	Exchange ExchangeConfig // Upstream exchange site
	Ingest   IngestConfig   // Pipeline behavior
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host, Port, User, Password, DBName: the DB_* endpoint variables.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - AutoMigrate: apply embedded migrations before use.
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	AutoMigrate bool
	URL         string
}

// ExchangeConfig describes how the exchange site is reached.
type ExchangeConfig struct {
	BaseURL     string
	HTTPTimeout time.Duration
}

// IngestConfig controls the ingestion pipeline.
type IngestConfig struct {
	// Cutoff is the inclusive lower bound: a bulletin dated strictly before it stops the run.
	Cutoff time.Time
	// SkipMalformed logs and skips bulletins with a broken layout instead of aborting.
	SkipMalformed bool
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig from defaults, an optional .env file
// and the process environment (lowest to highest precedence).
//
// Fatal exit:
//   - If required variables are missing or malformed, validateConfig() terminates the app.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASS", "postgres")
	viper.SetDefault("DB_NAME", "spimex")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_AUTO_MIGRATE", true)

	viper.SetDefault("SPIMEX_BASE_URL", "https://spimex.com")
	viper.SetDefault("HTTP_TIMEOUT", "30s")
	viper.SetDefault("INGEST_CUTOFF_DATE", "2023-01-01")
	viper.SetDefault("INGEST_SKIP_MALFORMED", false)

	// .env is optional; real environment variables win because godotenv never overrides them.
	_ = godotenv.Load()

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Postgres: PostgresConfig{
			Host:        viper.GetString("DB_HOST"),
			Port:        viper.GetInt("DB_PORT"),
			User:        viper.GetString("DB_USER"),
			Password:    viper.GetString("DB_PASS"),
			DBName:      viper.GetString("DB_NAME"),
			SSLMode:     viper.GetString("DB_SSLMODE"),
			AutoMigrate: viper.GetBool("DB_AUTO_MIGRATE"),
		},
		Exchange: ExchangeConfig{
			BaseURL:     viper.GetString("SPIMEX_BASE_URL"),
			HTTPTimeout: viper.GetDuration("HTTP_TIMEOUT"),
		},
		Ingest: IngestConfig{
			SkipMalformed: viper.GetBool("INGEST_SKIP_MALFORMED"),
		},
	}

	AppConfig.Postgres.URL = DSN(AppConfig.Postgres)

	var invalid []string
	cutoff, err := ParseCutoff(viper.GetString("INGEST_CUTOFF_DATE"))
	if err != nil {
		invalid = append(invalid, "INGEST_CUTOFF_DATE")
	}
	AppConfig.Ingest.Cutoff = cutoff

	validateConfig(invalid...)
}

// DSN builds the postgres:// connection string for database/sql.
func DSN(pg PostgresConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		pg.User,
		pg.Password,
		pg.Host,
		pg.Port,
		pg.DBName,
		pg.SSLMode,
	)
}

// ParseCutoff parses a YYYY-MM-DD date as local midnight.
func ParseCutoff(s string) (time.Time, error) {
	t, err := time.ParseInLocation(cutoffLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid cutoff date %q: %w", s, err)
	}
	return t, nil
}

// validateConfig terminates the application when required variables are missing.
// Extra names passed in are reported as malformed alongside the missing ones.
func validateConfig(invalid ...string) {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.Postgres.Host == "" {
		missing = append(missing, "DB_HOST")
	}
	if AppConfig.Postgres.Port == 0 {
		missing = append(missing, "DB_PORT")
	}
	if AppConfig.Postgres.User == "" {
		missing = append(missing, "DB_USER")
	}
	if AppConfig.Postgres.Password == "" {
		missing = append(missing, "DB_PASS")
	}
	if AppConfig.Postgres.DBName == "" {
		missing = append(missing, "DB_NAME")
	}
	if AppConfig.Exchange.BaseURL == "" {
		missing = append(missing, "SPIMEX_BASE_URL")
	}

	if len(missing) > 0 || len(invalid) > 0 {
		log.Fatalf("missing required environment variables: %v, malformed: %v\n", missing, invalid)
	}
}
