package config

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
}

// Enabled reports whether exports should be pushed to object storage.
func (c R2Config) Enabled() bool {
	return c.AccountID != "" && c.AccessKeyID != "" && c.SecretAccessKey != "" && c.BucketName != ""
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type MailConfig struct {
	ResendAPIKey string
	From         string
	AppURL       string
}

type ReminderConfig struct {
	DailyAt  string        // HH:MM wall clock, empty disables the daily fire
	Interval time.Duration // zero disables the interval fire
}

type Config struct {
	DBDriver           string
	DB_URL             string
	Port               string
	JWTSecret          string
	JWTAlgorithm       string
	AccessTokenMinutes int
	Environment        string
	Location           *time.Location
	RolloverOnRead     bool
	FrontendURL        string
	CorsConfig         cors.Options
	R2                 R2Config
	Google             GoogleConfig
	Mail               MailConfig
	Reminder           ReminderConfig
}

// Envs is the process-wide configuration. It is populated by Init.
var Envs Config

// Init loads the configuration once at startup and stores it in Envs.
func Init() Config {
	Envs = Load()
	return Envs
}

// Load reads the .env file (if any) and the process environment.
func Load() Config {
	envFile := getEnv("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil {
		log.Println("No", envFile, "file found, using process environment")
	}

	frontend := getEnv("FRONTEND_URL", "http://localhost:5173")

	return Config{
		DBDriver:           strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DB_URL:             getEnv("DB_URL", ""),
		Port:               getEnv("PORT", "8080"),
		JWTSecret:          getEnv("JWT_SECRET", "not-so-secret-now-is-it?"),
		JWTAlgorithm:       getEnv("JWT_ALGORITHM", "HS256"),
		AccessTokenMinutes: getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30),
		Environment:        getEnv("ENV", "development"),
		Location:           getLocation("TIMEZONE"),
		RolloverOnRead:     getEnvBool("ROLLOVER_ON_READ", true),
		FrontendURL:        frontend,
		CorsConfig:         CorsConfig(splitList(getEnv("CORS_ORIGINS", frontend))),
		R2: R2Config{
			AccountID:       getEnv("R2_ACCOUNT_ID", ""),
			AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
			BucketName:      getEnv("R2_BUCKET_NAME", ""),
			Region:          getEnv("R2_REGION", "auto"),
		},
		Google: GoogleConfig{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8080/api/v1/auth/google/callback"),
		},
		Mail: MailConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			From:         getEnv("MAIL_FROM", "Lumina <onboarding@resend.dev>"),
			AppURL:       getEnv("APP_URL", frontend),
		},
		Reminder: ReminderConfig{
			DailyAt:  getEnv("REMINDER_DAILY_AT", "08:00"),
			Interval: getEnvDuration("REMINDER_INTERVAL", 0),
		},
	}
}

// Gets the env by key or fallbacks
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	raw := strings.TrimSpace(getEnv(key, ""))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("Invalid %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(getEnv(key, ""))
	if raw == "" {
		return fallback
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("Invalid %s=%q, using %t", key, raw, fallback)
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(getEnv(key, ""))
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		log.Printf("Invalid %s=%q, using %s", key, raw, fallback)
		return fallback
	}
	return d
}

func getLocation(key string) *time.Location {
	name := strings.TrimSpace(getEnv(key, ""))
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Unknown %s=%q, falling back to local time", key, name)
		return time.Local
	}
	return loc
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func CorsConfig(origins []string) cors.Options {
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
	}
}
