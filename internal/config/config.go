package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/rishidar/freelance-connector/internal/validation"
)

// Config хранит все параметры запуска приложения.
type Config struct {
	Env               string
	HTTPPort          string
	PublicBaseURL     string
	DataDir           string
	DataBaseURL       string
	CategoriesFile    string
	FetchTimeout      time.Duration
	DatabaseURL       string
	MigrationsPath    string
	UploadStoragePath string
	MaxUploadSizeMB   int64
	AllowedOrigins    []string
	RateLimitLimit    int64
	RateLimitPeriod   time.Duration
	JWTSecret         string
	AdminTokenTTL     time.Duration
	AdminPasswordHash string
	Contact           Contact
}

// Contact описывает реквизиты для исходящих ссылок и PDF.
type Contact struct {
	Name           string
	WhatsAppNumber string
	Email          string
	Phone          string
}

// Load читает переменные окружения и возвращает готовую конфигурацию.
func Load() (*Config, error) {
	// Загружаем .env только если он существует, иначе используем системные переменные.
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("config: .env не найден, используем переменные окружения: %v", err)
	}
	return FromEnv()
}

// FromEnv собирает конфигурацию из уже загруженного окружения.
func FromEnv() (*Config, error) {
	env := getEnv("APP_ENV", "development")

	cfg := &Config{
		Env:               env,
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		PublicBaseURL:     strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		DataDir:           getEnv("DATA_DIR", "./public/data"),
		DataBaseURL:       strings.TrimRight(getEnv("DATA_BASE_URL", ""), "/"),
		CategoriesFile:    getEnv("CATEGORIES_FILE", ""),
		DatabaseURL:       getDatabaseURL(),
		MigrationsPath:    getEnv("MIGRATIONS_PATH", "./migrations"),
		UploadStoragePath: getEnv("UPLOAD_STORAGE_PATH", "./storage/uploads"),
		Contact: Contact{
			Name:           getEnv("CONTACT_NAME", "Rishidar"),
			WhatsAppNumber: getEnv("WHATSAPP_NUMBER", "6381865341"),
			Email:          getEnv("CONTACT_EMAIL", "contact@example.com"),
			Phone:          getEnv("CONTACT_PHONE", "+1 (123) 456-7890"),
		},
	}

	if cfg.DataBaseURL != "" {
		if err := validation.ValidateExternalURL(cfg.DataBaseURL); err != nil {
			return nil, fmt.Errorf("config: DATA_BASE_URL некорректен: %w", err)
		}
	}

	jwtSecret := getEnv("JWT_SECRET", "")
	adminHash := getEnv("ADMIN_PASSWORD_HASH", "")

	if env == "production" {
		if len(jwtSecret) < 32 {
			return nil, fmt.Errorf("config: JWT_SECRET обязателен и должен быть не менее 32 символов в production")
		}
		if adminHash == "" {
			return nil, fmt.Errorf("config: ADMIN_PASSWORD_HASH обязателен в production")
		}
	} else if jwtSecret == "" {
		jwtSecret = "super-secret-development-only-change-in-production"
		log.Printf("config: WARNING - используется дефолтный JWT_SECRET, измените в production!")
	}

	cfg.JWTSecret = jwtSecret
	cfg.AdminPasswordHash = adminHash

	// CORS allowed origins
	originsStr := getEnv("CORS_ALLOWED_ORIGINS", "")
	if originsStr == "" {
		if env == "production" {
			return nil, fmt.Errorf("config: CORS_ALLOWED_ORIGINS обязателен в production")
		}
		cfg.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	} else {
		for _, origin := range strings.Split(originsStr, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	cfg.FetchTimeout = mustParseDuration(getEnv("FETCH_TIMEOUT", "15s"))
	cfg.AdminTokenTTL = mustParseDuration(getEnv("ADMIN_TOKEN_TTL", "12h"))
	cfg.MaxUploadSizeMB = mustParseInt64(getEnv("MAX_UPLOAD_MB", "25"))
	cfg.RateLimitLimit = mustParseInt64(getEnv("RATE_LIMIT_LIMIT", "10"))
	cfg.RateLimitPeriod = mustParseDuration(getEnv("RATE_LIMIT_PERIOD", "1m"))

	return cfg, nil
}

// UsesDatabase сообщает, нужно ли хранить счётчики в PostgreSQL.
func (c *Config) UsesDatabase() bool {
	return c.DatabaseURL != ""
}

// getEnv возвращает значение переменной окружения или дефолт.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// getDatabaseURL возвращает DATABASE_URL либо из переменной, либо собирает из отдельных переменных.
// Пустая строка означает, что счётчики живут в памяти процесса.
func getDatabaseURL() string {
	if dbURL := getEnv("DATABASE_URL", ""); dbURL != "" {
		return dbURL
	}

	host := getEnv("POSTGRESQL_HOST", "")
	port := getEnv("POSTGRESQL_PORT", "5432")
	user := getEnv("POSTGRESQL_USER", "")
	password := getEnv("POSTGRESQL_PASSWORD", "")
	dbname := getEnv("POSTGRESQL_DBNAME", "")

	if host != "" && user != "" && dbname != "" {
		userInfo := url.UserPassword(user, password)
		return fmt.Sprintf("postgres://%s@%s:%s/%s?sslmode=disable",
			userInfo.String(), host, port, dbname)
	}

	return ""
}

// mustParseDuration безопасно парсит строку в duration.
func mustParseDuration(v string) time.Duration {
	dur, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: не удалось распарсить длительность %q: %v", v, err)
	}
	return dur
}

// mustParseInt64 безопасно парсит строку в int64.
func mustParseInt64(v string) int64 {
	num, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Fatalf("config: не удалось распарсить число %q: %v", v, err)
	}
	return num
}
