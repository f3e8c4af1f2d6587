package config

import (
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort    string
	MySQLDSN      string
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	JWTSecret     string
	FrontendURL   string
	SwaggerHost   string
	CloudinaryURL string
	SendGridKey   string
	SendGridFrom  string
	OpenAIKey     string
	OCRLanguage   string

	// Submission caps enforced by the application eligibility policy.
	MaxApplicationsPerJob    int
	MaxApplicationsPerWindow int
	ApplicationWindowDays    int
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		MySQLDSN:      getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/jobportal?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisPass:     os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     getEnv("JWT_SECRET", "change-me"),
		FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:5173"),
		SwaggerHost:   os.Getenv("SWAGGER_HOST"),
		CloudinaryURL: os.Getenv("CLOUDINARY_URL"),
		SendGridKey:   os.Getenv("SENDGRID_API_KEY"),
		SendGridFrom:  getEnv("SENDGRID_FROM", "no-reply@jobportal.local"),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OCRLanguage:   getEnv("OCR_LANGUAGE", "eng"),

		MaxApplicationsPerJob:    getEnvInt("MAX_APPLICATIONS_PER_JOB", 10),
		MaxApplicationsPerWindow: getEnvInt("MAX_APPLICATIONS_PER_WINDOW", 10),
		ApplicationWindowDays:    getEnvInt("APPLICATION_WINDOW_DAYS", 30),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
