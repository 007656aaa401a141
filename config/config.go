package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration loaded from environment variables.
// Defaults are suitable for local development.
type Config struct {
	AppName string
	Env     string // development, staging, production
	Port    string
	GinMode string

	// MongoDB
	MongoURI string
	MongoDB  string

	// JWT
	JWTSecret string
	JWTTTL    time.Duration

	// CORS
	CORSAllowedOrigins string // comma-separated

	// Uploads
	UploadDir string

	// HTTP access log toggle (Gin logger)
	HTTPLogEnabled bool
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using default %v", key, err, def)
			return def
		}
		return d
	}
	return def
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		AppName: getenv("APP_NAME", "snapsite-backend"),
		Env:     getenv("APP_ENV", "development"),
		Port:    getenv("PORT", "5000"),
		GinMode: getenv("GIN_MODE", "release"),

		MongoURI: getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getenv("MONGO_DB", "snapsite"),

		JWTSecret: getenv("JWT_SECRET", "devsecret"),
		JWTTTL:    getdur("JWT_TTL", 168*time.Hour),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS",
			"https://snapsite-virid.vercel.app,http://localhost:3000,http://127.0.0.1:3000"),

		UploadDir: getenv("UPLOAD_DIR", "uploads"),

		// HTTP access log toggle (default false; enable when needed)
		HTTPLogEnabled: getbool("HTTP_LOG_ENABLED", false),
	}
}

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
