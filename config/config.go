package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries everything main needs to wire the service together.
// It is built once at startup and passed by value; nothing in here is
// mutated after Load returns.
type Config struct {
	Port        string
	Environment string

	MongoURI string
	Database string

	AllowedOrigins []string

	// AuthMode selects how bearer tokens are checked: "hmac" verifies
	// against JWTSecret, "certs" verifies RS256 signatures against the
	// identity provider's published x509 certificates.
	AuthMode  string
	JWTSecret string
	CertsURL  string
	Audience  string
	Issuer    string

	RedisURL      string
	RedisPassword string

	// ShareBaseURL is the public client origin used when building
	// shareable recipe links (QR codes on printed cards).
	ShareBaseURL string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	cfg := Config{
		Port:          getenv("PORT", "8080"),
		Environment:   getenv("APP_ENV", "development"),
		MongoURI:      getenv("MONGO_URI", "mongodb://localhost:27017"),
		Database:      getenv("MONGO_DB", "recipe-book"),
		AuthMode:      getenv("AUTH_MODE", "hmac"),
		JWTSecret:     getenv("JWT_SECRET", ""),
		CertsURL:      getenv("AUTH_CERTS_URL", ""),
		Audience:      getenv("AUTH_AUDIENCE", ""),
		Issuer:        getenv("AUTH_ISSUER", ""),
		RedisURL:      getenv("REDIS_URL", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		ShareBaseURL:  getenv("SHARE_BASE_URL", "http://localhost:8080"),
	}

	origins := getenv("ALLOWED_ORIGINS", "*")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	if !strings.HasPrefix(cfg.Port, ":") {
		cfg.Port = ":" + cfg.Port
	}

	return cfg
}

// Production reports whether error details should be withheld from
// HTTP responses.
func (c Config) Production() bool {
	return c.Environment == "production"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
