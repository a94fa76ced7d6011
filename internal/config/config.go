package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	MinJWTKeyLength       = 32
	MinPasswordIterations = 10000
)

type Config struct {
	ServerPort              string
	ServerReadHeaderTimeout time.Duration
	ServerWriteTimeout      time.Duration
	ServerIdleTimeout       time.Duration
	RequestTimeout          time.Duration
	DatabaseURL             string
	DBMaxConns              int32
	DBMinConns              int32
	DBMaxConnLifetime       time.Duration
	DBMaxConnIdleTime       time.Duration
	DBHealthCheckPeriod     time.Duration
	DBPingTimeout           time.Duration
	JWTKey                  string
	JWTIssuer               string
	JWTAudience             string
	JWTDefaultTTL           time.Duration
	JWTMaxTTL               time.Duration
	PasswordIterations      int
	CORSOrigins             []string
	RateLimitRPM            int
	AuthRateLimitRPM        int
	ProfilePictureSize      int
	ProfilePictureMaxPixels int
	MaxBodyBytes            int64
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:              getEnv("SERVER_PORT", "8080"),
		ServerReadHeaderTimeout: getDuration("SERVER_READ_HEADER_TIMEOUT", 15*time.Second),
		ServerWriteTimeout:      getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		ServerIdleTimeout:       getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		RequestTimeout:          getDuration("REQUEST_TIMEOUT", 30*time.Second),
		DatabaseURL:             strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBMaxConns:              int32(getInt("DB_MAX_CONNS", 10)),
		DBMinConns:              int32(getInt("DB_MIN_CONNS", 2)),
		DBMaxConnLifetime:       getDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
		DBMaxConnIdleTime:       getDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
		DBHealthCheckPeriod:     getDuration("DB_HEALTH_CHECK_PERIOD", 30*time.Second),
		DBPingTimeout:           getDuration("DB_PING_TIMEOUT", 2*time.Second),
		JWTKey:                  os.Getenv("JWT_KEY"),
		JWTIssuer:               getEnv("JWT_ISSUER", "tms-api"),
		JWTAudience:             getEnv("JWT_AUDIENCE", "tms-frontend"),
		JWTDefaultTTL:           getDuration("JWT_DEFAULT_TTL", 864000*time.Second),
		JWTMaxTTL:               getDuration("JWT_MAX_TTL", 30*24*time.Hour),
		PasswordIterations:      getInt("PASSWORD_ITERATIONS", 100000),
		CORSOrigins:             splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		RateLimitRPM:            getInt("RATE_LIMIT_RPM", 100),
		AuthRateLimitRPM:        getInt("AUTH_RATE_LIMIT_RPM", 10),
		ProfilePictureSize:      getInt("PROFILE_PICTURE_SIZE", 256),
		ProfilePictureMaxPixels: getInt("PROFILE_PICTURE_MAX_PIXELS", 4096*4096),
		MaxBodyBytes:            int64(getInt("MAX_BODY_BYTES", 8<<20)),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT cannot be empty")
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}

	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.DBMaxConns < 1 {
		return fmt.Errorf("DB_MAX_CONNS must be at least 1")
	}

	if c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS")
	}

	if c.DBPingTimeout <= 0 {
		return fmt.Errorf("DB_PING_TIMEOUT must be positive")
	}

	if strings.TrimSpace(c.JWTKey) == "" {
		return fmt.Errorf("JWT_KEY is required")
	}

	if len(c.JWTKey) < MinJWTKeyLength {
		return fmt.Errorf("JWT_KEY must be at least %d characters long", MinJWTKeyLength)
	}

	if strings.TrimSpace(c.JWTIssuer) == "" || strings.TrimSpace(c.JWTAudience) == "" {
		return fmt.Errorf("JWT_ISSUER and JWT_AUDIENCE cannot be empty")
	}

	if c.JWTDefaultTTL <= 0 {
		return fmt.Errorf("JWT_DEFAULT_TTL must be positive")
	}

	if c.JWTMaxTTL < c.JWTDefaultTTL {
		return fmt.Errorf("JWT_MAX_TTL cannot be shorter than JWT_DEFAULT_TTL")
	}

	if c.PasswordIterations < MinPasswordIterations {
		return fmt.Errorf("PASSWORD_ITERATIONS must be at least %d", MinPasswordIterations)
	}

	if c.ProfilePictureSize <= 0 {
		return fmt.Errorf("PROFILE_PICTURE_SIZE must be positive")
	}

	if c.ProfilePictureMaxPixels < c.ProfilePictureSize*c.ProfilePictureSize {
		return fmt.Errorf("PROFILE_PICTURE_MAX_PIXELS must cover at least PROFILE_PICTURE_SIZE squared")
	}

	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}

	return nil
}

func getEnv(key string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}

	return v
}

func getInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}

// getDuration accepts Go duration syntax ("15m") or a plain number of seconds.
func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	if seconds, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.Duration(seconds) * time.Second
	}

	v, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return v
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}

	return out
}
