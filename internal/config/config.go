package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Auth
	JWTSecret            string        // HMAC secret for access tokens
	AccessTokenTTL       time.Duration // access token lifetime (default: 15m)
	RefreshTokenTTL      time.Duration // refresh session lifetime (default: 720h)
	TokenRefreshInterval time.Duration // background refresh sweep period (default: 60s)
	TokenRefreshWindow   time.Duration // refresh sessions this close to expiry (default: 5m)
	SessionGCInterval    time.Duration // interval to delete expired sessions (default: 24h)

	// Environment map (optional, empty = env-map links disabled)
	EnvMapFile           string        // path to the environments.yaml file
	EnvMapReloadInterval time.Duration // interval to reload the env map (default: 24h)

	// Badge
	BadgeCacheTTL time.Duration // TTL for cached badge counts (default: 60s)

	// Quick links
	LinkCheckTimeout time.Duration // timeout for link target validation (default: 500ms)
	SkipLinkCheck    bool          // skip target validation (useful for dev/local)

	// Auth endpoint rate limiting
	AuthRateBurst  int // token bucket burst for /auth endpoints
	AuthRatePerMin int // refill per IP per minute for /auth endpoints

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict ops endpoints to specific IPs
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("SITECUE_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("SITECUE_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("SITECUE_LOG_LEVEL", "info"),
		PrettyLog: mustBool("SITECUE_PRETTY_LOG", true),

		// Auth
		JWTSecret:            requireEnv("SITECUE_JWT_SECRET"),
		AccessTokenTTL:       mustDuration("SITECUE_ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL:      mustDuration("SITECUE_REFRESH_TOKEN_TTL", 720*time.Hour),
		TokenRefreshInterval: mustDuration("SITECUE_TOKEN_REFRESH_INTERVAL", 60*time.Second),
		TokenRefreshWindow:   mustDuration("SITECUE_TOKEN_REFRESH_WINDOW", 5*time.Minute),
		SessionGCInterval:    mustDuration("SITECUE_SESSION_GC_INTERVAL", 24*time.Hour),

		// Environment map
		EnvMapFile:           getenv("SITECUE_ENVMAP_FILE", ""), // Optional, empty = env-map links disabled
		EnvMapReloadInterval: mustDuration("SITECUE_ENVMAP_RELOAD_INTERVAL", 24*time.Hour),

		// Badge
		BadgeCacheTTL: mustDuration("SITECUE_BADGE_CACHE_TTL", 60*time.Second),

		// Quick links
		LinkCheckTimeout: mustDuration("SITECUE_LINK_CHECK_TIMEOUT", 500*time.Millisecond),
		SkipLinkCheck:    mustBool("SITECUE_SKIP_LINK_CHECK", false),

		// Auth rate limiting
		AuthRateBurst:  getenvInt("SITECUE_AUTH_RATE_BURST", 10),
		AuthRatePerMin: getenvInt("SITECUE_AUTH_RATE_PER_MIN", 30),

		// Redis settings
		RedisAddr:             requireEnv("SITECUE_REDIS_ADDR"),
		RedisUser:             getenv("SITECUE_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("SITECUE_REDIS_PASSWORD_REQUIRED", true),
		RedisPassword:         getenv("SITECUE_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("SITECUE_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("SITECUE_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(getenv("SITECUE_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("SITECUE_TRUST_PROXY", true),
	}

	// Validate Redis password configuration
	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: SITECUE_REDIS_PASSWORD is required when SITECUE_REDIS_PASSWORD_REQUIRED=true")
	}

	if len(cfg.JWTSecret) < 32 {
		panic("❌ FATAL: SITECUE_JWT_SECRET must be at least 32 bytes")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		cfgCopy.JWTSecret = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
