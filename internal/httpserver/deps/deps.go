package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sitecue/sitecue/internal/auth"
	"github.com/sitecue/sitecue/internal/badge"
	"github.com/sitecue/sitecue/internal/logger"
	"github.com/sitecue/sitecue/internal/sources/envmap"
)

type Deps struct {
	Logger           logger.Logger
	StartTime        time.Time
	Version          string
	Commit           string
	BuildDate        string
	GoVersion        string
	TimeNow          func() time.Time // for testing, defaults to time.Now
	AllowedHosts     []string         // Host headers allowed to access the server
	AllowedCIDRS     []string         // IPs allowed to access ops endpoints
	TrustProxy       bool             // true if running behind a trusted reverse proxy
	RedisClient      *redis.Client    // Redis client connection
	EnvMap           *envmap.Map      // In-memory environment groups
	BadgeTracker     *badge.Tracker   // Per-tab badge state machine
	Auth             *auth.Service    // Access token issuing/validation
	RefreshTTL       time.Duration    // Lifetime granted to refresh sessions
	LinkCheckTimeout time.Duration    // Timeout for link target validation
	SkipLinkCheck    bool             // Skip target validation (useful for dev/local)
	BadgeCacheTTL    time.Duration    // TTL for cached badge counts
	AuthRateBurst    int              // Token bucket burst for /auth endpoints
	AuthRatePerMin   int              // Refill per IP per minute for /auth endpoints
	ReloadTrigger    chan struct{}    // Channel to trigger manual env map reload (nil if disabled)
}
