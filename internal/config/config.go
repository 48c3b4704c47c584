// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes server timeouts,
// logging, storage, the language-model oracle, game rules, auth, rate limiting
// and observability.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "phrase-craze-backend")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// OracleConfig configures the language-model oracle.
type OracleConfig struct {
	APIKey  string        // GEMINI_API_KEY
	Model   string        // GEMINI_MODEL
	Timeout time.Duration // per-call deadline
}

// GameConfig holds the rules of the game.
type GameConfig struct {
	TimeZone     string        // zone whose midnight starts a new day
	VoteQuota    int           // votes per player per category per voting day
	LaunchDate   string        // first day of the all-time leaderboard window
	MinPhraseLen int           // minimum phrase length in runes
	MaxPhraseLen int           // maximum phrase length in runes
	PreviewTTL   time.Duration // lifetime of a score-first preview marker
	LeaderboardN int           // rows returned by a leaderboard query
}

// AuthConfig configures request authentication.
type AuthConfig struct {
	JWTSecret      string // HS256 secret; empty disables bearer tokens
	AllowDevHeader bool   // accept X-User-ID without a token (local development only)
}

// RedisConfig configures the optional Redis cache for preview markers.
// An empty Addr keeps preview markers in the database.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SchedulerConfig configures the in-process daily leaderboard job.
type SchedulerConfig struct {
	Enabled bool
	RunAt   string // "HH:MM" wall clock in Game.TimeZone
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 20s
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool   // pretty console logs in dev
	SwaggerEnabled bool   // enable Swagger UI route
	APIBasePath    string // base path for API routes

	// Storage
	DBDriver    string // sqlite|postgres
	DBPath      string // SQLite path
	DatabaseURL string // Postgres DSN, required when DBDriver=postgres

	// Oracle
	Oracle OracleConfig

	// Game
	Game GameConfig

	// Auth
	Auth AuthConfig

	// Preview marker cache
	Redis RedisConfig

	// Scheduled leaderboard job
	Scheduler SchedulerConfig

	// Rate limiting
	RateRPS         float64 // tokens per second (>= 0)
	RateBurst       int     // bucket size (>= 1)
	OracleRateRPS   float64 // stricter bucket for routes that call the oracle
	OracleRateBurst int

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Idempotency
	IdempotencyTTL time.Duration // how long a given Idempotency-Key is valid

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		// Server
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		// Logging / Docs
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:      getbool("LOG_PRETTY", false),
		SwaggerEnabled: getbool("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(getenv("API_BASE_PATH", "/api/v1")),

		// Storage
		DBDriver:    strings.ToLower(getenv("DB_DRIVER", "sqlite")),
		DBPath:      getenv("DB_PATH", "app.db"),
		DatabaseURL: getenv("DATABASE_URL", ""),

		Oracle: OracleConfig{
			APIKey:  getenv("GEMINI_API_KEY", ""),
			Model:   getenv("GEMINI_MODEL", "gemini-1.5-flash"),
			Timeout: getdur("ORACLE_TIMEOUT", 20*time.Second),
		},

		Game: GameConfig{
			TimeZone:     getenv("GAME_TIMEZONE", "America/New_York"),
			VoteQuota:    getint("VOTE_QUOTA", 5),
			LaunchDate:   getenv("LAUNCH_DATE", "2024-07-01"),
			MinPhraseLen: getint("MIN_PHRASE_LEN", 3),
			MaxPhraseLen: getint("MAX_PHRASE_LEN", 500),
			PreviewTTL:   getdur("PREVIEW_TTL", 36*time.Hour),
			LeaderboardN: getint("LEADERBOARD_LIMIT", 10),
		},

		Auth: AuthConfig{
			JWTSecret:      getenv("JWT_SECRET", ""),
			AllowDevHeader: getbool("AUTH_DEV_HEADER", false),
		},

		Redis: RedisConfig{
			Addr:     getenv("REDIS_ADDR", ""),
			Password: getenv("REDIS_PASSWORD", ""),
			DB:       getint("REDIS_DB", 0),
		},

		Scheduler: SchedulerConfig{
			Enabled: getbool("SCHEDULER_ENABLED", false),
			RunAt:   getenv("LEADERBOARD_RUN_AT", "00:15"),
		},

		// Rate limiting
		RateRPS:         getfloat("RATE_RPS", 5.0),
		RateBurst:       getint("RATE_BURST", 10),
		OracleRateRPS:   getfloat("ORACLE_RATE_RPS", 0.2),
		OracleRateBurst: getint("ORACLE_RATE_BURST", 3),

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		// Idempotency
		IdempotencyTTL: getdur("IDEMPOTENCY_TTL", 24*time.Hour),

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "phrase-craze-backend"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	switch cfg.DBDriver {
	case "sqlite":
		if strings.TrimSpace(cfg.DBPath) == "" {
			return cfg, errors.New("DB_PATH must not be empty")
		}
	case "postgres":
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return cfg, errors.New("DATABASE_URL is required when DB_DRIVER=postgres")
		}
	default:
		return cfg, errors.New("DB_DRIVER must be one of: sqlite, postgres")
	}
	if cfg.Oracle.Timeout <= 0 {
		return cfg, errors.New("ORACLE_TIMEOUT must be > 0")
	}
	if _, err := time.LoadLocation(cfg.Game.TimeZone); err != nil {
		return cfg, fmt.Errorf("GAME_TIMEZONE: %w", err)
	}
	if cfg.Game.VoteQuota < 1 {
		return cfg, errors.New("VOTE_QUOTA must be >= 1")
	}
	if _, err := time.Parse("2006-01-02", cfg.Game.LaunchDate); err != nil {
		return cfg, errors.New("LAUNCH_DATE must be YYYY-MM-DD")
	}
	if cfg.Game.MinPhraseLen < 1 || cfg.Game.MaxPhraseLen < cfg.Game.MinPhraseLen {
		return cfg, errors.New("phrase length bounds must satisfy 1 <= MIN_PHRASE_LEN <= MAX_PHRASE_LEN")
	}
	if cfg.Game.PreviewTTL <= 0 {
		return cfg, errors.New("PREVIEW_TTL must be > 0")
	}
	if cfg.Game.LeaderboardN < 1 {
		return cfg, errors.New("LEADERBOARD_LIMIT must be >= 1")
	}
	if _, _, err := ParseRunAt(cfg.Scheduler.RunAt); err != nil {
		return cfg, err
	}
	if cfg.OracleRateRPS < 0 {
		return cfg, errors.New("ORACLE_RATE_RPS must be >= 0")
	}
	if cfg.OracleRateBurst < 1 {
		return cfg, errors.New("ORACLE_RATE_BURST must be >= 1")
	}
	if cfg.RateRPS < 0 {
		return cfg, errors.New("RATE_RPS must be >= 0")
	}
	if cfg.RateBurst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if cfg.IdempotencyTTL <= 0 {
		return cfg, errors.New("IDEMPOTENCY_TTL must be > 0")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}
	return cfg, nil
}

// ParseRunAt parses an "HH:MM" wall-clock time.
func ParseRunAt(s string) (hour, minute int, err error) {
	t, perr := time.Parse("15:04", strings.TrimSpace(s))
	if perr != nil {
		return 0, 0, errors.New("LEADERBOARD_RUN_AT must be HH:MM")
	}
	return t.Hour(), t.Minute(), nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath ensures leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	return p
}
