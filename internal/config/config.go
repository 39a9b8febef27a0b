package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/player-scout/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration

	// Origins allowed to call the public JSON endpoints from a browser.
	CORSAllowedOrigins []string

	PlayerSource             string
	PlayerAPIBaseURL         string
	PlayerAPIPageSize        int
	PlayerAPIListTimeout     time.Duration
	PlayerAPIProfileTimeout  time.Duration
	PlayerAPIStatsTimeout    time.Duration
	PlayerAPICircuitEnabled  bool
	PlayerAPICircuitFailures int
	PlayerAPICircuitOpenTime time.Duration
	PlayerAPICircuitHalfOpen int
	PlayerCacheTTL           time.Duration

	SessionSecret       string
	SessionTTL          time.Duration
	SessionCookieSecure bool
	LoginUsers          map[string]string

	MetricsEnabled bool

	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	LogLevel                   logging.Level
}

const (
	PlayerSourceAPI    = "api"
	PlayerSourceMemory = "memory"
)

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:         appEnv,
		ServiceName:    getEnv("SERVICE_NAME", "player-scout"),
		ServiceVersion: getEnv("SERVICE_VERSION", "dev"),
		HTTPAddr:       getEnv("HTTP_ADDR", ":5001"),
	}

	if cfg.ReadTimeout, err = getEnvAsDuration("HTTP_READ_TIMEOUT", "10s"); err != nil {
		return Config{}, err
	}
	// The listing page may block on a full upstream refresh, so the write budget
	// has to cover several 10s page fetches.
	if cfg.WriteTimeout, err = getEnvAsDuration("HTTP_WRITE_TIMEOUT", "60s"); err != nil {
		return Config{}, err
	}

	cfg.CORSAllowedOrigins = splitCSV(getEnv("CORS_ALLOWED_ORIGINS", ""))

	source := strings.ToLower(strings.TrimSpace(getEnv("PLAYER_SOURCE", PlayerSourceAPI)))
	switch source {
	case PlayerSourceAPI, PlayerSourceMemory:
		cfg.PlayerSource = source
	default:
		return Config{}, fmt.Errorf("invalid PLAYER_SOURCE %q: valid values are %s, %s", source, PlayerSourceAPI, PlayerSourceMemory)
	}

	cfg.PlayerAPIBaseURL = strings.TrimRight(strings.TrimSpace(getEnv("PLAYER_API_BASE_URL", "http://localhost:8000")), "/")
	if cfg.PlayerSource == PlayerSourceAPI && cfg.PlayerAPIBaseURL == "" {
		return Config{}, fmt.Errorf("PLAYER_API_BASE_URL is required when PLAYER_SOURCE=api")
	}

	if cfg.PlayerAPIPageSize, err = getEnvAsInt("PLAYER_API_PAGE_SIZE", 1000); err != nil {
		return Config{}, fmt.Errorf("parse PLAYER_API_PAGE_SIZE: %w", err)
	}
	if cfg.PlayerAPIPageSize < 1 {
		return Config{}, fmt.Errorf("PLAYER_API_PAGE_SIZE must be >= 1")
	}
	if cfg.PlayerAPIListTimeout, err = getEnvAsDuration("PLAYER_API_LIST_TIMEOUT", "10s"); err != nil {
		return Config{}, err
	}
	if cfg.PlayerAPIProfileTimeout, err = getEnvAsDuration("PLAYER_API_PROFILE_TIMEOUT", "10s"); err != nil {
		return Config{}, err
	}
	if cfg.PlayerAPIStatsTimeout, err = getEnvAsDuration("PLAYER_API_STATS_TIMEOUT", "15s"); err != nil {
		return Config{}, err
	}

	if cfg.PlayerAPICircuitEnabled, err = getEnvAsBool("PLAYER_API_CIRCUIT_ENABLED", "true"); err != nil {
		return Config{}, err
	}
	if cfg.PlayerAPICircuitFailures, err = getEnvAsInt("PLAYER_API_CIRCUIT_FAILURE_COUNT", 5); err != nil {
		return Config{}, fmt.Errorf("parse PLAYER_API_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if cfg.PlayerAPICircuitFailures < 1 {
		return Config{}, fmt.Errorf("PLAYER_API_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	if cfg.PlayerAPICircuitOpenTime, err = getEnvAsDuration("PLAYER_API_CIRCUIT_OPEN_TIMEOUT", "15s"); err != nil {
		return Config{}, err
	}
	if cfg.PlayerAPICircuitHalfOpen, err = getEnvAsInt("PLAYER_API_CIRCUIT_HALF_OPEN_MAX_REQ", 2); err != nil {
		return Config{}, fmt.Errorf("parse PLAYER_API_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if cfg.PlayerAPICircuitHalfOpen < 1 {
		return Config{}, fmt.Errorf("PLAYER_API_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	if cfg.PlayerCacheTTL, err = getEnvAsDuration("PLAYER_CACHE_TTL", "5m"); err != nil {
		return Config{}, err
	}

	cfg.SessionSecret = strings.TrimSpace(getEnv("SESSION_SECRET", ""))
	if cfg.SessionSecret == "" {
		if appEnv == EnvProd {
			return Config{}, fmt.Errorf("SESSION_SECRET is required when APP_ENV=prod")
		}
		cfg.SessionSecret = "dev-only-session-secret"
	}
	if cfg.SessionTTL, err = getEnvAsDuration("SESSION_TTL", "12h"); err != nil {
		return Config{}, err
	}
	if cfg.SessionCookieSecure, err = getEnvAsBool("SESSION_COOKIE_SECURE", strconv.FormatBool(appEnv == EnvProd)); err != nil {
		return Config{}, err
	}
	if cfg.LoginUsers, err = parseUserMap(getEnv("LOGIN_USERS", "")); err != nil {
		return Config{}, fmt.Errorf("parse LOGIN_USERS: %w", err)
	}

	if cfg.MetricsEnabled, err = getEnvAsBool("METRICS_ENABLED", "true"); err != nil {
		return Config{}, err
	}

	if cfg.PprofEnabled, err = getEnvAsBool("PPROF_ENABLED", "false"); err != nil {
		return Config{}, err
	}
	cfg.PprofAddr = strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	if cfg.UptraceEnabled, err = getEnvAsBool("UPTRACE_ENABLED", "false"); err != nil {
		return Config{}, err
	}
	cfg.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	if cfg.PyroscopeEnabled, err = getEnvAsBool("PYROSCOPE_ENABLED", "false"); err != nil {
		return Config{}, err
	}
	cfg.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	cfg.PyroscopeAppName = getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName)
	cfg.PyroscopeAuthToken = getEnv("PYROSCOPE_AUTH_TOKEN", "")
	cfg.PyroscopeBasicAuthUser = getEnv("PYROSCOPE_BASIC_AUTH_USER", "")
	cfg.PyroscopeBasicAuthPassword = getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")
	if cfg.PyroscopeUploadRate, err = getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", "15s"); err != nil {
		return Config{}, err
	}

	cfg.LogLevel = parseLogLevel(getEnv("APP_LOG_LEVEL", "info"))

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsBool(key, fallback string) (bool, error) {
	out, err := strconv.ParseBool(getEnv(key, fallback))
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return out, nil
}

// getEnvAsDuration rejects non-positive durations.
func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return out, nil
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// parseUserMap reads "user:password,user2:password2".
func parseUserMap(raw string) (map[string]string, error) {
	out := make(map[string]string)
	for _, part := range strings.Split(raw, ",") {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}

		segments := strings.SplitN(item, ":", 2)
		if len(segments) != 2 {
			return nil, fmt.Errorf("invalid user item %q, expected username:password", item)
		}
		username := strings.TrimSpace(segments[0])
		if username == "" {
			return nil, fmt.Errorf("empty username in item %q", item)
		}
		if segments[1] == "" {
			return nil, fmt.Errorf("empty password for user %q", username)
		}
		out[username] = segments[1]
	}
	return out, nil
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
