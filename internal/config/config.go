package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cricstack/fantasy-core/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	DBURL              string
	CORSAllowedOrigins []string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	PprofEnabled       bool
	PprofAddr          string

	ProviderBaseURL             string
	ProviderToken               string
	ProviderTimeout             time.Duration
	ProviderRequestsPerSecond   float64
	ProviderCircuitEnabled      bool
	ProviderCircuitFailureCount int
	ProviderCircuitOpenTimeout  time.Duration
	ProviderCircuitHalfOpenMax  int
	SyncMatchesInterval         time.Duration
	SyncPlayersInterval         time.Duration
	SyncPlayersLimit            int
	SyncMatchesLimit            int
	BootstrapOnStart            bool
	LogLevel                    logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("HTTP_READ_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("HTTP_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_WRITE_TIMEOUT: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}

	providerTimeout, err := time.ParseDuration(getEnv("PROVIDER_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PROVIDER_TIMEOUT: %w", err)
	}
	providerRPS, err := strconv.ParseFloat(getEnv("PROVIDER_REQUESTS_PER_SECOND", "10"), 64)
	if err != nil {
		return Config{}, fmt.Errorf("parse PROVIDER_REQUESTS_PER_SECOND: %w", err)
	}
	providerCircuitEnabled, err := strconv.ParseBool(getEnv("PROVIDER_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PROVIDER_CIRCUIT_ENABLED: %w", err)
	}
	providerCircuitFailures, err := getEnvAsInt("PROVIDER_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse PROVIDER_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	providerCircuitOpenTimeout, err := time.ParseDuration(getEnv("PROVIDER_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PROVIDER_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	providerCircuitHalfOpenMax, err := getEnvAsInt("PROVIDER_CIRCUIT_HALF_OPEN_MAX_REQ", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse PROVIDER_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}

	syncMatchesInterval, err := time.ParseDuration(getEnv("SYNC_MATCHES_INTERVAL", "1h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SYNC_MATCHES_INTERVAL: %w", err)
	}
	syncPlayersInterval, err := time.ParseDuration(getEnv("SYNC_PLAYERS_INTERVAL", "6h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SYNC_PLAYERS_INTERVAL: %w", err)
	}
	syncPlayersLimit, err := getEnvAsInt("SYNC_PLAYERS_LIMIT", 500)
	if err != nil {
		return Config{}, fmt.Errorf("parse SYNC_PLAYERS_LIMIT: %w", err)
	}
	syncMatchesLimit, err := getEnvAsInt("SYNC_MATCHES_LIMIT", 200)
	if err != nil {
		return Config{}, fmt.Errorf("parse SYNC_MATCHES_LIMIT: %w", err)
	}
	bootstrapOnStart, err := strconv.ParseBool(getEnv("BOOTSTRAP_ON_START", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BOOTSTRAP_ON_START: %w", err)
	}

	return Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("SERVICE_NAME", "fantasy-core"),
		ServiceVersion:     getEnv("SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		DBURL:              strings.TrimSpace(os.Getenv("DB_URL")),
		CORSAllowedOrigins: splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "")),
		ReadTimeout:        readTimeout,
		WriteTimeout:       writeTimeout,
		PprofEnabled:       pprofEnabled,
		PprofAddr:          getEnv("PPROF_ADDR", ":6060"),

		ProviderBaseURL:             getEnv("PROVIDER_BASE_URL", "https://api.cricapi.com/v1"),
		ProviderToken:               getEnv("PROVIDER_TOKEN", ""),
		ProviderTimeout:             providerTimeout,
		ProviderRequestsPerSecond:   providerRPS,
		ProviderCircuitEnabled:      providerCircuitEnabled,
		ProviderCircuitFailureCount: providerCircuitFailures,
		ProviderCircuitOpenTimeout:  providerCircuitOpenTimeout,
		ProviderCircuitHalfOpenMax:  providerCircuitHalfOpenMax,
		SyncMatchesInterval:         syncMatchesInterval,
		SyncPlayersInterval:         syncPlayersInterval,
		SyncPlayersLimit:            syncPlayersLimit,
		SyncMatchesLimit:            syncMatchesLimit,
		BootstrapOnStart:            bootstrapOnStart,
		LogLevel:                    parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}, nil
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

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
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

func splitAndTrim(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}

	return out
}
