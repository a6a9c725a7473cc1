package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/propwatch/nhl-hitrate/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                 string
	ServiceName            string
	ServiceVersion         string
	HTTPAddr               string
	ReadTimeout            time.Duration
	WriteTimeout           time.Duration
	CORSAllowedOrigins     []string
	LogLevel               logging.Level
	DBURL                  string
	RosterCacheTTL         time.Duration
	RosterWorkerCount      int
	AnalysisDefaultWindow  int
	AnalysisMaxWindow      int
	NHLBaseURL             string
	NHLTimeout             time.Duration
	NHLMaxRetries          int
	NHLCircuitEnabled      bool
	NHLCircuitFailureCount int
	NHLCircuitOpenTimeout  time.Duration
	NHLCircuitProbeLimit   int
	PprofEnabled           bool
	PprofAddr              string
	UptraceEnabled         bool
	UptraceDSN             string
	PyroscopeEnabled       bool
	PyroscopeServerAddress string
	PyroscopeAppName       string
	PyroscopeAuthToken     string
	PyroscopeUploadRate    time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	if readTimeout <= 0 {
		return Config{}, fmt.Errorf("APP_READ_TIMEOUT must be > 0")
	}

	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}
	if writeTimeout <= 0 {
		return Config{}, fmt.Errorf("APP_WRITE_TIMEOUT must be > 0")
	}

	rosterCacheTTL, err := time.ParseDuration(getEnv("ROSTER_CACHE_TTL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ROSTER_CACHE_TTL: %w", err)
	}
	if rosterCacheTTL <= 0 {
		return Config{}, fmt.Errorf("ROSTER_CACHE_TTL must be > 0")
	}

	rosterWorkerCount, err := getEnvAsInt("ROSTER_WORKER_COUNT", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse ROSTER_WORKER_COUNT: %w", err)
	}
	if rosterWorkerCount < 1 {
		return Config{}, fmt.Errorf("ROSTER_WORKER_COUNT must be >= 1")
	}

	analysisDefaultWindow, err := getEnvAsInt("ANALYSIS_DEFAULT_WINDOW", 10)
	if err != nil {
		return Config{}, fmt.Errorf("parse ANALYSIS_DEFAULT_WINDOW: %w", err)
	}
	if analysisDefaultWindow < 1 {
		return Config{}, fmt.Errorf("ANALYSIS_DEFAULT_WINDOW must be >= 1")
	}

	analysisMaxWindow, err := getEnvAsInt("ANALYSIS_MAX_WINDOW", 82)
	if err != nil {
		return Config{}, fmt.Errorf("parse ANALYSIS_MAX_WINDOW: %w", err)
	}
	if analysisMaxWindow < analysisDefaultWindow {
		return Config{}, fmt.Errorf("ANALYSIS_MAX_WINDOW must be >= ANALYSIS_DEFAULT_WINDOW")
	}

	nhlTimeout, err := time.ParseDuration(getEnv("NHL_API_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NHL_API_TIMEOUT: %w", err)
	}
	if nhlTimeout <= 0 {
		return Config{}, fmt.Errorf("NHL_API_TIMEOUT must be > 0")
	}

	nhlMaxRetries, err := getEnvAsInt("NHL_API_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse NHL_API_MAX_RETRIES: %w", err)
	}
	if nhlMaxRetries < 0 {
		return Config{}, fmt.Errorf("NHL_API_MAX_RETRIES must be >= 0")
	}

	nhlCircuitEnabled, err := strconv.ParseBool(getEnv("NHL_API_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NHL_API_CIRCUIT_ENABLED: %w", err)
	}
	nhlCircuitFailureCount, err := getEnvAsInt("NHL_API_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse NHL_API_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if nhlCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("NHL_API_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	nhlCircuitOpenTimeout, err := time.ParseDuration(getEnv("NHL_API_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NHL_API_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if nhlCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("NHL_API_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	nhlCircuitProbeLimit, err := getEnvAsInt("NHL_API_CIRCUIT_PROBE_LIMIT", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse NHL_API_CIRCUIT_PROBE_LIMIT: %w", err)
	}
	if nhlCircuitProbeLimit < 1 {
		return Config{}, fmt.Errorf("NHL_API_CIRCUIT_PROBE_LIMIT must be >= 1")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	serviceName := getEnv("APP_SERVICE_NAME", "nhl-hitrate")

	return Config{
		AppEnv:                 appEnv,
		ServiceName:            serviceName,
		ServiceVersion:         getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:               getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:            readTimeout,
		WriteTimeout:           writeTimeout,
		CORSAllowedOrigins:     splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:               logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		DBURL:                  strings.TrimSpace(getEnv("DB_URL", "")),
		RosterCacheTTL:         rosterCacheTTL,
		RosterWorkerCount:      rosterWorkerCount,
		AnalysisDefaultWindow:  analysisDefaultWindow,
		AnalysisMaxWindow:      analysisMaxWindow,
		NHLBaseURL:             strings.TrimSpace(getEnv("NHL_API_BASE_URL", "https://api-web.nhle.com/v1")),
		NHLTimeout:             nhlTimeout,
		NHLMaxRetries:          nhlMaxRetries,
		NHLCircuitEnabled:      nhlCircuitEnabled,
		NHLCircuitFailureCount: nhlCircuitFailureCount,
		NHLCircuitOpenTimeout:  nhlCircuitOpenTimeout,
		NHLCircuitProbeLimit:   nhlCircuitProbeLimit,
		PprofEnabled:           pprofEnabled,
		PprofAddr:              pprofAddr,
		UptraceEnabled:         uptraceEnabled,
		UptraceDSN:             uptraceDSN,
		PyroscopeEnabled:       pyroscopeEnabled,
		PyroscopeServerAddress: pyroscopeServerAddress,
		PyroscopeAppName:       getEnv("PYROSCOPE_APP_NAME", serviceName),
		PyroscopeAuthToken:     strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeUploadRate:    pyroscopeUploadRate,
	}, nil
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

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}
