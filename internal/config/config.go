package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers   []string
	KafkaSinkTopic string
	HTTPAddr       string
	LogLevel       string
	LogFormat      string
	ShutdownTimeout time.Duration

	// Upstream data sources.
	VannNettBaseURL string
	VannNettTimeout time.Duration
	Teotil2BaseURL  string
	Teotil2Timeout  time.Duration
	Teotil3DataDir  string

	// Export job selectors.
	ExportModel         string // "teotil2" or "teotil3"
	ExportPollutant     string // "n" or "p"
	ExportRegine        string
	ExportStartYear     int
	ExportEndYear       int
	ExportAgriLossModel string // teotil3 only
	ExportReferenceYear int    // teotil3 only
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	vannNettTimeout, err := parseDuration("VANNNETT_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	teotil2Timeout, err := parseDuration("TEOTIL2_TIMEOUT", "60s")
	if err != nil {
		return nil, err
	}

	startYear, err := parseInt("EXPORT_START_YEAR", 0)
	if err != nil {
		return nil, err
	}
	endYear, err := parseInt("EXPORT_END_YEAR", 0)
	if err != nil {
		return nil, err
	}
	referenceYear, err := parseInt("EXPORT_REFERENCE_YEAR", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		KafkaBrokers:    parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSinkTopic:  envOrDefault("KAFKA_SINK_TOPIC", "nutrient-load-reports"),
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		VannNettBaseURL: envOrDefault("VANNNETT_BASE_URL", "https://vann-nett.no/service"),
		VannNettTimeout: vannNettTimeout,
		Teotil2BaseURL:  envOrDefault("TEOTIL2_BASE_URL", "https://raw.githubusercontent.com/NIVANorge/teotil2/main/data/norway_annual_output_data"),
		Teotil2Timeout:  teotil2Timeout,
		Teotil3DataDir:  envOrDefault("TEOTIL3_DATA_DIR", "data/teotil3"),

		ExportModel:         envOrDefault("EXPORT_MODEL", "teotil2"),
		ExportPollutant:     envOrDefault("EXPORT_POLLUTANT", "n"),
		ExportRegine:        os.Getenv("EXPORT_REGINE"),
		ExportStartYear:     startYear,
		ExportEndYear:       endYear,
		ExportAgriLossModel: envOrDefault("EXPORT_AGRI_LOSS_MODEL", "coefficient"),
		ExportReferenceYear: referenceYear,
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}
	if cfg.ExportModel != "teotil2" && cfg.ExportModel != "teotil3" {
		return nil, fmt.Errorf("EXPORT_MODEL must be teotil2 or teotil3, got %q", cfg.ExportModel)
	}
	if cfg.ExportPollutant != "n" && cfg.ExportPollutant != "p" {
		return nil, fmt.Errorf("EXPORT_POLLUTANT must be n or p, got %q", cfg.ExportPollutant)
	}
	if cfg.ExportStartYear > cfg.ExportEndYear {
		return nil, errors.New("EXPORT_START_YEAR must not be after EXPORT_END_YEAR")
	}
	if cfg.ExportModel == "teotil3" && cfg.ExportReferenceYear == 0 {
		return nil, errors.New("EXPORT_REFERENCE_YEAR is required for teotil3 exports")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}
