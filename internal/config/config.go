package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"clinic-etl/common/config"
)

// Config holds the pipeline settings.
type Config struct {
	// InputGlob selects the interview workbooks.
	InputGlob string
	// OutputPath is the coded report workbook.
	OutputPath string
	// RecordsJSON is the intermediate extracted-records file.
	RecordsJSON string
	// LexiconPath is an optional YAML overlay for the keyword tables.
	LexiconPath string
	// ReferenceDate replaces the consultation date of records that lack one.
	ReferenceDate time.Time

	Redis struct {
		Enabled bool
		TTL     time.Duration
		config.RedisConfig
	}

	Database struct {
		Enabled bool
		config.DatabaseConfig
	}

	MQTT struct {
		Enabled bool
		Topic   string
		config.MQTTConfig
	}

	Upload struct {
		Enabled bool
		URL     string
		Token   string
		Timeout time.Duration
		Retries int
	}

	Log struct {
		Level  string
		Format string
	}
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.InputGlob = getEnv("INPUT_GLOB", "*.xlsx")
	cfg.OutputPath = getEnv("OUTPUT_PATH", "reporte_pacientes.xlsx")
	cfg.RecordsJSON = getEnv("RECORDS_JSON", "pacientes.json")
	cfg.LexiconPath = getEnv("LEXICON_PATH", "")

	if ref := getEnv("REFERENCE_DATE", ""); ref != "" {
		t, err := time.Parse("02-01-2006", ref)
		if err != nil {
			return nil, fmt.Errorf("invalid REFERENCE_DATE %q, want dd-mm-yyyy: %w", ref, err)
		}
		cfg.ReferenceDate = t
	}

	cfg.Redis.Enabled = parseBool(getEnv("REDIS_ENABLED", "false"), false)
	cfg.Redis.Addr = "localhost:6379"
	cfg.Redis.DialTimeout = 5 * time.Second
	cfg.Redis.RedisConfig.LoadFromEnv("REDIS")
	cfg.Redis.TTL = time.Duration(parseInt(getEnv("REDIS_TTL_HOURS", "168"), 168)) * time.Hour

	cfg.Database.Enabled = parseBool(getEnv("DB_ENABLED", "false"), false)
	cfg.Database.Host = "localhost"
	cfg.Database.Port = 5432
	cfg.Database.User = "postgres"
	cfg.Database.Password = "postgres"
	cfg.Database.Database = "clinic"
	cfg.Database.SSLMode = "disable"
	cfg.Database.ConnectTimeout = 10 * time.Second
	cfg.Database.DatabaseConfig.LoadFromEnv("DB")

	cfg.MQTT.Enabled = parseBool(getEnv("MQTT_ENABLED", "false"), false)
	cfg.MQTT.Broker = "tcp://localhost:1883"
	cfg.MQTT.ClientID = "clinic-etl"
	cfg.MQTT.QoS = 1
	cfg.MQTT.MQTTConfig.LoadFromEnv("MQTT")
	cfg.MQTT.Topic = getEnv("MQTT_TOPIC", "clinic-etl/batches")

	cfg.Upload.Enabled = parseBool(getEnv("UPLOAD_ENABLED", "false"), false)
	cfg.Upload.URL = getEnv("UPLOAD_URL", "")
	cfg.Upload.Token = getEnv("UPLOAD_TOKEN", "")
	cfg.Upload.Timeout = 30 * time.Second
	cfg.Upload.Retries = 3

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	if cfg.Upload.Enabled && cfg.Upload.URL == "" {
		return nil, fmt.Errorf("UPLOAD_ENABLED requires UPLOAD_URL")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseInt(s string, defaultValue int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return defaultValue
	}
	return n
}

func parseBool(s string, defaultValue bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return defaultValue
	}
	return b
}
