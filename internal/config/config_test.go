package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "*.xlsx", cfg.InputGlob)
	assert.Equal(t, "reporte_pacientes.xlsx", cfg.OutputPath)
	assert.Equal(t, "pacientes.json", cfg.RecordsJSON)
	assert.Equal(t, "", cfg.LexiconPath)
	assert.True(t, cfg.ReferenceDate.IsZero())

	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 168*time.Hour, cfg.Redis.TTL)
	assert.Equal(t, 5*time.Second, cfg.Redis.DialTimeout)

	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "clinic", cfg.Database.Database)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 10*time.Second, cfg.Database.ConnectTimeout)

	assert.False(t, cfg.MQTT.Enabled)
	assert.Equal(t, "tcp://localhost:1883", cfg.MQTT.Broker)
	assert.Equal(t, byte(1), cfg.MQTT.QoS)
	assert.Equal(t, "clinic-etl/batches", cfg.MQTT.Topic)

	assert.False(t, cfg.Upload.Enabled)
	assert.Equal(t, 3, cfg.Upload.Retries)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	os.Clearenv()
	defer os.Clearenv()

	os.Setenv("INPUT_GLOB", "data/*.xlsx")
	os.Setenv("REFERENCE_DATE", "26-03-2025")
	os.Setenv("REDIS_ENABLED", "true")
	os.Setenv("REDIS_ADDR", "cache:6380")
	os.Setenv("REDIS_TTL_HOURS", "2")
	os.Setenv("DB_ENABLED", "1")
	os.Setenv("DB_HOST", "db")
	os.Setenv("DB_PORT", "6543")
	os.Setenv("DB_NAME", "reports")
	os.Setenv("MQTT_TOPIC", "etl/done")
	os.Setenv("MQTT_QOS", "2")
	os.Setenv("UPLOAD_ENABLED", "true")
	os.Setenv("UPLOAD_URL", "http://files/upload")
	os.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/*.xlsx", cfg.InputGlob)
	assert.Equal(t, time.Date(2025, time.March, 26, 0, 0, 0, 0, time.UTC), cfg.ReferenceDate)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr)
	assert.Equal(t, 2*time.Hour, cfg.Redis.TTL)
	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "reports", cfg.Database.Database)
	assert.Equal(t, "etl/done", cfg.MQTT.Topic)
	assert.Equal(t, byte(2), cfg.MQTT.QoS)
	assert.True(t, cfg.Upload.Enabled)
	assert.Equal(t, "http://files/upload", cfg.Upload.URL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidReferenceDate(t *testing.T) {
	os.Clearenv()
	defer os.Clearenv()

	os.Setenv("REFERENCE_DATE", "2025-03-26")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_UploadWithoutURL(t *testing.T) {
	os.Clearenv()
	defer os.Clearenv()

	os.Setenv("UPLOAD_ENABLED", "true")
	_, err := Load()
	assert.Error(t, err)
}

func TestGetEnv(t *testing.T) {
	os.Clearenv()
	assert.Equal(t, "default-value", getEnv("TEST_KEY", "default-value"))

	os.Setenv("TEST_KEY", "test-value")
	defer os.Clearenv()
	assert.Equal(t, "test-value", getEnv("TEST_KEY", "default-value"))
}

func TestParseHelpers(t *testing.T) {
	assert.Equal(t, 12, parseInt(" 12 ", 5))
	assert.Equal(t, 5, parseInt("twelve", 5))
	assert.True(t, parseBool("TRUE", false))
	assert.False(t, parseBool("nope", false))
}
