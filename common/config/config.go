package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DatabaseConfig describes the Postgres report sink.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	// ConnectTimeout bounds the dial; zero waits indefinitely.
	ConnectTimeout time.Duration
}

// RedisConfig describes the extraction cache.
type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
}

// MQTTConfig describes the broker used for batch notifications.
type MQTTConfig struct {
	Broker   string
	ClientID string
	Username string
	Password string
	QoS      byte
}

// GetDSN returns a lib/pq connection string.
func (c *DatabaseConfig) GetDSN() string {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
	if secs := int(c.ConnectTimeout / time.Second); secs > 0 {
		dsn += fmt.Sprintf(" connect_timeout=%d", secs)
	}
	return dsn
}

// LoadFromEnv overrides the fields set in PREFIX_HOST, PREFIX_PORT,
// PREFIX_USER, PREFIX_PASSWORD, PREFIX_NAME, PREFIX_SSLMODE and
// PREFIX_CONNECT_TIMEOUT (seconds).
func (c *DatabaseConfig) LoadFromEnv(prefix string) {
	envString(prefix+"_HOST", &c.Host)
	envInt(prefix+"_PORT", &c.Port)
	envString(prefix+"_USER", &c.User)
	envString(prefix+"_PASSWORD", &c.Password)
	envString(prefix+"_NAME", &c.Database)
	envString(prefix+"_SSLMODE", &c.SSLMode)
	envSeconds(prefix+"_CONNECT_TIMEOUT", &c.ConnectTimeout)
}

// LoadFromEnv overrides the fields set in PREFIX_ADDR, PREFIX_PASSWORD,
// PREFIX_DB and PREFIX_DIAL_TIMEOUT (seconds).
func (c *RedisConfig) LoadFromEnv(prefix string) {
	envString(prefix+"_ADDR", &c.Addr)
	envString(prefix+"_PASSWORD", &c.Password)
	envInt(prefix+"_DB", &c.DB)
	envSeconds(prefix+"_DIAL_TIMEOUT", &c.DialTimeout)
}

// LoadFromEnv overrides the fields set in PREFIX_BROKER, PREFIX_CLIENT_ID,
// PREFIX_USERNAME, PREFIX_PASSWORD and PREFIX_QOS.
func (c *MQTTConfig) LoadFromEnv(prefix string) {
	envString(prefix+"_BROKER", &c.Broker)
	envString(prefix+"_CLIENT_ID", &c.ClientID)
	envString(prefix+"_USERNAME", &c.Username)
	envString(prefix+"_PASSWORD", &c.Password)

	qos := int(c.QoS)
	envInt(prefix+"_QOS", &qos)
	if qos >= 0 && qos <= 2 {
		c.QoS = byte(qos)
	}
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// envInt leaves dst alone when the variable is unset or not a number.
func envInt(key string, dst *int) {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		*dst = n
	}
}

func envSeconds(key string, dst *time.Duration) {
	secs := -1
	envInt(key, &secs)
	if secs >= 0 {
		*dst = time.Duration(secs) * time.Second
	}
}
