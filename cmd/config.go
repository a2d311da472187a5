// Package cmd wires the application together: configuration, the
// composition root and the adapters around the use case layer.
package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config carries the runtime settings of the service. Values come from the
// environment (optionally seeded by a .env file), with defaults suitable
// for local development.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	EventChannel  string

	SweepSchedule string
	SweepMaxAge   time.Duration

	LogLevel string
}

// LoadConfig reads configuration from the environment.
func LoadConfig() Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "fulfillment")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("EVENT_CHANNEL", "")
	v.SetDefault("SWEEP_SCHEDULE", "*/15 * * * *")
	v.SetDefault("SWEEP_MAX_AGE", "4h")
	v.SetDefault("LOG_LEVEL", "info")

	return Config{
		HTTPPort:      v.GetString("HTTP_PORT"),
		DBHost:        v.GetString("DB_HOST"),
		DBPort:        v.GetString("DB_PORT"),
		DBUser:        v.GetString("DB_USER"),
		DBPassword:    v.GetString("DB_PASSWORD"),
		DBName:        v.GetString("DB_NAME"),
		DBSslMode:     v.GetString("DB_SSLMODE"),
		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),
		EventChannel:  v.GetString("EVENT_CHANNEL"),
		SweepSchedule: v.GetString("SWEEP_SCHEDULE"),
		SweepMaxAge:   v.GetDuration("SWEEP_MAX_AGE"),
		LogLevel:      v.GetString("LOG_LEVEL"),
	}
}

// DSN builds the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
