package config

// Backend kinds accepted by StorageConfig.Backend.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// StorageConfig selects the record store backend and how to reach it.
type StorageConfig struct {
	Backend     string `mapstructure:"backend" validate:"required,oneof=memory postgres redis"`
	DatabaseURL string `mapstructure:"database_url" validate:"required_if=Backend postgres"`
	RedisURL    string `mapstructure:"redis_url" validate:"required_if=Backend redis"`
}
