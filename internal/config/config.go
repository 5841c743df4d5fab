package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Storage StorageConfig
	Redis   RedisConfig
	Sim     SimulationConfig
	Logger  LoggerConfig
}

// StorageConfig selects and parameterizes the persistence substrate
type StorageConfig struct {
	Backend    string `mapstructure:"STORAGE_BACKEND"`     // memory, file, redis, sqlite
	FileDir    string `mapstructure:"STORAGE_FILE_DIR"`    // base directory for the file backend
	SQLitePath string `mapstructure:"STORAGE_SQLITE_PATH"` // database path for the sqlite backend
}

// RedisConfig holds configuration for the redis backend
type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

// SimulationConfig holds the artificial latency and fault-injection settings
type SimulationConfig struct {
	LatencyMS        int     `mapstructure:"SIM_LATENCY_MS"`
	FaultProbability float64 `mapstructure:"SIM_FAULT_PROBABILITY"`
}

// Latency returns the artificial delay applied to each store operation.
func (c *SimulationConfig) Latency() time.Duration {
	return time.Duration(c.LatencyMS) * time.Millisecond
}

// LoggerConfig holds configuration for the logger
type LoggerConfig struct {
	Level            string  `mapstructure:"LOG_LEVEL"`
	Format           string  `mapstructure:"LOG_FORMAT"`
	OutputPath       string  `mapstructure:"LOG_OUTPUT_PATH"`
	SlowQuerySeconds float64 `mapstructure:"LOG_SLOW_QUERY_SECONDS"`
	EnableSampling   bool    `mapstructure:"LOG_ENABLE_SAMPLING"`
	ServiceName      string  `mapstructure:"SERVICE_NAME"`
	ServiceVersion   string  `mapstructure:"SERVICE_VERSION"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (*Config, error) {
	setDefaults()

	viper.AddConfigPath(path)
	viper.SetConfigName("app") // Look for app.env
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay if we have env vars
	}

	var config Config

	config.Storage.Backend = viper.GetString("STORAGE_BACKEND")
	config.Storage.FileDir = viper.GetString("STORAGE_FILE_DIR")
	config.Storage.SQLitePath = viper.GetString("STORAGE_SQLITE_PATH")

	config.Redis.Host = viper.GetString("REDIS_HOST")
	config.Redis.Port = viper.GetString("REDIS_PORT")
	config.Redis.Password = viper.GetString("REDIS_PASSWORD")
	config.Redis.DB = viper.GetInt("REDIS_DB")

	config.Sim.LatencyMS = viper.GetInt("SIM_LATENCY_MS")
	config.Sim.FaultProbability = viper.GetFloat64("SIM_FAULT_PROBABILITY")

	config.Logger.Level = viper.GetString("LOG_LEVEL")
	config.Logger.Format = viper.GetString("LOG_FORMAT")
	config.Logger.OutputPath = viper.GetString("LOG_OUTPUT_PATH")
	config.Logger.SlowQuerySeconds = viper.GetFloat64("LOG_SLOW_QUERY_SECONDS")
	config.Logger.EnableSampling = viper.GetBool("LOG_ENABLE_SAMPLING")
	config.Logger.ServiceName = viper.GetString("SERVICE_NAME")
	config.Logger.ServiceVersion = viper.GetString("SERVICE_VERSION")

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("STORAGE_BACKEND", "file")
	viper.SetDefault("STORAGE_FILE_DIR", "./data")
	viper.SetDefault("STORAGE_SQLITE_PATH", "./data/user-profiles.db")

	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("SIM_LATENCY_MS", 300)
	viper.SetDefault("SIM_FAULT_PROBABILITY", 0.1)

	env := viper.GetString("APP_ENV")
	if env == "production" {
		viper.SetDefault("LOG_LEVEL", "info")
		viper.SetDefault("LOG_FORMAT", "json")
		viper.SetDefault("LOG_ENABLE_SAMPLING", true)
	} else {
		viper.SetDefault("LOG_LEVEL", "debug")
		viper.SetDefault("LOG_FORMAT", "console")
		viper.SetDefault("LOG_ENABLE_SAMPLING", false)
	}
	viper.SetDefault("LOG_OUTPUT_PATH", "stdout")
	viper.SetDefault("LOG_SLOW_QUERY_SECONDS", 0.2)
	viper.SetDefault("SERVICE_NAME", "user-profiles")
	viper.SetDefault("SERVICE_VERSION", "1.0.0")
}
