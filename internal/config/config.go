package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	API      APIConfig      `mapstructure:"api"`
	Store    StoreConfig    `mapstructure:"store"`
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
	JWT      JWTConfig      `mapstructure:"jwt"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// APIConfig selects the data backend. The choice is made once at process
// start; nothing re-reads it per call. With UseMock set, all training data
// lives in the in-memory demo store and no network access is needed.
type APIConfig struct {
	UseMock bool   `mapstructure:"use_mock"`
	BaseURL string `mapstructure:"base_url"`
	Token   string `mapstructure:"token"`
}

// StoreConfig tunes the mock store's simulated latency. The delays exist to
// exercise loading states in calling code; tests set them to zero.
type StoreConfig struct {
	ReadDelay  time.Duration `mapstructure:"read_delay"`
	WriteDelay time.Duration `mapstructure:"write_delay"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// JWTConfig defines JWT specific configuration
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// --- Environment Variable Handling ---
	viper.AutomaticEnv()
	// Use replacer for nested keys e.g., api.use_mock -> API_USE_MOCK
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	// --- Set default values ---
	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("api.use_mock", true)
	viper.SetDefault("api.base_url", "http://localhost:3000/api")
	viper.SetDefault("store.read_delay", "500ms")
	viper.SetDefault("store.write_delay", "400ms")
	viper.SetDefault("database.uri", "mongodb://localhost:27017")
	viper.SetDefault("database.name", "training_log")
	viper.SetDefault("s3.use_ssl", true)
	viper.SetDefault("jwt.expiration", "1h")

	// --- Read Config File ---
	err = viper.ReadInConfig()
	// A missing config file is fine; env vars and defaults carry the day.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	// --- Unmarshal Config ---
	// Viper parses duration strings ("500ms", "1h") directly into the
	// time.Duration fields.
	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}
	return config, nil
}
