package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/models"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	JWT      JWTConfig
	Admin    AdminConfig
	Prizes   []models.Prize
	LogLevel string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// StorageConfig selects and configures the spin store
type StorageConfig struct {
	Driver   string // sqlite, mongodb, dynamodb or memory
	SQLite   SQLiteConfig
	MongoDB  MongoDBConfig
	DynamoDB DynamoDBConfig
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	Path string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// DynamoDBConfig holds DynamoDB-specific configuration
type DynamoDBConfig struct {
	Table    string
	Region   string
	Endpoint string // optional, for localstack
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int // seconds
}

// AdminConfig holds the single operator account. PasswordHash is a bcrypt hash.
type AdminConfig struct {
	Email        string
	PasswordHash string
}

// Storage drivers
const (
	DriverSQLite   = "sqlite"
	DriverMongoDB  = "mongodb"
	DriverDynamoDB = "dynamodb"
	DriverMemory   = "memory"
)

// Load loads configuration from environment variables and an optional config.yaml under path
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath(path + "/config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// PORT is what most hosting platforms inject
	if err := v.BindEnv("Server.Port", "SERVER_PORT", "PORT"); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if len(config.Prizes) == 0 {
		config.Prizes = models.DefaultPrizes()
	}
	config.Storage.Driver = strings.ToLower(config.Storage.Driver)

	return &config, nil
}

// minJWTSecretLength is the shortest jwt.secret accepted once an admin is configured
const minJWTSecretLength = 16

// placeholderSecrets are well-known values that must never sign admin tokens
var placeholderSecrets = map[string]bool{
	"change-me": true,
	"changeme":  true,
	"secret":    true,
}

// AdminEnabled reports whether the admin account and a signing secret are configured
func (c *Config) AdminEnabled() bool {
	return c.Admin.Email != "" && c.Admin.PasswordHash != "" && c.JWT.Secret != ""
}

// Validate rejects configurations that would expose the admin API
func (c *Config) Validate() error {
	if c.Admin.Email == "" && c.Admin.PasswordHash == "" {
		return nil
	}
	if c.Admin.Email == "" || c.Admin.PasswordHash == "" {
		return errors.New("admin.email and admin.passwordHash must be set together")
	}
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret is required when an admin account is configured")
	}
	if placeholderSecrets[strings.ToLower(c.JWT.Secret)] || len(c.JWT.Secret) < minJWTSecretLength {
		return fmt.Errorf("jwt.secret must be a private value of at least %d characters", minJWTSecretLength)
	}
	return nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("Server.Port", "3000")
	v.SetDefault("Server.AllowedOrigins", []string{"*"})
	v.SetDefault("Storage.Driver", DriverSQLite)
	v.SetDefault("Storage.SQLite.Path", "database.sqlite")
	v.SetDefault("Storage.MongoDB.URI", "mongodb://localhost:27017")
	v.SetDefault("Storage.MongoDB.Database", "spin-wheel")
	v.SetDefault("Storage.DynamoDB.Table", "Spins")
	v.SetDefault("Storage.DynamoDB.Region", "us-east-1")
	v.SetDefault("Storage.DynamoDB.Endpoint", "")
	v.SetDefault("JWT.Secret", "")
	v.SetDefault("JWT.ExpiresIn", 12*60*60) // 12 hours
	v.SetDefault("Admin.Email", "")
	v.SetDefault("Admin.PasswordHash", "")
	v.SetDefault("LogLevel", "info")
}
