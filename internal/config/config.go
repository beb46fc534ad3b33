// Package config provides environment-based configuration management
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"visitas/internal/types"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Constants for configuration validation
const (
	MinPort = 1
	MaxPort = 65535
)

// Manager implements types.ConfigManager by reading from process environment.
type Manager struct {
	config *Config
}

// Config holds all configuration values
type Config struct {
	Server      types.ServerConfig
	Auth        types.AuthConfig
	CORS        types.CORSConfig
	Performance types.PerformanceConfig
	Log         types.LogConfig
	Database    types.DatabaseConfig
	RedisDSN    string
}

// NewManager loads .env (if present) and builds the configuration.
func NewManager() (types.ConfigManager, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using environment variables")
	}

	manager := &Manager{}
	if err := manager.ReloadConfig(); err != nil {
		return nil, err
	}
	if err := manager.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return manager, nil
}

// ReloadConfig re-reads the environment into the manager.
func (m *Manager) ReloadConfig() error {
	config := &Config{
		Server: types.ServerConfig{
			Port:                    parseInteger(os.Getenv("PORT"), 3001),
			Host:                    getEnvOrDefault("HOST", "0.0.0.0"),
			ReadTimeout:             parseInteger(os.Getenv("SERVER_READ_TIMEOUT"), 60),
			WriteTimeout:            parseInteger(os.Getenv("SERVER_WRITE_TIMEOUT"), 60),
			IdleTimeout:             parseInteger(os.Getenv("SERVER_IDLE_TIMEOUT"), 120),
			GracefulShutdownTimeout: parseInteger(os.Getenv("SERVER_GRACEFUL_SHUTDOWN_TIMEOUT"), 10),
		},
		Auth: types.AuthConfig{
			JWTSecret:     os.Getenv("JWT_SECRET"),
			TokenTTLHours: parseInteger(os.Getenv("JWT_TTL_HOURS"), 24),
		},
		CORS: types.CORSConfig{
			Enabled:          parseBoolean(os.Getenv("ENABLE_CORS"), true),
			AllowedOrigins:   parseArray(os.Getenv("ALLOWED_ORIGINS"), "*"),
			AllowedMethods:   parseArray(os.Getenv("ALLOWED_METHODS"), "GET,POST,PUT,DELETE,OPTIONS"),
			AllowedHeaders:   parseArray(os.Getenv("ALLOWED_HEADERS"), "*"),
			AllowCredentials: parseBoolean(os.Getenv("ALLOW_CREDENTIALS"), false),
		},
		Performance: types.PerformanceConfig{
			MaxConcurrentRequests: parseInteger(os.Getenv("MAX_CONCURRENT_REQUESTS"), 100),
		},
		Log: types.LogConfig{
			Level:      getEnvOrDefault("LOG_LEVEL", "info"),
			Format:     getEnvOrDefault("LOG_FORMAT", "text"),
			EnableFile: parseBoolean(os.Getenv("LOG_ENABLE_FILE"), false),
			FilePath:   getEnvOrDefault("LOG_FILE_PATH", "./data/logs/app.log"),
		},
		Database: types.DatabaseConfig{
			DSN: getEnvOrDefault("DATABASE_DSN", "./data/visitas.db"),
		},
		RedisDSN: os.Getenv("REDIS_DSN"),
	}

	m.config = config
	return nil
}

// Validate checks the configuration for invalid values.
func (m *Manager) Validate() error {
	if m.config.Server.Port < MinPort || m.config.Server.Port > MaxPort {
		return fmt.Errorf("invalid port: %d (must be %d-%d)", m.config.Server.Port, MinPort, MaxPort)
	}
	if m.config.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(m.config.Auth.JWTSecret) < 16 {
		return fmt.Errorf("JWT_SECRET must be at least 16 characters")
	}
	if m.config.Auth.TokenTTLHours <= 0 {
		return fmt.Errorf("invalid JWT_TTL_HOURS: %d", m.config.Auth.TokenTTLHours)
	}
	if m.config.Performance.MaxConcurrentRequests < 1 {
		return fmt.Errorf("invalid max concurrent requests: %d", m.config.Performance.MaxConcurrentRequests)
	}
	if m.config.Database.DSN == "" {
		return fmt.Errorf("DATABASE_DSN is required")
	}
	return nil
}

// GetServerConfig returns server configuration
func (m *Manager) GetServerConfig() types.ServerConfig {
	return m.config.Server
}

// GetAuthConfig returns authentication configuration
func (m *Manager) GetAuthConfig() types.AuthConfig {
	return m.config.Auth
}

// GetCORSConfig returns CORS configuration
func (m *Manager) GetCORSConfig() types.CORSConfig {
	return m.config.CORS
}

// GetPerformanceConfig returns performance configuration
func (m *Manager) GetPerformanceConfig() types.PerformanceConfig {
	return m.config.Performance
}

// GetLogConfig returns logging configuration
func (m *Manager) GetLogConfig() types.LogConfig {
	return m.config.Log
}

// GetDatabaseConfig returns database configuration
func (m *Manager) GetDatabaseConfig() types.DatabaseConfig {
	return m.config.Database
}

// GetRedisDSN returns the Redis connection string, empty when unconfigured.
func (m *Manager) GetRedisDSN() string {
	return m.config.RedisDSN
}

// DisplayServerConfig logs the effective configuration at startup.
func (m *Manager) DisplayServerConfig() {
	server := m.config.Server
	logrus.Info("Server configuration:")
	logrus.Infof("  Listen: %s:%d", server.Host, server.Port)
	logrus.Infof("  Timeouts: read=%ds write=%ds idle=%ds", server.ReadTimeout, server.WriteTimeout, server.IdleTimeout)
	logrus.Infof("  Database: %s", m.config.Database.DSN)
	if m.config.RedisDSN != "" {
		logrus.Info("  Cache: redis")
	} else {
		logrus.Info("  Cache: memory")
	}
	logrus.Infof("  CORS enabled: %v", m.config.CORS.Enabled)
	logrus.Infof("  Max concurrent requests: %d", m.config.Performance.MaxConcurrentRequests)
	logrus.Infof("  Token TTL: %dh", m.config.Auth.TokenTTLHours)
}

// Helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseInteger(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}
	if parsed, err := strconv.Atoi(value); err == nil {
		return parsed
	}
	return defaultValue
}

func parseBoolean(value string, defaultValue bool) bool {
	if value == "" {
		return defaultValue
	}
	if parsed, err := strconv.ParseBool(value); err == nil {
		return parsed
	}
	return defaultValue
}

func parseArray(value, defaultValue string) []string {
	if value == "" {
		value = defaultValue
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
