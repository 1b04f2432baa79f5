package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/urgences-proches/backend/pkg/errors"
)

// Config holds all application configuration
type Config struct {
	Env          string
	Server       ServerConfig
	Directory    DirectoryConfig
	Places       PlacesConfig
	Attendance   AttendanceConfig
	Supplemental SupplementalConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	Cache        CacheConfig
	Geolocation  GeolocationConfig
	OTEL         OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
}

// DirectoryConfig holds the public hospital directory (OpenDataSoft) configuration.
// APIURL already carries the dataset and static query parameters.
type DirectoryConfig struct {
	APIURL       string
	RecordURL    string
	RadiusMeters int
}

// PlacesConfig holds the place-details provider configuration
type PlacesConfig struct {
	APIKey  string
	BaseURL string
}

// AttendanceConfig holds the real-time attendance feed configuration
type AttendanceConfig struct {
	APIURL          string
	InstitutionsURL string
}

// SupplementalConfig holds the curated supplemental dataset configuration
type SupplementalConfig struct {
	Source        string
	FilePath      string
	MatchStrategy string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// CacheConfig selects the cache backend
type CacheConfig struct {
	Provider string
	Size     int
}

// GeolocationConfig holds position resolution configuration
type GeolocationConfig struct {
	APIKey           string
	Timeout          time.Duration
	DefaultLatitude  float64
	DefaultLongitude float64
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	directoryURL := getEnv("DIRECTORY_API_URL", "")
	return &Config{
		Env: getEnv("ENV", "production"),
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Directory: DirectoryConfig{
			APIURL:       directoryURL,
			RecordURL:    getEnv("DIRECTORY_RECORD_URL", directoryURL),
			RadiusMeters: getEnvAsInt("DIRECTORY_SEARCH_RADIUS", 10000),
		},
		Places: PlacesConfig{
			APIKey:  getEnv("PLACES_API_KEY", ""),
			BaseURL: getEnv("PLACES_BASE_URL", "https://places.googleapis.com/v1/places"),
		},
		Attendance: AttendanceConfig{
			APIURL:          getEnv("ATTENDANCE_API_URL", ""),
			InstitutionsURL: getEnv("INSTITUTIONS_API_URL", ""),
		},
		Supplemental: SupplementalConfig{
			Source:        getEnv("SUPPLEMENTAL_SOURCE", "file"),
			FilePath:      getEnv("SUPPLEMENTAL_FILE", "data/hospitalMock.json"),
			MatchStrategy: getEnv("SUPPLEMENTAL_MATCH_STRATEGY", "first"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "urgences_proches"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Cache: CacheConfig{
			Provider: getEnv("CACHE_PROVIDER", "memory"),
			Size:     getEnvAsInt("CACHE_SIZE", 4096),
		},
		Geolocation: GeolocationConfig{
			APIKey:           getEnv("GEOLOCATION_API_KEY", ""),
			Timeout:          getEnvAsDuration("GEOLOCATION_TIMEOUT", 10*time.Second),
			DefaultLatitude:  getEnvAsFloat("DEFAULT_LATITUDE", 48.8566),
			DefaultLongitude: getEnvAsFloat("DEFAULT_LONGITUDE", 2.3522),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "urgences-proches"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}, nil
}

// Validate checks the settings without which no enrichment can run
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Directory.APIURL) == "" {
		return apperrors.NewConfigurationError("DIRECTORY_API_URL is missing")
	}
	if c.Directory.RadiusMeters <= 0 {
		return apperrors.NewConfigurationError("DIRECTORY_SEARCH_RADIUS must be positive")
	}
	switch c.Supplemental.Source {
	case "file", "postgres":
	default:
		return apperrors.NewConfigurationError(fmt.Sprintf("unknown SUPPLEMENTAL_SOURCE %q", c.Supplemental.Source))
	}
	return nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
