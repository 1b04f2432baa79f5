package bootstrap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urgences-proches/backend/internal/adapters/cache"
	"github.com/urgences-proches/backend/internal/application/services"
	"github.com/urgences-proches/backend/pkg/config"
	apperrors "github.com/urgences-proches/backend/pkg/errors"
)

func testConfig() *config.Config {
	return &config.Config{
		Directory: config.DirectoryConfig{
			APIURL:       "https://directory.example/api/records/1.0/search/?dataset=hospitals",
			RadiusMeters: 10000,
		},
		Supplemental: config.SupplementalConfig{
			Source:        "file",
			FilePath:      "testdata/missing.json",
			MatchStrategy: "longest",
		},
		Cache:       config.CacheConfig{Provider: "memory", Size: 32},
		Geolocation: config.GeolocationConfig{Timeout: time.Second, DefaultLatitude: 48.8566, DefaultLongitude: 2.3522},
	}
}

func TestNew_WiresServices(t *testing.T) {
	c, err := New(testConfig(), nil)
	require.NoError(t, err)
	defer c.Close()

	assert.IsType(t, &cache.MemoryAdapter{}, c.Cache)
	assert.Equal(t, services.StrategyLongest, c.Matcher.Strategy())
	assert.Nil(t, c.Geocoder)
	assert.NotNil(t, c.Search)
	assert.Equal(t, 48.8566, c.Positions.Fallback().Latitude)
}

func TestNew_RejectsInvalidConfiguration(t *testing.T) {
	cfg := testConfig()
	cfg.Directory.APIURL = ""

	_, err := New(cfg, nil)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConfiguration))
}

func TestNew_RedisFallsBackToMemory(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.Provider = "redis"
	cfg.Redis = config.RedisConfig{Host: "127.0.0.1", Port: 1}

	c, err := New(cfg, nil)
	require.NoError(t, err)
	defer c.Close()

	assert.IsType(t, &cache.MemoryAdapter{}, c.Cache)
}
