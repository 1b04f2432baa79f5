package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/urgences-proches/backend/pkg/errors"
)

func TestLoad_DirectoryConfig(t *testing.T) {
	t.Setenv("DIRECTORY_API_URL", "https://data.example.org/api/records/1.0/search/?dataset=hopitaux")
	t.Setenv("DIRECTORY_SEARCH_RADIUS", "5000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://data.example.org/api/records/1.0/search/?dataset=hopitaux", cfg.Directory.APIURL)
	// Record URL falls back to the search URL
	assert.Equal(t, cfg.Directory.APIURL, cfg.Directory.RecordURL)
	assert.Equal(t, 5000, cfg.Directory.RadiusMeters)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DIRECTORY_API_URL", "")
	t.Setenv("GEOLOCATION_TIMEOUT", "")
	t.Setenv("DEFAULT_LATITUDE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.Geolocation.Timeout)
	assert.Equal(t, 48.8566, cfg.Geolocation.DefaultLatitude)
	assert.Equal(t, 2.3522, cfg.Geolocation.DefaultLongitude)
	assert.Equal(t, "file", cfg.Supplemental.Source)
	assert.Equal(t, "first", cfg.Supplemental.MatchStrategy)
	assert.Equal(t, "memory", cfg.Cache.Provider)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("GEOLOCATION_TIMEOUT", "soon")
	t.Setenv("SERVER_PORT", "eighty")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.Geolocation.Timeout)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestValidate_MissingDirectoryURL(t *testing.T) {
	t.Setenv("DIRECTORY_API_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConfiguration))
}

func TestValidate_UnknownSupplementalSource(t *testing.T) {
	t.Setenv("DIRECTORY_API_URL", "https://data.example.org/search")
	t.Setenv("SUPPLEMENTAL_SOURCE", "s3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, apperrors.IsType(cfg.Validate(), apperrors.ErrorTypeConfiguration))
}
