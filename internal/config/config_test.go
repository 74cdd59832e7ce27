package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"gemini_api_key": "test-key",
		"database_url": "postgres://localhost/alumni",
		"accept_threshold": 0.7,
		"max_query_variants": 4,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "test-key", cfg.GeminiAPIKey)
	assert.Equal(t, "postgres://localhost/alumni", cfg.DatabaseURL)
	assert.Equal(t, 0.7, cfg.AcceptThreshold)
	assert.Equal(t, 4, cfg.MaxQueryVariants)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestValidate_Defaults(t *testing.T) {
	cfg := Config{}
	assert.NoError(t, cfg.Validate())
}

func TestValidate_ThresholdOutOfRange(t *testing.T) {
	cfg := Config{AcceptThreshold: 1.5}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accept_threshold")
}

func TestValidate_VariantCountOutOfRange(t *testing.T) {
	assert.Error(t, (&Config{MaxQueryVariants: 9}).Validate())
	// A single variant is below the supported range, not silently rewritten
	assert.Error(t, (&Config{MaxQueryVariants: 1}).Validate())
	assert.NoError(t, (&Config{MaxQueryVariants: 2}).Validate())
	assert.NoError(t, (&Config{MaxQueryVariants: 0}).Validate())
}

func TestValidate_GoogleEngineRequiresCredentials(t *testing.T) {
	cfg := Config{SearchEngine: "google"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "google_api_key")

	cfg.GoogleAPIKey = "key"
	cfg.GoogleSearchCX = "cx"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_UnknownEngine(t *testing.T) {
	cfg := Config{SearchEngine: "bing"}
	assert.Error(t, cfg.Validate())
}

func TestMergeWithDefaults_FillsPipelineDefaults(t *testing.T) {
	cfg := Config{}
	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, DefaultAcceptThreshold, merged.AcceptThreshold)
	assert.Equal(t, DefaultFallbackThreshold, merged.FallbackThreshold)
	assert.Equal(t, DefaultSearchTimeoutSecs, merged.SearchTimeoutSecs)
	assert.Equal(t, DefaultMaxQueryVariants, merged.MaxQueryVariants)
	assert.Equal(t, DefaultMaxResultsPerQuery, merged.MaxResultsPerQuery)
}

func TestMergeWithDefaults_ExplicitValuesWin(t *testing.T) {
	cfg := Config{GeminiAPIKey: "mine", AcceptThreshold: 0.8}
	merged := cfg.MergeWithDefaults(Config{GeminiAPIKey: "theirs", AcceptThreshold: 0.4})

	assert.Equal(t, "mine", merged.GeminiAPIKey)
	assert.Equal(t, 0.8, merged.AcceptThreshold)
}

func TestFromEnv_FillsOnlyUnsetFields(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("DATABASE_URL", "postgres://env/db")

	cfg := Config{GeminiAPIKey: "file-key"}
	cfg.FromEnv()

	assert.Equal(t, "file-key", cfg.GeminiAPIKey)
	assert.Equal(t, "postgres://env/db", cfg.DatabaseURL)
}
