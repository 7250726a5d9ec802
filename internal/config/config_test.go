package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App: AppConfig{
			Environment: "development",
		},
		Logger: LoggerConfig{
			Level: "info",
		},
		Store: StoreConfig{
			DatabasePath: "/some/path/promptdeck.db",
		},
		Catalog: CatalogConfig{
			BaseURL:        "http://localhost:8080",
			RequestTimeout: 10 * time.Second,
		},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_AllLogLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"debug", true},
		{"info", true},
		{"warn", true},
		{"error", true},
		{"DEBUG", true},  // case insensitive
		{"trace", false}, // not supported
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.Logger.Level = tt.level

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_EmptyDatabasePath(t *testing.T) {
	cfg := validConfig()
	cfg.Store.DatabasePath = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database path cannot be empty")
}

func TestValidate_MissingCatalogURL(t *testing.T) {
	cfg := validConfig()
	cfg.Catalog.BaseURL = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "catalog URL")
}

func TestExpandPaths_EmptyUsesDefaults(t *testing.T) {
	cfg := &Config{}

	err := cfg.expandPaths("")
	require.NoError(t, err)

	homeDir, _ := os.UserHomeDir() //nolint:errcheck // Test setup
	assert.Equal(t, filepath.Join(homeDir, "PromptDeck", "promptdeck.db"), cfg.Store.DatabasePath)
	assert.Equal(t, filepath.Join(homeDir, "PromptDeck", "search.bleve"), cfg.Search.IndexPath)
	assert.Equal(t, filepath.Join(homeDir, "PromptDeck", "client"), cfg.Client.DataDir)
	assert.Empty(t, cfg.Seed.Path)
}

func TestExpandPaths_CustomRoot(t *testing.T) {
	cfg := &Config{}

	err := cfg.expandPaths("/srv/promptdeck")
	require.NoError(t, err)

	assert.Equal(t, "/srv/promptdeck/promptdeck.db", cfg.Store.DatabasePath)
	assert.Equal(t, "/srv/promptdeck/search.bleve", cfg.Search.IndexPath)
	assert.Equal(t, "/srv/promptdeck/client", cfg.Client.DataDir)
}

func TestExpandPaths_TildeExpansion(t *testing.T) {
	cfg := &Config{
		Store: StoreConfig{DatabasePath: "~/my-data/deck.db"},
	}

	err := cfg.expandPaths("")
	require.NoError(t, err)

	homeDir, _ := os.UserHomeDir() //nolint:errcheck // Test setup
	assert.Equal(t, filepath.Join(homeDir, "my-data", "deck.db"), cfg.Store.DatabasePath)
}

func TestExpandPaths_ExplicitValuesKept(t *testing.T) {
	cfg := &Config{
		Store:  StoreConfig{DatabasePath: "/absolute/deck.db"},
		Search: SearchConfig{IndexPath: "/absolute/index"},
		Seed:   SeedConfig{Path: "/absolute/seed.json"},
	}

	err := cfg.expandPaths("/ignored-root")
	require.NoError(t, err)

	assert.Equal(t, "/absolute/deck.db", cfg.Store.DatabasePath)
	assert.Equal(t, "/absolute/index", cfg.Search.IndexPath)
	assert.Equal(t, "/absolute/seed.json", cfg.Seed.Path)
}

func TestGetConfigValue_Precedence(t *testing.T) {
	// Test flag value takes priority.
	result := getConfigValue("flag-value", "ENV_KEY", "default-value")
	assert.Equal(t, "flag-value", result)

	// Test env var when flag is empty.
	os.Setenv("TEST_ENV_KEY", "env-value") //nolint:errcheck // Test setup
	defer os.Unsetenv("TEST_ENV_KEY")      //nolint:errcheck // Test cleanup

	result = getConfigValue("", "TEST_ENV_KEY", "default-value")
	assert.Equal(t, "env-value", result)

	// Test default when both are empty.
	result = getConfigValue("", "NONEXISTENT_KEY", "default-value")
	assert.Equal(t, "default-value", result)
}

func TestGetBoolConfigValue(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"0", false},
		{"anything", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, getBoolConfigValue(tt.value, "UNUSED_KEY", !tt.want))
		})
	}

	// Empty everywhere falls back to the default.
	assert.True(t, getBoolConfigValue("", "NONEXISTENT_KEY", true))
	assert.False(t, getBoolConfigValue("", "NONEXISTENT_KEY", false))
}

func TestLoadEnvFile_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	envFile := filepath.Join(tmpDir, ".env")

	content := `# Test env file
ENV=staging
LOG_LEVEL=debug
DATABASE_PATH=/test/path/deck.db
# Comment line
QUOTED_VALUE="some value"
SINGLE_QUOTED='another value'
`
	err := os.WriteFile(envFile, []byte(content), 0o644)
	require.NoError(t, err)

	keys := []string{"ENV", "LOG_LEVEL", "DATABASE_PATH", "QUOTED_VALUE", "SINGLE_QUOTED"}
	for _, k := range keys {
		os.Unsetenv(k) //nolint:errcheck // Test setup
	}
	defer func() {
		for _, k := range keys {
			os.Unsetenv(k) //nolint:errcheck // Test cleanup
		}
	}()

	err = loadEnvFile(envFile)
	require.NoError(t, err)

	assert.Equal(t, "staging", os.Getenv("ENV"))
	assert.Equal(t, "debug", os.Getenv("LOG_LEVEL"))
	assert.Equal(t, "/test/path/deck.db", os.Getenv("DATABASE_PATH"))
	assert.Equal(t, "some value", os.Getenv("QUOTED_VALUE"))
	assert.Equal(t, "another value", os.Getenv("SINGLE_QUOTED"))
}

func TestLoadEnvFile_InvalidFormat(t *testing.T) {
	tmpDir := t.TempDir()
	envFile := filepath.Join(tmpDir, ".env")

	content := `VALID_KEY=valid_value
INVALID LINE WITHOUT EQUALS
ANOTHER_VALID=value
`
	err := os.WriteFile(envFile, []byte(content), 0o644)
	require.NoError(t, err)

	err = loadEnvFile(envFile)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestLoadEnvFile_NonExistentFile(t *testing.T) {
	err := loadEnvFile("/nonexistent/file/.env")
	assert.Error(t, err)
}

func TestLoadEnvFile_ExistingEnvVarsNotOverwritten(t *testing.T) {
	os.Setenv("TEST_VAR", "original-value") //nolint:errcheck // Test setup
	defer os.Unsetenv("TEST_VAR")           //nolint:errcheck // Test cleanup

	tmpDir := t.TempDir()
	envFile := filepath.Join(tmpDir, ".env")

	err := os.WriteFile(envFile, []byte(`TEST_VAR=new-value`), 0o644)
	require.NoError(t, err)

	err = loadEnvFile(envFile)
	require.NoError(t, err)

	assert.Equal(t, "original-value", os.Getenv("TEST_VAR"))
}

func TestLoadEnvFile_Whitespace(t *testing.T) {
	tmpDir := t.TempDir()
	envFile := filepath.Join(tmpDir, ".env")

	content := `  KEY_WITH_SPACES  =  value with spaces  `
	err := os.WriteFile(envFile, []byte(content), 0o644)
	require.NoError(t, err)

	os.Unsetenv("KEY_WITH_SPACES")       //nolint:errcheck // Test cleanup
	defer os.Unsetenv("KEY_WITH_SPACES") //nolint:errcheck // Test cleanup

	err = loadEnvFile(envFile)
	require.NoError(t, err)

	assert.Equal(t, "value with spaces", os.Getenv("KEY_WITH_SPACES"))
}
