// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Server  ServerConfig
	Store   StoreConfig
	Search  SearchConfig
	Catalog CatalogConfig
	Client  ClientConfig
	Seed    SeedConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Name          string
	Port          string        // Server port (default: 8080)
	ReadTimeout   time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout  time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout   time.Duration // HTTP idle timeout (default: 60s)
	AdvertiseMDNS bool          // Advertise via mDNS/Zeroconf (default: true)
}

// StoreConfig holds relational store configuration.
type StoreConfig struct {
	// DatabasePath is the sqlite database file (default: {data}/promptdeck.db)
	DatabasePath string
}

// SearchConfig holds full-text search configuration.
type SearchConfig struct {
	// IndexPath is the directory for the search index (default: {data}/search.bleve)
	IndexPath string
}

// CatalogConfig holds the prompt listing client configuration.
type CatalogConfig struct {
	// BaseURL is the API the catalog fetches the prompt listing from.
	BaseURL string
	// RequestTimeout bounds a single listing fetch (default: 10s)
	RequestTimeout time.Duration
}

// ClientConfig holds local client state configuration.
type ClientConfig struct {
	// DataDir is the directory for locally persisted state (default: {data}/client)
	DataDir string
	// Namespace prefixes every persisted key (default: promptdeck)
	Namespace string
}

// SeedConfig holds prompt seeding configuration.
type SeedConfig struct {
	// Path to a JSON seed file ({"prompts": [...]}). Empty disables seeding.
	Path string
	// Watch re-imports the seed file when it changes (default: false)
	Watch bool
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	// Define command-line flags.
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	dataPath := flag.String("data-path", "", "Base path for application data")

	// Server flags
	serverName := flag.String("server-name", "", "Name for the server")
	serverPort := flag.String("port", "", "Server port (default: 8080)")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	advertiseMDNS := flag.String("advertise-mdns", "", "Advertise via mDNS/Zeroconf (default: true)")

	// Store and search flags
	databasePath := flag.String("database-path", "", "Path to the sqlite database file")
	searchIndexPath := flag.String("search-index-path", "", "Path to the search index directory")

	// Catalog flags
	catalogBaseURL := flag.String("catalog-url", "", "Base URL for the prompt listing API")
	catalogTimeout := flag.String("catalog-timeout", "", "Timeout for listing fetches (default: 10s)")

	// Client flags
	clientDataDir := flag.String("client-data-dir", "", "Directory for local client state")
	clientNamespace := flag.String("client-namespace", "", "Key namespace for local client state")

	// Seed flags
	seedPath := flag.String("seed-path", "", "Path to a JSON prompt seed file")
	seedWatch := flag.String("seed-watch", "", "Re-import the seed file when it changes (default: false)")

	envFile := flag.String("env-file", ".env", "Path to .env file")

	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	// Build config with proper precedence.
	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Name:          getConfigValue(*serverName, "SERVER_NAME", "PromptDeck Server"),
			Port:          getConfigValue(*serverPort, "SERVER_PORT", "8080"),
			AdvertiseMDNS: getBoolConfigValue(*advertiseMDNS, "ADVERTISE_MDNS", true),
		},
		Store: StoreConfig{
			DatabasePath: getConfigValue(*databasePath, "DATABASE_PATH", ""),
		},
		Search: SearchConfig{
			IndexPath: getConfigValue(*searchIndexPath, "SEARCH_INDEX_PATH", ""),
		},
		Catalog: CatalogConfig{
			BaseURL: getConfigValue(*catalogBaseURL, "CATALOG_URL", "http://localhost:8080"),
		},
		Client: ClientConfig{
			DataDir:   getConfigValue(*clientDataDir, "CLIENT_DATA_DIR", ""),
			Namespace: getConfigValue(*clientNamespace, "CLIENT_NAMESPACE", "promptdeck"),
		},
		Seed: SeedConfig{
			Path:  getConfigValue(*seedPath, "SEED_PATH", ""),
			Watch: getBoolConfigValue(*seedWatch, "SEED_WATCH", false),
		},
	}

	// Parse server timeouts.
	readTimeoutStr := getConfigValue(*readTimeout, "SERVER_READ_TIMEOUT", "15s")
	readTimeoutDuration, err := time.ParseDuration(readTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid read timeout %q: %w", readTimeoutStr, err)
	}
	cfg.Server.ReadTimeout = readTimeoutDuration

	writeTimeoutStr := getConfigValue(*writeTimeout, "SERVER_WRITE_TIMEOUT", "15s")
	writeTimeoutDuration, err := time.ParseDuration(writeTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid write timeout %q: %w", writeTimeoutStr, err)
	}
	cfg.Server.WriteTimeout = writeTimeoutDuration

	idleTimeoutStr := getConfigValue(*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s")
	idleTimeoutDuration, err := time.ParseDuration(idleTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid idle timeout %q: %w", idleTimeoutStr, err)
	}
	cfg.Server.IdleTimeout = idleTimeoutDuration

	catalogTimeoutStr := getConfigValue(*catalogTimeout, "CATALOG_TIMEOUT", "10s")
	catalogTimeoutDuration, err := time.ParseDuration(catalogTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog timeout %q: %w", catalogTimeoutStr, err)
	}
	cfg.Catalog.RequestTimeout = catalogTimeoutDuration

	// Expand data-derived paths.
	if err := cfg.expandPaths(getConfigValue(*dataPath, "DATA_PATH", "")); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	// Validate configuration.
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Store.DatabasePath == "" {
		return errors.New("database path cannot be empty after expansion")
	}

	if c.Catalog.BaseURL == "" {
		return errors.New("catalog URL is required")
	}

	if c.Catalog.RequestTimeout <= 0 {
		return errors.New("catalog timeout must be positive")
	}

	return nil
}

// expandPaths resolves every path-valued setting against the data root.
// The root defaults to ~/PromptDeck.
func (c *Config) expandPaths(dataPath string) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	root, err := expandPath(dataPath, filepath.Join(homeDir, "PromptDeck"))
	if err != nil {
		return err
	}

	if c.Store.DatabasePath, err = expandPath(c.Store.DatabasePath, filepath.Join(root, "promptdeck.db")); err != nil {
		return err
	}
	if c.Search.IndexPath, err = expandPath(c.Search.IndexPath, filepath.Join(root, "search.bleve")); err != nil {
		return err
	}
	if c.Client.DataDir, err = expandPath(c.Client.DataDir, filepath.Join(root, "client")); err != nil {
		return err
	}
	if c.Seed.Path != "" {
		if c.Seed.Path, err = expandPath(c.Seed.Path, ""); err != nil {
			return err
		}
	}

	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	// Expand tilde.
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	// Make absolute if needed.
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	// Priority 1: Command-line flag.
	if flagValue != "" {
		return flagValue
	}

	// Priority 2: Environment variable.
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	// Priority 3: Default value.
	return defaultValue
}

// getBoolConfigValue returns a bool from flag, env var, or default.
// Accepts: "true", "1", "yes" (case-insensitive) as true; anything else is false.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=value.
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Remove quotes if present.
		value = strings.Trim(value, `"'`)

		// Only set if not already set (env vars take precedence over .env file).
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
