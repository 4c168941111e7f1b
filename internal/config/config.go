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
	App    AppConfig
	Logger LoggerConfig
	Data   DataConfig
	Sheet  SheetConfig
	Drive  DriveConfig
	Sync   SyncConfig
	Server ServerConfig
	Auth   AuthConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// DataConfig holds local storage configuration.
type DataConfig struct {
	// BasePath is the directory for the badger cache, sqlite file and
	// search index (default: ~/Storefront/data).
	BasePath string
}

// SheetConfig holds Google Sheets source configuration.
type SheetConfig struct {
	// ID is the spreadsheet ID. Empty disables sheet sync entirely.
	ID string
	// Tab gids per collection. Products falls back to the default gid "0".
	ProductsGID   string
	CategoriesGID string
	TagsGID       string
	MenuGID       string
	PagesGID      string
	TypesGID      string
	LevelsGID     string
	FacebookGID   string
	// WebAppURL is the optional Apps Script endpoint mirroring admin
	// edits back into the sheet. Empty disables the mirror.
	WebAppURL string
	// ImageBase is the base path for relative image references.
	ImageBase string
}

// DriveConfig holds Google Drive image source configuration.
type DriveConfig struct {
	// FolderID is the root folder to walk. Empty disables image indexing.
	FolderID string
	// APIKey authenticates Drive API listing calls.
	APIKey string
}

// SyncConfig holds sync orchestrator configuration.
type SyncConfig struct {
	// Interval between catalog refresh passes (default: 10m).
	Interval time.Duration
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string        // Server port (default: 8080)
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
	CORSOrigins  []string      // Allowed origins for the storefront (default: *)
}

// AuthConfig holds admin authentication configuration.
type AuthConfig struct {
	// PASETO v4 symmetric key for access tokens (32 bytes).
	// Loaded or generated under the data path at startup.
	AccessTokenKey []byte
	// AccessTokenDuration is the admin session lifetime (default: 12h).
	AccessTokenDuration time.Duration
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	dataPath := flag.String("data-path", "", "Base path for local data storage")

	sheetID := flag.String("sheet-id", "", "Google spreadsheet ID")
	productsGID := flag.String("sheet-gid-products", "", "Products tab gid (default: 0)")
	categoriesGID := flag.String("sheet-gid-categories", "", "Categories tab gid")
	tagsGID := flag.String("sheet-gid-tags", "", "Tags tab gid")
	menuGID := flag.String("sheet-gid-menu", "", "Menu tab gid")
	pagesGID := flag.String("sheet-gid-pages", "", "Pages tab gid")
	typesGID := flag.String("sheet-gid-types", "", "Size types tab gid")
	levelsGID := flag.String("sheet-gid-levels", "", "Price levels tab gid")
	facebookGID := flag.String("sheet-gid-fb", "", "Facebook links tab gid")
	webAppURL := flag.String("sheet-webapp-url", "", "Apps Script write-back endpoint")
	imageBase := flag.String("image-base", "", "Base path for relative image references (default: /images/)")

	driveFolderID := flag.String("drive-folder-id", "", "Google Drive image folder ID")
	driveAPIKey := flag.String("drive-api-key", "", "Google API key for Drive listing")

	syncInterval := flag.String("sync-interval", "", "Catalog refresh interval (default: 10m)")

	serverPort := flag.String("port", "", "Server port (default: 8080)")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	corsOrigins := flag.String("cors-origins", "", "Comma-separated allowed CORS origins (default: *)")

	accessTokenDuration := flag.String("access-token-duration", "", "Admin access token lifetime (default: 12h)")

	envFile := flag.String("env-file", ".env", "Path to .env file")

	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Data: DataConfig{
			BasePath: getConfigValue(*dataPath, "DATA_PATH", ""),
		},
		Sheet: SheetConfig{
			ID:            getConfigValue(*sheetID, "SHEET_ID", ""),
			ProductsGID:   getConfigValue(*productsGID, "SHEET_GID_PRODUCTS", getConfigValue("", "SHEET_GID", "0")),
			CategoriesGID: getConfigValue(*categoriesGID, "SHEET_GID_CATEGORIES", ""),
			TagsGID:       getConfigValue(*tagsGID, "SHEET_GID_TAGS", ""),
			MenuGID:       getConfigValue(*menuGID, "SHEET_GID_MENU", ""),
			PagesGID:      getConfigValue(*pagesGID, "SHEET_GID_PAGES", ""),
			TypesGID:      getConfigValue(*typesGID, "SHEET_GID_TYPES", ""),
			LevelsGID:     getConfigValue(*levelsGID, "SHEET_GID_LEVELS", ""),
			FacebookGID:   getConfigValue(*facebookGID, "SHEET_GID_FB", ""),
			WebAppURL:     getConfigValue(*webAppURL, "SHEET_WEBAPP_URL", ""),
			ImageBase:     getConfigValue(*imageBase, "IMAGE_BASE", "/images/"),
		},
		Drive: DriveConfig{
			FolderID: getConfigValue(*driveFolderID, "DRIVE_FOLDER_ID", ""),
			APIKey:   getConfigValue(*driveAPIKey, "GOOGLE_API_KEY", ""),
		},
		Server: ServerConfig{
			Port:        getConfigValue(*serverPort, "SERVER_PORT", "8080"),
			CORSOrigins: splitOrigins(getConfigValue(*corsOrigins, "CORS_ORIGINS", "*")),
		},
		Auth: AuthConfig{
			AccessTokenKey: nil, // Set by auth.LoadOrGenerateKey at startup.
		},
	}

	// Parse durations.
	syncIntervalStr := getConfigValue(*syncInterval, "SYNC_INTERVAL", "10m")
	interval, err := time.ParseDuration(syncIntervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid sync interval %q: %w", syncIntervalStr, err)
	}
	cfg.Sync.Interval = interval

	accessDurationStr := getConfigValue(*accessTokenDuration, "ACCESS_TOKEN_DURATION", "12h")
	accessDuration, err := time.ParseDuration(accessDurationStr)
	if err != nil {
		return nil, fmt.Errorf("invalid access token duration %q: %w", accessDurationStr, err)
	}
	cfg.Auth.AccessTokenDuration = accessDuration

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

	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

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

	if c.Data.BasePath == "" {
		return errors.New("data base path cannot be empty after expansion")
	}

	if c.Sync.Interval < time.Second {
		return fmt.Errorf("sync interval %s is too short (minimum 1s)", c.Sync.Interval)
	}

	// Drive indexing needs both the folder and a key; one without the
	// other is a misconfiguration rather than a disabled feature.
	if (c.Drive.FolderID == "") != (c.Drive.APIKey == "") {
		return errors.New("DRIVE_FOLDER_ID and GOOGLE_API_KEY must be set together")
	}

	return nil
}

// SheetSyncEnabled reports whether a spreadsheet source is configured.
func (c *Config) SheetSyncEnabled() bool {
	return c.Sheet.ID != ""
}

// DriveIndexEnabled reports whether a Drive image source is configured.
func (c *Config) DriveIndexEnabled() bool {
	return c.Drive.FolderID != "" && c.Drive.APIKey != ""
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandDataPath expands ~ and makes the path absolute,
// defaulting to ~/Storefront/data.
func (c *Config) expandDataPath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "Storefront", "data")

	expanded, err := expandPath(c.Data.BasePath, defaultPath)
	if err != nil {
		return err
	}
	c.Data.BasePath = expanded
	return nil
}

// splitOrigins splits a comma-separated origin list, trimming blanks.
func splitOrigins(s string) []string {
	parts := strings.Split(s, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return origins
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
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

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		value = strings.Trim(value, `"'`)

		// Real environment variables take precedence over the .env file.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
