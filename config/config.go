package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Config holds all configuration settings for the application.
type Config struct {
	// Server settings
	ListenAddress string
	ListenPort    string

	// Data store settings
	DataFilePath string // Resolved once here; no call site reads the environment again.
	DemoMode     bool   // Selects the demo data file when no explicit path is given.
	EnableBackup bool   // Keep a .bak copy of the previous data file on every save.
}

const (
	defaultAddress      = "0.0.0.0"
	defaultPort         = "8080"
	defaultDataFile     = "./data.json"      // Relative to working dir
	defaultDemoDataFile = "./data_demo.json" // Used when demo mode is on
	defaultDemoMode     = false
	defaultEnableBackup = true
)

// LoadConfig loads configuration from defaults, environment variables, and command-line flags.
// Command-line flags take precedence over environment variables, which take precedence over defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	// Define flags. Environment variables use the EXPIRYTRACKER_ prefix.
	flag.StringVar(&cfg.ListenAddress, "address", getEnv("EXPIRYTRACKER_LISTEN_ADDRESS", defaultAddress), "Server listen address (Env: EXPIRYTRACKER_LISTEN_ADDRESS)")
	// Define flag with the ultimate default. We'll check env var after parsing.
	flag.StringVar(&cfg.ListenPort, "port", defaultPort, "Server listen port (Env: EXPIRYTRACKER_LISTEN_PORT)")
	flag.StringVar(&cfg.DataFilePath, "data-file", getEnv("EXPIRYTRACKER_DATA_FILE", ""), "Path to the JSON data file; empty picks data.json or data_demo.json based on demo mode (Env: EXPIRYTRACKER_DATA_FILE)")
	flag.BoolVar(&cfg.DemoMode, "demo-mode", getEnvBool("EXPIRYTRACKER_DEMO_MODE", defaultDemoMode), "Use the demo data file instead of the real one (Env: EXPIRYTRACKER_DEMO_MODE)")
	flag.BoolVar(&cfg.EnableBackup, "enable-backup", getEnvBool("EXPIRYTRACKER_ENABLE_BACKUP", defaultEnableBackup), "Keep a .bak copy of the data file before saving (Env: EXPIRYTRACKER_ENABLE_BACKUP)")

	// Parse flags to override defaults and env vars
	flag.Parse()

	// --- Post-Flag Parsing Adjustments ---
	// Explicitly check environment variables to allow them to override defaults
	// if the corresponding flag was not provided.

	// Port
	envPort := getEnv("EXPIRYTRACKER_LISTEN_PORT", "")
	// If the flag wasn't set (still default) AND the env var exists, use the env var.
	if cfg.ListenPort == defaultPort && envPort != "" {
		cfg.ListenPort = envPort
	}

	// --- Data File Resolution ---
	// An explicit path (flag or env) always wins. Otherwise the demo-mode
	// toggle picks between the real file and the demo file, matching the
	// behaviour users of older versions expect from DEMO_MODE.
	if cfg.DataFilePath == "" {
		if cfg.DemoMode {
			cfg.DataFilePath = defaultDemoDataFile
		} else {
			cfg.DataFilePath = defaultDataFile
		}
	}

	absDataPath, err := filepath.Abs(cfg.DataFilePath)
	if err != nil {
		return nil, fmt.Errorf("could not determine absolute path for data-file '%s': %w", cfg.DataFilePath, err)
	}
	cfg.DataFilePath = absDataPath

	// Check if the resolved data path points to an existing directory
	fileInfo, err := os.Stat(cfg.DataFilePath)
	if err == nil && fileInfo.IsDir() { // Path exists and it's a directory
		return nil, fmt.Errorf("data path '%s' points to a directory, not a file", cfg.DataFilePath)
	}
	// A missing file is fine: the store is created on the first save.

	logConfiguration(cfg)

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvBool retrieves a boolean environment variable or returns a default value.
// Recognizes "true", "1", "yes" (case-insensitive) as true.
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		switch strings.ToLower(value) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
		log.Printf("WARN: Invalid boolean value for environment variable %s: '%s'. Using default: %t", key, value, fallback)
	}
	return fallback
}

// logConfiguration prints the loaded configuration settings.
func logConfiguration(cfg *Config) {
	log.Println("--- Configuration ---")
	log.Printf("Server Address: %s", cfg.ListenAddress)
	log.Printf("Server Port: %s", cfg.ListenPort)
	log.Printf("Data File: %s", cfg.DataFilePath)
	log.Printf("Demo Mode: %t", cfg.DemoMode)
	log.Printf("Data Backup Enabled: %t", cfg.EnableBackup)
	log.Println("---------------------")
}
