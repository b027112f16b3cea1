package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Store   StoreConfig
	Server  ServerConfig
	OCR     OCRConfig
	Lexicon LexiconConfig
}

// StoreConfig holds persisted-state configuration
type StoreConfig struct {
	Path string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	Pdftotext   string
	Pdftoppm    string
	Tesseract   string
	Lang        string
	DPI         int
	MaxPages    int
	TessdataDir string
	RemoteURL   string
	RemoteWait  time.Duration
}

// LexiconConfig holds keyword-lexicon configuration
type LexiconConfig struct {
	OverridePath string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Path: getEnv("STORE_PATH", "./data/dukabooks.db"),
		},
		Server: ServerConfig{
			Addr:            getEnv("HTTP_ADDR", ":8080"),
			ShutdownTimeout: getEnvAsDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		OCR: OCRConfig{
			Pdftotext:   getEnv("PDFTOTEXT_BIN", "pdftotext"),
			Pdftoppm:    getEnv("PDFTOPPM_BIN", "pdftoppm"),
			Tesseract:   getEnv("TESSERACT_BIN", "tesseract"),
			Lang:        getEnv("TESSERACT_LANG", "eng"),
			DPI:         getEnvAsInt("OCR_DPI", 300),
			MaxPages:    getEnvAsInt("OCR_MAX_PAGES", 3),
			TessdataDir: getEnv("TESSDATA_PREFIX", ""),
			RemoteURL:   getEnv("OCR_REMOTE_URL", ""),
			RemoteWait:  getEnvAsDuration("OCR_REMOTE_WAIT", 30*time.Second),
		},
		Lexicon: LexiconConfig{
			OverridePath: getEnv("LEXICON_PATH", ""),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
