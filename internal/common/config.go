package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	OCR      OCRConfig
	Database DatabaseConfig
	Rules    RulesConfig
}

// OCRConfig holds text-acquisition configuration
type OCRConfig struct {
	Engine    string // "auto" | "tesseract" | "native"
	Language  string // tesseract language code, e.g. "chi_sim"
	Tesseract string // binary name or absolute path
	Pdftotext string
	Pdftoppm  string
	DPI       int // rasterization DPI for scanned PDFs
	MaxPages  int // 0 = no limit

	TessdataDir string
}

// DatabaseConfig holds the optional SQLite journal configuration
type DatabaseConfig struct {
	Path string // empty -> journal disabled
}

// RulesConfig points at an optional JSON rules file overriding the built-in
// cleaning substitutions and filename-fallback thresholds.
type RulesConfig struct {
	Path string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		OCR: OCRConfig{
			Engine:      getEnv("OCR_ENGINE", "auto"),
			Language:    getEnv("OCR_LANG", "chi_sim"),
			Tesseract:   getEnv("OCR_TESSERACT", "tesseract"),
			Pdftotext:   getEnv("OCR_PDFTOTEXT", "pdftotext"),
			Pdftoppm:    getEnv("OCR_PDFTOPPM", "pdftoppm"),
			DPI:         getEnvAsInt("OCR_DPI", 300),
			MaxPages:    getEnvAsInt("OCR_MAX_PAGES", 0),
			TessdataDir: getEnv("TESSDATA_PREFIX", ""),
		},
		Database: DatabaseConfig{
			Path: getEnv("CERT_DB_PATH", ""),
		},
		Rules: RulesConfig{
			Path: getEnv("CERT_RULES_PATH", ""),
		},
	}
}

// Validate checks the assembled configuration for values no component can
// run with. The CLIs call it once at startup, after flag overrides.
func (c *Config) Validate() error {
	switch c.OCR.Engine {
	case "auto", "tesseract", "native":
	default:
		return NewAppError("CONFIG", fmt.Sprintf("unknown OCR engine %q", c.OCR.Engine), nil)
	}
	if strings.TrimSpace(c.OCR.Language) == "" {
		return NewAppError("CONFIG", "OCR language must not be empty", nil)
	}
	if c.OCR.DPI <= 0 {
		return NewAppError("CONFIG", fmt.Sprintf("OCR DPI must be positive, got %d", c.OCR.DPI), nil)
	}
	if c.OCR.MaxPages < 0 {
		return NewAppError("CONFIG", fmt.Sprintf("OCR max pages must not be negative, got %d", c.OCR.MaxPages), nil)
	}
	return nil
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
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
