// Package config gathers runtime configuration from an optional .env file
// and environment variables.
package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the paths and endpoints of one run. Everything has a working
// default; env vars override.
type Config struct {
	DataDir   string // archive cache + JSON config files
	Output    string // rendered PNG path
	MirrorURL string // Natural Earth CDN base
	LogLevel  string
}

const (
	defaultDataDir = "datos"
	defaultOutput  = "mapa_baja_california.png"
)

// Load reads .env when present and resolves the configuration.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set directly.")
	}
	return Config{
		DataDir:   getenv("DIBUJA_DATA_DIR", defaultDataDir),
		Output:    getenv("DIBUJA_OUTPUT", defaultOutput),
		MirrorURL: getenv("DIBUJA_MIRROR_URL", ""),
		LogLevel:  getenv("LOG_LEVEL", "info"),
	}
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
