package config

import (
	"os"
	"strconv"
)

// FromEnv applies MYTHDUEL_* environment variables over cfg.
func FromEnv(cfg Config) Config {
	if val := os.Getenv("MYTHDUEL_ADDR"); val != "" {
		cfg.Addr = val
	}
	if val := os.Getenv("MYTHDUEL_CATALOG"); val != "" {
		cfg.Catalog = val
	}
	if val := os.Getenv("MYTHDUEL_DATA_DIR"); val != "" {
		cfg.DataDir = val
	}
	if val := os.Getenv("MYTHDUEL_PUBLIC_URL"); val != "" {
		cfg.PublicURL = val
	}
	if val, ok := getEnvBool("MYTHDUEL_SHUFFLE"); ok {
		cfg.Shuffle = val
	}
	if val, ok := getEnvBool("MYTHDUEL_DEV"); ok {
		cfg.Dev = val
	}
	return cfg
}

func getEnvBool(key string) (bool, bool) {
	val := os.Getenv(key)
	if val == "" {
		return false, false
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, false
	}
	return b, true
}
