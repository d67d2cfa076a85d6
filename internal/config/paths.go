package config

import (
	"os"
	"path/filepath"
	"strings"
)

const envConfigDir = "RICHLIST_CONFIG_DIR"

// Dir is where settings and history live: $RICHLIST_CONFIG_DIR, else the
// user config dir, else a dot directory in the working directory.
func Dir() string {
	if dir := strings.TrimSpace(os.Getenv(envConfigDir)); dir != "" {
		return dir
	}
	if base, err := os.UserConfigDir(); err == nil && base != "" {
		return filepath.Join(base, "richlist")
	}
	return ".richlist"
}

func HistoryDir() string {
	return filepath.Join(Dir(), "history")
}
