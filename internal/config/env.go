package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override config file values.
const (
	EnvSeed     = "LABPICK_SEED"
	EnvLab      = "LABPICK_LAB"
	EnvLogLevel = "LABPICK_LOG_LEVEL"
	EnvLogFile  = "LABPICK_LOG_FILE"
)

var envKeys = []string{EnvSeed, EnvLab, EnvLogLevel, EnvLogFile}

// LoadEnv merges the env file at path with the process environment.
// Process values win. A missing env file is not an error.
func LoadEnv(path string) (map[string]string, error) {
	env := map[string]string{}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			fileEnv, err := godotenv.Read(path)
			if err != nil {
				return nil, fmt.Errorf("failed to read env file: %w", err)
			}
			for _, key := range envKeys {
				if v, ok := fileEnv[key]; ok {
					env[key] = v
				}
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat env file: %w", err)
		}
	}
	for _, key := range envKeys {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}
	return env, nil
}

// ApplyEnv overlays env values onto cfg.
func ApplyEnv(cfg *FileConfig, env map[string]string) error {
	if v, ok := env[EnvSeed]; ok {
		seed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvSeed, v, err)
		}
		cfg.Picker.Seed = &seed
	}
	if v, ok := env[EnvLab]; ok {
		lab, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvLab, v, err)
		}
		cfg.Picker.Lab = &lab
	}
	if v, ok := env[EnvLogLevel]; ok {
		level := strings.TrimSpace(v)
		cfg.Picker.LogLevel = &level
	}
	if v, ok := env[EnvLogFile]; ok {
		file := strings.TrimSpace(v)
		cfg.Picker.LogFile = &file
	}
	return nil
}
