package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

type Config struct {
	ServerURL string `json:"server_url"`
	DataDir   string `json:"data_dir"`
	LogLevel  string `json:"log_level"`
	Notify    struct {
		Schedule string `json:"schedule"`
		Telegram struct {
			Token  string `json:"token"`
			ChatID int64  `json:"chat_id"`
		} `json:"telegram"`
	} `json:"notify"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		ServerURL: "http://localhost:8000/api",
		DataDir:   filepath.Join(os.Getenv("HOME"), ".healthai"),
		LogLevel:  "info",
	}
	cfg.Notify.Schedule = "@every 1m"

	// Load from file if exists, otherwise write defaults
	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if os.IsNotExist(err) {
		if err := writeDefaults(path, cfg); err != nil {
			return nil, err
		}
	}

	// Override from env (highest precedence)
	if server := os.Getenv("HEALTHAI_SERVER_URL"); server != "" {
		cfg.ServerURL = server
	}
	if dataDir := os.Getenv("HEALTHAI_DATA_DIR"); dataDir != "" {
		cfg.DataDir = dataDir
	}
	if tgToken := os.Getenv("HEALTHAI_TELEGRAM_TOKEN"); tgToken != "" {
		cfg.Notify.Telegram.Token = tgToken
	}
	if tgChat := os.Getenv("HEALTHAI_TELEGRAM_CHAT_ID"); tgChat != "" {
		if id, err := strconv.ParseInt(tgChat, 10, 64); err == nil {
			cfg.Notify.Telegram.ChatID = id
		}
	}

	return cfg, nil
}

// CredentialPath is where the session store persists its credential.
func (c *Config) CredentialPath() string {
	return filepath.Join(c.DataDir, "credential.json")
}

func writeDefaults(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}
	data = append(data, '\n')
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename default config: %w", err)
	}
	return nil
}

// Save writes cfg to path atomically.
func Save(path string, cfg *Config) error {
	return writeDefaults(path, cfg)
}

// ListValues returns the config as a flat dot-keyed map, masking
// secrets when mask is true.
func ListValues(cfg *Config, mask bool) (map[string]any, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	var nested map[string]any
	if err := json.Unmarshal(data, &nested); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	flat := Flatten(nested)
	if mask {
		flat = MaskSecrets(flat)
	}
	return flat, nil
}

// GetValue loads the config at path and returns the value for a
// dot-separated key. Secrets are masked.
func GetValue(path, key string) (any, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	values, err := ListValues(cfg, true)
	if err != nil {
		return nil, err
	}
	val, ok := values[key]
	if !ok {
		return nil, fmt.Errorf("unknown config key: %s", key)
	}
	return val, nil
}

// SetValue loads the config at path, sets a dot-separated key to value,
// and saves the result. Numeric and boolean strings are coerced.
func SetValue(path, key, value string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var nested map[string]any
	if err := json.Unmarshal(data, &nested); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	flat := Flatten(nested)
	if _, ok := flat[key]; !ok {
		return fmt.Errorf("unknown config key: %s", key)
	}
	flat[key] = coerce(value)

	merged, err := json.Marshal(Unflatten(flat))
	if err != nil {
		return fmt.Errorf("marshal updated config: %w", err)
	}
	updated := &Config{}
	if err := json.Unmarshal(merged, updated); err != nil {
		return fmt.Errorf("unmarshal updated config: %w", err)
	}
	return Save(path, updated)
}

// coerce converts a string value to bool or number when it parses as one.
func coerce(value string) any {
	if value == "true" {
		return true
	}
	if value == "false" {
		return false
	}
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return value
}
