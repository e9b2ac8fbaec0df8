package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/zalando/go-keyring"
)

const (
	keyringService = "taskdex"
	keyringUser    = "api-key"
	credFileName   = ".credentials"

	// APIKeyEnv overrides every stored key.
	APIKeyEnv = "TASKDEX_API_KEY"
)

// DataDir returns the path to the data directory for logs, preferences and
// the local database. Uses XDG_DATA_HOME or defaults to ~/.local/share/taskdex/
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := homedir.Dir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}

	dataDir := filepath.Join(dataHome, "taskdex")
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}

	return dataDir, nil
}

// GetAPIKey retrieves the datastore key from available sources.
// Priority: 1. TASKDEX_API_KEY env var, 2. System keyring,
// 3. Credentials file, 4. store.api_key in cfg
func GetAPIKey(cfg *Config) (string, error) {
	if key := os.Getenv(APIKeyEnv); key != "" {
		return strings.TrimSpace(key), nil
	}

	key, err := keyring.Get(keyringService, keyringUser)
	if err == nil && key != "" {
		return strings.TrimSpace(key), nil
	}

	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(filepath.Join(dataDir, credFileName))
	if err == nil {
		if key := strings.TrimSpace(string(data)); key != "" {
			return key, nil
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to read credentials file: %w", err)
	}

	if cfg != nil {
		return strings.TrimSpace(cfg.Store.APIKey), nil
	}
	return "", nil
}

// SaveAPIKey stores the datastore key securely.
// Tries system keyring first, falls back to credentials file.
func SaveAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("api key cannot be empty")
	}

	if err := keyring.Set(keyringService, keyringUser, key); err == nil {
		return nil
	}

	dataDir, err := DataDir()
	if err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(dataDir, credFileName), []byte(key), 0600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}

	return nil
}

// ClearAPIKey removes the stored key from the keyring and the credentials
// file.
func ClearAPIKey() error {
	_ = keyring.Delete(keyringService, keyringUser)

	dataDir, err := DataDir()
	if err != nil {
		return err
	}

	credPath := filepath.Join(dataDir, credFileName)
	if err := os.Remove(credPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credentials file: %w", err)
	}

	return nil
}
