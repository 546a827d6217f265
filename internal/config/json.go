package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON field names, so
// a desktop user can keep a fortifile.json next to the executable instead of
// exporting environment variables.
type StructuredJSONConfig struct {
	App struct {
		MaxLoginAttempts int `json:"max_login_attempts"`
		BcryptCost       int `json:"bcrypt_cost"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Path string `json:"path"`
		} `json:"db,omitempty"`

		Files struct {
			SecureDir string `json:"secure_dir"`
		} `json:"files,omitempty"`

		Key struct {
			Path string `json:"path"`
		} `json:"key,omitempty"`
	} `json:"storage,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			MaxLoginAttempts: jsonCfg.App.MaxLoginAttempts,
			BcryptCost:       jsonCfg.App.BcryptCost,
		},
		Storage: Storage{
			DB: DB{
				Path: jsonCfg.Storage.DB.Path,
			},
			Files: Files{
				SecureDir: jsonCfg.Storage.Files.SecureDir,
			},
			Key: Key{
				Path: jsonCfg.Storage.Key.Path,
			},
		},
		JSONFilePath: "",
	}

	return cfg, nil
}
