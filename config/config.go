// Package config is the settings store used by command-line harnesses.
// The core client never reads it; it only consumes the appkey and base
// URL a Settings resolves to.
package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	envAppKey  = "TELESOCIAL_APPKEY"
	envBaseURL = "TELESOCIAL_BASE_URL"
)

// Settings holds the two values handed to client construction.
type Settings struct {
	AppKey  string `toml:"appkey"`
	BaseURL string `toml:"base_url"`
}

// Load reads a TOML settings file. A missing file yields empty
// Settings rather than an error, so env-only setups work.
func Load(path string) (*Settings, error) {
	s := &Settings{}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Save writes the settings to a TOML file, readable only by the owner
// since the appkey is a credential.
func (s *Settings) Save(path string) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// ApplyEnv overlays TELESOCIAL_* environment variables on the
// settings, loading a .env file first when one exists.
func (s *Settings) ApplyEnv() {
	_ = godotenv.Load()
	if v := os.Getenv(envAppKey); v != "" {
		s.AppKey = v
	}
	if v := os.Getenv(envBaseURL); v != "" {
		s.BaseURL = v
	}
}

// Resolve loads the settings file and applies env overrides.
func Resolve(path string) (*Settings, error) {
	s, err := Load(path)
	if err != nil {
		return nil, err
	}
	s.ApplyEnv()
	return s, nil
}
