// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// AppName names both the staging directory and the config directory.
const AppName = "cxp"

// EnvDataDir overrides the staging directory location.
const EnvDataDir = "CXP_DIR"

// ErrNoDataDir is returned when the per-user data directory cannot be determined.
var ErrNoDataDir = errors.Base("can not find data dir")

// 🎨 Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// 📚 Config represents the complete configuration
type Config struct {
	DataDir string `json:"data_dir,omitempty" yaml:"data_dir,omitempty" hcl:"data_dir,optional"` // Staging directory override
	Lock    bool   `json:"lock,omitempty" yaml:"lock,omitempty" hcl:"lock,optional"`             // Serialize invocations with an advisory lock
	Quiet   bool   `json:"quiet,omitempty" yaml:"quiet,omitempty" hcl:"quiet,optional"`          // Suppress per-entry output
	Color   string `json:"color,omitempty" yaml:"color,omitempty" hcl:"color,optional"`          // auto, always or never

	location string
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{Color: ColorAuto}
}

// Location returns the file the config was loaded from, empty for defaults.
func (cfg *Config) Location() string {
	return cfg.location
}

// 🏠 DataHome returns the per-user data directory for this platform.
func DataHome() (string, error) {
	dir := xdg.DataHome
	if dir == "" || !filepath.IsAbs(dir) {
		return "", ErrNoDataDir
	}
	return dir, nil
}

// 📁 StagingDir returns the directory holding the staged batch.
func (cfg *Config) StagingDir() (string, error) {
	if cfg.DataDir != "" {
		return cfg.DataDir, nil
	}
	dataHome, err := DataHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataHome, AppName), nil
}

// DefaultPaths lists the files LoadDefault looks for, in order.
func DefaultPaths() []string {
	dir := filepath.Join(xdg.ConfigHome, AppName)
	return []string{
		filepath.Join(dir, "config.yaml"),
		filepath.Join(dir, "config.yml"),
		filepath.Join(dir, "config.json"),
		filepath.Join(dir, "config.hcl"),
	}
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data, path)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}
	cfg.location = path

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 LoadDefault loads the first config file found in DefaultPaths. A missing
// file is not an error.
func LoadDefault(ctx context.Context) (*Config, error) {
	for _, path := range DefaultPaths() {
		_, err := os.Stat(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, errors.Errorf("checking config file: %w", err)
		}
		return Load(ctx, path)
	}

	zerolog.Ctx(ctx).Debug().Msg("no config file found, using defaults")
	cfg := Default()
	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from the environment.
func (cfg *Config) ApplyEnv() error {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		cfg.DataDir = dir
	}
	return cfg.Validate()
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.DataDir != "" {
		if !filepath.IsAbs(cfg.DataDir) {
			return errors.Errorf("data_dir must be absolute: %s", cfg.DataDir)
		}
		cfg.DataDir = filepath.Clean(cfg.DataDir)
	}

	cfg.Color = strings.ToLower(strings.TrimSpace(cfg.Color))
	switch cfg.Color {
	case "":
		cfg.Color = ColorAuto
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.Errorf("unknown color mode %q", cfg.Color)
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	dir := cfg.DataDir
	if dir == "" {
		dir = "<default>"
	}
	return fmt.Sprintf("data_dir=%s lock=%t quiet=%t color=%s", dir, cfg.Lock, cfg.Quiet, cfg.Color)
}
