// Copyright 2026 The restcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of the environment variables read by Load.
const EnvPrefix = "RESTCORE_"

// DefaultImageAttempts is the default attempt budget of an image fetch.
const DefaultImageAttempts = 3

// Config holds the configuration of a restcore client.
type Config struct {
	// Endpoint is the base URL relative paths are appended to.
	Endpoint string `koanf:"endpoint"`

	// Headers are default headers sent with every request.
	Headers map[string]string `koanf:"headers"`

	// Authorization, if set, is sent as the Authorization header.
	Authorization string `koanf:"authorization"`

	// Authentication, if set, is sent as the Authentication header.
	Authentication string `koanf:"authentication"`

	// Timeout bounds each exchange. Zero leaves timing out to the
	// underlying HTTP client.
	Timeout time.Duration `koanf:"timeout"`

	Image ImageConfig `koanf:"image"`
	Log   LogConfig   `koanf:"log"`
}

// ImageConfig configures the retrying image fetch.
type ImageConfig struct {
	// MaxAttempts is the total number of exchanges an image fetch may
	// make, the first one included.
	MaxAttempts int `koanf:"maxattempts"`

	// Backoff configures the wait between attempts. A zero Base means
	// no wait.
	Backoff BackoffConfig `koanf:"backoff"`
}

// BackoffConfig configures jittered exponential backoff.
type BackoffConfig struct {
	Base time.Duration `koanf:"base"`
	Max  time.Duration `koanf:"max"`
}

// LogConfig configures the client logger.
type LogConfig struct {
	Level  string `koanf:"level"`
	Pretty bool   `koanf:"pretty"`
}

// An Option customises Load.
type Option func(*loadOptions)

type loadOptions struct {
	files []string
}

// WithFile adds a YAML file to load after the defaults. A file that
// does not exist is skipped.
func WithFile(path string) Option {
	return func(o *loadOptions) {
		o.files = append(o.files, path)
	}
}

// Load builds a Config from defaults, the YAML files given with
// WithFile and the environment, then validates it.
//
// Environment variables are named EnvPrefix followed by the key path
// in upper case with "_" between levels, as in
// RESTCORE_IMAGE_MAXATTEMPTS. Below HEADERS_ the rest of the name is a
// single header name whose underscores become dashes, so
// RESTCORE_HEADERS_X_API_KEY sets headers["x-api-key"].
func Load(opts ...Option) (*Config, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	k := koanf.New(".")
	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("restcore/config: failed to load defaults: %w", err)
	}

	for _, path := range o.files {
		err := k.Load(file.Provider(path), yaml.Parser())
		if errors.Is(err, fs.ErrNotExist) {
			continue
		} else if err != nil {
			return nil, fmt.Errorf("restcore/config: failed to load %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: envKey,
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("restcore/config: failed to load environment: %w", err)
	}

	return unmarshal(k)
}

// Parse builds a Config from defaults overlaid with YAML document b.
// The environment is not consulted.
func Parse(b []byte) (*Config, error) {
	k := koanf.New(".")
	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("restcore/config: failed to load defaults: %w", err)
	}
	if len(b) > 0 {
		if err := k.Load(rawbytes.Provider(b), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("restcore/config: failed to parse: %w", err)
		}
	}
	return unmarshal(k)
}

// Validate reports the first problem found in the configuration.
func (c *Config) Validate() error {
	if c.Endpoint != "" && !strings.HasPrefix(c.Endpoint, "http") {
		return fmt.Errorf("restcore/config: endpoint %q is not an http(s) URL", c.Endpoint)
	}
	if c.Timeout < 0 {
		return errors.New("restcore/config: timeout must not be negative")
	}
	if c.Image.MaxAttempts < 1 {
		return errors.New("restcore/config: image.maxattempts must be at least 1")
	}
	b := c.Image.Backoff
	if b.Base < 0 {
		return errors.New("restcore/config: image.backoff.base must not be negative")
	}
	if b.Base > 0 && b.Max < b.Base {
		return errors.New("restcore/config: image.backoff.max must be at least image.backoff.base")
	}
	return nil
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"endpoint":           "",
		"timeout":            "0s",
		"image.maxattempts":  DefaultImageAttempts,
		"image.backoff.base": "0s",
		"image.backoff.max":  "0s",
		"log.level":          "info",
		"log.pretty":         false,
	}

	return k.Load(confmap.Provider(defaults, "."), nil)
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("restcore/config: failed to unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

const envHeaders = "HEADERS_"

func envKey(key, value string) (string, any) {
	key = strings.TrimPrefix(key, EnvPrefix)
	if name, ok := strings.CutPrefix(key, envHeaders); ok && name != "" {
		return "headers." + strings.ToLower(strings.ReplaceAll(name, "_", "-")), value
	}
	return strings.ReplaceAll(strings.ToLower(key), "_", "."), value
}
