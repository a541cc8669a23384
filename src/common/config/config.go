// Package config loads service configuration with koanf. Sources are
// applied in order, later ones winning: struct defaults, an optional YAML
// file (CONFIG_FILE), environment variables.
//
// Keys are the lower-cased environment variable names, so REDIS_ADDR maps
// to the `koanf:"redis_addr"` tag and a YAML file uses redis_addr as well.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// FileEnv names the environment variable holding the optional YAML file.
const FileEnv = "CONFIG_FILE"

// Base holds the settings every dc3 service reads.
type Base struct {
	Port            string `koanf:"port"`
	EnableTracing   bool   `koanf:"enable_tracing"`
	CollectorAddr   string `koanf:"collector_service_addr"`
	DisableProfiler bool   `koanf:"disable_profiler"`
	ServiceVersion  string `koanf:"service_version"`
}

type options struct {
	filePath string
}

type Option func(*options)

// WithFile overrides the YAML file path taken from CONFIG_FILE.
func WithFile(path string) Option {
	return func(o *options) {
		o.filePath = path
	}
}

// Load fills target, which must be a pointer to a struct already holding
// its defaults.
func Load(target any, opts ...Option) error {
	o := &options{filePath: os.Getenv(FileEnv)}
	for _, opt := range opts {
		opt(o)
	}

	k := koanf.New(".")
	if o.filePath != "" {
		if err := k.Load(file.Provider(o.filePath), yaml.Parser()); err != nil {
			return fmt.Errorf("load config file %s: %w", o.filePath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return fmt.Errorf("load env: %w", err)
	}

	if err := k.Unmarshal("", target); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}
