// Package config holds the user options that shape completion behavior
// and supports loading them from YAML or TOML files with live reload.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Standard errors returned by the config package.
var (
	// ErrUnknownFormat indicates the options file extension is not
	// supported.
	ErrUnknownFormat = errors.New("unknown options file format")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("options store closed")
)

// Options are the user-configurable completion settings.
type Options struct {
	// UseAsyncCompletion selects the async completion behavior: items
	// carry an after-insert command and the service defers import-style
	// edits until an item is accepted.
	UseAsyncCompletion bool

	// RequestTimeout bounds each call to the analysis service.
	RequestTimeout time.Duration
}

// Default returns the default options.
func Default() Options {
	return Options{
		UseAsyncCompletion: false,
		RequestTimeout:     10 * time.Second,
	}
}

// fileOptions is the on-disk schema. Durations are strings in
// time.ParseDuration format; pointer fields distinguish absent from
// zero.
type fileOptions struct {
	UseAsyncCompletion *bool  `yaml:"useAsyncCompletion" toml:"useAsyncCompletion"`
	RequestTimeout     string `yaml:"requestTimeout" toml:"requestTimeout"`
}

// Load reads options from the file at path. The format is chosen by
// extension: .toml, or .yml/.yaml. Fields absent from the file keep
// their defaults.
func Load(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("read options: %w", err)
	}

	var file fileOptions
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &file); err != nil {
			return Default(), fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return Default(), fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return Default(), fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	opts := Default()
	if file.UseAsyncCompletion != nil {
		opts.UseAsyncCompletion = *file.UseAsyncCompletion
	}
	if file.RequestTimeout != "" {
		d, err := time.ParseDuration(file.RequestTimeout)
		if err != nil {
			return Default(), fmt.Errorf("parse %s: requestTimeout: %w", path, err)
		}
		if d > 0 {
			opts.RequestTimeout = d
		}
	}

	return opts, nil
}
