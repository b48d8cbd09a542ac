// Package config provides the configuration loader for clientfn.
package config

import (
	"errors"
	"io/fs"
	"os"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"clientfn.dev/clientfn/internal/core/domain"
	"clientfn.dev/clientfn/internal/core/ports"
)

// DefaultConfigFile is the configuration file looked up when no explicit
// path is given.
const DefaultConfigFile = "clientfn.yaml"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	log ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(log ports.Logger) *Loader {
	return &Loader{log: log}
}

// clientfnFile represents the structure of the clientfn.yaml configuration
// file. Booleans whose default is true are pointers so an omitted key and
// an explicit false stay distinguishable.
type clientfnFile struct {
	Src        string `yaml:"src"`
	Out        string `yaml:"out"`
	Minify     *bool  `yaml:"minify"`
	Cleanup    *bool  `yaml:"cleanup"`
	Verbose    bool   `yaml:"verbose"`
	Transpiler string `yaml:"transpiler"`
	Target     string `yaml:"target"`
	CacheFile  string `yaml:"cache_file"`
	InfoFile   string `yaml:"info_file"`
}

// Load reads the configuration file at path, an empty path meaning
// DefaultConfigFile in the working directory. A missing file yields the
// defaults, not an error.
func (l *Loader) Load(path string) (domain.Config, error) {
	if path == "" {
		path = DefaultConfigFile
	}

	cfg := domain.DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // Path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.log.Debug("no configuration file found, using defaults")
			return cfg, nil
		}
		return domain.Config{}, zerr.With(zerr.Wrap(err, "failed to read config file"), "config_file", path)
	}

	var file clientfnFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.Config{}, zerr.With(zerr.Wrap(err, "failed to parse config file"), "config_file", path)
	}

	if file.Src != "" {
		cfg.Build.SrcDir = file.Src
	}
	if file.Out != "" {
		cfg.Build.OutDir = file.Out
	}
	if file.Minify != nil {
		cfg.Build.Minify = *file.Minify
	}
	if file.Cleanup != nil {
		cfg.Build.Cleanup = *file.Cleanup
	}
	if file.Verbose {
		cfg.Build.Verbose = true
	}
	if file.Transpiler != "" {
		cfg.Transpiler = file.Transpiler
	}
	if file.Target != "" {
		cfg.Build.Target = file.Target
	}
	if file.CacheFile != "" {
		cfg.CacheFile = file.CacheFile
	}
	if file.InfoFile != "" {
		cfg.InfoFile = file.InfoFile
	}

	if err := validate(cfg); err != nil {
		return domain.Config{}, zerr.With(err, "config_file", path)
	}

	return cfg, nil
}

func validate(cfg domain.Config) error {
	if cfg.Build.SrcDir == cfg.Build.OutDir {
		err := zerr.With(zerr.New("source and output directories must be distinct"), "src", cfg.Build.SrcDir)
		return zerr.With(err, "out", cfg.Build.OutDir)
	}
	return nil
}
