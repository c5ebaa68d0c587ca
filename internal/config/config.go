// Package config loads slotshim settings from defaults, an optional
// JSON-with-comments file and command line overrides.
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tailscale/hujson"

	"github.com/chrisuehlinger/slotshim/slot"
)

// FileName is the project config file looked up in the working directory.
const FileName = ".slotshim.json"

var (
	ErrConfigInvalid      = errors.New("invalid config")
	ErrConfigFileNotFound = errors.New("config file not found")
)

// Config holds all configuration options.
type Config struct {
	SlotAttribute     string `json:"slot_attribute,omitempty"`
	SlotIDAttribute   string `json:"slot_id_attribute,omitempty"`
	ShadowIDAttribute string `json:"shadow_id_attribute,omitempty"`
	DefaultSlot       string `json:"default_slot,omitempty"`
	HostSelector      string `json:"host_selector,omitempty"`
	LogLevel          string `json:"log_level,omitempty"`

	// Source is the config file that was loaded, empty if none.
	Source string `json:"-"`
}

// Default returns the default configuration.
func Default() Config {
	opts := slot.DefaultOptions()
	return Config{
		SlotAttribute:     opts.SlotAttribute,
		SlotIDAttribute:   opts.SlotIDAttribute,
		ShadowIDAttribute: opts.ShadowIDAttribute,
		DefaultSlot:       opts.DefaultSlot,
		HostSelector:      "[shadow-id]",
		LogLevel:          "warn",
	}
}

// LoadInput holds the inputs for Load.
type LoadInput struct {
	WorkDir    string // if empty, os.Getwd() is used
	ConfigPath string // explicit config file; must exist when set
	Overrides  Config // non-empty fields win over the file
}

// Load resolves the configuration with the following precedence (highest
// wins): defaults, the config file, overrides.
func Load(input LoadInput) (Config, error) {
	workDir := input.WorkDir
	if workDir == "" {
		var err error
		if workDir, err = os.Getwd(); err != nil {
			return Config{}, errors.Wrap(err, "cannot get working directory")
		}
	}

	cfg := Default()

	fileCfg, path, err := loadFile(workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}
	cfg = merge(cfg, fileCfg)
	cfg.Source = path

	cfg = merge(cfg, input.Overrides)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(workDir, configPath string) (Config, string, error) {
	path := configPath
	mustExist := path != ""
	if !mustExist {
		path = FileName
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if mustExist {
				return Config{}, "", errors.Wrap(ErrConfigFileNotFound, configPath)
			}
			return Config{}, "", nil
		}
		return Config{}, "", errors.Wrapf(err, "reading %s", path)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, "", errors.Wrap(err, path)
	}
	return cfg, path, nil
}

// Parse decodes a JSON-with-comments config document. Unknown keys are
// rejected.
func Parse(data []byte) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, errors.Wrapf(ErrConfigInvalid, "invalid JSONC: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(standardized, &raw); err != nil {
		return Config{}, errors.Wrapf(ErrConfigInvalid, "invalid JSON: %v", err)
	}
	for key, value := range raw {
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return Config{}, errors.Wrapf(ErrConfigInvalid, "%s must be a string", key)
		}
		if s == "" {
			return Config{}, errors.Wrapf(ErrConfigInvalid, "%s must not be empty", key)
		}
	}

	var cfg Config
	dec := json.NewDecoder(bytes.NewReader(standardized))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, errors.Wrapf(ErrConfigInvalid, "%v", err)
	}
	return cfg, nil
}

func merge(base, overlay Config) Config {
	if overlay.SlotAttribute != "" {
		base.SlotAttribute = overlay.SlotAttribute
	}
	if overlay.SlotIDAttribute != "" {
		base.SlotIDAttribute = overlay.SlotIDAttribute
	}
	if overlay.ShadowIDAttribute != "" {
		base.ShadowIDAttribute = overlay.ShadowIDAttribute
	}
	if overlay.DefaultSlot != "" {
		base.DefaultSlot = overlay.DefaultSlot
	}
	if overlay.HostSelector != "" {
		base.HostSelector = overlay.HostSelector
	}
	if overlay.LogLevel != "" {
		base.LogLevel = overlay.LogLevel
	}
	return base
}

// Validate reports the first problem with cfg, wrapped in ErrConfigInvalid.
func (c Config) Validate() error {
	if c.SlotIDAttribute == c.SlotAttribute {
		return errors.Wrapf(ErrConfigInvalid, "slot_id_attribute and slot_attribute must differ (both %q)", c.SlotAttribute)
	}
	if c.HostSelector == "" {
		return errors.Wrap(ErrConfigInvalid, "host_selector must not be empty")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(ErrConfigInvalid, "log_level: %v", err)
	}
	return nil
}

// Level returns the parsed log level. Call Validate first.
func (c Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.WarnLevel
	}
	return level
}

// SlotOptions converts the config into shim options logging to logger.
func (c Config) SlotOptions(logger logrus.FieldLogger) slot.Options {
	return slot.Options{
		SlotAttribute:     c.SlotAttribute,
		SlotIDAttribute:   c.SlotIDAttribute,
		ShadowIDAttribute: c.ShadowIDAttribute,
		DefaultSlot:       c.DefaultSlot,
		Logger:            logger,
	}
}
