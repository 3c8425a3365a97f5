// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Package config defines options
package config

import (
	"encoding/json"
	"expvar"
	"fmt"
	"io"
	"strings"

	"github.com/circonus-labs/circonus-dcos-agent/internal/config/defaults"
	toml "github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	yaml "gopkg.in/yaml.v2"
)

// Log defines the running config.log structure.
type Log struct {
	Level  string `json:"level" yaml:"level" toml:"level"`
	Pretty bool   `json:"pretty" yaml:"pretty" toml:"pretty"`
}

// Check defines the check parameters.
type Check struct {
	Tags string `json:"tags" yaml:"tags" toml:"tags"`
}

// DCOS defines the running config.dcos structure.
type DCOS struct {
	HealthConfig  string `mapstructure:"health_config" json:"health_config" yaml:"health_config" toml:"health_config"`
	HistoryConfig string `mapstructure:"history_config" json:"history_config" yaml:"history_config" toml:"history_config"`
}

// Config defines the running config structure.
type Config struct {
	Listen     string   `json:"listen" yaml:"listen" toml:"listen"`
	Collectors []string `json:"collectors" yaml:"collectors" toml:"collectors"`
	Log        Log      `json:"log" yaml:"log" toml:"log"`
	Check      Check    `json:"check" yaml:"check" toml:"check"`
	DCOS       DCOS     `mapstructure:"dcos" json:"dcos" yaml:"dcos" toml:"dcos"`
	Debug      bool     `json:"debug" yaml:"debug" toml:"debug"`
}

// NOTE: adding a Key* MUST be reflected in the Config structures above.
const (
	// KeyDebug enables debug messages.
	KeyDebug = "debug"

	// KeyListen primary address and port to listen on.
	KeyListen = "listen"

	// KeyLogLevel logging level (panic, fatal, error, warn, info, debug, disabled).
	KeyLogLevel = "log.level"

	// KeyLogPretty output formatted log lines (for running in foreground).
	KeyLogPretty = "log.pretty"

	// KeyCollectors defines the builtin collectors to enable.
	KeyCollectors = "collectors"

	// KeyCheckTags a set of tags (cat:val,...) added to every metric as stream tags.
	KeyCheckTags = "check.tags"

	// KeyDCOSHealthConfig base name of the health collector options file.
	KeyDCOSHealthConfig = "dcos.health_config"

	// KeyDCOSHistoryConfig base name of the history collector options file.
	KeyDCOSHistoryConfig = "dcos.history_config"

	// KeyShowConfig - show configuration and exit.
	KeyShowConfig = "show-config"

	// KeyShowVersion - show version information and exit.
	KeyShowVersion = "version"
)

// Validate verifies the required portions of the configuration.
func Validate() error {
	if _, err := ParseListen(viper.GetString(KeyListen)); err != nil {
		return errors.Wrap(err, "server config")
	}

	if lvl := viper.GetString(KeyLogLevel); lvl != "" {
		if _, err := zerolog.ParseLevel(lvl); err != nil {
			return errors.Wrap(err, "log config")
		}
	}

	for _, id := range viper.GetStringSlice(KeyCollectors) {
		if !knownCollector(id) {
			return errors.Errorf("collectors config: unknown collector (%s)", id)
		}
	}

	return nil
}

func knownCollector(id string) bool {
	id = strings.TrimSpace(id)
	for _, c := range defaults.Collectors {
		if id == c {
			return true
		}
	}
	return false
}

// StatConfig adds the running config to the app stats.
func StatConfig() error {
	cfg, err := getConfig()
	if err != nil {
		return err
	}

	expvar.Publish("config", expvar.Func(func() interface{} {
		return &cfg
	}))

	return nil
}

// getConfig dumps the current configuration and returns it.
func getConfig() (*Config, error) {
	var cfg *Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "parsing config")
	}

	return cfg, nil
}

// ShowConfig prints the running configuration.
func ShowConfig(w io.Writer) error {
	var cfg *Config
	var err error
	var data []byte

	cfg, err = getConfig()
	if err != nil {
		return err
	}

	format := viper.GetString(KeyShowConfig)

	switch format {
	case "json":
		data, err = json.MarshalIndent(cfg, " ", "  ")
	case "yaml":
		data, err = yaml.Marshal(cfg)
	case "toml":
		data, err = toml.Marshal(*cfg)
	default:
		return errors.Errorf("unknown config format '%s'", format)
	}

	if err != nil {
		return errors.Wrapf(err, "formatting config (%s)", format)
	}

	fmt.Fprintln(w, string(data))
	return nil
}
