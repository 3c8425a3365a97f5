// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package config

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

var configExtensions = []string{".json", ".toml", ".yaml"}

// LoadConfigFile will attempt to load json|toml|yaml configuration files.
// `base` is the full path and base name of the configuration file to load.
// `target` is an interface in to which the data will be loaded. Checks for
// '<base>.json', '<base>.toml', and '<base>.yaml'. When none of them exist
// the returned error satisfies errors.Is(err, os.ErrNotExist).
func LoadConfigFile(base string, target interface{}) error {
	if base == "" {
		return errors.Errorf("invalid config file (empty)")
	}

	loaded := false

	for _, ext := range configExtensions {
		cfg := base + ext
		if _, err := os.Stat(cfg); os.IsNotExist(err) {
			continue
		}
		data, err := ioutil.ReadFile(cfg)
		if err != nil {
			return errors.Wrapf(err, "reading configuration file (%s)", cfg)
		}
		parseErrMsg := fmt.Sprintf("parsing configuration file (%s)", cfg)
		switch ext {
		case ".json":
			err = json.Unmarshal(data, target)
		case ".toml":
			err = toml.Unmarshal(data, target)
		case ".yaml":
			err = yaml.Unmarshal(data, target)
		}
		if err != nil {
			return errors.Wrap(err, parseErrMsg)
		}
		loaded = true
	}

	if !loaded {
		return errors.Wrapf(os.ErrNotExist, "no config found matching (%s%s)", base, strings.Join(configExtensions, "|"))
	}

	return nil
}
