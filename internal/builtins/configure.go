// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package builtins

import (
	"context"
	"strings"

	"github.com/circonus-labs/circonus-dcos-agent/internal/builtins/collector"
	"github.com/circonus-labs/circonus-dcos-agent/internal/builtins/collector/dcos"
	"github.com/circonus-labs/circonus-dcos-agent/internal/config"
	"github.com/circonus-labs/circonus-dcos-agent/internal/config/defaults"
	appstats "github.com/maier/go-appstats"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// configure creates the enabled collectors. A collector whose options
// file is missing or invalid is disabled, an unknown collector id is an error.
func (b *Builtins) configure(ctx context.Context) error {
	ids := viper.GetStringSlice(config.KeyCollectors)
	if len(ids) == 0 {
		ids = defaults.Collectors
	}

	appstats.MapAddInt("builtins", "total", 0)

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}

		id = strings.TrimSpace(id)

		var c collector.Collector
		var err error

		switch id {
		case defaults.HealthCollector:
			c, err = dcos.NewHealth(viper.GetString(config.KeyDCOSHealthConfig))
		case defaults.HistoryCollector:
			c, err = dcos.NewHistory(viper.GetString(config.KeyDCOSHistoryConfig))
		default:
			return errors.Errorf("unknown collector (%s)", id)
		}

		if err != nil {
			b.logger.Warn().Err(err).Str("id", id).Msg("collector, disabling")
			continue
		}
		if c == nil {
			b.logger.Info().Str("id", id).Msg("no options file, collector disabled")
			continue
		}
		if _, dup := b.collectors[c.ID()]; dup {
			return errors.Errorf("duplicate collector id (%s)", c.ID())
		}

		b.collectors[c.ID()] = c
		appstats.MapIncrementInt("builtins", "total")
		b.logger.Info().Str("id", c.ID()).Msg("collector enabled")
	}

	return nil
}
