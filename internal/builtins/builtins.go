// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Package builtins marshals the internal metric collectors (dcos health, dcos history)
package builtins

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/circonus-labs/circonus-dcos-agent/internal/builtins/collector"
	"github.com/circonus-labs/circonus-dcos-agent/internal/dcos"
	cgm "github.com/circonus-labs/circonus-gometrics/v3"
	appstats "github.com/maier/go-appstats"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Builtins defines the internal metric collector manager
type Builtins struct {
	collectors map[string]collector.Collector
	logger     zerolog.Logger
	running    bool
	sync.Mutex
}

// New creates a new builtins manager
func New(ctx context.Context) (*Builtins, error) {
	b := Builtins{
		collectors: make(map[string]collector.Collector),
		logger:     log.With().Str("pkg", "builtins").Logger(),
	}

	b.logger.Info().Msg("configuring builtins")

	if err := b.configure(ctx); err != nil {
		return nil, pkgerrors.Wrap(err, "configuring builtins")
	}

	return &b, nil
}

// Run triggers internal collectors to gather metrics
func (b *Builtins) Run(ctx context.Context, id string) error {
	b.Lock()

	if len(b.collectors) == 0 {
		b.Unlock()
		return nil // nothing to do
	}

	if b.running {
		b.logger.Warn().Msg("already in progress")
		b.Unlock()
		return nil
	}

	var run []collector.Collector
	if id == "" {
		run = make([]collector.Collector, 0, len(b.collectors))
		for _, c := range b.collectors {
			run = append(run, c)
		}
	} else if c, ok := b.collectors[id]; ok {
		run = []collector.Collector{c}
	} else {
		b.logger.Warn().Str("id", id).Msg("unknown builtin")
		b.Unlock()
		return nil
	}

	b.running = true
	b.Unlock()

	start := time.Now()
	appstats.SetString("builtins.last_start", start.String())

	var wg sync.WaitGroup
	wg.Add(len(run))
	for _, c := range run {
		go func(c collector.Collector) {
			defer wg.Done()
			clog := c.Logger()
			clog.Debug().Msg("collecting")
			err := c.Collect(ctx)
			switch {
			case err == nil:
			case errors.Is(err, collector.ErrAlreadyRunning), errors.Is(err, collector.ErrTTLNotExpired):
				clog.Debug().Err(err).Msg("skipped")
			default:
				appstats.MapIncrementInt("builtins", "errors")
				clog.Error().Err(err).Msg(c.ID())
			}
			clog.Debug().Str("duration", time.Since(start).String()).Msg("done")
		}(c)
	}

	wg.Wait()

	b.logger.Debug().Msg("all builtins done")

	appstats.SetString("builtins.last_end", time.Now().String())
	appstats.SetString("builtins.last_duration", time.Since(start).String())

	b.Lock()
	b.running = false
	b.Unlock()

	return nil
}

// IsBuiltin determines if an id is a builtin or not
func (b *Builtins) IsBuiltin(id string) bool {
	if id == "" {
		return false
	}

	b.Lock()
	defer b.Unlock()

	if len(b.collectors) == 0 {
		return false
	}

	_, ok := b.collectors[id]

	return ok
}

// Flush returns current metrics for all collectors, or for the collector
// identified by id.
func (b *Builtins) Flush(id string) *cgm.Metrics {
	b.Lock()
	defer b.Unlock()

	appstats.SetString("builtins.last_flush", time.Now().String())

	metrics := cgm.Metrics{}

	if len(b.collectors) == 0 {
		return &metrics // nothing to do
	}

	for cid, c := range b.collectors {
		if id != "" && cid != id {
			continue
		}
		for name, val := range c.Flush() {
			metrics[name] = val
		}
	}

	return &metrics
}

// Inventory returns the stats of every collector, ordered by id
func (b *Builtins) Inventory() []collector.InventoryStats {
	b.Lock()
	defer b.Unlock()

	inventory := make([]collector.InventoryStats, 0, len(b.collectors))
	for _, c := range b.collectors {
		inventory = append(inventory, c.Inventory())
	}
	sort.Slice(inventory, func(i, j int) bool { return inventory[i].ID < inventory[j].ID })

	return inventory
}

// Samples returns the raw samples behind the last metrics, by collector id.
// An empty id returns all collectors.
func (b *Builtins) Samples(id string) map[string][]dcos.Sample {
	b.Lock()
	defer b.Unlock()

	samples := make(map[string][]dcos.Sample)
	for cid, c := range b.collectors {
		if id != "" && cid != id {
			continue
		}
		s, ok := c.(collector.Sampler)
		if !ok {
			continue
		}
		if cs := s.Samples(); len(cs) > 0 {
			samples[cid] = cs
		}
	}

	return samples
}
