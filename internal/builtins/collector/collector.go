// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Package collector defines the contract between the builtins manager
// and the metric collectors it runs.
package collector

import (
	"context"
	"errors"

	"github.com/circonus-labs/circonus-dcos-agent/internal/dcos"
	cgm "github.com/circonus-labs/circonus-gometrics/v3"
	"github.com/rs/zerolog"
)

// Collector defines the interface for builtin metric collectors
type Collector interface {
	Collect(ctx context.Context) error
	Flush() cgm.Metrics
	ID() string
	Inventory() InventoryStats
	Logger() zerolog.Logger
}

// Sampler is implemented by collectors which can return the raw samples
// behind their last metrics.
type Sampler interface {
	Samples() []dcos.Sample
}

// InventoryStats defines the stats a collector exposes for the /inventory endpoint
type InventoryStats struct {
	ID              string            `json:"name"`
	Plugin          string            `json:"plugin,omitempty"`
	Policy          string            `json:"policy,omitempty"`
	Attributes      map[string]string `json:"attributes,omitempty"`
	LastError       string            `json:"last_error"`
	LastRunDuration string            `json:"last_run_duration"`
	LastRunEnd      string            `json:"last_run_end"`
	LastRunStart    string            `json:"last_run_start"`
	LastMetrics     int               `json:"last_metrics"`
}

var (
	// ErrAlreadyRunning collector is already running
	ErrAlreadyRunning = errors.New("already running")

	// ErrTTLNotExpired collector run ttl has not expired
	ErrTTLNotExpired = errors.New("TTL not expired")
)
