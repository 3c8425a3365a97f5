// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package dcos

import (
	"time"

	"github.com/circonus-labs/circonus-dcos-agent/internal/builtins/collector"
	extract "github.com/circonus-labs/circonus-dcos-agent/internal/dcos"
	"github.com/circonus-labs/circonus-dcos-agent/internal/tags"
	cgm "github.com/circonus-labs/circonus-gometrics/v3"
	"github.com/rs/zerolog"
)

// metricType of every emitted metric, circonus numeric
const metricType = "n"

// result of a successful collection
type result struct {
	metrics    cgm.Metrics
	samples    []extract.Sample
	attributes map[string]string
}

// Flush returns last metrics collected
func (c *DCOS) Flush() cgm.Metrics {
	c.Lock()
	defer c.Unlock()
	if c.lastMetrics == nil {
		c.lastMetrics = cgm.Metrics{}
	}
	return c.lastMetrics
}

// Samples returns the samples behind the last metrics collected
func (c *DCOS) Samples() []extract.Sample {
	c.Lock()
	defer c.Unlock()
	samples := make([]extract.Sample, len(c.lastSamples))
	copy(samples, c.lastSamples)
	return samples
}

// ID returns the id of the instance
func (c *DCOS) ID() string {
	return c.id
}

// Inventory returns collector stats for /inventory endpoint
func (c *DCOS) Inventory() collector.InventoryStats {
	c.Lock()
	defer c.Unlock()
	return collector.InventoryStats{
		ID:              c.id,
		Plugin:          c.plugin,
		Policy:          c.policy,
		Attributes:      c.lastAttributes,
		LastRunStart:    c.lastStart.Format(time.RFC3339Nano),
		LastRunEnd:      c.lastEnd.Format(time.RFC3339Nano),
		LastRunDuration: c.lastRunDuration.String(),
		LastError:       c.lastError,
		LastMetrics:     len(c.lastMetrics),
	}
}

// Logger returns collector's instance of logger
func (c *DCOS) Logger() zerolog.Logger {
	return c.logger
}

// addMetric converts a sample into a metric named <path>|ST[units:<unit>,<base tags>]
func (c *DCOS) addMetric(metrics *cgm.Metrics, s extract.Sample) error {
	if metrics == nil {
		return errNilMetrics
	}

	if s.Path == "" {
		return errInvalidName
	}

	metricName := tags.MetricNameWithStreamTags(s.Path, tags.WithUnits(c.baseTags, s.Unit))
	(*metrics)[metricName] = cgm.Metric{Type: metricType, Value: s.Value}

	return nil
}

// setStatus is used in Collect to set the collector status
func (c *DCOS) setStatus(res *result, err error) {
	c.Lock()
	if err == nil && res != nil {
		c.lastError = ""
		c.lastMetrics = res.metrics
		c.lastSamples = res.samples
		c.lastAttributes = res.attributes
	} else {
		if err != nil {
			c.lastError = err.Error()
		}
		// on error, ensure metrics are reset
		// do not keep returning a stale set of metrics
		c.lastMetrics = cgm.Metrics{}
		c.lastSamples = nil
	}
	if c.lastMetrics == nil {
		c.lastMetrics = cgm.Metrics{}
	}
	c.lastEnd = time.Now()
	if !c.lastStart.IsZero() {
		c.lastRunDuration = time.Since(c.lastStart)
	}
	c.running = false
	c.Unlock()
}
