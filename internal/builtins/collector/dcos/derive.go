// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package dcos

import (
	extract "github.com/circonus-labs/circonus-dcos-agent/internal/dcos"
)

// deriveCache holds the raw values of derived rate samples from the last
// successful cycle, keyed by metric path.
type deriveCache struct {
	past map[string]float64
}

// cycle records the samples of one collection cycle. Derived rate
// samples are recorded as the change since the previous successful cycle,
// 0 the first time a path is seen.
type cycle struct {
	extract.Batch
	past    map[string]float64
	current map[string]float64
}

func (d *deriveCache) begin() *cycle {
	return &cycle{
		past:    d.past,
		current: make(map[string]float64, len(d.past)),
	}
}

// commit makes the cycle's raw values the reference for the next cycle,
// paths the cycle did not record are dropped.
func (d *deriveCache) commit(c *cycle) {
	d.past = c.current
}

func (d *deriveCache) len() int {
	return len(d.past)
}

func (c *cycle) RecordDerivedRate(path, unit string, value float64) {
	c.current[path] = value
	delta := 0.0
	if prev, ok := c.past[path]; ok {
		delta = value - prev
	}
	c.Batch.RecordDerivedRate(path, unit, delta)
}
