// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Package dcos holds the pieces shared by the DC/OS health and history
// extractors: the recorder contract, metric path construction, units
// and error kinds.
package dcos

// Units attached to emitted metrics.
const (
	UnitBool    = "bool"
	UnitBytes   = "bytes"
	UnitCounts  = "counts"
	UnitPercent = "percent"
	UnitTasks   = "tasks"
	UnitTotal   = "total"
)

// Kind distinguishes point-in-time values from values the host turns into a rate.
type Kind int

const (
	// Gauge is reported as-is.
	Gauge Kind = iota
	// DerivedRate is reported as the change since the previous cycle.
	DerivedRate
)

func (k Kind) String() string {
	switch k {
	case Gauge:
		return "gauge"
	case DerivedRate:
		return "derive"
	default:
		return "unknown"
	}
}

// Recorder receives the metrics emitted by an extractor.
type Recorder interface {
	RecordGauge(path, unit string, value float64)
	RecordDerivedRate(path, unit string, value float64)
}

// Sample is a single emitted metric.
type Sample struct {
	Path  string
	Unit  string
	Value float64
	Kind  Kind
}

// Batch is a Recorder which keeps samples in emission order.
type Batch struct {
	Samples []Sample
}

// RecordGauge appends a gauge sample.
func (b *Batch) RecordGauge(path, unit string, value float64) {
	b.Samples = append(b.Samples, Sample{Path: path, Unit: unit, Value: value, Kind: Gauge})
}

// RecordDerivedRate appends a sample to be derived by the host.
func (b *Batch) RecordDerivedRate(path, unit string, value float64) {
	b.Samples = append(b.Samples, Sample{Path: path, Unit: unit, Value: value, Kind: DerivedRate})
}

// Bool converts a flag into the 0/1 value emitted for boolean metrics.
func Bool(v bool) float64 {
	if v {
		return 1
	}
	return 0
}

// Percent returns 100*healthy/(healthy+unhealthy), or 0 when both are zero.
func Percent(healthy, unhealthy int) float64 {
	total := healthy + unhealthy
	if total == 0 {
		return 0
	}
	return 100 * float64(healthy) / float64(total)
}
