// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package health

import (
	"github.com/circonus-labs/circonus-dcos-agent/internal/dcos"
)

const prefix = "health"

// Emit records every metric of the report. All health metrics are gauges.
func (e *Extractor) Emit(r *Report, rec dcos.Recorder) {
	if r == nil || rec == nil {
		return
	}

	p := e.policy

	// cluster summary
	e.emitTally(rec, r.Summary.Units, prefix, "cluster", "units")
	for _, role := range p.Roles {
		e.emitTally(rec, r.Summary.Nodes[role], prefix, "cluster", "nodes", role.String())
	}

	for _, u := range r.Units {
		rec.RecordGauge(dcos.Path(prefix, "unit", u.Name, "health"), p.FlagUnit, dcos.Bool(u.Healthy))
		for _, n := range u.Nodes {
			rec.RecordGauge(dcos.Path(prefix, "unit", u.Name, "node", n.Name, "health"), p.FlagUnit, dcos.Bool(n.Healthy))
		}
	}

	for _, n := range r.Nodes {
		rec.RecordGauge(dcos.Path(prefix, "node", n.IP, "leader"), p.FlagUnit, dcos.Bool(n.Leader))
		rec.RecordGauge(dcos.Path(prefix, "node", n.IP, "health"), p.FlagUnit, dcos.Bool(n.Healthy))
		for _, u := range n.Units {
			rec.RecordGauge(dcos.Path(prefix, "node", n.IP, "unit", u.Name, "health"), p.FlagUnit, dcos.Bool(u.Healthy))
		}
	}
}

func (e *Extractor) emitTally(rec dcos.Recorder, t Tally, segments ...string) {
	p := e.policy
	rec.RecordGauge(dcos.Path(append(segments, "healthy")...), p.CountUnit, float64(t.Healthy))
	rec.RecordGauge(dcos.Path(append(segments, "unhealthy")...), p.CountUnit, float64(t.Unhealthy))
	if p.Percent {
		rec.RecordGauge(dcos.Path(append(segments, "health")...), p.PercentUnit, t.Percent())
	}
}

// Extract parses doc and emits its metrics, returning the parsed report.
// Nothing is recorded when parsing fails.
func (e *Extractor) Extract(doc []byte, rec dcos.Recorder) (*Report, error) {
	r, err := e.Parse(doc)
	if err != nil {
		return nil, err
	}
	e.Emit(r, rec)
	return r, nil
}
