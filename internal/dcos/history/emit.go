// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package history

import (
	"github.com/circonus-labs/circonus-dcos-agent/internal/dcos"
)

const (
	prefix       = "history"
	changeSuffix = "_change"
)

// Emit records every metric of the report. Task counters are emitted as
// gauges and again, with a _change suffix, as derived rates.
func (e *Extractor) Emit(r *Report, rec dcos.Recorder) {
	if r == nil || rec == nil {
		return
	}

	emitAggregate(rec, &r.Totals, slaveGroups, prefix, "cluster")
	for i := range r.Frameworks {
		f := &r.Frameworks[i]
		emitAggregate(rec, &f.Aggregate, frameworkGroups, prefix, "framework", f.Name)
	}
	for i := range r.Slaves {
		s := &r.Slaves[i]
		emitAggregate(rec, &s.Aggregate, slaveGroups, prefix, "slave", s.Name)
	}
}

func emitAggregate(rec dcos.Recorder, a *Aggregate, groups []Group, segments ...string) {
	base := dcos.Path(segments...)

	for s := TaskState(0); s < numTaskStates; s++ {
		path := base + dcos.PathSeparator + dcos.Path(tasksGroup, s.String())
		rec.RecordGauge(path, dcos.UnitTasks, a.Tasks[s])
		rec.RecordDerivedRate(path+changeSuffix, dcos.UnitTasks, a.Tasks[s])
	}

	for _, g := range groups {
		for res := Resource(0); res < numResources; res++ {
			unit := dcos.UnitBytes
			if res == ResourceCPUs {
				unit = dcos.UnitCounts
			}
			path := base + dcos.PathSeparator + dcos.Path(g.String(), res.String())
			rec.RecordGauge(path, unit, a.Resources[g][res])
		}
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
