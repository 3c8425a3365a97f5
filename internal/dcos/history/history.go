// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Package history flattens a DC/OS state summary (slaves and frameworks)
// into cluster, per slave and per framework task and resource metrics.
package history

import (
	"fmt"
	"sort"

	"github.com/circonus-labs/circonus-dcos-agent/internal/dcos"
)

// Aggregate holds task counters and resource groups. mem and disk are
// in bytes.
type Aggregate struct {
	Tasks     [numTaskStates]float64
	Resources [numGroups][numResources]float64
}

func (a *Aggregate) add(o *Aggregate, groups []Group) {
	for s := range a.Tasks {
		a.Tasks[s] += o.Tasks[s]
	}
	for _, g := range groups {
		for r := range a.Resources[g] {
			a.Resources[g][r] += o.Resources[g][r]
		}
	}
}

// Entity is a named slave or framework.
type Entity struct {
	Name string
	Aggregate
}

// Report is the result of parsing one history document.
type Report struct {
	Policy     string
	Cluster    string
	Hostname   string
	Totals     Aggregate
	Frameworks []Entity // sorted by name
	Slaves     []Entity // sorted by hostname
}

// Extractor parses and emits history documents according to a Policy.
type Extractor struct {
	policy Policy
}

// New returns an extractor for the policy.
func New(p Policy) *Extractor {
	return &Extractor{policy: p}
}

// Parse decodes a history document and folds it into a Report. Cluster
// totals are summed over every record, a repeated name keeps the last
// record for the per entity metrics.
func (e *Extractor) Parse(doc []byte) (*Report, error) {
	obj, err := dcos.DecodeDocument(doc)
	if err != nil {
		return nil, err
	}

	r := Report{Policy: e.policy.Name}
	if err := obj.OptionalField("", "cluster", &r.Cluster); err != nil {
		return nil, err
	}
	if err := obj.OptionalField("", "hostname", &r.Hostname); err != nil {
		return nil, err
	}

	var slaves []dcos.Object
	if err := obj.Field("", "slaves", &slaves); err != nil {
		return nil, err
	}
	var frameworks []dcos.Object
	if err := obj.Field("", "frameworks", &frameworks); err != nil {
		return nil, err
	}

	bySlave := make(map[string]Entity, len(slaves))
	for i, o := range slaves {
		s, err := decodeEntity(fmt.Sprintf("slaves[%d]", i), "hostname", o, slaveGroups)
		if err != nil {
			return nil, err
		}
		r.Totals.add(&s.Aggregate, slaveGroups)
		bySlave[s.Name] = s
	}

	byFramework := make(map[string]Entity, len(frameworks))
	for i, o := range frameworks {
		f, err := decodeEntity(fmt.Sprintf("frameworks[%d]", i), "name", o, frameworkGroups)
		if err != nil {
			return nil, err
		}
		if e.policy.ClusterTotals == TotalsSlavesFrameworks {
			r.Totals.add(&f.Aggregate, frameworkGroups)
		}
		byFramework[f.Name] = f
	}

	r.Slaves = sortedEntities(bySlave)
	r.Frameworks = sortedEntities(byFramework)

	return &r, nil
}

func decodeEntity(loc, nameKey string, o dcos.Object, groups []Group) (Entity, error) {
	var ent Entity
	if err := o.Field(loc, nameKey, &ent.Name); err != nil {
		return ent, err
	}

	for s := TaskState(0); s < numTaskStates; s++ {
		if err := o.Field(loc, s.Key(), &ent.Tasks[s]); err != nil {
			return ent, err
		}
	}

	for _, g := range groups {
		gloc := dcos.Locate(loc, g.String())
		var group dcos.Object
		if err := o.Field(loc, g.String(), &group); err != nil {
			return ent, err
		}
		for res := Resource(0); res < numResources; res++ {
			var v float64
			if err := group.Field(gloc, res.String(), &v); err != nil {
				return ent, err
			}
			ent.Resources[g][res] = res.scale(v)
		}
	}

	return ent, nil
}

func sortedEntities(m map[string]Entity) []Entity {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	ents := make([]Entity, 0, len(names))
	for _, name := range names {
		ents = append(ents, m[name])
	}
	return ents
}
