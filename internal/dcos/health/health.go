// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Package health flattens a DC/OS health report (units and nodes) into
// per unit, per node and cluster wide health metrics.
package health

import (
	"fmt"
	"sort"

	"github.com/circonus-labs/circonus-dcos-agent/internal/dcos"
)

// Tally counts healthy and unhealthy members of a bucket.
type Tally struct {
	Healthy   int
	Unhealthy int
}

// With returns the tally after counting one more member.
func (t Tally) With(healthy bool) Tally {
	if healthy {
		t.Healthy++
	} else {
		t.Unhealthy++
	}
	return t
}

// Percent healthy, 0 for an empty bucket.
func (t Tally) Percent() float64 {
	return dcos.Percent(t.Healthy, t.Unhealthy)
}

// Summary is the cluster wide aggregate. Node tallies are indexed by Role.
type Summary struct {
	Units Tally
	Nodes [numRoles]Tally
}

// Check is the health of a unit on a node (or a node for a unit).
type Check struct {
	Name    string
	Healthy bool
}

// Unit health, with the health of the unit on each node.
type Unit struct {
	Name    string
	Healthy bool
	Nodes   []Check // keyed by node IP
}

// Node health, with the health of each unit on the node.
type Node struct {
	IP      string
	Role    Role
	Leader  bool
	Healthy bool
	Units   []Check // keyed by unit name
}

// Report is the result of parsing one health document.
type Report struct {
	Policy  string
	Summary Summary
	Units   []Unit // sorted by name
	Nodes   []Node // sorted by IP
}

// Extractor parses and emits health documents according to a Policy.
type Extractor struct {
	policy Policy
}

// New returns an extractor for the policy.
func New(p Policy) *Extractor {
	return &Extractor{policy: p}
}

// Parse decodes a health document and folds it into a Report.
func (e *Extractor) Parse(doc []byte) (*Report, error) {
	obj, err := dcos.DecodeDocument(doc)
	if err != nil {
		return nil, err
	}

	var units map[string]dcos.Object
	if err := obj.Field("", "Units", &units); err != nil {
		return nil, err
	}
	var nodes map[string]dcos.Object
	if err := obj.Field("", "Nodes", &nodes); err != nil {
		return nil, err
	}

	r := Report{Policy: e.policy.Name}

	byName := make(map[string]Unit, len(units))
	for _, key := range sortedKeys(units) {
		u, err := decodeUnit(dcos.Locate("Units", key), units[key])
		if err != nil {
			return nil, err
		}
		r.Summary.Units = r.Summary.Units.With(u.Healthy)
		byName[u.Name] = u
	}

	byIP := make(map[string]Node, len(nodes))
	for _, key := range sortedKeys(nodes) {
		n, err := e.decodeNode(dcos.Locate("Nodes", key), nodes[key])
		if err != nil {
			return nil, err
		}
		r.Summary.Nodes[n.Role] = r.Summary.Nodes[n.Role].With(n.Healthy)
		byIP[n.IP] = n
	}

	r.Units = make([]Unit, 0, len(byName))
	for _, name := range sortedKeys(byName) {
		r.Units = append(r.Units, byName[name])
	}
	r.Nodes = make([]Node, 0, len(byIP))
	for _, ip := range sortedKeys(byIP) {
		r.Nodes = append(r.Nodes, byIP[ip])
	}

	return &r, nil
}

func decodeUnit(loc string, o dcos.Object) (Unit, error) {
	var u Unit
	if err := o.Field(loc, "UnitName", &u.Name); err != nil {
		return u, err
	}
	var code float64
	if err := o.Field(loc, "Health", &code); err != nil {
		return u, err
	}
	u.Healthy = code == 0

	var refs []dcos.Object
	if err := o.Field(loc, "Nodes", &refs); err != nil {
		return u, err
	}
	checks, err := decodeChecks(dcos.Locate(loc, "Nodes"), "IP", refs)
	if err != nil {
		return u, err
	}
	u.Nodes = checks

	return u, nil
}

func (e *Extractor) decodeNode(loc string, o dcos.Object) (Node, error) {
	var n Node
	if err := o.Field(loc, "IP", &n.IP); err != nil {
		return n, err
	}

	var roleName string
	if err := o.Field(loc, "Role", &roleName); err != nil {
		return n, err
	}
	role, ok := ParseRole(roleName)
	if !ok || !e.policy.allows(role) {
		return n, dcos.UnexpectedShape(dcos.Locate(loc, "Role"), fmt.Errorf("unrecognized role %q", roleName))
	}
	n.Role = role

	if err := o.Field(loc, "Leader", &n.Leader); err != nil {
		return n, err
	}
	var code float64
	if err := o.Field(loc, "Health", &code); err != nil {
		return n, err
	}
	n.Healthy = code == 0

	var refs []dcos.Object
	if err := o.Field(loc, "Units", &refs); err != nil {
		return n, err
	}
	checks, err := decodeChecks(dcos.Locate(loc, "Units"), "UnitName", refs)
	if err != nil {
		return n, err
	}
	n.Units = checks

	return n, nil
}

// decodeChecks reads the nested health references of a unit or node,
// keyed by the member nameKey. A repeated key keeps the last record.
func decodeChecks(loc, nameKey string, refs []dcos.Object) ([]Check, error) {
	byName := make(map[string]bool, len(refs))
	for i, ref := range refs {
		rloc := fmt.Sprintf("%s[%d]", loc, i)
		var name string
		if err := ref.Field(rloc, nameKey, &name); err != nil {
			return nil, err
		}
		var code float64
		if err := ref.Field(rloc, "Health", &code); err != nil {
			return nil, err
		}
		byName[name] = code == 0
	}

	checks := make([]Check, 0, len(byName))
	for _, name := range sortedKeys(byName) {
		checks = append(checks, Check{Name: name, Healthy: byName[name]})
	}
	return checks, nil
}

func sortedKeys(m interface{}) []string {
	var keys []string
	switch v := m.(type) {
	case map[string]dcos.Object:
		keys = make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
	case map[string]Unit:
		keys = make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
	case map[string]Node:
		keys = make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
	case map[string]bool:
		keys = make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
