// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package health

import (
	"fmt"
	"strings"

	"github.com/circonus-labs/circonus-dcos-agent/internal/dcos"
)

// Role of a cluster node.
type Role int

const (
	RoleMaster Role = iota
	RoleAgent
	RoleAgentPublic
	numRoles
)

var roleNames = [numRoles]string{
	RoleMaster:      "master",
	RoleAgent:       "agent",
	RoleAgentPublic: "agent_public",
}

func (r Role) String() string {
	if r < 0 || r >= numRoles {
		return fmt.Sprintf("role(%d)", int(r))
	}
	return roleNames[r]
}

// ParseRole maps a role name from the health document to a Role.
func ParseRole(s string) (Role, bool) {
	for r, name := range roleNames {
		if s == name {
			return Role(r), true
		}
	}
	return 0, false
}

// Policy selects the role buckets and the shape of the emitted summary.
type Policy struct {
	Name        string // version name used in configuration
	GUID        string // plugin identifier registered with the backend
	Roles       []Role // role buckets, a node with any other role is rejected
	Percent     bool   // emit <bucket>/health percentages
	CountUnit   string // unit of healthy/unhealthy counters
	FlagUnit    string // unit of per unit/node boolean metrics
	PercentUnit string
}

const guid = "com.meetme.newrelic_dcos"

var (
	// PolicyV1 is the original two bucket variant reporting raw counts only.
	PolicyV1 = Policy{
		Name:      "v1",
		GUID:      guid,
		Roles:     []Role{RoleMaster, RoleAgent},
		Percent:   false,
		CountUnit: dcos.UnitCounts,
		FlagUnit:  dcos.UnitCounts,
	}

	// PolicyV2 adds the agent_public bucket and percentage summaries.
	PolicyV2 = Policy{
		Name:        "v2",
		GUID:        guid,
		Roles:       []Role{RoleMaster, RoleAgent, RoleAgentPublic},
		Percent:     true,
		CountUnit:   dcos.UnitTotal,
		FlagUnit:    dcos.UnitBool,
		PercentUnit: dcos.UnitPercent,
	}

	// DefaultPolicy is used when no policy is configured.
	DefaultPolicy = PolicyV2
)

// PolicyByName returns the policy for a configured version name.
func PolicyByName(name string) (Policy, error) {
	switch strings.ToLower(name) {
	case "", PolicyV2.Name:
		return PolicyV2, nil
	case PolicyV1.Name:
		return PolicyV1, nil
	default:
		return Policy{}, fmt.Errorf("unknown health policy (%s)", name)
	}
}

func (p Policy) allows(r Role) bool {
	for _, pr := range p.Roles {
		if pr == r {
			return true
		}
	}
	return false
}
