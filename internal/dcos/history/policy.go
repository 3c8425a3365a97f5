// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package history

import (
	"fmt"
	"strings"

	"github.com/alecthomas/units"
)

// TaskState is one of the task counters carried by slaves and frameworks.
type TaskState int

const (
	TaskError TaskState = iota
	TaskFailed
	TaskKilled
	TaskFinished
	TaskLost
	TaskRunning
	TaskStaging
	TaskStarting
	numTaskStates
)

var taskStateNames = [numTaskStates]string{
	TaskError:    "ERROR",
	TaskFailed:   "FAILED",
	TaskKilled:   "KILLED",
	TaskFinished: "FINISHED",
	TaskLost:     "LOST",
	TaskRunning:  "RUNNING",
	TaskStaging:  "STAGING",
	TaskStarting: "STARTING",
}

func (s TaskState) String() string {
	if s < 0 || s >= numTaskStates {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return taskStateNames[s]
}

// Key is the document member holding the counter.
func (s TaskState) Key() string {
	return "TASK_" + s.String()
}

// Group is a resource group of a slave or framework.
type Group int

const (
	GroupOffered Group = iota
	GroupResources
	GroupUsed
	numGroups
)

var groupNames = [numGroups]string{
	GroupOffered:   "offered_resources",
	GroupResources: "resources",
	GroupUsed:      "used_resources",
}

func (g Group) String() string {
	if g < 0 || g >= numGroups {
		return fmt.Sprintf("group(%d)", int(g))
	}
	return groupNames[g]
}

// Resource is an item of a resource group.
type Resource int

const (
	ResourceCPUs Resource = iota
	ResourceMem
	ResourceDisk
	numResources
)

var resourceNames = [numResources]string{
	ResourceCPUs: "cpus",
	ResourceMem:  "mem",
	ResourceDisk: "disk",
}

func (r Resource) String() string {
	if r < 0 || r >= numResources {
		return fmt.Sprintf("resource(%d)", int(r))
	}
	return resourceNames[r]
}

// scale converts a document value to the emitted value. mem and disk
// are reported in MiB.
func (r Resource) scale(v float64) float64 {
	if r == ResourceCPUs {
		return v
	}
	return v * bytesPerMiB
}

const (
	tasksGroup  = "tasks"
	bytesPerMiB = float64(units.MiB)
)

var (
	slaveGroups     = []Group{GroupOffered, GroupResources, GroupUsed}
	frameworkGroups = []Group{GroupOffered, GroupUsed}
)

// ClusterTotals selects which records feed the cluster aggregate.
type ClusterTotals int

const (
	// TotalsSlaves sums slave records only.
	TotalsSlaves ClusterTotals = iota
	// TotalsSlavesFrameworks sums slave and framework records.
	TotalsSlavesFrameworks
)

func (c ClusterTotals) String() string {
	switch c {
	case TotalsSlaves:
		return "slaves"
	case TotalsSlavesFrameworks:
		return "slaves+frameworks"
	default:
		return fmt.Sprintf("totals(%d)", int(c))
	}
}

// ParseClusterTotals maps a configured name to a ClusterTotals, "" is slaves.
func ParseClusterTotals(s string) (ClusterTotals, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "slaves":
		return TotalsSlaves, nil
	case "slaves+frameworks":
		return TotalsSlavesFrameworks, nil
	default:
		return TotalsSlaves, fmt.Errorf("unknown cluster totals (%s)", s)
	}
}

// Policy identifies the plugin and selects how cluster totals are built.
type Policy struct {
	Name          string
	GUID          string
	ClusterTotals ClusterTotals
}

var (
	// PolicyV1 reports under the identifier shared with the health plugin.
	PolicyV1 = Policy{
		Name:          "v1",
		GUID:          "com.meetme.newrelic_dcos",
		ClusterTotals: TotalsSlaves,
	}

	// PolicyV2 reports under its own identifier.
	PolicyV2 = Policy{
		Name:          "v2",
		GUID:          "com.meetme.newrelic_dcos_history",
		ClusterTotals: TotalsSlaves,
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
		return Policy{}, fmt.Errorf("unknown history policy (%s)", name)
	}
}
