// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package dcos

import (
	"testing"

	extract "github.com/circonus-labs/circonus-dcos-agent/internal/dcos"
)

func TestDeriveCache(t *testing.T) {
	t.Log("Testing deriveCache")

	var d deriveCache

	t.Log("\tfirst sighting")
	{
		cyc := d.begin()
		cyc.RecordGauge("a", extract.UnitTasks, 3)
		cyc.RecordDerivedRate("a_change", extract.UnitTasks, 3)
		if len(cyc.Samples) != 2 {
			t.Fatalf("expected 2 samples, got %d", len(cyc.Samples))
		}
		if s := cyc.Samples[0]; s.Kind != extract.Gauge || s.Value != 3 {
			t.Fatalf("unexpected gauge %#v", s)
		}
		if s := cyc.Samples[1]; s.Kind != extract.DerivedRate || s.Value != 0 {
			t.Fatalf("unexpected derived rate %#v", s)
		}
		d.commit(cyc)
		if d.len() != 1 {
			t.Fatalf("expected 1 cached path, got %d", d.len())
		}
	}

	t.Log("\tuncommitted cycle")
	{
		cyc := d.begin()
		cyc.RecordDerivedRate("a_change", extract.UnitTasks, 10)
		if v := cyc.Samples[0].Value; v != 7 {
			t.Fatalf("expected 7, got %v", v)
		}
	}

	t.Log("\tnext cycle derives from last commit")
	{
		cyc := d.begin()
		cyc.RecordDerivedRate("a_change", extract.UnitTasks, 1)
		cyc.RecordDerivedRate("b_change", extract.UnitTasks, 5)
		if v := cyc.Samples[0].Value; v != -2 {
			t.Fatalf("expected -2, got %v", v)
		}
		if v := cyc.Samples[1].Value; v != 0 {
			t.Fatalf("expected 0, got %v", v)
		}
		d.commit(cyc)
	}

	t.Log("\tunseen paths are dropped")
	{
		cyc := d.begin()
		cyc.RecordDerivedRate("b_change", extract.UnitTasks, 6)
		d.commit(cyc)
		if d.len() != 1 {
			t.Fatalf("expected 1 cached path, got %d", d.len())
		}
	}
}
