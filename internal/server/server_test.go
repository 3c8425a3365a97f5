// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package server

import (
	"compress/gzip"
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/circonus-labs/circonus-dcos-agent/internal/builtins/collector"
	"github.com/circonus-labs/circonus-dcos-agent/internal/config"
	"github.com/circonus-labs/circonus-dcos-agent/internal/dcos"
	cgm "github.com/circonus-labs/circonus-gometrics/v3"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// fake collectors stub

type fakeCollectors struct {
	sync.Mutex
	metrics map[string]cgm.Metrics
	samples map[string][]dcos.Sample
	runs    []string
}

func newFakeCollectors() *fakeCollectors {
	return &fakeCollectors{
		metrics: map[string]cgm.Metrics{
			"dcos_health": {"health/cluster/units/healthy": cgm.Metric{Type: "n", Value: 2.0}},
			"dcos_history": {"history/cluster/tasks/RUNNING": cgm.Metric{Type: "n", Value: 3.0}},
		},
		samples: map[string][]dcos.Sample{},
	}
}

func (f *fakeCollectors) Run(ctx context.Context, id string) error {
	f.Lock()
	defer f.Unlock()
	f.runs = append(f.runs, id)
	return nil
}

func (f *fakeCollectors) Flush(id string) *cgm.Metrics {
	f.Lock()
	defer f.Unlock()
	metrics := cgm.Metrics{}
	for cid, m := range f.metrics {
		if id != "" && id != cid {
			continue
		}
		for k, v := range m {
			metrics[k] = v
		}
	}
	return &metrics
}

func (f *fakeCollectors) IsBuiltin(id string) bool {
	_, ok := f.metrics[id]
	return ok
}

func (f *fakeCollectors) Inventory() []collector.InventoryStats {
	return []collector.InventoryStats{
		{ID: "dcos_health", Plugin: "com.meetme.newrelic_dcos", Policy: "v2", LastMetrics: 1},
		{ID: "dcos_history", Plugin: "com.meetme.newrelic_dcos_history", Policy: "v2", LastMetrics: 1},
	}
}

func (f *fakeCollectors) Samples(id string) map[string][]dcos.Sample {
	return f.samples
}

// end fake collectors stub

func newTestServer(t *testing.T, c Collectors) *Server {
	t.Helper()
	viper.Reset()
	viper.Set(config.KeyListen, "127.0.0.1:0")
	s, err := New(context.Background(), c)
	if err != nil {
		t.Fatalf("expected NO error, got (%s)", err)
	}
	return s
}

func get(s *Server, path string, hdr map[string]string) *http.Response {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.router(w, req)
	return w.Result()
}

func TestNew(t *testing.T) {
	t.Log("Testing New")
	zerolog.SetGlobalLevel(zerolog.Disabled)
	defer viper.Reset()

	t.Log("\tnil collectors")
	{
		if _, err := New(context.Background(), nil); err == nil {
			t.Fatal("expected error")
		}
	}

	t.Log("\tdefault listen")
	{
		viper.Reset()
		s, err := New(context.Background(), newFakeCollectors())
		if err != nil {
			t.Fatalf("expected NO error, got (%s)", err)
		}
		if s.address.Port != 2609 {
			t.Fatalf("expected port 2609, got %d", s.address.Port)
		}
	}

	t.Log("\tinvalid listen")
	{
		viper.Reset()
		viper.Set(config.KeyListen, "127.0.0.1:abc")
		if _, err := New(context.Background(), newFakeCollectors()); err == nil {
			t.Fatal("expected error")
		}
	}
}

func TestRouter(t *testing.T) {
	t.Log("Testing router")
	zerolog.SetGlobalLevel(zerolog.Disabled)
	defer viper.Reset()

	s := newTestServer(t, newFakeCollectors())

	t.Log("\tbad methods")
	for _, method := range []string{"CONNECT", "DELETE", "HEAD", "OPTIONS", "POST", "PUT", "TRACE"} {
		req := httptest.NewRequest(method, "/", nil)
		w := httptest.NewRecorder()
		s.router(w, req)
		if w.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s: expected %d, got %d", method, http.StatusMethodNotAllowed, w.Code)
		}
	}

	t.Log("\tpaths")
	tests := []struct {
		path string
		code int
	}{
		{"/invalid", http.StatusNotFound},
		{"/run/unknown", http.StatusNotFound},
		{"/run/a/b", http.StatusNotFound},
		{"/inventory/x", http.StatusNotFound},
		{"/", http.StatusOK},
		{"/run", http.StatusOK},
		{"/run/", http.StatusOK},
		{"/run/dcos_health", http.StatusOK},
		{"/run/agent", http.StatusOK},
		{"/inventory", http.StatusOK},
		{"/inventory/", http.StatusOK},
		{"/stats", http.StatusOK},
		{"/prom", http.StatusNoContent},
	}
	for _, tst := range tests {
		t.Logf("\t\tGET %s -> %d", tst.path, tst.code)
		resp := get(s, tst.path, nil)
		resp.Body.Close()
		if resp.StatusCode != tst.code {
			t.Fatalf("expected %d, got %d", tst.code, resp.StatusCode)
		}
	}
}

func TestRun(t *testing.T) {
	t.Log("Testing run")
	zerolog.SetGlobalLevel(zerolog.Disabled)
	defer viper.Reset()

	fc := newFakeCollectors()
	s := newTestServer(t, fc)

	t.Log("\tall")
	{
		resp := get(s, "/run", nil)
		defer resp.Body.Close()
		var m cgm.Metrics
		if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
			t.Fatalf("expected NO error, got (%s)", err)
		}
		if len(m) != 2 {
			t.Fatalf("expected 2 metrics, got %#v", m)
		}
		if resp.Header.Get("Content-Length") == "" {
			t.Fatal("expected content length")
		}
	}

	t.Log("\tsingle collector")
	{
		resp := get(s, "/run/dcos_history", nil)
		defer resp.Body.Close()
		var m cgm.Metrics
		if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
			t.Fatalf("expected NO error, got (%s)", err)
		}
		if _, ok := m["history/cluster/tasks/RUNNING"]; !ok || len(m) != 1 {
			t.Fatalf("expected history metric only, got %#v", m)
		}
	}

	t.Log("\tgzip")
	{
		resp := get(s, "/run", map[string]string{"Accept-Encoding": "gzip"})
		defer resp.Body.Close()
		if resp.Header.Get("Content-Encoding") != "gzip" {
			t.Fatal("expected gzip encoding")
		}
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			t.Fatalf("expected NO error, got (%s)", err)
		}
		var m cgm.Metrics
		if err := json.NewDecoder(gz).Decode(&m); err != nil {
			t.Fatalf("expected NO error, got (%s)", err)
		}
		if len(m) != 2 {
			t.Fatalf("expected 2 metrics, got %#v", m)
		}
	}

	t.Log("\tagent")
	{
		resp := get(s, "/run/agent", nil)
		defer resp.Body.Close()
		var m cgm.Metrics
		if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
			t.Fatalf("expected NO error, got (%s)", err)
		}
		if _, ok := m["agent_numgc"]; !ok {
			t.Fatalf("expected agent_numgc, got %#v", m)
		}
		if _, ok := m["health/cluster/units/healthy"]; ok {
			t.Fatal("expected no collector metrics")
		}
	}

	fc.Lock()
	runs := fc.runs
	fc.Unlock()
	if len(runs) != 3 || runs[0] != "" || runs[1] != "dcos_history" {
		t.Fatalf("unexpected runs %#v", runs)
	}
}

func TestInventory(t *testing.T) {
	t.Log("Testing inventory")
	zerolog.SetGlobalLevel(zerolog.Disabled)
	defer viper.Reset()

	s := newTestServer(t, newFakeCollectors())

	resp := get(s, "/inventory", nil)
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json, got (%s)", ct)
	}
	var inv []collector.InventoryStats
	if err := json.NewDecoder(resp.Body).Decode(&inv); err != nil {
		t.Fatalf("expected NO error, got (%s)", err)
	}
	if len(inv) != 2 || inv[1].Plugin != "com.meetme.newrelic_dcos_history" {
		t.Fatalf("unexpected inventory %#v", inv)
	}
}

func TestPromOutput(t *testing.T) {
	t.Log("Testing promOutput")
	zerolog.SetGlobalLevel(zerolog.Disabled)
	defer viper.Reset()

	fc := newFakeCollectors()
	fc.samples = map[string][]dcos.Sample{
		"dcos_health": {
			{Path: "health/cluster/units/healthy", Unit: dcos.UnitTotal, Value: 2},
			{Path: "health/unit/a%2Fb/health", Unit: dcos.UnitBool, Value: 1},
		},
		"history-main": {
			{Path: "history/cluster/tasks/RUNNING_change", Unit: dcos.UnitTasks, Value: -1, Kind: dcos.DerivedRate},
		},
	}
	s := newTestServer(t, fc)

	resp := get(s, "/prom", nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("expected text/plain, got (%s)", ct)
	}

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("expected NO error, got (%s)", err)
	}
	out := string(body)

	for _, expect := range []string{
		"# TYPE dcos_health gauge\n",
		`dcos_health{kind="gauge",path="health/cluster/units/healthy",units="total"} 2` + "\n",
		`dcos_health{kind="gauge",path="health/unit/a%2Fb/health",units="bool"} 1` + "\n",
		"# TYPE history_main gauge\n",
		`history_main{kind="derive",path="history/cluster/tasks/RUNNING_change",units="tasks"} -1` + "\n",
	} {
		if !strings.Contains(out, expect) {
			t.Fatalf("expected (%s) in\n%s", expect, out)
		}
	}
	if strings.Index(out, "dcos_health") > strings.Index(out, "history_main") {
		t.Fatalf("expected families ordered by collector id\n%s", out)
	}
}

func TestStartStop(t *testing.T) {
	t.Log("Testing Start/Stop")
	zerolog.SetGlobalLevel(zerolog.Disabled)
	defer viper.Reset()

	viper.Reset()
	viper.Set(config.KeyListen, "127.0.0.1:0")

	ctx, cancel := context.WithCancel(context.Background())
	s, err := New(ctx, newFakeCollectors())
	if err != nil {
		t.Fatalf("expected NO error, got (%s)", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- s.Start()
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected NO error, got (%s)", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
