// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// +build linux freebsd openbsd solaris darwin

package agent

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/circonus-labs/circonus-dcos-agent/internal/config"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"golang.org/x/sys/unix"
)

func TestDumpStacks(t *testing.T) {
	t.Log("Testing dumpStacks")

	var buf bytes.Buffer
	dumpStacks(&buf, stackDumpSignal, make([]byte, stacktraceBufSize))

	out := buf.String()
	if !strings.Contains(out, "=== received "+stackDumpSignal.String()+" ===") {
		t.Fatalf("expected header, got %s", out)
	}
	if !strings.Contains(out, "goroutine ") {
		t.Fatalf("expected goroutine stacks, got %s", out)
	}
}

func TestHandleSignals(t *testing.T) {
	t.Log("Testing handleSignals")

	zerolog.SetGlobalLevel(zerolog.Disabled)
	defer viper.Reset()

	viper.Reset()
	viper.Set(config.KeyListen, "127.0.0.1:0")

	a, err := New()
	if err != nil {
		t.Fatalf("expected no error, got %s", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- a.handleSignals()
	}()

	a.signalCh <- unix.SIGHUP
	a.signalCh <- unix.SIGTERM

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected no error, got %s", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("signal handler did not stop")
	}

	if a.groupCtx.Err() == nil {
		t.Fatal("expected agent context cancelled")
	}
}
