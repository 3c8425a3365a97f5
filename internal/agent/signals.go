// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// +build linux freebsd openbsd solaris darwin

package agent

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/alecthomas/units"
	"golang.org/x/sys/unix"
)

const stacktraceBufSize = 1 * units.MiB

// handleSignals runs the signal handler thread
func (a *Agent) handleSignals() error {
	// pre-allocate a buffer
	buf := make([]byte, stacktraceBufSize)

	for {
		select {
		case <-a.groupCtx.Done():
			a.logger.Debug().Msg("signal handler, shutting down")
			return nil
		case sig := <-a.signalCh:
			a.logger.Info().Str("signal", sig.String()).Msg("Received signal")
			switch sig {
			case unix.SIGINT, unix.SIGTERM:
				a.Stop()
			case unix.SIGPIPE, unix.SIGHUP:
				// Noop
			case stackDumpSignal:
				dumpStacks(os.Stdout, sig, buf)
			default:
				a.logger.Warn().Str("signal", sig.String()).Msg("unsupported signal, ignoring")
			}
		}
	}
}

// dumpStacks writes the stack of every goroutine to w
func dumpStacks(w io.Writer, sig os.Signal, buf []byte) {
	stacklen := runtime.Stack(buf, true)
	fmt.Fprintf(w, "=== received %s ===\n*** goroutine dump...\n%s\n*** end\n", sig, buf[:stacklen])
}
