// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// +build windows

// Signal handling for Windows
// doesn't have SIGINFO or SIGUSR1, no stack dumps

package agent

import (
	"os"
	"os/signal"
)

func (a *Agent) signalNotifySetup() {
	signal.Notify(a.signalCh, os.Interrupt)
}

// handleSignals runs the signal handler thread
func (a *Agent) handleSignals() error {
	for {
		select {
		case <-a.groupCtx.Done():
			return nil
		case sig := <-a.signalCh:
			a.logger.Info().Str("signal", sig.String()).Msg("Received signal")
			if sig == os.Interrupt {
				a.Stop()
			}
		}
	}
}
