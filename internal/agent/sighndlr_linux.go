// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// +build linux

// Signal handling for Linux
// system that doesn't have SIGINFO, using SIGUSR1 instead

package agent

import (
	"os/signal"

	"golang.org/x/sys/unix"
)

const stackDumpSignal = unix.SIGUSR1

func (a *Agent) signalNotifySetup() {
	signal.Notify(a.signalCh, unix.SIGINT, unix.SIGTERM, unix.SIGHUP, unix.SIGPIPE, stackDumpSignal)
}
