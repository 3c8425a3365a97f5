// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// +build freebsd openbsd solaris darwin

// Signal handling for FreeBSD, OpenBSD, Darwin, and Solaris
// systems that have SIGINFO

package agent

import (
	"os/signal"

	"golang.org/x/sys/unix"
)

const stackDumpSignal = unix.SIGINFO

func (a *Agent) signalNotifySetup() {
	signal.Notify(a.signalCh, unix.SIGINT, unix.SIGTERM, unix.SIGHUP, unix.SIGPIPE, stackDumpSignal)
}
