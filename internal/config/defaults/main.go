// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Package defaults holds default values for configuration settings.
package defaults

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// Listen defaults to all ipv4 interfaces on port 2609
	// valid formats:
	//      ip:port (e.g. 127.0.0.1:12345 - listen on 127.0.0.1, port 12345)
	//      ip (e.g. 127.0.0.1 - listen on 127.0.0.1, port default)
	//      port (e.g. 12345 - listen default, port 12345)
	//
	Listen = ":2609"

	// Debug is false by default
	Debug = false

	// LogLevel set to info by default
	LogLevel = "info"

	// LogPretty colored/formatted output to stderr
	LogPretty = false

	// HealthCollector is the id of the DC/OS health collector
	HealthCollector = "dcos_health"

	// HistoryCollector is the id of the DC/OS history collector
	HistoryCollector = "dcos_history"

	// HealthConfigName is the base name of the health collector options file
	HealthConfigName = "dcos_health_collector"

	// HistoryConfigName is the base name of the history collector options file
	HistoryConfigName = "dcos_history_collector"

	// FetchTimeout for a single document request
	FetchTimeout = 10 * time.Second

	// FetchRetries for a failed document request
	FetchRetries = 2
)

var (
	// Collectors enabled when none are configured
	Collectors = []string{HealthCollector, HistoryCollector}

	// BasePath is the "base" directory
	//
	// expected installation structure:
	// base        (e.g. /opt/circonus/dcos-agent)
	//   /sbin     (e.g. /opt/circonus/dcos-agent/sbin)
	//   /etc      (e.g. /opt/circonus/dcos-agent/etc)
	BasePath = ""

	// EtcPath returns the default etc directory within base directory
	EtcPath = "" // (e.g. /opt/circonus/dcos-agent/etc)

	// HealthConfig is the default health collector options file base
	HealthConfig = "" // (e.g. /opt/circonus/dcos-agent/etc/dcos_health_collector)

	// HistoryConfig is the default history collector options file base
	HistoryConfig = "" // (e.g. /opt/circonus/dcos-agent/etc/dcos_history_collector)
)

func init() {
	var exePath string
	var resolvedExePath string
	var err error

	exePath, err = os.Executable()
	if err == nil {
		resolvedExePath, err = filepath.EvalSymlinks(exePath)
		if err == nil {
			BasePath = filepath.Clean(filepath.Join(filepath.Dir(resolvedExePath), ".."))
		}
	}

	if err != nil {
		fmt.Printf("Unable to determine path to binary %v\n", err)
		os.Exit(1)
	}

	EtcPath = filepath.Join(BasePath, "etc")
	HealthConfig = filepath.Join(EtcPath, HealthConfigName)
	HistoryConfig = filepath.Join(EtcPath, HistoryConfigName)
}
