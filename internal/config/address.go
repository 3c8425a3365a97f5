// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package config

import (
	"fmt"
	"net"
	"regexp"
	"strings"

	"github.com/circonus-labs/circonus-dcos-agent/internal/config/defaults"
)

var (
	portOnly   = regexp.MustCompile(`^[0-9]+$`)
	ipv6NoPort = regexp.MustCompile(`^\[[a-fA-F0-9:]+\]$`)
)

// ParseListen verifies and parses a listen address spec, filling in the
// default address or port when only one of them is given.
func ParseListen(spec string) (*net.TCPAddr, error) {
	spec = strings.TrimSpace(spec)
	switch {
	case spec == "":
		spec = defaults.Listen
	case portOnly.MatchString(spec):
		spec = ":" + spec
	case strings.Contains(spec, ".") && !strings.Contains(spec, ":"):
		spec += defaults.Listen
	case ipv6NoPort.MatchString(spec):
		spec += defaults.Listen
	}

	host, port, err := net.SplitHostPort(spec)
	if err != nil {
		return nil, fmt.Errorf("parsing listen: %w", err)
	}

	addr, err := net.ResolveTCPAddr("tcp", net.JoinHostPort(host, port))
	if err != nil {
		return nil, fmt.Errorf("resolving listen: %w", err)
	}

	return addr, nil
}
