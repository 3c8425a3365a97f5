// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Package release holds build and identity information for the agent.
package release

import (
	"expvar"
)

const (
	// NAME is the name of this application
	NAME = "circonus-dcos-agent"
	// ENVPREFIX is the environment variable prefix
	ENVPREFIX = "CDA"
)

// vars are manipulated at link time
var (
	// COMMIT of release in git repo
	COMMIT = "none"
	// DATE of release
	DATE = "unknown"
	// TAG of release
	TAG = ""
	// VERSION of the release
	VERSION = "dev"
)

// Info contains release information
type Info struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	Tag       string `json:"tag"`
}

func init() {
	expvar.Publish("app", expvar.Func(info))
}

// Get returns the release information of the running binary.
func Get() Info {
	return Info{
		Name:      NAME,
		Version:   VERSION,
		Commit:    COMMIT,
		BuildDate: DATE,
		Tag:       TAG,
	}
}

func info() interface{} {
	i := Get()
	return &i
}
