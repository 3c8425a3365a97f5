// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// +build go1.13

package main

import (
	"github.com/circonus-labs/circonus-dcos-agent/cmd"
)

func main() {
	cmd.Execute()
}
