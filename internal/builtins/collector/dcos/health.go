// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package dcos

import (
	"fmt"
	"strconv"

	"github.com/circonus-labs/circonus-dcos-agent/internal/config/defaults"
	extract "github.com/circonus-labs/circonus-dcos-agent/internal/dcos"
	"github.com/circonus-labs/circonus-dcos-agent/internal/dcos/health"
)

type healthExtractor struct {
	*health.Extractor
}

func (h healthExtractor) extract(doc []byte, rec extract.Recorder) (map[string]string, error) {
	r, err := h.Extract(doc, rec)
	if err != nil {
		return nil, err
	}
	return map[string]string{
		"units": strconv.Itoa(len(r.Units)),
		"nodes": strconv.Itoa(len(r.Nodes)),
	}, nil
}

func newHealth(cfgBaseName string, src DocumentSource) (*DCOS, error) {
	pkgID := "builtins.dcos.health"

	opts, err := loadOptions(pkgID, cfgBaseName)
	if err != nil || opts == nil {
		return nil, err
	}

	if opts.ClusterTotals != "" {
		return nil, fmt.Errorf("%s config: cluster_totals is not a health option", pkgID)
	}

	policy, err := health.PolicyByName(opts.Policy)
	if err != nil {
		return nil, fmt.Errorf("%s config: %w", pkgID, err)
	}

	c, err := newDCOS(defaults.HealthCollector, pkgID, opts, src)
	if err != nil {
		return nil, err
	}

	c.plugin = policy.GUID
	c.policy = policy.Name
	c.extractor = healthExtractor{health.New(policy)}

	c.logger.Debug().Str("base", cfgBaseName).Str("url", opts.URL).Str("policy", c.policy).Msg("loaded config")

	return c, nil
}
