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
	"github.com/circonus-labs/circonus-dcos-agent/internal/dcos/history"
)

type historyExtractor struct {
	*history.Extractor
}

func (h historyExtractor) extract(doc []byte, rec extract.Recorder) (map[string]string, error) {
	r, err := h.Extract(doc, rec)
	if err != nil {
		return nil, err
	}
	return map[string]string{
		"cluster":    r.Cluster,
		"hostname":   r.Hostname,
		"slaves":     strconv.Itoa(len(r.Slaves)),
		"frameworks": strconv.Itoa(len(r.Frameworks)),
	}, nil
}

func newHistory(cfgBaseName string, src DocumentSource) (*DCOS, error) {
	pkgID := "builtins.dcos.history"

	opts, err := loadOptions(pkgID, cfgBaseName)
	if err != nil || opts == nil {
		return nil, err
	}

	policy, err := history.PolicyByName(opts.Policy)
	if err != nil {
		return nil, fmt.Errorf("%s config: %w", pkgID, err)
	}
	policy.ClusterTotals, err = history.ParseClusterTotals(opts.ClusterTotals)
	if err != nil {
		return nil, fmt.Errorf("%s config: %w", pkgID, err)
	}

	c, err := newDCOS(defaults.HistoryCollector, pkgID, opts, src)
	if err != nil {
		return nil, err
	}

	c.plugin = policy.GUID
	c.policy = policy.Name
	c.extractor = historyExtractor{history.New(policy)}

	c.logger.Debug().
		Str("base", cfgBaseName).
		Str("url", opts.URL).
		Str("policy", c.policy).
		Str("cluster_totals", policy.ClusterTotals.String()).
		Msg("loaded config")

	return c, nil
}
