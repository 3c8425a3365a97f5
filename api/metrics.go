// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package api

import (
	"context"
	"fmt"
)

// Metrics retrieves metrics from one or all collectors.
// NOTE: the agent treats this like any other client request and
// will *run* the collector(s) before returning metrics.
func (c *Client) Metrics(ctx context.Context, collectorID string) (*Metrics, error) {
	rpath := "/run"
	if collectorID != "" {
		if !c.cidVal.MatchString(collectorID) {
			return nil, fmt.Errorf("%s: %w", collectorID, errInvalidCollectorID)
		}
		rpath += "/" + collectorID
	}

	data, err := c.get(ctx, rpath)
	if err != nil {
		return nil, err
	}

	var v Metrics
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("json parse - metrics: %w", err)
	}

	return &v, nil
}

// AgentMetrics retrieves the agent's own runtime metrics.
func (c *Client) AgentMetrics(ctx context.Context) (*Metrics, error) {
	return c.Metrics(ctx, "agent")
}
