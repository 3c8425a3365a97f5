// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package server

import (
	"os"

	"github.com/circonus-labs/circonus-dcos-agent/internal/tags"
	cgm "github.com/circonus-labs/circonus-gometrics/v3"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// agentHostStats produces metrics about the host the agent runs on and the agent process.
func (s *Server) agentHostStats(metrics cgm.Metrics, mtags []string) {
	withTags := func(extra ...string) tags.Tags {
		var ctag []string
		ctag = append(ctag, mtags...)
		ctag = append(ctag, extra...)
		return tags.FromList(ctag)
	}

	if ut, err := host.Uptime(); err != nil {
		s.logger.Error().Err(err).Msg("host uptime")
	} else {
		metrics[tags.MetricNameWithStreamTags("agent_host_uptime", withTags("units:seconds"))] = cgm.Metric{Value: ut, Type: "L"}
	}

	if pcpu, err := cpu.Counts(false); err != nil {
		s.logger.Error().Err(err).Msg("physical cores")
	} else {
		metrics[tags.MetricNameWithStreamTags("agent_host_cores", withTags("type:physical"))] = cgm.Metric{Value: pcpu, Type: "L"}
	}
	if lcpu, err := cpu.Counts(true); err != nil {
		s.logger.Error().Err(err).Msg("logical cores")
	} else {
		metrics[tags.MetricNameWithStreamTags("agent_host_cores", withTags("type:logical"))] = cgm.Metric{Value: lcpu, Type: "L"}
	}

	if ms, err := mem.VirtualMemory(); err != nil {
		s.logger.Error().Err(err).Msg("memory")
	} else {
		metrics[tags.MetricNameWithStreamTags("agent_host_memory", withTags("units:bytes"))] = cgm.Metric{Value: ms.Total, Type: "L"}
	}

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		s.logger.Error().Err(err).Msg("agent process")
		return
	}
	if threads, err := p.NumThreads(); err != nil {
		s.logger.Error().Err(err).Msg("agent process threads")
	} else {
		metrics[tags.MetricNameWithStreamTags("agent_threads", withTags())] = cgm.Metric{Value: threads, Type: "L"}
	}
	if mi, err := p.MemoryInfo(); err != nil {
		s.logger.Error().Err(err).Msg("agent process memory")
	} else {
		metrics[tags.MetricNameWithStreamTags("agent_rss", withTags("units:bytes"))] = cgm.Metric{Value: mi.RSS, Type: "L"}
	}
}
