// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package server

import (
	"bytes"
	"compress/gzip"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/circonus-labs/circonus-dcos-agent/internal/dcos"
	"github.com/circonus-labs/circonus-dcos-agent/internal/tags"
	cgm "github.com/circonus-labs/circonus-gometrics/v3"
	jsoniter "github.com/json-iterator/go"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// agentID is the /run/<id> reserved for the agent's own metrics
const agentID = "agent"

var (
	json        = jsoniter.ConfigCompatibleWithStandardLibrary
	promInvalid = regexp.MustCompile("[^a-zA-Z0-9_:]")
)

// run handles requests to run collectors and return the metrics they emit
// handles /, /run, /run/agent or /run/<collector id>
func (s *Server) run(w http.ResponseWriter, r *http.Request) {
	id := ""
	if strings.HasPrefix(r.URL.Path, "/run/") {
		id = strings.TrimPrefix(r.URL.Path, "/run/")
	}

	metrics := cgm.Metrics{}

	switch {
	case id == agentID:
		s.agentStats(metrics, tags.GetBaseTags())
	case id == "" || s.collectors.IsBuiltin(id):
		if err := s.collectors.Run(r.Context(), id); err != nil {
			s.logger.Warn().Err(err).Str("id", id).Msg("running collectors")
		}
		if m := s.collectors.Flush(id); m != nil {
			metrics = *m
		}
	default:
		s.logger.Warn().Str("id", id).Msg("unknown item requested")
		http.NotFound(w, r)
		return
	}

	s.encodeResponse(&metrics, w, r)
}

// encodeResponse takes care of encoding the response to an HTTP request for metrics.
// The broker does not handle chunk encoded data correctly, the response is
// sent with a Content-Length. gzip is used when the request accepts it.
func (s *Server) encodeResponse(m *cgm.Metrics, w http.ResponseWriter, r *http.Request) {
	//
	// if an error occurs, it is logged and empty {} metrics are returned
	//

	w.Header().Set("Content-Type", "application/json")

	jsonData, err := json.Marshal(m)
	if err != nil {
		s.logger.Error().
			Err(err).
			Interface("metrics", m).
			Msg("encoding metrics to JSON for response")
		jsonData = []byte("{}")
	}
	data := jsonData

	acceptedEncodings := r.Header.Get("Accept-Encoding")
	if strings.Contains(acceptedEncodings, "*") || strings.Contains(acceptedEncodings, "gzip") {
		var buf bytes.Buffer
		gz := gzip.NewWriter(&buf)
		_, err := gz.Write(jsonData)
		gz.Close()
		if err != nil {
			s.logger.Error().Err(err).Msg("compressing metrics")
		} else {
			w.Header().Set("Content-Encoding", "gzip")
			data = buf.Bytes()
		}
	}

	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if _, err := w.Write(data); err != nil {
		s.logger.Error().Err(err).Msg("writing metrics to response")
		return
	}

	s.logger.Debug().Msgf("sent %d metrics", len(*m))
}

// inventory returns the current collector inventory
func (s *Server) inventory(w http.ResponseWriter, r *http.Request) {
	data, err := json.Marshal(s.collectors.Inventory())
	if err != nil {
		s.logger.Error().Err(err).Msg("encoding inventory")
		http.Error(w, "encoding inventory", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(data); err != nil {
		s.logger.Error().Err(err).Msg("writing inventory to response")
	}
}

// promOutput returns the last samples of each collector in prom format,
// one gauge family per collector with kind, path and units labels.
func (s *Server) promOutput(w http.ResponseWriter, r *http.Request) {
	samples := s.collectors.Samples("")
	if len(samples) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	ids := make([]string, 0, len(samples))
	for id := range samples {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	format := expfmt.Negotiate(r.Header)
	w.Header().Set("Content-Type", string(format))
	w.WriteHeader(http.StatusOK)

	enc := expfmt.NewEncoder(w, format)
	for _, id := range ids {
		if err := enc.Encode(metricFamily(id, samples[id])); err != nil {
			s.logger.Error().Err(err).Str("id", id).Msg("writing prom output")
			return
		}
	}
}

func metricFamily(id string, samples []dcos.Sample) *dto.MetricFamily {
	name := promInvalid.ReplaceAllString(id, "_")
	help := "DC/OS metrics collected by " + id

	mf := &dto.MetricFamily{
		Name:   &name,
		Help:   &help,
		Type:   dto.MetricType_GAUGE.Enum(),
		Metric: make([]*dto.Metric, 0, len(samples)),
	}

	for _, smp := range samples {
		value := smp.Value
		mf.Metric = append(mf.Metric, &dto.Metric{
			Label: []*dto.LabelPair{
				labelPair("kind", smp.Kind.String()),
				labelPair("path", smp.Path),
				labelPair("units", smp.Unit),
			},
			Gauge: &dto.Gauge{Value: &value},
		})
	}

	return mf
}

func labelPair(name, value string) *dto.LabelPair {
	return &dto.LabelPair{Name: &name, Value: &value}
}
