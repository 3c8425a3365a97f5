// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Package dcos provides the builtin collectors which poll the DC/OS
// health and history endpoints.
package dcos

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/circonus-labs/circonus-dcos-agent/internal/builtins/collector"
	"github.com/circonus-labs/circonus-dcos-agent/internal/config"
	"github.com/circonus-labs/circonus-dcos-agent/internal/config/defaults"
	extract "github.com/circonus-labs/circonus-dcos-agent/internal/dcos"
	"github.com/circonus-labs/circonus-dcos-agent/internal/tags"
	cgm "github.com/circonus-labs/circonus-gometrics/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DocumentSource fetches the document for one collection cycle.
type DocumentSource interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// extractor turns a document into metrics and returns attributes of the
// document worth reporting in the inventory.
type extractor interface {
	extract(doc []byte, rec extract.Recorder) (map[string]string, error)
}

// DCOS defines a DC/OS document collector.
type DCOS struct {
	pkgID           string            // package prefix used for logging and errors
	id              string            // collector id
	plugin          string            // plugin identifier of the extraction policy
	policy          string            // extraction policy name
	source          DocumentSource    // where documents are fetched from
	extractor       extractor         // document -> samples
	derive          deriveCache       // previous values of derived rate samples
	baseTags        tags.Tags         // base tags
	lastAttributes  map[string]string // attributes of the last document
	lastEnd         time.Time         // last collection end time
	lastError       string            // last collection error
	lastMetrics     cgm.Metrics       // last metrics collected
	lastSamples     []extract.Sample  // samples behind lastMetrics
	lastRunDuration time.Duration     // last collection duration
	lastStart       time.Time         // last collection start time
	logger          zerolog.Logger    // collector logging instance
	runTTL          time.Duration     // OPT ttl for collector (default is for every request)
	running         bool              // is collector currently running
	sync.Mutex
}

// options defines what elements can be overridden in a config file.
type options struct {
	ID            string `json:"id" toml:"id" yaml:"id"`
	URL           string `json:"url" toml:"url" yaml:"url"`
	AuthToken     string `json:"auth_token" toml:"auth_token" yaml:"auth_token"`
	Timeout       string `json:"timeout" toml:"timeout" yaml:"timeout"`
	RunTTL        string `json:"run_ttl" toml:"run_ttl" yaml:"run_ttl"`
	Retries       *int   `json:"retries" toml:"retries" yaml:"retries"`
	TLSSkipVerify bool   `json:"tls_skip_verify" toml:"tls_skip_verify" yaml:"tls_skip_verify"`
	Policy        string `json:"policy" toml:"policy" yaml:"policy"`
	ClusterTotals string `json:"cluster_totals" toml:"cluster_totals" yaml:"cluster_totals"`
}

var (
	errInvalidURL  = errors.New("'url' is REQUIRED in configuration")
	errInvalidName = errors.New("invalid metric, no name")
	errNilMetrics  = errors.New("invalid metric submission")
	errInvalidID   = errors.New("invalid collector id")

	validID = regexp.MustCompile("^[a-zA-Z_][a-zA-Z0-9_-]*$")
)

// reservedID is served by the agent itself on /run/agent
const reservedID = "agent"

// loadOptions reads the collector's options file. A missing file
// disables the collector (nil options, nil error).
func loadOptions(pkgID, cfgBaseName string) (*options, error) {
	var opts options
	if err := config.LoadConfigFile(cfgBaseName, &opts); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s config: %w", pkgID, err)
	}

	if opts.URL == "" {
		return nil, fmt.Errorf("%s config: %w", pkgID, errInvalidURL)
	}
	if u, err := url.Parse(opts.URL); err != nil {
		return nil, fmt.Errorf("%s config: parsing url: %w", pkgID, err)
	} else if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%s config: unsupported url scheme (%s)", pkgID, u.Scheme)
	}

	return &opts, nil
}

// newDCOS builds the collector parts shared by health and history.
func newDCOS(id, pkgID string, opts *options, src DocumentSource) (*DCOS, error) {
	c := DCOS{
		pkgID:    pkgID,
		id:       id,
		baseTags: tags.FromList(tags.GetBaseTags()),
	}

	if opts.ID != "" {
		c.id = strings.TrimSpace(opts.ID)
		if c.id == reservedID || !validID.MatchString(c.id) {
			return nil, fmt.Errorf("%s config (%s): %w", c.pkgID, c.id, errInvalidID)
		}
	}

	c.logger = log.With().Str("pkg", c.pkgID).Str("id", c.id).Logger()

	if opts.RunTTL != "" {
		dur, err := time.ParseDuration(opts.RunTTL)
		if err != nil {
			return nil, fmt.Errorf("%s parsing run_ttl: %w", c.pkgID, err)
		}
		c.runTTL = dur
	}

	if src == nil {
		hs, err := newHTTPSource(opts, c.logger)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.pkgID, err)
		}
		src = hs
	}
	c.source = src

	return &c, nil
}

func configBase(cfgBaseName, def string) string {
	if cfgBaseName != "" {
		return cfgBaseName
	}
	return def
}

// NewHealth creates a DC/OS health collector. The collector is enabled by
// its options file, dcos_health_collector.(json|toml|yaml) in the agent's
// etc directory by default, when none is found nil is returned.
func NewHealth(cfgBaseName string) (collector.Collector, error) {
	c, err := newHealth(configBase(cfgBaseName, defaults.HealthConfig), nil)
	if err != nil || c == nil {
		return nil, err
	}
	return c, nil
}

// NewHistory creates a DC/OS history collector. The collector is enabled by
// its options file, dcos_history_collector.(json|toml|yaml) in the agent's
// etc directory by default, when none is found nil is returned.
func NewHistory(cfgBaseName string) (collector.Collector, error) {
	c, err := newHistory(configBase(cfgBaseName, defaults.HistoryConfig), nil)
	if err != nil || c == nil {
		return nil, err
	}
	return c, nil
}

// Collect fetches a document and extracts its metrics.
func (c *DCOS) Collect(ctx context.Context) error {
	c.Lock()

	if c.running {
		c.logger.Warn().Msg(collector.ErrAlreadyRunning.Error())
		c.Unlock()
		return collector.ErrAlreadyRunning
	}

	if c.runTTL > time.Duration(0) {
		if time.Since(c.lastEnd) < c.runTTL {
			c.logger.Warn().Msg(collector.ErrTTLNotExpired.Error())
			c.Unlock()
			return collector.ErrTTLNotExpired
		}
	}

	c.running = true
	c.lastStart = time.Now()
	c.Unlock()

	doc, err := c.source.Fetch(ctx)
	if err != nil {
		err = fmt.Errorf("fetching document: %w", err)
		c.setStatus(nil, err)
		return err
	}

	if extract.IsEmptyDocument(doc) {
		c.logger.Debug().Str("document", string(doc)).Msg("empty document, nothing to extract")
		c.setStatus(&result{}, nil)
		return nil
	}

	cyc := c.derive.begin()
	attrs, err := c.extractor.extract(doc, cyc)
	if err != nil {
		err = fmt.Errorf("extracting metrics: %w", err)
		c.setStatus(nil, err)
		return err
	}
	c.derive.commit(cyc)

	metrics := cgm.Metrics{}
	for _, s := range cyc.Samples {
		if err := c.addMetric(&metrics, s); err != nil {
			c.logger.Warn().Err(err).Str("path", s.Path).Msg("skipping sample")
		}
	}

	c.logger.Debug().Interface("attributes", attrs).Int("metrics", len(metrics)).Msg("extracted")

	c.setStatus(&result{metrics: metrics, samples: cyc.Samples, attributes: attrs}, nil)

	return nil
}
