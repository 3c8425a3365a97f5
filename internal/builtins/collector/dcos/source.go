// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package dcos

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/alecthomas/units"
	"github.com/circonus-labs/circonus-dcos-agent/internal/config/defaults"
	"github.com/circonus-labs/circonus-dcos-agent/internal/release"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

// httpSource fetches documents from a DC/OS endpoint.
type httpSource struct {
	url       string
	authToken string
	timeout   time.Duration
	client    *retryablehttp.Client
	logger    zerolog.Logger
	maxSize   int64
}

const (
	retryWaitMin = 50 * time.Millisecond
	retryWaitMax = 1 * time.Second
	maxBodyLog   = 256

	// maxDocumentSize is the largest document body accepted
	maxDocumentSize = int64(32 * units.MiB)
)

var (
	errUnexpectedStatus = errors.New("unexpected response status")
	errDocumentTooLarge = errors.New("document too large")
)

// logshim satisfies the retryablehttp Logger interface
type logshim struct {
	logh zerolog.Logger
}

func (l logshim) Printf(format string, v ...interface{}) {
	switch {
	case strings.HasPrefix(format, "[DEBUG]"):
		l.logh.Debug().Msgf(strings.TrimSpace(strings.TrimPrefix(format, "[DEBUG]")), v...)
	case strings.HasPrefix(format, "[ERR]"):
		l.logh.Error().Msgf(strings.TrimSpace(strings.TrimPrefix(format, "[ERR]")), v...)
	default:
		l.logh.Info().Msgf(format, v...)
	}
}

func newHTTPSource(opts *options, logger zerolog.Logger) (*httpSource, error) {
	s := httpSource{
		url:       opts.URL,
		authToken: opts.AuthToken,
		timeout:   defaults.FetchTimeout,
		logger:    logger,
		maxSize:   maxDocumentSize,
	}

	if opts.Timeout != "" {
		dur, err := time.ParseDuration(opts.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parsing timeout: %w", err)
		}
		if dur <= 0 {
			return nil, fmt.Errorf("invalid timeout (%s)", opts.Timeout)
		}
		s.timeout = dur
	}

	retries := defaults.FetchRetries
	if opts.Retries != nil {
		if *opts.Retries < 0 {
			return nil, fmt.Errorf("invalid retries (%d)", *opts.Retries)
		}
		retries = *opts.Retries
	}

	client := retryablehttp.NewClient()
	client.HTTPClient = &http.Client{
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			TLSClientConfig:     &tls.Config{InsecureSkipVerify: opts.TLSSkipVerify}, //nolint:gosec
			DisableCompression:  false,
			MaxIdleConnsPerHost: 1,
		},
	}
	client.Logger = logshim{logh: logger.With().Str("pkg", "retryablehttp").Logger()}
	client.RetryWaitMin = retryWaitMin
	client.RetryWaitMax = retryWaitMax
	client.RetryMax = retries
	client.RequestLogHook = func(l retryablehttp.Logger, r *http.Request, attempt int) {
		if attempt > 0 {
			logger.Warn().Str("url", r.URL.String()).Int("retry", attempt).Msg("retrying...")
		}
	}
	s.client = client

	return &s, nil
}

// Fetch returns the body of a GET request to the endpoint. Any status
// other than 200 is an error.
func (s *httpSource) Fetch(pctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(pctx, s.timeout)
	defer cancel()

	req, err := retryablehttp.NewRequest(http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("prepare request: %w", err)
	}
	req = req.WithContext(ctx)
	req.Header.Set("User-Agent", release.NAME+"/"+release.VERSION)
	req.Header.Set("Accept", "application/json")
	if s.authToken != "" {
		req.Header.Set("Authorization", "token="+s.authToken)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}

	body, err := ioutil.ReadAll(io.LimitReader(resp.Body, s.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	if int64(len(body)) > s.maxSize {
		return nil, fmt.Errorf("%w: more than %d bytes", errDocumentTooLarge, s.maxSize)
	}

	if resp.StatusCode != http.StatusOK {
		snippet := string(body)
		if len(snippet) > maxBodyLog {
			snippet = snippet[:maxBodyLog]
		}
		return nil, fmt.Errorf("%w: %s (%s)", errUnexpectedStatus, resp.Status, snippet)
	}

	s.logger.Debug().Str("url", s.url).Int("bytes", len(body)).Str("duration", time.Since(start).String()).Msg("fetched document")

	return body, nil
}
