// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Package api is a client for the circonus-dcos-agent http api
package api

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	jsoniter "github.com/json-iterator/go"
)

// Client defines the circonus-dcos-agent api client configuration.
type Client struct {
	agentURL *url.URL
	cidVal   *regexp.Regexp
	client   *retryablehttp.Client
}

// Metric defines an individual metric.
type Metric struct {
	Value interface{} `json:"_value"`
	Type  string      `json:"_type"`
}

// Metrics holds collector metrics.
type Metrics map[string]Metric

// Inventory defines list of active collectors.
type Inventory []Collector

// Collector defines an active collector.
type Collector struct {
	ID              string            `json:"name"`
	Plugin          string            `json:"plugin,omitempty"`
	Policy          string            `json:"policy,omitempty"`
	Attributes      map[string]string `json:"attributes,omitempty"`
	LastError       string            `json:"last_error"`
	LastRunDuration string            `json:"last_run_duration"`
	LastRunEnd      string            `json:"last_run_end"`
	LastRunStart    string            `json:"last_run_start"`
	LastMetrics     int               `json:"last_metrics"`
}

const (
	defaultRetries = 2
	defaultTimeout = 30 * time.Second
)

var (
	json = jsoniter.ConfigCompatibleWithStandardLibrary

	errInvalidAgentURL     = errors.New("invalid agent URL (empty)")
	errInvalidRequestPath  = errors.New("invalid request path (empty)")
	errInvalidHTTPResponse = errors.New("invalid HTTP response")
	errInvalidCollectorID  = errors.New("invalid collector ID")
)

// New creates a new circonus-dcos-agent api client.
func New(agentURL string) (*Client, error) {
	if agentURL == "" {
		return nil, errInvalidAgentURL
	}

	u, err := url.Parse(agentURL)
	if err != nil {
		return nil, fmt.Errorf("url parse: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("url parse: unsupported scheme (%s)", u.Scheme)
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = defaultRetries
	rc.RetryWaitMin = 50 * time.Millisecond
	rc.RetryWaitMax = 500 * time.Millisecond
	rc.HTTPClient.Timeout = defaultTimeout
	rc.Logger = nil

	return &Client{
		agentURL: u,
		cidVal:   regexp.MustCompile("^[a-zA-Z0-9_-]+$"),
		client:   rc,
	}, nil
}
