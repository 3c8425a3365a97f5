// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Package server exposes the collected metrics over HTTP
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/circonus-labs/circonus-dcos-agent/internal/builtins/collector"
	"github.com/circonus-labs/circonus-dcos-agent/internal/config"
	"github.com/circonus-labs/circonus-dcos-agent/internal/config/defaults"
	"github.com/circonus-labs/circonus-dcos-agent/internal/dcos"
	cgm "github.com/circonus-labs/circonus-gometrics/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

// Collectors is the set of collectors served, satisfied by *builtins.Builtins
type Collectors interface {
	Run(ctx context.Context, id string) error
	Flush(id string) *cgm.Metrics
	IsBuiltin(id string) bool
	Inventory() []collector.InventoryStats
	Samples(id string) map[string][]dcos.Sample
}

// Server defines the listening server.
type Server struct {
	address    *net.TCPAddr
	server     *http.Server
	collectors Collectors
	group      *errgroup.Group
	groupCtx   context.Context
	logger     zerolog.Logger
}

const shutdownTimeout = 30 * time.Second

// New creates a new instance of the listening server.
func New(ctx context.Context, c Collectors) (*Server, error) {
	if c == nil {
		return nil, errors.New("invalid collectors (nil)")
	}

	g, gctx := errgroup.WithContext(ctx)
	s := Server{
		group:      g,
		groupCtx:   gctx,
		logger:     log.With().Str("pkg", "server").Logger(),
		collectors: c,
	}

	addr := viper.GetString(config.KeyListen)
	if addr == "" {
		addr = defaults.Listen
	}
	ta, err := config.ParseListen(addr)
	if err != nil {
		s.logger.Error().Err(err).Str("addr", addr).Msg("resolving address")
		return nil, fmt.Errorf("HTTP Server: %w", err)
	}

	s.address = ta
	s.server = &http.Server{
		Addr:    ta.String(),
		Handler: http.HandlerFunc(s.router),
	}
	s.server.SetKeepAlivesEnabled(false)

	return &s, nil
}

// Start the listening server, returns when the server stops.
func (s *Server) Start() error {
	s.group.Go(s.startHTTP)

	go func() {
		<-s.groupCtx.Done()
		s.Stop()
	}()

	return s.group.Wait() //nolint:wrapcheck
}

// Stop the server in an orderly, graceful fashion.
func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info().Msg("stopping HTTP server")
	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("closing HTTP server")
	}
}

func (s *Server) startHTTP() error {
	if s.address == nil || s.server == nil {
		s.logger.Debug().Msg("listen not configured, skipping server")
		return nil
	}

	s.logger.Info().Str("listen", s.address.String()).Msg("Starting")
	if err := s.server.ListenAndServe(); err != nil {
		if !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("HTTP Server, stopping agent")
			return fmt.Errorf("HTTP server: %w", err)
		}
	}
	return nil
}
