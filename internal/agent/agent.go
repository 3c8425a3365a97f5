// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Package agent wires the collectors and the listening server into the
// running process.
package agent

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/circonus-labs/circonus-dcos-agent/internal/builtins"
	"github.com/circonus-labs/circonus-dcos-agent/internal/config"
	"github.com/circonus-labs/circonus-dcos-agent/internal/release"
	"github.com/circonus-labs/circonus-dcos-agent/internal/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Agent holds the main circonus-dcos-agent process.
type Agent struct {
	group        *errgroup.Group
	groupCtx     context.Context
	groupCancel  context.CancelFunc
	builtins     *builtins.Builtins
	listenServer *server.Server
	signalCh     chan os.Signal
	logger       zerolog.Logger
}

// New returns a new agent instance.
func New() (*Agent, error) {
	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)

	var err error
	a := Agent{
		group:       g,
		groupCtx:    gctx,
		groupCancel: cancel,
		signalCh:    make(chan os.Signal, 10),
		logger:      log.With().Str("pkg", "agent").Logger(),
	}

	if err = config.Validate(); err != nil {
		cancel()
		return nil, fmt.Errorf("config validate: %w", err)
	}

	a.builtins, err = builtins.New(a.groupCtx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("init builtins: %w", err)
	}

	a.listenServer, err = server.New(a.groupCtx, a.builtins)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("init server: %w", err)
	}

	a.signalNotifySetup()

	return &a, nil
}

// Start the agent.
func (a *Agent) Start() error {
	a.group.Go(a.handleSignals)
	a.group.Go(a.listenServer.Start)

	a.logger.Debug().
		Int("pid", os.Getpid()).
		Str("name", release.NAME).
		Str("ver", release.VERSION).Msg("Starting wait")

	if err := a.group.Wait(); err != nil {
		return fmt.Errorf("start agent: %w", err)
	}
	return nil
}

// Stop cleans up and shuts down the Agent.
func (a *Agent) Stop() {
	a.stopSignalHandler()
	a.groupCancel()

	a.logger.Debug().
		Int("pid", os.Getpid()).
		Str("name", release.NAME).
		Str("ver", release.VERSION).Msg("Stopped")
}

// stopSignalHandler disables the signal handler.
func (a *Agent) stopSignalHandler() {
	signal.Stop(a.signalCh)
	signal.Reset() // so a second ctrl-c will force immediate stop
}
