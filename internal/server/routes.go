// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package server

import (
	"expvar"
	"net/http"
	"regexp"

	appstats "github.com/maier/go-appstats"
)

var (
	runPathRx       = regexp.MustCompile("^/(run(/[a-zA-Z0-9_-]*)?)?$")
	inventoryPathRx = regexp.MustCompile("^/inventory/?$")
	statsPathRx     = regexp.MustCompile("^/stats/?$")
	promPathRx      = regexp.MustCompile("^/prom/?$")
)

func (s *Server) router(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug().
		Str("method", r.Method).
		Str("url", r.URL.String()).
		Msg("request")

	appstats.IncrementInt("requests_total")

	if r.Method != http.MethodGet {
		appstats.IncrementInt("requests_bad")
		s.logger.Warn().
			Str("method", r.Method).
			Str("url", r.URL.String()).
			Msg("method not allowed")
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch {
	case runPathRx.MatchString(r.URL.Path):
		s.run(w, r)
	case inventoryPathRx.MatchString(r.URL.Path):
		s.inventory(w, r)
	case promPathRx.MatchString(r.URL.Path):
		s.promOutput(w, r)
	case statsPathRx.MatchString(r.URL.Path):
		expvar.Handler().ServeHTTP(w, r)
	default:
		appstats.IncrementInt("requests_bad")
		s.logger.Warn().
			Str("method", r.Method).
			Str("url", r.URL.String()).
			Msg("not found")
		http.NotFound(w, r)
	}
}
