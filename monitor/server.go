// Copyright (C) 2015  Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package monitor

import (
	_ "expvar" // Go documentation recommended usage
	"fmt"
	"net/http"
	_ "net/http/pprof" // Go documentation recommended usage

	"github.com/aristanetworks/goimmutable/logger"
	"github.com/aristanetworks/goimmutable/monitor/internal/loglevel"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server represents a monitoring server
type Server interface {
	Run()
}

// server contains information for the monitoring server
type server struct {
	// Server name e.g. host[:port]
	serverName string
	registry   *prometheus.Registry
	log        logger.Logger
}

// NewServer creates a monitoring server that exposes registry (typically
// holding a CollectionStats and one RetryCounter per Ref worth watching)
// on /metrics, alongside the usual expvar/pprof/loglevel debug endpoints.
// log may be nil, in which case a failure to bind serverName is dropped
// rather than logged.
func NewServer(serverName string, registry *prometheus.Registry, log logger.Logger) Server {
	return &server{
		serverName: serverName,
		registry:   registry,
		log:        log,
	}
}

func debugHandler(w http.ResponseWriter, r *http.Request) {
	indexTmpl := `<html>
	<head>
	<title>/debug</title>
	</head>
	<body>
	<p>/debug</p>
	<div><a href="/debug/vars">vars</a></div>
	<div><a href="/debug/vars/pretty">vars (pretty)</a></div>
	<div><a href="/debug/pprof">pprof</a></div>
	<div><a href="/debug/loglevel">loglevel</a></div>
	<div><a href="/metrics">metrics</a></div>
	</body>
	</html>
	`
	fmt.Fprint(w, indexTmpl)
}

func varsPrettyHandler(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, VarsToString())
}

// Run sets up the HTTP server and its handlers, blocking until
// ListenAndServe returns.
func (s *server) Run() {
	http.HandleFunc("/debug", debugHandler)
	http.HandleFunc("/debug/vars/pretty", varsPrettyHandler)
	http.Handle("/debug/loglevel", loglevel.Handler())
	http.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	// monitoring server
	if err := http.ListenAndServe(s.serverName, nil); err != nil {
		if s.log != nil {
			s.log.Errorf("monitor: could not start server: %s", err)
		}
	}
}
