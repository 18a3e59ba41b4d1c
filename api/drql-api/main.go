// Copyright 2019 eBay Inc.
// Primary authors: Simon Fell, Diego Ongaro,
//                  Raymond Kroeker, and Sathish Kandasamy.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command drql-api runs the DRQL HTTP API server daemon.
package main

import (
	"os"

	docopt "github.com/docopt/docopt-go"
	api "github.com/ebay/drql/api/impl"
	"github.com/ebay/drql/config"
	"github.com/ebay/drql/util/debuglog"
	"github.com/ebay/drql/util/parallel"
	"github.com/ebay/drql/util/signals"
	"github.com/ebay/drql/util/tracing"
	log "github.com/sirupsen/logrus"
)

const usage = `drql-api serves the DRQL parser over HTTP.

Usage:
  drql-api [--cfg=FILE] [--log-level=LEVEL]

Options:
  --cfg=FILE          Configuration file [default: config.json]
  --log-level=LEVEL   Log level: debug, info, warn or error [default: info]

Endpoints:
  POST /v1/parse      Parse the query in the request body into its model.
  POST /v1/tokens     Split the query in the request body into tokens.
  GET  /metrics       Prometheus metrics.
`

type options struct {
	ConfigFile string `docopt:"--cfg"`
	LogLevel   string `docopt:"--log-level"`
}

func main() {
	opts, err := docopt.ParseDoc(usage)
	if err != nil {
		log.Fatalf("Error parsing command-line arguments: %v", err)
	}
	var options options
	if err := opts.Bind(&options); err != nil {
		log.Fatalf("Error binding command-line arguments: %v\nfrom: %+v", err, opts)
	}
	if err := debuglog.Configure(debuglog.Options{Level: options.LogLevel}); err != nil {
		log.Fatalf("Invalid log level: %v", err)
	}

	cfg, err := config.Load(options.ConfigFile)
	if err != nil {
		log.Fatalf("Unable to load configuration: %v", err)
	}
	if cfg.API == nil {
		log.Fatal("api field missing in config")
	}
	log.Infof("Using config: %+v", cfg)

	tracer, err := tracing.New("drql-api", cfg.Tracing)
	if err != nil {
		log.Fatalf("Unable to initialize distributed tracing: %v", err)
	}
	defer tracer.Close()

	apiServer := api.New(cfg)
	parallel.Go(func() {
		log.Infof("Server::Run returned %v", apiServer.Run())
		os.Exit(-1)
	})

	signals.WaitForQuit()
	log.Info("DRQL API server exiting")
}
