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

// Package config defines the configuration of the DRQL services and tools and
// reads and writes it as JSON.
package config

import "fmt"

// DRQL is the root configuration structure. The zero value is usable: missing
// sections take their defaults.
type DRQL struct {
	// Controls the query parser and its model cache.
	Parser Parser `json:"parser"`

	// Used by drql-api only.
	API *API `json:"api,omitempty"`

	// If set, OpenTracing spans are reported to Jaeger. If nil, tracing is
	// disabled.
	Tracing *Tracing `json:"tracing,omitempty"`
}

// Parser contains configuration for the query pipeline.
type Parser struct {
	// The maximum nesting depth of parenthesized expressions and sub-selects.
	// Zero means the parser's default.
	MaxDepth int `json:"maxDepth"`

	// The number of parsed models kept in the query cache. Zero disables the
	// cache.
	CacheSize int `json:"cacheSize"`

	// The number of queries parsed at once by a batch parse. Zero means one
	// per CPU.
	BatchWorkers int `json:"batchWorkers"`
}

// API contains configuration specific to the HTTP API server.
type API struct {
	// The host:port or :port on which to serve HTTP requests (parse, metrics,
	// etc). Required.
	HTTPAddress string `json:"httpAddress"`

	// The maximum size in bytes of a query body. Zero means 64 KiB.
	MaxQueryBytes int64 `json:"maxQueryBytes"`

	// If true, parse responses include the stage timings report.
	DebugQuery bool `json:"debugQuery"`
}

// Tracing contains configuration for OpenTracing.
type Tracing struct {
	// Must be "jaeger" (for now).
	Type string `json:"type"`

	// URL of a collector that accepts jaeger.thrift over HTTP directly from
	// clients, such as "http://jaeger:14268/api/traces".
	Endpoint string `json:"endpoint"`
}

// Validate returns an error describing the first invalid setting in cfg.
func (cfg *DRQL) Validate() error {
	if cfg.Parser.MaxDepth < 0 {
		return fmt.Errorf("parser.maxDepth must not be negative, got %d", cfg.Parser.MaxDepth)
	}
	if cfg.Parser.CacheSize < 0 {
		return fmt.Errorf("parser.cacheSize must not be negative, got %d", cfg.Parser.CacheSize)
	}
	if cfg.API != nil && cfg.API.HTTPAddress == "" {
		return fmt.Errorf("api.httpAddress is required")
	}
	if cfg.Tracing != nil {
		if cfg.Tracing.Type != "jaeger" {
			return fmt.Errorf("tracing.type must be \"jaeger\", got %q", cfg.Tracing.Type)
		}
		if cfg.Tracing.Endpoint == "" {
			return fmt.Errorf("tracing.endpoint is required")
		}
	}
	return nil
}
