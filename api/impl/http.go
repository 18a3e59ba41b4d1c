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

// Package impl implements the DRQL HTTP API.
package impl

import (
	"io/ioutil"
	"net/http"
	"strconv"
	"strings"

	"github.com/ebay/drql/config"
	"github.com/ebay/drql/query"
	"github.com/ebay/drql/query/lexer"
	"github.com/ebay/drql/query/semantic"
	"github.com/ebay/drql/util/web"
	"github.com/julienschmidt/httprouter"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// defaultMaxQueryBytes is used when config.API.MaxQueryBytes isn't set.
const defaultMaxQueryBytes = 64 * 1024

// New returns a new instance of the API server. The returned Server instance
// will not start handling traffic until a subsequent call to Server.Run().
// cfg.API must not be nil.
func New(cfg *config.DRQL) *Server {
	return &Server{
		cfg:    cfg,
		engine: query.NewEngine(cfg.Parser),
	}
}

// Server is an implementation of the HTTP interface to the DRQL parser.
type Server struct {
	cfg    *config.DRQL
	engine *query.Engine
}

// Run will start listening for HTTP requests. This function will block until
// the server is shutdown.
func (s *Server) Run() error {
	log.Infof("Serving HTTP on %v", s.cfg.API.HTTPAddress)
	return http.ListenAndServe(s.cfg.API.HTTPAddress, s.Handler())
}

// Handler returns the HTTP handler for all the API's endpoints.
func (s *Server) Handler() http.Handler {
	m := httprouter.New()
	m.POST("/v1/parse", s.parseHTTP)
	m.POST("/v1/tokens", s.tokensHTTP)
	// prometheus metrics
	m.Handler("GET", "/metrics", promhttp.Handler())

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Debugf("[API] %v %v", r.Method, r.URL)
		m.ServeHTTP(w, r)
	})
}

// Structure to hold the JSON response of /v1/parse.
type parseResponse struct {
	// The canonical text of the query.
	Query string          `json:"query"`
	Model *semantic.Query `json:"model"`
	// The debug report, if requested with ?debug=true and enabled in the
	// config.
	Debug string `json:"debug,omitempty"`
}

// Structure to hold one token of the /v1/tokens response.
type tokenResponse struct {
	Kind   string `json:"kind"`
	Text   string `json:"text"`
	Offset int    `json:"offset"`
}

// readQuery returns the request body, which holds the query text.
func (s *Server) readQuery(w http.ResponseWriter, r *http.Request) (string, *web.APIError) {
	limit := s.cfg.API.MaxQueryBytes
	if limit <= 0 {
		limit = defaultMaxQueryBytes
	}
	body, err := ioutil.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", web.NewError(http.StatusRequestEntityTooLarge,
				"Query is larger than the limit of %d bytes", limit)
		}
		return "", web.NewError(http.StatusBadRequest, "%v", errors.Wrap(err, "unable to read query"))
	}
	text := string(body)
	if strings.TrimSpace(text) == "" {
		return "", web.NewError(http.StatusBadRequest, "Query must be given in the request body")
	}
	return text, nil
}

// queryError converts a parse failure into an API error that locates the
// problem in the query.
func queryError(text string, err error) *web.APIError {
	apiErr := web.NewError(http.StatusBadRequest, "%v", err).With("kind", query.ErrorClass(err))
	if pos, ok := query.ErrorPosition(text, err); ok {
		apiErr.With("offset", pos.Offset).With("line", pos.Line).With("column", pos.Column)
	}
	return apiErr
}

func (s *Server) parseHTTP(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	span, ctx := opentracing.StartSpanFromContext(r.Context(), "parse")
	defer span.Finish()
	text, apiErr := s.readQuery(w, r)
	if apiErr != nil {
		web.Write(w, apiErr)
		return
	}
	opts := query.Options{}
	debug := strings.Builder{}
	if s.cfg.API.DebugQuery {
		opts.Debug, _ = strconv.ParseBool(r.URL.Query().Get("debug"))
		opts.DebugOut = &debug
	}
	model, err := s.engine.Parse(ctx, text, opts)
	if err != nil {
		web.Write(w, queryError(text, err))
		return
	}
	web.Write(w, parseResponse{
		Query: model.String(),
		Model: model,
		Debug: debug.String(),
	})
}

func (s *Server) tokensHTTP(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	text, apiErr := s.readQuery(w, r)
	if apiErr != nil {
		web.Write(w, apiErr)
		return
	}
	tokens, err := lexer.Tokenize(text)
	if err != nil {
		web.Write(w, queryError(text, err))
		return
	}
	res := make([]tokenResponse, len(tokens))
	for i, tok := range tokens {
		res[i] = tokenResponse{Kind: tok.Kind.String(), Text: tok.Text, Offset: tok.Offset}
	}
	web.Write(w, res)
}
