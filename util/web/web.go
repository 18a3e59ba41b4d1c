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

// Package web aids in writing HTTP servers.
package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// HTTPWriter defines a way for a type to control how its returned as a HTTP
// response. Values passed to Write that implement this interface will have
// their HTTPWrite function called to generate the HTTP Response.
type HTTPWriter interface {
	HTTPWrite(w http.ResponseWriter)
}

// APIError defines an error that is destined to be a HTTP response. It is
// written as a JSON object holding the message and any extra fields.
type APIError struct {
	StatusCode int
	Message    string
	// Fields are merged into the JSON body next to "error".
	Fields map[string]interface{}
}

// NewError constructs an APIError with the supplied HTTP Status Code and
// formats the supplied msg & arguments.
func NewError(statusCode int, formatMsg string, formatParams ...interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Message:    fmt.Sprintf(formatMsg, formatParams...),
	}
}

// With returns the error with the given field added to its body.
func (a *APIError) With(key string, value interface{}) *APIError {
	if a.Fields == nil {
		a.Fields = make(map[string]interface{})
	}
	a.Fields[key] = value
	return a
}

// Error implements the standard error interface.
func (a *APIError) Error() string {
	return a.Message
}

// HTTPWrite writes this error as a JSON HTTP response.
func (a *APIError) HTTPWrite(w http.ResponseWriter) {
	body := make(map[string]interface{}, len(a.Fields)+1)
	for k, v := range a.Fields {
		body[k] = v
	}
	body["error"] = a.Message
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(a.StatusCode)
	json.NewEncoder(w).Encode(body)
}

// Ensure APIError is a HTTPWriter.
var _ HTTPWriter = &APIError{}

// WriteError will write a textual error response to the supplied
// ResponseWriter with the supplied HTTP StatusCode.
func WriteError(w http.ResponseWriter, statusCode int, formatMsg string, params ...interface{}) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(statusCode)
	fmt.Fprintf(w, formatMsg, params...)
	io.WriteString(w, "\n")
}

// Write is a helper function to write out a http response. It'll write the
// first non-nil val in the val list (so you can do things like web.Write(w,
// err, foo)) and have err returned if it was set.
func Write(w http.ResponseWriter, vals ...interface{}) {
	for _, val := range vals {
		if val == nil {
			continue
		}
		switch tv := val.(type) {
		case *APIError:
			if tv == nil {
				continue
			}
			tv.HTTPWrite(w)
		case []byte:
			w.Write(tv)
		case string:
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			io.WriteString(w, tv)
		case HTTPWriter:
			tv.HTTPWrite(w)
		case error:
			WriteError(w, http.StatusInternalServerError, "Unexpected error: %s", tv)
		default:
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(tv)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
