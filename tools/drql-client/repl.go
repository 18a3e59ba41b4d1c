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

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ebay/drql/query"
	"github.com/peterh/liner"
	log "github.com/sirupsen/logrus"
)

// repl reads queries interactively. A query ends at a line ending with ';' or
// at a blank line.
func repl(ctx context.Context, engine *query.Engine) error {
	lin := liner.NewLiner()
	defer lin.Close()
	lin.SetMultiLineMode(true)
	lin.SetCtrlCAborts(true)
	var pending []string
	for {
		prompt := "drql> "
		if len(pending) > 0 {
			prompt = "   -> "
		}
		got, err := lin.Prompt(prompt)
		if err != nil {
			if err == io.EOF {
				fmt.Println()
				return nil
			}
			if err == liner.ErrPromptAborted {
				pending = nil
				continue
			}
			log.Warnf("unexpected error reading prompt: %v", err)
			continue
		}
		trimmed := strings.TrimSpace(got)
		if trimmed != "" {
			pending = append(pending, got)
		}
		if len(pending) == 0 || (trimmed != "" && !strings.HasSuffix(trimmed, ";")) {
			continue
		}
		text := strings.Join(pending, "\n")
		pending = nil
		lin.AppendHistory(text)
		evaluate(ctx, engine, os.Stdout, text)
	}
}

// evaluate parses one query typed into the repl and writes its description or
// the error to w.
func evaluate(ctx context.Context, engine *query.Engine, w io.Writer, text string) {
	model, err := engine.Parse(ctx, text, query.Options{})
	if err != nil {
		fmt.Fprintf(w, "%s\n\n", describeError(text, err))
		return
	}
	describe(w, model)
	fmt.Fprintln(w)
}
