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

// Package table formats rows of text into an aligned table for terminals.
package table

import (
	"bufio"
	"io"
	"strings"

	"github.com/ebay/drql/util/cmp"
	"github.com/ebay/drql/util/unicode"
)

// Options controls how the table is generated.
type Options int

const (
	// HeaderRow puts a divider between the first row and the rest.
	HeaderRow Options = 1 << iota
	// SkipEmpty writes nothing when there are no rows besides the header.
	SkipEmpty
	// RightJustify pads cells on the left rather than the right.
	RightJustify
)

// PrettyPrint writes 't' as a formatted table to 'dest'. Cells may span
// several lines using \n. Rows shorter than the first row are padded with
// empty cells.
func PrettyPrint(dest io.Writer, t [][]string, opts Options) {
	if len(t) == 0 {
		return
	}
	if opts&SkipEmpty != 0 && opts&HeaderRow != 0 && len(t) == 1 {
		return
	}
	cols := 0
	for _, row := range t {
		cols = cmp.MaxInt(cols, len(row))
	}
	widths := make([]int, cols)
	cells := make([][][]string, len(t))
	for r, row := range t {
		cells[r] = make([][]string, cols)
		for c := 0; c < cols; c++ {
			text := ""
			if c < len(row) {
				text = row[c]
			}
			cells[r][c] = strings.Split(text, "\n")
			for _, line := range cells[r][c] {
				widths[c] = cmp.MaxInt(widths[c], unicode.Width(line))
			}
		}
	}
	w := bufio.NewWriter(dest)
	defer w.Flush()
	for r, row := range cells {
		height := 1
		for _, cell := range row {
			height = cmp.MaxInt(height, len(cell))
		}
		for l := 0; l < height; l++ {
			for c, cell := range row {
				line := ""
				if l < len(cell) {
					line = cell[l]
				}
				pad := strings.Repeat(" ", widths[c]-unicode.Width(line))
				w.WriteString(" ")
				if opts&RightJustify != 0 {
					w.WriteString(pad + line)
				} else {
					w.WriteString(line + pad)
				}
				w.WriteString(" |")
			}
			w.WriteString("\n")
		}
		if r == 0 && opts&HeaderRow != 0 {
			for _, width := range widths {
				w.WriteString(" " + strings.Repeat("-", width) + " |")
			}
			w.WriteString("\n")
		}
	}
}
