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

package table

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_PrettyPrint_utf8(t *testing.T) {
	assert := assert.New(t)
	var buf strings.Builder
	PrettyPrint(&buf, [][]string{
		{"Beyonc\u00e9"},
		{"A longer thing"},
	}, RightJustify)
	assert.Equal(`
        Beyoncé |
 A longer thing |
`, "\n"+buf.String())
}

func Test_PrettyPrintTokens(t *testing.T) {
	var buf strings.Builder
	PrettyPrint(&buf, [][]string{
		{"Offset", "Kind", "Text"},
		{"0", "Keyword", "SELECT"},
		{"7", "Identifier", "r1.m2"},
	}, HeaderRow)
	assert.Equal(t, `
 Offset | Kind       | Text   |
 ------ | ---------- | ------ |
 0      | Keyword    | SELECT |
 7      | Identifier | r1.m2  |
`, "\n"+buf.String())
}

func Test_PrettyPrintRagged(t *testing.T) {
	var buf strings.Builder
	PrettyPrint(&buf, [][]string{
		{"a", "b"},
		{"multi\nline"},
	}, 0)
	assert.Equal(t, `
 a     | b |
 multi |   |
 line  |   |
`, "\n"+buf.String())
}

func Test_PrettyPrintEmpty(t *testing.T) {
	var buf strings.Builder
	PrettyPrint(&buf, nil, HeaderRow)
	assert.Equal(t, "", buf.String())
	PrettyPrint(&buf, [][]string{{"Header"}}, HeaderRow|SkipEmpty)
	assert.Equal(t, "", buf.String())
	PrettyPrint(&buf, [][]string{{"Header"}}, HeaderRow)
	assert.Equal(t, " Header |\n ------ |\n", buf.String())
}
