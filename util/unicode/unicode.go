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

// Package unicode has helpers for working with Unicode text in queries.
package unicode

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Normalize returns the NFC form of 's'. String literals in queries are
// normalized so that equivalent texts produce equal models.
func Normalize(s string) string {
	return norm.NFC.String(s)
}

// Width estimates how many terminal columns 's' occupies: the number of runes
// in its NFC form.
func Width(s string) int {
	return utf8.RuneCountInString(norm.NFC.String(s))
}
