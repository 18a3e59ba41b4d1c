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

package debuglog

import (
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func Test_Configure(t *testing.T) {
	tests := []struct {
		name     string
		options  Options
		contains []string
	}{
		{
			name:    "debug",
			options: Options{Level: "debug"},
			contains: []string{
				" level=debug ",
				` msg="Initialized Logrus"`,
				" forceColors=false",
			},
		},
		{
			name:    "debug/UTC_timestamp",
			options: Options{Level: "debug"},
			contains: []string{
				` UTC"`,
			},
		},
		{
			name:    "debug/relative_filenames",
			options: Options{Level: "debug"},
			contains: []string{
				` file="util/debuglog/setup.go:`,
			},
		},
		{
			name:     "info_hides_init_message",
			options:  Options{},
			contains: []string{},
		},
	}

	// Ensure CLICOLOR_FORCE isn't set, as it would cause the test to fail.
	value, isSet := os.LookupEnv("CLICOLOR_FORCE")
	if isSet {
		assert.NoError(t, os.Unsetenv("CLICOLOR_FORCE"))
		defer func() {
			assert.NoError(t, os.Setenv("CLICOLOR_FORCE", value))
		}()
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert := assert.New(t)
			logger := logrus.New()
			var buf strings.Builder
			logger.Out = &buf
			options := test.options
			options.Logger = logger
			assert.NoError(Configure(options))
			output := buf.String()
			if len(test.contains) == 0 {
				assert.Empty(output)
			}
			for _, needle := range test.contains {
				assert.Contains(output, needle)
			}
		})
	}
}

func Test_ConfigureBadLevel(t *testing.T) {
	assert := assert.New(t)
	logger := logrus.New()
	logger.Out = new(strings.Builder)
	logger.SetLevel(logrus.WarnLevel)
	err := Configure(Options{Level: "chatty", Logger: logger})
	assert.EqualError(err, `not a valid logrus Level: "chatty"`)
	assert.Equal(logrus.WarnLevel, logger.GetLevel())
}
