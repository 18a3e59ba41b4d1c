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

// Package signals helps main packages shut down cleanly.
package signals

import (
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
)

// quitSignals are the signals WaitForQuit waits for.
var quitSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// WaitForQuit blocks until the process receives SIGINT or SIGTERM.
func WaitForQuit() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, quitSignals...)
	defer signal.Stop(ch)
	sig := <-ch
	log.Infof("Received signal %v", sig)
}
