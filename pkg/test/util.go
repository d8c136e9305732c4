// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/consensys/go-hipmem/pkg/config"
	"github.com/consensys/go-hipmem/pkg/record"
	"github.com/consensys/go-hipmem/pkg/trace"
)

// TestDir determines the (relative) location of the test directory.  That is
// where the configuration, network parameters and recordings used by the
// end-to-end tests are found.
const TestDir = "../../testdata"

// ReadConfig reads a configuration file from the test directory.
func ReadConfig(t *testing.T, name string) config.Config {
	t.Helper()
	//
	cfg, err := config.Load(filepath.Join(TestDir, name))
	if err != nil {
		t.Fatal(err)
	}
	//
	return cfg
}

// ReadRecording reads a recording from the test directory, and reconstructs
// its trace using the hold times of a given configuration.
func ReadRecording(t *testing.T, name string, cfg config.Config) (*record.Recording, trace.Params, *trace.Trace) {
	t.Helper()
	//
	rec, err := record.Load(filepath.Join(TestDir, name))
	if err != nil {
		t.Fatal(err)
	}
	//
	params, err := rec.TraceParams(cfg.TraceParams(rec.SimTime))
	if err != nil {
		t.Fatal(err)
	}
	//
	pops, err := rec.Populations()
	if err != nil {
		t.Fatal(err)
	}
	//
	tr, err := trace.Reconstruct(pops, params)
	if err != nil {
		t.Fatal(err)
	}
	//
	return rec, params, tr
}

// CheckFiles checks that every named file exists in a directory and is not
// empty.
func CheckFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	//
	for _, name := range names {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("missing %s: %v", name, err)
		} else if info.Size() == 0 {
			t.Errorf("empty %s", name)
		}
	}
}
