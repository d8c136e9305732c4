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
package termio

import (
	"bytes"
	"strings"
	"testing"
)

func Test_AnsiEscape_00(t *testing.T) {
	escape := BoldAnsiEscape().FgColour(TERM_RED).BgColour(TERM_WHITE).Build()
	//
	if escape != "\033[1;31;47m" {
		t.Errorf("unexpected escape %q", escape)
	}
	//
	if e := NewAnsiEscape().FgColour(TERM_BLUE).Build(); e != "\033[34m" {
		t.Errorf("unexpected escape %q", e)
	}
}

func Test_TablePrinter_00(t *testing.T) {
	var buf bytes.Buffer
	//
	tp := NewTablePrinter(2, 2)
	tp.SetRow(0, "t", "INcue")
	tp.SetRow(1, "12", "3")
	tp.AnsiEscapes(false)
	//
	if err := tp.Print(&buf); err != nil {
		t.Fatal(err)
	}
	//
	expected := strings.Join([]string{
		"+----+-------+",
		"|  t | INcue |",
		"+----+-------+",
		"| 12 |     3 |",
		"+----+-------+",
		""}, "\n")
	//
	if buf.String() != expected {
		t.Errorf("unexpected table:\n%s", buf.String())
	}
}

func Test_TablePrinter_01(t *testing.T) {
	var buf bytes.Buffer
	//
	tp := NewTablePrinter(1, 1)
	tp.Set(0, 0, "0101 [0, 2]")
	tp.SetMaxWidths(6)
	tp.SetEscape(0, 0, NewAnsiEscape().FgColour(TERM_GREEN))
	_ = tp.Print(&buf)
	//
	if !strings.Contains(buf.String(), "\033[32m 0101..\033[0m") {
		t.Errorf("unexpected table:\n%q", buf.String())
	}
}
