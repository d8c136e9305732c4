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
package trace

// Trace is a readable account of a simulation run: for each (retained) instant
// the decoded value of every column, along with the operations beginning and
// ending at that instant.
type Trace struct {
	Columns []Column
	Entries []Entry
	Counters
}

// Column returns the index of the column with the given label, or false if
// there is none.
func (t *Trace) Column(label string) (uint, bool) {
	for i, c := range t.Columns {
		if c.Label == label {
			return uint(i), true
		}
	}
	//
	return 0, false
}

// Find returns the entry at a given instant on the time grid, or false if that
// instant was dropped.
func (t *Trace) Find(stamp uint) (*Entry, bool) {
	for i := range t.Entries {
		if t.Entries[i].Stamp == stamp {
			return &t.Entries[i], true
		}
	}
	//
	return nil, false
}

// Reconstruct regroups recorded spikes by instant, decodes every column and
// brackets the operations observed.  Any decoding or configuration error
// aborts the whole reconstruction.
func Reconstruct(pops []Population, params Params) (*Trace, error) {
	columns, frames, err := Regroup(pops, params)
	if err != nil {
		return nil, err
	}
	//
	entries, err := Decode(columns, frames, params)
	if err != nil {
		return nil, err
	}
	//
	var (
		bracketer = NewBracketer(params)
		inCue     = indexOf(columns, "INcue")
		inCont    = indexOf(columns, "INcont")
		outCue    = indexOf(columns, "OUTcue")
		outCont   = indexOf(columns, "OUTcont")
	)
	//
	for i := range entries {
		entry := &entries[i]
		input := Classify(isActive(entry, inCue), isActive(entry, inCont))
		output := Classify(isActive(entry, outCue), isActive(entry, outCont))
		entry.Begin, entry.End = bracketer.Observe(entry.Stamp, input, output)
	}
	//
	return &Trace{columns, entries, bracketer.Counters}, nil
}

func indexOf(columns []Column, label string) int {
	for i, c := range columns {
		if c.Label == label {
			return i
		}
	}
	//
	return -1
}

func isActive(entry *Entry, col int) bool {
	return col >= 0 && entry.Cells[col].Active
}
