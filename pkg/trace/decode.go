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

import (
	"github.com/consensys/go-hipmem/pkg/codec"
)

// Cell is the decoded content of one column at one instant.
type Cell struct {
	// Indicates whether any line of the column fired
	Active bool
	// Decoded value.  For one-hot columns this is the address; for binary
	// columns this is the value of the active lines.
	Value int
	// Raw active lines (ascending)
	Lines []uint
}

// Entry is a single row of the reconstructed trace.
type Entry struct {
	// Index of this entry on the time grid
	Stamp uint
	// Time (ms) of this entry
	Time float64
	// Decoded cells, indexed by column
	Cells []Cell
	// Operation beginning at this instant (if any)
	Begin Event
	// Operation ending at this instant (if any)
	End Event
}

// Cell returns the cell for the column with a given label, or false if there is
// no such column.
func (e *Entry) Cell(columns []Column, label string) (Cell, bool) {
	for i, c := range columns {
		if c.Label == label {
			return e.Cells[i], true
		}
	}
	//
	return Cell{}, false
}

// Decode converts every frame into an entry, decoding each column according to
// its kind.  Frames in which nothing fired are dropped unless KeepEmpty is set.
// Where more than one line of a one-hot column fires, the lowest is taken.
func Decode(columns []Column, frames []Frame, params Params) ([]Entry, error) {
	var entries []Entry
	//
	if err := params.Check(); err != nil {
		return nil, err
	}
	//
	for i := range frames {
		frame := &frames[i]
		//
		if !params.KeepEmpty && frame.IsEmpty() {
			continue
		}
		//
		cells := make([]Cell, len(columns))
		//
		for j, col := range columns {
			cell, err := decodeCell(col, frame.Lines[j].Elements(), params)
			if err != nil {
				return nil, err
			}
			//
			cells[j] = cell
		}
		//
		entries = append(entries, Entry{Stamp: frame.Stamp, Time: frame.Time, Cells: cells})
	}
	//
	return entries, nil
}

func decodeCell(col Column, lines []uint, params Params) (Cell, error) {
	if len(lines) == 0 {
		return Cell{}, nil
	}
	//
	switch col.Kind {
	case OneHotDecoder:
		// Line 0 is the reserved "no address" line
		return Cell{true, codec.DecodeOneHot(lines[0], 1), lines}, nil
	case OneHotStore:
		// Neuron i stores address i+1
		return Cell{true, codec.DecodeOneHot(lines[0], -1), lines}, nil
	default:
		value, err := codec.FromLines(col.Label, lines, col.Width, params.Endianness)
		if err != nil {
			return Cell{}, err
		}
		//
		return Cell{true, int(value), lines}, nil
	}
}
