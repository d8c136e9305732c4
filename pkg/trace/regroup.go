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
	"math"

	"github.com/consensys/go-hipmem/pkg/codec"
	"github.com/consensys/go-hipmem/pkg/util/collection/bit"
)

// Frame records which lines of each column were active at a single instant of
// the time grid.
type Frame struct {
	// Index of this frame on the time grid
	Stamp uint
	// Time (ms) of this frame
	Time float64
	// Active lines, indexed by column
	Lines []bit.Set
}

// IsEmpty checks whether nothing fired in this frame.
func (f *Frame) IsEmpty() bool {
	for i := range f.Lines {
		if !f.Lines[i].IsEmpty() {
			return false
		}
	}
	//
	return true
}

// Regroup reorganises per-neuron spike trains into per-instant frames, one for
// each instant 0, step, 2*step, ... below the simulation time.  Spike times are
// matched to the grid by rounding to the nearest step, and spikes falling
// outside the grid are ignored.  Line 0 of a decoder population is never
// reported.  A neuron beyond the width of its column is a decode error.
func Regroup(pops []Population, params Params) ([]Column, []Frame, error) {
	var columns []Column
	//
	if err := params.Check(); err != nil {
		return nil, nil, err
	}
	//
	nstamps := params.Stamps()
	frames := make([]Frame, nstamps)
	// Determine columns
	for _, pop := range pops {
		cols, _ := Columns(pop, params)
		columns = append(columns, cols...)
	}
	//
	for i := range frames {
		frames[i] = Frame{uint(i), float64(i) * params.TimeStep, make([]bit.Set, len(columns))}
	}
	// Distribute spikes
	offset := 0
	//
	for _, pop := range pops {
		cols, starts := Columns(pop, params)
		//
		for neuron, spikes := range pop.Spikes {
			col, line, err := locate(pop, cols, starts, uint(neuron))
			if err != nil {
				return nil, nil, err
			} else if pop.Role == RoleDecoder && line == 0 {
				continue
			}
			//
			for _, t := range spikes {
				k := math.Round(t / params.TimeStep)
				//
				if k >= 0 && k < float64(nstamps) {
					frames[uint(k)].Lines[offset+col].Insert(line)
				}
			}
		}
		//
		offset += len(cols)
	}
	//
	return columns, frames, nil
}

// Identify the column (and line within it) of a given neuron.
func locate(pop Population, cols []Column, starts []uint, neuron uint) (int, uint, error) {
	for i := len(cols) - 1; i >= 0; i-- {
		if neuron >= starts[i] {
			line := neuron - starts[i]
			//
			if line >= cols[i].Width {
				return 0, 0, codec.NewDecodeError(pop.Label, neuron, starts[i]+cols[i].Width)
			}
			//
			return i, line, nil
		}
	}
	// Unreachable, since the first column always starts at zero.
	return 0, 0, codec.NewDecodeError(pop.Label, neuron, 0)
}
