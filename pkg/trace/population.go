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
	"fmt"
	"math"

	"github.com/consensys/go-hipmem/pkg/codec"
)

// PRESENTATION_INTERVAL is the interval (ms) between successive spikes of a
// held presentation.
const PRESENTATION_INTERVAL = 1.0

// Role determines how the spikes of a population are interpreted.
type Role uint8

const (
	// RoleInput is the input layer, whose lines are split into a cue part
	// followed by a content part.
	RoleInput Role = iota
	// RoleOutput is the output layer, split in the same way as the input.
	RoleOutput
	// RoleDecoder is the one-hot decoder (DG).  Line 0 is reserved for the
	// "no address" value and never reported.
	RoleDecoder
	// RoleCueStore is the one-hot cue store (CA3cue), whose line i holds
	// address i+1.
	RoleCueStore
	// RoleContentStore holds content lines (CA3cont).
	RoleContentStore
	// RoleEncoder recodes a one-hot address back into binary (CA1).
	RoleEncoder
)

func (r Role) String() string {
	switch r {
	case RoleInput:
		return "input"
	case RoleOutput:
		return "output"
	case RoleDecoder:
		return "decoder"
	case RoleCueStore:
		return "cue-store"
	case RoleContentStore:
		return "content-store"
	case RoleEncoder:
		return "encoder"
	default:
		return fmt.Sprintf("role(%d)", uint8(r))
	}
}

// Population holds the recorded spike times of every neuron in a single
// population.
type Population struct {
	Label string
	Role  Role
	// Spike times (in ms) for each neuron
	Spikes [][]float64
}

// Params carries the configuration needed to interpret recorded spikes.
type Params struct {
	// Number of addressable memory slots
	CueSize uint
	// Number of binary cue lines
	CueWidth uint
	// Number of content lines
	ContWidth uint
	// Ordering of bits on binary coded lines
	Endianness codec.Endianness
	// Duration of the simulation (ms)
	SimTime float64
	// Simulation time step (ms)
	TimeStep float64
	// Keep timestamps at which nothing fired
	KeepEmpty bool
	// Time (ms) for which a write is held on the input
	WriteHold uint
	// Time (ms) for which a read is held on the input
	ReadHold uint
}

// Check that these parameters are usable.
func (p Params) Check() error {
	if err := p.Endianness.Check(); err != nil {
		return err
	} else if p.TimeStep <= 0 {
		return codec.NewConfigError("timeStep", fmt.Sprintf("%v", p.TimeStep))
	} else if p.SimTime < 0 {
		return codec.NewConfigError("simTime", fmt.Sprintf("%v", p.SimTime))
	} else if p.WriteHold == 0 {
		return codec.NewConfigError("writeHold", "0")
	} else if p.ReadHold == 0 {
		return codec.NewConfigError("readHold", "0")
	}
	//
	return nil
}

// WithShape returns these parameters with the shape of the memory replaced.
// The cue width is derived from the number of cues.
func (p Params) WithShape(cueSize uint, contWidth uint, endianness codec.Endianness, timeStep float64) Params {
	p.CueSize = cueSize
	p.CueWidth = codec.CueWidth(cueSize)
	p.ContWidth = contWidth
	p.Endianness = endianness
	p.TimeStep = timeStep
	//
	return p
}

// Stamps returns the number of grid instants in [0,SimTime).
func (p Params) Stamps() uint {
	n := uint(0)
	//
	for t := 0.0; t < p.SimTime; t += p.TimeStep {
		n++
	}
	//
	return n
}

// Hold returns the hold window for a given kind of operation.
func (p Params) Hold(kind Kind) uint {
	if kind == Learn {
		return p.WriteHold
	}
	//
	return p.ReadHold
}

// Stride returns the number of grid stamps between successive instants of a
// held presentation.
func (p Params) Stride() uint {
	return p.stamps(PRESENTATION_INTERVAL)
}

// HoldSpan returns the number of grid stamps covered by the hold window of a
// given kind of operation.
func (p Params) HoldSpan(kind Kind) uint {
	return p.stamps(float64(p.Hold(kind)) * PRESENTATION_INTERVAL)
}

// Convert a duration (ms) into a whole number of grid stamps, which is at least
// one.
func (p Params) stamps(duration float64) uint {
	if p.TimeStep <= 0 {
		return max(uint(math.Round(duration)), 1)
	}
	//
	return max(uint(math.Round(duration/p.TimeStep)), 1)
}

// ColumnKind determines how the active lines of a column are decoded.
type ColumnKind uint8

const (
	// CueCode columns carry a binary coded address.
	CueCode ColumnKind = iota
	// ContentLines columns carry binary coded content.
	ContentLines
	// OneHotDecoder columns carry a one-hot address with a reserved line 0.
	OneHotDecoder
	// OneHotStore columns carry a one-hot address starting at line 0.
	OneHotStore
)

// Column identifies one decoded quantity in the trace.  Input and output
// populations contribute two columns each.
type Column struct {
	Label string
	Kind  ColumnKind
	// Number of lines in this column
	Width uint
}

// Columns determines the columns contributed by a given population, along with
// the neuron index at which each column starts.
func Columns(pop Population, params Params) ([]Column, []uint) {
	switch pop.Role {
	case RoleInput, RoleOutput:
		prefix := "IN"
		if pop.Role == RoleOutput {
			prefix = "OUT"
		}
		//
		return []Column{
			{prefix + "cue", CueCode, params.CueWidth},
			{prefix + "cont", ContentLines, params.ContWidth},
		}, []uint{0, params.CueWidth}
	case RoleDecoder:
		return []Column{{pop.Label, OneHotDecoder, 1 << params.CueWidth}}, []uint{0}
	case RoleCueStore:
		return []Column{{pop.Label, OneHotStore, params.CueSize}}, []uint{0}
	case RoleContentStore:
		return []Column{{pop.Label, ContentLines, params.ContWidth}}, []uint{0}
	default:
		return []Column{{pop.Label, CueCode, params.CueWidth}}, []uint{0}
	}
}

// Mirror constructs the input and output layers of an identity network, in
// which the output repeats the input at the same instants.  This is useful for
// checking spike trains before they are simulated.
func Mirror(cue [][]uint, content [][]uint) []Population {
	var spikes [][]float64
	//
	for _, lines := range [][][]uint{cue, content} {
		for _, line := range lines {
			train := make([]float64, len(line))
			for i, s := range line {
				train[i] = float64(s)
			}
			//
			spikes = append(spikes, train)
		}
	}
	//
	return []Population{{"IN", RoleInput, spikes}, {"OUT", RoleOutput, spikes}}
}
