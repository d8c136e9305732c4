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
package testbench

import (
	"fmt"
	"math/rand/v2"

	"github.com/consensys/go-hipmem/pkg/codec"
)

// Pyramidal writes every cue once, reads every cue, overwrites every cue with
// the complement of its content, reads every cue, overwrites them with the
// complement again and, finally, reads every cue.  This checks whether old
// contents are properly replaced.
func Pyramidal(layout Layout, timing Timing) (Result, error) {
	synth, err := NewSynthesizer(layout, timing)
	if err != nil {
		return Result{}, err
	}
	//
	contents := initialContents(layout)
	//
	for round := 0; round < 3; round++ {
		if round > 0 {
			contents = complementAll(contents, layout.ContSize)
		}
		//
		writeAll(synth, contents)
		readAll(synth, layout.CueSize)
	}
	//
	return synth.Result(), nil
}

// PyramidalReinforced follows the same pattern as Pyramidal, except that every
// write is immediately followed by a read of the same cue.
func PyramidalReinforced(layout Layout, timing Timing) (Result, error) {
	synth, err := NewSynthesizer(layout, timing)
	if err != nil {
		return Result{}, err
	}
	//
	contents := initialContents(layout)
	//
	for round := 0; round < 3; round++ {
		if round > 0 {
			contents = complementAll(contents, layout.ContSize)
		}
		//
		writeThenReadAll(synth, contents)
		readAll(synth, layout.CueSize)
	}
	//
	return synth.Result(), nil
}

// StressReinforced runs the first five phases of PyramidalReinforced, then
// reads every cue three times over and, finally, performs three more rounds of
// reinforced writes (complementing the contents each round).
func StressReinforced(layout Layout, timing Timing) (Result, error) {
	synth, err := NewSynthesizer(layout, timing)
	if err != nil {
		return Result{}, err
	}
	//
	contents := initialContents(layout)
	// Phases 1-5
	writeThenReadAll(synth, contents)
	readAll(synth, layout.CueSize)
	contents = complementAll(contents, layout.ContSize)
	writeThenReadAll(synth, contents)
	readAll(synth, layout.CueSize)
	contents = complementAll(contents, layout.ContSize)
	writeThenReadAll(synth, contents)
	// Stress
	for i := 0; i < 3; i++ {
		readAll(synth, layout.CueSize)
	}
	//
	for i := 0; i < 3; i++ {
		contents = complementAll(contents, layout.ContSize)
		writeThenReadAll(synth, contents)
	}
	//
	return synth.Result(), nil
}

// Random synthesizes count operations, each of which is a write or a read with
// equal probability.  Addresses are drawn uniformly from [1,cueSize] and
// contents uniformly from [1,2^contSize-1].  The result is reproducible only
// when the caller seeds the generator.
func Random(layout Layout, timing Timing, rng *rand.Rand, count uint) (Result, error) {
	synth, err := NewSynthesizer(layout, timing)
	if err != nil {
		return Result{}, err
	} else if layout.CueSize == 0 && count > 0 {
		return Result{}, codec.NewConfigError("cueSize", "0")
	}
	//
	synth.ApplyAll(RandomOperations(layout, rng, count)...)
	//
	return synth.Result(), nil
}

// RandomOperations draws count random operations for a given layout.
func RandomOperations(layout Layout, rng *rand.Rand, count uint) []Operation {
	var (
		ops     = make([]Operation, count)
		maxCont = codec.MaxContent(layout.ContSize)
	)
	//
	for i := range ops {
		kind := OpKind(rng.IntN(2))
		address := rng.UintN(layout.CueSize) + 1
		content := uint(0)
		//
		if maxCont > 0 {
			content = rng.UintN(maxCont) + 1
		}
		//
		ops[i] = Operation{kind, address, content}
	}
	//
	return ops
}

// Scenario identifies one of the canonical testbenches.
type Scenario struct {
	// Name used to select this scenario
	Name string
	// Directory the artifact is written into
	Dir string
	// Human readable description
	Description string
	// Generator for the scenario.  The generator and count are only used by
	// the random scenario.
	Generate func(layout Layout, timing Timing, rng *rand.Rand, count uint) (Result, error)
}

// Scenarios lists the canonical battery of testbenches, in order.
var Scenarios = []Scenario{
	{"pyramidal", "tb1_piramidal", "piramidal sequence",
		func(l Layout, t Timing, _ *rand.Rand, _ uint) (Result, error) { return Pyramidal(l, t) }},
	{"pyramidal-reinforced", "tb2_piramidal_reinforced", "piramidal sequence with reinforced writing",
		func(l Layout, t Timing, _ *rand.Rand, _ uint) (Result, error) { return PyramidalReinforced(l, t) }},
	{"stress-reinforced", "tb3_stress_reinforced", "stress the network with reinforced writing",
		func(l Layout, t Timing, _ *rand.Rand, _ uint) (Result, error) { return StressReinforced(l, t) }},
	{"random", "tb4_random_operations", "random operations", Random},
}

// FindScenario looks up a scenario by name.
func FindScenario(name string) (Scenario, error) {
	for _, s := range Scenarios {
		if s.Name == name {
			return s, nil
		}
	}
	//
	return Scenario{}, fmt.Errorf("unknown scenario \"%s\"", name)
}

// Cues 1..n paired with contents (i+1) mod 2^contSize.
func initialContents(layout Layout) []Operation {
	ops := make([]Operation, layout.CueSize)
	modulus := codec.MaxContent(layout.ContSize) + 1
	//
	for i := range ops {
		ops[i] = NewWrite(uint(i)+1, uint(i+1)%modulus)
	}
	//
	return ops
}

func complementAll(writes []Operation, width uint) []Operation {
	result := make([]Operation, len(writes))
	//
	for i, w := range writes {
		result[i] = NewWrite(w.Address, codec.Complement(codec.ToBinary(w.Content, width)).Value())
	}
	//
	return result
}

func writeAll(synth *Synthesizer, writes []Operation) {
	synth.ApplyAll(writes...)
}

func writeThenReadAll(synth *Synthesizer, writes []Operation) {
	for _, w := range writes {
		synth.WriteThenRead(w.Address, w.Content)
	}
}

func readAll(synth *Synthesizer, cueSize uint) {
	for address := uint(1); address <= cueSize; address++ {
		synth.Apply(NewRead(address))
	}
}
