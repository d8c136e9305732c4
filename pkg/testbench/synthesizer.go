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
	"slices"

	"github.com/consensys/go-hipmem/pkg/codec"
)

// OpKind distinguishes the two logical memory operations.
type OpKind uint8

const (
	// Write stores a content under an address (a "learn").
	Write OpKind = iota
	// Read presents an address only (a "recall").
	Read
)

func (k OpKind) String() string {
	if k == Write {
		return "write"
	}
	//
	return "read"
}

// Operation is a single logical memory operation.  The content is ignored for
// reads.
type Operation struct {
	Kind    OpKind
	Address uint
	Content uint
}

// NewWrite constructs a write of a given content under a given address.
func NewWrite(address uint, content uint) Operation {
	return Operation{Write, address, content}
}

// NewRead constructs a read of a given address.
func NewRead(address uint) Operation {
	return Operation{Read, address, 0}
}

func (op Operation) String() string {
	if op.Kind == Write {
		return fmt.Sprintf("write(%d,%d)", op.Address, op.Content)
	}
	//
	return fmt.Sprintf("read(%d)", op.Address)
}

// Timing determines how long an operation's input is held on the input lines,
// and how far apart consecutive operations start.  Reads and writes are timed
// independently.
type Timing struct {
	// Time to begin the next operation after a read operation
	ReadSpacing uint
	// Number of instants the input of a read operation is held
	ReadHold uint
	// Time to begin the next operation after a write operation
	WriteSpacing uint
	// Number of instants the input of a write operation is held
	WriteHold uint
}

// Hold returns the hold time for a given kind of operation.
func (t Timing) Hold(kind OpKind) uint {
	if kind == Write {
		return t.WriteHold
	}
	//
	return t.ReadHold
}

// Spacing returns the time between the start of an operation of the given kind
// and the start of the next.
func (t Timing) Spacing(kind OpKind) uint {
	if kind == Write {
		return t.WriteSpacing
	}
	//
	return t.ReadSpacing
}

// Layout describes the input lines of the memory.
type Layout struct {
	// Number of addressable memory slots
	CueSize uint
	// Number of content bits
	ContSize uint
	// Ordering of bits on the input lines
	Endianness codec.Endianness
}

// CueWidth returns the number of cue input lines.
func (l Layout) CueWidth() uint {
	return codec.CueWidth(l.CueSize)
}

// Result holds the spike trains produced for a testbench, along with its
// bookkeeping.
type Result struct {
	// Spike times for each cue line
	Cue [][]uint
	// Spike times for each content line
	Content [][]uint
	// Time at which the next operation would have started
	EndTime uint
	// Number of operations synthesized
	Operations uint
	// Number of writes synthesized
	Learn uint
	// Number of reads synthesized
	Recall uint
}

// Synthesizer converts a sequence of operations into spike trains.  The only
// state it carries is a time cursor, the operation counters and the spike
// trains built so far.
type Synthesizer struct {
	layout  Layout
	timing  Timing
	current uint
	ops     uint
	learn   uint
	recall  uint
	cue     [][]uint
	content [][]uint
}

// NewSynthesizer constructs a synthesizer whose time cursor starts at 1.
func NewSynthesizer(layout Layout, timing Timing) (*Synthesizer, error) {
	if err := layout.Endianness.Check(); err != nil {
		return nil, err
	}
	//
	cue := make([][]uint, layout.CueWidth())
	content := make([][]uint, layout.ContSize)
	//
	for i := range cue {
		cue[i] = []uint{}
	}
	//
	for i := range content {
		content[i] = []uint{}
	}
	//
	return &Synthesizer{layout, timing, 1, 0, 0, 0, cue, content}, nil
}

// Time returns the current position of the time cursor.
func (p *Synthesizer) Time() uint {
	return p.current
}

// Apply synthesizes a single operation: every cue line set in the address (and,
// for a write, every content line set in the content) fires on each instant of
// the hold window starting at the cursor.  The cursor then advances by the
// spacing for this kind of operation.
func (p *Synthesizer) Apply(op Operation) {
	hold := p.timing.Hold(op.Kind)
	// Endianness was checked at construction, hence errors are impossible.
	cueLines, _ := codec.Lines(op.Address, p.layout.CueWidth(), p.layout.Endianness)
	p.hold(p.cue, cueLines, hold)
	//
	if op.Kind == Write {
		contLines, _ := codec.Lines(op.Content, p.layout.ContSize, p.layout.Endianness)
		p.hold(p.content, contLines, hold)
		p.learn++
	} else {
		p.recall++
	}
	//
	p.current += p.timing.Spacing(op.Kind)
	p.ops++
}

// ApplyAll synthesizes a sequence of operations in order.
func (p *Synthesizer) ApplyAll(ops ...Operation) {
	for _, op := range ops {
		p.Apply(op)
	}
}

// WriteThenRead synthesizes a reinforced write: the content is written under
// the address, which is then immediately read back.
func (p *Synthesizer) WriteThenRead(address uint, content uint) {
	p.Apply(NewWrite(address, content))
	p.Apply(NewRead(address))
}

// Result returns a copy of the spike trains built so far, along with the
// bookkeeping counters.
func (p *Synthesizer) Result() Result {
	return Result{
		Cue:        cloneLines(p.cue),
		Content:    cloneLines(p.content),
		EndTime:    p.current,
		Operations: p.ops,
		Learn:      p.learn,
		Recall:     p.recall,
	}
}

func (p *Synthesizer) hold(trains [][]uint, lines []uint, hold uint) {
	for _, line := range lines {
		for i := uint(0); i < hold; i++ {
			trains[line] = append(trains[line], p.current+i)
		}
	}
}

func cloneLines(lines [][]uint) [][]uint {
	result := make([][]uint, len(lines))
	//
	for i, line := range lines {
		result[i] = slices.Clone(line)
		// Preserve the empty (rather than nil) line
		if result[i] == nil {
			result[i] = []uint{}
		}
	}
	//
	return result
}
