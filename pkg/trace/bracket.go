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

import "fmt"

// Kind of a logical operation observed in the trace.
type Kind uint8

const (
	// None indicates no operation.
	None Kind = iota
	// Learn is a write, recognised by cue and content lines firing together.
	Learn
	// Recall is a read, recognised by cue lines firing alone.
	Recall
)

func (k Kind) String() string {
	switch k {
	case Learn:
		return "Learn"
	case Recall:
		return "Recall"
	default:
		return "-"
	}
}

// Classify determines the kind of operation presented on a pair of cue and
// content lines.
func Classify(cue bool, content bool) Kind {
	switch {
	case cue && content:
		return Learn
	case cue:
		return Recall
	default:
		return None
	}
}

// Event marks the beginning or end of the nth operation.
type Event struct {
	Kind  Kind
	Index uint
}

// IsNone checks whether this marks nothing.
func (e Event) IsNone() bool {
	return e.Kind == None
}

func (e Event) String() string {
	if e.Kind == None {
		return "-"
	}
	//
	return fmt.Sprintf("%s %d", e.Kind, e.Index)
}

// Phase of a hold window tracker.
type Phase uint8

const (
	// AwaitingBeginMatch means the tracker is waiting for the first instant of
	// a new hold window.
	AwaitingBeginMatch Phase = iota
	// AwaitingEndMatch means the tracker is inside a hold window, waiting for
	// it to elapse.
	AwaitingEndMatch
)

// Window recognises the first instant of each hold window for one kind of
// operation.  Instants are stamps on the time grid.  A held presentation is
// seen once every stride stamps, and an operation held over a span of stamps
// is reported once, at its first instant.  A window is closed early when no
// presentation is seen for a whole stride (including gaps in the timeline).
type Window struct {
	phase  Phase
	span   uint
	stride uint
	opened uint
	last   uint
}

// NewWindow constructs a tracker for a given hold time, on a grid where every
// stamp is a presentation instant.
func NewWindow(hold uint) Window {
	return NewGridWindow(hold, 1)
}

// NewGridWindow constructs a tracker for a window spanning a given number of
// stamps, where successive instants of a presentation are stride stamps apart.
func NewGridWindow(span uint, stride uint) Window {
	return Window{AwaitingBeginMatch, max(span, 1), max(stride, 1), 0, 0}
}

// Phase returns the current phase of this tracker.
func (w *Window) Phase() Phase {
	return w.phase
}

// Observe advances the tracker to a given instant, returning true if this
// instant opens a new window.
func (w *Window) Observe(stamp uint, active bool) bool {
	if w.phase == AwaitingEndMatch {
		gap := stamp - w.last
		//
		if (active && gap > w.stride) || (!active && gap >= w.stride) {
			w.phase = AwaitingBeginMatch
		}
	}
	//
	if !active {
		return false
	}
	//
	w.last = stamp
	//
	if w.phase == AwaitingBeginMatch {
		w.opened = stamp
		//
		if w.span > w.stride {
			w.phase = AwaitingEndMatch
		}
		//
		return true
	}
	// Last presentation instant of this window
	if stamp+w.stride >= w.opened+w.span {
		w.phase = AwaitingBeginMatch
	}
	//
	return false
}

// Counters summarises the operations bracketed over a trace.
type Counters struct {
	LearnBegun  uint
	RecallBegun uint
	LearnEnded  uint
	RecallEnded uint
	// Ends discarded because they disagree with the matching begin
	Spurious uint
}

// Bracketer labels the instants at which operations begin (on the input) and
// end (on the output).  Begins are numbered in order of appearance.  An end is
// matched against the oldest begin not yet ended, and is only accepted when
// both are of the same kind.
type Bracketer struct {
	begin  [2]Window
	end    [2]Window
	begins []Kind
	ended  uint
	Counters
}

// NewBracketer constructs a bracketer using the hold times of the given
// parameters.
func NewBracketer(params Params) *Bracketer {
	var b Bracketer
	//
	for _, k := range []Kind{Learn, Recall} {
		b.begin[k-1] = NewGridWindow(params.HoldSpan(k), params.Stride())
		b.end[k-1] = NewGridWindow(params.HoldSpan(k), params.Stride())
	}
	//
	return &b
}

// Observe processes the next instant (in increasing order), given the kind of
// operation presented on the input and that observed on the output.
func (b *Bracketer) Observe(stamp uint, input Kind, output Kind) (begin Event, end Event) {
	for _, k := range []Kind{Learn, Recall} {
		if b.begin[k-1].Observe(stamp, input == k) {
			begin = Event{k, uint(len(b.begins))}
			b.begins = append(b.begins, k)
			b.count(k, &b.LearnBegun, &b.RecallBegun)
		}
	}
	//
	for _, k := range []Kind{Learn, Recall} {
		if !b.end[k-1].Observe(stamp, output == k) {
			continue
		} else if b.ended < uint(len(b.begins)) && b.begins[b.ended] == k {
			end = Event{k, b.ended}
			b.ended++
			b.count(k, &b.LearnEnded, &b.RecallEnded)
		} else {
			b.Spurious++
		}
	}
	//
	return begin, end
}

func (b *Bracketer) count(kind Kind, learn *uint, recall *uint) {
	if kind == Learn {
		*learn++
	} else {
		*recall++
	}
}
