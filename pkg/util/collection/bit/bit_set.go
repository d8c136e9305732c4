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
package bit

import (
	"fmt"
	"math/bits"
	"slices"
	"strings"
)

// Set provides a straightforward bitset implementation. That is, a set of
// (unsigned) integer values implemented as an array of bits.  Here, it is used
// to hold the lines of a population which are active at a given instant.
type Set struct {
	words []uint64
}

// NewSet constructs a set initialised with zero or more lines.
func NewSet(vals ...uint) Set {
	var set Set
	//
	set.InsertAll(vals...)
	//
	return set
}

// Clone creates a true copy of this bitset which ensures no aliasing between
// this set and the result.
func (p *Set) Clone() Set {
	return Set{slices.Clone(p.words)}
}

// Insert a given value into this set.
func (p *Set) Insert(val uint) {
	word := val / 64
	bit := val % 64
	//
	for uint(len(p.words)) <= word {
		p.words = append(p.words, 0)
	}
	// Set bit
	mask := uint64(1) << bit
	p.words[word] = p.words[word] | mask
}

// InsertAll inserts zero or more elements into this bitset.
func (p *Set) InsertAll(vals ...uint) {
	for _, v := range vals {
		p.Insert(v)
	}
}

// Contains checks whether a given value is contained, or not.
func (p *Set) Contains(val uint) bool {
	word := val / 64
	bit := val % 64
	//
	if uint(len(p.words)) <= word {
		return false
	}
	// Set mask
	mask := uint64(1) << bit
	//
	return (p.words[word] & mask) != 0
}

// Count returns the number of bits in the bitset which are set to one.
func (p *Set) Count() uint {
	count := 0
	//
	for _, word := range p.words {
		count += bits.OnesCount64(word)
	}
	//
	return uint(count)
}

// IsEmpty checks whether any bit is set.
func (p *Set) IsEmpty() bool {
	for _, word := range p.words {
		if word != 0 {
			return false
		}
	}
	//
	return true
}

// Elements returns the values in this set in ascending order, or nil for an
// empty set.
func (p *Set) Elements() []uint {
	var elements []uint
	//
	for w, word := range p.words {
		for word != 0 {
			bit := uint(bits.TrailingZeros64(word))
			elements = append(elements, uint(w*64)+bit)
			word &= word - 1
		}
	}
	//
	return elements
}

func (p *Set) String() string {
	var builder strings.Builder
	//
	builder.WriteString("[")
	//
	for i, v := range p.Elements() {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString(fmt.Sprintf("%d", v))
	}
	//
	builder.WriteString("]")
	//
	return builder.String()
}
