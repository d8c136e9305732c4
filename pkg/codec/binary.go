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
package codec

import (
	"math/bits"
	"slices"
	"strings"
)

// Vector is a fixed-width sequence of bits, each of which is either 0 or 1.
// Unless an endianness has been applied, the most significant bit comes first.
type Vector []uint8

// ToBinary converts a value into a vector of exactly width bits.  Digits are
// extracted least-significant first and then reversed, so that the most
// significant bit comes first.  When the value needs fewer than width bits,
// the vector is padded with zeros on the left.  When it needs more, only the
// width least-significant bits are kept: values are truncated silently, and
// callers which cannot guarantee their values fit should check Fits first.
func ToBinary(value uint, width uint) Vector {
	var digits Vector
	// Extract digits (lsb first)
	for v := value; v > 0; v = v / 2 {
		digits = append(digits, uint8(v%2))
	}
	// Pad or truncate
	if uint(len(digits)) > width {
		digits = digits[:width]
	}
	//
	for uint(len(digits)) < width {
		digits = append(digits, 0)
	}
	// Put msb first
	slices.Reverse(digits)
	//
	return digits
}

// Fits determines whether a value can be represented in width bits without
// truncation.
func Fits(value uint, width uint) bool {
	return uint(bits.Len(value)) <= width
}

// CueWidth returns the number of binary lines needed to address cueSize
// memory slots, where addresses start from 1 (i.e. ceil(log2(cueSize+1))).
func CueWidth(cueSize uint) uint {
	return uint(bits.Len(cueSize))
}

// MaxContent returns the largest content value which can be stored in a
// memory whose content is width bits wide.
func MaxContent(width uint) uint {
	return (uint(1) << width) - 1
}

// Value reinterprets a (most significant bit first) vector as an unsigned
// integer.
func (p Vector) Value() uint {
	value := uint(0)
	//
	for _, b := range p {
		value = (value << 1) | uint(b&1)
	}
	//
	return value
}

// Complement returns the bitwise NOT of a vector.
func Complement(vec Vector) Vector {
	result := make(Vector, len(vec))
	//
	for i, b := range vec {
		result[i] = 1 - (b & 1)
	}
	//
	return result
}

// Ones returns the indices of all bits in this vector which are set.
func (p Vector) Ones() []uint {
	var indices []uint
	//
	for i, b := range p {
		if b == 1 {
			indices = append(indices, uint(i))
		}
	}
	//
	return indices
}

func (p Vector) String() string {
	var builder strings.Builder
	//
	for _, b := range p {
		if b == 1 {
			builder.WriteByte('1')
		} else {
			builder.WriteByte('0')
		}
	}
	//
	return builder.String()
}
