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
	"slices"
)

// Endianness determines which input line carries the most significant bit of
// a binary coded value.
type Endianness string

const (
	// LittleEndian places the least significant bit on line 0.
	LittleEndian Endianness = "little_endian"
	// BigEndian places the most significant bit on line 0.
	BigEndian Endianness = "big_endian"
)

// ParseEndianness converts a configuration string into an endianness.  Both
// the long forms ("little_endian", "big_endian") and the short forms ("little",
// "big") are accepted.  Anything else is a ConfigError.
func ParseEndianness(mode string) (Endianness, error) {
	switch mode {
	case "little_endian", "little":
		return LittleEndian, nil
	case "big_endian", "big":
		return BigEndian, nil
	default:
		return "", NewConfigError("endianness", mode, string(LittleEndian), string(BigEndian))
	}
}

// Check that this is one of the supported endianness values.
func (e Endianness) Check() error {
	_, err := ParseEndianness(string(e))
	return err
}

// ApplyEndianness reorders a vector according to the given endianness.  Little
// endian reverses the bit order, whilst big endian leaves it as is.  Applying
// the same endianness twice always gives back the original vector.
func ApplyEndianness(vec Vector, mode Endianness) (Vector, error) {
	mode, err := ParseEndianness(string(mode))
	//
	if err != nil {
		return nil, err
	}
	//
	result := slices.Clone(vec)
	//
	if mode == LittleEndian {
		slices.Reverse(result)
	}
	//
	return result, nil
}

// Lines returns the indices of the input lines which are active when a given
// value is presented on width lines under a given endianness.  Line i carries
// element i of the endianness adjusted vector.
func Lines(value uint, width uint, mode Endianness) ([]uint, error) {
	vec, err := ApplyEndianness(ToBinary(value, width), mode)
	//
	if err != nil {
		return nil, err
	}
	//
	return vec.Ones(), nil
}

// FromLines is the inverse of Lines.  It reconstructs the value which was
// presented on width lines, given the set of lines which were active.  The
// label is used only for reporting a line which lies outside the given width.
func FromLines(label string, lines []uint, width uint, mode Endianness) (uint, error) {
	vec := make(Vector, width)
	//
	for _, line := range lines {
		if line >= width {
			return 0, NewDecodeError(label, line, width)
		}
		//
		vec[line] = 1
	}
	// Undo the endianness
	vec, err := ApplyEndianness(vec, mode)
	//
	if err != nil {
		return 0, err
	}
	//
	return vec.Value(), nil
}

// DecodeOneHot returns the value encoded by the single firing position of a
// one-hot population.  The offset accounts for reserved lines, or for the
// difference between neuron ids and addresses.
func DecodeOneHot(position uint, offset int) int {
	return int(position) - offset
}

// EncodeOneHot returns the position which fires in a one-hot population to
// encode a given value (the inverse of DecodeOneHot).
func EncodeOneHot(value int, offset int) uint {
	return uint(value + offset)
}
