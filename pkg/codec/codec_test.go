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
	"errors"
	"slices"
	"testing"
)

func Test_ToBinary_00(t *testing.T) {
	check_ToBinary(t, 0, 3, "000")
}

func Test_ToBinary_01(t *testing.T) {
	check_ToBinary(t, 1, 2, "01")
}

func Test_ToBinary_02(t *testing.T) {
	check_ToBinary(t, 5, 4, "0101")
}

func Test_ToBinary_03(t *testing.T) {
	// Truncation keeps the least significant bits
	check_ToBinary(t, 13, 2, "01")
}

func Test_ToBinary_04(t *testing.T) {
	check_ToBinary(t, 255, 8, "11111111")
}

func Test_ToBinary_05(t *testing.T) {
	// Round trip for every value which fits
	for width := uint(0); width < 10; width++ {
		for v := uint(0); v < (1 << width); v++ {
			if r := ToBinary(v, width).Value(); r != v {
				t.Errorf("ToBinary(%d,%d) reinterpreted as %d", v, width, r)
			}
		}
	}
}

func Test_Complement_00(t *testing.T) {
	for width := uint(1); width < 8; width++ {
		for v := uint(0); v < (1 << width); v++ {
			vec := ToBinary(v, width)
			if !slices.Equal(Complement(Complement(vec)), vec) {
				t.Errorf("double complement of %s differs", vec)
			}
			//
			if c := Complement(vec).Value(); c != MaxContent(width)-v {
				t.Errorf("complement of %d (width %d) is %d", v, width, c)
			}
		}
	}
}

func Test_Endianness_00(t *testing.T) {
	vec := ToBinary(6, 4)
	little, err := ApplyEndianness(vec, LittleEndian)
	//
	if err != nil {
		t.Fatal(err)
	} else if little.String() != "0110" {
		t.Errorf("little endian of 0110 gave %s", little)
	}
	//
	back, _ := ApplyEndianness(little, LittleEndian)
	if !slices.Equal(back, vec) {
		t.Errorf("little endian is not an involution (%s != %s)", back, vec)
	}
}

func Test_Endianness_01(t *testing.T) {
	vec := ToBinary(1, 3)
	little, _ := ApplyEndianness(vec, LittleEndian)
	big, _ := ApplyEndianness(vec, BigEndian)
	//
	if little.String() != "100" || big.String() != "001" {
		t.Errorf("unexpected reorderings %s / %s", little, big)
	}
}

func Test_Endianness_02(t *testing.T) {
	var cerr *ConfigError
	//
	if _, err := ApplyEndianness(ToBinary(1, 3), "middle"); !errors.As(err, &cerr) {
		t.Errorf("expected configuration error, got %v", err)
	}
	//
	if _, err := ParseEndianness("Little_Endian"); !errors.As(err, &cerr) {
		t.Errorf("expected configuration error, got %v", err)
	}
}

func Test_Lines_00(t *testing.T) {
	// Address 1 on two lines: only the low line under little endian
	check_Lines(t, 1, 2, LittleEndian, 0)
	check_Lines(t, 1, 2, BigEndian, 1)
	check_Lines(t, 2, 2, LittleEndian, 1)
	check_Lines(t, 3, 2, LittleEndian, 0, 1)
	check_Lines(t, 0, 4, BigEndian)
}

func Test_Lines_01(t *testing.T) {
	for _, mode := range []Endianness{LittleEndian, BigEndian} {
		for v := uint(0); v < 64; v++ {
			lines, err := Lines(v, 6, mode)
			if err != nil {
				t.Fatal(err)
			}
			//
			if r, err := FromLines("x", lines, 6, mode); err != nil {
				t.Fatal(err)
			} else if r != v {
				t.Errorf("%s: FromLines(Lines(%d)) = %d", mode, v, r)
			}
		}
	}
}

func Test_FromLines_00(t *testing.T) {
	var derr *DecodeError
	//
	if _, err := FromLines("INcue", []uint{0, 3}, 3, LittleEndian); !errors.As(err, &derr) {
		t.Errorf("expected decode error, got %v", err)
	} else if derr.Position != 3 || derr.Width != 3 {
		t.Errorf("unexpected decode error %v", derr)
	}
}

func Test_OneHot_00(t *testing.T) {
	for _, offset := range []int{-1, 0, 1} {
		for v := 1; v < 10; v++ {
			if r := DecodeOneHot(EncodeOneHot(v, offset), offset); r != v {
				t.Errorf("one-hot round trip of %d (offset %d) gave %d", v, offset, r)
			}
		}
	}
}

func Test_CueWidth_00(t *testing.T) {
	expected := []uint{0, 1, 2, 2, 3, 3, 3, 3, 4, 4}
	//
	for size, width := range expected {
		if w := CueWidth(uint(size)); w != width {
			t.Errorf("cue width of %d is %d, expected %d", size, w, width)
		}
	}
}

func Test_Fits_00(t *testing.T) {
	if !Fits(7, 3) || Fits(8, 3) || !Fits(0, 0) {
		t.Errorf("incorrect fits")
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func check_ToBinary(t *testing.T, value uint, width uint, expected string) {
	vec := ToBinary(value, width)
	//
	if uint(len(vec)) != width {
		t.Errorf("ToBinary(%d,%d) has width %d", value, width, len(vec))
	} else if vec.String() != expected {
		t.Errorf("ToBinary(%d,%d) = %s, expected %s", value, width, vec, expected)
	}
}

func check_Lines(t *testing.T, value uint, width uint, mode Endianness, expected ...uint) {
	lines, err := Lines(value, width, mode)
	//
	if err != nil {
		t.Fatal(err)
	} else if !slices.Equal(lines, expected) {
		t.Errorf("Lines(%d,%d,%s) = %v, expected %v", value, width, mode, lines, expected)
	}
}
