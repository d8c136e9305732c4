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
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/consensys/go-hipmem/pkg/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var smallLayout = Layout{CueSize: 3, ContSize: 2, Endianness: codec.LittleEndian}

var smallTiming = Timing{ReadSpacing: 2, ReadHold: 1, WriteSpacing: 3, WriteHold: 2}

func Test_Synthesizer_00(t *testing.T) {
	synth, err := NewSynthesizer(smallLayout, smallTiming)
	require.NoError(t, err)
	// Address 1 is 01, so only the low line fires.
	synth.Apply(NewWrite(1, 1))
	result := synth.Result()
	//
	assert.Equal(t, []uint{1, 2}, result.Cue[0])
	assert.Empty(t, result.Cue[1])
	assert.Equal(t, uint(4), synth.Time())
	assert.Equal(t, uint(1), result.Operations)
}

func Test_Synthesizer_01(t *testing.T) {
	// Hold time contract: every set bit gets exactly hold consecutive spikes.
	timing := Timing{ReadSpacing: 4, ReadHold: 3, WriteSpacing: 7, WriteHold: 5}
	layout := Layout{CueSize: 7, ContSize: 4, Endianness: codec.BigEndian}
	//
	for address := uint(1); address <= layout.CueSize; address++ {
		synth, err := NewSynthesizer(layout, timing)
		require.NoError(t, err)
		synth.Apply(NewRead(1))
		start := synth.Time()
		synth.Apply(NewWrite(address, 9))
		result := synth.Result()
		lines, _ := codec.Lines(address, layout.CueWidth(), layout.Endianness)
		//
		for _, line := range lines {
			train := result.Cue[line]
			tail := train[len(train)-int(timing.WriteHold):]
			//
			for i, time := range tail {
				assert.Equal(t, start+uint(i), time)
			}
		}
	}
}

func Test_Synthesizer_02(t *testing.T) {
	_, err := NewSynthesizer(Layout{3, 2, "sideways"}, smallTiming)
	require.Error(t, err)
}

func Test_Synthesizer_03(t *testing.T) {
	// Result copies must not alias the synthesizer state.
	synth, _ := NewSynthesizer(smallLayout, smallTiming)
	synth.Apply(NewWrite(3, 3))
	first := synth.Result()
	first.Cue[0][0] = 99
	synth.Apply(NewRead(3))
	//
	assert.Equal(t, uint(1), synth.Result().Cue[0][0])
}

func Test_Pyramidal_00(t *testing.T) {
	result, err := Pyramidal(smallLayout, smallTiming)
	require.NoError(t, err)
	//
	assert.Equal(t, uint(46), result.EndTime)
	assert.Equal(t, uint(18), result.Operations)
	assert.Equal(t, uint(9), result.Learn)
	assert.Equal(t, uint(9), result.Recall)
	assert.Equal(t, []uint{1, 2, 7, 8, 10, 14, 16, 17, 22, 23, 25, 29, 31, 32, 37, 38, 40, 44}, result.Cue[0])
	assert.Equal(t, []uint{1, 2, 7, 8, 19, 20, 31, 32, 37, 38}, result.Content[0])
}

func Test_Pyramidal_01(t *testing.T) {
	// Determinism
	first, err := Pyramidal(smallLayout, smallTiming)
	require.NoError(t, err)
	second, err := Pyramidal(smallLayout, smallTiming)
	require.NoError(t, err)
	//
	assert.Equal(t, first, second)
}

func Test_PyramidalReinforced_00(t *testing.T) {
	result, err := PyramidalReinforced(smallLayout, smallTiming)
	require.NoError(t, err)
	// Write of address 1 at t=1, its read at t=4, write of address 2 at t=6
	assert.Equal(t, []uint{1, 2, 4}, result.Cue[0][:3])
	assert.Equal(t, []uint{6, 7, 9}, result.Cue[1][:3])
	assert.Equal(t, uint(27), result.Operations)
	assert.Equal(t, result.Operations, result.Learn+result.Recall)
}

func Test_StressReinforced_00(t *testing.T) {
	result, err := StressReinforced(smallLayout, smallTiming)
	require.NoError(t, err)
	//
	assert.Equal(t, uint(51), result.Operations)
	assert.Equal(t, uint(18), result.Learn)
	assert.Equal(t, uint(33), result.Recall)
}

func Test_Random_00(t *testing.T) {
	for count := uint(0); count < 50; count += 7 {
		rng := rand.New(rand.NewPCG(1, uint64(count)))
		result, err := Random(smallLayout, smallTiming, rng, count)
		require.NoError(t, err)
		//
		assert.Equal(t, count, result.Operations)
		assert.Equal(t, count, result.Learn+result.Recall)
	}
}

func Test_Random_01(t *testing.T) {
	// Reproducible with a fixed seed
	first, _ := Random(smallLayout, smallTiming, rand.New(rand.NewPCG(7, 11)), 20)
	second, _ := Random(smallLayout, smallTiming, rand.New(rand.NewPCG(7, 11)), 20)
	//
	assert.Equal(t, first, second)
}

func Test_Random_02(t *testing.T) {
	ops := RandomOperations(smallLayout, rand.New(rand.NewPCG(3, 3)), 200)
	//
	for _, op := range ops {
		assert.True(t, op.Address >= 1 && op.Address <= smallLayout.CueSize)
		assert.True(t, op.Content >= 1 && op.Content <= codec.MaxContent(smallLayout.ContSize))
	}
}

func Test_Scenario_00(t *testing.T) {
	for _, s := range Scenarios {
		found, err := FindScenario(s.Name)
		require.NoError(t, err)
		assert.Equal(t, s.Dir, found.Dir)
	}
	//
	_, err := FindScenario("nonsense")
	assert.Error(t, err)
}

func Test_Artifact_00(t *testing.T) {
	var buffer bytes.Buffer
	//
	result, err := PyramidalReinforced(smallLayout, smallTiming)
	require.NoError(t, err)
	require.NoError(t, WriteArtifact(&buffer, result))
	assert.Contains(t, buffer.String(), "[input_cue]")
	assert.Contains(t, buffer.String(), "InputSpikesCont")
	//
	back, err := ReadArtifact(&buffer)
	require.NoError(t, err)
	assert.Equal(t, result, back)
}

func Test_Artifact_01(t *testing.T) {
	text := "[input_cue]\nInputSpikesCue = [[1, 2], [5]]\n[input_cont]\nInputSpikesCont = [[1], []]\n"
	//
	result, err := ReadArtifact(bytes.NewBufferString(text))
	require.NoError(t, err)
	assert.Equal(t, uint(6), result.EndTime)
	assert.Equal(t, [][]uint{{1}, {}}, result.Content)
}

func Test_Artifact_02(t *testing.T) {
	_, err := ReadArtifact(bytes.NewBufferString("[input_cue]\nInputSpikesCue = []\n"))
	assert.Error(t, err)
}
