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
package record

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/consensys/go-hipmem/pkg/codec"
	"github.com/consensys/go-hipmem/pkg/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Write(2,5) then Read(2) on a memory with three cues and three content bits,
// recorded from a network which mirrors its input.
const recording = `{
  "networkName": "DG_CA3_CA1_one_hot",
  "timeStep": 1.0,
  "simTime": 6.0,
  "cueSize": 3,
  "contSize": 3,
  "endianness": "little_endian",
  "synParameters": {"CA3cueL-CA3contL": {"w_min": 0.0, "w_max": 7.5, "tau_plus": 3.0}},
  "variables": [
    {"type": "spikes", "popName": "Input Layer", "popNameShort": "IL", "numNeurons": 5,
     "data": [[], [1.0, 2.0, 4.0], [1.0, 2.0], [], [1.0, 2.0]]},
    {"type": "v", "popName": "CA3cue Layer", "popNameShort": "CA3cueL", "numNeurons": 2,
     "data": [[null, -65.0, null, -61.0, null], [-70.0, null, null, -50.0]]},
    {"type": "w", "popName": "CA3cueL-CA3contL", "popNameShort": "CA3cueL-CA3contL",
     "data": [[[0, 0, 1.0], [1, 0, 2.0]], [[0, 0, 1.5], [1, 0, 2.5]]]},
    {"type": "spikes", "popName": "DG Layer", "popNameShort": "DGL", "numNeurons": 4,
     "data": [[], [], [1.0, 2.0, 4.0]]},
    {"type": "spikes", "popName": "Output Layer", "popNameShort": "OL", "numNeurons": 5,
     "data": [[], [1.0, 2.0, 4.0], [1.0, 2.0], [], [1.0, 2.0]]}
  ]
}`

func Test_Recording_00(t *testing.T) {
	rec, err := Parse([]byte(recording))
	require.NoError(t, err)
	//
	assert.Equal(t, "DG_CA3_CA1_one_hot", rec.NetworkName)
	assert.Len(t, rec.Variables, 5)
	//
	spikes, err := rec.Spikes("DGL")
	require.NoError(t, err)
	// Trailing silent neuron is restored
	assert.Len(t, spikes, 4)
	assert.Equal(t, []float64{1, 2, 4}, spikes[2])
}

func Test_Recording_01(t *testing.T) {
	var cerr *codec.ConfigError
	//
	_, err := Parse([]byte(`{"variables": [{"type": "gsyn", "popNameShort": "IL"}]}`))
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "gsyn", cerr.Value)
}

func Test_Recording_02(t *testing.T) {
	rec, _ := Parse([]byte(recording))
	//
	v, err := rec.Voltages("CA3cueL")
	require.NoError(t, err)
	assert.Equal(t, []float64{-60, -65, -63, -61, -61}, v[0])
	assert.Equal(t, []float64{-70, -70, -60, -50}, v[1])
}

func Test_Recording_03(t *testing.T) {
	rec, _ := Parse([]byte(recording))
	//
	w, err := rec.Weights("CA3cueL-CA3contL")
	require.NoError(t, err)
	assert.Equal(t, 4, w.Len())
	assert.Equal(t, []float64{0, 0, 1, 1}, w.Time)
	assert.Equal(t, []uint{0, 1}, w.Sources())
	assert.Equal(t, []uint{0}, w.Destinations())
	//
	times, weights := w.Synapse(1, 0)
	assert.Equal(t, []float64{0, 1}, times)
	assert.Equal(t, []float64{2.0, 2.5}, weights)
	//
	lo, hi := w.Range()
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 2.5, hi)
	//
	wMin, wMax, err := rec.WeightLimits("CA3cueL-CA3contL")
	require.NoError(t, err)
	assert.Equal(t, 0.0, wMin)
	assert.Equal(t, 7.5, wMax)
}

func Test_Recording_04(t *testing.T) {
	// Flattened weight layout
	text := `{"timeStep": 1.0, "variables": [{"type": "w", "popNameShort": "P",
	  "data": {"srcNeuronId": [0, 1], "dstNeuronId": [2, 2], "w": [0.5, 0.7], "timeStamp": [0.0, 0.0]}}]}`
	rec, err := Parse([]byte(text))
	require.NoError(t, err)
	//
	w, err := rec.Weights("P")
	require.NoError(t, err)
	assert.Equal(t, []uint{2}, w.Destinations())
	//
	_, err = rec.Weights("Q")
	assert.Error(t, err)
}

func Test_Recording_05(t *testing.T) {
	rec, _ := Parse([]byte(recording))
	pops, err := rec.Populations()
	require.NoError(t, err)
	// IN, DG and OUT only, since no other spikes were recorded
	require.Len(t, pops, 3)
	assert.Equal(t, trace.RoleDecoder, pops[1].Role)
	//
	params, err := rec.TraceParams(trace.Params{SimTime: rec.SimTime, WriteHold: 2, ReadHold: 1})
	require.NoError(t, err)
	tr, err := trace.Reconstruct(pops, params)
	require.NoError(t, err)
	//
	first, ok := tr.Find(1)
	require.True(t, ok)
	assert.Equal(t, "Learn 0", first.Begin.String())
	assert.Equal(t, "Learn 0", first.End.String())
	//
	read, ok := tr.Find(4)
	require.True(t, ok)
	assert.Equal(t, "Recall 1", read.Begin.String())
	//
	cue, _ := read.Cell(tr.Columns, "INcue")
	assert.Equal(t, 2, cue.Value)
}

func Test_Recording_06(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "run.json")
	require.NoError(t, os.WriteFile(filename, []byte(recording), 0o644))
	//
	rec, err := Load(filename)
	require.NoError(t, err)
	assert.Equal(t, uint(3), rec.ContSize)
	//
	_, err = Load(filepath.Join(t.TempDir(), "none.json"))
	assert.ErrorContains(t, err, "none.json")
}

func Test_Recording_07(t *testing.T) {
	rec, _ := Parse([]byte(`{"endianness": "middle", "timeStep": 1.0}`))
	//
	_, err := rec.TraceParams(trace.Params{WriteHold: 1, ReadHold: 1})
	assert.Error(t, err)
	//
	_, err = rec.Populations()
	assert.ErrorContains(t, err, "IL")
}

func Test_Recording_08(t *testing.T) {
	rec, _ := Parse([]byte(`{"cueSize": 7, "contSize": 4, "endianness": "big_endian", "timeStep": 0.5,
		"simTime": 6.0}`))
	// Configured memory differs from the recorded one
	base := trace.Params{CueSize: 3, CueWidth: 2, ContWidth: 3, Endianness: codec.LittleEndian, TimeStep: 1,
		SimTime: 50, KeepEmpty: true, WriteHold: 3, ReadHold: 2}
	//
	params, err := rec.TraceParams(base)
	require.NoError(t, err)
	//
	assert.Equal(t, trace.Params{CueSize: 7, CueWidth: 3, ContWidth: 4, Endianness: codec.BigEndian, TimeStep: 0.5,
		SimTime: 50, KeepEmpty: true, WriteHold: 3, ReadHold: 2}, params)
}
