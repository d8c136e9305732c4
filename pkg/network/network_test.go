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
package network

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/consensys/go-hipmem/pkg/codec"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const parameters = `{
  "neuronParameters": {
    "DGL": {"tau_m": 0.1}, "CA3cueL": {"tau_m": 20.0}, "CA3contL": {"tau_m": 20.0},
    "CA1L": {"tau_m": 0.1}, "OL": {"tau_m": 20.0}
  },
  "initNeuronParameters": {"CA3cueL": {"vInit": -60}, "CA3contL": {"vInit": -60}, "OL": {"vInit": -60}},
  "synParameters": {
    "IL-DGL": {"initWeight": 5.0, "delay": 1.0},
    "DGL-CA3cueL": {"initWeight": 5.0, "delay": 1.0},
    "IL-CA3contL": {"initWeight": 5.0, "delay": 1.0, "receptor_type": "excitatory"},
    "CA3cueL-CA3contL": {"initWeight": 0.0, "delay": 1.0, "tau_plus": 3.0, "tau_minus": 3.0,
                         "A_plus": 6.0, "A_minus": 6.0, "w_min": 0.0, "w_max": 7.5},
    "CA3cueL-CA1L": {"initWeight": 5.0, "delay": 1.0},
    "CA1L-OL": {"initWeight": 5.0, "delay": 1.0},
    "CA3contL-OL": {"initWeight": 5.0, "delay": 1.0, "receptor_type": "excitatory"}
  }
}`

func Test_Network_00(t *testing.T) {
	net := build(t, 3, 4, codec.LittleEndian)
	//
	check_Size(t, net, IL, 6)
	check_Size(t, net, DG, 4)
	check_Size(t, net, CA3CUE, 3)
	check_Size(t, net, CA3CONT, 4)
	check_Size(t, net, CA1, 2)
	check_Size(t, net, OL, 6)
	assert.Len(t, net.Projections, 7)
}

func Test_Network_01(t *testing.T) {
	net := build(t, 3, 2, codec.LittleEndian)
	// Decoder neuron 3 listens to both cue lines, neuron 0 to none
	check_Connections(t, net, "IL-DGL", Connection{0, 1}, Connection{1, 2}, Connection{0, 3}, Connection{1, 3})
	// Decoder neuron j drives cue store neuron j-1
	check_Connections(t, net, "DGL-CA3cueL", Connection{1, 0}, Connection{2, 1}, Connection{3, 2})
	// Content lines follow the cue lines
	check_Connections(t, net, "IL-CA3contL", Connection{2, 0}, Connection{3, 1})
	// Cue store neuron i encodes address i+1
	check_Connections(t, net, "CA3cueL-CA1L", Connection{0, 0}, Connection{1, 1}, Connection{2, 0}, Connection{2, 1})
	check_Connections(t, net, "CA3contL-OL", Connection{0, 2}, Connection{1, 3})
	//
	stdp, ok := net.Projection("CA3cueL-CA3contL")
	require.True(t, ok)
	assert.True(t, stdp.Plastic)
	assert.Len(t, stdp.Connections, 6)
}

func Test_Network_02(t *testing.T) {
	net := build(t, 3, 2, codec.BigEndian)
	// Address 1 is on the last line under big endian
	check_Connections(t, net, "IL-DGL", Connection{1, 1}, Connection{0, 2}, Connection{0, 3}, Connection{1, 3})
}

func Test_Network_03(t *testing.T) {
	var (
		cerr   *codec.ConfigError
		params Parameters
	)
	//
	require.NoError(t, json.Unmarshal([]byte(parameters), &params))
	delete(params.Syn["CA3cueL-CA3contL"], "tau_minus")
	//
	_, err := Build("hipmem", 3, 2, codec.LittleEndian, &params)
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "synParameters.CA3cueL-CA3contL.tau_minus", cerr.Param)
	//
	delete(params.Neuron, "OL")
	_, err = Build("hipmem", 3, 2, codec.LittleEndian, &params)
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "neuronParameters.OL", cerr.Param)
}

func Test_Network_04(t *testing.T) {
	var (
		buffer bytes.Buffer
		back   Network
	)
	//
	net := build(t, 5, 3, codec.LittleEndian)
	require.NoError(t, net.WriteManifest(&buffer))
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &back))
	//
	assert.Equal(t, net.Name, back.Name)
	assert.Len(t, back.Projections, 7)
	assert.Equal(t, net.Projections[0].Connections, back.Projections[0].Connections)
}

func Test_Network_05(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "network_config.json")
	require.NoError(t, os.WriteFile(filename, []byte(parameters), 0o644))
	//
	params, err := LoadParameters(filename)
	require.NoError(t, err)
	assert.Contains(t, params.Syn, "CA1L-OL")
	//
	_, err = Build("hipmem", 3, 2, "sideways", params)
	assert.Error(t, err)
}

// ===================================================================
// Test Helpers
// ===================================================================

func build(t *testing.T, cueSize uint, contSize uint, endianness codec.Endianness) *Network {
	var params Parameters
	//
	require.NoError(t, json.Unmarshal([]byte(parameters), &params))
	net, err := Build("hipmem", cueSize, contSize, endianness, &params)
	require.NoError(t, err)
	//
	return net
}

func check_Size(t *testing.T, net *Network, name string, size uint) {
	pop, ok := net.Population(name)
	//
	if !ok {
		t.Errorf("missing population %s", name)
	} else if pop.Size != size {
		t.Errorf("population %s has %d neurons, expected %d", name, pop.Size, size)
	}
}

func check_Connections(t *testing.T, net *Network, name string, expected ...Connection) {
	proj, ok := net.Projection(name)
	//
	if !ok {
		t.Fatalf("missing projection %s", name)
	} else if !slices.Equal(proj.Connections, expected) {
		t.Errorf("projection %s has connections %v, expected %v", name, proj.Connections, expected)
	}
}
