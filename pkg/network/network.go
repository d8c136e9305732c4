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
	"fmt"
	"io"
	"os"

	"github.com/consensys/go-hipmem/pkg/codec"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// Names of the populations, as used by the simulation driver.
const (
	IL      = "IL"
	DG      = "DGL"
	CA3CUE  = "CA3cueL"
	CA3CONT = "CA3contL"
	CA1     = "CA1L"
	OL      = "OL"
)

// Neuron models.
const (
	// SpikeSource replays the testbench spike trains.
	SpikeSource = "spike_source_array"
	// LIF is a current based leaky integrate and fire neuron.
	LIF = "IF_curr_exp"
	// Decoder is a bank of AND gates converting binary to one-hot.
	Decoder = "neural_decoder"
	// Encoder is a bank of OR gates converting one-hot to binary.
	Encoder = "neural_encoder"
)

// Parameters holds the neuron and synapse parameters of the network, as read
// from the network parameter file.
type Parameters struct {
	Neuron map[string]map[string]any `json:"neuronParameters"`
	Init   map[string]map[string]any `json:"initNeuronParameters"`
	Syn    map[string]map[string]any `json:"synParameters"`
}

// LoadParameters reads network parameters from a JSON file.
func LoadParameters(filename string) (*Parameters, error) {
	var params Parameters
	//
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", filename)
	} else if err := json.Unmarshal(bytes, &params); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", filename)
	}
	//
	return &params, nil
}

// Population describes a group of neurons.
type Population struct {
	Name  string         `json:"name"`
	Size  uint           `json:"size"`
	Model string         `json:"model"`
	Cell  map[string]any `json:"cellParameters,omitempty"`
	Init  map[string]any `json:"initialValues,omitempty"`
}

// Connection is a single synapse between two neurons.
type Connection struct {
	Src uint `json:"src"`
	Dst uint `json:"dst"`
}

// Projection describes the synapses from one population to another.  Each
// projection lists its connections explicitly.
type Projection struct {
	Name        string         `json:"name"`
	Src         string         `json:"src"`
	Dst         string         `json:"dst"`
	Plastic     bool           `json:"plastic"`
	Synapse     map[string]any `json:"synapse"`
	Connections []Connection   `json:"connections"`
}

// Network is the complete description handed to the simulation driver.
type Network struct {
	Name        string       `json:"networkName"`
	CueSize     uint         `json:"cueSize"`
	ContSize    uint         `json:"contSize"`
	Endianness  string       `json:"endianness"`
	Populations []Population `json:"populations"`
	Projections []Projection `json:"projections"`
}

// Keys every synapse must define.
var staticKeys = []string{"initWeight", "delay"}

// Keys the plastic synapses must define in addition.
var stdpKeys = []string{"tau_plus", "tau_minus", "A_plus", "A_minus", "w_min", "w_max"}

// Build constructs the DG-CA3-CA1 network for a memory of cueSize addresses
// holding contSize bits each.
func Build(name string, cueSize uint, contSize uint, endianness codec.Endianness, params *Parameters) (*Network, error) {
	if err := endianness.Check(); err != nil {
		return nil, err
	}
	//
	var (
		width = codec.CueWidth(cueSize)
		net   = &Network{Name: name, CueSize: cueSize, ContSize: contSize, Endianness: string(endianness)}
		err   error
	)
	// Populations
	net.Populations = []Population{{Name: IL, Size: width + contSize, Model: SpikeSource}}
	//
	for _, p := range []Population{
		{Name: DG, Size: 1 << width, Model: Decoder},
		{Name: CA3CUE, Size: cueSize, Model: LIF},
		{Name: CA3CONT, Size: contSize, Model: LIF},
		{Name: CA1, Size: width, Model: Encoder},
		{Name: OL, Size: width + contSize, Model: LIF},
	} {
		if p.Cell, err = lookup(params.Neuron, "neuronParameters", p.Name); err != nil {
			return nil, err
		}
		// Gates are not initialised
		if p.Model == LIF {
			if p.Init, err = lookup(params.Init, "initNeuronParameters", p.Name); err != nil {
				return nil, err
			}
		}
		//
		net.Populations = append(net.Populations, p)
	}
	// Projections
	projections := []Projection{
		{Src: IL, Dst: DG, Connections: decoderInputs(width, endianness)},
		{Src: DG, Dst: CA3CUE, Connections: oneToOne(1, 0, cueSize)},
		{Src: IL, Dst: CA3CONT, Connections: oneToOne(width, 0, contSize)},
		{Src: CA3CUE, Dst: CA3CONT, Plastic: true, Connections: allToAll(cueSize, contSize)},
		{Src: CA3CUE, Dst: CA1, Connections: encoderInputs(cueSize, width, endianness)},
		{Src: CA1, Dst: OL, Connections: oneToOne(0, 0, width)},
		{Src: CA3CONT, Dst: OL, Connections: oneToOne(0, width, contSize)},
	}
	//
	for _, p := range projections {
		p.Name = fmt.Sprintf("%s-%s", p.Src, p.Dst)
		//
		if p.Synapse, err = synapse(params, p.Name, p.Plastic); err != nil {
			return nil, err
		}
		//
		net.Projections = append(net.Projections, p)
	}
	//
	return net, nil
}

// Population returns the population with a given name, or false if none
// exists.
func (n *Network) Population(name string) (*Population, bool) {
	for i := range n.Populations {
		if n.Populations[i].Name == name {
			return &n.Populations[i], true
		}
	}
	//
	return nil, false
}

// Projection returns the projection with a given name, or false if none
// exists.
func (n *Network) Projection(name string) (*Projection, bool) {
	for i := range n.Projections {
		if n.Projections[i].Name == name {
			return &n.Projections[i], true
		}
	}
	//
	return nil, false
}

// WriteManifest writes the network description as indented JSON.
func (n *Network) WriteManifest(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	//
	return enc.Encode(n)
}

func lookup(table map[string]map[string]any, section string, name string) (map[string]any, error) {
	if entry, ok := table[name]; ok {
		return entry, nil
	}
	//
	return nil, codec.NewConfigError(fmt.Sprintf("%s.%s", section, name), "missing")
}

func synapse(params *Parameters, name string, plastic bool) (map[string]any, error) {
	syn, err := lookup(params.Syn, "synParameters", name)
	if err != nil {
		return nil, err
	}
	//
	keys := staticKeys
	if plastic {
		keys = append(keys[:len(keys):len(keys)], stdpKeys...)
	}
	//
	for _, key := range keys {
		if _, ok := syn[key]; !ok {
			return nil, codec.NewConfigError(fmt.Sprintf("synParameters.%s.%s", name, key), "missing")
		}
	}
	//
	return syn, nil
}

// Decoder neuron j fires when the cue lines present the value j, hence it
// listens to every line set in j.  Neuron 0 has no inputs.
func decoderInputs(width uint, endianness codec.Endianness) []Connection {
	var conns []Connection
	//
	for j := uint(0); j < 1<<width; j++ {
		// Endianness was checked by the caller.
		lines, _ := codec.Lines(j, width, endianness)
		for _, line := range lines {
			conns = append(conns, Connection{line, j})
		}
	}
	//
	return conns
}

// Cue store neuron i (address i+1) drives every encoder line set in i+1.
func encoderInputs(cueSize uint, width uint, endianness codec.Endianness) []Connection {
	var conns []Connection
	//
	for i := uint(0); i < cueSize; i++ {
		lines, _ := codec.Lines(codec.EncodeOneHot(int(i), 1), width, endianness)
		for _, line := range lines {
			conns = append(conns, Connection{i, line})
		}
	}
	//
	return conns
}

func oneToOne(srcOffset uint, dstOffset uint, n uint) []Connection {
	conns := make([]Connection, n)
	//
	for i := uint(0); i < n; i++ {
		conns[i] = Connection{srcOffset + i, dstOffset + i}
	}
	//
	return conns
}

func allToAll(nsrc uint, ndst uint) []Connection {
	conns := make([]Connection, 0, nsrc*ndst)
	//
	for i := uint(0); i < nsrc; i++ {
		for j := uint(0); j < ndst; j++ {
			conns = append(conns, Connection{i, j})
		}
	}
	//
	return conns
}
