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
	"fmt"

	"github.com/consensys/go-hipmem/pkg/codec"
	"github.com/consensys/go-hipmem/pkg/trace"
	"github.com/consensys/go-hipmem/pkg/util"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
	log "github.com/sirupsen/logrus"
)

// Supported variable types.
const (
	// SPIKES identifies per-neuron spike times
	SPIKES = "spikes"
	// VOLTAGE identifies per-neuron membrane potential samples
	VOLTAGE = "v"
	// WEIGHTS identifies synaptic weight checkpoints of a projection
	WEIGHTS = "w"
)

// Variable is a single recorded quantity of one population (or projection).
type Variable struct {
	Type         string          `json:"type"`
	PopName      string          `json:"popName"`
	PopNameShort string          `json:"popNameShort"`
	NumNeurons   uint            `json:"numNeurons"`
	Data         json.RawMessage `json:"data"`
}

// Recording is the data written by the simulation driver after a run.
type Recording struct {
	NetworkName string  `json:"networkName"`
	TimeStep    float64 `json:"timeStep"`
	SimTime     float64 `json:"simTime"`
	CueSize     uint    `json:"cueSize"`
	ContSize    uint    `json:"contSize"`
	Endianness  string  `json:"endianness"`
	// Synapse parameters, keyed by projection name
	SynParameters map[string]map[string]any `json:"synParameters"`
	Variables     []Variable                `json:"variables"`
}

// Load reads a recording from a file, which may be bzip2 compressed.
func Load(filename string) (*Recording, error) {
	bytes, err := util.ReadInputFile(filename)
	if err != nil {
		return nil, err
	}
	//
	rec, err := Parse(bytes)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", filename)
	}
	//
	log.Debugf("loaded %d variables for network \"%s\" from %s", len(rec.Variables), rec.NetworkName, filename)
	//
	return rec, nil
}

// Parse a recording, checking that every variable has a supported type.
func Parse(bytes []byte) (*Recording, error) {
	var rec Recording
	//
	if err := json.Unmarshal(bytes, &rec); err != nil {
		return nil, err
	}
	//
	for _, v := range rec.Variables {
		switch v.Type {
		case SPIKES, VOLTAGE, WEIGHTS:
		default:
			return nil, codec.NewConfigError("type", v.Type, SPIKES, VOLTAGE, WEIGHTS)
		}
	}
	//
	return &rec, nil
}

// Find a variable of a given type for a given (short) population name.
func (r *Recording) Find(kind string, short string) (*Variable, bool) {
	for i := range r.Variables {
		if r.Variables[i].Type == kind && r.Variables[i].PopNameShort == short {
			return &r.Variables[i], true
		}
	}
	//
	return nil, false
}

// Spikes returns the spike trains recorded for a given population.
func (r *Recording) Spikes(short string) ([][]float64, error) {
	var spikes [][]float64
	//
	v, ok := r.Find(SPIKES, short)
	if !ok {
		return nil, fmt.Errorf("no spikes recorded for %s", short)
	} else if err := json.Unmarshal(v.Data, &spikes); err != nil {
		return nil, errors.Wrapf(err, "spikes of %s", short)
	}
	// Neurons which never fired may be omitted at the end.
	for uint(len(spikes)) < v.NumNeurons {
		spikes = append(spikes, nil)
	}
	//
	return spikes, nil
}

// Voltages returns the membrane potential samples recorded for a given
// population, one series per neuron.  Missing samples (null) are repaired: a
// missing first sample becomes -60, a missing last sample repeats the
// previous, and any other is the mean of its neighbours.
func (r *Recording) Voltages(short string) ([][]float64, error) {
	var raw [][]*float64
	//
	v, ok := r.Find(VOLTAGE, short)
	if !ok {
		return nil, fmt.Errorf("no membrane potentials recorded for %s", short)
	} else if err := json.Unmarshal(v.Data, &raw); err != nil {
		return nil, errors.Wrapf(err, "membrane potentials of %s", short)
	}
	//
	series := make([][]float64, len(raw))
	for i, samples := range raw {
		series[i] = RepairSeries(samples)
	}
	//
	return series, nil
}

// RESTING is the membrane potential assumed for a missing first sample.
const RESTING = -60.0

// RepairSeries fills in missing samples of a single membrane potential series.
// Samples are repaired in order, so a repaired sample feeds into the next.
func RepairSeries(samples []*float64) []float64 {
	var (
		n      = len(samples)
		result = make([]float64, n)
	)
	//
	for i, s := range samples {
		switch {
		case s != nil:
			result[i] = *s
		case i == 0:
			result[i] = RESTING
		case i == n-1:
			result[i] = result[i-1]
		case samples[i+1] == nil:
			// Neighbour is missing as well, hence carry the previous value.
			result[i] = result[i-1]
		default:
			result[i] = (result[i-1] + *samples[i+1]) / 2
		}
	}
	//
	return result
}

// population describes how a recorded population feeds the trace.
type population struct {
	short string
	label string
	role  trace.Role
	must  bool
}

// Populations recorded by the simulation driver, in trace column order.
var populations = []population{
	{"IL", "IN", trace.RoleInput, true},
	{"DGL", "DG", trace.RoleDecoder, false},
	{"CA3cueL", "CA3cue", trace.RoleCueStore, false},
	{"CA3contL", "CA3cont", trace.RoleContentStore, false},
	{"CA1L", "CA1", trace.RoleEncoder, false},
	{"OL", "OUT", trace.RoleOutput, true},
}

// Populations extracts the spike trains of every known population for trace
// reconstruction.  Input and output layers are mandatory; other layers are
// included when present.
func (r *Recording) Populations() ([]trace.Population, error) {
	var pops []trace.Population
	//
	for _, p := range populations {
		if _, ok := r.Find(SPIKES, p.short); !ok && !p.must {
			log.Debugf("no spikes recorded for %s", p.short)
			continue
		}
		//
		spikes, err := r.Spikes(p.short)
		if err != nil {
			return nil, err
		}
		//
		pops = append(pops, trace.Population{Label: p.label, Role: p.role, Spikes: spikes})
	}
	//
	return pops, nil
}

// TraceParams replaces the shape of the memory (sizes, endianness and time
// step) in the given parameters with that of the recorded network.  The hold
// times and simulation time are kept.
func (r *Recording) TraceParams(base trace.Params) (trace.Params, error) {
	endianness, err := codec.ParseEndianness(r.Endianness)
	if err != nil {
		return trace.Params{}, err
	}
	//
	params := base.WithShape(r.CueSize, r.ContSize, endianness, r.TimeStep)
	//
	return params, params.Check()
}

// WeightLimits returns the minimum and maximum weight configured for a
// projection.
func (r *Recording) WeightLimits(projection string) (float64, float64, error) {
	params, ok := r.SynParameters[projection]
	if !ok {
		return 0, 0, fmt.Errorf("no synapse parameters for %s", projection)
	}
	//
	wMin, ok1 := params["w_min"].(float64)
	wMax, ok2 := params["w_max"].(float64)
	//
	if !ok1 || !ok2 {
		return 0, 0, fmt.Errorf("missing w_min/w_max for %s", projection)
	}
	//
	return wMin, wMax, nil
}
