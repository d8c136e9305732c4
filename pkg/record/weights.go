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
	"bytes"
	"fmt"
	"math"
	"slices"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// WeightSeries holds every weight sample of a projection as parallel arrays,
// such that the ith sample is the weight of the synapse Src[i] -> Dst[i] at
// Time[i].
type WeightSeries struct {
	Src  []uint    `json:"srcNeuronId"`
	Dst  []uint    `json:"dstNeuronId"`
	W    []float64 `json:"w"`
	Time []float64 `json:"timeStamp"`
}

// Len returns the number of samples.
func (p *WeightSeries) Len() int {
	return len(p.W)
}

// Append a single sample.
func (p *WeightSeries) Append(src uint, dst uint, w float64, time float64) {
	p.Src = append(p.Src, src)
	p.Dst = append(p.Dst, dst)
	p.W = append(p.W, w)
	p.Time = append(p.Time, time)
}

// Destinations returns the distinct destination neurons, in ascending order.
func (p *WeightSeries) Destinations() []uint {
	dsts := slices.Clone(p.Dst)
	slices.Sort(dsts)
	//
	return slices.Compact(dsts)
}

// Sources returns the distinct source neurons, in ascending order.
func (p *WeightSeries) Sources() []uint {
	srcs := slices.Clone(p.Src)
	slices.Sort(srcs)
	//
	return slices.Compact(srcs)
}

// Range returns the smallest and largest weight recorded.
func (p *WeightSeries) Range() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	//
	for _, w := range p.W {
		lo = min(lo, w)
		hi = max(hi, w)
	}
	//
	return lo, hi
}

// Synapse extracts the evolution of a single synapse, as parallel time and
// weight arrays.
func (p *WeightSeries) Synapse(src uint, dst uint) ([]float64, []float64) {
	var times, weights []float64
	//
	for i := range p.W {
		if p.Src[i] == src && p.Dst[i] == dst {
			times = append(times, p.Time[i])
			weights = append(weights, p.W[i])
		}
	}
	//
	return times, weights
}

// Weights returns the weight samples recorded for a projection.  Two layouts
// are accepted: the flattened series (srcNeuronId, dstNeuronId, w, timeStamp),
// or the raw list of checkpoints, each a list of [src, dst, w] triples.
// Checkpoint k is taken at k*timeStep.
func (r *Recording) Weights(projection string) (WeightSeries, error) {
	v, ok := r.Find(WEIGHTS, projection)
	if !ok {
		return WeightSeries{}, fmt.Errorf("no weights recorded for %s", projection)
	}
	//
	data := bytes.TrimSpace(v.Data)
	//
	if len(data) > 0 && data[0] == '{' {
		var series WeightSeries
		//
		if err := json.Unmarshal(data, &series); err != nil {
			return WeightSeries{}, errors.Wrapf(err, "weights of %s", projection)
		} else if n := len(series.W); len(series.Src) != n || len(series.Dst) != n || len(series.Time) != n {
			return WeightSeries{}, fmt.Errorf("weights of %s have mismatched lengths", projection)
		}
		//
		return series, nil
	}
	//
	var checkpoints [][][3]float64
	//
	if err := json.Unmarshal(data, &checkpoints); err != nil {
		return WeightSeries{}, errors.Wrapf(err, "weights of %s", projection)
	}
	//
	return FlattenCheckpoints(checkpoints, r.TimeStep), nil
}

// FlattenCheckpoints converts a list of weight checkpoints into a series, where
// checkpoint k is stamped k*timeStep.
func FlattenCheckpoints(checkpoints [][][3]float64, timeStep float64) WeightSeries {
	var series WeightSeries
	//
	for k, checkpoint := range checkpoints {
		for _, syn := range checkpoint {
			series.Append(uint(syn[0]), uint(syn[1]), syn[2], float64(k)*timeStep)
		}
	}
	//
	return series
}
