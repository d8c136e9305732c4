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
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// ArtifactName is the file name under which a testbench is stored.
const ArtifactName = "input_spikes.ini"

// The artifact layout mirrors the sections read by the simulation driver.  The
// document is valid TOML, and also readable as an INI file whose values are
// literal lists.
type artifact struct {
	InputCue struct {
		Spikes [][]uint `toml:"InputSpikesCue"`
	} `toml:"input_cue"`
	InputCont struct {
		Spikes [][]uint `toml:"InputSpikesCont"`
	} `toml:"input_cont"`
	Summary *summary `toml:"testbench,omitempty"`
}

type summary struct {
	EndTime    uint `toml:"endTime"`
	Operations uint `toml:"numOperations"`
	Learn      uint `toml:"numLearning"`
	Recall     uint `toml:"numRecalling"`
}

// WriteArtifact serialises the spike trains of a testbench.
func WriteArtifact(w io.Writer, result Result) error {
	var doc artifact
	//
	doc.InputCue.Spikes = cloneLines(result.Cue)
	doc.InputCont.Spikes = cloneLines(result.Content)
	doc.Summary = &summary{result.EndTime, result.Operations, result.Learn, result.Recall}
	//
	return toml.NewEncoder(w).Encode(doc)
}

// ReadArtifact parses a testbench previously written with WriteArtifact.  The
// summary section is optional, in which case the end time is recovered as one
// past the last spike.
func ReadArtifact(r io.Reader) (Result, error) {
	var doc artifact
	//
	meta, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return Result{}, err
	} else if !meta.IsDefined("input_cue", "InputSpikesCue") {
		return Result{}, fmt.Errorf("missing input_cue.InputSpikesCue")
	} else if !meta.IsDefined("input_cont", "InputSpikesCont") {
		return Result{}, fmt.Errorf("missing input_cont.InputSpikesCont")
	}
	//
	result := Result{Cue: cloneLines(doc.InputCue.Spikes), Content: cloneLines(doc.InputCont.Spikes)}
	//
	if doc.Summary != nil {
		result.EndTime = doc.Summary.EndTime
		result.Operations = doc.Summary.Operations
		result.Learn = doc.Summary.Learn
		result.Recall = doc.Summary.Recall
	} else {
		result.EndTime = lastSpike(result.Cue, result.Content) + 1
	}
	//
	return result, nil
}

func lastSpike(groups ...[][]uint) uint {
	last := uint(0)
	//
	for _, lines := range groups {
		for _, line := range lines {
			for _, t := range line {
				last = max(last, t)
			}
		}
	}
	//
	return last
}
