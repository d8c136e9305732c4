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
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/consensys/go-hipmem/pkg/codec"
	"github.com/consensys/go-hipmem/pkg/testbench"
	"github.com/consensys/go-hipmem/pkg/trace"
	"github.com/pkg/errors"
)

// Memory describes the shape of the associative memory.
type Memory struct {
	// Number of addressable memory slots
	CueSize uint `toml:"cueSize"`
	// Number of content bits
	ContSize uint `toml:"contSize"`
	// Ordering of bits on binary coded lines
	Endianness string `toml:"endianness"`
}

// Testbench configures testbench generation.
type Testbench struct {
	ReadSpacing  uint `toml:"readSpacing"`
	ReadHold     uint `toml:"readHold"`
	WriteSpacing uint `toml:"writeSpacing"`
	WriteHold    uint `toml:"writeHold"`
	// Number of operations drawn by the random scenario
	Operations uint `toml:"numOperations"`
	// Seed for the random scenario (0 means time seeded)
	Seed uint64 `toml:"seed"`
	// Directory in which testbenches are written
	Path string `toml:"tbPath"`
}

// Simulation describes the run being analysed.
type Simulation struct {
	NetworkName string  `toml:"networkName"`
	TimeStep    float64 `toml:"timeStep"`
	// Duration of the run (ms); zero means taken from the recording
	SimTime float64 `toml:"simTime"`
}

// Trace configures trace reconstruction and its outputs.
type Trace struct {
	// Directory under which results are written
	BaseSavePath string `toml:"baseSavePath"`
	// Keep instants at which nothing fired
	AllStamps bool `toml:"allStamps"`
	Plots     bool `toml:"plots"`
	Excel     bool `toml:"excel"`
	// Either "vertical" (instants as rows) or "horizontal"
	Orientation string `toml:"orientation"`
	// Maximum width of a column in the text table
	MaxWidth uint `toml:"maxWidth"`
}

// Config is the complete configuration of the toolbox.
type Config struct {
	Memory     Memory     `toml:"memory"`
	Testbench  Testbench  `toml:"testbench"`
	Simulation Simulation `toml:"simulation"`
	Trace      Trace      `toml:"trace"`
}

// Default returns the configuration used when no file overrides it.
func Default() Config {
	return Config{
		Memory:     Memory{CueSize: 3, ContSize: 3, Endianness: string(codec.LittleEndian)},
		Testbench:  Testbench{2, 1, 3, 2, 20, 0, "testbench"},
		Simulation: Simulation{"hipmem", 1.0, 0},
		Trace:      Trace{"results", false, true, true, "vertical", 32},
	}
}

// Load reads a configuration file over the defaults.
func Load(filename string) (Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return Config{}, errors.Wrapf(err, "opening %s", filename)
	}
	//
	defer file.Close()
	//
	cfg, err := Decode(file)
	//
	return cfg, errors.Wrapf(err, "reading %s", filename)
}

// Decode parses a configuration over the defaults, rejecting unknown keys, and
// then validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	//
	meta, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, err
	} else if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		//
		return Config{}, fmt.Errorf("unknown keys %s", strings.Join(keys, ", "))
	}
	//
	return cfg, cfg.Validate()
}

// Validate checks every parameter.  Endianness and orientation are never
// defaulted silently.
func (c *Config) Validate() error {
	switch {
	case c.Memory.CueSize == 0:
		return codec.NewConfigError("cueSize", "0")
	case c.Memory.ContSize == 0:
		return codec.NewConfigError("contSize", "0")
	case c.Testbench.ReadHold == 0:
		return codec.NewConfigError("readHold", "0")
	case c.Testbench.WriteHold == 0:
		return codec.NewConfigError("writeHold", "0")
	case c.Testbench.ReadSpacing == 0:
		return codec.NewConfigError("readSpacing", "0")
	case c.Testbench.WriteSpacing == 0:
		return codec.NewConfigError("writeSpacing", "0")
	case c.Simulation.TimeStep <= 0:
		return codec.NewConfigError("timeStep", fmt.Sprintf("%v", c.Simulation.TimeStep))
	case c.Trace.Orientation != "vertical" && c.Trace.Orientation != "horizontal":
		return codec.NewConfigError("orientation", c.Trace.Orientation, "vertical", "horizontal")
	}
	//
	_, err := codec.ParseEndianness(c.Memory.Endianness)
	//
	return err
}

// Endianness returns the configured endianness (which must have been
// validated).
func (c *Config) Endianness() codec.Endianness {
	e, _ := codec.ParseEndianness(c.Memory.Endianness)
	return e
}

// Layout returns the input line layout for testbench generation.
func (c *Config) Layout() testbench.Layout {
	return testbench.Layout{CueSize: c.Memory.CueSize, ContSize: c.Memory.ContSize, Endianness: c.Endianness()}
}

// Timing returns the testbench timing.
func (c *Config) Timing() testbench.Timing {
	tb := c.Testbench
	return testbench.Timing{ReadSpacing: tb.ReadSpacing, ReadHold: tb.ReadHold, WriteSpacing: tb.WriteSpacing,
		WriteHold: tb.WriteHold}
}

// TraceParams returns the parameters for reconstructing a trace of a run
// lasting simTime, unless the configuration fixes the simulation time itself.
func (c *Config) TraceParams(simTime float64) trace.Params {
	if c.Simulation.SimTime > 0 {
		simTime = c.Simulation.SimTime
	}
	//
	params := trace.Params{
		SimTime:   simTime,
		KeepEmpty: c.Trace.AllStamps,
		WriteHold: c.Testbench.WriteHold,
		ReadHold:  c.Testbench.ReadHold,
	}
	//
	return params.WithShape(c.Memory.CueSize, c.Memory.ContSize, c.Endianness(), c.Simulation.TimeStep)
}
