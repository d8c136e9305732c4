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
package cmd

import (
	"io"
	"path/filepath"
	"time"

	"github.com/consensys/go-hipmem/pkg/testbench"
	"github.com/consensys/go-hipmem/pkg/util"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var testbenchCmd = &cobra.Command{
	Use:   "testbench [flags] config_file",
	Short: "generate input spike trains for a memory.",
	Long: `Generate the battery of testbenches (or a single scenario) for the
	memory described in a given configuration file.  Each testbench is written
	into its own directory below a timestamped directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		checkArgs(cmd, args, 1)
		//
		cfg := readConfigFile(args[0])
		// Apply overrides
		if cmd.Flags().Changed("seed") {
			cfg.Testbench.Seed = GetUint64(cmd, "seed")
		}
		//
		if cmd.Flags().Changed("operations") {
			cfg.Testbench.Operations = GetUint(cmd, "operations")
		}
		//
		if output := GetString(cmd, "output"); output != "" {
			cfg.Testbench.Path = output
		}
		// Select scenarios
		scenarios := testbench.Scenarios
		//
		if name := GetString(cmd, "scenario"); name != "" {
			scenario, err := testbench.FindScenario(name)
			checkInput(err)
			//
			scenarios = []testbench.Scenario{scenario}
		}
		//
		rng, seed := util.NewRandom(cfg.Testbench.Seed)
		dir := util.StampedDir(cfg.Testbench.Path, "tb_", time.Now())
		//
		log.Debugf("random seed is %d", seed)
		//
		for _, scenario := range scenarios {
			stats := util.NewPerfStats()
			result, err := scenario.Generate(cfg.Layout(), cfg.Timing(), rng, cfg.Testbench.Operations)
			checkInput(err)
			//
			filename := filepath.Join(dir, scenario.Dir, testbench.ArtifactName)
			err = util.WriteOutputFile(filename, func(w io.Writer) error {
				return testbench.WriteArtifact(w, result)
			})
			checkInput(err)
			//
			log.Infof("%s: end time %d ms, %d operations (%d learning, %d recalling)", scenario.Description,
				result.EndTime, result.Operations, result.Learn, result.Recall)
			stats.Log(scenario.Name)
		}
	},
}

func init() {
	rootCmd.AddCommand(testbenchCmd)
	testbenchCmd.Flags().String("scenario", "", "generate only the named scenario")
	testbenchCmd.Flags().Uint64("seed", 0, "seed for the random scenario (0 seeds from the clock)")
	testbenchCmd.Flags().Uint("operations", 0, "number of operations in the random scenario")
	testbenchCmd.Flags().StringP("output", "o", "", "directory in which testbenches are written")
}
