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
	"fmt"
	"os"
	"strconv"

	"github.com/consensys/go-hipmem/pkg/network"
	"github.com/consensys/go-hipmem/pkg/util"
	"github.com/consensys/go-hipmem/pkg/util/termio"
	"github.com/spf13/cobra"
)

var networkCmd = &cobra.Command{
	Use:   "network [flags] config_file parameter_file",
	Short: "describe the network implementing a memory.",
	Long: `Build the populations and projections of the network implementing
	the memory described in a configuration file, using the neuron and synapse
	parameters given in a JSON parameter file.  Optionally, write a manifest
	for the simulation driver.`,
	Run: func(cmd *cobra.Command, args []string) {
		checkArgs(cmd, args, 2)
		//
		cfg := readConfigFile(args[0])
		params, err := network.LoadParameters(args[1])
		checkInput(err)
		//
		net, err := network.Build(cfg.Simulation.NetworkName, cfg.Memory.CueSize, cfg.Memory.ContSize,
			cfg.Endianness(), params)
		checkInput(err)
		//
		if output := GetString(cmd, "output"); output != "" {
			checkInput(util.WriteOutputFile(output, net.WriteManifest))
		}
		//
		checkInput(printNetwork(net, termio.IsTerminal(os.Stdout)))
	},
}

func printNetwork(net *network.Network, colour bool) error {
	var (
		pops  = termio.NewTablePrinter(3, uint(len(net.Populations)+1))
		projs = termio.NewTablePrinter(4, uint(len(net.Projections)+1))
		bold  = termio.BoldAnsiEscape()
	)
	//
	pops.SetRow(0, "population", "neurons", "model")
	projs.SetRow(0, "projection", "synapses", "plastic", "weight")
	//
	for i, p := range net.Populations {
		pops.SetRow(uint(i+1), p.Name, strconv.FormatUint(uint64(p.Size), 10), p.Model)
	}
	//
	for i, p := range net.Projections {
		projs.SetRow(uint(i+1), p.Name, strconv.Itoa(len(p.Connections)), strconv.FormatBool(p.Plastic),
			fmt.Sprintf("%v", p.Synapse["initWeight"]))
	}
	//
	for _, tp := range []*termio.TablePrinter{pops, projs} {
		for col := uint(0); col < tp.Width(); col++ {
			tp.SetEscape(col, 0, bold)
		}
		//
		tp.AnsiEscapes(colour)
		//
		if err := tp.Print(os.Stdout); err != nil {
			return err
		}
	}
	//
	return nil
}

func init() {
	rootCmd.AddCommand(networkCmd)
	networkCmd.Flags().StringP("output", "o", "", "write the network manifest (JSON) to this file")
}
