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
	"os"
	"path/filepath"

	"github.com/consensys/go-hipmem/pkg/config"
	"github.com/consensys/go-hipmem/pkg/network"
	"github.com/consensys/go-hipmem/pkg/record"
	"github.com/consensys/go-hipmem/pkg/report"
	"github.com/consensys/go-hipmem/pkg/trace"
	"github.com/consensys/go-hipmem/pkg/util"
	"github.com/consensys/go-hipmem/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// The plastic projection whose weights are plotted.
const PLASTIC_PROJECTION = network.CA3CUE + "-" + network.CA3CONT

var traceCmd = &cobra.Command{
	Use:   "trace [flags] config_file recording_file",
	Short: "reconstruct the operations of a simulation run.",
	Long: `Reconstruct a trace from the spikes recorded during a simulation
	run, identifying the learning and recalling operations performed.  The
	trace is printed and written (as text, TSV and Excel) below the base save
	path, together with spike, weight and membrane potential plots.`,
	Run: func(cmd *cobra.Command, args []string) {
		checkArgs(cmd, args, 2)
		//
		cfg := readConfigFile(args[0])
		applyTraceFlags(cmd, &cfg)
		// Read recording
		stats := util.NewPerfStats()
		rec, err := record.Load(args[1])
		checkInput(err)
		stats.Log("Reading recording")
		//
		params, err := rec.TraceParams(cfg.TraceParams(rec.SimTime))
		checkInput(err)
		//
		if rec.CueSize != cfg.Memory.CueSize || rec.ContSize != cfg.Memory.ContSize {
			log.Warnf("recording is for a %dx%d memory, configuration describes %dx%d", rec.CueSize, rec.ContSize,
				cfg.Memory.CueSize, cfg.Memory.ContSize)
		}
		// Reconstruct
		pops, err := rec.Populations()
		checkInput(err)
		//
		stats = util.NewPerfStats()
		tr, err := trace.Reconstruct(pops, params)
		checkInput(err)
		stats.Log("Reconstructing trace")
		//
		table := report.Rows(tr, params)
		colour := termio.IsTerminal(os.Stdout)
		//
		if cmd.Flags().Changed("ansi-escapes") {
			colour = GetFlag(cmd, "ansi-escapes")
		}
		//
		opts := report.TextOptions{AnsiEscapes: colour, MaxWidth: cfg.Trace.MaxWidth}
		checkInput(report.WriteText(os.Stdout, table, opts))
		logCounters(tr.Counters)
		// Write sinks
		name := rec.NetworkName
		if name == "" {
			name = cfg.Simulation.NetworkName
		}
		//
		dir := filepath.Join(cfg.Trace.BaseSavePath, name)
		checkInput(writeSinks(dir, name, &cfg, table, pops, rec))
	},
}

func applyTraceFlags(cmd *cobra.Command, cfg *config.Config) {
	if GetFlag(cmd, "all-stamps") {
		cfg.Trace.AllStamps = true
	}
	//
	if GetFlag(cmd, "no-plots") {
		cfg.Trace.Plots = false
	}
	//
	if GetFlag(cmd, "no-excel") {
		cfg.Trace.Excel = false
	}
	//
	if cmd.Flags().Changed("max-width") {
		cfg.Trace.MaxWidth = GetUint(cmd, "max-width")
	}
	//
	if output := GetString(cmd, "output"); output != "" {
		cfg.Trace.BaseSavePath = output
	}
}

// Identifiers of the jobs writing each sink.  Plot jobs are numbered from
// plotJob onwards.
const (
	textJob uint = iota
	tsvJob
	excelJob
	plotJob
)

// Populations whose membrane potentials are plotted, when recorded.
var MEMBRANE_POPULATIONS = []string{network.CA3CUE, network.CA3CONT}

func writeSinks(dir string, name string, cfg *config.Config, table report.Table, pops []trace.Population,
	rec *record.Recording) error {
	var (
		base  = filepath.Join(dir, name)
		stats = util.NewPerfStats()
		jobs  []util.Job
	)
	// Text table (never coloured)
	jobs = append(jobs, util.NewJob(textJob, func() error {
		return util.WriteOutputFile(base+"_table.txt", func(w io.Writer) error {
			return report.WriteText(w, table, report.TextOptions{})
		})
	}))
	//
	jobs = append(jobs, util.NewJob(tsvJob, func() error {
		return util.WriteOutputFile(base+"_table.tsv", func(w io.Writer) error {
			return report.WriteTSV(w, table)
		})
	}))
	//
	if cfg.Trace.Excel {
		orientation, err := report.ParseOrientation(cfg.Trace.Orientation)
		if err != nil {
			return err
		}
		//
		jobs = append(jobs, util.NewJob(excelJob, func() error {
			return util.WriteOutputFile(base+"_table.xlsx", func(w io.Writer) error {
				return report.WriteExcel(w, table, orientation)
			})
		}))
	}
	//
	if cfg.Trace.Plots {
		jobs = append(jobs, plotJobs(base, name, pops, rec)...)
	}
	//
	err := util.ParExec(jobs)
	stats.Log("Writing results")
	//
	return err
}

func plotJobs(base string, name string, pops []trace.Population, rec *record.Recording) []util.Job {
	var plots = []func() error{
		func() error {
			return util.WriteOutputFile(base+"_all_spikes.png", func(w io.Writer) error {
				return report.WriteSpikeRaster(w, pops, name)
			})
		},
		func() error {
			return util.WriteOutputFile(base+"_in_out_spikes.png", func(w io.Writer) error {
				return report.WriteSpikeRaster(w, report.InputOutput(pops), name)
			})
		},
	}
	// Weights are optional
	if _, ok := rec.Find(record.WEIGHTS, PLASTIC_PROJECTION); ok {
		plots = append(plots, func() error { return writeWeights(base, rec) })
	} else {
		log.Infof("no weights recorded for %s", PLASTIC_PROJECTION)
	}
	// As are membrane potentials
	for _, short := range MEMBRANE_POPULATIONS {
		if _, ok := rec.Find(record.VOLTAGE, short); ok {
			plots = append(plots, func() error { return writeMembranePotentials(base, short, rec) })
		}
	}
	// Plots are drawn one at a time
	jobs := make([]util.Job, len(plots))
	//
	for i, fn := range plots {
		id := plotJob + uint(i)
		//
		if i == 0 {
			jobs[i] = util.NewJob(id, fn)
		} else {
			jobs[i] = util.NewJob(id, fn, id-1)
		}
	}
	//
	return jobs
}

func writeMembranePotentials(base string, short string, rec *record.Recording) error {
	series, err := rec.Voltages(short)
	if err != nil {
		return err
	}
	//
	return util.WriteOutputFile(base+"_v_"+short+".png", func(w io.Writer) error {
		return report.WriteMembranePotentials(w, series, rec.TimeStep, "Membrane potentials of "+short)
	})
}

func writeWeights(base string, rec *record.Recording) error {
	series, err := rec.Weights(PLASTIC_PROJECTION)
	if err != nil {
		return err
	}
	//
	wMin, wMax, err := rec.WeightLimits(PLASTIC_PROJECTION)
	if err != nil {
		// Fall back on the recorded range
		log.Warn(err)
		wMin, wMax = series.Range()
	}
	//
	return util.WriteOutputFile(base+"_w_"+PLASTIC_PROJECTION+".png", func(w io.Writer) error {
		return report.WriteWeights(w, &series, wMin, wMax, "Weights onto "+network.CA3CONT)
	})
}

func logCounters(c trace.Counters) {
	log.Infof("learning operations: %d begun, %d ended", c.LearnBegun, c.LearnEnded)
	log.Infof("recalling operations: %d begun, %d ended", c.RecallBegun, c.RecallEnded)
	//
	if c.Spurious > 0 {
		log.Warnf("%d operation ends did not match a beginning", c.Spurious)
	}
}

func init() {
	rootCmd.AddCommand(traceCmd)
	traceCmd.Flags().Bool("all-stamps", false, "include instants at which nothing fired")
	traceCmd.Flags().Bool("no-plots", false, "do not write spike and weight plots")
	traceCmd.Flags().Bool("no-excel", false, "do not write an Excel workbook")
	traceCmd.Flags().Bool("ansi-escapes", false, "colour the printed table (default when printing to a terminal)")
	traceCmd.Flags().Uint("max-width", 32, "maximum width of a column in the printed table")
	traceCmd.Flags().StringP("output", "o", "", "base directory in which results are written")
}
