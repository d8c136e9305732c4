package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/consensys/go-hipmem/pkg/codec"
	"github.com/consensys/go-hipmem/pkg/config"
	"github.com/consensys/go-hipmem/pkg/report"
	"github.com/consensys/go-hipmem/pkg/testbench"
	"github.com/consensys/go-hipmem/pkg/trace"
	"github.com/consensys/go-hipmem/pkg/util/termio"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] testbench_file",
	Short: "inspect a testbench file.",
	Long: `Read back a testbench file, printing the number of spikes on each
	input line and the operations it encodes.  The operations are recovered by
	passing the spike trains through a network which mirrors its input.`,
	Run: func(cmd *cobra.Command, args []string) {
		checkArgs(cmd, args, 1)
		//
		cfg := config.Default()
		//
		if filename := GetString(cmd, "config"); filename != "" {
			cfg = readConfigFile(filename)
		}
		//
		file, err := os.Open(args[0])
		checkInput(err)
		//
		result, err := testbench.ReadArtifact(file)
		file.Close()
		checkInput(err)
		//
		colour := termio.IsTerminal(os.Stdout)
		checkInput(printLineCounts(result, colour))
		// Recover the shape of the memory from the artifact, whose spikes are on
		// a millisecond grid
		cueSize := codec.MaxContent(uint(len(result.Cue)))
		params := cfg.TraceParams(float64(result.EndTime)).WithShape(cueSize, uint(len(result.Content)),
			cfg.Endianness(), 1)
		//
		tr, err := trace.Reconstruct(trace.Mirror(result.Cue, result.Content), params)
		checkInput(err)
		//
		opts := report.TextOptions{AnsiEscapes: colour, MaxWidth: cfg.Trace.MaxWidth}
		checkInput(report.WriteText(os.Stdout, report.Rows(tr, params), opts))
		//
		fmt.Printf("%d operations (%d learning, %d recalling), end time %d ms\n", result.Operations, result.Learn,
			result.Recall, result.EndTime)
		logCounters(tr.Counters)
	},
}

func printLineCounts(result testbench.Result, colour bool) error {
	var (
		n  = uint(len(result.Cue) + len(result.Content))
		tp = termio.NewTablePrinter(3, n+1)
	)
	//
	tp.SetRow(0, "line", "kind", "spikes")
	//
	for i := uint(0); i < tp.Width(); i++ {
		tp.SetEscape(i, 0, termio.BoldAnsiEscape())
	}
	//
	for i, line := range result.Cue {
		tp.SetRow(uint(i+1), strconv.Itoa(i), "cue", strconv.Itoa(len(line)))
	}
	//
	for i, line := range result.Content {
		tp.SetRow(uint(len(result.Cue)+i+1), strconv.Itoa(i), "content", strconv.Itoa(len(line)))
	}
	//
	tp.AnsiEscapes(colour)
	//
	return tp.Print(os.Stdout)
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringP("config", "c", "", "configuration file giving endianness and hold times")
}
