package cmd

import (
	"fmt"
	"os"

	"github.com/consensys/go-hipmem/pkg/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	return r
}

// GetUint gets an expected unsigned integer flag, or exits if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	return r
}

// GetUint64 gets an expected 64-bit unsigned integer flag, or exits if an
// error arises.
func GetUint64(cmd *cobra.Command, flag string) uint64 {
	r, err := cmd.Flags().GetUint64(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	return r
}

// GetString gets an expected string flag, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	return r
}

// Check the expected number of arguments were given, otherwise print usage and
// exit.  Also configures the log level, as every command does this first.
func checkArgs(cmd *cobra.Command, args []string, n int) {
	if len(args) != n {
		fmt.Println(cmd.UsageString())
		os.Exit(1)
	}
	// Configure log level
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
}

// Read a configuration file, exiting if it cannot be read or is invalid.
func readConfigFile(filename string) config.Config {
	cfg, err := config.Load(filename)
	checkInput(err)
	//
	return cfg
}

// Exit if an error arose from some input (e.g. a file which could not be
// read, or which was malformed).
func checkInput(err error) {
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
}
