package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/fcol/cmd/perf"
	"github.com/ValentinKolb/fcol/cmd/util"
	"github.com/spf13/cobra"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "fcol",
		Short: "deterministic-latency collection engine",
		Long: fmt.Sprintf(`fcol (v%s)

A collection library built on fractal block structures, providing
table and map engines with worst-case bounded operation cost and
composable concurrency views (shared, atomic, parallel).`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of fcol",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("fcol v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(perf.PerfCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "log-level"
	RootCmd.PersistentFlags().String(key, "info", util.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
