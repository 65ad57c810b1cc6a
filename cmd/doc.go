// Package cmd implements the command-line interface for the fcol collection
// library. It provides a small command hierarchy for inspecting the build and
// benchmarking the engines.
//
// The package is organized into several subpackages:
//
//   - perf: Commands for benchmarking the table and map engines and their
//     concurrency views
//   - util: Shared utilities for command-line processing and configuration
//     (internal use)
//
// See fcol -help for a list of all commands.
package cmd
