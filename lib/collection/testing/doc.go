// Package testing provides standardised tests and benchmarks for container
// implementations that satisfy the collection.Table, collection.Map and
// collection.SortedMap interfaces.
//
// The package contains:
//   - testing: conformance suites validating the container contracts,
//     including iteration, splitting and error behaviour
//   - benchmark: performance tests for measuring throughput of common
//     container operations
//
// Because every engine and view implements the same contract, the suites
// run unchanged against engines, stacked views and their combinations.
//
// Example usage:
//
//	// Creating a factory function for your implementation
//	factory := func() collection.Table[int] {
//		return table.NewEngine(compare.Ints().Equality)
//	}
//
//	// Running the standard test suite
//	testing.RunTableTests(t, "Engine", factory)
//
//	// Running performance benchmarks
//	testing.RunTableBenchmarks(b, "Engine", factory)
package testing
