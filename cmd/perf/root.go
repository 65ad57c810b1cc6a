package perf

import (
	"encoding/csv"
	"fmt"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	vmetrics "github.com/VictoriaMetrics/metrics"
	"github.com/ValentinKolb/fcol/cmd/util"
	"github.com/ValentinKolb/fcol/lib/collection"
	"github.com/ValentinKolb/fcol/lib/compare"
	"github.com/ValentinKolb/fcol/lib/fmap"
	"github.com/ValentinKolb/fcol/lib/table"
	"github.com/lni/dragonboat/v4/logger"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	log = logger.GetLogger("perf")

	PerfCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for the collection engines",
		Long:    "Benchmarks the table and map engines and their concurrency views, reporting throughput and latency percentiles. Results can be exported as CSV and exposed in Prometheus format.",
		RunE:    run,
		PreRunE: processPerfConfig,
	}

	perfElements   = 100000
	perfNumThreads = 10
	perfSamples    = 50000
	perfSkip       = make([]string, 0)
)

func init() {
	cobra.OnInitialize(util.InitConfig)

	// add flags
	key := "skip"
	PerfCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. table-get,map-put)"))
	key = "threads"
	PerfCmd.Flags().Int(key, 10, util.WrapString("Number of threads to use for the concurrent benchmarks"))
	key = "elements"
	PerfCmd.Flags().Int(key, 100000, util.WrapString("How many elements to preload the containers with"))
	key = "samples"
	PerfCmd.Flags().Int(key, 50000, util.WrapString("How many operations to sample for the latency percentiles"))
	key = "csv"
	PerfCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
	key = "metrics-addr"
	PerfCmd.Flags().String(key, "", util.WrapString("Optional address to expose Prometheus metrics on (e.g. :9100); served at /metrics while the benchmarks run"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfElements = viper.GetInt("elements")
	perfNumThreads = viper.GetInt("threads")
	perfSamples = viper.GetInt("samples")
	if s := viper.GetString("skip"); s != "" {
		perfSkip = strings.Split(s, ",")
	}

	return util.SetLogLevel("perf")
}

// result bundles the throughput measurement with the sampled latency
// distribution of one benchmark.
type result struct {
	bench testing.BenchmarkResult
	timer gometrics.Timer
}

func run(_ *cobra.Command, _ []string) error {

	fmt.Println("Performance testing tool for the collection engines")

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Printf("Elements: %d\n", perfElements)
	fmt.Printf("Threads:  %d\n", perfNumThreads)
	fmt.Printf("Samples:  %d\n", perfSamples)
	fmt.Println()

	// Optionally expose Prometheus metrics while the benchmarks run
	if addr := viper.GetString("metrics-addr"); addr != "" {
		log.Infof("serving metrics on %s/metrics", addr)
		go func() {
			mux := http.NewServeMux()
			mux.HandleFunc("/metrics", func(w http.ResponseWriter, _ *http.Request) {
				vmetrics.WritePrometheus(w, true)
			})
			if err := http.ListenAndServe(addr, mux); err != nil {
				log.Errorf("metrics endpoint failed: %v", err)
			}
		}()
	}

	fmt.Println("starting benchmarks...")
	fmt.Println()

	results := make(map[string]result)

	for _, bm := range benchmarks() {
		if shouldSkip(bm.name) {
			fmt.Printf("%-20sskipped\n", bm.name)
			continue
		}

		r := runBenchmark(bm)
		results[bm.name] = r
		printResult(bm.name, r)
	}

	// Write results to csv if specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Printf("\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, results); err != nil {
			return fmt.Errorf("failed to export results to CSV: %v", err)
		}
		fmt.Println("Export complete")
	}

	return nil
}

// --------------------------------------------------------------------------
// Benchmark definitions
// --------------------------------------------------------------------------

// benchmark is one named operation: setup builds the container, op runs a
// single operation with a counter argument. Only thread-safe views may be
// marked parallel.
type benchmark struct {
	name     string
	parallel bool
	setup    func() (op func(i int))
}

func benchmarks() []benchmark {
	return []benchmark{
		{
			name: "table-addlast",
			setup: func() func(int) {
				t := table.NewEngine(compare.Ints().Equality)
				return func(i int) { _ = t.AddLast(i) }
			},
		},
		{
			name: "table-addfirst",
			setup: func() func(int) {
				t := table.NewEngine(compare.Ints().Equality)
				return func(i int) { _ = t.AddFirst(i) }
			},
		},
		{
			name: "table-get",
			setup: func() func(int) {
				t := preloadTable()
				return func(i int) { _, _ = t.Get(i % perfElements) }
			},
		},
		{
			name: "table-insert",
			setup: func() func(int) {
				t := preloadTable()
				return func(i int) { _ = t.Insert(t.Size()/2, i) }
			},
		},
		{
			name: "table-removefirst",
			setup: func() func(int) {
				t := preloadTable()
				return func(i int) {
					if _, err := t.RemoveFirst(); err != nil {
						_ = t.AddLast(i)
					}
				}
			},
		},
		{
			name:     "shared-get",
			parallel: true,
			setup: func() func(int) {
				t := table.NewShared[int](preloadTable())
				return func(i int) { _, _ = t.Get(i % perfElements) }
			},
		},
		{
			name:     "atomic-get",
			parallel: true,
			setup: func() func(int) {
				t := table.NewAtomic[int](preloadTable())
				return func(i int) { _, _ = t.Get(i % perfElements) }
			},
		},
		{
			name: "map-put",
			setup: func() func(int) {
				m := fmap.NewEngine[int, int](compare.Ints().Equality)
				return func(i int) { _, _, _ = m.Put(i, i) }
			},
		},
		{
			name: "map-get",
			setup: func() func(int) {
				m := preloadMap()
				return func(i int) { _, _ = m.Get(i % perfElements) }
			},
		},
		{
			name: "map-remove",
			setup: func() func(int) {
				m := preloadMap()
				return func(i int) {
					key := i % perfElements
					if _, present, _ := m.Remove(key); !present {
						_, _, _ = m.Put(key, i)
					}
				}
			},
		},
		{
			name: "map-mixed",
			setup: func() func(int) {
				m := preloadMap()
				return func(i int) {
					key := i % perfElements
					switch i % 4 {
					case 0:
						_, _, _ = m.Put(key, i)
					case 1:
						_, _, _ = m.Remove(key)
					default:
						_, _ = m.Get(key)
					}
				}
			},
		},
		{
			name: "sortedmap-put",
			setup: func() func(int) {
				m := fmap.NewSortedEngine[int, int](compare.Ints())
				return func(i int) { _, _, _ = m.Put(i*2654435761%perfElements, i) }
			},
		},
	}
}

func preloadTable() collection.Table[int] {
	t := table.NewEngine(compare.Ints().Equality)
	for i := 0; i < perfElements; i++ {
		_ = t.AddLast(i)
	}
	return t
}

func preloadMap() collection.Map[int, int] {
	m := fmap.NewEngine[int, int](compare.Ints().Equality)
	for i := 0; i < perfElements; i++ {
		_, _, _ = m.Put(i, i)
	}
	return m
}

// --------------------------------------------------------------------------
// Execution
// --------------------------------------------------------------------------

// runBenchmark measures throughput with the testing package and then takes
// a fixed number of individually timed samples for the percentile report.
func runBenchmark(bm benchmark) result {
	opsCounter := vmetrics.GetOrCreateCounter(fmt.Sprintf(`fcol_perf_ops_total{test=%q}`, bm.name))

	bench := testing.Benchmark(func(b *testing.B) {
		op := bm.setup()
		b.ResetTimer()
		if bm.parallel {
			b.SetParallelism(perfNumThreads)
			var ctr atomic.Int64
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					op(int(ctr.Add(1)))
				}
			})
		} else {
			for i := 0; i < b.N; i++ {
				op(i)
			}
		}
		opsCounter.Add(b.N)
	})

	// Latency distribution from a separate sampled run.
	timer := gometrics.NewTimer()
	op := bm.setup()
	for i := 0; i < perfSamples; i++ {
		start := time.Now()
		op(i)
		timer.UpdateSince(start)
	}

	return result{bench: bench, timer: timer}
}

func shouldSkip(test string) bool {
	// Check if the test is in the skip list
	for _, skip := range perfSkip {
		if test == strings.TrimSpace(skip) {
			return true
		}
	}
	return false
}

// printResult prints the result of a benchmark test in a formatted way
func printResult(test string, r result) {
	nsPerOp := math.Max(float64(r.bench.NsPerOp()), 1) // prevent division by zero
	opsPerSec := 1.0 / (nsPerOp / 1e9)
	ps := r.timer.Percentiles([]float64{0.5, 0.95, 0.99})

	fmt.Printf("%-20s%.0fns/op\t%.0f ops/sec\tp50=%s p95=%s p99=%s\n",
		test, nsPerOp, opsPerSec,
		time.Duration(ps[0]), time.Duration(ps[1]), time.Duration(ps[2]))
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, results map[string]result) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	header := []string{
		"Test", "NsPerOp", "OpsPerSec", "P50Ns", "P95Ns", "P99Ns",
		"Threads", "Elements", "Samples",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	// Write test results
	for test, r := range results {
		nsPerOp := math.Max(float64(r.bench.NsPerOp()), 1)
		opsPerSec := 1.0 / (nsPerOp / 1e9)
		ps := r.timer.Percentiles([]float64{0.5, 0.95, 0.99})

		row := []string{
			test,
			fmt.Sprintf("%.0f", nsPerOp),
			fmt.Sprintf("%.0f", opsPerSec),
			fmt.Sprintf("%.0f", ps[0]),
			fmt.Sprintf("%.0f", ps[1]),
			fmt.Sprintf("%.0f", ps[2]),
			strconv.Itoa(perfNumThreads),
			strconv.Itoa(perfElements),
			strconv.Itoa(perfSamples),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %v", test, err)
		}
	}

	return nil
}
