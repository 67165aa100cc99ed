package common

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
)

// BenchmarkResult holds the formatted benchmark results.
type BenchmarkResult struct {
	Operation           string  `json:"operation"`
	Duration            string  `json:"duration"`
	DurationHuman       string  `json:"duration_human"`
	Operations          int64   `json:"operations"`
	Bytes               int64   `json:"bytes"`
	OperationsPerSecond float64 `json:"operations_per_second"`
	BytesPerSecond      float64 `json:"bytes_per_second"`
	MBPerSecond         float64 `json:"mb_per_second"`
	LatencyMin          string  `json:"latency_min,omitempty"`
	LatencyMean         string  `json:"latency_mean,omitempty"`
	LatencyP50          string  `json:"latency_p50,omitempty"`
	LatencyP95          string  `json:"latency_p95,omitempty"`
	LatencyP99          string  `json:"latency_p99,omitempty"`
	LatencyP999         string  `json:"latency_p999,omitempty"`
	LatencyMax          string  `json:"latency_max,omitempty"`
	Errors              int64   `json:"errors"`
}

// PrintResults outputs the benchmark results for one operation.
func PrintResults(operation string, stats *Stats, format string) {
	result := BenchmarkResult{
		Operation:           operation,
		Duration:            stats.Duration().String(),
		DurationHuman:       durafmt.Parse(stats.Duration().Round(time.Millisecond)).LimitFirstN(2).String(),
		Operations:          stats.Operations(),
		Bytes:               stats.Bytes(),
		OperationsPerSecond: stats.OperationsPerSecond(),
		BytesPerSecond:      stats.BytesPerSecond(),
		MBPerSecond:         stats.MBPerSecond(),
		Errors:              stats.Errors(),
	}

	// Include latency stats if we have samples
	if stats.LatencyCount() > 0 {
		result.LatencyMin = stats.LatencyMin().String()
		result.LatencyMean = stats.LatencyMean().String()
		result.LatencyP50 = stats.LatencyPercentile(50).String()
		result.LatencyP95 = stats.LatencyPercentile(95).String()
		result.LatencyP99 = stats.LatencyPercentile(99).String()
		result.LatencyP999 = stats.LatencyPercentile(99.9).String()
		result.LatencyMax = stats.LatencyMax().String()
	}

	switch format {
	case "json":
		printJSON(result)
	default:
		printText(result)
	}
}

func printJSON(result BenchmarkResult) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(result)
}

func printText(r BenchmarkResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "=== %s Benchmark Results ===\n", r.Operation)
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Duration:\t%s (%s)\n", r.Duration, r.DurationHuman)
	fmt.Fprintf(w, "Operations:\t%s\n", humanize.Comma(r.Operations))
	fmt.Fprintf(w, "Bytes Processed:\t%s\n", humanize.Bytes(uint64(r.Bytes)))
	fmt.Fprintf(w, "Throughput:\t%s ops/sec\n", humanize.CommafWithDigits(r.OperationsPerSecond, 2))
	fmt.Fprintf(w, "Bandwidth:\t%.2f MB/sec\n", r.MBPerSecond)
	fmt.Fprintln(w, "")

	if r.LatencyP50 != "" {
		fmt.Fprintln(w, "--- Operation Latency ---")
		fmt.Fprintf(w, "Min:\t%s\n", r.LatencyMin)
		fmt.Fprintf(w, "Mean:\t%s\n", r.LatencyMean)
		fmt.Fprintf(w, "P50:\t%s\n", r.LatencyP50)
		fmt.Fprintf(w, "P95:\t%s\n", r.LatencyP95)
		fmt.Fprintf(w, "P99:\t%s\n", r.LatencyP99)
		fmt.Fprintf(w, "P99.9:\t%s\n", r.LatencyP999)
		fmt.Fprintf(w, "Max:\t%s\n", r.LatencyMax)
		fmt.Fprintln(w, "")
	}

	fmt.Fprintf(w, "Errors:\t%d\n", r.Errors)
	fmt.Fprintln(w, "")
	w.Flush()
}
