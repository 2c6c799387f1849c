// Package main provides a performance benchmarking tool for the Plotsense CLI.
// It measures execution times across different dataset sizes and command types,
// running each test multiple times, treating the first successful run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - plotsense binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for generated datasets and tracking databases
package main

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (untracked average, cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset       string
	Command       string
	UntrackedTime string
	ColdTime      string
	WarmTime      string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir       string
	Timeout       time.Duration
	UntrackedRuns int
	TrackedRuns   int
	DatasetRows   map[string]int
	Datasets      []string
}

var regions = []string{"north", "south", "east", "west", "central"}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir:       workDir,
		Timeout:       2 * time.Minute,
		UntrackedRuns: 3,
		TrackedRuns:   4,
		Datasets:      []string{"small", "medium", "large"},
		DatasetRows: map[string]int{
			"small":  1_000,
			"medium": 50_000,
			"large":  500_000,
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	datasetPaths, err := generateDatasets(config)
	if err != nil {
		fmt.Printf("Failed to generate datasets: %v\n", err)
		os.Exit(1)
	}

	// Clear tracked history using plotsense analysis clear
	fmt.Printf("Clearing analysis history...\n")
	dbPath := filepath.Join(config.WorkDir, "benchmark.db")
	clearCmd := exec.Command("plotsense", "analysis", "clear",
		"--analysis-backend", "sqlite", "--analysis-db-connect", dbPath)
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear analysis history: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Analysis history cleared successfully\n")
	}

	results := runBenchmarks(config, datasetPaths, dbPath)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the plotsense binary and work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	// Check if plotsense is available
	if _, err := exec.LookPath("plotsense"); err != nil {
		return fmt.Errorf("plotsense binary not found in PATH")
	}

	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("cannot create work directory %s: %w", config.WorkDir, err)
	}

	return nil
}

// generateDatasets writes one synthetic CSV per configured dataset size
func generateDatasets(config BenchmarkConfig) (map[string]string, error) {
	paths := make(map[string]string, len(config.Datasets))
	rng := rand.New(rand.NewSource(42))

	for _, name := range config.Datasets {
		rows := config.DatasetRows[name]
		path := filepath.Join(config.WorkDir, name+".csv")
		fmt.Printf("Generating %s dataset (%d rows)\n", name, rows)
		if err := writeSyntheticCSV(path, rows, rng); err != nil {
			return nil, fmt.Errorf("dataset %s: %w", name, err)
		}
		paths[name] = path
	}

	return paths, nil
}

// writeSyntheticCSV emits a dataset with datetime, categorical and numeric columns
func writeSyntheticCSV(path string, rows int, rng *rand.Rand) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", path, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"date", "region", "sales", "units"}); err != nil {
		return err
	}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < rows; i++ {
		record := []string{
			start.AddDate(0, 0, i%365).Format("2006-01-02"),
			regions[rng.Intn(len(regions))],
			fmt.Sprintf("%.2f", 100+rng.Float64()*900),
			strconv.Itoa(1 + rng.Intn(50)),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// runBenchmarks executes all benchmark tests across configured datasets
func runBenchmarks(config BenchmarkConfig, datasetPaths map[string]string, dbPath string) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, untracked: %d runs, tracked: %d runs\n",
		len(config.Datasets), config.Timeout, config.UntrackedRuns, config.TrackedRuns)

	for _, dataset := range config.Datasets {
		fmt.Printf("Benchmarking %s\n", dataset)
		path := datasetPaths[dataset]

		for _, command := range []string{"inspect", "recommend", "insights"} {
			result := runBenchmarkSuite(config, dataset, path, dbPath, command)
			results = append(results, result)
		}
	}

	return results
}

// runBenchmarkSuite runs both untracked and tracked benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, dataset, datasetPath, dbPath, command string) BenchmarkResult {
	fmt.Printf("Running %s analysis on %s\n", command, dataset)

	// Helper to run a benchmark phase
	runPhase := func(backend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, datasetPath, dbPath, command, backend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: Untracked runs
	_, untrackedAvg := runPhase("none", config.UntrackedRuns, "Untracked")

	// Phase 2: Tracked runs
	coldTime, warmAvg := runPhase("sqlite", config.TrackedRuns, "Tracked")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  Untracked average: %s, Cold time: %s, Warm average: %s\n", untrackedAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Dataset:       dataset,
		Command:       command,
		UntrackedTime: untrackedAvg,
		ColdTime:      coldTimeStr,
		WarmTime:      warmAvg,
	}
}

// runBenchmark executes a plotsense command multiple times with the given tracking backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, datasetPath, dbPath, command, backend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{command, datasetPath, "--analysis-backend", backend}
	if backend == "sqlite" {
		args = append(args, "--analysis-db-connect", dbPath)
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("plotsense", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output, command) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte, command string) bool {
	outputStr := string(output)

	var completionPhrase string
	switch command {
	case "inspect":
		completionPhrase = "Inferred"
	case "recommend":
		completionPhrase = "Showing top"
	default:
		completionPhrase = "Generated"
	}

	return strings.Contains(outputStr, completionPhrase)
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/plotsense_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"dataset", "cmd", "untracked_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, result.Command, result.UntrackedTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "inspect", "Schema Inference:")
	printCommandSummary(results, "recommend", "Chart Recommendation:")
	printCommandSummary(results, "insights", "Insight Synthesis:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-8s: Untracked: %s, Cold: %s, Warm: %s\n", result.Dataset, result.UntrackedTime, result.ColdTime, result.WarmTime)
		}
	}
}
