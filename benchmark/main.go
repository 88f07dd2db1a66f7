// Package main provides a performance benchmarking tool for the gridcarbon CLI.
// It measures execution times of the year commands against the live API,
// running each command multiple times, treating the first successful cached run as cold
// and averaging the rest as warm, generating CSV output for performance analysis.
//
// Prerequisites:
// - gridcarbon binary installed and available in PATH
// - Network access to the Carbon Intensity API
//
// Usage: go run benchmark/main.go [year ...]
//
//	year: Calendar years to benchmark (defaults to the last three complete years)
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Year        string
	Command     string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	Timeout     time.Duration
	Workers     int
	NoCacheRuns int
	CacheRuns   int
	Years       []string
	Commands    []string
	CacheDBPath string
}

func main() {
	years := os.Args[1:]
	if len(years) == 0 {
		last := time.Now().Year() - 1
		for y := last - 2; y <= last; y++ {
			years = append(years, strconv.Itoa(y))
		}
	}

	config := BenchmarkConfig{
		Timeout:     5 * time.Minute,
		Workers:     12,
		NoCacheRuns: 3,
		CacheRuns:   4,
		Years:       years,
		Commands:    []string{"weekly", "daily"},
		CacheDBPath: filepath.Join(os.TempDir(), "gridcarbon_benchmark_cache.db"),
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(config, results)
}

// checkPrerequisites verifies that the gridcarbon binary exists and the years parse
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("gridcarbon"); err != nil {
		return fmt.Errorf("gridcarbon binary not found in PATH")
	}
	for _, year := range config.Years {
		if _, err := strconv.Atoi(year); err != nil {
			return fmt.Errorf("invalid year %q: %w", year, err)
		}
	}
	return nil
}

// runBenchmarks executes all benchmark tests across configured years
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d years, %v timeout, %d workers, no-cache: %d runs, cache: %d runs\n",
		len(config.Years), config.Timeout, config.Workers, config.NoCacheRuns, config.CacheRuns)

	for _, year := range config.Years {
		fmt.Printf("Benchmarking %s\n", year)
		for _, command := range config.Commands {
			results = append(results, runBenchmarkSuite(config, year, command))
		}
	}

	return results
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, year, command string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", command, year)

	// Start every suite from an empty cache
	_ = os.Remove(config.CacheDBPath)

	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, year, command, cacheBackend, numRuns)
		if len(times) == 0 {
			return cold, "TIMEOUT"
		}
		var sum float64
		for _, t := range times {
			sum += t
		}
		return cold, fmt.Sprintf("%.3fs", sum/float64(len(times)))
	}

	// Phase 1: No-cache runs
	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")

	// Phase 2: Cache runs
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Year:        year,
		Command:     command,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a gridcarbon command multiple times with specified cache backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, year, command, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{
		command, year,
		"--workers", strconv.Itoa(config.Workers),
		"--cache-backend", cacheBackend,
		"--emoji", "no",
		"--color", "no",
	}
	if cacheBackend == "sqlite" {
		args = append(args, "--cache-db-connect", config.CacheDBPath)
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("gridcarbon", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
			<-done
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "completed in") &&
		strings.Contains(outputStr, "workers")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("gridcarbon_benchmark_%s.csv", timestamp))

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

	if err := writer.Write([]string{"year", "cmd", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Year, result.Command, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(config BenchmarkConfig, results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, command := range config.Commands {
		fmt.Printf("%s:\n", command)
		for _, result := range results {
			if result.Command == command {
				fmt.Printf("  %-6s: No-cache: %s, Cold: %s, Warm: %s\n", result.Year, result.NoCacheTime, result.ColdTime, result.WarmTime)
			}
		}
	}
}
