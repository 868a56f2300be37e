// Package main provides a performance benchmarking tool for the Capsule CLI.
// It generates synthetic wardrobe profiles of increasing size, runs each command several
// times with and without analysis tracking, and writes the timings to a CSV file.
//
// Prerequisites:
// - capsule binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for the generated profiles and the tracking database (default: a temp dir)
package main

import (
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/capsule/schema"
	"gopkg.in/yaml.v3"
)

// BenchmarkResult holds the averaged timings of one command on one wardrobe size.
type BenchmarkResult struct {
	Wardrobe    string
	Command     string
	UntrackedMs string
	TrackedMs   string
}

// WardrobeSize describes one synthetic wardrobe.
type WardrobeSize struct {
	Name      string
	Items     int
	Scenarios int
	Profiles  int
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir string
	Timeout time.Duration
	Runs    int
	Sizes   []WardrobeSize
}

// categories are drawn uniformly for every generated item.
var categories = []schema.Category{
	schema.TopCategory, schema.BottomCategory, schema.FootwearCategory,
	schema.OuterwearCategory, schema.OnePieceCategory, schema.AccessoryCategory,
}

var subcategories = map[schema.Category][]string{
	schema.TopCategory:       {"blouse", "shirt", "t-shirt", "sweater"},
	schema.BottomCategory:    {"trousers", "jeans", "skirt", "shorts"},
	schema.FootwearCategory:  {"loafers", "sneakers", "boots", "heels"},
	schema.OuterwearCategory: {"coat", "trench", "parka", "blazer"},
	schema.OnePieceCategory:  {"dress", "jumpsuit"},
	schema.AccessoryCategory: {"belt", "scarf"},
}

var (
	colors         = []string{"black", "white", "navy", "grey", "camel", "olive"}
	seasons        = []schema.Season{schema.Spring, schema.Summer, schema.Fall, schema.Winter}
	scenarioNames  = []string{"Office Work", "Weekend Casual", "Hiking", "Gym", "Date Night", "Formal Event", "Travel", "Beach"}
	frequencies    = []schema.Frequency{schema.Daily, schema.Weekly, schema.Monthly, schema.Rarely}
	benchmarkCmds  = []string{"gaps", "outfits", "duplicates", "prompt"}
	trackedBackend = "sqlite"
)

func main() {
	workDir := ""
	if len(os.Args) == 2 {
		workDir = os.Args[1]
	} else if len(os.Args) > 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	if workDir == "" {
		dir, err := os.MkdirTemp("", "capsule-benchmark-*")
		if err != nil {
			fmt.Printf("Failed to create work dir: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = os.RemoveAll(dir) }()
		workDir = dir
	}

	config := BenchmarkConfig{
		WorkDir: workDir,
		Timeout: 2 * time.Minute,
		Runs:    5,
		Sizes: []WardrobeSize{
			{Name: "small", Items: 40, Scenarios: 3, Profiles: 1},
			{Name: "medium", Items: 400, Scenarios: 6, Profiles: 4},
			{Name: "large", Items: 4000, Scenarios: 8, Profiles: 16},
		},
	}

	if _, err := exec.LookPath("capsule"); err != nil {
		fmt.Printf("Prerequisites check failed: capsule binary not found in PATH\n")
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// generateProfiles writes the synthetic profiles of one size and returns their paths.
func generateProfiles(config BenchmarkConfig, size WardrobeSize) ([]string, error) {
	rng := rand.New(rand.NewPCG(uint64(size.Items), uint64(size.Scenarios)))
	paths := make([]string, 0, size.Profiles)

	for p := range size.Profiles {
		input := schema.AnalysisInput{Goals: []string{"expand-my-wardrobe"}}
		for i := range size.Items {
			category := categories[rng.IntN(len(categories))]
			subs := subcategories[category]
			item := schema.WardrobeItem{
				ID:          fmt.Sprintf("item-%d", i),
				Category:    category,
				Subcategory: subs[rng.IntN(len(subs))],
				Color:       colors[rng.IntN(len(colors))],
			}
			if rng.IntN(3) == 0 {
				item.Seasons = []schema.Season{seasons[rng.IntN(len(seasons))]}
			}
			input.Items = append(input.Items, item)
		}
		for s := range size.Scenarios {
			input.Scenarios = append(input.Scenarios, schema.Scenario{
				Name:      scenarioNames[s%len(scenarioNames)],
				Frequency: frequencies[rng.IntN(len(frequencies))],
			})
		}
		input.Form = schema.FormData{Category: "outerwear", Subcategory: "trench", Color: "camel", Seasons: []string{"spring", "fall"}}

		data, err := yaml.Marshal(input)
		if err != nil {
			return nil, fmt.Errorf("failed to encode profile: %w", err)
		}
		path := filepath.Join(config.WorkDir, fmt.Sprintf("%s-%d.yaml", size.Name, p))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write profile: %w", err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// runBenchmarks executes every command on every wardrobe size.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d sizes, %v timeout, %d runs per phase\n",
		len(config.Sizes), config.Timeout, config.Runs)

	for _, size := range config.Sizes {
		fmt.Printf("Benchmarking %s wardrobe (%d items, %d scenarios, %d profiles)\n",
			size.Name, size.Items, size.Scenarios, size.Profiles)

		profiles, err := generateProfiles(config, size)
		if err != nil {
			fmt.Printf("  Skipping %s: %v\n", size.Name, err)
			continue
		}
		for _, command := range benchmarkCmds {
			results = append(results, runBenchmarkSuite(config, size.Name, command, profiles))
		}
	}

	return results
}

// runBenchmarkSuite runs the untracked and tracked phases for one command.
func runBenchmarkSuite(config BenchmarkConfig, wardrobe, command string, profiles []string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", command, wardrobe)

	dbPath := filepath.Join(config.WorkDir, "analysis.db")
	untracked := averageMs(runBenchmark(config, command, profiles, "none", ""))
	tracked := averageMs(runBenchmark(config, command, profiles, trackedBackend, dbPath))

	fmt.Printf("  Untracked average: %s, Tracked average: %s\n", untracked, tracked)

	return BenchmarkResult{
		Wardrobe:    wardrobe,
		Command:     command,
		UntrackedMs: untracked,
		TrackedMs:   tracked,
	}
}

// runBenchmark executes a capsule command several times and returns the successful timings.
func runBenchmark(config BenchmarkConfig, command string, profiles []string, backend, connStr string) []float64 {
	args := append([]string{command}, profiles...)
	args = append(args, "--analysis-backend", backend, "--output-file", filepath.Join(config.WorkDir, command+".out"))
	if connStr != "" {
		args = append(args, "--analysis-db-connect", connStr)
	}

	var times []float64
	for range config.Runs {
		start := time.Now()

		cmd := exec.Command("capsule", args...)
		cmd.Dir = config.WorkDir

		done := make(chan error, 1)
		var output []byte
		go func() {
			var err error
			output, err = cmd.CombinedOutput()
			done <- err
		}()

		select {
		case err := <-done:
			if err == nil {
				times = append(times, float64(time.Since(start).Microseconds())/1000)
			} else {
				fmt.Printf("  Run failed: %v\n%s", err, strings.TrimSpace(string(output)))
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}
	return times
}

// averageMs formats the mean of the timings, or TIMEOUT when no run succeeded.
func averageMs(times []float64) string {
	if len(times) == 0 {
		return "TIMEOUT"
	}
	var sum float64
	for _, t := range times {
		sum += t
	}
	return fmt.Sprintf("%.1f", sum/float64(len(times)))
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("capsule_benchmark_%s.csv", timestamp))

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

	if err := writer.Write([]string{"wardrobe", "cmd", "untracked_ms", "tracked_ms"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Wardrobe, result.Command, result.UntrackedMs, result.TrackedMs}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, command := range benchmarkCmds {
		fmt.Printf("%s:\n", command)
		for _, result := range results {
			if result.Command == command {
				fmt.Printf("  %-8s: Untracked: %sms, Tracked: %sms\n", result.Wardrobe, result.UntrackedMs, result.TrackedMs)
			}
		}
	}
}
