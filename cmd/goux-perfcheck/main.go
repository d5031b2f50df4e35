// Command goux-perfcheck compares two `go test -bench` outputs and fails when
// a tracked benchmark regresses past the threshold.
//
//	go test -run '^$' -bench . -count 5 ./... > new.txt
//	goux-perfcheck -baseline old.txt -candidate new.txt [-config perf.yaml]
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultThreshold = 0.30

// checkConfig selects the benchmarks and units compared.
type checkConfig struct {
	Threshold  float64             `yaml:"threshold"`
	Benchmarks map[string][]string `yaml:"benchmarks"`
}

func defaultCheckConfig() checkConfig {
	return checkConfig{
		Threshold:  defaultThreshold,
		Benchmarks: map[string][]string{
			"BenchmarkEngineStrength":                 {"ns/op", "allocs/op"},
			"BenchmarkEngineSubmitSuppressedParallel": {"ns/op", "allocs/op"},
			"BenchmarkMetricsIncParallel":             {"ns/op"},
			"BenchmarkMetricsObserveLatencyParallel":  {"ns/op"},
			"BenchmarkRender":                         {"ns/op"},
		},
	}
}

func loadCheckConfig(path string) (checkConfig, error) {
	cfg := defaultCheckConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return checkConfig{}, fmt.Errorf("read config: %w", err)
	}
	var override checkConfig
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return checkConfig{}, fmt.Errorf("parse config: %w", err)
	}
	if override.Threshold > 0 {
		cfg.Threshold = override.Threshold
	}
	if len(override.Benchmarks) > 0 {
		cfg.Benchmarks = override.Benchmarks
	}
	return cfg, nil
}

type sampleSet map[string]map[string][]float64

func main() {
	var (
		baselinePath  string
		candidatePath string
		configPath    string
		threshold     float64
	)

	flag.StringVar(&baselinePath, "baseline", "", "path to baseline benchmark output")
	flag.StringVar(&candidatePath, "candidate", "", "path to candidate benchmark output")
	flag.StringVar(&configPath, "config", "", "optional YAML file with threshold and tracked benchmarks")
	flag.Float64Var(&threshold, "threshold", 0, "maximum allowed regression ratio (0.30 = +30%); overrides config")
	flag.Parse()

	if baselinePath == "" || candidatePath == "" {
		fmt.Fprintln(os.Stderr, "-baseline and -candidate are required")
		os.Exit(2)
	}
	if threshold < 0 {
		fmt.Fprintln(os.Stderr, "-threshold must be >= 0")
		os.Exit(2)
	}

	cfg, err := loadCheckConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if threshold > 0 {
		cfg.Threshold = threshold
	}

	baseline, err := parseBenchmarkFile(baselinePath, cfg.Benchmarks)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse baseline: %v\n", err)
		os.Exit(1)
	}
	candidate, err := parseBenchmarkFile(candidatePath, cfg.Benchmarks)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse candidate: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("perf regression check:")
	fmt.Println("benchmark metric baseline candidate delta")
	failures := compare(os.Stdout, cfg, baseline, candidate)

	if len(failures) > 0 {
		fmt.Fprintln(os.Stderr, "performance regression threshold exceeded:")
		for _, failure := range failures {
			fmt.Fprintf(os.Stderr, "  - %s\n", failure)
		}
		os.Exit(1)
	}
}

// compare writes one line per tracked metric to out and returns the
// regressions and missing samples.
func compare(out io.Writer, cfg checkConfig, baseline, candidate sampleSet) []string {
	names := make([]string, 0, len(cfg.Benchmarks))
	for name := range cfg.Benchmarks {
		names = append(names, name)
	}
	sort.Strings(names)

	var failures []string
	for _, benchmark := range names {
		for _, metric := range cfg.Benchmarks[benchmark] {
			baseSamples := baseline[benchmark][metric]
			candidateSamples := candidate[benchmark][metric]
			if len(baseSamples) == 0 || len(candidateSamples) == 0 {
				failures = append(failures, fmt.Sprintf("missing samples for %s %s", benchmark, metric))
				continue
			}

			baseMedian := median(baseSamples)
			candidateMedian := median(candidateSamples)
			if baseMedian <= 0 {
				// zero allocs stay zero; any allocation is a regression
				if candidateMedian > 0 {
					failures = append(failures, fmt.Sprintf("%s %s went from 0 to %.3f", benchmark, metric, candidateMedian))
				}
				fmt.Fprintf(out, "%s %s %.3f %.3f n/a\n", benchmark, metric, baseMedian, candidateMedian)
				continue
			}

			delta := (candidateMedian - baseMedian) / baseMedian
			fmt.Fprintf(out, "%s %s %.3f %.3f %+0.2f%%\n", benchmark, metric, baseMedian, candidateMedian, delta*100)
			if delta > cfg.Threshold {
				failures = append(failures, fmt.Sprintf("%s %s regressed by %+0.2f%% (limit %+0.2f%%)", benchmark, metric, delta*100, cfg.Threshold*100))
			}
		}
	}
	return failures
}

func parseBenchmarkFile(path string, tracked map[string][]string) (sampleSet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return parseBenchmarks(file, tracked)
}

func parseBenchmarks(r io.Reader, tracked map[string][]string) (sampleSet, error) {
	samples := sampleSet{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "Benchmark") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}

		name := normalizeBenchmarkName(fields[0])
		if _, ok := tracked[name]; !ok {
			continue
		}

		if _, ok := samples[name]; !ok {
			samples[name] = map[string][]float64{}
		}

		// fields[1] is the iteration count; value/unit pairs follow
		for i := 2; i+1 < len(fields); i += 2 {
			value, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				continue
			}
			unit := fields[i+1]
			samples[name][unit] = append(samples[name][unit], value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return samples, nil
}

// normalizeBenchmarkName strips the -GOMAXPROCS suffix.
func normalizeBenchmarkName(raw string) string {
	if idx := strings.LastIndexByte(raw, '-'); idx > 0 {
		if _, err := strconv.Atoi(raw[idx+1:]); err == nil {
			return raw[:idx]
		}
	}
	return raw
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	copied := make([]float64, len(values))
	copy(copied, values)
	sort.Float64s(copied)

	mid := len(copied) / 2
	if len(copied)%2 == 1 {
		return copied[mid]
	}
	return (copied[mid-1] + copied[mid]) / 2
}
