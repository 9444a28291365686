// Package main is the addie-bench CLI. It scores a single ADDIE deliverable
// against its scenario, or runs a full scenario-by-agent benchmark from
// documents on disk and writes a comparison report.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/isdbench/addiebench/internal/benchmark"
	"github.com/isdbench/addiebench/internal/domain"
	"github.com/isdbench/addiebench/internal/evaluation"
	"github.com/isdbench/addiebench/internal/judge"
)

var (
	scenarioPath = flag.String("scenario", "", "Path to a scenario JSON file")
	documentPath = flag.String("document", "", "Path to a deliverable JSON file (single evaluation)")

	benchMode    = flag.Bool("bench", false, "Run a full benchmark instead of a single evaluation")
	scenariosDir = flag.String("scenarios", "", "Directory of scenario JSON files (benchmark mode)")
	documentsDir = flag.String("documents", "", "Directory of deliverables, one subdirectory per agent (benchmark mode)")
	dataDir      = flag.String("data", "benchmark-data", "Directory for the benchmark result database")
	reportPath   = flag.String("report", "", "Write the markdown comparison report here (benchmark mode)")
	concurrency  = flag.Int64("concurrency", 3, "Maximum concurrent evaluations (benchmark mode)")
)

func main() {
	flag.Parse()

	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	if *benchMode {
		return runBenchmark(logger)
	}
	return runSingle(logger)
}

func runSingle(logger *slog.Logger) error {
	if *documentPath == "" {
		return fmt.Errorf("single evaluation needs -document (or pass -bench)")
	}

	var scenario *domain.Scenario
	if *scenarioPath != "" {
		s, err := loadScenario(*scenarioPath)
		if err != nil {
			return err
		}
		scenario = s
	}

	doc, err := loadDocument(*documentPath)
	if err != nil {
		return err
	}

	client, err := judge.NewClient(judge.ConfigFromEnv(), logger)
	if err != nil {
		return err
	}

	result, err := evaluation.New(client, logger).Evaluate(context.Background(), evaluation.Request{
		Scenario: scenario,
		Document: doc,
	})
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result.Score, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func runBenchmark(logger *slog.Logger) error {
	if *scenariosDir == "" || *documentsDir == "" {
		return fmt.Errorf("benchmark mode needs -scenarios and -documents")
	}

	scenarios, err := loadScenarios(*scenariosDir)
	if err != nil {
		return err
	}
	agents, err := loadAgents(*documentsDir)
	if err != nil {
		return err
	}

	store, err := benchmark.NewStore(benchmark.StoreConfig{DataDir: *dataDir})
	if err != nil {
		return err
	}
	defer store.Close()

	runner, err := benchmark.NewRunner(store, judge.ConfigFromEnv(),
		benchmark.RunnerConfig{Concurrency: *concurrency}, logger)
	if err != nil {
		return err
	}

	outcome, err := runner.Run(context.Background(), scenarios, agents)
	if err != nil {
		return err
	}
	for _, taskErr := range outcome.Errors {
		logger.Warn("cell skipped", "error", taskErr.Error())
	}

	report := benchmark.BuildReport(outcome.Run, outcome.Results)
	if *reportPath != "" {
		if err := os.WriteFile(*reportPath, []byte(report), 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		logger.Info("report written", "path", *reportPath)
		return nil
	}
	fmt.Print(report)
	return nil
}

func loadScenario(path string) (*domain.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var s domain.Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if s.ID == "" {
		s.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return &s, nil
}

func loadDocument(path string) (domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document %s: %w", path, err)
	}
	return doc, nil
}

func loadScenarios(dir string) ([]*domain.Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no scenario files in %s", dir)
	}

	scenarios := make([]*domain.Scenario, 0, len(paths))
	for _, path := range paths {
		s, err := loadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// loadAgents builds one agent per subdirectory of dir. Each subdirectory
// holds deliverables named <scenario-id>.json.
func loadAgents(dir string) ([]benchmark.Agent, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read documents dir: %w", err)
	}

	var agents []benchmark.Agent
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		agentDir := filepath.Join(dir, entry.Name())
		agents = append(agents, benchmark.Agent{
			ID:     entry.Name(),
			Source: fileSource{dir: agentDir},
		})
	}
	if len(agents) == 0 {
		return nil, fmt.Errorf("no agent directories in %s", dir)
	}
	return agents, nil
}

type fileSource struct {
	dir string
}

func (f fileSource) Generate(_ context.Context, scenario *domain.Scenario) (domain.Document, error) {
	return loadDocument(filepath.Join(f.dir, scenario.ID+".json"))
}
