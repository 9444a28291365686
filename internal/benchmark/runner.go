package benchmark

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/isdbench/addiebench/internal/domain"
	"github.com/isdbench/addiebench/internal/evaluation"
	"github.com/isdbench/addiebench/internal/judge"
)

// DocumentSource produces an agent's ADDIE deliverable for a scenario. The
// benchmark treats agents as opaque document producers; how a document came
// to exist (live agent run, file on disk, fixture) is the source's concern.
type DocumentSource interface {
	Generate(ctx context.Context, scenario *domain.Scenario) (domain.Document, error)
}

// DocumentSourceFunc adapts a function to the DocumentSource interface.
type DocumentSourceFunc func(ctx context.Context, scenario *domain.Scenario) (domain.Document, error)

// Generate implements DocumentSource.
func (f DocumentSourceFunc) Generate(ctx context.Context, scenario *domain.Scenario) (domain.Document, error) {
	return f(ctx, scenario)
}

// Agent is one comparison subject.
type Agent struct {
	ID     string
	Source DocumentSource
}

// TaskError records one failed (scenario, agent) cell. Failures never abort
// the run; the remaining cells still execute.
type TaskError struct {
	ScenarioID string
	AgentID    string
	Err        error
}

func (e TaskError) Error() string {
	return fmt.Sprintf("scenario %s, agent %s: %v", e.ScenarioID, e.AgentID, e.Err)
}

// RunOutcome is the completed matrix: the persisted run, its results, and
// any cells that failed.
type RunOutcome struct {
	Run     *Run
	Results []Result
	Errors  []TaskError
}

// RunnerConfig bounds the matrix execution.
type RunnerConfig struct {
	// Concurrency caps in-flight evaluations across the whole matrix.
	// Defaults to 3, matching typical judge-provider rate limits.
	Concurrency int64
}

// Runner executes a scenario-by-agent matrix against one judge and persists
// every outcome. The judge client is shared so its key rotator spreads load
// across all configured API keys; each in-flight evaluation gets its own
// engine instance.
type Runner struct {
	store  *Store
	judge  judge.Judge
	cfg    judge.Config
	sem    *semaphore.Weighted
	logger *slog.Logger
}

// NewRunner builds a Runner over the given store and judge configuration.
func NewRunner(store *Store, judgeCfg judge.Config, rc RunnerConfig, logger *slog.Logger) (*Runner, error) {
	if logger == nil {
		logger = slog.Default()
	}
	client, err := judge.NewClient(judgeCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("benchmark: build judge: %w", err)
	}
	concurrency := rc.Concurrency
	if concurrency <= 0 {
		concurrency = 3
	}
	return &Runner{
		store:  store,
		judge:  client,
		cfg:    judgeCfg,
		sem:    semaphore.NewWeighted(concurrency),
		logger: logger,
	}, nil
}

// Run evaluates every (scenario, agent) pair and returns the persisted
// outcome. A failed cell is recorded and skipped; only store-level failures
// abort the run.
func (r *Runner) Run(ctx context.Context, scenarios []*domain.Scenario, agents []Agent) (*RunOutcome, error) {
	run, err := r.store.CreateRun(r.cfg.Provider, r.cfg.EffectiveModel())
	if err != nil {
		return nil, err
	}

	r.logger.Info("benchmark started",
		"run_id", run.ID,
		"scenarios", len(scenarios),
		"agents", len(agents))

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results []Result
		taskErr []TaskError
	)

	for _, scenario := range scenarios {
		for _, agent := range agents {
			if err := r.sem.Acquire(ctx, 1); err != nil {
				wg.Wait()
				return nil, fmt.Errorf("benchmark: acquire worker: %w", err)
			}

			wg.Add(1)
			go func(scenario *domain.Scenario, agent Agent) {
				defer wg.Done()
				defer r.sem.Release(1)

				res, err := r.evaluateCell(ctx, run.ID, scenario, agent)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					taskErr = append(taskErr, TaskError{
						ScenarioID: scenario.ID,
						AgentID:    agent.ID,
						Err:        err,
					})
					r.logger.Error("cell failed",
						"run_id", run.ID,
						"scenario", scenario.ID,
						"agent", agent.ID,
						"error", err)
					return
				}
				results = append(results, res)
			}(scenario, agent)
		}
	}
	wg.Wait()

	if err := r.store.FinishRun(run.ID); err != nil {
		return nil, err
	}

	r.logger.Info("benchmark finished",
		"run_id", run.ID,
		"results", len(results),
		"failures", len(taskErr))

	return &RunOutcome{Run: run, Results: results, Errors: taskErr}, nil
}

func (r *Runner) evaluateCell(ctx context.Context, runID string, scenario *domain.Scenario, agent Agent) (Result, error) {
	doc, err := agent.Source.Generate(ctx, scenario)
	if err != nil {
		return Result{}, fmt.Errorf("generate document: %w", err)
	}

	start := time.Now()
	evalResult, err := evaluation.New(r.judge, r.logger).Evaluate(ctx, evaluation.Request{
		Scenario: scenario,
		Document: doc,
	})
	if err != nil {
		return Result{}, fmt.Errorf("evaluate: %w", err)
	}

	res := Result{
		RunID:      runID,
		ScenarioID: scenario.ID,
		AgentID:    agent.ID,
		Score:      evalResult.Score,
		ElapsedMS:  time.Since(start).Milliseconds(),
	}
	if err := r.store.SaveResult(res); err != nil {
		return Result{}, err
	}
	return res, nil
}
