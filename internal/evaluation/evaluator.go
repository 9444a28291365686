// Package evaluation exposes the full scoring pipeline behind a single
// facade: context weighting, per-phase document slicing, the two-pass judge
// protocol, and aggregation into the final score.
package evaluation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/isdbench/addiebench/internal/aggregation"
	"github.com/isdbench/addiebench/internal/domain"
	"github.com/isdbench/addiebench/internal/judge"
	"github.com/isdbench/addiebench/internal/scoring"
	"github.com/isdbench/addiebench/internal/weights"
)

// Request is one deliverable to score against its scenario. Scenario may be
// nil; the judge then sees a placeholder context and the base weights apply.
type Request struct {
	Scenario *domain.Scenario
	Document domain.Document
}

// Result is the scored outcome with the context the engine derived for it.
type Result struct {
	Score   domain.ADDIEScore
	Profile domain.ContextProfile
	Weights map[domain.Phase]float64
	Elapsed time.Duration
}

// Evaluator runs the complete two-pass evaluation. It is safe for
// concurrent use when its Judge is; the weight adjuster memoizes across
// evaluations.
type Evaluator struct {
	classifier *scoring.StatusClassifier
	scorer     *scoring.RangeScorer
	adjuster   *weights.Adjuster
	logger     *slog.Logger
}

// New builds an Evaluator on top of the given judge.
func New(j judge.Judge, logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{
		classifier: scoring.NewStatusClassifier(j, logger),
		scorer:     scoring.NewRangeScorer(j, logger),
		adjuster:   weights.NewAdjuster(),
		logger:     logger,
	}
}

// Evaluate scores one deliverable. Phases run sequentially, each issuing a
// status call and then a score call; the first judge transport failure
// aborts the evaluation so the caller's retry policy can rerun it.
func (e *Evaluator) Evaluate(ctx context.Context, req Request) (Result, error) {
	start := time.Now()

	scenarioContext := req.Scenario.FormatContext()
	profile := weights.ProfileFromScenario(req.Scenario)
	phaseWeights := e.adjuster.Adjust(profile)

	results := make([]scoring.PhaseResult, 0, 5)
	for _, phase := range domain.Phases() {
		slice := req.Document.PhaseSlice(phase)
		phaseJSON, err := json.MarshalIndent(slice, "", "  ")
		if err != nil {
			return Result{}, fmt.Errorf("encode %s slice: %w", phase, err)
		}

		statuses, _, err := e.classifier.ClassifyPhase(ctx, phase, scenarioContext, string(phaseJSON))
		if err != nil {
			return Result{}, err
		}

		pr, err := e.scorer.ScorePhase(ctx, phase, scenarioContext, string(phaseJSON), statuses)
		if err != nil {
			return Result{}, err
		}
		results = append(results, pr)
	}

	score := aggregation.BuildScore(aggregation.Input{
		Phases:  results,
		Weights: phaseWeights,
	})

	elapsed := time.Since(start)
	e.logger.Info("evaluation completed",
		"normalized_score", score.NormalizedScore,
		"improvements", len(score.Improvements),
		"elapsed", elapsed)

	return Result{
		Score:   score,
		Profile: profile,
		Weights: phaseWeights,
		Elapsed: elapsed,
	}, nil
}
