// Package workflow orchestrates ADDIE deliverable evaluation as a Temporal
// workflow: Prepare → per-phase (Classify → Score) → Aggregate. All control
// flow here uses workflow-safe APIs only; every judge call happens inside an
// activity governed by the retry policy below.
package workflow

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	actv "github.com/isdbench/addiebench/internal/activity"
	"github.com/isdbench/addiebench/internal/domain"
	"github.com/isdbench/addiebench/internal/scoring"
)

// Activity names as registered with the worker.
const (
	PrepareEvaluationActivity = "PrepareEvaluation"
	ClassifyPhaseActivity     = "ClassifyPhase"
	ScorePhaseActivity        = "ScorePhase"
	AggregateScoresActivity   = "AggregateScores"
)

// TaskQueue is the queue evaluation workers poll.
const TaskQueue = "addie-evaluation"

// EvaluationRequest is the workflow input: one scenario and the deliverable
// an agent produced for it.
type EvaluationRequest struct {
	Scenario *domain.Scenario `json:"scenario,omitempty"`
	Document domain.Document  `json:"document"`
}

// EvaluationOutcome is the workflow result.
type EvaluationOutcome struct {
	Score   domain.ADDIEScore        `json:"score"`
	Profile domain.ContextProfile    `json:"profile"`
	Weights map[domain.Phase]float64 `json:"weights"`
}

// EvaluationWorkflow scores one deliverable with the two-pass protocol.
// Phases run sequentially; the status pass for a phase must complete before
// its score pass because the score prompt embeds the assigned statuses.
func EvaluationWorkflow(ctx workflow.Context, req EvaluationRequest) (*EvaluationOutcome, error) {
	const currentVersion = 1
	_ = workflow.GetVersion(ctx, "evaluation.v", workflow.DefaultVersion, currentVersion)

	if req.Document == nil {
		return nil, temporal.NewNonRetryableApplicationError(
			"evaluation request has no document",
			"Validation",
			nil,
		)
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		HeartbeatTimeout:    30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	logger := workflow.GetLogger(ctx)

	var prep actv.PrepareEvaluationOutput
	if err := workflow.ExecuteActivity(ctx, PrepareEvaluationActivity, actv.PrepareEvaluationInput{
		Scenario: req.Scenario,
		Document: req.Document,
	}).Get(ctx, &prep); err != nil {
		return nil, err
	}

	results := make([]scoring.PhaseResult, 0, 5)
	for _, phase := range domain.Phases() {
		var classified actv.ClassifyPhaseOutput
		if err := workflow.ExecuteActivity(ctx, ClassifyPhaseActivity, actv.ClassifyPhaseInput{
			Phase:           phase,
			ScenarioContext: prep.ScenarioContext,
			PhaseOutput:     prep.PhaseOutputs[phase],
		}).Get(ctx, &classified); err != nil {
			return nil, err
		}

		var scored actv.ScorePhaseOutput
		if err := workflow.ExecuteActivity(ctx, ScorePhaseActivity, actv.ScorePhaseInput{
			Phase:           phase,
			ScenarioContext: prep.ScenarioContext,
			PhaseOutput:     prep.PhaseOutputs[phase],
			Statuses:        classified.Statuses,
		}).Get(ctx, &scored); err != nil {
			return nil, err
		}

		results = append(results, scored.Result)
		logger.Info("phase scored", "phase", phase.String())
	}

	var aggregated actv.AggregateScoresOutput
	if err := workflow.ExecuteActivity(ctx, AggregateScoresActivity, actv.AggregateScoresInput{
		Phases:  results,
		Weights: prep.Weights,
	}).Get(ctx, &aggregated); err != nil {
		return nil, err
	}

	return &EvaluationOutcome{
		Score:   aggregated.Score,
		Profile: prep.Profile,
		Weights: prep.Weights,
	}, nil
}
