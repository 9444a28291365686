// Package activity implements the Temporal activities for ADDIE deliverable
// evaluation: context preparation, the two judge passes per phase, and the
// final aggregation fold.
package activity

import (
	"context"
	"encoding/json"

	"github.com/isdbench/addiebench/internal/aggregation"
	"github.com/isdbench/addiebench/internal/domain"
	"github.com/isdbench/addiebench/internal/judge"
	"github.com/isdbench/addiebench/internal/scoring"
	"github.com/isdbench/addiebench/internal/weights"
	pkgactivity "github.com/isdbench/addiebench/pkg/activity"
)

// Activities bundles the evaluation activities behind shared dependencies.
// Judge-facing activities are retryable on transport failure; preparation
// and aggregation are deterministic and fail only on invalid input.
type Activities struct {
	pkgactivity.BaseActivities
	classifier *scoring.StatusClassifier
	scorer     *scoring.RangeScorer
	adjuster   *weights.Adjuster
}

// NewActivities wires the activities to their judge.
func NewActivities(base pkgactivity.BaseActivities, j judge.Judge) *Activities {
	return &Activities{
		BaseActivities: base,
		classifier:     scoring.NewStatusClassifier(j, nil),
		scorer:         scoring.NewRangeScorer(j, nil),
		adjuster:       weights.NewAdjuster(),
	}
}

// PrepareEvaluationInput is the raw scenario and deliverable for one run.
type PrepareEvaluationInput struct {
	Scenario *domain.Scenario `json:"scenario,omitempty"`
	Document domain.Document  `json:"document"`
}

// PrepareEvaluationOutput carries everything the judge passes need: the
// rendered scenario context, the per-phase document slices as JSON, and the
// context-adjusted phase weights.
type PrepareEvaluationOutput struct {
	ScenarioContext string                   `json:"scenario_context"`
	PhaseOutputs    map[domain.Phase]string  `json:"phase_outputs"`
	Profile         domain.ContextProfile    `json:"profile"`
	Weights         map[domain.Phase]float64 `json:"weights"`
}

// PrepareEvaluation derives the scenario context, slices the document per
// phase, and computes the weight profile. Deterministic; never retried for
// transport reasons.
func (a *Activities) PrepareEvaluation(
	ctx context.Context,
	in PrepareEvaluationInput,
) (*PrepareEvaluationOutput, error) {
	if in.Document == nil {
		return nil, nonRetryable("PrepareEvaluation", nil, "document is required")
	}

	profile := weights.ProfileFromScenario(in.Scenario)
	out := &PrepareEvaluationOutput{
		ScenarioContext: in.Scenario.FormatContext(),
		PhaseOutputs:    make(map[domain.Phase]string, 5),
		Profile:         profile,
		Weights:         a.adjuster.Adjust(profile),
	}

	for _, phase := range domain.Phases() {
		slice, err := json.MarshalIndent(in.Document.PhaseSlice(phase), "", "  ")
		if err != nil {
			return nil, nonRetryable("PrepareEvaluation", err, "encode phase slice")
		}
		out.PhaseOutputs[phase] = string(slice)
	}

	pkgactivity.SafeLog(ctx, "Evaluation prepared",
		"profile_empty", profile.IsEmpty(),
		"phases", len(out.PhaseOutputs))
	return out, nil
}

// ClassifyPhaseInput selects one phase for the status pass.
type ClassifyPhaseInput struct {
	Phase           domain.Phase `json:"phase"`
	ScenarioContext string       `json:"scenario_context"`
	PhaseOutput     string       `json:"phase_output"`
}

// ClassifyPhaseOutput is the status verdict per sub-criterion id.
type ClassifyPhaseOutput struct {
	Statuses  map[int]domain.Status `json:"statuses"`
	Reasoning map[int]string        `json:"reasoning,omitempty"`
}

// ClassifyPhase runs the first judge pass for one phase. Judge transport
// failures return retryable errors; malformed judge output is repaired with
// defaults inside the scoring layer and is not an error.
func (a *Activities) ClassifyPhase(
	ctx context.Context,
	in ClassifyPhaseInput,
) (*ClassifyPhaseOutput, error) {
	if !in.Phase.IsValid() {
		return nil, nonRetryable("ClassifyPhase", nil, "unknown phase")
	}

	wfCtx := a.GetWorkflowContext(ctx)
	pkgactivity.SafeLog(ctx, "Starting status pass",
		"workflow_id", wfCtx.WorkflowID,
		"phase", in.Phase.String())
	a.RecordHeartbeat(ctx, "status:"+in.Phase.String())

	statuses, reasoning, err := a.classifier.ClassifyPhase(ctx, in.Phase, in.ScenarioContext, in.PhaseOutput)
	if err != nil {
		return nil, retryable("ClassifyPhase", err, "judge call failed")
	}
	return &ClassifyPhaseOutput{Statuses: statuses, Reasoning: reasoning}, nil
}

// ScorePhaseInput selects one phase for the banded score pass.
type ScorePhaseInput struct {
	Phase           domain.Phase          `json:"phase"`
	ScenarioContext string                `json:"scenario_context"`
	PhaseOutput     string                `json:"phase_output"`
	Statuses        map[int]domain.Status `json:"statuses"`
}

// ScorePhaseOutput is the scored phase result.
type ScorePhaseOutput struct {
	Result scoring.PhaseResult `json:"result"`
}

// ScorePhase runs the second judge pass for one phase.
func (a *Activities) ScorePhase(
	ctx context.Context,
	in ScorePhaseInput,
) (*ScorePhaseOutput, error) {
	if !in.Phase.IsValid() {
		return nil, nonRetryable("ScorePhase", nil, "unknown phase")
	}

	wfCtx := a.GetWorkflowContext(ctx)
	pkgactivity.SafeLog(ctx, "Starting score pass",
		"workflow_id", wfCtx.WorkflowID,
		"phase", in.Phase.String())
	a.RecordHeartbeat(ctx, "score:"+in.Phase.String())

	result, err := a.scorer.ScorePhase(ctx, in.Phase, in.ScenarioContext, in.PhaseOutput, in.Statuses)
	if err != nil {
		return nil, retryable("ScorePhase", err, "judge call failed")
	}
	return &ScorePhaseOutput{Result: result}, nil
}

// AggregateScoresInput is the full set of phase results plus the weights
// resolved during preparation.
type AggregateScoresInput struct {
	Phases  []scoring.PhaseResult    `json:"phases"`
	Weights map[domain.Phase]float64 `json:"weights"`
}

// AggregateScoresOutput is the final hierarchical score.
type AggregateScoresOutput struct {
	Score domain.ADDIEScore `json:"score"`
}

// AggregateScores folds phase results into the final score. Pure and
// deterministic; validation failures are non-retryable.
func (a *Activities) AggregateScores(
	ctx context.Context,
	in AggregateScoresInput,
) (*AggregateScoresOutput, error) {
	if len(in.Weights) == 0 {
		return nil, nonRetryable("AggregateScores", nil, "weights are required")
	}

	score := aggregation.BuildScore(aggregation.Input{
		Phases:  in.Phases,
		Weights: in.Weights,
	})
	if err := score.Validate(); err != nil {
		return nil, nonRetryable("AggregateScores", err, "aggregated score invalid")
	}

	pkgactivity.SafeLog(ctx, "Aggregation completed",
		"normalized_score", score.NormalizedScore)
	return &AggregateScoresOutput{Score: score}, nil
}
