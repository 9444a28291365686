// Package worker wires the evaluation workflow and activities into a Temporal
// worker and owns the startup-time construction of their dependencies.
package worker

import (
	sdkactivity "go.temporal.io/sdk/activity"
	sdkworker "go.temporal.io/sdk/worker"

	actv "github.com/isdbench/addiebench/internal/activity"
	"github.com/isdbench/addiebench/internal/judge"
	"github.com/isdbench/addiebench/internal/workflow"
	pkgactivity "github.com/isdbench/addiebench/pkg/activity"
)

// RegisterAll registers the evaluation workflow and its activities with the
// Temporal worker. Call once during worker startup, before the worker runs;
// registration is not thread-safe.
//
// Activities are registered under the fixed names the workflow invokes them
// by, so renaming a Go method never breaks in-flight histories.
func RegisterAll(w sdkworker.Worker, j judge.Judge) {
	base := pkgactivity.NewBaseActivities()
	acts := actv.NewActivities(base, j)

	w.RegisterWorkflow(workflow.EvaluationWorkflow)

	w.RegisterActivityWithOptions(acts.PrepareEvaluation,
		sdkactivity.RegisterOptions{Name: workflow.PrepareEvaluationActivity})
	w.RegisterActivityWithOptions(acts.ClassifyPhase,
		sdkactivity.RegisterOptions{Name: workflow.ClassifyPhaseActivity})
	w.RegisterActivityWithOptions(acts.ScorePhase,
		sdkactivity.RegisterOptions{Name: workflow.ScorePhaseActivity})
	w.RegisterActivityWithOptions(acts.AggregateScores,
		sdkactivity.RegisterOptions{Name: workflow.AggregateScoresActivity})
}
