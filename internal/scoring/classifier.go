// Package scoring implements the two-pass judge protocol: a status pass
// that classifies each sub-criterion's presence and quality, and a score
// pass constrained to the band the status fixed. Judge transport failures
// propagate to the caller; malformed judge output is repaired locally with
// defaults and never surfaces as an error.
package scoring

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/isdbench/addiebench/internal/domain"
	"github.com/isdbench/addiebench/internal/judge"
)

// StatusClassifier runs the first judge pass for one phase.
type StatusClassifier struct {
	judge  judge.Judge
	logger *slog.Logger
}

// NewStatusClassifier wires a classifier to its judge.
func NewStatusClassifier(j judge.Judge, logger *slog.Logger) *StatusClassifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatusClassifier{judge: j, logger: logger}
}

// ClassifyPhase asks the judge for a status per sub-criterion of the phase.
// A transport error aborts the call; a malformed response degrades every
// unanswered id to DefaultStatus and is logged, not returned.
func (c *StatusClassifier) ClassifyPhase(
	ctx context.Context,
	phase domain.Phase,
	scenarioContext, phaseOutput string,
) (map[int]domain.Status, map[int]string, error) {
	subs := domain.SubCriteriaForPhase(phase)
	prompt := StatusPrompt(scenarioContext, phaseOutput, subs)

	content, err := c.judge.Classify(ctx, prompt)
	if err != nil {
		return nil, nil, fmt.Errorf("status pass for %s: %w", phase, err)
	}

	ids := domain.SubIDsForPhase(phase)
	statuses, reasoning, clean := parseStatusResponse(content, ids)
	if !clean {
		c.logger.Warn("status response unparseable, using defaults",
			"phase", phase.String(),
			"sub_criteria", len(ids))
	}
	return statuses, reasoning, nil
}
