package scoring

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/isdbench/addiebench/internal/domain"
	"github.com/isdbench/addiebench/internal/judge"
)

// RangeScorer runs the second judge pass for one phase: precise scores
// constrained to the band each sub-criterion's status allows.
type RangeScorer struct {
	judge  judge.Judge
	logger *slog.Logger
}

// NewRangeScorer wires a scorer to its judge.
func NewRangeScorer(j judge.Judge, logger *slog.Logger) *RangeScorer {
	if logger == nil {
		logger = slog.Default()
	}
	return &RangeScorer{judge: j, logger: logger}
}

// PhaseResult is the scored outcome of one phase's two-pass evaluation.
// Missing and Weak carry the names of sub-criteria judged absent or weak,
// feeding the improvement list on the final score.
type PhaseResult struct {
	Phase   domain.Phase
	Results []domain.SubItemResult
	Missing []string
	Weak    []string
}

// ScorePhase asks the judge for banded scores given the statuses from the
// first pass. Transport errors abort; malformed responses fall back to band
// midpoints. Out-of-band scores are clamped unconditionally and counted as
// a judge quality signal in the log.
func (s *RangeScorer) ScorePhase(
	ctx context.Context,
	phase domain.Phase,
	scenarioContext, phaseOutput string,
	statuses map[int]domain.Status,
) (PhaseResult, error) {
	subs := domain.SubCriteriaForPhase(phase)
	prompt := ScorePrompt(scenarioContext, phaseOutput, subs, statuses)

	content, err := s.judge.Classify(ctx, prompt)
	if err != nil {
		return PhaseResult{}, fmt.Errorf("score pass for %s: %w", phase, err)
	}

	ids := domain.SubIDsForPhase(phase)
	results, clean := parseScoreResponse(content, ids, statuses)
	if !clean {
		s.logger.Warn("score response unparseable, using band midpoints",
			"phase", phase.String(),
			"sub_criteria", len(ids))
	}

	out := PhaseResult{Phase: phase, Results: results}
	clamped := 0
	for i, r := range results {
		if r.Clamped {
			clamped++
		}
		sc, lookupErr := domain.SubCriterionByID(r.ID)
		if lookupErr != nil {
			continue
		}
		switch r.Status {
		case domain.StatusAbsent:
			out.Missing = append(out.Missing, sc.Name)
		case domain.StatusWeak:
			out.Weak = append(out.Weak, sc.Name)
		}
		// Prefix the status so downstream reports show the band a score
		// was confined to.
		if r.Reasoning != "" {
			results[i].Reasoning = fmt.Sprintf("[%s] %s", r.Status, r.Reasoning)
		}
	}
	if clamped > 0 {
		s.logger.Info("scores clamped into status bands",
			"phase", phase.String(),
			"clamped", clamped)
	}
	return out, nil
}
