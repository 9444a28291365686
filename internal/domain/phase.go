// Package domain defines the value objects and static rubric tables for
// ADDIE deliverable evaluation. It models the three-level scoring hierarchy
// (33 sub-criteria → 13 rubric items → 5 lifecycle phases), the qualitative
// status bands that bound numeric scores, and the scenario context profile
// used for phase weighting.
//
// Evaluation Model:
//   - Phase: one of the five ADDIE lifecycle stages, each owning a fixed
//     slice of sub-criteria and rubric items.
//   - Status / Band: a qualitative verdict mapped to a disjoint score
//     interval; bands are contiguous and exhaustive over [0, 10].
//   - SubItemResult / RubricItem / PhaseScore / ADDIEScore: immutable results
//     produced by the scoring engine, never mutated after construction.
//
// All types in this package are pure data with validation; nothing here
// performs I/O or calls the Judge.
package domain

import (
	"fmt"
	"strings"
)

// Phase identifies one of the five ADDIE lifecycle stages.
type Phase string

// The five ADDIE phases in lifecycle order.
const (
	PhaseAnalysis       Phase = "analysis"
	PhaseDesign         Phase = "design"
	PhaseDevelopment    Phase = "development"
	PhaseImplementation Phase = "implementation"
	PhaseEvaluation     Phase = "evaluation"
)

// Phases returns all five phases in lifecycle order.
// Returns a fresh slice to prevent mutation of the canonical ordering.
func Phases() []Phase {
	return []Phase{
		PhaseAnalysis,
		PhaseDesign,
		PhaseDevelopment,
		PhaseImplementation,
		PhaseEvaluation,
	}
}

// String returns the string representation of the phase.
func (p Phase) String() string { return string(p) }

// IsValid reports whether p is one of the five ADDIE phases.
func (p Phase) IsValid() bool {
	switch p {
	case PhaseAnalysis, PhaseDesign, PhaseDevelopment, PhaseImplementation, PhaseEvaluation:
		return true
	}
	return false
}

// ParsePhase converts a string into a Phase, rejecting unknown values.
// Matching is case-insensitive with surrounding whitespace ignored.
func ParsePhase(s string) (Phase, error) {
	p := Phase(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPhase, s)
	}
	return p, nil
}
