package domain

// SubItemResult is the final outcome for one sub-criterion after both judge
// passes: the assigned status, the band-enforced score, and the judge's
// reasoning. Immutable once produced by the scorer.
type SubItemResult struct {
	// ID is the global sub-criterion id, 1..33.
	ID int `json:"id" validate:"required,min=1,max=33"`

	// Status is the qualitative verdict from the first pass.
	Status Status `json:"status" validate:"required,oneof=absent weak moderate good excellent"`

	// Score is the enforced numeric score; always within the status band.
	Score float64 `json:"score" validate:"min=0,max=10"`

	// Reasoning is the judge's free-text rationale, prefixed with the status.
	Reasoning string `json:"reasoning,omitempty"`

	// Clamped records whether the judge's raw score fell outside its band
	// and was pulled back in. Tracked as a judge-quality signal; never an error.
	Clamped bool `json:"clamped,omitempty"`
}

// Validate checks structural constraints plus the band-containment invariant:
// the score must lie within the band implied by the status.
func (r *SubItemResult) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	if !BandFor(r.Status).Contains(r.Score) {
		return ErrScoreOutOfBand
	}
	return nil
}

// RubricItem is the scored form of one of the 13 criteria. The score is the
// arithmetic mean of the sub-criterion scores mapped to the item.
type RubricItem struct {
	ItemID      string  `json:"item_id" validate:"required"`
	Phase       Phase   `json:"phase" validate:"required,oneof=analysis design development implementation evaluation"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description,omitempty"`
	Score       float64 `json:"score" validate:"min=0,max=10"`
	Reasoning   string  `json:"reasoning,omitempty"`
}

// Validate checks if the rubric item meets all structural requirements.
func (r *RubricItem) Validate() error { return validate.Struct(r) }

// PhaseScore aggregates one phase's rubric items.
//
// Invariants: RawScore is the sum of item scores, MaxScore is 10 times the
// item count, and WeightedScore is RawScore times the phase weight used for
// this evaluation.
type PhaseScore struct {
	Phase         Phase        `json:"phase" validate:"required"`
	Items         []RubricItem `json:"items" validate:"required,min=1,dive"`
	RawScore      float64      `json:"raw_score" validate:"min=0"`
	WeightedScore float64      `json:"weighted_score" validate:"min=0"`
	MaxScore      float64      `json:"max_score" validate:"min=0"`
}

// Validate checks if the phase score meets all structural requirements.
func (p *PhaseScore) Validate() error { return validate.Struct(p) }

// Percentage returns the phase's raw score as a fraction of its maximum,
// expressed in [0, 100]. Returns 0 for a degenerate zero maximum.
func (p *PhaseScore) Percentage() float64 {
	if p.MaxScore <= 0 {
		return 0
	}
	return p.RawScore / p.MaxScore * 100
}

// AverageScore returns the mean item score, or 0 with no items.
func (p *PhaseScore) AverageScore() float64 {
	if len(p.Items) == 0 {
		return 0
	}
	return p.RawScore / float64(len(p.Items))
}

// ADDIEScore is the final verdict for one (scenario, document) pair: the five
// phase breakdowns, raw and weighted totals, the normalized score in
// [0, 100], and report material. Created once per evaluation and immutable
// once returned.
type ADDIEScore struct {
	Analysis       PhaseScore `json:"analysis" validate:"required"`
	Design         PhaseScore `json:"design" validate:"required"`
	Development    PhaseScore `json:"development" validate:"required"`
	Implementation PhaseScore `json:"implementation" validate:"required"`
	Evaluation     PhaseScore `json:"evaluation" validate:"required"`

	TotalRaw        float64 `json:"total_raw" validate:"min=0"`
	TotalWeighted   float64 `json:"total_weighted" validate:"min=0"`
	NormalizedScore float64 `json:"normalized_score" validate:"min=0,max=100"`

	// Strengths and Improvements name sub-criteria for reporting; the
	// improvements list holds absent sub-criteria first, then weak ones,
	// each truncated to keep reports compact.
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`

	// Narrative is a summary enumerating every sub-criterion's final score.
	Narrative string `json:"narrative"`
}

// Validate checks if the score meets all structural requirements.
func (s *ADDIEScore) Validate() error { return validate.Struct(s) }

// PhaseScores returns the five phase breakdowns keyed by phase.
func (s *ADDIEScore) PhaseScores() map[Phase]PhaseScore {
	return map[Phase]PhaseScore{
		PhaseAnalysis:       s.Analysis,
		PhaseDesign:         s.Design,
		PhaseDevelopment:    s.Development,
		PhaseImplementation: s.Implementation,
		PhaseEvaluation:     s.Evaluation,
	}
}

// Phase returns the breakdown for one phase. Unknown phases return the
// zero PhaseScore; callers validate phases upstream.
func (s *ADDIEScore) Phase(p Phase) PhaseScore {
	switch p {
	case PhaseAnalysis:
		return s.Analysis
	case PhaseDesign:
		return s.Design
	case PhaseDevelopment:
		return s.Development
	case PhaseImplementation:
		return s.Implementation
	case PhaseEvaluation:
		return s.Evaluation
	}
	return PhaseScore{}
}
