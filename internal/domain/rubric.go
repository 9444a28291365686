package domain

import "fmt"

// MaxScorePerItem is the ceiling for a single rubric item score.
const MaxScorePerItem = 10.0

// DefaultSubScore is the score assumed for sub-criteria that were never
// scored when their rubric item is averaged.
const DefaultSubScore = 5.0

// SubCriterion is one of the 33 atomic evaluation points. Each belongs to
// exactly one phase and exactly one rubric item; the id is globally unique
// across the whole rubric.
type SubCriterion struct {
	// ID is the global sub-criterion identifier, 1..33.
	ID int

	// Name is the short label used in prompts and reports.
	Name string

	// Essentials describes the required elements the judge looks for.
	// Band criteria text in prompts is rendered from this description
	// combined with the shared band definitions.
	Essentials string

	// Phase is the ADDIE stage the sub-criterion belongs to.
	Phase Phase

	// Item is the rubric item (A1..E3) the sub-criterion rolls up into.
	Item string
}

// RubricItemDef is one of the 13 named criteria that sub-criteria aggregate
// into. Item scores are the arithmetic mean of their sub-criterion scores.
type RubricItemDef struct {
	ID          string
	Phase       Phase
	Name        string
	Description string
	// SubIDs lists the sub-criterion ids mapped to this item, in id order.
	SubIDs []int
}

// subCriteria is the full 33-point rubric. Ordering follows the global id
// sequence, which also groups the table by phase (1-10 analysis, 11-18
// design, 19-23 development, 24-27 implementation, 28-33 evaluation).
var subCriteria = []SubCriterion{
	// Analysis.
	{ID: 1, Name: "Problem identification and definition", Essentials: "states the performance or learning problem explicitly, with evidence that it exists", Phase: PhaseAnalysis, Item: "A1"},
	{ID: 2, Name: "Gap analysis", Essentials: "contrasts current and desired states and quantifies the gap between them", Phase: PhaseAnalysis, Item: "A1"},
	{ID: 3, Name: "Performance analysis", Essentials: "determines whether the gap is addressable by instruction rather than environment or motivation", Phase: PhaseAnalysis, Item: "A1"},
	{ID: 4, Name: "Needs prioritization", Essentials: "ranks identified needs by impact and feasibility with stated criteria", Phase: PhaseAnalysis, Item: "A1"},
	{ID: 5, Name: "Learner analysis", Essentials: "profiles prior knowledge, motivation, demographics, and learning preferences of the target audience", Phase: PhaseAnalysis, Item: "A2"},
	{ID: 6, Name: "Environment analysis", Essentials: "describes the delivery setting, available technology, and organizational constraints", Phase: PhaseAnalysis, Item: "A2"},
	{ID: 7, Name: "Initial goal analysis", Essentials: "derives overall instructional goals from the prioritized needs", Phase: PhaseAnalysis, Item: "A3"},
	{ID: 8, Name: "Subordinate skills analysis", Essentials: "decomposes goals into prerequisite skills and knowledge components", Phase: PhaseAnalysis, Item: "A3"},
	{ID: 9, Name: "Entry behaviors analysis", Essentials: "identifies what learners must already be able to do before instruction begins", Phase: PhaseAnalysis, Item: "A3"},
	{ID: 10, Name: "Task analysis review", Essentials: "consolidates and cross-checks the task analysis results into a coherent summary", Phase: PhaseAnalysis, Item: "A3"},

	// Design.
	{ID: 11, Name: "Learning objectives refinement", Essentials: "states measurable objectives covering audience, behavior, condition, and degree", Phase: PhaseDesign, Item: "D1"},
	{ID: 12, Name: "Assessment planning", Essentials: "aligns planned assessments to each objective with instruments and timing", Phase: PhaseDesign, Item: "D1"},
	{ID: 13, Name: "Instructional content selection", Essentials: "selects and sequences content units justified by the objectives", Phase: PhaseDesign, Item: "D2"},
	{ID: 14, Name: "Instructional strategy formulation", Essentials: "specifies teaching methods and events of instruction matched to objective types", Phase: PhaseDesign, Item: "D2"},
	{ID: 15, Name: "Non-instructional strategy formulation", Essentials: "plans motivation, support, and environmental interventions beyond direct instruction", Phase: PhaseDesign, Item: "D2"},
	{ID: 16, Name: "Media selection and utilization plan", Essentials: "chooses delivery media with rationale and a concrete utilization plan", Phase: PhaseDesign, Item: "D2"},
	{ID: 17, Name: "Learning activity and time structuring", Essentials: "lays out activities with durations, groupings, and transitions", Phase: PhaseDesign, Item: "D2"},
	{ID: 18, Name: "Storyboard and screen flow design", Essentials: "sketches the prototype structure, screen flow, or session storyboard", Phase: PhaseDesign, Item: "D3"},

	// Development.
	{ID: 19, Name: "Learner materials development", Essentials: "produces or concretely specifies the materials learners will use", Phase: PhaseDevelopment, Item: "Dev1"},
	{ID: 20, Name: "Instructor manual development", Essentials: "provides facilitation guidance, timing cues, and answers for instructors", Phase: PhaseDevelopment, Item: "Dev1"},
	{ID: 21, Name: "Operator manual development", Essentials: "documents operational procedures for administrators and support staff", Phase: PhaseDevelopment, Item: "Dev1"},
	{ID: 22, Name: "Assessment items development", Essentials: "develops assessment instruments and items matching the assessment plan", Phase: PhaseDevelopment, Item: "Dev1"},
	{ID: 23, Name: "Expert review", Essentials: "subjects draft materials to subject-matter and design expert review with revisions", Phase: PhaseDevelopment, Item: "Dev2"},

	// Implementation.
	{ID: 24, Name: "Instructor and operator orientation", Essentials: "prepares instructors and operators through briefing or training before launch", Phase: PhaseImplementation, Item: "I1"},
	{ID: 25, Name: "System and environment check", Essentials: "verifies facilities, platforms, and tooling ahead of delivery", Phase: PhaseImplementation, Item: "I1"},
	{ID: 26, Name: "Prototype execution", Essentials: "runs the program as designed, noting deviations from plan", Phase: PhaseImplementation, Item: "I2"},
	{ID: 27, Name: "Operations monitoring and support", Essentials: "monitors delivery and provides learner and instructor support during the run", Phase: PhaseImplementation, Item: "I2"},

	// Evaluation.
	{ID: 28, Name: "Pilot data collection", Essentials: "collects learner reaction and learning data during the pilot or early runs", Phase: PhaseEvaluation, Item: "E1"},
	{ID: 29, Name: "Formative revision", Essentials: "revises the program from formative findings with documented changes", Phase: PhaseEvaluation, Item: "E1"},
	{ID: 30, Name: "Summative assessment development", Essentials: "completes the summative instruments for measuring program outcomes", Phase: PhaseEvaluation, Item: "E2"},
	{ID: 31, Name: "Summative evaluation and effect analysis", Essentials: "administers summative assessment and analyzes program effectiveness", Phase: PhaseEvaluation, Item: "E2"},
	{ID: 32, Name: "Program adoption decision", Essentials: "reaches an evidence-based continue, revise, or discontinue decision", Phase: PhaseEvaluation, Item: "E2"},
	{ID: 33, Name: "Program improvement and feedback", Essentials: "feeds evaluation findings back into an improvement plan for the next cycle", Phase: PhaseEvaluation, Item: "E3"},
}

// rubricItems is the 13-item criteria table. The many-to-one mapping from
// sub-criteria is fixed; SubIDs below must agree with the Item field on each
// SubCriterion (checked by tests).
var rubricItems = []RubricItemDef{
	{ID: "A1", Phase: PhaseAnalysis, Name: "Needs analysis", Description: "Problem definition, gap and performance analysis, and needs prioritization", SubIDs: []int{1, 2, 3, 4}},
	{ID: "A2", Phase: PhaseAnalysis, Name: "Learner and environment analysis", Description: "Target audience profiling and delivery environment analysis", SubIDs: []int{5, 6}},
	{ID: "A3", Phase: PhaseAnalysis, Name: "Task and goal analysis", Description: "Goal derivation, skill decomposition, entry behaviors, and consolidation", SubIDs: []int{7, 8, 9, 10}},
	{ID: "D1", Phase: PhaseDesign, Name: "Assessment and objective alignment design", Description: "Measurable objectives aligned with the assessment plan", SubIDs: []int{11, 12}},
	{ID: "D2", Phase: PhaseDesign, Name: "Instructional strategy and learning experience design", Description: "Content, strategies, media, and activity structuring", SubIDs: []int{13, 14, 15, 16, 17}},
	{ID: "D3", Phase: PhaseDesign, Name: "Prototype structure design", Description: "Storyboard and screen or session flow design", SubIDs: []int{18}},
	{ID: "Dev1", Phase: PhaseDevelopment, Name: "Prototype development", Description: "Learner materials, manuals, and assessment item development", SubIDs: []int{19, 20, 21, 22}},
	{ID: "Dev2", Phase: PhaseDevelopment, Name: "Development review and revision", Description: "Expert review of developed materials", SubIDs: []int{23}},
	{ID: "I1", Phase: PhaseImplementation, Name: "Program execution preparation", Description: "Orientation and environment readiness checks", SubIDs: []int{24, 25}},
	{ID: "I2", Phase: PhaseImplementation, Name: "Program execution", Description: "Delivery and operations monitoring", SubIDs: []int{26, 27}},
	{ID: "E1", Phase: PhaseEvaluation, Name: "Formative evaluation", Description: "Pilot data collection and formative revision", SubIDs: []int{28, 29}},
	{ID: "E2", Phase: PhaseEvaluation, Name: "Summative evaluation and adoption decision", Description: "Summative instruments, effect analysis, and the adoption decision", SubIDs: []int{30, 31, 32}},
	{ID: "E3", Phase: PhaseEvaluation, Name: "Program improvement and feedback", Description: "Improvement planning from evaluation findings", SubIDs: []int{33}},
}

var (
	subCriteriaByID = func() map[int]SubCriterion {
		m := make(map[int]SubCriterion, len(subCriteria))
		for _, sc := range subCriteria {
			m[sc.ID] = sc
		}
		return m
	}()

	rubricItemsByID = func() map[string]RubricItemDef {
		m := make(map[string]RubricItemDef, len(rubricItems))
		for _, item := range rubricItems {
			m[item.ID] = item
		}
		return m
	}()
)

// SubCriterionByID looks up one of the 33 sub-criteria by global id.
func SubCriterionByID(id int) (SubCriterion, error) {
	sc, ok := subCriteriaByID[id]
	if !ok {
		return SubCriterion{}, fmt.Errorf("%w: %d", ErrUnknownSubCriterion, id)
	}
	return sc, nil
}

// RubricItemByID looks up one of the 13 rubric item definitions.
func RubricItemByID(id string) (RubricItemDef, error) {
	item, ok := rubricItemsByID[id]
	if !ok {
		return RubricItemDef{}, fmt.Errorf("%w: %q", ErrUnknownRubricItem, id)
	}
	return item, nil
}

// SubCriteriaForPhase returns the phase's sub-criteria in id order.
func SubCriteriaForPhase(p Phase) []SubCriterion {
	out := make([]SubCriterion, 0, 10)
	for _, sc := range subCriteria {
		if sc.Phase == p {
			out = append(out, sc)
		}
	}
	return out
}

// SubIDsForPhase returns the phase's sub-criterion ids in id order.
func SubIDsForPhase(p Phase) []int {
	scs := SubCriteriaForPhase(p)
	ids := make([]int, len(scs))
	for i, sc := range scs {
		ids[i] = sc.ID
	}
	return ids
}

// ItemsForPhase returns the phase's rubric item definitions in table order.
func ItemsForPhase(p Phase) []RubricItemDef {
	out := make([]RubricItemDef, 0, 3)
	for _, item := range rubricItems {
		if item.Phase == p {
			out = append(out, item)
		}
	}
	return out
}

// AllSubCriteria returns a copy of the full 33-point rubric in id order.
func AllSubCriteria() []SubCriterion {
	out := make([]SubCriterion, len(subCriteria))
	copy(out, subCriteria)
	return out
}

// AllRubricItems returns a copy of the 13-item table in definition order.
func AllRubricItems() []RubricItemDef {
	out := make([]RubricItemDef, len(rubricItems))
	copy(out, rubricItems)
	return out
}
