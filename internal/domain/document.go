package domain

import "strings"

// Document is a parsed instructional-design deliverable. Agents emit JSON
// objects with no agreed schema, so the type is a raw key/value map and
// phase extraction is tolerant of naming variation.
type Document map[string]any

// phaseAliases maps each phase to the section names it may appear under.
// Matching is exact first, then case-insensitive substring over all keys.
var phaseAliases = map[Phase][]string{
	PhaseAnalysis:       {"analysis", "분석", "learner_analysis", "context_analysis"},
	PhaseDesign:         {"design", "설계", "learning_objectives", "assessment_design"},
	PhaseDevelopment:    {"development", "개발", "content", "materials"},
	PhaseImplementation: {"implementation", "실행", "delivery_plan", "instructor_guide"},
	PhaseEvaluation:     {"evaluation", "평가", "assessment", "improvement_plan"},
}

// PhaseSlice extracts the sections of the document that belong to phase.
// Values that are themselves objects are flattened into the slice; scalar
// values are kept under their original key. When no section matches, the
// whole document is returned so the judge still sees the full deliverable
// rather than an empty object.
func (d Document) PhaseSlice(phase Phase) Document {
	aliases := phaseAliases[phase]
	slice := Document{}

	merge := func(key string, v any) {
		if nested, ok := v.(map[string]any); ok {
			for nk, nv := range nested {
				slice[nk] = nv
			}
			return
		}
		slice[key] = v
	}

	for _, alias := range aliases {
		if v, ok := d[alias]; ok {
			merge(alias, v)
		}
	}
	for k, v := range d {
		if containsAnyFold(k, aliases) {
			merge(k, v)
		}
	}

	if len(slice) == 0 {
		return d
	}
	return slice
}

func containsAnyFold(key string, aliases []string) bool {
	lower := strings.ToLower(key)
	for _, a := range aliases {
		if a != "" && strings.Contains(lower, strings.ToLower(a)) {
			return true
		}
	}
	return false
}
