package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Scenario describes one benchmark teaching scenario. Only the fields the
// scoring engine consumes are modeled; agents receive the same descriptor
// through the benchmark driver but that surface is outside this package.
type Scenario struct {
	ID            string            `json:"id,omitempty"`
	Title         string            `json:"title"`
	Domain        string            `json:"domain,omitempty"`
	Context       ScenarioContext   `json:"context"`
	LearningGoals []string          `json:"learning_goals,omitempty"`
	Constraints   map[string]string `json:"constraints,omitempty"`
}

// ScenarioContext is the free-form pedagogical context of a scenario.
// Explicit fields take precedence over inference when building a
// ContextProfile; the remaining fields feed keyword inference.
type ScenarioContext struct {
	TargetAudience      string   `json:"target_audience,omitempty"`
	PriorKnowledge      string   `json:"prior_knowledge,omitempty"`
	Duration            string   `json:"duration,omitempty"`
	LearningEnvironment string   `json:"learning_environment,omitempty"`
	Topic               string   `json:"topic,omitempty"`
	Subject             string   `json:"subject,omitempty"`
	ClassSize           int      `json:"class_size,omitempty"`
	Objectives          []string `json:"objectives,omitempty"`
	SkillsToAcquire     []string `json:"skills_to_acquire,omitempty"`

	// Explicit profile fields; when set they bypass inference.
	InstitutionType  string `json:"institution_type,omitempty"`
	LearnerAge       string `json:"learner_age,omitempty"`
	LearnerEducation string `json:"learner_education,omitempty"`
	DomainExpertise  string `json:"domain_expertise,omitempty"`
	LearnerRole      string `json:"learner_role,omitempty"`
}

// FormatContext renders the scenario as the context block embedded in judge
// prompts. Missing fields render as "unspecified" so the judge sees a stable
// shape regardless of scenario completeness.
func (s *Scenario) FormatContext() string {
	if s == nil {
		return "not provided"
	}
	orUnspecified := func(v string) string {
		if v == "" {
			return "unspecified"
		}
		return v
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", orUnspecified(s.Title))
	fmt.Fprintf(&b, "Audience: %s\n", orUnspecified(s.Context.TargetAudience))
	fmt.Fprintf(&b, "Prior knowledge: %s\n", orUnspecified(s.Context.PriorKnowledge))
	fmt.Fprintf(&b, "Duration: %s\n", orUnspecified(s.Context.Duration))
	fmt.Fprintf(&b, "Environment: %s\n", orUnspecified(s.Context.LearningEnvironment))
	fmt.Fprintf(&b, "Learning goals: %s\n", orUnspecified(strings.Join(s.LearningGoals, ", ")))
	if len(s.Constraints) > 0 {
		b.WriteString("Constraints:\n")
		for _, k := range sortedKeys(s.Constraints) {
			fmt.Fprintf(&b, "  - %s: %s\n", k, s.Constraints[k])
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
