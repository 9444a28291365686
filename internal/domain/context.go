package domain

// ContextProfile carries the scenario's pedagogical metadata used solely to
// bias phase weighting. All eleven fields are optional; an absent field
// contributes no weight delta. The attribute names and their enumerated value
// strings are the contract consumed from the scenario inference layer, so
// values stay in the vocabulary that layer emits (including Korean labels
// such as "온라인 실시간(Zoom 등)").
//
// Immutable after construction; the weight adjuster treats equal profiles as
// cache keys.
type ContextProfile struct {
	InstitutionType  string `json:"institution_type,omitempty"`
	DeliveryMode     string `json:"delivery_mode,omitempty"`
	Duration         string `json:"duration,omitempty"`
	EvaluationFocus  string `json:"evaluation_focus,omitempty"`
	LearnerAge       string `json:"learner_age,omitempty"`
	LearnerEducation string `json:"learner_education,omitempty"`
	DomainExpertise  string `json:"domain_expertise,omitempty"`
	LearnerRole      string `json:"learner_role,omitempty"`
	EducationDomain  string `json:"education_domain,omitempty"`
	ClassSize        string `json:"class_size,omitempty"`
	TechEnvironment  string `json:"tech_environment,omitempty"`
}

// IsEmpty reports whether no attribute is populated. An empty profile yields
// the base weight distribution unchanged.
func (c ContextProfile) IsEmpty() bool {
	return c == ContextProfile{}
}

// Attribute returns the value of a named attribute. Names follow the wire
// contract (snake_case). Unknown names return the empty string.
func (c ContextProfile) Attribute(name string) string {
	switch name {
	case "institution_type":
		return c.InstitutionType
	case "delivery_mode":
		return c.DeliveryMode
	case "duration":
		return c.Duration
	case "evaluation_focus":
		return c.EvaluationFocus
	case "learner_age":
		return c.LearnerAge
	case "learner_education":
		return c.LearnerEducation
	case "domain_expertise":
		return c.DomainExpertise
	case "learner_role":
		return c.LearnerRole
	case "education_domain":
		return c.EducationDomain
	case "class_size":
		return c.ClassSize
	case "tech_environment":
		return c.TechEnvironment
	}
	return ""
}
