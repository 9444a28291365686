package weights

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/isdbench/addiebench/internal/domain"
)

func TestProfileFromScenarioExplicitFieldsWin(t *testing.T) {
	s := &domain.Scenario{
		Domain: "수학",
		Context: domain.ScenarioContext{
			TargetAudience:  "신입사원",
			InstitutionType: "대학교(학부)",
		},
	}

	p := ProfileFromScenario(s)
	assert.Equal(t, "대학교(학부)", p.InstitutionType)
	assert.Equal(t, "수학", p.EducationDomain)
}

func TestProfileFromScenarioInference(t *testing.T) {
	s := &domain.Scenario{
		Context: domain.ScenarioContext{
			TargetAudience:      "마케팅팀 신입사원",
			PriorKnowledge:      "엑셀 기초 수준",
			Duration:            "3개월",
			LearningEnvironment: "온라인 실시간(Zoom 등)",
			Topic:               "디지털 마케팅 전략",
			ClassSize:           25,
		},
		Constraints: map[string]string{
			"assessment_type": "형성평가 중심",
		},
	}

	p := ProfileFromScenario(s)
	assert.Equal(t, "기업", p.InstitutionType)
	assert.Equal(t, "온라인 실시간(Zoom 등)", p.DeliveryMode)
	assert.Equal(t, "장기", p.Duration)
	assert.Equal(t, "형성평가 중심", p.EvaluationFocus)
	assert.Equal(t, "30대", p.LearnerAge)
	assert.Equal(t, "성인", p.LearnerEducation)
	assert.Equal(t, "초급", p.DomainExpertise)
	assert.Equal(t, "직장인(사무/관리)", p.LearnerRole)
	assert.Equal(t, "경영/HR/경영지원", p.EducationDomain)
	assert.Equal(t, "중규모(10-30명)", p.ClassSize)
}

func TestProfileFromScenarioNil(t *testing.T) {
	p := ProfileFromScenario(nil)
	assert.True(t, p.IsEmpty())
}

func TestCategorizeDuration(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"1주 집중 과정", "단기"},
		{"3일 워크숍", "단기"},
		{"6주 프로그램", "장기"},
		{"2개월", "장기"},
		{"16시간", "단기"},
		{"총 120시간", "중기"},
		{"한 학기", "중기"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, categorizeDuration(tt.in), "duration %q", tt.in)
	}
}

func TestNormalizeClassSize(t *testing.T) {
	assert.Equal(t, "", normalizeClassSize(0))
	assert.Equal(t, "소규모(1-10명)", normalizeClassSize(1))
	assert.Equal(t, "소규모(1-10명)", normalizeClassSize(10))
	assert.Equal(t, "중규모(10-30명)", normalizeClassSize(11))
	assert.Equal(t, "중규모(10-30명)", normalizeClassSize(30))
	assert.Equal(t, "대규모(30명 이상)", normalizeClassSize(31))
}

func TestInferLearnerRolePriority(t *testing.T) {
	// Teacher keywords outrank the generic student bucket even when both
	// appear in the audience description.
	assert.Equal(t, "예비 교사/교사", inferLearnerRole("사범대 학생(예비 교사)"))
	assert.Equal(t, "학생", inferLearnerRole("공과대학 학부생"))
}

func TestInferEducationDomainPriority(t *testing.T) {
	// Management terms are checked before software terms so phrases like
	// leadership development do not classify as IT.
	assert.Equal(t, "경영/HR/경영지원", inferEducationDomain(domain.ScenarioContext{Topic: "리더십 개발 과정"}))
	assert.Equal(t, "AI", inferEducationDomain(domain.ScenarioContext{Topic: "머신러닝 입문 코딩"}))
	assert.Equal(t, "개발(Software/IT)", inferEducationDomain(domain.ScenarioContext{Topic: "파이썬 코딩 입문"}))
	assert.Equal(t, "", inferEducationDomain(domain.ScenarioContext{Topic: "원예와 식물 관리"}))
}

func TestInferTechEnvironment(t *testing.T) {
	got := inferTechEnvironment(domain.ScenarioContext{}, map[string]string{
		"tech": "인터넷 불가, 인쇄물 자료만 사용 가능",
	})
	assert.Equal(t, "제한적 기술 환경", got)
}
