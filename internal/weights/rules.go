package weights

import "github.com/isdbench/addiebench/internal/domain"

// rule is one weight adjustment triggered by a context attribute value. A
// rule owns every alias that selects the same delta set; aliases are tried
// in declaration order during substring matching.
type rule struct {
	keys   []string
	deltas map[domain.Phase]float64
}

// attributeRules binds a ContextProfile attribute name to its ordered rule
// list. Rule order is significant: substring matching stops at the first
// rule whose alias overlaps the attribute value.
type attributeRules struct {
	attribute string
	rules     []rule
}

// adjustmentRules is the full weighting rulebook. Keys are the Korean
// category labels scenarios carry; they are matched exactly first and by
// case-insensitive substring second, one rule per attribute at most.
var adjustmentRules = []attributeRules{
	{
		attribute: "institution_type",
		rules: []rule{
			{
				keys: []string{"기업"},
				deltas: map[domain.Phase]float64{
					domain.PhaseAnalysis:       0.05,
					domain.PhaseImplementation: 0.05,
					domain.PhaseDevelopment:    -0.05,
					domain.PhaseEvaluation:     -0.05,
				},
			},
			{
				keys: []string{"대학교(학부)", "대학"},
				deltas: map[domain.Phase]float64{
					domain.PhaseDesign:         0.05,
					domain.PhaseEvaluation:     0.05,
					domain.PhaseImplementation: -0.05,
					domain.PhaseAnalysis:       -0.05,
				},
			},
			{
				keys: []string{"초·중등학교", "초등학교", "중학교", "고등학교"},
				deltas: map[domain.Phase]float64{
					domain.PhaseDevelopment: 0.10,
					domain.PhaseAnalysis:    -0.05,
					domain.PhaseEvaluation:  -0.05,
				},
			},
		},
	},
	{
		attribute: "delivery_mode",
		rules: []rule{
			{
				keys: []string{"온라인 비실시간(LMS)", "온라인 비실시간", "LMS"},
				deltas: map[domain.Phase]float64{
					domain.PhaseDevelopment:    0.10,
					domain.PhaseAnalysis:       -0.05,
					domain.PhaseImplementation: -0.05,
				},
			},
			{
				keys: []string{"블렌디드(혼합형)", "블렌디드", "혼합형"},
				deltas: map[domain.Phase]float64{
					domain.PhaseDesign:         0.05,
					domain.PhaseImplementation: 0.05,
					domain.PhaseDevelopment:    -0.05,
					domain.PhaseEvaluation:     -0.05,
				},
			},
			{
				keys: []string{"시뮬레이션/VR 기반", "VR", "시뮬레이션"},
				deltas: map[domain.Phase]float64{
					domain.PhaseDevelopment: 0.15,
					domain.PhaseAnalysis:    -0.05,
					domain.PhaseEvaluation:  -0.10,
				},
			},
			{
				keys: []string{"오프라인(교실 수업)", "오프라인", "대면", "교실"},
				deltas: map[domain.Phase]float64{
					domain.PhaseImplementation: 0.10,
					domain.PhaseDesign:         0.05,
					domain.PhaseDevelopment:    -0.10,
					domain.PhaseAnalysis:       -0.05,
				},
			},
			{
				keys: []string{"온라인 실시간(Zoom 등)", "온라인 실시간", "실시간", "Zoom"},
				deltas: map[domain.Phase]float64{
					domain.PhaseImplementation: 0.10,
					domain.PhaseDesign:         0.05,
					domain.PhaseDevelopment:    -0.05,
					domain.PhaseEvaluation:     -0.10,
				},
			},
			{
				keys: []string{"모바일 마이크로러닝", "모바일", "마이크로러닝"},
				deltas: map[domain.Phase]float64{
					domain.PhaseDevelopment:    0.15,
					domain.PhaseAnalysis:       0.05,
					domain.PhaseImplementation: -0.10,
					domain.PhaseEvaluation:     -0.10,
				},
			},
			{
				keys: []string{"프로젝트 기반(PBL)", "PBL", "프로젝트"},
				deltas: map[domain.Phase]float64{
					domain.PhaseDesign:      0.10,
					domain.PhaseEvaluation:  0.10,
					domain.PhaseDevelopment: -0.10,
					domain.PhaseAnalysis:    -0.10,
				},
			},
		},
	},
	{
		attribute: "evaluation_focus",
		rules: []rule{
			{
				keys: []string{"형성평가 중심", "형성평가"},
				deltas: map[domain.Phase]float64{
					domain.PhaseEvaluation:     0.10,
					domain.PhaseDevelopment:    -0.05,
					domain.PhaseImplementation: -0.05,
				},
			},
			{
				keys: []string{"총괄평가 중심", "총괄평가"},
				deltas: map[domain.Phase]float64{
					domain.PhaseEvaluation:  0.10,
					domain.PhaseDesign:      0.05,
					domain.PhaseAnalysis:    -0.10,
					domain.PhaseDevelopment: -0.05,
				},
			},
		},
	},
	{
		attribute: "duration",
		rules: []rule{
			{
				keys: []string{"단기 집중 과정(1주 내)", "단기", "1주"},
				deltas: map[domain.Phase]float64{
					domain.PhaseImplementation: 0.10,
					domain.PhaseAnalysis:       -0.05,
					domain.PhaseEvaluation:     -0.05,
				},
			},
			{
				keys: []string{"장기 과정(1~6개월)", "장기"},
				deltas: map[domain.Phase]float64{
					domain.PhaseAnalysis:       0.05,
					domain.PhaseEvaluation:     0.05,
					domain.PhaseImplementation: -0.05,
					domain.PhaseDevelopment:    -0.05,
				},
			},
		},
	},
	{
		attribute: "learner_age",
		rules: []rule{
			{
				keys: []string{"10대"},
				deltas: map[domain.Phase]float64{
					domain.PhaseDevelopment: 0.10,
					domain.PhaseDesign:      0.05,
					domain.PhaseAnalysis:    -0.10,
					domain.PhaseEvaluation:  -0.05,
				},
			},
			// Twenties keep the base weights; the rubric is calibrated
			// against undergraduate course design.
			{keys: []string{"20대"}, deltas: map[domain.Phase]float64{}},
			{
				keys: []string{"30대"},
				deltas: map[domain.Phase]float64{
					domain.PhaseAnalysis:       0.05,
					domain.PhaseImplementation: 0.05,
					domain.PhaseDevelopment:    -0.05,
					domain.PhaseEvaluation:     -0.05,
				},
			},
			{
				keys: []string{"40대 이상"},
				deltas: map[domain.Phase]float64{
					domain.PhaseAnalysis:       0.10,
					domain.PhaseImplementation: 0.05,
					domain.PhaseDevelopment:    -0.10,
					domain.PhaseDesign:         -0.05,
				},
			},
		},
	},
	{
		attribute: "learner_education",
		rules: []rule{
			{
				keys: []string{"초등"},
				deltas: map[domain.Phase]float64{
					domain.PhaseDevelopment: 0.15,
					domain.PhaseDesign:      0.05,
					domain.PhaseAnalysis:    -0.10,
					domain.PhaseEvaluation:  -0.10,
				},
			},
			{
				keys: []string{"중등"},
				deltas: map[domain.Phase]float64{
					domain.PhaseDevelopment: 0.10,
					domain.PhaseDesign:      0.05,
					domain.PhaseAnalysis:    -0.10,
					domain.PhaseEvaluation:  -0.05,
				},
			},
			{
				keys: []string{"고등"},
				deltas: map[domain.Phase]float64{
					domain.PhaseDesign:         0.05,
					domain.PhaseEvaluation:     0.05,
					domain.PhaseDevelopment:    -0.05,
					domain.PhaseImplementation: -0.05,
				},
			},
			// University level is the calibration baseline.
			{keys: []string{"대학"}, deltas: map[domain.Phase]float64{}},
			{
				keys: []string{"성인"},
				deltas: map[domain.Phase]float64{
					domain.PhaseAnalysis:       0.10,
					domain.PhaseImplementation: 0.05,
					domain.PhaseDevelopment:    -0.10,
					domain.PhaseDesign:         -0.05,
				},
			},
		},
	},
	{
		attribute: "domain_expertise",
		rules: []rule{
			{
				keys: []string{"초급"},
				deltas: map[domain.Phase]float64{
					domain.PhaseDevelopment: 0.10,
					domain.PhaseDesign:      0.05,
					domain.PhaseAnalysis:    -0.05,
					domain.PhaseEvaluation:  -0.10,
				},
			},
			{keys: []string{"중급"}, deltas: map[domain.Phase]float64{}},
			{
				keys: []string{"고급"},
				deltas: map[domain.Phase]float64{
					domain.PhaseAnalysis:    0.10,
					domain.PhaseEvaluation:  0.10,
					domain.PhaseDevelopment: -0.10,
					domain.PhaseDesign:      -0.10,
				},
			},
		},
	},
	{
		attribute: "education_domain",
		rules: []rule{
			{
				keys: []string{"언어"},
				deltas: map[domain.Phase]float64{
					domain.PhaseImplementation: 0.10,
					domain.PhaseDesign:         0.05,
					domain.PhaseAnalysis:       -0.10,
					domain.PhaseEvaluation:     -0.05,
				},
			},
			{
				keys: []string{"수학"},
				deltas: map[domain.Phase]float64{
					domain.PhaseDesign:         0.10,
					domain.PhaseDevelopment:    0.05,
					domain.PhaseImplementation: -0.10,
					domain.PhaseAnalysis:       -0.05,
				},
			},
			{
				keys: []string{"과학"},
				deltas: map[domain.Phase]float64{
					domain.PhaseDevelopment: 0.10,
					domain.PhaseDesign:      0.05,
					domain.PhaseAnalysis:    -0.05,
					domain.PhaseEvaluation:  -0.10,
				},
			},
			{
				keys: []string{"사회"},
				deltas: map[domain.Phase]float64{
					domain.PhaseAnalysis:       0.05,
					domain.PhaseDesign:         0.05,
					domain.PhaseDevelopment:    -0.05,
					domain.PhaseImplementation: -0.05,
				},
			},
			{
				keys: []string{"개발(Software/IT)", "AI"},
				deltas: map[domain.Phase]float64{
					domain.PhaseImplementation: 0.10,
					domain.PhaseDevelopment:    0.05,
					domain.PhaseAnalysis:       -0.10,
					domain.PhaseEvaluation:     -0.05,
				},
			},
			{
				keys: []string{"의료/간호"},
				deltas: map[domain.Phase]float64{
					domain.PhaseEvaluation:  0.10,
					domain.PhaseDevelopment: 0.05,
					domain.PhaseAnalysis:    -0.05,
					domain.PhaseDesign:      -0.10,
				},
			},
			{
				keys: []string{"경영/HR/경영지원"},
				deltas: map[domain.Phase]float64{
					domain.PhaseAnalysis:       0.05,
					domain.PhaseEvaluation:     0.05,
					domain.PhaseDevelopment:    -0.05,
					domain.PhaseImplementation: -0.05,
				},
			},
			{
				keys: []string{"교육(교수·학습)"},
				deltas: map[domain.Phase]float64{
					domain.PhaseDesign:      0.10,
					domain.PhaseEvaluation:  0.05,
					domain.PhaseDevelopment: -0.05,
					domain.PhaseAnalysis:    -0.10,
				},
			},
			{
				keys: []string{"서비스/고객응대"},
				deltas: map[domain.Phase]float64{
					domain.PhaseImplementation: 0.10,
					domain.PhaseEvaluation:     0.05,
					domain.PhaseAnalysis:       -0.10,
					domain.PhaseDevelopment:    -0.05,
				},
			},
		},
	},
	{
		attribute: "learner_role",
		rules: []rule{
			{
				keys: []string{"학생"},
				deltas: map[domain.Phase]float64{
					domain.PhaseDesign:         0.05,
					domain.PhaseDevelopment:    0.05,
					domain.PhaseAnalysis:       -0.05,
					domain.PhaseImplementation: -0.05,
				},
			},
			{
				keys: []string{"직장인(사무/관리)", "직장인", "사무직"},
				deltas: map[domain.Phase]float64{
					domain.PhaseImplementation: 0.10,
					domain.PhaseAnalysis:       0.05,
					domain.PhaseDevelopment:    -0.10,
					domain.PhaseEvaluation:     -0.05,
				},
			},
			{
				keys: []string{"전문직(의료/법률/기술)", "전문직"},
				deltas: map[domain.Phase]float64{
					domain.PhaseDesign:         0.05,
					domain.PhaseEvaluation:     0.05,
					domain.PhaseDevelopment:    -0.05,
					domain.PhaseImplementation: -0.05,
				},
			},
			{
				keys: []string{"예비 교사/교사", "교사", "예비교사"},
				deltas: map[domain.Phase]float64{
					domain.PhaseDesign:      0.10,
					domain.PhaseEvaluation:  0.05,
					domain.PhaseDevelopment: -0.10,
					domain.PhaseAnalysis:    -0.05,
				},
			},
		},
	},
	{
		attribute: "class_size",
		rules: []rule{
			{
				keys: []string{"소규모(1-10명)", "소규모"},
				deltas: map[domain.Phase]float64{
					domain.PhaseDesign:         0.05,
					domain.PhaseEvaluation:     0.10,
					domain.PhaseDevelopment:    -0.10,
					domain.PhaseImplementation: -0.05,
				},
			},
			{
				keys: []string{"중규모(10-30명)", "중규모"},
				deltas: map[domain.Phase]float64{
					domain.PhaseImplementation: 0.10,
					domain.PhaseDesign:         0.05,
					domain.PhaseAnalysis:       -0.10,
					domain.PhaseEvaluation:     -0.05,
				},
			},
			{
				keys: []string{"대규모(30명 이상)", "대규모"},
				deltas: map[domain.Phase]float64{
					domain.PhaseDevelopment:    0.10,
					domain.PhaseImplementation: 0.05,
					domain.PhaseEvaluation:     -0.10,
					domain.PhaseDesign:         -0.05,
				},
			},
		},
	},
	{
		attribute: "tech_environment",
		rules: []rule{
			{
				keys: []string{"디지털 기기 제공", "디지털"},
				deltas: map[domain.Phase]float64{
					domain.PhaseDevelopment: 0.10,
					domain.PhaseDesign:      0.05,
					domain.PhaseAnalysis:    -0.10,
					domain.PhaseEvaluation:  -0.05,
				},
			},
			{
				keys: []string{"개인 기기 지참(BYOD)", "BYOD"},
				deltas: map[domain.Phase]float64{
					domain.PhaseDesign:         0.10,
					domain.PhaseAnalysis:       0.05,
					domain.PhaseDevelopment:    -0.10,
					domain.PhaseImplementation: -0.05,
				},
			},
			{
				keys: []string{"제한적 기술 환경", "제한적", "저기술"},
				deltas: map[domain.Phase]float64{
					domain.PhaseDevelopment:    0.10,
					domain.PhaseImplementation: 0.10,
					domain.PhaseDesign:         -0.10,
					domain.PhaseAnalysis:       -0.10,
				},
			},
		},
	},
}
