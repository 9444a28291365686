package weights

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/isdbench/addiebench/internal/domain"
)

// ProfileFromScenario builds a ContextProfile from a scenario descriptor.
// Explicit profile fields on the scenario take precedence; anything left
// blank is inferred from free-text fields by keyword matching. Scenarios are
// authored in Korean, so the keyword tables are Korean with the common
// English loanwords mixed in.
func ProfileFromScenario(s *domain.Scenario) domain.ContextProfile {
	if s == nil {
		return domain.ContextProfile{}
	}
	ctx := s.Context

	return domain.ContextProfile{
		InstitutionType:  firstNonEmpty(ctx.InstitutionType, inferInstitutionType(ctx.TargetAudience)),
		DeliveryMode:     ctx.LearningEnvironment,
		Duration:         categorizeDuration(ctx.Duration),
		EvaluationFocus:  firstNonEmpty(s.Constraints["assessment_type"], inferEvaluationFocus(s.Constraints)),
		LearnerAge:       firstNonEmpty(ctx.LearnerAge, inferLearnerAge(ctx.TargetAudience)),
		LearnerEducation: firstNonEmpty(ctx.LearnerEducation, inferEducationLevel(ctx.TargetAudience)),
		DomainExpertise:  firstNonEmpty(ctx.DomainExpertise, inferDomainExpertise(ctx.PriorKnowledge)),
		LearnerRole:      firstNonEmpty(ctx.LearnerRole, inferLearnerRole(ctx.TargetAudience)),
		EducationDomain:  firstNonEmpty(s.Domain, inferEducationDomain(ctx)),
		ClassSize:        normalizeClassSize(ctx.ClassSize),
		TechEnvironment:  firstNonEmpty(s.Constraints["tech_requirements"], inferTechEnvironment(ctx, s.Constraints)),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// normalizeClassSize converts a head count into the categorical label the
// rulebook keys on. Zero means the scenario did not state a size.
func normalizeClassSize(size int) string {
	switch {
	case size <= 0:
		return ""
	case size <= 10:
		return "소규모(1-10명)"
	case size <= 30:
		return "중규모(10-30명)"
	default:
		return "대규모(30명 이상)"
	}
}

func inferInstitutionType(targetAudience string) string {
	target := strings.ToLower(targetAudience)
	switch {
	case containsAny(target, []string{"기업", "직장", "마케팅", "신입"}):
		return "기업"
	case containsAny(target, []string{"대학", "학부", "대학생"}):
		return "대학교(학부)"
	case strings.Contains(target, "초등"):
		return "초등학교"
	case containsAny(target, []string{"중학", "중등"}):
		return "중학교"
	case containsAny(target, []string{"고등", "고교"}):
		return "고등학교"
	case containsAny(target, []string{"학교", "학생"}):
		return "초·중등학교"
	}
	return ""
}

var hoursPattern = regexp.MustCompile(`(\d+)\s*시간`)

// categorizeDuration buckets a free-text duration into short, mid, or long
// term. Hour counts up to a working week count as short term; the mid bucket
// matches no weighting rule and leaves the weights untouched.
func categorizeDuration(duration string) string {
	if duration == "" {
		return ""
	}
	lower := strings.ToLower(duration)

	if containsAny(lower, []string{"1주", "3일", "1일", "2일"}) {
		return "단기"
	}
	if containsAny(lower, []string{"개월", "6주", "8주"}) {
		return "장기"
	}

	if m := hoursPattern.FindStringSubmatch(lower); m != nil {
		if hours, err := strconv.Atoi(m[1]); err == nil && hours <= 40 {
			return "단기"
		}
	}
	return "중기"
}

func inferEvaluationFocus(constraints map[string]string) string {
	if len(constraints) == 0 {
		return ""
	}
	var b strings.Builder
	for k, v := range constraints {
		b.WriteString(strings.ToLower(k))
		b.WriteString(" ")
		b.WriteString(strings.ToLower(v))
		b.WriteString(" ")
	}
	combined := b.String()

	switch {
	case containsAny(combined, []string{"형성평가", "형성 평가"}):
		return "형성평가"
	case containsAny(combined, []string{"총괄평가", "총괄 평가"}):
		return "총괄평가"
	}
	return ""
}

func inferLearnerAge(targetAudience string) string {
	target := strings.ToLower(targetAudience)
	switch {
	case containsAny(target, []string{"초등", "어린이", "아동", "10세", "11세", "12세"}):
		return "10대"
	case containsAny(target, []string{"중학", "고등", "청소년", "13세", "14세", "15세", "16세", "17세", "18세"}):
		return "10대"
	case containsAny(target, []string{"대학", "20대", "대학생"}):
		return "20대"
	case containsAny(target, []string{"신입", "30대", "주니어", "사원"}):
		return "30대"
	case containsAny(target, []string{"경력", "40대", "50대", "시니어", "관리자", "임원", "베테랑"}):
		return "40대 이상"
	}
	return ""
}

func inferEducationLevel(targetAudience string) string {
	target := strings.ToLower(targetAudience)
	switch {
	case strings.Contains(target, "초등"):
		return "초등"
	case containsAny(target, []string{"중학", "중등"}):
		return "중등"
	case containsAny(target, []string{"고등", "고교"}):
		return "고등"
	case containsAny(target, []string{"대학", "학부", "대학생"}):
		return "대학"
	case containsAny(target, []string{"직장인", "성인", "신입", "경력", "직원", "사원"}):
		return "성인"
	}
	return ""
}

func inferDomainExpertise(priorKnowledge string) string {
	prior := strings.ToLower(priorKnowledge)
	switch {
	case containsAny(prior, []string{"없음", "초보", "기초", "입문", "경험 없", "처음", "전무"}):
		return "초급"
	case containsAny(prior, []string{"기본", "중급", "어느 정도", "1년", "2년", "약간"}):
		return "중급"
	case containsAny(prior, []string{"고급", "전문", "숙련", "다년간", "경력", "풍부", "5년", "10년"}):
		return "고급"
	}
	return ""
}

// educationDomainKeywords maps each domain category to the keywords that
// select it. Ordered: management outranks software so phrases like
// "리더십 개발" do not misclassify as IT, and AI outranks general software.
var educationDomainKeywords = []struct {
	domain   string
	keywords []string
}{
	{"언어", []string{"영어", "회화", "작문", "문법", "한국어", "어휘", "독해", "외국어",
		"language", "english", "speaking", "writing", "리터러시"}},
	{"경영/HR/경영지원", []string{"리더십", "마케팅", "경영", "인사", "hr", "management",
		"leadership", "marketing", "조직", "전략", "재무", "회계",
		"비즈니스", "business", "기획", "영업"}},
	{"AI", []string{"인공지능", "ai", "머신러닝", "딥러닝", "machine learning",
		"deep learning", "신경망", "neural", "자연어처리", "nlp", "llm"}},
	{"개발(Software/IT)", []string{"코딩", "프로그래밍", "파이썬", "소프트웨어",
		"python", "java", "coding", "programming", "웹개발",
		"앱개발", "software", "시스템", "데이터베이스",
		"소프트웨어 개발", "앱 개발", "웹 개발"}},
	{"수학", []string{"수학", "통계", "확률", "기하", "대수", "미적분", "calculus",
		"math", "statistics", "algebra", "수치"}},
	{"과학", []string{"물리", "화학", "생물", "과학", "실험", "science", "physics",
		"chemistry", "biology", "지구과학", "천문"}},
	{"사회", []string{"역사", "사회", "경제학", "정치", "지리", "history", "social",
		"economics", "시민", "법학", "철학"}},
	{"의료/간호", []string{"의료", "간호", "환자", "병원", "의학", "healthcare", "nursing",
		"medical", "임상", "진료", "치료", "약학", "헬스케어"}},
	{"교육(교수·학습)", []string{"교수법", "교사", "수업", "교육학", "pedagogy",
		"teaching", "강의", "교수설계", "커리큘럼"}},
	{"서비스/고객응대", []string{"cs", "고객응대", "친절", "서비스", "customer service",
		"고객만족", "상담", "클레임", "접객", "hospitality"}},
}

func inferEducationDomain(ctx domain.ScenarioContext) string {
	sources := []string{ctx.Topic, ctx.Subject}
	sources = append(sources, ctx.Objectives...)
	sources = append(sources, ctx.SkillsToAcquire...)
	combined := strings.ToLower(strings.Join(sources, " "))

	for _, entry := range educationDomainKeywords {
		if containsAny(combined, entry.keywords) {
			return entry.domain
		}
	}
	return ""
}

// learnerRoleKeywords is ordered most specific to most general so "학생" does
// not shadow teachers or professionals mentioned alongside it.
var learnerRoleKeywords = []struct {
	role     string
	keywords []string
}{
	{"예비 교사/교사", []string{
		"교사", "교원", "예비교사", "예비 교사", "임용", "교생",
		"교수", "강사", "튜터", "trainer", "instructor", "teacher",
		"teaching", "교육자", "훈련가"}},
	{"전문직(의료/법률/기술)", []string{
		"의사", "간호사", "약사", "치과의사", "한의사", "물리치료사",
		"의료인", "임상", "레지던트", "인턴", "nurse", "doctor",
		"변호사", "법무사", "검사", "판사", "lawyer", "attorney",
		"법률", "법조인",
		"엔지니어", "engineer", "기술자", "연구원", "박사", "석사",
		"전문가", "specialist", "컨설턴트", "consultant",
		"회계사", "세무사", "건축사", "감정평가사", "공인중개사"}},
	{"직장인(사무/관리)", []string{
		"사원", "대리", "과장", "차장", "부장", "팀장", "매니저",
		"manager", "supervisor", "리더", "실장", "임원", "이사",
		"직장인", "회사원", "직원", "사무직", "관리자", "관리직",
		"office", "worker", "employee", "staff",
		"신입사원", "신입", "경력직", "이직자"}},
	{"학생", []string{
		"학생", "대학생", "학부생", "대학원생", "석사생", "박사생",
		"고등학생", "중학생", "초등학생", "student", "learner",
		"수강생", "교육생", "훈련생", "trainee", "연수생"}},
}

func inferLearnerRole(targetAudience string) string {
	target := strings.ToLower(targetAudience)
	for _, entry := range learnerRoleKeywords {
		if containsAny(target, entry.keywords) {
			return entry.role
		}
	}
	return ""
}

var techEnvironmentKeywords = []struct {
	env      string
	keywords []string
}{
	{"디지털 기기 제공", []string{
		"기기 제공", "노트북 제공", "태블릿 제공", "pc 제공",
		"컴퓨터실", "전산실", "it 인프라", "디지털 교실",
		"스마트 교실", "첨단", "멀티미디어실"}},
	{"개인 기기 지참(BYOD)", []string{
		"byod", "개인 기기", "개인 노트북", "본인 기기",
		"자기 기기", "개인 스마트폰", "모바일 학습"}},
	{"제한적 기술 환경", []string{
		"제한적", "저기술", "오프라인 전용", "인터넷 불가",
		"네트워크 제한", "기술 제약", "인쇄물", "종이 자료",
		"칠판", "화이트보드", "아날로그", "비디지털"}},
}

func inferTechEnvironment(ctx domain.ScenarioContext, constraints map[string]string) string {
	sources := []string{ctx.LearningEnvironment}
	for _, v := range constraints {
		sources = append(sources, v)
	}
	combined := strings.ToLower(strings.Join(sources, " "))

	for _, entry := range techEnvironmentKeywords {
		if containsAny(combined, entry.keywords) {
			return entry.env
		}
	}
	return ""
}
