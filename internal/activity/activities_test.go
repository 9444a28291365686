package activity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"

	"github.com/isdbench/addiebench/internal/domain"
	"github.com/isdbench/addiebench/internal/judge"
	"github.com/isdbench/addiebench/internal/scoring"
	pkgactivity "github.com/isdbench/addiebench/pkg/activity"
)

func newTestActivities(j judge.Judge) *Activities {
	return NewActivities(pkgactivity.NewBaseActivities(), j)
}

func silentJudge(t *testing.T) judge.Judge {
	t.Helper()
	return judge.Func(func(context.Context, string) (string, error) {
		t.Fatal("judge must not be called")
		return "", nil
	})
}

func testScenario() *domain.Scenario {
	return &domain.Scenario{
		ID:    "corp-onboarding",
		Title: "신입사원 온보딩 설계",
		Context: domain.ScenarioContext{
			TargetAudience:      "기업 신입사원",
			Duration:            "2주",
			LearningEnvironment: "온라인",
		},
	}
}

func TestPrepareEvaluation(t *testing.T) {
	acts := newTestActivities(silentJudge(t))

	doc := domain.Document{
		"analysis": map[string]any{"learner": "novice marketers"},
		"design":   "objective-first sequencing",
	}

	out, err := acts.PrepareEvaluation(context.Background(), PrepareEvaluationInput{
		Scenario: testScenario(),
		Document: doc,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, out.ScenarioContext)
	assert.Contains(t, out.ScenarioContext, "기업 신입사원")
	assert.Len(t, out.PhaseOutputs, 5)
	assert.Contains(t, out.PhaseOutputs[domain.PhaseAnalysis], "novice marketers")

	assert.Equal(t, "기업", out.Profile.InstitutionType)

	var sum float64
	for _, phase := range domain.Phases() {
		w, ok := out.Weights[phase]
		require.True(t, ok, "missing weight for %s", phase)
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestPrepareEvaluationNilScenario(t *testing.T) {
	acts := newTestActivities(silentJudge(t))

	out, err := acts.PrepareEvaluation(context.Background(), PrepareEvaluationInput{
		Document: domain.Document{"design": "something"},
	})
	require.NoError(t, err)

	assert.True(t, out.Profile.IsEmpty())
	for _, phase := range domain.Phases() {
		assert.InDelta(t, map[domain.Phase]float64{
			domain.PhaseAnalysis:       0.25,
			domain.PhaseDesign:         0.20,
			domain.PhaseDevelopment:    0.20,
			domain.PhaseImplementation: 0.15,
			domain.PhaseEvaluation:     0.20,
		}[phase], out.Weights[phase], 1e-9)
	}
}

func TestPrepareEvaluationNilDocument(t *testing.T) {
	acts := newTestActivities(silentJudge(t))

	_, err := acts.PrepareEvaluation(context.Background(), PrepareEvaluationInput{
		Scenario: testScenario(),
	})
	require.Error(t, err)

	var appErr *temporal.ApplicationError
	require.ErrorAs(t, err, &appErr)
	assert.True(t, appErr.NonRetryable())
}

func TestClassifyPhase(t *testing.T) {
	response := "```json\n" + `{
  "sub_status": {"24": "good", "25": "absent", "26": "weak", "27": "moderate"},
  "status_reasoning": {"24": "rollout plan present"}
}` + "\n```"
	j := judge.Func(func(_ context.Context, prompt string) (string, error) {
		assert.Contains(t, prompt, "sub_status")
		return response, nil
	})

	acts := newTestActivities(j)
	out, err := acts.ClassifyPhase(context.Background(), ClassifyPhaseInput{
		Phase:           domain.PhaseImplementation,
		ScenarioContext: "context",
		PhaseOutput:     "{}",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusGood, out.Statuses[24])
	assert.Equal(t, domain.StatusAbsent, out.Statuses[25])
	assert.Equal(t, domain.StatusWeak, out.Statuses[26])
	assert.Equal(t, domain.StatusModerate, out.Statuses[27])
	assert.Equal(t, "rollout plan present", out.Reasoning[24])
}

func TestClassifyPhaseInvalidPhase(t *testing.T) {
	acts := newTestActivities(silentJudge(t))

	_, err := acts.ClassifyPhase(context.Background(), ClassifyPhaseInput{Phase: "synthesis"})
	require.Error(t, err)

	var appErr *temporal.ApplicationError
	require.ErrorAs(t, err, &appErr)
	assert.True(t, appErr.NonRetryable())
}

func TestClassifyPhaseTransportFailureIsRetryable(t *testing.T) {
	transport := errors.New("dial tcp: connection refused")
	j := judge.Func(func(context.Context, string) (string, error) {
		return "", transport
	})

	acts := newTestActivities(j)
	_, err := acts.ClassifyPhase(context.Background(), ClassifyPhaseInput{
		Phase:       domain.PhaseDesign,
		PhaseOutput: "{}",
	})
	require.Error(t, err)

	var appErr *temporal.ApplicationError
	require.ErrorAs(t, err, &appErr)
	assert.False(t, appErr.NonRetryable())
}

func TestScorePhase(t *testing.T) {
	statuses := map[int]domain.Status{
		24: domain.StatusGood,
		25: domain.StatusAbsent,
		26: domain.StatusWeak,
		27: domain.StatusModerate,
	}
	response := "```json\n" + `{
  "sub_scores": {"24": 8.5, "25": 0, "26": 2.0, "27": 5.0}
}` + "\n```"
	j := judge.Func(func(_ context.Context, prompt string) (string, error) {
		assert.Contains(t, prompt, "sub_scores")
		return response, nil
	})

	acts := newTestActivities(j)
	out, err := acts.ScorePhase(context.Background(), ScorePhaseInput{
		Phase:           domain.PhaseImplementation,
		ScenarioContext: "context",
		PhaseOutput:     "{}",
		Statuses:        statuses,
	})
	require.NoError(t, err)

	require.Len(t, out.Result.Results, 4)
	byID := make(map[int]domain.SubItemResult, len(out.Result.Results))
	for _, r := range out.Result.Results {
		byID[r.ID] = r
	}
	assert.InDelta(t, 8.5, byID[24].Score, 1e-9)
	assert.InDelta(t, 0.0, byID[25].Score, 1e-9)
	assert.Equal(t, []string{"System and environment check"}, out.Result.Missing)
	assert.Equal(t, []string{"Prototype execution"}, out.Result.Weak)
}

func TestScorePhaseTransportFailureIsRetryable(t *testing.T) {
	j := judge.Func(func(context.Context, string) (string, error) {
		return "", fmt.Errorf("judge: %w", judge.ErrProviderStatus)
	})

	acts := newTestActivities(j)
	_, err := acts.ScorePhase(context.Background(), ScorePhaseInput{
		Phase:       domain.PhaseEvaluation,
		PhaseOutput: "{}",
		Statuses:    map[int]domain.Status{},
	})
	require.Error(t, err)

	var appErr *temporal.ApplicationError
	require.ErrorAs(t, err, &appErr)
	assert.False(t, appErr.NonRetryable())
}

func TestAggregateScores(t *testing.T) {
	acts := newTestActivities(silentJudge(t))

	phases := make([]scoring.PhaseResult, 0, 5)
	for _, phase := range domain.Phases() {
		var results []domain.SubItemResult
		for _, id := range domain.SubIDsForPhase(phase) {
			results = append(results, domain.SubItemResult{
				ID:     id,
				Status: domain.StatusGood,
				Score:  8.0,
			})
		}
		phases = append(phases, scoring.PhaseResult{Phase: phase, Results: results})
	}

	out, err := acts.AggregateScores(context.Background(), AggregateScoresInput{
		Phases: phases,
		Weights: map[domain.Phase]float64{
			domain.PhaseAnalysis:       0.25,
			domain.PhaseDesign:         0.20,
			domain.PhaseDevelopment:    0.20,
			domain.PhaseImplementation: 0.15,
			domain.PhaseEvaluation:     0.20,
		},
	})
	require.NoError(t, err)

	assert.InDelta(t, 80.0, out.Score.NormalizedScore, 1e-9)
	assert.True(t, strings.Contains(out.Score.Narrative, "Evaluated 33 sub-criteria"))
}

func TestAggregateScoresMissingWeights(t *testing.T) {
	acts := newTestActivities(silentJudge(t))

	_, err := acts.AggregateScores(context.Background(), AggregateScoresInput{})
	require.Error(t, err)

	var appErr *temporal.ApplicationError
	require.ErrorAs(t, err, &appErr)
	assert.True(t, appErr.NonRetryable())
}
