package scoring

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isdbench/addiebench/internal/domain"
	"github.com/isdbench/addiebench/internal/judge"
)

func TestStatusPromptContents(t *testing.T) {
	subs := domain.SubCriteriaForPhase(domain.PhaseImplementation)
	prompt := StatusPrompt("corporate onboarding", `{"delivery_plan": "..."}`, subs)

	assert.Contains(t, prompt, "corporate onboarding")
	assert.Contains(t, prompt, `"delivery_plan"`)
	assert.Contains(t, prompt, `"24": "<absent|weak|moderate|good|excellent>"`)
	assert.Contains(t, prompt, `"27": "<absent|weak|moderate|good|excellent>"`)
	assert.Contains(t, prompt, "### [24]")
	assert.Contains(t, prompt, "sub_status")
}

func TestScorePromptAdvertisesBands(t *testing.T) {
	subs := domain.SubCriteriaForPhase(domain.PhaseImplementation)
	statuses := map[int]domain.Status{
		24: domain.StatusGood,
		25: domain.StatusAbsent,
		26: domain.StatusWeak,
		// 27 intentionally missing; prompt must fall back to moderate.
	}
	prompt := ScorePrompt("ctx", "{}", subs, statuses)

	assert.Contains(t, prompt, `"24": <7.0-8.9>`)
	assert.Contains(t, prompt, `"25": <0.0-0.0>`)
	assert.Contains(t, prompt, `"26": <1.0-3.9>`)
	assert.Contains(t, prompt, `"27": <4.0-6.9>`)
	assert.Contains(t, prompt, `"27": "moderate"`)
	assert.Contains(t, prompt, "sub_scores")
}

func TestClassifyPhase(t *testing.T) {
	stub := judge.Func(func(ctx context.Context, prompt string) (string, error) {
		require.Contains(t, prompt, "sub_status")
		return "```json\n" + `{"sub_status": {"24": "good", "25": "weak", "26": "absent", "27": "excellent"}}` + "\n```", nil
	})

	c := NewStatusClassifier(stub, nil)
	statuses, _, err := c.ClassifyPhase(context.Background(), domain.PhaseImplementation, "ctx", "{}")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusGood, statuses[24])
	assert.Equal(t, domain.StatusWeak, statuses[25])
	assert.Equal(t, domain.StatusAbsent, statuses[26])
	assert.Equal(t, domain.StatusExcellent, statuses[27])
}

func TestClassifyPhaseTransportErrorPropagates(t *testing.T) {
	boom := errors.New("connection reset")
	stub := judge.Func(func(ctx context.Context, prompt string) (string, error) {
		return "", boom
	})

	c := NewStatusClassifier(stub, nil)
	_, _, err := c.ClassifyPhase(context.Background(), domain.PhaseDesign, "ctx", "{}")
	assert.ErrorIs(t, err, boom)
}

func TestClassifyPhasePlainTextDefaults(t *testing.T) {
	stub := judge.Func(func(ctx context.Context, prompt string) (string, error) {
		return "I think this deliverable is decent overall.", nil
	})

	c := NewStatusClassifier(stub, nil)
	statuses, _, err := c.ClassifyPhase(context.Background(), domain.PhaseDevelopment, "ctx", "{}")
	require.NoError(t, err)
	for _, id := range domain.SubIDsForPhase(domain.PhaseDevelopment) {
		assert.Equal(t, domain.DefaultStatus, statuses[id])
	}
}

func TestScorePhase(t *testing.T) {
	statuses := map[int]domain.Status{
		24: domain.StatusGood,
		25: domain.StatusAbsent,
		26: domain.StatusWeak,
		27: domain.StatusGood,
	}
	stub := judge.Func(func(ctx context.Context, prompt string) (string, error) {
		require.Contains(t, prompt, "sub_scores")
		return "```json\n" + `{
			"sub_scores": {"24": 8.0, "25": 0.0, "26": 2.0, "27": 9.9},
			"sub_reasoning": {"24": "thorough briefing"}
		}` + "\n```", nil
	})

	s := NewRangeScorer(stub, nil)
	res, err := s.ScorePhase(context.Background(), domain.PhaseImplementation, "ctx", "{}", statuses)
	require.NoError(t, err)
	require.Len(t, res.Results, 4)

	byID := make(map[int]domain.SubItemResult)
	for _, r := range res.Results {
		byID[r.ID] = r
	}
	assert.InDelta(t, 8.0, byID[24].Score, 1e-9)
	assert.True(t, strings.HasPrefix(byID[24].Reasoning, "[good]"))

	// 9.9 exceeds the good band; clamped to its ceiling.
	assert.InDelta(t, 8.9, byID[27].Score, 1e-9)
	assert.True(t, byID[27].Clamped)

	// Absent and weak statuses feed the improvement lists by name.
	assert.Equal(t, []string{"System and environment check"}, res.Missing)
	assert.Equal(t, []string{"Prototype execution"}, res.Weak)
}

func TestScorePhaseTransportErrorPropagates(t *testing.T) {
	boom := errors.New("timeout")
	stub := judge.Func(func(ctx context.Context, prompt string) (string, error) {
		return "", boom
	})

	s := NewRangeScorer(stub, nil)
	_, err := s.ScorePhase(context.Background(), domain.PhaseAnalysis, "ctx", "{}", nil)
	assert.ErrorIs(t, err, boom)
}
