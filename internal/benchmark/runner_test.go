package benchmark

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isdbench/addiebench/internal/domain"
	"github.com/isdbench/addiebench/internal/judge"
)

// judgeServer answers both passes with uniform verdicts for all 33
// sub-criteria, in the chat-completions shape the client expects.
func judgeServer(t *testing.T, status domain.Status, score float64) *httptest.Server {
	t.Helper()

	var statuses, scores strings.Builder
	for id := 1; id <= 33; id++ {
		if id > 1 {
			statuses.WriteString(", ")
			scores.WriteString(", ")
		}
		fmt.Fprintf(&statuses, "%q: %q", fmt.Sprint(id), status)
		fmt.Fprintf(&scores, "%q: %.1f", fmt.Sprint(id), score)
	}
	statusResp := "```json\n{\"sub_status\": {" + statuses.String() + "}}\n```"
	scoreResp := "```json\n{\"sub_scores\": {" + scores.String() + "}}\n```"

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if len(req.Messages) == 0 {
			http.Error(w, "no messages", http.StatusBadRequest)
			return
		}

		content := scoreResp
		if strings.Contains(req.Messages[0].Content, "sub_status") {
			content = statusResp
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		})
	}))
}

func testJudgeConfig(baseURL string) judge.Config {
	return judge.Config{
		Provider: "upstage",
		Model:    "solar-pro3",
		APIKeys:  []string{"test-key"},
		BaseURL:  baseURL,
	}
}

func benchScenarios() []*domain.Scenario {
	return []*domain.Scenario{
		{ID: "s1", Title: "기업 신입사원 온보딩"},
		{ID: "s2", Title: "대학 온라인 강좌"},
	}
}

func staticSource(doc domain.Document) DocumentSource {
	return DocumentSourceFunc(func(context.Context, *domain.Scenario) (domain.Document, error) {
		return doc, nil
	})
}

func TestRunnerFullMatrix(t *testing.T) {
	srv := judgeServer(t, domain.StatusGood, 8.0)
	defer srv.Close()

	store := newTestStore(t)
	runner, err := NewRunner(store, testJudgeConfig(srv.URL), RunnerConfig{Concurrency: 2}, nil)
	require.NoError(t, err)

	doc := domain.Document{"analysis": "learner profile", "design": "objectives"}
	agents := []Agent{
		{ID: "eduplanner", Source: staticSource(doc)},
		{ID: "baseline", Source: staticSource(doc)},
	}

	outcome, err := runner.Run(context.Background(), benchScenarios(), agents)
	require.NoError(t, err)

	assert.Empty(t, outcome.Errors)
	require.Len(t, outcome.Results, 4)
	for _, res := range outcome.Results {
		assert.Equal(t, outcome.Run.ID, res.RunID)
		assert.InDelta(t, 80.0, res.Score.NormalizedScore, 1e-9)
	}

	stored, err := store.ResultsForRun(outcome.Run.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 4)

	run, err := store.GetRun(outcome.Run.ID)
	require.NoError(t, err)
	assert.NotNil(t, run.FinishedAt)
}

func TestRunnerRecordsCellFailures(t *testing.T) {
	srv := judgeServer(t, domain.StatusModerate, 5.0)
	defer srv.Close()

	store := newTestStore(t)
	runner, err := NewRunner(store, testJudgeConfig(srv.URL), RunnerConfig{}, nil)
	require.NoError(t, err)

	doc := domain.Document{"analysis": "something"}
	agents := []Agent{
		{ID: "working", Source: staticSource(doc)},
		{ID: "broken", Source: DocumentSourceFunc(func(context.Context, *domain.Scenario) (domain.Document, error) {
			return nil, errors.New("agent crashed")
		})},
	}

	outcome, err := runner.Run(context.Background(), benchScenarios(), agents)
	require.NoError(t, err)

	assert.Len(t, outcome.Results, 2)
	require.Len(t, outcome.Errors, 2)
	for _, taskErr := range outcome.Errors {
		assert.Equal(t, "broken", taskErr.AgentID)
		assert.Contains(t, taskErr.Error(), "agent crashed")
	}

	stored, err := store.ResultsForRun(outcome.Run.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestRunnerBoundsConcurrency(t *testing.T) {
	var inFlight, peak atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cur := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			old := peak.Load()
			if cur <= old || peak.CompareAndSwap(old, cur) {
				break
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "no json here"}},
			},
		})
	}))
	defer srv.Close()

	store := newTestStore(t)
	runner, err := NewRunner(store, testJudgeConfig(srv.URL), RunnerConfig{Concurrency: 1}, nil)
	require.NoError(t, err)

	doc := domain.Document{"analysis": "x"}
	agents := []Agent{
		{ID: "a", Source: staticSource(doc)},
		{ID: "b", Source: staticSource(doc)},
	}

	outcome, err := runner.Run(context.Background(), benchScenarios(), agents)
	require.NoError(t, err)

	assert.Len(t, outcome.Results, 4)
	assert.LessOrEqual(t, peak.Load(), int64(1))
}

func TestNewRunnerRequiresAPIKey(t *testing.T) {
	store := newTestStore(t)
	_, err := NewRunner(store, judge.Config{Provider: "upstage"}, RunnerConfig{}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, judge.ErrNoAPIKey)
}
