package benchmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isdbench/addiebench/internal/domain"
)

func TestSummarizeRanksByMeanScore(t *testing.T) {
	strong := uniformScore(t, domain.StatusGood, 8.0)
	weak := uniformScore(t, domain.StatusWeak, 2.0)

	results := []Result{
		{RunID: "r", ScenarioID: "s1", AgentID: "baseline", Score: weak},
		{RunID: "r", ScenarioID: "s1", AgentID: "eduplanner", Score: strong},
		{RunID: "r", ScenarioID: "s2", AgentID: "baseline", Score: weak},
		{RunID: "r", ScenarioID: "s2", AgentID: "eduplanner", Score: strong},
	}

	summaries := Summarize(results)
	require.Len(t, summaries, 2)

	assert.Equal(t, "eduplanner", summaries[0].AgentID)
	assert.Equal(t, 2, summaries[0].Scenarios)
	assert.InDelta(t, 80.0, summaries[0].MeanNormalized, 1e-9)

	assert.Equal(t, "baseline", summaries[1].AgentID)
	assert.InDelta(t, 20.0, summaries[1].MeanNormalized, 1e-9)

	for _, phase := range domain.Phases() {
		assert.InDelta(t, 80.0, summaries[0].PhasePercent[phase], 1e-9)
		assert.InDelta(t, 20.0, summaries[1].PhasePercent[phase], 1e-9)
	}
	assert.InDelta(t, 8.0, summaries[0].ItemScores["A1"], 1e-9)
	assert.InDelta(t, 2.0, summaries[1].ItemScores["E3"], 1e-9)
}

func TestSummarizeAveragesMixedScenarios(t *testing.T) {
	results := []Result{
		{RunID: "r", ScenarioID: "s1", AgentID: "solo", Score: uniformScore(t, domain.StatusGood, 8.0)},
		{RunID: "r", ScenarioID: "s2", AgentID: "solo", Score: uniformScore(t, domain.StatusWeak, 2.0)},
	}

	summaries := Summarize(results)
	require.Len(t, summaries, 1)
	assert.InDelta(t, 50.0, summaries[0].MeanNormalized, 1e-9)
	assert.InDelta(t, 5.0, summaries[0].ItemScores["D2"], 1e-9)
}

func TestSummarizeDedupesImprovements(t *testing.T) {
	absent := uniformScore(t, domain.StatusAbsent, 0.0)
	results := []Result{
		{RunID: "r", ScenarioID: "s1", AgentID: "solo", Score: absent},
		{RunID: "r", ScenarioID: "s2", AgentID: "solo", Score: absent},
	}

	summaries := Summarize(results)
	require.Len(t, summaries, 1)
	// Both scenarios flag the same five missing names; the summary lists
	// each once.
	assert.Len(t, summaries[0].Improvements, 5)
}

func TestBuildReport(t *testing.T) {
	run := &Run{ID: "run-1", Provider: "upstage", Model: "solar-pro3"}
	results := []Result{
		{RunID: "run-1", ScenarioID: "s1", AgentID: "eduplanner", Score: uniformScore(t, domain.StatusGood, 8.0)},
		{RunID: "run-1", ScenarioID: "s1", AgentID: "baseline", Score: uniformScore(t, domain.StatusAbsent, 0.0)},
	}

	report := BuildReport(run, results)

	assert.Contains(t, report, "# Instructional Design Agent Comparison Report")
	assert.Contains(t, report, "upstage / solar-pro3")
	assert.Contains(t, report, "| 1 | eduplanner |")
	assert.Contains(t, report, "| 2 | baseline |")
	assert.Contains(t, report, "| Agent | Analysis | Design | Development | Implementation | Evaluation |")
	assert.Contains(t, report, " A1 |")
	assert.Contains(t, report, " E3 |")
	assert.Contains(t, report, "### baseline")
	assert.Contains(t, report, "No missing or weak elements identified.")
}
