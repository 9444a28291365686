package benchmark

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/isdbench/addiebench/internal/domain"
)

// AgentSummary aggregates one agent's results across every scenario of a run.
type AgentSummary struct {
	AgentID        string
	Scenarios      int
	MeanNormalized float64
	PhasePercent   map[domain.Phase]float64
	ItemScores     map[string]float64
	Improvements   []string
}

// Summarize folds run results into per-agent summaries, ranked by mean
// normalized score descending (ties broken by agent id for stable reports).
func Summarize(results []Result) []AgentSummary {
	byAgent := make(map[string][]Result)
	for _, res := range results {
		byAgent[res.AgentID] = append(byAgent[res.AgentID], res)
	}

	summaries := make([]AgentSummary, 0, len(byAgent))
	for agentID, agentResults := range byAgent {
		s := AgentSummary{
			AgentID:      agentID,
			Scenarios:    len(agentResults),
			PhasePercent: make(map[domain.Phase]float64, 5),
			ItemScores:   make(map[string]float64, 13),
		}

		seen := make(map[string]bool)
		for _, res := range agentResults {
			s.MeanNormalized += res.Score.NormalizedScore
			for phase, ps := range res.Score.PhaseScores() {
				s.PhasePercent[phase] += ps.Percentage()
				for _, item := range ps.Items {
					s.ItemScores[item.ItemID] += item.Score
				}
			}
			for _, imp := range res.Score.Improvements {
				if !seen[imp] {
					seen[imp] = true
					s.Improvements = append(s.Improvements, imp)
				}
			}
		}

		n := float64(len(agentResults))
		s.MeanNormalized /= n
		for phase := range s.PhasePercent {
			s.PhasePercent[phase] /= n
		}
		for id := range s.ItemScores {
			s.ItemScores[id] /= n
		}
		summaries = append(summaries, s)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].MeanNormalized != summaries[j].MeanNormalized {
			return summaries[i].MeanNormalized > summaries[j].MeanNormalized
		}
		return summaries[i].AgentID < summaries[j].AgentID
	})
	return summaries
}

// BuildReport renders a markdown comparison report for one run.
func BuildReport(run *Run, results []Result) string {
	summaries := Summarize(results)

	var b strings.Builder
	b.WriteString("# Instructional Design Agent Comparison Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "- **Run:** %s\n", run.ID)
	fmt.Fprintf(&b, "- **Judge:** %s / %s\n", run.Provider, run.Model)
	fmt.Fprintf(&b, "- **Results:** %d\n\n", len(results))

	b.WriteString("## Overall ranking\n\n")
	b.WriteString("| Rank | Agent | Scenarios | Mean normalized score |\n")
	b.WriteString("|------|-------|-----------|----------------------|\n")
	for i, s := range summaries {
		fmt.Fprintf(&b, "| %d | %s | %d | %.1f |\n", i+1, s.AgentID, s.Scenarios, s.MeanNormalized)
	}
	b.WriteString("\n")

	b.WriteString("## Phase scores (%)\n\n")
	b.WriteString("| Agent | Analysis | Design | Development | Implementation | Evaluation |\n")
	b.WriteString("|-------|----------|--------|-------------|----------------|------------|\n")
	for _, s := range summaries {
		fmt.Fprintf(&b, "| %s |", s.AgentID)
		for _, phase := range domain.Phases() {
			fmt.Fprintf(&b, " %.1f |", s.PhasePercent[phase])
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	items := domain.AllRubricItems()
	b.WriteString("## Item scores (0-10)\n\n")
	b.WriteString("| Agent |")
	for _, item := range items {
		fmt.Fprintf(&b, " %s |", item.ID)
	}
	b.WriteString("\n|-------|")
	for range items {
		b.WriteString("----|")
	}
	b.WriteString("\n")
	for _, s := range summaries {
		fmt.Fprintf(&b, "| %s |", s.AgentID)
		for _, item := range items {
			fmt.Fprintf(&b, " %.1f |", s.ItemScores[item.ID])
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString("## Improvement areas\n\n")
	for _, s := range summaries {
		fmt.Fprintf(&b, "### %s\n\n", s.AgentID)
		if len(s.Improvements) == 0 {
			b.WriteString("No missing or weak elements identified.\n\n")
			continue
		}
		for _, imp := range s.Improvements {
			fmt.Fprintf(&b, "- %s\n", imp)
		}
		b.WriteString("\n")
	}

	return b.String()
}
