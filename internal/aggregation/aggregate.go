// Package aggregation folds sub-criterion results into the final ADDIE
// score. Everything here is a pure function of its inputs: item scores are
// sub-criterion means, phase scores are item sums, and the normalized total
// is the weighted share of the weighted maximum.
package aggregation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/isdbench/addiebench/internal/domain"
	"github.com/isdbench/addiebench/internal/scoring"
)

// maxImprovements caps each of the two improvement groups on the final
// score: up to five absent sub-criteria followed by up to five weak ones.
const maxImprovements = 5

// Input carries everything BuildScore needs: the per-phase results from the
// two-pass protocol and the phase weights for this scenario.
type Input struct {
	Phases  []scoring.PhaseResult
	Weights map[domain.Phase]float64
}

// BuildScore folds per-phase sub-criterion results into the full score
// hierarchy. The fold is order-independent: results may arrive in any phase
// or id order. Sub-criteria that were never scored enter their item mean at
// the neutral default score.
func BuildScore(in Input) domain.ADDIEScore {
	subScores := make(map[int]float64)
	subReasoning := make(map[int]string)
	var missing, weak []string
	for _, pr := range in.Phases {
		for _, r := range pr.Results {
			subScores[r.ID] = r.Score
			subReasoning[r.ID] = r.Reasoning
		}
		missing = append(missing, pr.Missing...)
		weak = append(weak, pr.Weak...)
	}

	phaseScores := make(map[domain.Phase]domain.PhaseScore, 5)
	for _, phase := range domain.Phases() {
		phaseScores[phase] = buildPhaseScore(phase, subScores, subReasoning, in.Weights[phase])
	}

	var totalRaw, totalWeighted, maxPossible float64
	for _, phase := range domain.Phases() {
		ps := phaseScores[phase]
		totalRaw += ps.RawScore
		totalWeighted += ps.WeightedScore
		maxPossible += ps.MaxScore * in.Weights[phase]
	}

	normalized := 0.0
	if maxPossible > 0 {
		normalized = totalWeighted / maxPossible * 100
	}

	return domain.ADDIEScore{
		Analysis:        phaseScores[domain.PhaseAnalysis],
		Design:          phaseScores[domain.PhaseDesign],
		Development:     phaseScores[domain.PhaseDevelopment],
		Implementation:  phaseScores[domain.PhaseImplementation],
		Evaluation:      phaseScores[domain.PhaseEvaluation],
		TotalRaw:        totalRaw,
		TotalWeighted:   totalWeighted,
		NormalizedScore: normalized,
		Strengths:       []string{},
		Improvements:    improvements(missing, weak),
		Narrative:       narrative(subScores, len(missing), len(weak)),
	}
}

// buildPhaseScore assembles one phase: each rubric item scores the mean of
// its sub-criteria, the phase raw score is the item sum, and the weighted
// score applies the phase weight to the raw sum.
func buildPhaseScore(
	phase domain.Phase,
	subScores map[int]float64,
	subReasoning map[int]string,
	weight float64,
) domain.PhaseScore {
	defs := domain.ItemsForPhase(phase)
	items := make([]domain.RubricItem, 0, len(defs))
	var raw float64

	for _, def := range defs {
		score := itemMean(def.SubIDs, subScores)
		raw += score
		items = append(items, domain.RubricItem{
			ItemID:      def.ID,
			Phase:       phase,
			Name:        def.Name,
			Description: def.Description,
			Score:       score,
			Reasoning:   itemReasoning(def.SubIDs, subScores, subReasoning),
		})
	}

	return domain.PhaseScore{
		Phase:         phase,
		Items:         items,
		RawScore:      raw,
		WeightedScore: raw * weight,
		MaxScore:      float64(len(items)) * domain.MaxScorePerItem,
	}
}

func itemMean(subIDs []int, subScores map[int]float64) float64 {
	if len(subIDs) == 0 {
		return domain.DefaultSubScore
	}
	var sum float64
	for _, id := range subIDs {
		if s, ok := subScores[id]; ok {
			sum += s
		} else {
			sum += domain.DefaultSubScore
		}
	}
	return sum / float64(len(subIDs))
}

// itemReasoning joins the sub-criterion verdicts an item aggregates so the
// item-level report stays traceable to individual judgments.
func itemReasoning(subIDs []int, subScores map[int]float64, subReasoning map[int]string) string {
	parts := make([]string, 0, len(subIDs))
	for _, id := range subIDs {
		sc, err := domain.SubCriterionByID(id)
		if err != nil {
			continue
		}
		score, ok := subScores[id]
		if !ok {
			score = domain.DefaultSubScore
		}
		parts = append(parts, fmt.Sprintf("[%s (%.1f)] %s", sc.Name, score, subReasoning[id]))
	}
	return strings.Join(parts, " | ")
}

// improvements selects the improvement list for the final score: at most
// five absent sub-criteria, then at most five weak ones, in the order they
// were recorded.
func improvements(missing, weak []string) []string {
	out := make([]string, 0, 2*maxImprovements)
	out = append(out, capList(missing)...)
	out = append(out, capList(weak)...)
	return out
}

func capList(list []string) []string {
	if len(list) > maxImprovements {
		return list[:maxImprovements]
	}
	return list
}

// narrative summarizes the run and enumerates every sub-criterion score in
// id order, mirroring the detail block attached to score reports.
func narrative(subScores map[int]float64, missingCount, weakCount int) string {
	ids := make([]int, 0, len(subScores))
	for id := range subScores {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var b strings.Builder
	fmt.Fprintf(&b, "Evaluated %d sub-criteria. Missing elements: %d, weak areas: %d\n\nSub-criterion scores:\n",
		len(ids), missingCount, weakCount)
	for _, id := range ids {
		name := ""
		if sc, err := domain.SubCriterionByID(id); err == nil {
			name = sc.Name
		}
		fmt.Fprintf(&b, "[%d] %s: %.1f\n", id, name, subScores[id])
	}
	return strings.TrimRight(b.String(), "\n")
}
