// Package weights computes context-adjusted phase weights for ADDIE
// deliverable scoring. Base weights reflect the relative importance of each
// lifecycle phase for a generic scenario; a scenario's context profile
// shifts them through a fixed rulebook before normalization.
package weights

import (
	"strings"
	"sync"

	"github.com/isdbench/addiebench/internal/domain"
)

// Weight bounds applied once after all rule deltas are summed.
const (
	MinPhaseWeight = 0.05
	MaxPhaseWeight = 0.50
)

// BaseWeights returns the default phase weights used when a scenario carries
// no context profile. The values sum to 1.0.
func BaseWeights() map[domain.Phase]float64 {
	return map[domain.Phase]float64{
		domain.PhaseAnalysis:       0.25,
		domain.PhaseDesign:         0.20,
		domain.PhaseDevelopment:    0.20,
		domain.PhaseImplementation: 0.15,
		domain.PhaseEvaluation:     0.20,
	}
}

// Adjuster derives phase weights from context profiles. Adjustment is a pure
// function of the profile, so results are memoized; an Adjuster is safe for
// concurrent use.
type Adjuster struct {
	mu   sync.Mutex
	memo map[domain.ContextProfile]map[domain.Phase]float64
}

// NewAdjuster returns an Adjuster with an empty memo.
func NewAdjuster() *Adjuster {
	return &Adjuster{memo: make(map[domain.ContextProfile]map[domain.Phase]float64)}
}

// Adjust returns the phase weights for the given profile. An empty profile
// yields the base weights unchanged. Otherwise each populated attribute
// selects at most one rule, all selected deltas are summed per phase, each
// adjusted weight is clamped into [MinPhaseWeight, MaxPhaseWeight], and the
// result is renormalized so the weights sum to exactly 1.0.
//
// The returned map is a fresh copy on every call; callers may mutate it.
func (a *Adjuster) Adjust(profile domain.ContextProfile) map[domain.Phase]float64 {
	if profile.IsEmpty() {
		return BaseWeights()
	}

	a.mu.Lock()
	cached, ok := a.memo[profile]
	a.mu.Unlock()
	if ok {
		return copyWeights(cached)
	}

	weights := adjust(profile)

	a.mu.Lock()
	a.memo[profile] = weights
	a.mu.Unlock()

	return copyWeights(weights)
}

func adjust(profile domain.ContextProfile) map[domain.Phase]float64 {
	weights := BaseWeights()

	for _, ar := range adjustmentRules {
		value := profile.Attribute(ar.attribute)
		if value == "" {
			continue
		}
		deltas, ok := matchRule(ar.rules, value)
		if !ok {
			continue
		}
		for phase, delta := range deltas {
			weights[phase] += delta
		}
	}

	for phase, w := range weights {
		weights[phase] = clampWeight(w)
	}
	return normalize(weights)
}

// matchRule finds the rule for an attribute value. Exact alias matches win
// over substring matches; substring matching is case-insensitive and accepts
// overlap in either direction, stopping at the first hit.
func matchRule(rules []rule, value string) (map[domain.Phase]float64, bool) {
	for _, r := range rules {
		for _, key := range r.keys {
			if key == value {
				return r.deltas, true
			}
		}
	}

	lower := strings.ToLower(value)
	for _, r := range rules {
		for _, key := range r.keys {
			keyLower := strings.ToLower(key)
			if strings.Contains(lower, keyLower) || strings.Contains(keyLower, lower) {
				return r.deltas, true
			}
		}
	}
	return nil, false
}

func clampWeight(w float64) float64 {
	if w < MinPhaseWeight {
		return MinPhaseWeight
	}
	if w > MaxPhaseWeight {
		return MaxPhaseWeight
	}
	return w
}

// normalize rescales weights so they sum to 1.0. The clamp keeps every
// weight strictly positive, so the total can never be zero here. Summation
// runs in fixed phase order to keep results bit-for-bit reproducible.
func normalize(weights map[domain.Phase]float64) map[domain.Phase]float64 {
	var total float64
	for _, p := range domain.Phases() {
		total += weights[p]
	}
	for phase, w := range weights {
		weights[phase] = w / total
	}
	return weights
}

func copyWeights(src map[domain.Phase]float64) map[domain.Phase]float64 {
	dst := make(map[domain.Phase]float64, len(src))
	for p, w := range src {
		dst[p] = w
	}
	return dst
}
