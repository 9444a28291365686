package scoring

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/isdbench/addiebench/internal/domain"
)

// Judge responses wrap their JSON payload in a fenced block; some models
// drop the fence, so the fallback grabs the outermost brace span.
var (
	fencedJSONPattern = regexp.MustCompile("```json\\s*([\\s\\S]*?)\\s*```")
	braceSpanPattern  = regexp.MustCompile(`\{[\s\S]*\}`)

	// Models occasionally echo the placeholder tokens from the prompt's
	// output schema instead of real values.
	placeholderPattern = regexp.MustCompile(`<[\d\.\-]+(?:\|[\w\|\.\-]*)?>`)
)

// extractJSON pulls the JSON payload out of a raw judge response. It returns
// false when no JSON-looking span exists at all.
func extractJSON(content string) (string, bool) {
	if m := fencedJSONPattern.FindStringSubmatch(content); m != nil {
		return m[1], true
	}
	if m := braceSpanPattern.FindString(content); m != "" {
		return m, true
	}
	return "", false
}

// repairScoreJSON fixes the two malformations judges produce when they echo
// the schema: doubled closing braces and unreplaced placeholder tokens.
func repairScoreJSON(jsonStr string) string {
	jsonStr = strings.ReplaceAll(jsonStr, "}}", "}")
	return placeholderPattern.ReplaceAllString(jsonStr, "5.0")
}

type statusPayload struct {
	SubStatus       map[string]any    `json:"sub_status"`
	StatusReasoning map[string]string `json:"status_reasoning"`
}

type scorePayload struct {
	SubScores    map[string]any    `json:"sub_scores"`
	SubReasoning map[string]string `json:"sub_reasoning"`
}

// parseStatusResponse reads the first-pass response. Parsing never fails:
// any id the judge skipped, and every id when the payload is unusable, gets
// DefaultStatus. The second return value reports whether the payload
// decoded cleanly; callers log degraded responses.
func parseStatusResponse(content string, ids []int) (map[int]domain.Status, map[int]string, bool) {
	statuses := make(map[int]domain.Status, len(ids))
	reasoning := make(map[int]string, len(ids))

	jsonStr, found := extractJSON(content)
	var payload statusPayload
	clean := found && json.Unmarshal([]byte(jsonStr), &payload) == nil && payload.SubStatus != nil

	for _, id := range ids {
		if !clean {
			statuses[id] = domain.DefaultStatus
			continue
		}
		raw, ok := payload.SubStatus[strconv.Itoa(id)]
		if !ok {
			statuses[id] = domain.DefaultStatus
			continue
		}
		s, _ := raw.(string)
		statuses[id] = domain.ParseStatusOrDefault(s)
		reasoning[id] = payload.StatusReasoning[strconv.Itoa(id)]
	}
	return statuses, reasoning, clean
}

// parseScoreResponse reads the second-pass response and enforces each
// status's band. Missing or unusable scores default to the band midpoint;
// out-of-band scores are clamped and flagged on the result.
func parseScoreResponse(content string, ids []int, statuses map[int]domain.Status) ([]domain.SubItemResult, bool) {
	jsonStr, found := extractJSON(content)
	var payload scorePayload
	clean := false
	if found {
		// Repairs run only when the raw payload fails to decode; the brace
		// rewrite would corrupt well-formed compact JSON.
		clean = json.Unmarshal([]byte(jsonStr), &payload) == nil && payload.SubScores != nil
		if !clean {
			repaired := repairScoreJSON(jsonStr)
			clean = json.Unmarshal([]byte(repaired), &payload) == nil && payload.SubScores != nil
		}
	}

	results := make([]domain.SubItemResult, 0, len(ids))
	for _, id := range ids {
		status := statuses[id]
		if !status.IsValid() {
			status = domain.DefaultStatus
		}
		band := domain.BandFor(status)

		raw := band.Midpoint()
		parsed := false
		if clean {
			if v, ok := payload.SubScores[strconv.Itoa(id)]; ok {
				if f, ok := coerceFloat(v); ok {
					raw = f
					parsed = true
				}
			}
		}

		score := domain.Enforce(status, raw)
		results = append(results, domain.SubItemResult{
			ID:        id,
			Status:    status,
			Score:     score,
			Reasoning: payload.SubReasoning[strconv.Itoa(id)],
			Clamped:   parsed && score != raw,
		})
	}
	return results, clean
}

// coerceFloat accepts the score encodings judges actually produce: JSON
// numbers and numeric strings.
func coerceFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
