package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isdbench/addiebench/internal/domain"
)

func TestExtractJSON(t *testing.T) {
	t.Run("fenced block", func(t *testing.T) {
		got, ok := extractJSON("preamble\n```json\n{\"a\": 1}\n```\ntrailer")
		require.True(t, ok)
		assert.JSONEq(t, `{"a": 1}`, got)
	})

	t.Run("bare braces", func(t *testing.T) {
		got, ok := extractJSON(`The result is {"a": 1} as requested.`)
		require.True(t, ok)
		assert.JSONEq(t, `{"a": 1}`, got)
	})

	t.Run("no json at all", func(t *testing.T) {
		_, ok := extractJSON("I cannot evaluate this deliverable.")
		assert.False(t, ok)
	})
}

func TestRepairScoreJSON(t *testing.T) {
	in := `{"sub_scores": {"1": <0.0-10.0>, "2": 7.5}}`
	repaired := repairScoreJSON(in)
	assert.NotContains(t, repaired, "<")
	assert.Contains(t, repaired, "5.0")
}

func TestParseStatusResponse(t *testing.T) {
	ids := []int{24, 25, 26, 27}

	t.Run("well formed", func(t *testing.T) {
		content := "```json\n" + `{
			"sub_status": {"24": "good", "25": "ABSENT", "26": "superb"},
			"status_reasoning": {"24": "solid orientation plan"}
		}` + "\n```"

		statuses, reasoning, clean := parseStatusResponse(content, ids)
		assert.True(t, clean)
		assert.Equal(t, domain.StatusGood, statuses[24])
		assert.Equal(t, domain.StatusAbsent, statuses[25])
		// Unknown status strings repair silently to the default.
		assert.Equal(t, domain.DefaultStatus, statuses[26])
		// Omitted ids repair to the default too.
		assert.Equal(t, domain.DefaultStatus, statuses[27])
		assert.Equal(t, "solid orientation plan", reasoning[24])
	})

	t.Run("plain text response", func(t *testing.T) {
		statuses, _, clean := parseStatusResponse("The implementation phase looks fine.", ids)
		assert.False(t, clean)
		for _, id := range ids {
			assert.Equal(t, domain.DefaultStatus, statuses[id])
		}
	})

	t.Run("wrong shape", func(t *testing.T) {
		statuses, _, clean := parseStatusResponse(`{"verdict": "good"}`, ids)
		assert.False(t, clean)
		for _, id := range ids {
			assert.Equal(t, domain.DefaultStatus, statuses[id])
		}
	})
}

func TestParseScoreResponse(t *testing.T) {
	ids := []int{24, 25, 26, 27}
	statuses := map[int]domain.Status{
		24: domain.StatusGood,
		25: domain.StatusAbsent,
		26: domain.StatusWeak,
		27: domain.StatusExcellent,
	}

	t.Run("scores enforced into bands", func(t *testing.T) {
		content := "```json\n" + `{
			"sub_scores": {"24": 8.2, "25": 6.0, "26": "2.5", "27": 11.0},
			"sub_reasoning": {"24": "well prepared"}
		}` + "\n```"

		results, clean := parseScoreResponse(content, ids, statuses)
		require.True(t, clean)
		require.Len(t, results, 4)

		byID := make(map[int]domain.SubItemResult)
		for _, r := range results {
			byID[r.ID] = r
		}

		assert.InDelta(t, 8.2, byID[24].Score, 1e-9)
		assert.False(t, byID[24].Clamped)
		assert.Equal(t, "well prepared", byID[24].Reasoning)

		// 6.0 against absent clamps to the pinned zero.
		assert.InDelta(t, 0.0, byID[25].Score, 1e-9)
		assert.True(t, byID[25].Clamped)

		// Numeric strings are accepted.
		assert.InDelta(t, 2.5, byID[26].Score, 1e-9)
		assert.False(t, byID[26].Clamped)

		// Overflow clamps to the band ceiling.
		assert.InDelta(t, 10.0, byID[27].Score, 1e-9)
		assert.True(t, byID[27].Clamped)
	})

	t.Run("missing id defaults to band midpoint", func(t *testing.T) {
		content := "```json\n" + `{"sub_scores": {"24": 7.5}}` + "\n```"

		results, clean := parseScoreResponse(content, ids, statuses)
		require.True(t, clean)

		byID := make(map[int]domain.SubItemResult)
		for _, r := range results {
			byID[r.ID] = r
		}
		assert.InDelta(t, domain.BandFor(domain.StatusWeak).Midpoint(), byID[26].Score, 1e-9)
		assert.False(t, byID[26].Clamped)
	})

	t.Run("garbage falls back to midpoints everywhere", func(t *testing.T) {
		results, clean := parseScoreResponse("no json here", ids, statuses)
		assert.False(t, clean)
		for _, r := range results {
			assert.InDelta(t, domain.BandFor(r.Status).Midpoint(), r.Score, 1e-9, "id %d", r.ID)
			assert.False(t, r.Clamped)
		}
	})

	t.Run("unknown status treated as moderate", func(t *testing.T) {
		results, _ := parseScoreResponse("no json", []int{1}, map[int]domain.Status{})
		require.Len(t, results, 1)
		assert.Equal(t, domain.DefaultStatus, results[0].Status)
		assert.InDelta(t, 5.45, results[0].Score, 1e-9)
	})
}
