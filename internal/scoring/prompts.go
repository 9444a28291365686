package scoring

import (
	"fmt"
	"strings"

	"github.com/isdbench/addiebench/internal/domain"
)

// statusPromptTemplate drives the first judge pass: presence and quality
// classification per sub-criterion. The judge must answer with a fenced JSON
// block keyed by sub-criterion id.
const statusPromptTemplate = `You are a veteran instructional design expert with 20 years of experience.
For the ADDIE deliverable below, judge the PRESENCE and QUALITY LEVEL of each listed sub-criterion.

## Core principles
- Judge only from the deliverable text presented here.
- Lenient judgment is forbidden. Missing content is "absent"; thin content is "weak".

## Status classification
| Status | Criterion | Score range |
|--------|-----------|-------------|
| absent | The element does not appear at all, not even a mention | 0 |
| weak | Named only, or one or two superficial sentences | 1-3.9 |
| moderate | Some required elements present but generic, lacking specifics | 4-6.9 |
| good | Most required elements present, only minor gaps | 7-8.9 |
| excellent | All required elements concrete and immediately actionable | 9-10 |

## Distinguishing absent from weak
absent: no related term, concept, or explanation appears anywhere in the deliverable.
weak: a related term appears at least once, or the concept is mentioned in one or two brief sentences without substance.

The same deliverable must always receive the same status. When unsure, reread the deliverable text before deciding.

## Scenario context
%s

## Deliverable under evaluation
%s

## Sub-criteria and required elements
%s

## Output format (JSON)
Assign a status to every sub-criterion id. Output statuses only, no reasoning.
` + "```json" + `
{
  "sub_status": {
    %s
  }
}
` + "```" + `
`

// scorePromptTemplate drives the second judge pass: a precise score inside
// the band each status fixed in the first pass.
const scorePromptTemplate = `You are a veteran instructional design expert with 20 years of experience.
Each sub-criterion's status has already been decided. Assign a precise score WITHIN each status's score range.

## Core principles
- Scores outside the assigned range are invalid.
- Use one decimal place and vary the scores (for example 7.2, 7.4, 7.7).
- Do not give every item the same score; reflect quality differences between items.

## Score ranges per status
| Status | Range | Guidance |
|--------|-------|----------|
| absent | 0.0 fixed | |
| weak | 1.0-3.9 | 1.0 term only, 2.5 one or two sentences, 3.5 skeletal structure |
| moderate | 4.0-6.9 | 4.5 core missing, 5.5 partial, 6.5 mostly present but shallow |
| good | 7.0-8.9 | 7.2 several gaps, 8.0 minor gaps, 8.7 nearly complete |
| excellent | 9.0-10.0 | 9.2 very strong, 9.6 near perfect, 10.0 flawless |

## Scenario context
%s

## Deliverable under evaluation
%s

## Assigned statuses
%s

## Sub-criteria and required elements
%s

## Output format (JSON)
Output scores only, no reasoning.
` + "```json" + `
{
  "sub_scores": {
    %s
  }
}
` + "```" + `
`

// BuildCriteriaText renders the rubric block embedded in both prompts. Every
// sub-criterion gets its heading plus banded criteria derived from its
// required elements.
func BuildCriteriaText(subs []domain.SubCriterion) string {
	var b strings.Builder
	for _, sc := range subs {
		fmt.Fprintf(&b, "\n### [%d] %s\n", sc.ID, sc.Name)
		fmt.Fprintf(&b, "Required elements: %s.\n", sc.Essentials)
		b.WriteString("- 9-10 (excellent): all required elements concrete and immediately actionable\n")
		b.WriteString("- 7-8.9 (good): most required elements present, minor gaps\n")
		b.WriteString("- 4-6.9 (moderate): some required elements present but generic\n")
		b.WriteString("- 1-3.9 (weak): named only or superficially described\n")
		b.WriteString("- 0 (absent): not addressed anywhere in the deliverable\n")
	}
	return b.String()
}

// StatusPrompt assembles the first-pass prompt for one phase.
func StatusPrompt(scenarioContext, phaseOutput string, subs []domain.SubCriterion) string {
	keys := make([]string, len(subs))
	for i, sc := range subs {
		keys[i] = fmt.Sprintf(`"%d": "<absent|weak|moderate|good|excellent>"`, sc.ID)
	}
	return fmt.Sprintf(statusPromptTemplate,
		scenarioContext,
		phaseOutput,
		BuildCriteriaText(subs),
		strings.Join(keys, ",\n    "))
}

// ScorePrompt assembles the second-pass prompt for one phase. Each score key
// advertises the exact band its status allows.
func ScorePrompt(scenarioContext, phaseOutput string, subs []domain.SubCriterion, statuses map[int]domain.Status) string {
	keys := make([]string, len(subs))
	statusLines := make([]string, len(subs))
	for i, sc := range subs {
		status := statuses[sc.ID]
		if !status.IsValid() {
			status = domain.DefaultStatus
		}
		band := domain.BandFor(status)
		keys[i] = fmt.Sprintf(`"%d": <%.1f-%.1f>`, sc.ID, band.Min, band.Max)
		statusLines[i] = fmt.Sprintf(`  "%d": "%s"`, sc.ID, status)
	}
	statusResult := "{\n" + strings.Join(statusLines, ",\n") + "\n}"

	return fmt.Sprintf(scorePromptTemplate,
		scenarioContext,
		phaseOutput,
		statusResult,
		BuildCriteriaText(subs),
		strings.Join(keys, ",\n    "))
}
