package domain

import "errors"

// Sentinel errors returned by domain constructors and lookups.
var (
	// ErrUnknownPhase indicates a string that is not one of the five ADDIE phases.
	ErrUnknownPhase = errors.New("unknown ADDIE phase")

	// ErrUnknownStatus indicates a status value outside the five-band enum.
	ErrUnknownStatus = errors.New("unknown status band")

	// ErrUnknownSubCriterion indicates a sub-criterion id outside 1..33.
	ErrUnknownSubCriterion = errors.New("unknown sub-criterion id")

	// ErrUnknownRubricItem indicates a rubric item id outside the 13-item table.
	ErrUnknownRubricItem = errors.New("unknown rubric item id")

	// ErrScoreOutOfBand indicates a sub-item score outside its status band.
	ErrScoreOutOfBand = errors.New("score outside status band")
)
