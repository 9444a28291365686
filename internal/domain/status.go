package domain

import (
	"fmt"
	"strings"
)

// Status is the qualitative verdict assigned to a sub-criterion in the first
// judge pass. Each status maps to a disjoint numeric band; together the bands
// cover [0, 10] exactly.
type Status string

// The five status bands, from complete omission to flawless coverage.
const (
	StatusAbsent    Status = "absent"    // element entirely missing from the deliverable
	StatusWeak      Status = "weak"      // named only, or one or two superficial sentences
	StatusModerate  Status = "moderate"  // some required elements present but generic
	StatusGood      Status = "good"      // most required elements present, minor gaps
	StatusExcellent Status = "excellent" // all required elements concrete and actionable
)

// DefaultStatus is the repair value for unparseable or missing judge output.
// Recoverable parse failures never surface as errors; every requested
// sub-criterion id ends up with this status instead.
const DefaultStatus = StatusModerate

// Statuses returns the five bands ordered from worst to best.
func Statuses() []Status {
	return []Status{StatusAbsent, StatusWeak, StatusModerate, StatusGood, StatusExcellent}
}

// String returns the string representation of the status.
func (s Status) String() string { return string(s) }

// IsValid reports whether s is one of the five recognized bands.
func (s Status) IsValid() bool {
	switch s {
	case StatusAbsent, StatusWeak, StatusModerate, StatusGood, StatusExcellent:
		return true
	}
	return false
}

// ParseStatus normalizes and validates a raw status string from the judge.
// Matching is case-insensitive with surrounding whitespace ignored.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
	}
	return s, nil
}

// ParseStatusOrDefault normalizes a raw status string, silently replacing
// values outside the five-band enum with DefaultStatus. This is the repair
// policy for judge responses that name a status the protocol does not define.
func ParseStatusOrDefault(raw string) Status {
	s, err := ParseStatus(raw)
	if err != nil {
		return DefaultStatus
	}
	return s
}

// Band is the closed numeric interval a status constrains scores into.
type Band struct {
	Min float64
	Max float64
}

// statusBands maps each status to its score interval. The bands are
// contiguous and exhaustive over [0, 10]: absent pins the score to zero,
// and the remaining four bands tile (0, 10] without overlap.
var statusBands = map[Status]Band{
	StatusAbsent:    {Min: 0.0, Max: 0.0},
	StatusWeak:      {Min: 1.0, Max: 3.9},
	StatusModerate:  {Min: 4.0, Max: 6.9},
	StatusGood:      {Min: 7.0, Max: 8.9},
	StatusExcellent: {Min: 9.0, Max: 10.0},
}

// BandFor returns the score interval for a status. Unknown statuses fall
// back to the moderate band, mirroring the repair policy for statuses.
func BandFor(s Status) Band {
	if band, ok := statusBands[s]; ok {
		return band
	}
	return statusBands[DefaultStatus]
}

// Midpoint returns the center of the band, used as the score default when
// the judge's score response cannot be parsed.
func (b Band) Midpoint() float64 { return (b.Min + b.Max) / 2 }

// Contains reports whether score lies within the band, inclusive.
func (b Band) Contains(score float64) bool { return score >= b.Min && score <= b.Max }

// Enforce clamps a raw judge score into the band for the given status:
//
//	enforced = min(band.Max, max(band.Min, raw))
//
// The clamp is unconditional and overrides the judge's own number whenever it
// violates the assigned band. Callers that want to track how often the judge
// drifts out of band can compare the result against the input.
func Enforce(s Status, raw float64) float64 {
	band := BandFor(s)
	if raw < band.Min {
		return band.Min
	}
	if raw > band.Max {
		return band.Max
	}
	return raw
}
