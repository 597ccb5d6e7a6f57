package triage

// Severity is the ordinal urgency classification attached to a condition.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var severityRank = map[Severity]int{
	SeverityLow:      0,
	SeverityMedium:   1,
	SeverityHigh:     2,
	SeverityCritical: 3,
}

// Valid reports whether the severity is one of the four known tiers.
func (s Severity) Valid() bool {
	_, ok := severityRank[s]
	return ok
}

// Rank returns the ordinal position of the severity, lowest first.
// Unknown values rank below low.
func (s Severity) Rank() int {
	if rank, ok := severityRank[s]; ok {
		return rank
	}
	return -1
}

// AtLeast reports whether s is as severe or more severe than other.
func (s Severity) AtLeast(other Severity) bool {
	return s.Rank() >= other.Rank()
}
