package triage

import "strings"

// Match is the ephemeral result of a single scoring pass.
type Match struct {
	Condition *Condition
	Score     int
}

// Scoring weights. These mirror the tuning the product shipped with and are
// not medically validated thresholds.
const (
	phraseKeywordPoints = 15
	singleKeywordPoints = 10
	amplifierPoints     = 3
	mitigatorPenalty    = 2
	suddenOnsetPoints   = 5
	worseningPoints     = 4
	minMatchScore       = 8
)

var (
	amplifierWords = []string{"severe", "bad", "terrible", "emergency", "critical", "help", "911", "can't"}
	mitigatorWords = []string{"mild", "slight", "little", "minor", "better"}
	onsetPhrases   = []string{"suddenly", "just happened"}
)

// Scorer matches free-text symptom descriptions against the condition catalog.
type Scorer struct {
	catalog *Catalog
}

// NewScorer constructs a scorer over the provided catalog.
func NewScorer(catalog *Catalog) *Scorer {
	return &Scorer{catalog: catalog}
}

// Score scans the input against every catalog condition and returns the
// single best match, or nil when nothing reaches the minimum score.
//
// Keyword hits are case-insensitive substring matches: multi-word phrase
// keywords score 15, single words score 10. Contextual modifiers are
// computed once from the input and added to every condition that matched
// at least one keyword, so keyword-free input can never produce a match.
// A later condition must strictly exceed the running best to replace it;
// catalog order is the tie-break.
func (s *Scorer) Score(input string) *Match {
	if s == nil || s.catalog == nil {
		return nil
	}
	text := strings.ToLower(strings.TrimSpace(input))
	if text == "" {
		return nil
	}

	modifiers := contextModifiers(text)

	var best *Match
	highest := 0
	for i := range s.catalog.conditions {
		cond := &s.catalog.conditions[i]
		points := keywordPoints(text, cond.Keywords)
		if points == 0 {
			continue
		}
		score := points + modifiers
		if score < 0 {
			score = 0
		}
		if score >= minMatchScore && score > highest {
			highest = score
			best = &Match{Condition: cond, Score: score}
		}
	}
	return best
}

func keywordPoints(text string, keywords []string) int {
	total := 0
	for _, kw := range keywords {
		if !strings.Contains(text, kw) {
			continue
		}
		if strings.Contains(kw, " ") {
			total += phraseKeywordPoints
		} else {
			total += singleKeywordPoints
		}
	}
	return total
}

// contextModifiers derives the input-wide score adjustment shared by every
// condition: amplifiers raise urgency, mitigators lower it, and sudden
// onset or worsening language adds a flat bonus.
func contextModifiers(text string) int {
	total := 0
	for _, word := range amplifierWords {
		if strings.Contains(text, word) {
			total += amplifierPoints
		}
	}
	for _, word := range mitigatorWords {
		if strings.Contains(text, word) {
			total -= mitigatorPenalty
		}
	}
	for _, phrase := range onsetPhrases {
		if strings.Contains(text, phrase) {
			total += suddenOnsetPoints
			break
		}
	}
	if strings.Contains(text, "getting worse") {
		total += worseningPoints
	}
	return total
}
