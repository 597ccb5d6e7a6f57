package triage

// Response is the structured triage output handed to the presentation layer.
type Response struct {
	Title             string   `json:"title"`
	Assessment        string   `json:"assessment"`
	ImmediateActions  []string `json:"immediate_actions"`
	Warnings          []string `json:"warnings"`
	VitalsToMonitor   []string `json:"vitals_to_monitor"`
	FollowUpQuestions []string `json:"follow_up_questions"`
	Severity          Severity `json:"severity"`
	Confidence        int      `json:"confidence"`
	Matched           bool     `json:"matched"`
	ConditionID       string   `json:"condition_id,omitempty"`
	Score             int      `json:"score"`
}

// EscalationDirective is the distinguished call-to-action that callers must
// surface as a separate, higher-priority message whenever a response comes
// back with critical severity. A critical assessment is never delivered
// without it.
const EscalationDirective = "CALL EMERGENCY SERVICES NOW. Based on the symptoms described, this may be life-threatening. Do not wait."

// BuildResponse converts a scoring result into the structured response.
// A nil match produces the generic clarification response at medium severity.
func BuildResponse(match *Match) Response {
	if match == nil || match.Condition == nil {
		return Response{
			Title:      "More Information Needed",
			Assessment: "I couldn't identify a specific emergency from that description. Please tell me more about the symptoms so I can help.",
			ImmediateActions: []string{
				"Stay calm and keep the person comfortable",
				"Describe the main symptom in more detail",
			},
			FollowUpQuestions: []string{
				"On a scale of 1-10, how severe is the pain or discomfort?",
				"When did the symptoms start?",
				"Are there any known medical conditions or medications?",
			},
			Severity:   SeverityMedium,
			Confidence: 0,
			Matched:    false,
		}
	}

	cond := match.Condition
	return Response{
		Title:             cond.Title,
		Assessment:        cond.Assessment,
		ImmediateActions:  cond.ImmediateActions,
		Warnings:          cond.Warnings,
		VitalsToMonitor:   cond.VitalsToMonitor,
		FollowUpQuestions: cond.FollowUpQuestions,
		Severity:          cond.Severity,
		Confidence:        cond.BaseAccuracy,
		Matched:           true,
		ConditionID:       cond.ID,
		Score:             match.Score,
	}
}

// RequiresEscalation reports whether the caller must attach the
// EscalationDirective to this response.
func (r Response) RequiresEscalation() bool {
	return r.Severity == SeverityCritical
}
