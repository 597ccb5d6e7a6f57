package triage

import "testing"

func TestBuildResponseFromMatch(t *testing.T) {
	cond := Condition{
		ID:                "heart-attack",
		Title:             "Possible Heart Attack",
		Severity:          SeverityCritical,
		BaseAccuracy:      94,
		Assessment:        "Consistent with a cardiac event.",
		ImmediateActions:  []string{"Call emergency services now", "Have the person rest"},
		Warnings:          []string{"Do not give food or water"},
		VitalsToMonitor:   []string{"heart rate"},
		FollowUpQuestions: []string{"Does the pain spread?"},
	}
	response := BuildResponse(&Match{Condition: &cond, Score: 21})

	if !response.Matched {
		t.Fatal("expected matched response")
	}
	if response.Title != cond.Title || response.Assessment != cond.Assessment {
		t.Fatalf("condition text not propagated: %+v", response)
	}
	if response.Severity != SeverityCritical {
		t.Fatalf("expected critical severity got %q", response.Severity)
	}
	if response.Confidence != 94 || response.Score != 21 {
		t.Fatalf("expected confidence 94 and score 21, got %d / %d", response.Confidence, response.Score)
	}
	if len(response.ImmediateActions) != 2 || response.ImmediateActions[0] != "Call emergency services now" {
		t.Fatalf("action order not preserved: %v", response.ImmediateActions)
	}
	if !response.RequiresEscalation() {
		t.Fatal("critical response must require escalation")
	}
}

func TestBuildResponseNoMatch(t *testing.T) {
	for _, match := range []*Match{nil, {Condition: nil, Score: 12}} {
		response := BuildResponse(match)
		if response.Matched {
			t.Fatal("expected unmatched response")
		}
		if response.Severity != SeverityMedium {
			t.Fatalf("generic response must be medium severity, got %q", response.Severity)
		}
		if len(response.FollowUpQuestions) != 3 {
			t.Fatalf("expected the fixed clarifying questions, got %v", response.FollowUpQuestions)
		}
		if response.RequiresEscalation() {
			t.Fatal("generic response must not escalate")
		}
	}
}

func TestRequiresEscalationOnlyForCritical(t *testing.T) {
	for _, severity := range []Severity{SeverityLow, SeverityMedium, SeverityHigh} {
		r := Response{Severity: severity}
		if r.RequiresEscalation() {
			t.Fatalf("severity %q must not escalate", severity)
		}
	}
	if !(Response{Severity: SeverityCritical}).RequiresEscalation() {
		t.Fatal("critical must escalate")
	}
}

func TestSeverityOrdering(t *testing.T) {
	ordered := []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
	for i := 1; i < len(ordered); i++ {
		if !ordered[i].AtLeast(ordered[i-1]) {
			t.Fatalf("%q should rank at least %q", ordered[i], ordered[i-1])
		}
		if ordered[i-1].AtLeast(ordered[i]) {
			t.Fatalf("%q should rank below %q", ordered[i-1], ordered[i])
		}
	}
	if Severity("bogus").Valid() {
		t.Fatal("bogus severity must be invalid")
	}
}
