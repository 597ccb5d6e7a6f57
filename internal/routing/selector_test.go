package routing

import (
	"sort"
	"testing"
)

var (
	normalVitals   = Vitals{HeartRate: 72, SpO2: 98, Temperature: 36.8}
	criticalVitals = Vitals{HeartRate: 130, SpO2: 98, Temperature: 37}
)

func assertSortedAndBounded(t *testing.T, candidates []Candidate) {
	t.Helper()
	if len(candidates) > 3 {
		t.Fatalf("expected at most 3 candidates, got %d", len(candidates))
	}
	if !sort.SliceIsSorted(candidates, func(i, j int) bool {
		return candidates[i].Priority < candidates[j].Priority
	}) {
		t.Fatalf("candidates not sorted by priority: %+v", candidates)
	}
}

func kinds(candidates []Candidate) []ResponderKind {
	out := make([]ResponderKind, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.Kind)
	}
	return out
}

func TestSelectCriticalVitals(t *testing.T) {
	selector := NewSelector(nil)
	candidates := selector.Select(criticalVitals, SituationNormal, nil)

	assertSortedAndBounded(t, candidates)
	if len(candidates) != 2 {
		t.Fatalf("expected ambulance and hospital, got %v", kinds(candidates))
	}
	if candidates[0].Kind != KindAmbulance || candidates[0].Priority != 1 {
		t.Fatalf("expected ambulance at priority 1, got %+v", candidates[0])
	}
	if candidates[1].Kind != KindHospital || candidates[1].Priority != 2 {
		t.Fatalf("expected hospital at priority 2, got %+v", candidates[1])
	}
}

func TestSelectMedicalSituationWithoutCriticalVitals(t *testing.T) {
	selector := NewSelector(nil)
	contacts := []Contact{
		{Name: "A", Phone: "1", Availability: Available, ResponseTimeMinutes: 10},
	}
	candidates := selector.Select(normalVitals, SituationMedical, contacts)

	assertSortedAndBounded(t, candidates)
	// Ambulance and hospital from the medical tag, then the family
	// contact because vitals are not critical.
	want := []ResponderKind{KindAmbulance, KindHospital, KindFamily}
	got := kinds(candidates)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v got %v", want, got)
		}
	}
	if candidates[2].Priority != 3 {
		t.Fatalf("family contact after officials should have priority 3, got %d", candidates[2].Priority)
	}
}

func TestSelectAccidentAndFire(t *testing.T) {
	selector := NewSelector(nil)

	accident := selector.Select(normalVitals, SituationAccident, nil)
	assertSortedAndBounded(t, accident)
	if len(accident) == 0 || accident[0].Kind != KindPolice || accident[0].Priority != 1 {
		t.Fatalf("accident should route to police first, got %v", kinds(accident))
	}

	fire := selector.Select(normalVitals, SituationFire, nil)
	assertSortedAndBounded(t, fire)
	if len(fire) == 0 || fire[0].Kind != KindFire || fire[0].Priority != 1 {
		t.Fatalf("fire should route to fire service first, got %v", kinds(fire))
	}
}

func TestSelectCriticalAccidentKeepsInsertionOrderOnTie(t *testing.T) {
	selector := NewSelector(nil)
	candidates := selector.Select(criticalVitals, SituationAccident, nil)

	assertSortedAndBounded(t, candidates)
	// Ambulance and police both carry priority 1; ambulance was appended
	// first and must stay ahead after the stable sort.
	if candidates[0].Kind != KindAmbulance || candidates[1].Kind != KindPolice {
		t.Fatalf("expected ambulance then police, got %v", kinds(candidates))
	}
	if candidates[2].Kind != KindHospital {
		t.Fatalf("expected hospital third, got %v", kinds(candidates))
	}
}

func TestSelectFastestAvailableContact(t *testing.T) {
	selector := NewSelector(nil)
	contacts := []Contact{
		{Name: "A", Phone: "1", Availability: Available, ResponseTimeMinutes: 10},
		{Name: "B", Phone: "2", Availability: Available, ResponseTimeMinutes: 5},
	}
	candidates := selector.Select(normalVitals, SituationNormal, contacts)

	assertSortedAndBounded(t, candidates)
	if len(candidates) != 1 {
		t.Fatalf("expected only the family contact, got %v", kinds(candidates))
	}
	if candidates[0].Name != "B" || candidates[0].Priority != 1 || candidates[0].ETAMinutes != 5 {
		t.Fatalf("expected fastest contact B at priority 1, got %+v", candidates[0])
	}
}

func TestSelectBusyBackupContact(t *testing.T) {
	selector := NewSelector(nil)
	contacts := []Contact{
		{Name: "A", Phone: "1", Availability: Available, ResponseTimeMinutes: 10},
		{Name: "C", Phone: "3", Availability: Busy, ResponseTimeMinutes: 7},
	}
	candidates := selector.Select(normalVitals, SituationNormal, contacts)

	assertSortedAndBounded(t, candidates)
	if len(candidates) != 2 {
		t.Fatalf("expected primary and backup contacts, got %v", kinds(candidates))
	}
	backup := candidates[1]
	if backup.Name != "C" || backup.Priority != 4 {
		t.Fatalf("expected busy backup C at priority 4, got %+v", backup)
	}
	if backup.ETAMinutes != 17 {
		t.Fatalf("busy backup ETA should add 10 minutes, got %d", backup.ETAMinutes)
	}
}

func TestSelectCriticalSkipsAvailableContactButKeepsBackup(t *testing.T) {
	selector := NewSelector(nil)
	contacts := []Contact{
		{Name: "A", Phone: "1", Availability: Available, ResponseTimeMinutes: 5},
		{Name: "C", Phone: "3", Availability: Busy, ResponseTimeMinutes: 7},
	}
	candidates := selector.Select(criticalVitals, SituationNormal, contacts)

	assertSortedAndBounded(t, candidates)
	want := []ResponderKind{KindAmbulance, KindHospital, KindFamily}
	got := kinds(candidates)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v got %v", want, got)
		}
	}
	if candidates[2].Name != "C" || candidates[2].Priority != 4 {
		t.Fatalf("third slot should be the busy backup, got %+v", candidates[2])
	}
}

func TestSelectUnavailableContactsIgnored(t *testing.T) {
	selector := NewSelector(nil)
	contacts := []Contact{
		{Name: "A", Phone: "1", Availability: Unavailable, ResponseTimeMinutes: 2},
	}
	candidates := selector.Select(normalVitals, SituationNormal, contacts)
	if len(candidates) != 0 {
		t.Fatalf("unavailable contacts should yield no candidates, got %v", kinds(candidates))
	}
}

func TestSelectEmptyInputs(t *testing.T) {
	selector := NewSelector(nil)
	candidates := selector.Select(normalVitals, SituationNormal, nil)
	if len(candidates) != 0 {
		t.Fatalf("expected no candidates, got %v", kinds(candidates))
	}
}

func TestSelectMedicalCapsAtThree(t *testing.T) {
	selector := NewSelector(nil)
	contacts := []Contact{
		{Name: "A", Phone: "1", Availability: Available, ResponseTimeMinutes: 5},
		{Name: "C", Phone: "3", Availability: Busy, ResponseTimeMinutes: 7},
	}
	// Medical tag plus non-critical vitals fills all three slots with
	// ambulance, hospital and the available contact; the busy backup
	// must not make the list.
	candidates := selector.Select(normalVitals, SituationMedical, contacts)
	assertSortedAndBounded(t, candidates)
	if len(candidates) != 3 {
		t.Fatalf("expected exactly 3 candidates, got %d", len(candidates))
	}
	for _, c := range candidates {
		if c.Priority == 4 {
			t.Fatalf("busy backup should not be listed: %+v", candidates)
		}
	}
}

func TestSelectCustomDirectory(t *testing.T) {
	directory := Directory{
		KindAmbulance: {Name: "County EMS", Phone: "108", ETAMinutes: 6},
		KindHospital:  {Name: "St. Mary ED", Phone: "108", ETAMinutes: 14},
	}
	selector := NewSelector(directory)
	candidates := selector.Select(criticalVitals, SituationNormal, nil)
	if candidates[0].Name != "County EMS" || candidates[0].ETAMinutes != 6 {
		t.Fatalf("custom directory not used: %+v", candidates[0])
	}
}
