package routing

import (
	"fmt"
	"sort"
)

// ResponderKind identifies the class of a routing candidate.
type ResponderKind string

const (
	KindAmbulance ResponderKind = "ambulance"
	KindHospital  ResponderKind = "hospital"
	KindPolice    ResponderKind = "police"
	KindFire      ResponderKind = "fire"
	KindFamily    ResponderKind = "family"
)

// Candidate is one possible destination for an emergency routing decision.
// Candidates are rebuilt from scratch on every selection; they are never
// mutated in place.
type Candidate struct {
	Kind       ResponderKind `json:"kind"`
	Name       string        `json:"name"`
	Phone      string        `json:"phone"`
	ETAMinutes int           `json:"eta_minutes"`
	Priority   int           `json:"priority"`
	Rationale  string        `json:"rationale"`
}

// Responder is a dispatchable service in the directory.
type Responder struct {
	Name       string
	Phone      string
	ETAMinutes int
}

// Directory maps responder kinds to their dispatch details.
type Directory map[ResponderKind]Responder

// DefaultDirectory returns the built-in responder directory used when no
// deployment-specific one is configured.
func DefaultDirectory() Directory {
	return Directory{
		KindAmbulance: {Name: "Emergency Medical Services", Phone: "911", ETAMinutes: 8},
		KindHospital:  {Name: "Nearest Emergency Department", Phone: "911", ETAMinutes: 12},
		KindPolice:    {Name: "Police Dispatch", Phone: "911", ETAMinutes: 10},
		KindFire:      {Name: "Fire & Rescue", Phone: "911", ETAMinutes: 9},
	}
}

const (
	maxCandidates  = 3
	busyBackupLag  = 10
	backupPriority = 4
)

// Selector ranks responder candidates for an emergency snapshot.
type Selector struct {
	directory Directory
}

// NewSelector constructs a selector over the provided directory. A nil
// directory falls back to the defaults.
func NewSelector(directory Directory) *Selector {
	if directory == nil {
		directory = DefaultDirectory()
	}
	return &Selector{directory: directory}
}

// Select ranks responder candidates for the given vitals, situation and
// contact list. It returns at most three candidates sorted by ascending
// priority. Insertion order breaks priority ties, so official services
// added first stay ahead of equal-priority contacts. Empty contact lists
// simply yield fewer candidates; there are no error conditions.
func (s *Selector) Select(vitals Vitals, situation Situation, contacts []Contact) []Candidate {
	critical := vitals.Critical()

	var candidates []Candidate

	if critical || situation == SituationMedical {
		candidates = append(candidates,
			s.official(KindAmbulance, 1, rationaleForAmbulance(vitals, situation)),
			s.official(KindHospital, 2, "closest emergency department notified for incoming patient"),
		)
	}
	if situation == SituationAccident {
		candidates = append(candidates, s.official(KindPolice, 1, "accident reported; police dispatch handles scene control"))
	}
	if situation == SituationFire {
		candidates = append(candidates, s.official(KindFire, 1, "fire reported; fire and rescue dispatched first"))
	}

	if !critical || len(candidates) == 0 {
		if contact, ok := bestAvailableContact(contacts); ok {
			priority := 3
			if len(candidates) == 0 {
				priority = 1
			}
			candidates = append(candidates, Candidate{
				Kind:       KindFamily,
				Name:       contact.Name,
				Phone:      contact.Phone,
				ETAMinutes: contact.ResponseTimeMinutes,
				Priority:   priority,
				Rationale:  fmt.Sprintf("fastest available contact, %d min away", contact.ResponseTimeMinutes),
			})
		}
	}

	if len(candidates) < maxCandidates {
		if contact, ok := firstBusyContact(contacts); ok {
			candidates = append(candidates, Candidate{
				Kind:       KindFamily,
				Name:       contact.Name,
				Phone:      contact.Phone,
				ETAMinutes: contact.ResponseTimeMinutes + busyBackupLag,
				Priority:   backupPriority,
				Rationale:  "backup contact, currently busy",
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority < candidates[j].Priority
	})
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}
	return candidates
}

func (s *Selector) official(kind ResponderKind, priority int, rationale string) Candidate {
	responder := s.directory[kind]
	return Candidate{
		Kind:       kind,
		Name:       responder.Name,
		Phone:      responder.Phone,
		ETAMinutes: responder.ETAMinutes,
		Priority:   priority,
		Rationale:  rationale,
	}
}

func rationaleForAmbulance(vitals Vitals, situation Situation) string {
	if vitals.Critical() {
		return "vital signs in critical range; ambulance dispatched first"
	}
	if situation == SituationMedical {
		return "medical emergency reported; ambulance dispatched first"
	}
	return "ambulance dispatched"
}

// bestAvailableContact picks the available contact with the lowest response
// time. It returns false when no contact is available.
func bestAvailableContact(contacts []Contact) (Contact, bool) {
	var best Contact
	found := false
	for _, contact := range contacts {
		if contact.Availability != Available {
			continue
		}
		if !found || contact.ResponseTimeMinutes < best.ResponseTimeMinutes {
			best = contact
			found = true
		}
	}
	return best, found
}

func firstBusyContact(contacts []Contact) (Contact, bool) {
	for _, contact := range contacts {
		if contact.Availability == Busy {
			return contact, true
		}
	}
	return Contact{}, false
}
