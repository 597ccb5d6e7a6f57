package routing

// Vitals is a point-in-time snapshot of the monitored vital signs.
type Vitals struct {
	HeartRate   float64 `json:"heart_rate"`
	SpO2        float64 `json:"spo2"`
	Temperature float64 `json:"temperature"`
}

// Critical reports whether any vital sign is in the critical band.
func (v Vitals) Critical() bool {
	return v.HeartRate > 120 || v.HeartRate < 50 || v.SpO2 < 90 || v.Temperature > 39
}

// Abnormal reports whether any vital sign is outside the normal band.
// This is a display classification only; routing decisions key off
// Critical.
func (v Vitals) Abnormal() bool {
	return v.HeartRate > 100 || v.HeartRate < 60 || v.SpO2 < 95 || v.Temperature > 37.5
}

// Situation tags the kind of emergency being routed.
type Situation string

const (
	SituationNormal   Situation = "normal"
	SituationMedical  Situation = "medical"
	SituationAccident Situation = "accident"
	SituationFire     Situation = "fire"
)

// Valid reports whether the situation tag is a known value.
func (s Situation) Valid() bool {
	switch s {
	case SituationNormal, SituationMedical, SituationAccident, SituationFire:
		return true
	}
	return false
}

// Availability describes whether a family contact can respond.
type Availability string

const (
	Available   Availability = "available"
	Busy        Availability = "busy"
	Unavailable Availability = "unavailable"
)

// Contact is a family or friend that can be routed to as a responder.
type Contact struct {
	Name                string       `json:"name"`
	Phone               string       `json:"phone"`
	Availability        Availability `json:"availability"`
	ResponseTimeMinutes int          `json:"response_time_minutes"`
	DistanceKm          float64      `json:"distance_km"`
}
