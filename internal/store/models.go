package store

import (
	"encoding/json"
	"strings"
	"time"
)

// Patient is a MedConnect patient profile.
type Patient struct {
	ID               uint   `gorm:"primaryKey"`
	FullName         string `gorm:"size:128;index"`
	Phone            string `gorm:"size:32;uniqueIndex"`
	Email            string `gorm:"size:128"`
	BloodType        string `gorm:"size:8"`
	AllergiesJSON    string `gorm:"type:text"`
	EmergencyContact string `gorm:"size:32"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// SetAllergies persists the allergy list as JSON.
func (p *Patient) SetAllergies(allergies []string) {
	if allergies == nil {
		p.AllergiesJSON = "[]"
		return
	}
	payload, _ := json.Marshal(allergies)
	p.AllergiesJSON = string(payload)
}

// Allergies returns the unmarshalled allergy list.
func (p *Patient) Allergies() []string {
	if strings.TrimSpace(p.AllergiesJSON) == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(p.AllergiesJSON), &out); err != nil {
		return nil
	}
	return out
}

// Doctor is a MedConnect physician profile.
type Doctor struct {
	ID        uint   `gorm:"primaryKey"`
	FullName  string `gorm:"size:128;index"`
	Specialty string `gorm:"size:64;index"`
	Phone     string `gorm:"size:32;uniqueIndex"`
	Email     string `gorm:"size:128"`
	Available bool   `gorm:"index"`
	Rating    float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Conversation links a patient with a doctor for a message thread.
type Conversation struct {
	ID            uint   `gorm:"primaryKey"`
	PatientID     uint   `gorm:"index"`
	DoctorID      uint   `gorm:"index"`
	Status        string `gorm:"size:32;index"`
	LastMessageAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Message is one entry in a conversation thread. SenderRole distinguishes
// patient, doctor and system (triage) messages.
type Message struct {
	ID             uint   `gorm:"primaryKey"`
	ConversationID uint   `gorm:"index"`
	SenderRole     string `gorm:"size:16;index"`
	Body           string `gorm:"type:text"`
	Severity       string `gorm:"size:16"`
	ReadAt         *time.Time
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

// Consultation tracks a scheduled doctor consultation.
type Consultation struct {
	ID             uint `gorm:"primaryKey"`
	ConversationID uint `gorm:"index"`
	PatientID      uint `gorm:"index"`
	DoctorID       uint `gorm:"index"`
	ScheduledAt    time.Time
	Status         string `gorm:"size:32;index"`
	Notes          string `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// MedicalFile stores metadata for an uploaded medical document. The bytes
// themselves live in external object storage; only the pointer is kept here.
type MedicalFile struct {
	ID             uint   `gorm:"primaryKey"`
	PatientID      uint   `gorm:"index"`
	ConversationID uint   `gorm:"index"`
	FileName       string `gorm:"size:256"`
	MimeType       string `gorm:"size:64"`
	SizeBytes      int64
	StorageURL     string    `gorm:"size:512"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

// EmergencyBroadcast is an SOS broadcast sent to a patient's contacts.
type EmergencyBroadcast struct {
	ID         uint   `gorm:"primaryKey"`
	PublicID   string `gorm:"size:64;uniqueIndex"`
	PatientID  uint   `gorm:"index"`
	Situation  string `gorm:"size:16;index"`
	Severity   string `gorm:"size:16"`
	Message    string `gorm:"type:text"`
	Latitude   float64
	Longitude  float64
	Address    string `gorm:"size:256"`
	Status     string `gorm:"size:16;index"`
	ResolvedAt *time.Time
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

// BroadcastRecipient is one contact notified by a broadcast.
type BroadcastRecipient struct {
	ID           uint   `gorm:"primaryKey"`
	BroadcastID  uint   `gorm:"index"`
	ContactName  string `gorm:"size:128"`
	ContactPhone string `gorm:"size:32"`
	Channel      string `gorm:"size:16"`
	Status       string `gorm:"size:16;index"`
	NotifiedAt   *time.Time
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

// Assessment is the persisted audit row for one triage scoring call.
type Assessment struct {
	ID               uint   `gorm:"primaryKey"`
	ConversationID   uint   `gorm:"index"`
	InputText        string `gorm:"type:text"`
	Matched          bool
	ConditionID      string `gorm:"size:64;index"`
	Title            string `gorm:"size:128"`
	Score            int
	Severity         string `gorm:"size:16;index"`
	Confidence       int
	ProcessingTimeMs int64
	CreatedAt        time.Time `gorm:"autoCreateTime"`
}
