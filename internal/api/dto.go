package api

import (
	"time"

	"lifeline-ai/backend/internal/routing"
	"lifeline-ai/backend/internal/store"
	"lifeline-ai/backend/internal/triage"
)

// TriageRequest carries a free-text symptom description. When a
// conversation id is supplied the exchange is appended to that thread.
type TriageRequest struct {
	Text           string `json:"text" binding:"required"`
	ConversationID uint   `json:"conversation_id"`
}

// TriageResponse wraps the structured assessment. Escalation is set only
// for critical severity and must be rendered as a distinguished,
// higher-priority message by the client.
type TriageResponse struct {
	triage.Response
	Escalation       string `json:"escalation,omitempty"`
	ProcessingTimeMs int64  `json:"processing_time_ms"`
}

// RouteRequest is the emergency snapshot routed against.
type RouteRequest struct {
	Vitals    routing.Vitals    `json:"vitals"`
	Situation routing.Situation `json:"situation"`
	Contacts  []routing.Contact `json:"contacts"`
}

// VitalsStatus is the display classification derived from a vitals snapshot.
type VitalsStatus struct {
	Critical bool `json:"critical"`
	Abnormal bool `json:"abnormal"`
}

// RouteResponse carries ranked responder candidates plus the vitals
// classification used for display.
type RouteResponse struct {
	Candidates []routing.Candidate `json:"candidates"`
	Vitals     VitalsStatus        `json:"vitals_status"`
}

// VitalsResponse is one simulated sensor sample.
type VitalsResponse struct {
	Vitals routing.Vitals `json:"vitals"`
	Status VitalsStatus   `json:"status"`
	At     time.Time      `json:"at"`
}

// PatientRequest creates or updates a patient profile.
type PatientRequest struct {
	FullName         string   `json:"full_name" binding:"required"`
	Phone            string   `json:"phone" binding:"required"`
	Email            string   `json:"email"`
	BloodType        string   `json:"blood_type"`
	Allergies        []string `json:"allergies"`
	EmergencyContact string   `json:"emergency_contact"`
}

// PatientDTO is the API representation of a patient.
type PatientDTO struct {
	ID               uint      `json:"id"`
	FullName         string    `json:"full_name"`
	Phone            string    `json:"phone"`
	Email            string    `json:"email"`
	BloodType        string    `json:"blood_type"`
	Allergies        []string  `json:"allergies"`
	EmergencyContact string    `json:"emergency_contact"`
	CreatedAt        time.Time `json:"created_at"`
}

// PatientFromModel converts a store.Patient into the DTO representation.
func PatientFromModel(p store.Patient) PatientDTO {
	return PatientDTO{
		ID:               p.ID,
		FullName:         p.FullName,
		Phone:            p.Phone,
		Email:            p.Email,
		BloodType:        p.BloodType,
		Allergies:        p.Allergies(),
		EmergencyContact: p.EmergencyContact,
		CreatedAt:        p.CreatedAt,
	}
}

// PatientsResponse is the paginated patient listing.
type PatientsResponse struct {
	Items []PatientDTO `json:"items"`
	Total int64        `json:"total"`
}

// DoctorRequest creates a doctor profile.
type DoctorRequest struct {
	FullName  string  `json:"full_name" binding:"required"`
	Specialty string  `json:"specialty"`
	Phone     string  `json:"phone" binding:"required"`
	Email     string  `json:"email"`
	Available bool    `json:"available"`
	Rating    float64 `json:"rating"`
}

// DoctorDTO is the API representation of a doctor.
type DoctorDTO struct {
	ID        uint      `json:"id"`
	FullName  string    `json:"full_name"`
	Specialty string    `json:"specialty"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Available bool      `json:"available"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// DoctorFromModel converts a store.Doctor into a DTO.
func DoctorFromModel(d store.Doctor) DoctorDTO {
	return DoctorDTO{
		ID:        d.ID,
		FullName:  d.FullName,
		Specialty: d.Specialty,
		Phone:     d.Phone,
		Email:     d.Email,
		Available: d.Available,
		Rating:    d.Rating,
		CreatedAt: d.CreatedAt,
	}
}

// ConversationRequest opens a thread between a patient and a doctor.
type ConversationRequest struct {
	PatientID uint `json:"patient_id" binding:"required"`
	DoctorID  uint `json:"doctor_id" binding:"required"`
}

// ConversationDTO is the API representation of a conversation.
type ConversationDTO struct {
	ID            uint       `json:"id"`
	PatientID     uint       `json:"patient_id"`
	DoctorID      uint       `json:"doctor_id"`
	Status        string     `json:"status"`
	LastMessageAt *time.Time `json:"last_message_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ConversationFromModel converts a store.Conversation into a DTO.
func ConversationFromModel(c store.Conversation) ConversationDTO {
	return ConversationDTO{
		ID:            c.ID,
		PatientID:     c.PatientID,
		DoctorID:      c.DoctorID,
		Status:        c.Status,
		LastMessageAt: c.LastMessageAt,
		CreatedAt:     c.CreatedAt,
	}
}

// MessageRequest appends a message to a conversation.
type MessageRequest struct {
	SenderRole string `json:"sender_role" binding:"required"`
	Body       string `json:"body" binding:"required"`
}

// MessageDTO is the API representation of a message.
type MessageDTO struct {
	ID             uint       `json:"id"`
	ConversationID uint       `json:"conversation_id"`
	SenderRole     string     `json:"sender_role"`
	Body           string     `json:"body"`
	Severity       string     `json:"severity,omitempty"`
	ReadAt         *time.Time `json:"read_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

// MessageFromModel converts a store.Message into a DTO.
func MessageFromModel(m store.Message) MessageDTO {
	return MessageDTO{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderRole:     m.SenderRole,
		Body:           m.Body,
		Severity:       m.Severity,
		ReadAt:         m.ReadAt,
		CreatedAt:      m.CreatedAt,
	}
}

// MessagesResponse is the paginated message listing.
type MessagesResponse struct {
	Items []MessageDTO `json:"items"`
	Total int64        `json:"total"`
}

// ConsultationRequest books a consultation.
type ConsultationRequest struct {
	ConversationID uint      `json:"conversation_id" binding:"required"`
	PatientID      uint      `json:"patient_id" binding:"required"`
	DoctorID       uint      `json:"doctor_id" binding:"required"`
	ScheduledAt    time.Time `json:"scheduled_at" binding:"required"`
	Notes          string    `json:"notes"`
}

// ConsultationDTO is the API representation of a consultation.
type ConsultationDTO struct {
	ID             uint      `json:"id"`
	ConversationID uint      `json:"conversation_id"`
	PatientID      uint      `json:"patient_id"`
	DoctorID       uint      `json:"doctor_id"`
	ScheduledAt    time.Time `json:"scheduled_at"`
	Status         string    `json:"status"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
}

// ConsultationFromModel converts a store.Consultation into a DTO.
func ConsultationFromModel(c store.Consultation) ConsultationDTO {
	return ConsultationDTO{
		ID:             c.ID,
		ConversationID: c.ConversationID,
		PatientID:      c.PatientID,
		DoctorID:       c.DoctorID,
		ScheduledAt:    c.ScheduledAt,
		Status:         c.Status,
		Notes:          c.Notes,
		CreatedAt:      c.CreatedAt,
	}
}

// MedicalFileRequest registers uploaded file metadata.
type MedicalFileRequest struct {
	PatientID      uint   `json:"patient_id" binding:"required"`
	ConversationID uint   `json:"conversation_id"`
	FileName       string `json:"file_name" binding:"required"`
	MimeType       string `json:"mime_type"`
	SizeBytes      int64  `json:"size_bytes"`
	StorageURL     string `json:"storage_url"`
}

// MedicalFileDTO is the API representation of file metadata.
type MedicalFileDTO struct {
	ID             uint      `json:"id"`
	PatientID      uint      `json:"patient_id"`
	ConversationID uint      `json:"conversation_id"`
	FileName       string    `json:"file_name"`
	MimeType       string    `json:"mime_type"`
	SizeBytes      int64     `json:"size_bytes"`
	StorageURL     string    `json:"storage_url"`
	CreatedAt      time.Time `json:"created_at"`
}

// MedicalFileFromModel converts a store.MedicalFile into a DTO.
func MedicalFileFromModel(f store.MedicalFile) MedicalFileDTO {
	return MedicalFileDTO{
		ID:             f.ID,
		PatientID:      f.PatientID,
		ConversationID: f.ConversationID,
		FileName:       f.FileName,
		MimeType:       f.MimeType,
		SizeBytes:      f.SizeBytes,
		StorageURL:     f.StorageURL,
		CreatedAt:      f.CreatedAt,
	}
}

// BroadcastContact is one contact to notify for a broadcast.
type BroadcastContact struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Channel string `json:"channel"`
}

// BroadcastRequest raises an SOS broadcast.
type BroadcastRequest struct {
	PatientID  uint               `json:"patient_id"`
	Situation  routing.Situation  `json:"situation" binding:"required"`
	Severity   triage.Severity    `json:"severity"`
	Message    string             `json:"message" binding:"required"`
	Latitude   float64            `json:"latitude"`
	Longitude  float64            `json:"longitude"`
	Address    string             `json:"address"`
	Recipients []BroadcastContact `json:"recipients"`
}

// BroadcastDTO is the API representation of a broadcast.
type BroadcastDTO struct {
	PublicID   string                  `json:"public_id"`
	PatientID  uint                    `json:"patient_id"`
	Situation  string                  `json:"situation"`
	Severity   string                  `json:"severity"`
	Message    string                  `json:"message"`
	Latitude   float64                 `json:"latitude"`
	Longitude  float64                 `json:"longitude"`
	Address    string                  `json:"address"`
	Status     string                  `json:"status"`
	Recipients []BroadcastRecipientDTO `json:"recipients,omitempty"`
	ResolvedAt *time.Time              `json:"resolved_at"`
	CreatedAt  time.Time               `json:"created_at"`
}

// BroadcastRecipientDTO is the API representation of a broadcast recipient.
type BroadcastRecipientDTO struct {
	ID         uint       `json:"id"`
	Name       string     `json:"name"`
	Phone      string     `json:"phone"`
	Channel    string     `json:"channel"`
	Status     string     `json:"status"`
	NotifiedAt *time.Time `json:"notified_at"`
}

// BroadcastFromModel converts a store.EmergencyBroadcast into a DTO.
func BroadcastFromModel(b store.EmergencyBroadcast) BroadcastDTO {
	return BroadcastDTO{
		PublicID:   b.PublicID,
		PatientID:  b.PatientID,
		Situation:  b.Situation,
		Severity:   b.Severity,
		Message:    b.Message,
		Latitude:   b.Latitude,
		Longitude:  b.Longitude,
		Address:    b.Address,
		Status:     b.Status,
		ResolvedAt: b.ResolvedAt,
		CreatedAt:  b.CreatedAt,
	}
}

// RecipientFromModel converts a store.BroadcastRecipient into a DTO.
func RecipientFromModel(r store.BroadcastRecipient) BroadcastRecipientDTO {
	return BroadcastRecipientDTO{
		ID:         r.ID,
		Name:       r.ContactName,
		Phone:      r.ContactPhone,
		Channel:    r.Channel,
		Status:     r.Status,
		NotifiedAt: r.NotifiedAt,
	}
}

// BroadcastsResponse is the paginated broadcast listing.
type BroadcastsResponse struct {
	Items []BroadcastDTO `json:"items"`
	Total int64          `json:"total"`
}

// AssessmentDTO is the API representation of a persisted triage assessment.
type AssessmentDTO struct {
	ID               uint      `json:"id"`
	ConversationID   uint      `json:"conversation_id,omitempty"`
	InputText        string    `json:"input_text"`
	Matched          bool      `json:"matched"`
	ConditionID      string    `json:"condition_id,omitempty"`
	Title            string    `json:"title"`
	Score            int       `json:"score"`
	Severity         string    `json:"severity"`
	Confidence       int       `json:"confidence"`
	ProcessingTimeMs int64     `json:"processing_time_ms"`
	CreatedAt        time.Time `json:"created_at"`
}

// AssessmentFromModel converts a store.Assessment into a DTO.
func AssessmentFromModel(a store.Assessment) AssessmentDTO {
	return AssessmentDTO{
		ID:               a.ID,
		ConversationID:   a.ConversationID,
		InputText:        a.InputText,
		Matched:          a.Matched,
		ConditionID:      a.ConditionID,
		Title:            a.Title,
		Score:            a.Score,
		Severity:         a.Severity,
		Confidence:       a.Confidence,
		ProcessingTimeMs: a.ProcessingTimeMs,
		CreatedAt:        a.CreatedAt,
	}
}

// AssessmentsResponse is the paginated assessment listing.
type AssessmentsResponse struct {
	Items []AssessmentDTO `json:"items"`
	Total int64           `json:"total"`
}
