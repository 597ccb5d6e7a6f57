package store

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Conversation statuses.
const (
	ConversationActive = "active"
	ConversationClosed = "closed"
)

// Message sender roles.
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleSystem  = "system"
)

// Consultation statuses.
const (
	ConsultationRequested = "requested"
	ConsultationConfirmed = "confirmed"
	ConsultationCompleted = "completed"
	ConsultationCancelled = "cancelled"
)

// CreateConversation opens a thread between a patient and a doctor.
func (d *Database) CreateConversation(patientID, doctorID uint) (*Conversation, error) {
	conv := &Conversation{
		PatientID: patientID,
		DoctorID:  doctorID,
		Status:    ConversationActive,
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.gorm.Create(conv).Error; err != nil {
		return nil, err
	}
	return conv, nil
}

// GetConversation fetches a conversation by id.
func (d *Database) GetConversation(id uint) (*Conversation, error) {
	var conv Conversation
	if err := d.gorm.First(&conv, id).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

// AppendMessage adds a message to a conversation and bumps its
// last-message timestamp in one transaction.
func (d *Database) AppendMessage(msg *Message) error {
	if msg == nil {
		return errors.New("message is nil")
	}
	msg.Body = strings.TrimSpace(msg.Body)
	if msg.Body == "" {
		return errors.New("message body required")
	}
	if msg.ConversationID == 0 {
		return errors.New("conversation id required")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gorm.Transaction(func(tx *gorm.DB) error {
		var conv Conversation
		if err := tx.First(&conv, msg.ConversationID).Error; err != nil {
			return err
		}
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		now := time.Now().UTC()
		return tx.Model(&conv).Update("last_message_at", &now).Error
	})
}

// ListMessages returns a conversation's messages in chronological order.
func (d *Database) ListMessages(conversationID uint, offset, limit int) ([]Message, int64, error) {
	var total int64
	if err := d.gorm.Model(&Message{}).
		Where("conversation_id = ?", conversationID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []Message
	query := d.gorm.Where("conversation_id = ?", conversationID).
		Order("created_at ASC").Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// MarkMessagesRead stamps unread messages in the conversation as read.
func (d *Database) MarkMessagesRead(conversationID uint, role string) error {
	now := time.Now().UTC()
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gorm.Model(&Message{}).
		Where("conversation_id = ? AND sender_role <> ? AND read_at IS NULL", conversationID, role).
		Update("read_at", &now).Error
}

// CreateConsultation books a consultation on an existing conversation.
func (d *Database) CreateConsultation(c *Consultation) error {
	if c == nil {
		return errors.New("consultation is nil")
	}
	if c.Status == "" {
		c.Status = ConsultationRequested
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gorm.Create(c).Error
}

// GetConsultation fetches a consultation by id.
func (d *Database) GetConsultation(id uint) (*Consultation, error) {
	var c Consultation
	if err := d.gorm.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateConsultationStatus transitions a consultation's status.
func (d *Database) UpdateConsultationStatus(id uint, status string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gorm.Model(&Consultation{}).Where("id = ?", id).
		Update("status", status).Error
}

// SaveMedicalFile records uploaded file metadata.
func (d *Database) SaveMedicalFile(f *MedicalFile) error {
	if f == nil {
		return errors.New("medical file is nil")
	}
	if strings.TrimSpace(f.FileName) == "" {
		return errors.New("file name required")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gorm.Create(f).Error
}

// ListMedicalFiles returns file metadata for a patient, newest first.
func (d *Database) ListMedicalFiles(patientID uint) ([]MedicalFile, error) {
	var rows []MedicalFile
	if err := d.gorm.Where("patient_id = ?", patientID).
		Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
