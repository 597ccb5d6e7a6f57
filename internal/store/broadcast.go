package store

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Broadcast statuses.
const (
	BroadcastActive   = "active"
	BroadcastResolved = "resolved"
)

// Recipient notification statuses.
const (
	RecipientPending  = "pending"
	RecipientNotified = "notified"
	RecipientAcked    = "acked"
)

// CreateBroadcast persists an SOS broadcast together with its recipients.
func (d *Database) CreateBroadcast(b *EmergencyBroadcast, recipients []BroadcastRecipient) error {
	if b == nil {
		return errors.New("broadcast is nil")
	}
	if b.Status == "" {
		b.Status = BroadcastActive
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gorm.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(b).Error; err != nil {
			return err
		}
		for i := range recipients {
			recipients[i].BroadcastID = b.ID
			if recipients[i].Status == "" {
				recipients[i].Status = RecipientPending
			}
		}
		if len(recipients) == 0 {
			return nil
		}
		return tx.Create(&recipients).Error
	})
}

// GetBroadcast fetches a broadcast by its public id.
func (d *Database) GetBroadcast(publicID string) (*EmergencyBroadcast, error) {
	var b EmergencyBroadcast
	if err := d.gorm.Where("public_id = ?", publicID).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// ListBroadcasts pages through broadcasts, newest first. When activeOnly is
// set only unresolved broadcasts are returned.
func (d *Database) ListBroadcasts(activeOnly bool, offset, limit int) ([]EmergencyBroadcast, int64, error) {
	query := d.gorm.Model(&EmergencyBroadcast{})
	if activeOnly {
		query = query.Where("status = ?", BroadcastActive)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []EmergencyBroadcast
	query = query.Order("created_at DESC").Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListRecipients returns the recipients attached to a broadcast.
func (d *Database) ListRecipients(broadcastID uint) ([]BroadcastRecipient, error) {
	var rows []BroadcastRecipient
	if err := d.gorm.Where("broadcast_id = ?", broadcastID).
		Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ResolveBroadcast marks the broadcast resolved.
func (d *Database) ResolveBroadcast(publicID string) (*EmergencyBroadcast, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var b EmergencyBroadcast
	if err := d.gorm.Where("public_id = ?", publicID).First(&b).Error; err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if err := d.gorm.Model(&b).Updates(map[string]any{
		"status":      BroadcastResolved,
		"resolved_at": &now,
	}).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// MarkRecipientNotified stamps a recipient as notified.
func (d *Database) MarkRecipientNotified(recipientID uint) error {
	now := time.Now().UTC()
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gorm.Model(&BroadcastRecipient{}).Where("id = ?", recipientID).
		Updates(map[string]any{"status": RecipientNotified, "notified_at": &now}).Error
}
