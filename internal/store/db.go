package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database wraps the GORM DB handle and exposes repository helpers.
type Database struct {
	gorm *gorm.DB
	mu   sync.Mutex
}

// Open initializes the SQLite-backed database at the provided path.
func Open(path string, silent bool) (*Database, error) {
	cfg := &gorm.Config{}
	if silent {
		cfg.Logger = logger.Default.LogMode(logger.Silent)
	}
	db, err := gorm.Open(sqlite.Open(path), cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(
		&Patient{}, &Doctor{}, &Conversation{}, &Message{}, &Consultation{},
		&MedicalFile{}, &EmergencyBroadcast{}, &BroadcastRecipient{}, &Assessment{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	if err := db.Exec("PRAGMA journal_mode=WAL").Error; err != nil {
		logrus.WithError(err).Warn("enable WAL mode")
	}
	if err := db.Exec("PRAGMA synchronous=NORMAL").Error; err != nil {
		logrus.WithError(err).Warn("set synchronous pragma")
	}
	return &Database{gorm: db}, nil
}

// GORM exposes the raw gorm.DB handle.
func (d *Database) GORM() *gorm.DB {
	return d.gorm
}

// Close closes the underlying database connection.
func (d *Database) Close() error {
	if d == nil {
		return nil
	}
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CreatePatient inserts a new patient profile.
func (d *Database) CreatePatient(patient *Patient) error {
	if patient == nil {
		return errors.New("patient is nil")
	}
	patient.FullName = strings.TrimSpace(patient.FullName)
	patient.Phone = strings.TrimSpace(patient.Phone)
	if patient.Phone == "" {
		return errors.New("patient phone required")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gorm.Create(patient).Error
}

// GetPatient fetches a patient by id.
func (d *Database) GetPatient(id uint) (*Patient, error) {
	var patient Patient
	if err := d.gorm.First(&patient, id).Error; err != nil {
		return nil, err
	}
	return &patient, nil
}

// ListPatients returns patient profiles ordered by creation time.
func (d *Database) ListPatients(offset, limit int) ([]Patient, int64, error) {
	var total int64
	if err := d.gorm.Model(&Patient{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []Patient
	query := d.gorm.Order("created_at DESC").Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// CreateDoctor inserts a new doctor profile.
func (d *Database) CreateDoctor(doctor *Doctor) error {
	if doctor == nil {
		return errors.New("doctor is nil")
	}
	doctor.FullName = strings.TrimSpace(doctor.FullName)
	doctor.Phone = strings.TrimSpace(doctor.Phone)
	if doctor.Phone == "" {
		return errors.New("doctor phone required")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gorm.Create(doctor).Error
}

// GetDoctor fetches a doctor by id.
func (d *Database) GetDoctor(id uint) (*Doctor, error) {
	var doctor Doctor
	if err := d.gorm.First(&doctor, id).Error; err != nil {
		return nil, err
	}
	return &doctor, nil
}

// ListDoctors returns doctor profiles, optionally only the available ones.
func (d *Database) ListDoctors(specialty string, availableOnly bool) ([]Doctor, error) {
	query := d.gorm.Model(&Doctor{}).Order("rating DESC")
	if specialty = strings.TrimSpace(specialty); specialty != "" {
		query = query.Where("specialty = ?", specialty)
	}
	if availableOnly {
		query = query.Where("available = ?", true)
	}
	var rows []Doctor
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SaveAssessment records the outcome of a triage scoring call.
func (d *Database) SaveAssessment(a *Assessment) error {
	if a == nil {
		return errors.New("assessment is nil")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gorm.Create(a).Error
}

// ListAssessments pages through persisted triage assessments, newest first.
func (d *Database) ListAssessments(offset, limit int) ([]Assessment, int64, error) {
	var total int64
	if err := d.gorm.Model(&Assessment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []Assessment
	query := d.gorm.Order("created_at DESC").Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
