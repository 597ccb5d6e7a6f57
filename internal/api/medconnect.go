package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"lifeline-ai/backend/internal/store"
)

func (s *Server) handleCreatePatient(c *gin.Context) {
	var req PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	patient := store.Patient{
		FullName:         req.FullName,
		Phone:            req.Phone,
		Email:            req.Email,
		BloodType:        req.BloodType,
		EmergencyContact: req.EmergencyContact,
	}
	patient.SetAllergies(req.Allergies)
	if err := s.db.CreatePatient(&patient); err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusCreated, PatientFromModel(patient))
}

func (s *Server) handleListPatients(c *gin.Context) {
	offset, limit := pageParams(c)
	rows, total, err := s.db.ListPatients(offset, limit)
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	items := make([]PatientDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, PatientFromModel(row))
	}
	c.JSON(http.StatusOK, PatientsResponse{Items: items, Total: total})
}

func (s *Server) handleGetPatient(c *gin.Context) {
	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	patient, err := s.db.GetPatient(id)
	if err != nil {
		s.renderNotFoundOr500(c, err, fmt.Errorf("patient %d not found", id))
		return
	}
	c.JSON(http.StatusOK, PatientFromModel(*patient))
}

func (s *Server) handleCreateDoctor(c *gin.Context) {
	var req DoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	doctor := store.Doctor{
		FullName:  req.FullName,
		Specialty: req.Specialty,
		Phone:     req.Phone,
		Email:     req.Email,
		Available: req.Available,
		Rating:    req.Rating,
	}
	if err := s.db.CreateDoctor(&doctor); err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusCreated, DoctorFromModel(doctor))
}

func (s *Server) handleListDoctors(c *gin.Context) {
	availableOnly := strings.EqualFold(c.Query("available"), "true")
	rows, err := s.db.ListDoctors(c.Query("specialty"), availableOnly)
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	items := make([]DoctorDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, DoctorFromModel(row))
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) handleGetDoctor(c *gin.Context) {
	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	doctor, err := s.db.GetDoctor(id)
	if err != nil {
		s.renderNotFoundOr500(c, err, fmt.Errorf("doctor %d not found", id))
		return
	}
	c.JSON(http.StatusOK, DoctorFromModel(*doctor))
}

func (s *Server) handleCreateConversation(c *gin.Context) {
	var req ConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	if _, err := s.db.GetPatient(req.PatientID); err != nil {
		s.renderNotFoundOr500(c, err, fmt.Errorf("patient %d not found", req.PatientID))
		return
	}
	if _, err := s.db.GetDoctor(req.DoctorID); err != nil {
		s.renderNotFoundOr500(c, err, fmt.Errorf("doctor %d not found", req.DoctorID))
		return
	}
	conv, err := s.db.CreateConversation(req.PatientID, req.DoctorID)
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusCreated, ConversationFromModel(*conv))
}

func (s *Server) handleGetConversation(c *gin.Context) {
	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	conv, err := s.db.GetConversation(id)
	if err != nil {
		s.renderNotFoundOr500(c, err, fmt.Errorf("conversation %d not found", id))
		return
	}
	c.JSON(http.StatusOK, ConversationFromModel(*conv))
}

func (s *Server) handleListMessages(c *gin.Context) {
	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	offset, limit := pageParams(c)
	rows, total, err := s.db.ListMessages(id, offset, limit)
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	items := make([]MessageDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, MessageFromModel(row))
	}
	c.JSON(http.StatusOK, MessagesResponse{Items: items, Total: total})
}

func (s *Server) handlePostMessage(c *gin.Context) {
	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	switch req.SenderRole {
	case store.RolePatient, store.RoleDoctor, store.RoleSystem:
	default:
		s.renderError(c, http.StatusBadRequest, fmt.Errorf("unknown sender role %q", req.SenderRole))
		return
	}
	msg := store.Message{
		ConversationID: id,
		SenderRole:     req.SenderRole,
		Body:           req.Body,
	}
	if err := s.db.AppendMessage(&msg); err != nil {
		s.renderNotFoundOr500(c, err, fmt.Errorf("conversation %d not found", id))
		return
	}
	c.JSON(http.StatusCreated, MessageFromModel(msg))
}

func (s *Server) handleMarkRead(c *gin.Context) {
	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	role := c.Query("role")
	if role != store.RolePatient && role != store.RoleDoctor {
		s.renderError(c, http.StatusBadRequest, errors.New("role query parameter must be patient or doctor"))
		return
	}
	if err := s.db.MarkMessagesRead(id, role); err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleCreateConsultation(c *gin.Context) {
	var req ConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	consultation := store.Consultation{
		ConversationID: req.ConversationID,
		PatientID:      req.PatientID,
		DoctorID:       req.DoctorID,
		ScheduledAt:    req.ScheduledAt,
		Notes:          req.Notes,
	}
	if err := s.db.CreateConsultation(&consultation); err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusCreated, ConsultationFromModel(consultation))
}

func (s *Server) handleGetConsultation(c *gin.Context) {
	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	consultation, err := s.db.GetConsultation(id)
	if err != nil {
		s.renderNotFoundOr500(c, err, fmt.Errorf("consultation %d not found", id))
		return
	}
	c.JSON(http.StatusOK, ConsultationFromModel(*consultation))
}

func (s *Server) handleUpdateConsultation(c *gin.Context) {
	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	switch req.Status {
	case store.ConsultationRequested, store.ConsultationConfirmed,
		store.ConsultationCompleted, store.ConsultationCancelled:
	default:
		s.renderError(c, http.StatusBadRequest, fmt.Errorf("unknown status %q", req.Status))
		return
	}
	if _, err := s.db.GetConsultation(id); err != nil {
		s.renderNotFoundOr500(c, err, fmt.Errorf("consultation %d not found", id))
		return
	}
	if err := s.db.UpdateConsultationStatus(id, req.Status); err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	consultation, err := s.db.GetConsultation(id)
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, ConsultationFromModel(*consultation))
}

func (s *Server) handleCreateFile(c *gin.Context) {
	var req MedicalFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	file := store.MedicalFile{
		PatientID:      req.PatientID,
		ConversationID: req.ConversationID,
		FileName:       req.FileName,
		MimeType:       req.MimeType,
		SizeBytes:      req.SizeBytes,
		StorageURL:     req.StorageURL,
	}
	if err := s.db.SaveMedicalFile(&file); err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusCreated, MedicalFileFromModel(file))
}

func (s *Server) handleListFiles(c *gin.Context) {
	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	rows, err := s.db.ListMedicalFiles(id)
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	items := make([]MedicalFileDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, MedicalFileFromModel(row))
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) renderNotFoundOr500(c *gin.Context, err error, notFound error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.renderError(c, http.StatusNotFound, notFound)
		return
	}
	s.renderError(c, http.StatusInternalServerError, err)
}
