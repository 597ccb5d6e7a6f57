package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"lifeline-ai/backend/internal/routing"
	"lifeline-ai/backend/internal/store"
	"lifeline-ai/backend/internal/triage"
)

// handleTriage scores a symptom description, persists the assessment and,
// when a conversation is supplied, appends the exchange to that thread.
func (s *Server) handleTriage(c *gin.Context) {
	var req TriageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}

	start := time.Now()
	match := s.scorer.Score(req.Text)
	response := triage.BuildResponse(match)
	elapsed := time.Since(start).Milliseconds()

	out := TriageResponse{Response: response, ProcessingTimeMs: elapsed}
	if response.RequiresEscalation() {
		out.Escalation = triage.EscalationDirective
	}

	assessment := store.Assessment{
		ConversationID:   req.ConversationID,
		InputText:        req.Text,
		Matched:          response.Matched,
		ConditionID:      response.ConditionID,
		Title:            response.Title,
		Score:            response.Score,
		Severity:         string(response.Severity),
		Confidence:       response.Confidence,
		ProcessingTimeMs: elapsed,
	}
	if err := s.db.SaveAssessment(&assessment); err != nil {
		logrus.WithError(err).Warn("persist triage assessment")
	}

	if req.ConversationID != 0 {
		if err := s.appendTriageMessages(req, out); err != nil {
			logrus.WithError(err).WithField("conversation_id", req.ConversationID).
				Warn("append triage exchange to conversation")
		}
	}

	logrus.WithFields(logrus.Fields{
		"matched":  response.Matched,
		"severity": response.Severity,
		"score":    response.Score,
		"duration": elapsed,
	}).Info("triage assessment completed")

	c.JSON(http.StatusOK, out)
}

// appendTriageMessages stores the patient's text and the system answer on
// the conversation. A critical answer gets a separate escalation message
// first so it cannot be missed.
func (s *Server) appendTriageMessages(req TriageRequest, out TriageResponse) error {
	patientMsg := store.Message{
		ConversationID: req.ConversationID,
		SenderRole:     store.RolePatient,
		Body:           req.Text,
	}
	if err := s.db.AppendMessage(&patientMsg); err != nil {
		return err
	}
	if out.Escalation != "" {
		escalation := store.Message{
			ConversationID: req.ConversationID,
			SenderRole:     store.RoleSystem,
			Body:           out.Escalation,
			Severity:       string(triage.SeverityCritical),
		}
		if err := s.db.AppendMessage(&escalation); err != nil {
			return err
		}
	}
	systemMsg := store.Message{
		ConversationID: req.ConversationID,
		SenderRole:     store.RoleSystem,
		Body:           fmt.Sprintf("%s: %s", out.Title, out.Assessment),
		Severity:       string(out.Severity),
	}
	return s.db.AppendMessage(&systemMsg)
}

func (s *Server) handleListAssessments(c *gin.Context) {
	offset, limit := pageParams(c)
	rows, total, err := s.db.ListAssessments(offset, limit)
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	items := make([]AssessmentDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, AssessmentFromModel(row))
	}
	c.JSON(http.StatusOK, AssessmentsResponse{Items: items, Total: total})
}

// handleRoutes ranks responder candidates for the posted emergency snapshot.
func (s *Server) handleRoutes(c *gin.Context) {
	var req RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	if req.Situation == "" {
		req.Situation = routing.SituationNormal
	}
	if !req.Situation.Valid() {
		s.renderError(c, http.StatusBadRequest, fmt.Errorf("unknown situation %q", req.Situation))
		return
	}

	candidates := s.selector.Select(req.Vitals, req.Situation, req.Contacts)
	c.JSON(http.StatusOK, RouteResponse{
		Candidates: candidates,
		Vitals: VitalsStatus{
			Critical: req.Vitals.Critical(),
			Abnormal: req.Vitals.Abnormal(),
		},
	})
}

// handleVitals serves one simulated sensor sample for the demo dashboard.
func (s *Server) handleVitals(c *gin.Context) {
	vitals := s.vitalsSource.Sample()
	c.JSON(http.StatusOK, VitalsResponse{
		Vitals: vitals,
		Status: VitalsStatus{Critical: vitals.Critical(), Abnormal: vitals.Abnormal()},
		At:     time.Now().UTC(),
	})
}
