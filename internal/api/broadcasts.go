package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"lifeline-ai/backend/internal/store"
	"lifeline-ai/backend/internal/triage"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// handleCreateBroadcast persists an SOS broadcast with its recipients and
// pushes the event to websocket subscribers.
func (s *Server) handleCreateBroadcast(c *gin.Context) {
	var req BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	if !req.Situation.Valid() {
		s.renderError(c, http.StatusBadRequest, fmt.Errorf("unknown situation %q", req.Situation))
		return
	}
	severity := req.Severity
	if severity == "" {
		severity = triage.SeverityHigh
	}
	if !severity.Valid() {
		s.renderError(c, http.StatusBadRequest, fmt.Errorf("unknown severity %q", severity))
		return
	}

	broadcast := store.EmergencyBroadcast{
		PublicID:  uuid.NewString(),
		PatientID: req.PatientID,
		Situation: string(req.Situation),
		Severity:  string(severity),
		Message:   strings.TrimSpace(req.Message),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Address:   req.Address,
	}
	recipients := make([]store.BroadcastRecipient, 0, len(req.Recipients))
	for _, r := range req.Recipients {
		channel := r.Channel
		if channel == "" {
			channel = "sms"
		}
		recipients = append(recipients, store.BroadcastRecipient{
			ContactName:  r.Name,
			ContactPhone: r.Phone,
			Channel:      channel,
		})
	}

	if err := s.db.CreateBroadcast(&broadcast, recipients); err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}

	dto := BroadcastFromModel(broadcast)
	for _, r := range recipients {
		dto.Recipients = append(dto.Recipients, RecipientFromModel(r))
	}
	s.notifier.Publish(BroadcastEvent{Type: "raised", Broadcast: &dto})

	logrus.WithFields(logrus.Fields{
		"broadcast":  broadcast.PublicID,
		"situation":  broadcast.Situation,
		"severity":   broadcast.Severity,
		"recipients": len(recipients),
	}).Info("emergency broadcast raised")

	c.JSON(http.StatusCreated, dto)
}

func (s *Server) handleListBroadcasts(c *gin.Context) {
	offset, limit := pageParams(c)
	activeOnly := strings.EqualFold(c.Query("active"), "true")
	rows, total, err := s.db.ListBroadcasts(activeOnly, offset, limit)
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	items := make([]BroadcastDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, BroadcastFromModel(row))
	}
	c.JSON(http.StatusOK, BroadcastsResponse{Items: items, Total: total})
}

func (s *Server) handleGetBroadcast(c *gin.Context) {
	publicID := c.Param("id")
	broadcast, err := s.db.GetBroadcast(publicID)
	if err != nil {
		s.renderNotFoundOr500(c, err, fmt.Errorf("broadcast %s not found", publicID))
		return
	}
	dto := BroadcastFromModel(*broadcast)
	recipients, err := s.db.ListRecipients(broadcast.ID)
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	for _, r := range recipients {
		dto.Recipients = append(dto.Recipients, RecipientFromModel(r))
	}
	c.JSON(http.StatusOK, dto)
}

func (s *Server) handleResolveBroadcast(c *gin.Context) {
	publicID := c.Param("id")
	broadcast, err := s.db.ResolveBroadcast(publicID)
	if err != nil {
		s.renderNotFoundOr500(c, err, fmt.Errorf("broadcast %s not found", publicID))
		return
	}
	dto := BroadcastFromModel(*broadcast)
	dto.Status = store.BroadcastResolved
	s.notifier.Publish(BroadcastEvent{Type: "resolved", Broadcast: &dto})
	c.JSON(http.StatusOK, dto)
}

// handleBroadcastStream upgrades the connection and feeds broadcast events
// until the client goes away.
func (s *Server) handleBroadcastStream(c *gin.Context) {
	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Warn("websocket upgrade failed")
		return
	}
	client := s.notifier.Register(conn)
	defer s.notifier.Unregister(client)

	// Reads are only used to detect disconnection.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
