package api

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"lifeline-ai/backend/internal/routing"
	"lifeline-ai/backend/internal/sensor"
	"lifeline-ai/backend/internal/store"
	"lifeline-ai/backend/internal/triage"
)

// Config defines server dependencies.
type Config struct {
	DBPath         string
	CatalogPath    string
	AllowedOrigins []string
	SilentDB       bool
	SensorSeed     int64
	Directory      routing.Directory
}

// Server wires HTTP handlers with persistence, scoring and routing.
type Server struct {
	db             *store.Database
	catalog        *triage.Catalog
	scorer         *triage.Scorer
	selector       *routing.Selector
	vitalsSource   sensor.Source
	notifier       *BroadcastNotifier
	allowedOrigins []string
	catalogPath    string
}

// NewServer constructs the API server.
func NewServer(cfg Config) (*Server, error) {
	if cfg.DBPath == "" {
		return nil, errors.New("db path required")
	}
	db, err := store.Open(cfg.DBPath, cfg.SilentDB)
	if err != nil {
		return nil, err
	}

	catalogPath := cfg.CatalogPath
	if catalogPath == "" {
		catalogPath = filepath.Join("internal", "triage", "conditions.json")
	}
	catalog, err := triage.NewCatalog(catalogPath)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"conditions": catalog.Len(),
		"path":       catalogPath,
	}).Info("loaded condition catalog")

	return &Server{
		db:             db,
		catalog:        catalog,
		scorer:         triage.NewScorer(catalog),
		selector:       routing.NewSelector(cfg.Directory),
		vitalsSource:   sensor.NewSimulator(cfg.SensorSeed),
		notifier:       NewBroadcastNotifier(),
		allowedOrigins: cfg.AllowedOrigins,
		catalogPath:    catalogPath,
	}, nil
}

// Close releases the server's resources.
func (s *Server) Close() error {
	return s.db.Close()
}

// Router configures gin routes.
func (s *Server) Router() (*gin.Engine, error) {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowCredentials = true
	if len(s.allowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = s.allowedOrigins
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	corsCfg.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	r.Use(cors.New(corsCfg))

	r.GET("/api/healthz", s.handleHealth)
	r.GET("/api/config", s.handleConfig)

	api := r.Group("/api")
	{
		api.POST("/triage", s.handleTriage)
		api.GET("/assessments", s.handleListAssessments)
		api.POST("/routes", s.handleRoutes)
		api.GET("/vitals", s.handleVitals)

		api.POST("/patients", s.handleCreatePatient)
		api.GET("/patients", s.handleListPatients)
		api.GET("/patients/:id", s.handleGetPatient)
		api.GET("/patients/:id/files", s.handleListFiles)

		api.POST("/doctors", s.handleCreateDoctor)
		api.GET("/doctors", s.handleListDoctors)
		api.GET("/doctors/:id", s.handleGetDoctor)

		api.POST("/conversations", s.handleCreateConversation)
		api.GET("/conversations/:id", s.handleGetConversation)
		api.GET("/conversations/:id/messages", s.handleListMessages)
		api.POST("/conversations/:id/messages", s.handlePostMessage)
		api.POST("/conversations/:id/read", s.handleMarkRead)

		api.POST("/consultations", s.handleCreateConsultation)
		api.GET("/consultations/:id", s.handleGetConsultation)
		api.PATCH("/consultations/:id", s.handleUpdateConsultation)

		api.POST("/files", s.handleCreateFile)

		api.POST("/broadcasts", s.handleCreateBroadcast)
		api.GET("/broadcasts", s.handleListBroadcasts)
		api.GET("/broadcasts/stream", s.handleBroadcastStream)
		api.GET("/broadcasts/:id", s.handleGetBroadcast)
		api.POST("/broadcasts/:id/resolve", s.handleResolveBroadcast)
	}

	return r, nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"catalog_path":       s.catalogPath,
		"catalog_conditions": s.catalog.Len(),
	})
}

func (s *Server) renderError(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		logrus.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func parseUintParam(raw string) (uint, error) {
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, errors.New("invalid id")
	}
	return uint(value), nil
}

func pageParams(c *gin.Context) (offset, limit int) {
	page, _ := strconv.Atoi(c.Query("page"))
	if page < 0 {
		page = 0
	}
	pageSize, _ := strconv.Atoi(c.Query("pageSize"))
	if pageSize <= 0 {
		pageSize = 25
	}
	return page * pageSize, pageSize
}
