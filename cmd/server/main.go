package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"lifeline-ai/backend/internal/api"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("load .env file")
	}

	baseDir, err := os.Getwd()
	if err != nil {
		logrus.Fatalf("determine working directory: %v", err)
	}

	dataDir := filepath.Join(baseDir, "data")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		logrus.Fatalf("create data directory: %v", err)
	}

	cfg := api.Config{
		DBPath:      filepath.Join(dataDir, "lifeline.db"),
		CatalogPath: filepath.Join(baseDir, "internal", "triage", "conditions.json"),
		AllowedOrigins: []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
		},
	}

	if override := strings.TrimSpace(os.Getenv("LIFELINE_DB_PATH")); override != "" {
		cfg.DBPath = override
	}
	if override := strings.TrimSpace(os.Getenv("LIFELINE_CATALOG_PATH")); override != "" {
		cfg.CatalogPath = override
	}
	if origins := strings.TrimSpace(os.Getenv("LIFELINE_ALLOWED_ORIGINS")); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	}
	if seed := strings.TrimSpace(os.Getenv("LIFELINE_SENSOR_SEED")); seed != "" {
		if v, err := strconv.ParseInt(seed, 10, 64); err == nil {
			cfg.SensorSeed = v
		}
	}

	server, err := api.NewServer(cfg)
	if err != nil {
		logrus.Fatalf("create server: %v", err)
	}
	defer server.Close()

	router, err := server.Router()
	if err != nil {
		logrus.Fatalf("configure router: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logrus.Infof("starting lifeline backend on :%s", port)
	if err := router.Run(":" + port); err != nil {
		logrus.Fatalf("server exited: %v", err)
	}
}
