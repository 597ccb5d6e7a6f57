// Command seed loads demo patients and doctors into the local database so
// the frontend has something to talk to during development.
package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"lifeline-ai/backend/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("load .env file")
	}

	baseDir, err := os.Getwd()
	if err != nil {
		logrus.Fatalf("determine working directory: %v", err)
	}

	dbPath := flag.String("db", filepath.Join(baseDir, "data", "lifeline.db"), "path to the sqlite database")
	flag.Parse()

	if override := strings.TrimSpace(os.Getenv("LIFELINE_DB_PATH")); override != "" {
		*dbPath = override
	}
	if err := os.MkdirAll(filepath.Dir(*dbPath), 0o755); err != nil {
		logrus.Fatalf("create data directory: %v", err)
	}

	db, err := store.Open(*dbPath, true)
	if err != nil {
		logrus.Fatalf("open database: %v", err)
	}
	defer db.Close()

	patients := []store.Patient{
		{FullName: "Maya Okafor", Phone: "+1-555-0101", Email: "maya@example.com", BloodType: "O+", EmergencyContact: "+1-555-0199"},
		{FullName: "Daniel Reyes", Phone: "+1-555-0102", Email: "daniel@example.com", BloodType: "A-", EmergencyContact: "+1-555-0198"},
	}
	patients[0].SetAllergies([]string{"penicillin"})

	doctors := []store.Doctor{
		{FullName: "Dr. Priya Nair", Specialty: "cardiology", Phone: "+1-555-0201", Email: "priya@clinic.example", Available: true, Rating: 4.8},
		{FullName: "Dr. Tomasz Nowak", Specialty: "emergency", Phone: "+1-555-0202", Email: "tomasz@clinic.example", Available: true, Rating: 4.6},
		{FullName: "Dr. Aisha Bello", Specialty: "general", Phone: "+1-555-0203", Email: "aisha@clinic.example", Available: false, Rating: 4.9},
	}

	created := 0
	for i := range patients {
		if err := db.CreatePatient(&patients[i]); err != nil {
			logrus.WithError(err).WithField("patient", patients[i].FullName).Warn("seed patient")
			continue
		}
		created++
	}
	for i := range doctors {
		if err := db.CreateDoctor(&doctors[i]); err != nil {
			logrus.WithError(err).WithField("doctor", doctors[i].FullName).Warn("seed doctor")
			continue
		}
		created++
	}

	logrus.WithFields(logrus.Fields{
		"db":      *dbPath,
		"created": created,
	}).Info("seed complete")
}
