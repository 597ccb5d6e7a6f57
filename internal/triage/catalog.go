package triage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Condition is one recognized emergency type in the catalog.
type Condition struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Keywords          []string `json:"keywords"`
	Severity          Severity `json:"severity"`
	BaseAccuracy      int      `json:"base_accuracy"`
	Assessment        string   `json:"assessment"`
	ImmediateActions  []string `json:"immediate_actions"`
	Warnings          []string `json:"warnings"`
	VitalsToMonitor   []string `json:"vitals_to_monitor"`
	FollowUpQuestions []string `json:"follow_up_questions"`
}

// Catalog is the read-only condition table. Iteration order is the file
// order, which doubles as the tie-break rule during scoring.
type Catalog struct {
	conditions []Condition
}

// NewCatalog loads and validates the condition table from the provided JSON file.
func NewCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read condition catalog: %w", err)
	}
	var conditions []Condition
	if err := json.Unmarshal(data, &conditions); err != nil {
		return nil, fmt.Errorf("unmarshal condition catalog: %w", err)
	}
	catalog := &Catalog{}
	for i, cond := range conditions {
		cond.ID = strings.TrimSpace(cond.ID)
		if cond.ID == "" {
			return nil, fmt.Errorf("condition %d: missing id", i)
		}
		if !cond.Severity.Valid() {
			return nil, fmt.Errorf("condition %q: invalid severity %q", cond.ID, cond.Severity)
		}
		var keywords []string
		for _, kw := range cond.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				keywords = append(keywords, kw)
			}
		}
		if len(keywords) == 0 {
			return nil, fmt.Errorf("condition %q: no keywords", cond.ID)
		}
		cond.Keywords = keywords
		catalog.conditions = append(catalog.conditions, cond)
	}
	if len(catalog.conditions) == 0 {
		return nil, errors.New("condition catalog is empty")
	}
	return catalog, nil
}

// Conditions exposes the loaded table in file order.
func (c *Catalog) Conditions() []Condition {
	if c == nil {
		return nil
	}
	return c.conditions
}

// Len returns the number of loaded conditions.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.conditions)
}

// Validate ensures the catalog carries at least baseline configuration.
func (c *Catalog) Validate() error {
	if c == nil {
		return errors.New("catalog is nil")
	}
	if len(c.conditions) == 0 {
		return errors.New("catalog conditions missing")
	}
	return nil
}
