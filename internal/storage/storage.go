package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"peet-planner/internal/engine"
	"peet-planner/internal/recipe"
)

// ArchivedPlan is the on-disk document for one cooked plan.
type ArchivedPlan struct {
	UserID  string            `json:"user_id"`
	Seed    int               `json:"seed"`
	Context engine.Context    `json:"context"`
	Plan    engine.Plan       `json:"plan"`
	Recipes *recipe.RecipeSet `json:"recipes,omitempty"`
}

// PlanArchive provides file-based storage for cooked plans.
type PlanArchive struct {
	basePath string
}

// NewPlanArchive creates a new PlanArchive and ensures the base directory exists.
func NewPlanArchive(basePath string) (*PlanArchive, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory %s: %w", basePath, err)
	}
	return &PlanArchive{basePath: basePath}, nil
}

// sanitizeTimestamp makes the timestamp safe for filenames.
func sanitizeTimestamp(ts string) string {
	return strings.ReplaceAll(ts, ":", "-")
}

func (a *PlanArchive) planPath(userID, createdAt string) string {
	filename := fmt.Sprintf("%s_%s.json", userID, sanitizeTimestamp(createdAt))
	return filepath.Join(a.basePath, filename)
}

// Save stores a cooked plan to a file keyed on user and timestamp and
// returns the full path of the written file.
func (a *PlanArchive) Save(userID, createdAt string, doc ArchivedPlan) (string, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal archived plan: %w", err)
	}

	filePath := a.planPath(userID, createdAt)
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write plan file: %w", err)
	}
	return filePath, nil
}

// Load retrieves a cooked plan from a specific archive file.
func (a *PlanArchive) Load(userID, createdAt string) (*ArchivedPlan, error) {
	filePath := a.planPath(userID, createdAt)
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	var doc ArchivedPlan
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal archived plan: %w", err)
	}
	return &doc, nil
}

// List returns the archive file paths for a user, newest first.
func (a *PlanArchive) List(userID string) ([]string, error) {
	pattern := filepath.Join(a.basePath, fmt.Sprintf("%s_*.json", userID))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to glob plan files: %w", err)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(matches)))
	return matches, nil
}
