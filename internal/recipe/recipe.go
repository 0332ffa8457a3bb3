package recipe

import (
	"encoding/json"
	"fmt"
	"strings"
)

// GeneratedRecipe is the written-out recipe for one day of a plan.
type GeneratedRecipe struct {
	Day         int      `json:"day"`
	Title       string   `json:"title"`
	Intro       string   `json:"intro"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	Tip         string   `json:"tip"`
}

// RecipeSet is the full set of generated recipes for a plan.
type RecipeSet struct {
	Days []GeneratedRecipe `json:"days"`
}

// ParseRecipeSet parses a raw model response into a RecipeSet. Markdown code
// fences around the JSON are stripped before parsing.
func ParseRecipeSet(raw string) (*RecipeSet, error) {
	cleaned := stripCodeFences(raw)

	var set RecipeSet
	if err := json.Unmarshal([]byte(cleaned), &set); err != nil {
		return nil, fmt.Errorf("failed to unmarshal model response into RecipeSet: %w. Response: %s", err, raw)
	}
	if len(set.Days) == 0 {
		return nil, fmt.Errorf("model response contained no days. Response: %s", raw)
	}
	return &set, nil
}

// EnforceDayCount trims surplus days beyond want and returns how many days
// are missing from the set.
func (s *RecipeSet) EnforceDayCount(want int) int {
	if len(s.Days) > want {
		s.Days = s.Days[:want]
	}
	return want - len(s.Days)
}

func stripCodeFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
