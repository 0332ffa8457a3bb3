package clipper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"peet-planner/internal/engine"
	"peet-planner/internal/llm"
	"peet-planner/internal/recipe"
)

// Clipper fetches recipe pages and extracts them into structured form.
type Clipper struct {
	textGen llm.TextGenerator
}

// ClippedRecipe is the data structured by the model from a fetched page.
type ClippedRecipe struct {
	Title       string   `json:"title"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	PrepTime    string   `json:"prep_time"`
	Servings    string   `json:"servings"`
	Profile     string   `json:"profile"`
	Kitchen     string   `json:"kitchen"`
	Vegetarian  bool     `json:"vegetarian"`
	Tags        []string `json:"tags"`
}

// NewClipper creates a new Clipper instance.
func NewClipper(textGen llm.TextGenerator) *Clipper {
	return &Clipper{textGen: textGen}
}

// ClipURL fetches the URL and extracts the recipe using the model.
func (c *Clipper) ClipURL(ctx context.Context, url string) (*ClippedRecipe, error) {
	content, err := c.fetchAndCleanHTML(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}

	prompt := fmt.Sprintf(`
You are a recipe extraction expert. Extract the recipe details from the following page content.
Return the result strictly as a JSON object with this structure:
{
  "title": "Recipe Title",
  "ingredients": ["item 1", "item 2", ...],
  "steps": ["Step 1 description", "Step 2 description", ...],
  "prep_time": "e.g. 30 mins",
  "servings": "e.g. 4 people",
  "profile": "one of: light, full, closing",
  "kitchen": "one of: local, italian, asian, mediterranean, french, free",
  "vegetarian": true or false,
  "tags": ["main ingredients and techniques, lowercase"]
}

Page Content:
%s
`, content)

	resp, err := c.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}

	var extracted ClippedRecipe
	if err := json.Unmarshal([]byte(resp.Content), &extracted); err != nil {
		return nil, fmt.Errorf("failed to parse extraction response: %w. Response: %s", err, resp.Content)
	}
	if extracted.Title == "" {
		return nil, fmt.Errorf("extraction returned no title. Response: %s", resp.Content)
	}

	return &extracted, nil
}

// Dish converts the clipped recipe to a catalog dish so it can take part
// in planning.
func (r *ClippedRecipe) Dish() engine.Dish {
	profile := engine.Profile(strings.ToLower(r.Profile))
	switch profile {
	case engine.ProfileLight, engine.ProfileFull, engine.ProfileClosing:
	default:
		profile = engine.ProfileFull
	}

	kitchen := engine.Kitchen(strings.ToLower(r.Kitchen))
	switch kitchen {
	case engine.KitchenLocal, engine.KitchenItalian, engine.KitchenAsian,
		engine.KitchenMediterranean, engine.KitchenFrench:
	default:
		kitchen = engine.KitchenFree
	}

	return engine.Dish{
		NameNL:     r.Title,
		NameEN:     r.Title,
		Profile:    profile,
		Kitchen:    kitchen,
		Vegetarian: r.Vegetarian,
		Tags:       r.Tags,
	}
}

// Recipe converts the clipped recipe to a generated recipe for archiving.
func (r *ClippedRecipe) Recipe() recipe.GeneratedRecipe {
	return recipe.GeneratedRecipe{
		Day:         1,
		Title:       r.Title,
		Ingredients: r.Ingredients,
		Steps:       r.Steps,
	}
}

func (c *Clipper) fetchAndCleanHTML(url string) (string, error) {
	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	// Remove noise to save model tokens
	doc.Find("script, style, nav, footer, iframe, ads, .ads, #ads").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	return doc.Find("body").Text(), nil
}
