package clipper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"peet-planner/internal/engine"
	"peet-planner/internal/llm"
)

type mockTextGenerator struct {
	response   string
	lastPrompt string
}

func (m *mockTextGenerator) GenerateContent(_ context.Context, prompt string) (llm.ContentResponse, error) {
	m.lastPrompt = prompt
	return llm.ContentResponse{Content: m.response}, nil
}

func TestClipURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><script>tracking();</script></head><body>
			<nav>Menu</nav>
			<h1>Pasta Arrabbiata</h1>
			<p>Pittige pasta met tomaat en knoflook.</p>
			<footer>Cookie banner</footer>
		</body></html>`))
	}))
	defer server.Close()

	mock := &mockTextGenerator{response: `{
		"title": "Pasta arrabbiata",
		"ingredients": ["400g penne", "4 tomaten"],
		"steps": ["Kook de pasta.", "Maak de saus."],
		"prep_time": "25 mins",
		"servings": "2 people",
		"profile": "full",
		"kitchen": "italian",
		"vegetarian": true,
		"tags": ["pasta", "tomaat"]
	}`}

	clip := NewClipper(mock)
	got, err := clip.ClipURL(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Failed to clip URL: %v", err)
	}

	if got.Title != "Pasta arrabbiata" {
		t.Errorf("Expected title 'Pasta arrabbiata', got '%s'", got.Title)
	}
	if len(got.Ingredients) != 2 {
		t.Errorf("Expected 2 ingredients, got %d", len(got.Ingredients))
	}
	if !got.Vegetarian {
		t.Error("Expected a vegetarian recipe")
	}

	// Noise elements are stripped before the content reaches the model.
	if strings.Contains(mock.lastPrompt, "tracking()") {
		t.Error("Expected script content to be removed from the prompt")
	}
	if strings.Contains(mock.lastPrompt, "Cookie banner") {
		t.Error("Expected footer content to be removed from the prompt")
	}
	if !strings.Contains(mock.lastPrompt, "Pasta Arrabbiata") {
		t.Error("Expected page heading to be present in the prompt")
	}
}

func TestClipURLFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	clip := NewClipper(&mockTextGenerator{})
	if _, err := clip.ClipURL(context.Background(), server.URL); err == nil {
		t.Fatal("Expected an error for a 404 page, got nil")
	}
}

func TestClipURLBadResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>recipe</body></html>"))
	}))
	defer server.Close()

	clip := NewClipper(&mockTextGenerator{response: "not json"})
	if _, err := clip.ClipURL(context.Background(), server.URL); err == nil {
		t.Fatal("Expected an error for unparseable model output, got nil")
	}
}

func TestClippedRecipeDish(t *testing.T) {
	t.Run("KnownProfileAndKitchen", func(t *testing.T) {
		r := &ClippedRecipe{Title: "Glasnoedelsalade", Profile: "light", Kitchen: "asian", Vegetarian: true, Tags: []string{"noedels"}}
		dish := r.Dish()

		if dish.Profile != engine.ProfileLight {
			t.Errorf("Expected profile light, got %s", dish.Profile)
		}
		if dish.Kitchen != engine.KitchenAsian {
			t.Errorf("Expected kitchen asian, got %s", dish.Kitchen)
		}
		if dish.NameNL != "Glasnoedelsalade" {
			t.Errorf("Expected name 'Glasnoedelsalade', got '%s'", dish.NameNL)
		}
	})

	t.Run("UnknownValuesFallBack", func(t *testing.T) {
		r := &ClippedRecipe{Title: "Mysterieschotel", Profile: "fancy", Kitchen: "fusion"}
		dish := r.Dish()

		if dish.Profile != engine.ProfileFull {
			t.Errorf("Expected fallback profile full, got %s", dish.Profile)
		}
		if dish.Kitchen != engine.KitchenFree {
			t.Errorf("Expected fallback kitchen free, got %s", dish.Kitchen)
		}
	})
}
