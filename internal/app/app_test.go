package app

import (
	"context"
	"path/filepath"
	"testing"

	"peet-planner/internal/clipper"
	"peet-planner/internal/config"
	"peet-planner/internal/database"
	"peet-planner/internal/engine"
	"peet-planner/internal/llm"
	"peet-planner/internal/metrics"
	"peet-planner/internal/shared"
	"peet-planner/internal/storage"
)

type mockTextGenerator struct {
	response string
	calls    int
}

func (m *mockTextGenerator) GenerateContent(_ context.Context, _ string) (llm.ContentResponse, error) {
	m.calls++
	return llm.ContentResponse{
		Content: m.response,
		Usage:   shared.TokenUsage{PromptTokens: 100, CompletionTokens: 200, TotalTokens: 300, Model: "mock"},
	}, nil
}

func newTestApp(t *testing.T, mock *mockTextGenerator) (*App, *database.DB) {
	t.Helper()

	tempDir := t.TempDir()
	db, err := database.NewDB(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	archive, err := storage.NewPlanArchive(filepath.Join(tempDir, "plans"))
	if err != nil {
		t.Fatalf("Failed to create archive: %v", err)
	}

	a := NewApp(
		engine.NewDefault(),
		mock,
		NewPlanRepository(db.SQL),
		archive,
		metrics.NewStore(db.SQL),
		clipper.NewClipper(mock),
		&config.Config{},
	)
	return a, db
}

const mockRecipeJSON = `{"days":[
	{"day":1,"title":"Dag 1","ingredients":["x"],"steps":["y"]},
	{"day":2,"title":"Dag 2","ingredients":["x"],"steps":["y"]},
	{"day":3,"title":"Dag 3","ingredients":["x"],"steps":["y"]},
	{"day":4,"title":"Dag 4","ingredients":["x"],"steps":["y"]}
]}`

func TestPlanOnly(t *testing.T) {
	a, _ := newTestApp(t, &mockTextGenerator{})

	ctx, plan := a.PlanOnly(map[string]any{"days": 3})
	if ctx.Days != 3 {
		t.Errorf("Expected 3 days in context, got %d", ctx.Days)
	}
	if plan.DaysCount != 3 {
		t.Errorf("Expected 3 days in plan, got %d", plan.DaysCount)
	}
}

func TestCook(t *testing.T) {
	mock := &mockTextGenerator{response: mockRecipeJSON}
	a, db := newTestApp(t, mock)
	ctx := context.Background()

	cooked, err := a.Cook(ctx, "42", map[string]any{"days": 3})
	if err != nil {
		t.Fatalf("Failed to cook plan: %v", err)
	}

	if mock.calls != 1 {
		t.Errorf("Expected exactly 1 model call, got %d", mock.calls)
	}
	if cooked.Seed != 0 {
		t.Errorf("Expected seed 0 for a first plan, got %d", cooked.Seed)
	}
	if cooked.Plan.DaysCount != 3 {
		t.Errorf("Expected 3 days, got %d", cooked.Plan.DaysCount)
	}
	// Surplus model days are trimmed to the requested count.
	if len(cooked.Recipes.Days) != 3 {
		t.Errorf("Expected 3 recipes, got %d", len(cooked.Recipes.Days))
	}

	t.Run("PlanPersisted", func(t *testing.T) {
		repo := NewPlanRepository(db.SQL)
		stored, err := repo.ListRecentByUserID(ctx, "42", 10)
		if err != nil {
			t.Fatalf("Failed to list plans: %v", err)
		}
		if len(stored) != 1 {
			t.Fatalf("Expected 1 stored plan, got %d", len(stored))
		}
	})

	t.Run("MetricsRecorded", func(t *testing.T) {
		usage, err := metrics.NewStore(db.SQL).GetDailyUsage(1)
		if err != nil {
			t.Fatalf("Failed to read usage: %v", err)
		}
		if len(usage) != 1 {
			t.Fatalf("Expected 1 usage row, got %d", len(usage))
		}
		if usage[0].TotalPrompt != 100 {
			t.Errorf("Expected 100 prompt tokens, got %d", usage[0].TotalPrompt)
		}
	})

	t.Run("SeedAdvances", func(t *testing.T) {
		second, err := a.Cook(ctx, "42", map[string]any{"days": 3})
		if err != nil {
			t.Fatalf("Failed to cook second plan: %v", err)
		}
		if second.Seed != 1 {
			t.Errorf("Expected seed 1 for the second plan, got %d", second.Seed)
		}
	})

	t.Run("SeedIsPerUser", func(t *testing.T) {
		other, err := a.Cook(ctx, "99", map[string]any{"days": 3})
		if err != nil {
			t.Fatalf("Failed to cook plan for other user: %v", err)
		}
		if other.Seed != 0 {
			t.Errorf("Expected seed 0 for a new user, got %d", other.Seed)
		}
	})
}

func TestCookRejectsBadModelOutput(t *testing.T) {
	a, _ := newTestApp(t, &mockTextGenerator{response: "not json"})

	if _, err := a.Cook(context.Background(), "42", map[string]any{}); err == nil {
		t.Fatal("Expected an error for unparseable model output, got nil")
	}
}

func TestPlanRepository(t *testing.T) {
	_, db := newTestApp(t, &mockTextGenerator{})
	repo := NewPlanRepository(db.SQL)
	ctx := context.Background()

	t.Run("CountEmpty", func(t *testing.T) {
		count, err := repo.CountForUser(ctx, "7")
		if err != nil {
			t.Fatalf("Failed to count plans: %v", err)
		}
		if count != 0 {
			t.Errorf("Expected count 0, got %d", count)
		}
	})

	t.Run("SaveAndList", func(t *testing.T) {
		if err := repo.Save(ctx, "7", []byte(`{"a":1}`)); err != nil {
			t.Fatalf("Failed to save plan: %v", err)
		}
		if err := repo.Save(ctx, "7", []byte(`{"a":2}`)); err != nil {
			t.Fatalf("Failed to save plan: %v", err)
		}

		plans, err := repo.ListRecentByUserID(ctx, "7", 1)
		if err != nil {
			t.Fatalf("Failed to list plans: %v", err)
		}
		if len(plans) != 1 {
			t.Fatalf("Expected 1 plan with limit 1, got %d", len(plans))
		}

		count, err := repo.CountForUser(ctx, "7")
		if err != nil {
			t.Fatalf("Failed to count plans: %v", err)
		}
		if count != 2 {
			t.Errorf("Expected count 2, got %d", count)
		}
	})
}
