package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"peet-planner/internal/clipper"
	"peet-planner/internal/config"
	"peet-planner/internal/engine"
	"peet-planner/internal/llm"
	"peet-planner/internal/metrics"
	"peet-planner/internal/prompt"
	"peet-planner/internal/recipe"
	"peet-planner/internal/shared"
	"peet-planner/internal/storage"
)

// App holds the application's dependencies.
type App struct {
	eng           *engine.Engine
	textGen       llm.TextGenerator
	planRepo      *PlanRepository
	archive       *storage.PlanArchive
	metricsStore  *metrics.Store
	recipeClipper *clipper.Clipper
	cfg           *config.Config
}

// NewApp creates and initializes a new App instance.
func NewApp(
	eng *engine.Engine,
	textGen llm.TextGenerator,
	planRepo *PlanRepository,
	archive *storage.PlanArchive,
	metricsStore *metrics.Store,
	recipeClipper *clipper.Clipper,
	cfg *config.Config,
) *App {
	return &App{
		eng:           eng,
		textGen:       textGen,
		planRepo:      planRepo,
		archive:       archive,
		metricsStore:  metricsStore,
		recipeClipper: recipeClipper,
		cfg:           cfg,
	}
}

// Engine exposes the planning engine, for surfaces that rebuild plans
// directly from a context and seed.
func (a *App) Engine() *engine.Engine {
	return a.eng
}

// CookedPlan is a resolved plan with its written-out recipes.
type CookedPlan struct {
	Context engine.Context    `json:"context"`
	Seed    int               `json:"seed"`
	Plan    *engine.Plan      `json:"plan"`
	Recipes *recipe.RecipeSet `json:"recipes"`
}

// PlanOnly normalizes raw input and resolves a plan without any model call.
func (a *App) PlanOnly(raw map[string]any) (engine.Context, *engine.Plan) {
	ctx := engine.Normalize(raw)
	return ctx, a.eng.Plan(ctx)
}

// Cook resolves a plan for the user and has the model write the recipes.
// Exactly one model call is made per cook.
func (a *App) Cook(ctx context.Context, userID string, raw map[string]any) (*CookedPlan, error) {
	normalized := engine.Normalize(raw)

	seed := 0
	if count, err := a.planRepo.CountForUser(ctx, userID); err != nil {
		log.Printf("Failed to count plans for user %s, using seed 0: %v", userID, err)
	} else {
		seed = count
	}

	plan := a.eng.PlanWithSeed(normalized, seed)
	for _, warning := range plan.Warnings {
		log.Printf("Plan warning for user %s: %s", userID, warning)
	}

	fullPrompt := prompt.SystemPrompt() + "\n\n" + prompt.Build(normalized, plan)

	start := time.Now()
	resp, err := a.textGen.GenerateContent(ctx, fullPrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate recipes: %w", err)
	}

	recipes, err := recipe.ParseRecipeSet(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse recipes: %w", err)
	}
	if missing := recipes.EnforceDayCount(normalized.Days); missing > 0 {
		log.Printf("Model returned %d day(s) too few for user %s", missing, userID)
	}

	cooked := &CookedPlan{
		Context: normalized,
		Seed:    seed,
		Plan:    plan,
		Recipes: recipes,
	}

	a.persist(ctx, userID, cooked)

	if err := a.metricsStore.RecordMeta(shared.CallMeta{
		Caller:  "cook",
		Usage:   resp.Usage,
		Latency: time.Since(start),
	}); err != nil {
		log.Printf("Failed to record metrics: %v", err)
	}

	return cooked, nil
}

// persist stores the cooked plan in the database and the file archive.
// Storage failures are logged, not returned: the plan is already cooked.
func (a *App) persist(ctx context.Context, userID string, cooked *CookedPlan) {
	data, err := json.Marshal(cooked)
	if err != nil {
		log.Printf("Failed to marshal cooked plan for user %s: %v", userID, err)
		return
	}

	if err := a.planRepo.Save(ctx, userID, data); err != nil {
		log.Printf("Failed to save plan for user %s: %v", userID, err)
	}

	createdAt := time.Now().UTC().Format(time.RFC3339)
	if _, err := a.archive.Save(userID, createdAt, storage.ArchivedPlan{
		UserID:  userID,
		Seed:    cooked.Seed,
		Context: cooked.Context,
		Plan:    *cooked.Plan,
		Recipes: cooked.Recipes,
	}); err != nil {
		log.Printf("Failed to archive plan for user %s: %v", userID, err)
	}
}

// ClipRecipe fetches a recipe page and extracts it into structured form.
func (a *App) ClipRecipe(ctx context.Context, url string) (*clipper.ClippedRecipe, error) {
	clipped, err := a.recipeClipper.ClipURL(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to clip recipe: %w", err)
	}
	return clipped, nil
}
