package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"peet-planner/internal/app"
	"peet-planner/internal/clipper"
	"peet-planner/internal/config"
	"peet-planner/internal/database"
	"peet-planner/internal/engine"
	"peet-planner/internal/llm"
	"peet-planner/internal/metrics"
	"peet-planner/internal/storage"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "plan":
		runPlan(os.Args[2:])
	case "cook":
		runCook(os.Args[2:])
	case "clip":
		runClip(os.Args[2:])
	case "usage":
		runUsage(os.Args[2:])
	case "cleanup":
		runCleanup(os.Args[2:])
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: peet-planner <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  plan       Resolve a day plan without any model call")
	fmt.Println("  cook       Resolve a plan and have the model write the recipes")
	fmt.Println("  clip       Extract a recipe from a URL")
	fmt.Println("  usage      Show model usage for the last days")
	fmt.Println("  cleanup    Remove old metric records")
}

// planFlags registers the request flags shared by plan and cook.
func planFlags(fs *flag.FlagSet) map[string]*string {
	keys := []string{"days", "persons", "vegetarian", "allergies", "nogo", "moment", "time", "ambition", "kitchen", "language"}
	values := make(map[string]*string, len(keys))
	for _, key := range keys {
		values[key] = fs.String(key, "", "request "+key)
	}
	return values
}

func rawRequest(values map[string]*string) map[string]any {
	raw := map[string]any{}
	for key, value := range values {
		if *value != "" {
			raw[key] = *value
		}
	}
	if days, ok := raw["days"]; ok && days != "1" {
		raw["mode"] = "forward"
	}
	return raw
}

func runPlan(args []string) {
	fs := flag.NewFlagSet("plan", flag.ExitOnError)
	values := planFlags(fs)
	seed := fs.Int("seed", 0, "selection seed")
	fs.Parse(args)

	ctx := engine.Normalize(rawRequest(values))
	plan := engine.NewDefault().PlanWithSeed(ctx, *seed)

	printJSON(plan)
}

func runCook(args []string) {
	fs := flag.NewFlagSet("cook", flag.ExitOnError)
	values := planFlags(fs)
	user := fs.String("user", "cli", "user id for plan history")
	fs.Parse(args)

	ctx := context.Background()
	application, cleanup := newApp(ctx)
	defer cleanup()

	cooked, err := application.Cook(ctx, *user, rawRequest(values))
	if err != nil {
		log.Fatalf("Cook failed: %v", err)
	}

	printJSON(cooked)
}

func runClip(args []string) {
	if len(args) < 1 {
		log.Fatal("Usage: peet-planner clip <url>")
	}

	ctx := context.Background()
	application, cleanup := newApp(ctx)
	defer cleanup()

	clipped, err := application.ClipRecipe(ctx, args[0])
	if err != nil {
		log.Fatalf("Clip failed: %v", err)
	}

	printJSON(clipped)
}

func runUsage(args []string) {
	fs := flag.NewFlagSet("usage", flag.ExitOnError)
	days := fs.Int("days", 7, "Number of days to report")
	fs.Parse(args)

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	usage, err := metrics.NewStore(db.SQL).GetDailyUsage(*days)
	if err != nil {
		log.Fatalf("Failed to fetch usage: %v", err)
	}

	for _, d := range usage {
		fmt.Printf("%s: %d prompt + %d completion tokens (%d calls)\n",
			d.Date, d.TotalPrompt, d.TotalCompletion, d.TotalExecution)
	}
}

func runCleanup(args []string) {
	fs := flag.NewFlagSet("cleanup", flag.ExitOnError)
	days := fs.Int("days", 30, "Keep records for the last N days")
	fs.Parse(args)

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	affected, err := metrics.NewStore(db.SQL).Cleanup(*days)
	if err != nil {
		log.Fatalf("Cleanup failed: %v", err)
	}
	fmt.Printf("Successfully removed %d old metric records.\n", affected)
}

func newApp(ctx context.Context) (*app.App, func()) {
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	archive, err := storage.NewPlanArchive(cfg.PlanArchivePath)
	if err != nil {
		log.Fatalf("Failed to initialize plan archive: %v", err)
	}

	textGen, closeGen := newTextGenerator(ctx, cfg)

	application := app.NewApp(
		engine.NewDefault(),
		textGen,
		app.NewPlanRepository(db.SQL),
		archive,
		metrics.NewStore(db.SQL),
		clipper.NewClipper(textGen),
		cfg,
	)

	return application, func() {
		closeGen()
		db.Close()
	}
}

func newTextGenerator(ctx context.Context, cfg *config.Config) (llm.TextGenerator, func()) {
	if cfg.LLMProvider == "gemini" {
		geminiClient, err := llm.NewGeminiClient(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to initialize Gemini client: %v", err)
		}
		return geminiClient, func() { geminiClient.Close() }
	}
	return llm.NewGroqClient(cfg), func() {}
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal output: %v", err)
	}
	fmt.Println(string(out))
}
