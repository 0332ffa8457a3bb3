package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"peet-planner/internal/database"
	"peet-planner/internal/shared"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewStore(db.SQL)
}

func TestStore(t *testing.T) {
	store := newTestStore(t)

	t.Run("RecordAndAggregate", func(t *testing.T) {
		err := store.Record(ExecutionMetric{
			Caller:           "cook",
			Model:            "test-model",
			PromptTokens:     100,
			CompletionTokens: 50,
			LatencyMS:        1200,
		})
		if err != nil {
			t.Fatalf("Failed to record metric: %v", err)
		}

		usage, err := store.GetDailyUsage(1)
		if err != nil {
			t.Fatalf("Failed to get daily usage: %v", err)
		}
		if len(usage) != 1 {
			t.Fatalf("Expected 1 usage row, got %d", len(usage))
		}
		if usage[0].TotalPrompt != 100 {
			t.Errorf("Expected 100 prompt tokens, got %d", usage[0].TotalPrompt)
		}
		if usage[0].TotalCompletion != 50 {
			t.Errorf("Expected 50 completion tokens, got %d", usage[0].TotalCompletion)
		}
		if usage[0].TotalExecution != 1 {
			t.Errorf("Expected 1 execution, got %d", usage[0].TotalExecution)
		}
	})

	t.Run("RecordMeta", func(t *testing.T) {
		err := store.RecordMeta(shared.CallMeta{
			Caller:  "clip",
			Usage:   shared.TokenUsage{PromptTokens: 10, CompletionTokens: 20, Model: "test-model"},
			Latency: 500 * time.Millisecond,
		})
		if err != nil {
			t.Fatalf("Failed to record meta: %v", err)
		}

		usage, err := store.GetDailyUsage(1)
		if err != nil {
			t.Fatalf("Failed to get daily usage: %v", err)
		}
		if usage[0].TotalExecution != 2 {
			t.Errorf("Expected 2 executions, got %d", usage[0].TotalExecution)
		}
	})

	t.Run("RecordMetaSkipsEmptyUsage", func(t *testing.T) {
		if err := store.RecordMeta(shared.CallMeta{Caller: "noop"}); err != nil {
			t.Fatalf("Failed on empty meta: %v", err)
		}

		usage, err := store.GetDailyUsage(1)
		if err != nil {
			t.Fatalf("Failed to get daily usage: %v", err)
		}
		if usage[0].TotalExecution != 2 {
			t.Errorf("Expected empty usage to be skipped, got %d executions", usage[0].TotalExecution)
		}
	})
}

func TestCleanup(t *testing.T) {
	store := newTestStore(t)

	old := ExecutionMetric{Caller: "cook", Model: "m", Timestamp: time.Now().AddDate(0, 0, -60).UTC()}
	recent := ExecutionMetric{Caller: "cook", Model: "m"}
	if err := store.Record(old); err != nil {
		t.Fatalf("Failed to record old metric: %v", err)
	}
	if err := store.Record(recent); err != nil {
		t.Fatalf("Failed to record recent metric: %v", err)
	}

	deleted, err := store.Cleanup(30)
	if err != nil {
		t.Fatalf("Failed to clean up: %v", err)
	}
	if deleted != 1 {
		t.Errorf("Expected 1 deleted row, got %d", deleted)
	}
}

func TestGetSysHealth(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "plan.json"), []byte(`{"days":[]}`), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	health := GetSysHealth(dir)
	if health.Goroutines < 1 {
		t.Errorf("Expected at least 1 goroutine, got %d", health.Goroutines)
	}
	if health.PlanFiles != 1 {
		t.Errorf("Expected 1 plan file, got %d", health.PlanFiles)
	}
	if health.ArchiveSize == "" {
		t.Error("Expected a non-empty archive size")
	}
}
