package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/MrSnakeDoc/adminmarks/internal/domain"
	"github.com/MrSnakeDoc/adminmarks/internal/index"
	"github.com/MrSnakeDoc/adminmarks/internal/logger"
)

func TestGarbageCollector_Collect(t *testing.T) {
	log := logger.NewNop()
	memIndex := index.NewMemoryIndex()

	// Add some test items
	now := time.Now()
	items := []*domain.ContentItem{
		{
			ID:        1,
			Type:      "post",
			Title:     "active",
			Sources:   []string{"catalog"},
			Disabled:  false,
			UpdatedAt: now,
		},
		{
			ID:        2,
			Type:      "post",
			Title:     "recently-disabled",
			Sources:   []string{"catalog"},
			Disabled:  true,
			UpdatedAt: now.Add(-10 * 24 * time.Hour), // Disabled 10 days ago
		},
		{
			ID:        3,
			Type:      "post",
			Title:     "old-disabled",
			Sources:   []string{"catalog"},
			Disabled:  true,
			UpdatedAt: now.Add(-35 * 24 * time.Hour), // Disabled 35 days ago
		},
	}

	memIndex.UpdateCatalog([]domain.ContentType{{Name: "post"}}, items, nil)

	// Create GC with 30 day threshold
	gc := NewGarbageCollector(
		nil, // no Redis store for this test
		memIndex,
		nil,
		log,
		24*time.Hour,
		30*24*time.Hour,
	)

	// Run collection
	err := gc.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	// Should have 2 items left (active + recently disabled)
	if n := len(memIndex.GetAllItems()); n != 2 {
		t.Errorf("Expected 2 items after GC, got %d", n)
	}

	if _, ok := memIndex.GetItem(1); !ok {
		t.Error("Active item was incorrectly removed")
	}
	if _, ok := memIndex.GetItem(2); !ok {
		t.Error("Recently disabled item was incorrectly removed")
	}
	if _, ok := memIndex.GetItem(3); ok {
		t.Error("Old disabled item was not removed")
	}
}

func TestGarbageCollector_DeletesTitles(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	memIndex := index.NewMemoryIndex()

	old := &domain.ContentItem{
		ID:        9,
		Type:      "post",
		Sources:   []string{"catalog"},
		Disabled:  true,
		UpdatedAt: time.Now().Add(-48 * time.Hour),
	}
	memIndex.UpdateCatalog([]domain.ContentType{{Name: "post"}}, []*domain.ContentItem{old}, nil)
	if err := store.SaveItem(ctx, old); err != nil {
		t.Fatalf("SaveItem: %v", err)
	}
	if err := store.SetTitle(ctx, 9, "Gone soon"); err != nil {
		t.Fatalf("SetTitle: %v", err)
	}

	gc := NewGarbageCollector(store, memIndex, nil, logger.NewNop(), time.Hour, time.Hour)
	if err := gc.Collect(ctx); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if _, err := store.GetItem(ctx, 9); err == nil {
		t.Error("item still stored after GC")
	}
	title, err := store.GetTitle(ctx, 9)
	if err != nil {
		t.Fatalf("GetTitle: %v", err)
	}
	if title != "" {
		t.Errorf("title = %q, want deleted", title)
	}
}

func TestGarbageCollector_RunCollectsThenStops(t *testing.T) {
	memIndex := index.NewMemoryIndex()
	memIndex.UpdateCatalog([]domain.ContentType{{Name: "post"}}, []*domain.ContentItem{
		{ID: 1, Type: "post", Title: "kept", UpdatedAt: time.Now()},
		{ID: 2, Type: "post", Title: "stale", Disabled: true, UpdatedAt: time.Now().Add(-30 * 24 * time.Hour)},
	}, nil)

	gc := NewGarbageCollector(nil, memIndex, nil, logger.NewNop(), time.Hour, 0)

	done := make(chan error, 1)
	go func() { done <- gc.Run(context.Background()) }()

	deadline := time.Now().Add(2 * time.Second)
	for memIndex.Count() != 1 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if _, ok := memIndex.GetItem(2); ok {
		t.Error("stale item should be collected on start")
	}

	gc.Stop()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after Stop()")
	}
}
