package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/hmkang/stockquery/internal/common"
	"github.com/hmkang/stockquery/internal/models"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	dir := t.TempDir()
	cfg := common.NewDefaultConfig()
	cfg.Storage.Internal.Path = filepath.Join(dir, "internal")
	cfg.Storage.Index.Path = filepath.Join(dir, "index")

	mgr, err := NewManager(common.NewLogger("error"), cfg)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	t.Cleanup(func() { mgr.Close() })
	return mgr
}

func TestManager_Areas(t *testing.T) {
	mgr := newTestManager(t)
	if mgr.InternalStore() == nil {
		t.Error("expected internal store")
	}
	if mgr.IndexStore() == nil {
		t.Error("expected index store")
	}
}

func TestManager_AreasAreIsolated(t *testing.T) {
	mgr := newTestManager(t)
	ctx := context.Background()

	// A user in the internal area must not surface as an index bar
	if err := mgr.InternalStore().SaveUser(ctx, &models.User{Username: "alice"}); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}
	bar := models.IndexBar{Date: time.Date(2020, 6, 10, 0, 0, 0, 0, time.UTC), Close: 3100}
	if err := mgr.IndexStore().SaveBars(ctx, []models.IndexBar{bar}); err != nil {
		t.Fatalf("SaveBars failed: %v", err)
	}

	bars, err := mgr.IndexStore().BarsSince(ctx, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("BarsSince failed: %v", err)
	}
	if len(bars) != 1 {
		t.Errorf("expected 1 bar, got %d", len(bars))
	}

	names, err := mgr.InternalStore().ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(names) != 1 || names[0] != "alice" {
		t.Errorf("users = %v", names)
	}
}
