package interfaces

import (
	"context"
	"time"

	"github.com/hmkang/stockquery/internal/models"
)

// StorageManager coordinates the storage areas: internal (users + system KV)
// and index (cached index bars).
type StorageManager interface {
	InternalStore() InternalStore
	IndexStore() IndexStore
	Close() error
}

// InternalStore holds user accounts and system key-value configuration.
type InternalStore interface {
	GetUser(ctx context.Context, username string) (*models.User, error)
	SaveUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, username string) error
	ListUsers(ctx context.Context) ([]string, error)

	GetSystemKV(ctx context.Context, key string) (string, error)
	SetSystemKV(ctx context.Context, key, value string) error
}

// IndexStore holds the cached historical index series.
type IndexStore interface {
	SaveBars(ctx context.Context, bars []models.IndexBar) error
	BarsSince(ctx context.Context, since time.Time) ([]models.IndexBar, error)
	TopByClose(ctx context.Context, n int) ([]models.IndexBar, error)
	CloseAbove(ctx context.Context, value float64) ([]models.IndexBar, error)
}
