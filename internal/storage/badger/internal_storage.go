package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/timshannon/badgerhold/v4"

	"github.com/hmkang/stockquery/internal/common"
	"github.com/hmkang/stockquery/internal/interfaces"
	"github.com/hmkang/stockquery/internal/models"
)

// ErrUserNotFound is returned when a username has no stored account.
var ErrUserNotFound = errors.New("user not found")

// KVEntry represents a key-value pair stored in BadgerDB.
type KVEntry struct {
	Key   string `badgerhold:"key"`
	Value string
}

// internalStorage holds user accounts and system KV in one BadgerHold store.
type internalStorage struct {
	store  *Store
	logger *common.Logger
}

// NewInternalStorage creates an InternalStore backed by BadgerHold.
func NewInternalStorage(store *Store, logger *common.Logger) *internalStorage {
	return &internalStorage{store: store, logger: logger}
}

func (s *internalStorage) GetUser(_ context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.store.db.Get(username, &user)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("user '%s': %w", username, ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to get user '%s': %w", username, err)
	}
	return &user, nil
}

func (s *internalStorage) SaveUser(_ context.Context, user *models.User) error {
	if err := s.store.db.Upsert(user.Username, user); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	s.logger.Debug().Str("username", user.Username).Msg("User saved")
	return nil
}

func (s *internalStorage) DeleteUser(_ context.Context, username string) error {
	err := s.store.db.Delete(username, models.User{})
	if err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete user '%s': %w", username, err)
	}
	s.logger.Debug().Str("username", username).Msg("User deleted")
	return nil
}

func (s *internalStorage) ListUsers(_ context.Context) ([]string, error) {
	var users []models.User
	if err := s.store.db.Find(&users, nil); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	names := make([]string, len(users))
	for i, u := range users {
		names[i] = u.Username
	}
	return names, nil
}

func (s *internalStorage) GetSystemKV(_ context.Context, key string) (string, error) {
	var entry KVEntry
	err := s.store.db.Get(key, &entry)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return "", fmt.Errorf("key '%s' not found", key)
		}
		return "", fmt.Errorf("failed to get key '%s': %w", key, err)
	}
	return entry.Value, nil
}

func (s *internalStorage) SetSystemKV(_ context.Context, key, value string) error {
	entry := KVEntry{Key: key, Value: value}
	if err := s.store.db.Upsert(key, &entry); err != nil {
		return fmt.Errorf("failed to set key '%s': %w", key, err)
	}
	return nil
}

// Ensure internalStorage implements InternalStore
var _ interfaces.InternalStore = (*internalStorage)(nil)
