// Package storage provides the top-level StorageManager that coordinates
// the 2 storage areas: internal (users + system KV) and index (cached bars).
package storage

import (
	"fmt"

	"github.com/hmkang/stockquery/internal/common"
	"github.com/hmkang/stockquery/internal/interfaces"
	"github.com/hmkang/stockquery/internal/storage/badger"
)

// Manager implements interfaces.StorageManager using 2 BadgerHold areas.
type Manager struct {
	internalStore *badger.Store
	indexStore    *badger.Store
	internal      interfaces.InternalStore
	index         interfaces.IndexStore
	logger        *common.Logger
}

// NewManager creates a new StorageManager with the 2 storage areas.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	internalStore, err := badger.NewStore(logger, config.Storage.Internal.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create internal store: %w", err)
	}

	indexStore, err := badger.NewStore(logger, config.Storage.Index.Path)
	if err != nil {
		internalStore.Close()
		return nil, fmt.Errorf("failed to create index store: %w", err)
	}

	return &Manager{
		internalStore: internalStore,
		indexStore:    indexStore,
		internal:      badger.NewInternalStorage(internalStore, logger),
		index:         badger.NewIndexStorage(indexStore, logger),
		logger:        logger,
	}, nil
}

// InternalStore returns the user/KV storage area.
func (m *Manager) InternalStore() interfaces.InternalStore {
	return m.internal
}

// IndexStore returns the cached index storage area.
func (m *Manager) IndexStore() interfaces.IndexStore {
	return m.index
}

// Close closes all storage areas.
func (m *Manager) Close() error {
	var firstErr error
	if err := m.internalStore.Close(); err != nil {
		firstErr = err
	}
	if err := m.indexStore.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// Ensure Manager implements StorageManager
var _ interfaces.StorageManager = (*Manager)(nil)
