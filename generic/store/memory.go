// Package store provides Store implementations.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"sync"

	"github.com/proago/crm-engine/generic"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory keeps encoded documents so callers never share state with the store.
type Memory struct {
	mu   sync.RWMutex
	docs map[generic.Key][]byte
}

func NewMemory() *Memory {
	return &Memory{docs: make(map[generic.Key][]byte)}
}

func (m *Memory) Load(_ context.Context, key generic.Key, dst any) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loadLocked(key, dst)
}

func (m *Memory) Save(_ context.Context, key generic.Key, v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveLocked(key, v)
}

// Reset drops every document.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs = make(map[generic.Key][]byte)
}

func (m *Memory) loadLocked(key generic.Key, dst any) (bool, error) {
	data, ok := m.docs[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return true, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (m *Memory) saveLocked(key generic.Key, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	m.docs[key] = data
	return nil
}

// =============================================================================
// TRANSACTIONAL MEMORY STORE
// =============================================================================

// TxMemory wraps Memory with transaction support.
type TxMemory struct {
	*Memory
}

func NewTxMemory() *TxMemory {
	return &TxMemory{Memory: NewMemory()}
}

// WithTx executes fn within a transaction.
// For memory store, this is simulated with a snapshot + rollback on error.
func (tm *TxMemory) WithTx(_ context.Context, fn func(generic.Store) error) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	snapshot := maps.Clone(tm.docs)
	if err := fn(&txMemoryView{parent: tm}); err != nil {
		tm.docs = snapshot
		return err
	}
	return nil
}

// txMemoryView runs under the parent's write lock.
type txMemoryView struct {
	parent *TxMemory
}

func (tv *txMemoryView) Load(_ context.Context, key generic.Key, dst any) (bool, error) {
	return tv.parent.loadLocked(key, dst)
}

func (tv *txMemoryView) Save(_ context.Context, key generic.Key, v any) error {
	return tv.parent.saveLocked(key, v)
}
