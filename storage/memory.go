package storage

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/crypto"
)

// MemoryStore is an in-process content-addressed store. URIs are derived
// from the keccak hash of the canonical JSON encoding, so uploading the
// same value twice yields the same URI.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (m *MemoryStore) Upload(_ context.Context, v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode blob: %w", err)
	}

	uri := "mem://" + hex.EncodeToString(crypto.Keccak256(data)[:16])

	m.mu.Lock()
	m.blobs[uri] = data
	m.mu.Unlock()

	return uri, nil
}

func (m *MemoryStore) Fetch(_ context.Context, uri string, out interface{}) error {
	m.mu.RLock()
	data, ok := m.blobs[uri]
	m.mu.RUnlock()

	if !ok {
		return fmt.Errorf("blob %s not found", uri)
	}
	return json.Unmarshal(data, out)
}

var _ Store = (*MemoryStore)(nil)
