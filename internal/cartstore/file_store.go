package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/makishop/storefront/internal/domain"
)

// FileStore keeps the snapshot as a single JSON file under a fixed storage
// key. It is the default backend for a single-device shopper profile.
type FileStore struct {
	path string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cart dir: %w", err)
	}
	return &FileStore{path: filepath.Join(dir, StorageKey+".json")}, nil
}

func (s *FileStore) Load(_ context.Context) ([]domain.CartLineItem, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cart snapshot: %w", err)
	}

	var items []domain.CartLineItem
	if err := json.Unmarshal(data, &items); err != nil {
		// Corrupt snapshot collapses to an empty cart, never a fatal error
		log.Printf("malformed cart snapshot at %s, treating as empty: %v", s.path, err)
		return nil, nil
	}
	return items, nil
}

func (s *FileStore) Save(_ context.Context, items []domain.CartLineItem) error {
	if items == nil {
		items = []domain.CartLineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart snapshot: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cart snapshot: %w", err)
	}
	return nil
}

func (s *FileStore) Append(ctx context.Context, item domain.CartLineItem) error {
	items, err := s.Load(ctx)
	if err != nil {
		return err
	}
	return s.Save(ctx, append(items, item))
}

func (s *FileStore) Clear(ctx context.Context) error {
	return s.Save(ctx, nil)
}
