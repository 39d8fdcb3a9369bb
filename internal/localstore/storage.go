// Package localstore is the device-side key/value storage the sync engine and
// the vault keep their items in, one file per key.
package localstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/2beens/aresprotocol/pkg"
)

var ErrItemNotFound = errors.New("item not found")

var validKey = regexp.MustCompile(`^[a-zA-Z0-9_\-.]+$`)

type Storage interface {
	GetItem(key string) (string, error)
	SetItem(key, value string) error
	RemoveItem(key string) error
	Clear() error
}

var _ Storage = (*FileStorage)(nil)
var _ Storage = (*MemoryStorage)(nil)

type FileStorage struct {
	dir   string
	mutex sync.RWMutex
}

func NewFileStorage(dir string) (*FileStorage, error) {
	exists, err := pkg.PathExists(dir, true)
	if err != nil {
		return nil, fmt.Errorf("storage dir: %w", err)
	}
	if !exists {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	return &FileStorage{dir: dir}, nil
}

func (s *FileStorage) path(key string) (string, error) {
	// "." and ".." would resolve to the storage dir or its parent
	if !validKey.MatchString(key) || strings.Trim(key, ".") == "" {
		return "", fmt.Errorf("invalid storage key: %q", key)
	}
	return filepath.Join(s.dir, key), nil
}

func (s *FileStorage) GetItem(key string) (string, error) {
	p, err := s.path(key)
	if err != nil {
		return "", err
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrItemNotFound
		}
		return "", fmt.Errorf("read item %s: %w", key, err)
	}
	return string(data), nil
}

func (s *FileStorage) SetItem(key, value string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	// write to a temp file first, so a crash never leaves a half written item
	tmp, err := os.CreateTemp(s.dir, "."+key+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp item %s: %w", key, err)
	}
	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write item %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close item %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("rename item %s: %w", key, err)
	}
	return nil
}

func (s *FileStorage) RemoveItem(key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove item %s: %w", key, err)
	}
	return nil
}

func (s *FileStorage) Clear() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("read storage dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
			return fmt.Errorf("clear item %s: %w", e.Name(), err)
		}
	}
	return nil
}

type MemoryStorage struct {
	items map[string]string
	mutex sync.RWMutex
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string]string)}
}

func (s *MemoryStorage) GetItem(key string) (string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	v, ok := s.items[key]
	if !ok {
		return "", ErrItemNotFound
	}
	return v, nil
}

func (s *MemoryStorage) SetItem(key, value string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.items[key] = value
	return nil
}

func (s *MemoryStorage) RemoveItem(key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.items, key)
	return nil
}

func (s *MemoryStorage) Clear() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.items = make(map[string]string)
	return nil
}
