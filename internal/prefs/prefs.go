// Package prefs provides the durable per-user key-value stores behind the
// layout preferences.
package prefs

import (
	"fmt"
	"os"
	"sync"

	"github.com/peterbourgon/diskv/v3"
)

// DiskKV stores each key as a flat file under a base directory.
type DiskKV struct {
	d *diskv.Diskv
}

// OpenDisk creates a DiskKV rooted at basePath.
func OpenDisk(basePath string) (*DiskKV, error) {
	if err := os.MkdirAll(basePath, 0700); err != nil {
		return nil, fmt.Errorf("failed to create preferences directory: %w", err)
	}
	return &DiskKV{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    flatTransform,
		CacheSizeMax: 64 * 1024,
		FilePerm:     0600,
		PathPerm:     0700,
	})}, nil
}

// Get returns the stored value for key.
func (k *DiskKV) Get(key string) (string, bool) {
	if !k.d.Has(key) {
		return "", false
	}
	b, err := k.d.Read(key)
	if err != nil {
		return "", false
	}
	return string(b), true
}

// Set writes value for key.
func (k *DiskKV) Set(key, value string) error {
	if err := k.d.Write(key, []byte(value)); err != nil {
		return fmt.Errorf("failed to write preference %q: %w", key, err)
	}
	return nil
}

// Keys returns every stored key.
func (k *DiskKV) Keys() []string {
	var keys []string
	for key := range k.d.Keys(nil) {
		keys = append(keys, key)
	}
	return keys
}

func flatTransform(string) []string { return []string{} }

// MemKV is an in-memory store.
type MemKV struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMem returns an empty MemKV.
func NewMem() *MemKV {
	return &MemKV{data: make(map[string]string)}
}

// Get returns the stored value for key.
func (k *MemKV) Get(key string) (string, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	v, ok := k.data[key]
	return v, ok
}

// Set stores value for key.
func (k *MemKV) Set(key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.data[key] = value
	return nil
}
