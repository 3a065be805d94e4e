package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Runtime holds the dynamic settings consulted on every request. Unlike
// the static Config, these may change while the server is running; every
// accessor takes the lock so readers always see the current value.
type Runtime struct {
	mu         sync.RWMutex
	apiKey     string
	ownerSetUp bool
}

// NewRuntime seeds a runtime settings store.
func NewRuntime(apiKey string, ownerSetUp bool) *Runtime {
	return &Runtime{apiKey: apiKey, ownerSetUp: ownerSetUp}
}

// SflowAPIKey returns the currently configured machine API key.
func (r *Runtime) SflowAPIKey() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.apiKey
}

// IsOwnerSetUp reports whether the instance owner has been claimed.
func (r *Runtime) IsOwnerSetUp() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ownerSetUp
}

// SetSflowAPIKey replaces the machine API key.
func (r *Runtime) SetSflowAPIKey(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.apiKey = key
}

// SetOwnerSetUp flips the owner-configured flag.
func (r *Runtime) SetOwnerSetUp(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ownerSetUp = v
}

// settingsFile is the on-disk shape of the reloadable settings.
type settingsFile struct {
	SflowAPIKey  *string `json:"sflowApiKey"`
	IsOwnerSetUp *bool   `json:"isOwnerSetUp"`
}

// LoadFile applies settings from a JSON file. Missing fields leave the
// current value untouched.
func (r *Runtime) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read settings file: %w", err)
	}
	var file settingsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse settings file: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if file.SflowAPIKey != nil {
		r.apiKey = *file.SflowAPIKey
	}
	if file.IsOwnerSetUp != nil {
		r.ownerSetUp = *file.IsOwnerSetUp
	}
	return nil
}

// Watch reloads the settings file whenever it changes, until ctx is
// cancelled. The parent directory is watched rather than the file itself
// so atomic rename-style rewrites are picked up too.
func (r *Runtime) Watch(ctx context.Context, path string, log *logrus.Entry) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create settings watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch settings directory: %w", err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if err := r.LoadFile(path); err != nil {
					log.WithError(err).Warn("Failed to reload settings file")
					continue
				}
				log.Info("Runtime settings reloaded")
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.WithError(err).Warn("Settings watcher error")
			}
		}
	}()

	return nil
}
