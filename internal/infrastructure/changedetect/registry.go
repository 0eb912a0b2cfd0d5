package changedetect

import (
	"fmt"
	"os"
	"sync"

	"subsidy_pilot_service/internal/domain/changedetect"
	"subsidy_pilot_service/internal/pkg/logger"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// registryFile is the YAML shape of the source registry on disk.
type registryFile struct {
	Sources []changedetect.Source `yaml:"sources"`
}

// FileSourceRegistry loads sources from a YAML file and hot-reloads it on
// filesystem changes.
type FileSourceRegistry struct {
	path    string
	watcher *fsnotify.Watcher
	logger  logger.Logger

	mu      sync.RWMutex
	sources []changedetect.Source
}

// NewFileSourceRegistry creates a SourceRegistry over a YAML file. Edits to
// the file are picked up without a restart; a broken edit keeps the last
// good source set. Close releases the file watcher.
func NewFileSourceRegistry(path string, logger logger.Logger) (*FileSourceRegistry, error) {
	registry := &FileSourceRegistry{
		path:   path,
		logger: logger,
	}

	if err := registry.load(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create registry watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch registry file '%s': %w", path, err)
	}

	registry.watcher = watcher
	go registry.watch()

	return registry, nil
}

func (r *FileSourceRegistry) Sources() []changedetect.Source {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sources := make([]changedetect.Source, len(r.sources))
	copy(sources, r.sources)
	return sources
}

// Close stops the file watcher.
func (r *FileSourceRegistry) Close() error {
	if r.watcher != nil {
		return r.watcher.Close()
	}
	return nil
}

func (r *FileSourceRegistry) load() error {
	content, err := os.ReadFile(r.path)
	if err != nil {
		return fmt.Errorf("failed to read source registry '%s': %w", r.path, err)
	}

	var file registryFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return fmt.Errorf("failed to parse source registry '%s': %w", r.path, err)
	}

	for i := range file.Sources {
		if err := file.Sources[i].Validate(); err != nil {
			return fmt.Errorf("invalid source in registry: %w", err)
		}
	}

	r.mu.Lock()
	r.sources = file.Sources
	r.mu.Unlock()

	r.logger.Info("Loaded ", len(file.Sources), " sources from ", r.path)
	return nil
}

func (r *FileSourceRegistry) watch() {
	for {
		select {
		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if err := r.load(); err != nil {
					// Keep serving the last good source set
					r.logger.Warn("Registry reload failed: ", err)
				}
			}
			// Editors replacing the file drop the watch; re-add it
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				if err := r.watcher.Add(r.path); err == nil {
					if err := r.load(); err != nil {
						r.logger.Warn("Registry reload failed: ", err)
					}
				}
			}
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			r.logger.Warn("Registry watcher error: ", err)
		}
	}
}
