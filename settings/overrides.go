package settings

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// ApplyYAML sets every registered value named in a YAML mapping of key to value.
// Unknown keys are ignored. Returns how many keys were applied.
func (s *Store) ApplyYAML(data []byte) (int, error) {
	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("parse overrides: %w", err)
	}

	applied := 0
	var errs []error
	for _, b := range s.bindings {
		node, ok := doc[b.Key()]
		if !ok {
			continue
		}
		if err := b.applyOverride(&node); err != nil {
			errs = append(errs, err)
			continue
		}
		applied++
	}
	return applied, errors.Join(errs...)
}

// Overrides watches a YAML file and re-applies it to a Store when it changes.
// File events are only collected in the background; Poll applies them on the caller's goroutine.
type Overrides struct {
	path    string
	store   *Store
	watcher *fsnotify.Watcher
	pending chan struct{}
	closeCh chan struct{}
	once    sync.Once
}

// WatchOverrides applies path once (if it exists) and starts watching its directory.
func WatchOverrides(path string, s *Store) (*Overrides, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve overrides path: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Editors replace files by rename, so watch the directory rather than the file.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	o := &Overrides{
		path:    abs,
		store:   s,
		watcher: w,
		pending: make(chan struct{}, 1),
		closeCh: make(chan struct{}),
	}
	o.apply()
	go o.run()
	return o, nil
}

// Poll applies the file if it changed since the last call. Non-blocking.
func (o *Overrides) Poll() bool {
	select {
	case <-o.pending:
		o.apply()
		return true
	default:
		return false
	}
}

func (o *Overrides) Close() error {
	var err error
	o.once.Do(func() {
		close(o.closeCh)
		err = o.watcher.Close()
	})
	return err
}

func (o *Overrides) apply() {
	data, err := os.ReadFile(o.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("[settings] Warning: could not read overrides: %v", err)
		}
		return
	}
	n, err := o.store.ApplyYAML(data)
	if err != nil {
		log.Printf("[settings] Warning: overrides partially applied: %v", err)
	}
	log.Printf("[settings] applied %d overrides from %s", n, o.path)
}

func (o *Overrides) run() {
	var last time.Time
	for {
		select {
		case event, ok := <-o.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != o.path {
				continue
			}
			now := time.Now()
			if now.Sub(last) < 100*time.Millisecond {
				continue
			}
			last = now
			select {
			case o.pending <- struct{}{}:
			default:
			}
		case err, ok := <-o.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[settings] watcher error: %v", err)
		case <-o.closeCh:
			return
		}
	}
}
