// SPDX-FileCopyrightText: 2026 glistix
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/spf13/cobra"

	"github.com/glistix/glistix/internal/config"
	"github.com/glistix/glistix/internal/prelude"
	"github.com/glistix/glistix/internal/scanner"
)

var watchDebounce int

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Watch for document changes and regenerate",
	Long: `Watch typed-IR documents for changes and regenerate their modules.

Regeneration is debounced and incremental: a content-addressed cache of
generated output skips rewriting modules whose output is unchanged
since the previous round.

Example:
  glistix watch                     # Watch configured source paths
  glistix watch ./build/ir          # Watch a specific directory
  glistix watch --debounce 1000     # Wait 1s before regenerating`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&watchDebounce, "debounce", 0, "debounce duration in milliseconds")
}

// Watcher regenerates modules as their documents change.
type Watcher struct {
	cfg      *config.Config
	watcher  *fsnotify.Watcher
	paths    []string
	debounce time.Duration
	matcher  *scanner.Scanner

	// cache remembers hashes of previously written output, so an
	// unchanged module costs one hash instead of a rewrite
	cache *lru.Cache[[32]byte, string]

	mu sync.Mutex
}

// NewWatcher creates a Watcher over the given paths.
func NewWatcher(cfg *config.Config, paths []string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	debounce := time.Duration(cfg.Watch.Debounce) * time.Millisecond
	if watchDebounce > 0 {
		debounce = time.Duration(watchDebounce) * time.Millisecond
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	cache, err := lru.New[[32]byte, string](cfg.Watch.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create output cache: %w", err)
	}

	if len(paths) == 0 {
		paths = cfg.Source.Paths
	}

	return &Watcher{
		cfg:      cfg,
		watcher:  fsWatcher,
		paths:    paths,
		debounce: debounce,
		matcher: scanner.New(scanner.Config{
			IncludePatterns: cfg.Source.Include,
			ExcludePatterns: cfg.Source.Exclude,
		}),
		cache: cache,
	}, nil
}

// Close closes the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Watch regenerates once, then loops until the context is cancelled.
func (w *Watcher) Watch(ctx context.Context) error {
	for _, path := range w.paths {
		if err := w.addPath(path); err != nil {
			return fmt.Errorf("failed to add watch path %s: %w", path, err)
		}
	}

	if err := w.regenerate(); err != nil {
		log.Error("initial generation failed", "err", err)
	}

	var debounceTimer *time.Timer
	var debounceTimerMu sync.Mutex

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !w.shouldWatch(event.Name) {
				continue
			}
			log.Debug("document changed", "path", event.Name)

			debounceTimerMu.Lock()
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.debounce, func() {
				if err := w.regenerate(); err != nil {
					log.Error("regeneration failed", "err", err)
				}
			})
			debounceTimerMu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("watch error", "err", err)
		}
	}
}

// addPath adds a path and its subdirectories to the watcher.
func (w *Watcher) addPath(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return w.watcher.Add(absPath)
	}

	return filepath.Walk(absPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip inaccessible paths
		}
		if !info.IsDir() {
			return nil
		}
		if base := filepath.Base(path); path != absPath && strings.HasPrefix(base, ".") {
			return filepath.SkipDir
		}
		log.Debug("watching", "path", path)
		return w.watcher.Add(path)
	})
}

// shouldWatch checks whether a changed file should trigger regeneration.
func (w *Watcher) shouldWatch(path string) bool {
	for _, base := range w.paths {
		absBase, err := filepath.Abs(base)
		if err != nil {
			continue
		}
		relPath, err := filepath.Rel(absBase, path)
		if err != nil || strings.HasPrefix(relPath, "..") {
			continue
		}
		if w.matcher.Matches(relPath) {
			return true
		}
	}
	return false
}

// regenerate runs one generation round, writing only modules whose
// generated source is not already in the output cache.
func (w *Watcher) regenerate() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	start := time.Now()
	results, failures := generateCached(w.cfg, w.paths, w.cache)
	for _, failure := range failures {
		log.Error("generation failed", "err", failure)
	}

	written := 0
	for _, result := range results {
		if result.skipped {
			continue
		}
		if err := writeModule(result.generated); err != nil {
			return err
		}
		written++
	}

	if w.cfg.Prelude && written > 0 {
		if err := prelude.Install(w.cfg.Output); err != nil {
			return err
		}
	}

	log.Info("regenerated",
		"modules", len(results),
		"written", written,
		"failed", len(failures),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return nil
}

// cachedResult is one generation result plus whether the cache made the
// write unnecessary.
type cachedResult struct {
	generated
	skipped bool
}

// generateCached is generateAll with a content-addressed output cache.
func generateCached(cfg *config.Config, paths []string, cache *lru.Cache[[32]byte, string]) ([]cachedResult, []error) {
	results, failures := generateAll(cfg, paths)

	cached := make([]cachedResult, 0, len(results))
	for _, result := range results {
		key := sha256.Sum256([]byte(result.Source))
		_, seen := cache.Get(key)
		if !seen {
			cache.Add(key, result.Path)
		}
		cached = append(cached, cachedResult{generated: result, skipped: seen})
	}
	return cached, failures
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	watcher, err := NewWatcher(cfg, args)
	if err != nil {
		return err
	}
	defer watcher.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("watching for changes", "paths", strings.Join(watcher.paths, ", "))
	return watcher.Watch(ctx)
}
