package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/envchecker"
	"github.com/aretw0/envchecker/internal/presentation/tui"
	"github.com/fsnotify/fsnotify"
)

// debounceDelay lets editors finish writing before re-validating.
const debounceDelay = 100 * time.Millisecond

// RunWatch validates, then re-validates whenever the schema or an env file changes,
// until ctx is cancelled.
func RunWatch(ctx context.Context, opts CheckOptions, stdout io.Writer) error {
	logger := createLogger(opts.Debug)
	tui.PrintBanner(stdout, strings.TrimSpace(envchecker.Version))

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	files, err := watchedFiles(opts)
	if err != nil {
		return err
	}
	// Directories are watched so that rename-on-save editors keep being tracked.
	for _, dir := range watchedDirs(files) {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	logger.Info("Starting Watcher", "files", len(files))

	RunCheck(ctx, opts, stdout)
	printSystemMessage(stdout, "Waiting for changes...")

	var (
		debounce <-chan time.Time
		changed  string
	)
	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping watcher")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isRelevant(event, files) {
				continue
			}
			logger.Debug("Change detected", "event", event.String())
			changed = event.Name
			debounce = time.After(debounceDelay)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watcher error", "err", err)
		case <-debounce:
			debounce = nil
			printSystemMessage(stdout, "Change detected in '%s'.", changed)
			RunCheck(ctx, opts, stdout)
			printSystemMessage(stdout, "Waiting for changes...")
		}
	}
}

// watchedFiles returns the absolute paths of the schema and env files.
func watchedFiles(opts CheckOptions) (map[string]bool, error) {
	files := make(map[string]bool, len(opts.EnvFiles)+1)
	for _, p := range append([]string{opts.ConfigPath}, opts.EnvFiles...) {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		files[abs] = true
	}
	return files, nil
}

func watchedDirs(files map[string]bool) []string {
	seen := make(map[string]bool)
	var dirs []string
	for f := range files {
		dir := filepath.Dir(f)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// isRelevant reports whether event touches one of the watched files.
// Chmod-only events are ignored.
func isRelevant(event fsnotify.Event, files map[string]bool) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return files[abs]
}
