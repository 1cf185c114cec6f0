package dump

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Carmen-Shannon/oxy-gltf/common"
	"github.com/fsnotify/fsnotify"
)

// Watch calls onChange with the path of every watched file that is created or
// written until ctx is cancelled. The parent directories are watched so that
// editors replacing a file through a rename are still seen.
//
// Parameters:
//   - ctx: cancels the watch
//   - paths: the files to watch
//   - onChange: called from the watch goroutine for each change
//
// Returns:
//   - error: error if the watcher cannot be created or a directory cannot be added
func Watch(ctx context.Context, paths []string, onChange func(path string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	targets := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		targets[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}
	common.LogInfo("watching %d files in %d directories", len(targets), len(dirs))

	for {
		select {
		case e, ok := <-w.Events:
			if !ok {
				return nil
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			abs, err := filepath.Abs(e.Name)
			if err != nil || !targets[abs] {
				continue
			}
			common.LogDebug("change detected: %s %s", e.Op, abs)
			onChange(abs)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			common.LogError("watch error: %s", err.Error())

		case <-ctx.Done():
			return nil
		}
	}
}
