package core

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"attachmint/pkg/errors"
	"attachmint/pkg/types"
)

// debounceWindow coalesces rapid change bursts into a single rescan.
const debounceWindow = 500 * time.Millisecond

// Watch marks the snapshot dirty on vault filesystem events and, after the
// debounce window settles, re-detects and hands the fresh report to
// onReport. root is the vault's OS directory. Blocks until ctx is done.
func (e *Engine) Watch(ctx context.Context, root string, onReport func(*types.DetectReport)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to create watcher")
	}
	defer func() { _ = watcher.Close() }()

	if err := addRecursive(watcher, root); err != nil {
		return err
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	rescan := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			e.logger.Trace().Str("path", event.Name).Str("op", event.Op.String()).Msg("Vault changed")
			if event.Op.Has(fsnotify.Create) {
				// New folders must be watched too.
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}
			e.MarkDirty()
			if timer == nil {
				timer = time.AfterFunc(debounceWindow, func() {
					select {
					case rescan <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(debounceWindow)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			e.logger.Warn().Err(err).Msg("Watcher error")

		case <-rescan:
			timer = nil
			report, err := e.DetectReport(false)
			if err != nil {
				e.logger.Error().Err(err).Msg("Rescan failed")
				continue
			}
			if onReport != nil {
				onReport(report)
			}
		}
	}
}

// addRecursive watches root and every folder beneath it, skipping hidden
// folders the same way the vault listing does.
func addRecursive(watcher *fsnotify.Watcher, root string) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && len(d.Name()) > 0 && d.Name()[0] == '.' {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
	if err != nil {
		return errors.Wrapf(err, errors.ErrVaultList, "failed to watch %q", root)
	}
	return nil
}
