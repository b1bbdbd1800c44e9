package trtsconfig

import (
	"log/slog"

	"github.com/fsnotify/fsnotify"
)

// Watch re-loads the config file at path whenever it changes on disk and
// invokes onChange with the result. It is a thin convenience for
// cmd/trtsim's --watch flag — not part of the simulation core, and it
// never touches a running simulation's State or Config (per spec.md §5's
// ownership rule, each simulation owns its own Config/State for the
// duration of the run; Watch only ever produces a fresh *Config for the
// *next* run).
//
// Watch blocks until stop is closed or the watcher errors unrecoverably.
func Watch(path string, stop <-chan struct{}, onChange func(*Config, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}

	for {
		select {
		case <-stop:
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				cfg, loadErr := Load(path)
				onChange(cfg, loadErr)
			}
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("config watch error", "path", path, "error", watchErr)
		}
	}
}
