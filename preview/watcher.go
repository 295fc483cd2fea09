package preview

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 100 * time.Millisecond

// Watcher reports debounced changes of a single file. The parent directory
// is watched so editors that replace the file on save are still seen.
type Watcher struct {
	watcher  *fsnotify.Watcher
	filename string
	debounce time.Duration
	updates  chan error
}

func WatchFile(filename string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, err
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		watcher:  watcher,
		filename: abs,
		debounce: debounce,
		updates:  make(chan error, 1),
	}, nil
}

// Updates receives nil after the file settled, or a watcher error.
// It is closed when Run returns.
func (w *Watcher) Updates() <-chan error {
	return w.updates
}

// Run processes file events until ctx is done or the watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.updates)
	defer w.watcher.Close()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.notify(err)
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.filename {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				timer.Reset(w.debounce)
			}
		case <-timer.C:
			w.notify(nil)
		}
	}
}

func (w *Watcher) notify(err error) {
	select {
	case w.updates <- err:
	default:
	}
}
