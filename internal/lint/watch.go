package lint

import (
	"github.com/fsnotify/fsnotify"
)

// Watcher re-checks template files when they change, using OS-native
// file notifications.
type Watcher struct {
	w   *fsnotify.Watcher
	evC chan string
	erC chan error
}

// NewWatcher creates a watcher over the given paths.
func NewWatcher(paths ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	fw := &Watcher{w: w, evC: make(chan string, 16), erC: make(chan error, 1)}
	for _, p := range paths {
		if err := w.Add(p); err != nil {
			w.Close()
			return nil, err
		}
	}
	go fw.loop()
	return fw, nil
}

func (fw *Watcher) loop() {
	for {
		select {
		case ev, ok := <-fw.w.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				fw.evC <- ev.Name
			}
		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}
			fw.erC <- err
		}
	}
}

// Changed delivers the path of each modified file.
func (fw *Watcher) Changed() <-chan string { return fw.evC }

// Errors delivers watcher errors.
func (fw *Watcher) Errors() <-chan error { return fw.erC }

// Close stops the watcher.
func (fw *Watcher) Close() error { return fw.w.Close() }
