package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// Watcher reloads a config file whenever it changes on disk and delivers the
// parsed result on Configs. Parse failures arrive on Errors.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	Configs chan *Config
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// Watch observes the directory holding path so that editors replacing the
// file by rename are still seen.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: fw,
		path:    abs,
		Configs: make(chan *Config, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Configs)
	defer close(w.Errors)

	// writes arrive in bursts; reload once the file has been quiet
	var settle <-chan time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			settle = time.After(watchDebounce)
		case <-settle:
			settle = nil
			cfg, err := Load(w.path)
			if err != nil {
				w.send(nil, err)
				continue
			}
			w.send(cfg, nil)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.send(nil, err)
		case <-w.closeCh:
			return
		}
	}
}

// send replaces any undelivered value so readers always see the newest state.
func (w *Watcher) send(cfg *Config, err error) {
	if err != nil {
		select {
		case <-w.Errors:
		default:
		}
		select {
		case w.Errors <- err:
		case <-w.closeCh:
		}
		return
	}
	select {
	case <-w.Configs:
	default:
	}
	select {
	case w.Configs <- cfg:
	case <-w.closeCh:
	}
}
