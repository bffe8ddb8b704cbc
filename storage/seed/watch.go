package seed

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/funil/core"
	inmemdb "github.com/trezcool/funil/storage/database/inmem"
)

const defaultDebounce = 500 * time.Millisecond

// Watcher reloads a dataset file into the store every time it changes.
// A dataset that fails to load or validate is logged and the store keeps its content.
type Watcher struct {
	path     string
	debounce time.Duration
	db       *inmemdb.DB
	validate *validator.Validate
	logger   core.Logger
	fsw      *fsnotify.Watcher
	reloaded chan error
}

func NewWatcher(
	path string,
	debounce time.Duration,
	db *inmemdb.DB,
	validate *validator.Validate,
	logger core.Logger,
) (*Watcher, error) {
	if path == "" {
		return nil, errors.New("no dataset file to watch")
	}
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, "resolving dataset path")
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating watcher")
	}
	// editors replace files on save, so watch the directory
	if err = fsw.Add(filepath.Dir(path)); err != nil {
		_ = fsw.Close()
		return nil, errors.Wrap(err, "watching dataset directory")
	}

	return &Watcher{
		path:     path,
		debounce: debounce,
		db:       db,
		validate: validate,
		logger:   logger,
		fsw:      fsw,
		reloaded: make(chan error, 1),
	}, nil
}

// Reloaded reports the outcome of every reload: nil on success.
// Outcomes nobody reads are dropped.
func (w *Watcher) Reloaded() <-chan error {
	return w.reloaded
}

// Run processes file events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fsw.Close()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("dataset watcher: "+err.Error(), err)

		case <-timer.C:
			w.report(w.reload())
		}
	}
}

func (w *Watcher) reload() error {
	ds, err := Load(w.path)
	if err != nil {
		w.logger.Error("could not reload dataset", err, map[string]interface{}{"path": w.path})
		return err
	}
	if err = Apply(w.db, ds, w.validate, w.logger); err != nil {
		w.logger.Error("could not reload dataset", err, map[string]interface{}{"path": w.path})
		return err
	}
	return nil
}

func (w *Watcher) report(err error) {
	select {
	case w.reloaded <- err:
	default:
	}
}
