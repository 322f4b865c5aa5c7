package knowledge

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/cropwise/cropwise/pkg/models"
)

// DefaultSettleDelay is how long a file must go without events before it is
// read and published.
const DefaultSettleDelay = 500 * time.Millisecond

var watchedExtensions = map[string]bool{".txt": true, ".md": true}

// Watcher publishes a knowledge ingest task for every text or markdown file
// created or changed in a directory, once the file has stopped changing.
// Files already present when it starts are not ingested.
type Watcher struct {
	dir       string
	publisher models.TaskPublisher
	fs        *fsnotify.Watcher
	settle    time.Duration

	mu      sync.Mutex
	seen    map[string][sha256.Size]byte
	pending map[string]*time.Timer
}

func NewWatcher(dir string, publisher models.TaskPublisher) (*Watcher, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create knowledge directory: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	return &Watcher{
		dir:       dir,
		publisher: publisher,
		fs:        fsw,
		settle:    DefaultSettleDelay,
		seen:      map[string][sha256.Size]byte{},
		pending:   map[string]*time.Timer{},
	}, nil
}

// Run blocks until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	log.Infof("watching %s for knowledge documents", w.dir)
	defer w.stopPending()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			w.schedule(event.Name)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Errorf("knowledge watcher error: %s", err)
		}
	}
}

// schedule (re)starts the settle timer for path. A file written in several
// chunks is read once, after the last chunk.
func (w *Watcher) schedule(path string) {
	if !watchedExtensions[strings.ToLower(filepath.Ext(path))] {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Reset(w.settle)
		return
	}
	w.pending[path] = time.AfterFunc(w.settle, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		if err := w.ingest(path); err != nil {
			log.Errorf("failed to queue %s: %s", path, err)
		}
	})
}

func (w *Watcher) stopPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
}

func (w *Watcher) ingest(path string) error {
	if !watchedExtensions[strings.ToLower(filepath.Ext(path))] {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	content := strings.TrimSpace(string(data))
	if content == "" {
		return nil
	}

	// Rewriting a file with the same content is not a new document.
	sum := sha256.Sum256([]byte(content))
	w.mu.Lock()
	if w.seen[path] == sum {
		w.mu.Unlock()
		return nil
	}
	w.seen[path] = sum
	w.mu.Unlock()

	name := filepath.Base(path)
	return w.publisher.Publish(
		models.KnowledgeIngestTopic,
		map[string]string{"source": name},
		models.KnowledgeIngestTask{
			Content:  content,
			Metadata: map[string]any{"source": name},
		},
	)
}

func (w *Watcher) Close() error {
	w.stopPending()
	return w.fs.Close()
}
