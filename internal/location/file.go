package location

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/trknhr/cardlog/internal/logger"
)

// FileProvider serves the last non-empty line of a file that an external
// GPS helper keeps rewriting. The file is watched and the value cached.
type FileProvider struct {
	path    string
	watcher *fsnotify.Watcher

	mu      sync.RWMutex
	current string

	done chan struct{}
	wg   sync.WaitGroup
}

func NewFileProvider(path string) (*FileProvider, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	// watch the directory so editors that replace the file are seen too
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	p := &FileProvider{
		path:    path,
		watcher: watcher,
		done:    make(chan struct{}),
	}
	p.reload()

	p.wg.Add(1)
	go p.loop()
	return p, nil
}

func (p *FileProvider) CurrentGeo(ctx context.Context) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current, p.current != ""
}

func (p *FileProvider) Close() error {
	close(p.done)
	err := p.watcher.Close()
	p.wg.Wait()
	return err
}

func (p *FileProvider) loop() {
	defer p.wg.Done()
	target := filepath.Clean(p.path)
	for {
		select {
		case <-p.done:
			return
		case evt, ok := <-p.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(evt.Name) != target {
				continue
			}
			if evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) != 0 {
				p.reload()
			}
		case err, ok := <-p.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("location watcher error: %v", err)
		}
	}
}

func (p *FileProvider) reload() {
	geo, err := readLastLine(p.path)
	if err != nil && !os.IsNotExist(err) {
		logger.Debug("failed to read location file %s: %v", p.path, err)
	}

	p.mu.Lock()
	p.current = geo
	p.mu.Unlock()
}

func readLastLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	last := ""
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			last = line
		}
	}
	return last, scanner.Err()
}
