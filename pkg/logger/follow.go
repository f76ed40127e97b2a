package logger

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Follow calls fn for every line appended to path until ctx is done, like
// `tail -F`. Existing content is skipped unless fromStart is set. A file
// that is truncated or recreated (the editor does this on every launch) is
// read again from the beginning.
func Follow(ctx context.Context, path string, fromStart bool, fn func(line string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory so that recreation of the file is noticed
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	t := &tail{path: path, fn: fn}
	if err := t.open(!fromStart); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	defer t.close()

	if err := t.drain(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch error: %w", err)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				t.close()
				if err := t.open(false); err != nil && !errors.Is(err, os.ErrNotExist) {
					return err
				}
			}
			if err := t.drain(); err != nil {
				return err
			}
		}
	}
}

type tail struct {
	path    string
	fn      func(string)
	file    *os.File
	reader  *bufio.Reader
	offset  int64
	partial strings.Builder
}

func (t *tail) open(seekEnd bool) error {
	file, err := os.Open(t.path)
	if err != nil {
		return err
	}
	t.offset = 0
	if seekEnd {
		if t.offset, err = file.Seek(0, io.SeekEnd); err != nil {
			_ = file.Close()
			return err
		}
	}
	t.file = file
	t.reader = bufio.NewReader(file)
	t.partial.Reset()
	return nil
}

func (t *tail) close() {
	if t.file != nil {
		_ = t.file.Close()
		t.file = nil
	}
}

// drain emits every complete line available
func (t *tail) drain() error {
	if t.file == nil {
		if err := t.open(false); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return err
		}
	}

	if info, err := t.file.Stat(); err == nil && info.Size() < t.offset {
		// truncated
		if _, err := t.file.Seek(0, io.SeekStart); err != nil {
			return err
		}
		t.offset = 0
		t.reader.Reset(t.file)
		t.partial.Reset()
	}

	for {
		chunk, err := t.reader.ReadString('\n')
		t.offset += int64(len(chunk))
		t.partial.WriteString(chunk)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", t.path, err)
		}
		line := strings.TrimRight(t.partial.String(), "\r\n")
		t.partial.Reset()
		t.fn(line)
	}
}
