package deadletter

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/stayforge/hotelops/pkg/queue"
)

// maxLineBytes bounds a single JSONL record when reading the sink back.
// Payloads are small in practice; 8 MiB leaves generous headroom.
const maxLineBytes = 8 << 20

// FileSink appends dead letters to a JSONL file, one entry per line. The
// format survives crashes (a torn last line is skipped on read) and can be
// inspected with standard text tooling.
type FileSink struct {
	path string
	mu   sync.Mutex
}

// NewFileSink creates a sink appending to the given path, creating parent
// directories as needed. The file itself is created on first Store.
func NewFileSink(path string) (*FileSink, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty file path", ErrFailedToCreateSink)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Join(ErrFailedToCreateSink, err)
		}
	}
	return &FileSink{path: path}, nil
}

func (s *FileSink) Store(_ context.Context, entry queue.DeadLetter) error {
	line, err := json.Marshal(entry)
	if err != nil {
		return errors.Join(ErrFailedToStoreEntry, err)
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return errors.Join(ErrFailedToStoreEntry, err)
	}
	defer f.Close()

	if _, err := f.Write(line); err != nil {
		return errors.Join(ErrFailedToStoreEntry, err)
	}
	return nil
}

func (s *FileSink) List(_ context.Context, queueName string, limit int) ([]queue.DeadLetter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Join(ErrFailedToListEntries, err)
	}
	defer f.Close()

	var all []queue.DeadLetter
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64<<10), maxLineBytes)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var entry queue.DeadLetter
		if err := json.Unmarshal(line, &entry); err != nil {
			// Torn or corrupted lines are skipped rather than failing the
			// whole listing.
			continue
		}
		if queueName != "" && entry.Job.Queue != queueName {
			continue
		}
		all = append(all, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Join(ErrFailedToListEntries, err)
	}

	// The file is append-only, so reversing yields newest first.
	out := make([]queue.DeadLetter, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		out = append(out, all[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

var _ queue.DeadLetterSink = (*FileSink)(nil)
