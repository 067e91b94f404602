package repository

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/okian/mindscan/internal/domain/model"
)

// FileStore appends one JSON object per line to a file.
type FileStore struct {
	mu     sync.Mutex
	file   *os.File
	buf    *bufio.Writer
	enc    *json.Encoder
	closed bool
	count  atomic.Int64
}

// OpenFileStore opens path for appending, creating it if needed.
func OpenFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644) //nolint:gosec // operator-configured path
	if err != nil {
		return nil, fmt.Errorf("open stress log: %w", err)
	}
	buf := bufio.NewWriter(f)
	return &FileStore{file: f, buf: buf, enc: json.NewEncoder(buf)}, nil
}

// Write appends a record and flushes it to the file.
func (s *FileStore) Write(_ context.Context, a model.Assessment) error { //nolint:gocritic // hugeParam: matches Store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if err := s.enc.Encode(a); err != nil {
		return fmt.Errorf("encode record %s: %w", a.ID, err)
	}
	if err := s.buf.Flush(); err != nil {
		return fmt.Errorf("flush stress log: %w", err)
	}
	s.count.Add(1)
	return nil
}

// Count returns the number of records written since open.
func (s *FileStore) Count() int64 {
	return s.count.Load()
}

// Close flushes and closes the file. Closing twice is a no-op.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.buf.Flush(); err != nil {
		_ = s.file.Close()
		return fmt.Errorf("flush stress log: %w", err)
	}
	return s.file.Close()
}
