// Package repository persists completed assessments to the stress log.
package repository

import (
	"context"

	"github.com/okian/mindscan/internal/domain/model"
)

// Store appends assessment records.
type Store interface {
	// Write persists one record.
	Write(ctx context.Context, a model.Assessment) error

	// Count returns the number of records written since open.
	Count() int64

	// Close flushes and releases the underlying storage.
	Close() error
}
