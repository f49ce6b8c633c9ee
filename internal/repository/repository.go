// Package repository implements data access over GORM/Postgres. Services
// depend on the interfaces declared here, not on the concrete GORM
// implementations, enabling clean unit testing via stubs.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/niranjanreddy03/herb-provenance-chain/internal/ledger"
	"gorm.io/gorm"
)

// storageTimeout bounds every store operation. Nothing in this service is
// allowed to hang on the database: a slow or unreachable Postgres surfaces
// as ledger.ErrStorageTimeout, which callers may retry with backoff.
const storageTimeout = 5 * time.Second

// withDeadline caps ctx at the storage timeout unless the caller already set
// a tighter one.
func withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < storageTimeout {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, storageTimeout)
}

// translate maps driver-level failures onto the ledger error taxonomy.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ledger.ErrNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return ledger.ErrStorageTimeout
	default:
		return err
	}
}
