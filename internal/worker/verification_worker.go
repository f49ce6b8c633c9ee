package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/ledger"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/model"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/repository"
	"github.com/rs/zerolog/log"
)

// VerificationWorker re-reads a stored collection and recomputes its content
// fingerprint from the persisted fields. It is the audit half of the stamper:
// the request path only verifies on resolve, this catches divergence in rows
// nobody has scanned yet.
type VerificationWorker struct {
	collections repository.CollectionRepository
}

func NewVerificationWorker(collections repository.CollectionRepository) *VerificationWorker {
	return &VerificationWorker{collections: collections}
}

// Process handles one verify job.
func (w *VerificationWorker) Process(ctx context.Context, payload json.RawMessage) error {
	var p VerifyPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("decode verify payload: %w", err)
	}
	id, err := uuid.Parse(p.CollectionID)
	if err != nil {
		return fmt.Errorf("verify payload collection_id: %w", err)
	}

	c, err := w.collections.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load collection %s: %w", id, err)
	}

	ok := ledger.Verify(c.BlockchainHash, canonicalOf(c))
	if !ok {
		log.Warn().
			Str("collection_id", c.ID.String()).
			Str("transaction_id", c.TransactionID).
			Str("stored_fingerprint", c.BlockchainHash).
			Msg("fingerprint mismatch: stored fields diverged from stamped payload")
		return nil
	}

	log.Debug().Str("collection_id", c.ID.String()).Msg("fingerprint verified")
	return nil
}

func canonicalOf(c *model.HerbCollection) ledger.CanonicalPayload {
	return ledger.NewCanonicalPayload(c.HerbType, c.Quantity, c.QualityGrade, c.LocationLat, c.LocationLng, c.CollectionDate)
}
