package tests

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/dto"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/ledger"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBatchFixture(t *testing.T) (service.BatchService, []string) {
	t.Helper()
	events := newStubEventRepo()
	collections := newStubCollectionRepo(events)
	labs := newStubLabRepo()
	collectionSvc := service.NewCollectionService(collections, events, labs, nil)
	batchSvc := service.NewBatchService(newStubBatchRepo(), collections)

	var ids []string
	for _, herb := range []string{"ashwagandha", "tulsi", "brahmi"} {
		req := submitReq()
		req.HerbType = herb
		resp, err := collectionSvc.Submit(context.Background(), req)
		require.NoError(t, err)
		ids = append(ids, resp.ID)
	}
	return batchSvc, ids
}

func TestBatchAggregateOrderIndependent(t *testing.T) {
	batchSvc, ids := newBatchFixture(t)

	first, err := batchSvc.Create(context.Background(), dto.CreateBatchRequest{
		BatchID:       "HB-2026-001",
		ProductName:   "Immunity Blend",
		CollectionIDs: ids,
	})
	require.NoError(t, err)

	reversed := []string{ids[2], ids[1], ids[0]}
	second, err := batchSvc.Create(context.Background(), dto.CreateBatchRequest{
		BatchID:       "HB-2026-002",
		ProductName:   "Immunity Blend",
		CollectionIDs: reversed,
	})
	require.NoError(t, err)

	assert.Equal(t, first.Fingerprint, second.Fingerprint,
		"same member set must aggregate identically regardless of insertion order")
	assert.Regexp(t, `^0x[0-9a-f]{64}$`, first.Fingerprint)
}

func TestBatchAggregateIgnoresDuplicateMembers(t *testing.T) {
	batchSvc, ids := newBatchFixture(t)

	withDup, err := batchSvc.Create(context.Background(), dto.CreateBatchRequest{
		BatchID:       "HB-2026-010",
		ProductName:   "Immunity Blend",
		CollectionIDs: []string{ids[0], ids[0], ids[1]},
	})
	require.NoError(t, err)

	clean, err := batchSvc.Create(context.Background(), dto.CreateBatchRequest{
		BatchID:       "HB-2026-011",
		ProductName:   "Immunity Blend",
		CollectionIDs: []string{ids[0], ids[1]},
	})
	require.NoError(t, err)

	assert.Equal(t, clean.Fingerprint, withDup.Fingerprint,
		"aggregate covers the member set, not the submitted list")
	assert.ElementsMatch(t, []string{ids[0], ids[1]}, withDup.CollectionIDs)
}

func TestBatchExpiryMustFollowPackaging(t *testing.T) {
	batchSvc, ids := newBatchFixture(t)

	packaging := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	expiry := packaging.Add(-24 * time.Hour)
	_, err := batchSvc.Create(context.Background(), dto.CreateBatchRequest{
		BatchID:       "HB-2026-003",
		ProductName:   "Immunity Blend",
		CollectionIDs: ids,
		PackagingDate: &packaging,
		ExpiryDate:    &expiry,
	})
	var vErr *ledger.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "expiryDate")
}

func TestBatchRejectsUnknownCollection(t *testing.T) {
	batchSvc, ids := newBatchFixture(t)

	_, err := batchSvc.Create(context.Background(), dto.CreateBatchRequest{
		BatchID:       "HB-2026-004",
		ProductName:   "Immunity Blend",
		CollectionIDs: append(ids, uuid.NewString()),
	})
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestBatchLookupByIDOrCode(t *testing.T) {
	batchSvc, ids := newBatchFixture(t)

	created, err := batchSvc.Create(context.Background(), dto.CreateBatchRequest{
		BatchID:       "HB-2026-005",
		ProductName:   "Immunity Blend",
		CollectionIDs: ids,
	})
	require.NoError(t, err)
	require.NotNil(t, created.QRCodeData)
	assert.JSONEq(t, `{"batchId":"HB-2026-005"}`, *created.QRCodeData)

	byID, err := batchSvc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	byCode, err := batchSvc.Get(context.Background(), "HB-2026-005")
	require.NoError(t, err)
	assert.Equal(t, byID.ID, byCode.ID)

	_, err = batchSvc.Get(context.Background(), "HB-0000-000")
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}
