package tests

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/dto"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/ledger"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/model"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCollectionFixture() (service.CollectionService, *stubCollectionRepo, *stubEventRepo, *stubLabRepo) {
	events := newStubEventRepo()
	collections := newStubCollectionRepo(events)
	labs := newStubLabRepo()
	svc := service.NewCollectionService(collections, events, labs, nil)
	return svc, collections, events, labs
}

func submitReq() dto.SubmitCollectionRequest {
	lat := decimal.RequireFromString("28.6139")
	lng := decimal.RequireFromString("77.2090")
	return dto.SubmitCollectionRequest{
		HerbType:     "ashwagandha",
		Quantity:     decimal.NewFromInt(5),
		QualityGrade: "premium",
		LocationLat:  &lat,
		LocationLng:  &lng,
	}
}

func TestSubmitStampsAndPersists(t *testing.T) {
	svc, collections, events, _ := newCollectionFixture()

	resp, err := svc.Submit(context.Background(), submitReq())
	require.NoError(t, err)

	assert.Regexp(t, `^0x[0-9a-f]{64}$`, resp.Fingerprint)
	assert.Regexp(t, `^txn_[0-9a-f]{24}$`, resp.TransactionID)

	id := uuid.MustParse(resp.ID)
	stored, err := collections.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRecorded, stored.Status)
	assert.Equal(t, resp.Fingerprint, stored.BlockchainHash)

	// The opening collection event is written together with the record.
	evs, err := events.ListByCollection(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, model.EventCollection, evs[0].EventType)
	assert.Equal(t, model.EventCompleted, evs[0].Status)
}

func TestSubmitRejectsNonPositiveQuantity(t *testing.T) {
	svc, _, _, _ := newCollectionFixture()

	for _, qty := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-3)} {
		req := submitReq()
		req.Quantity = qty
		_, err := svc.Submit(context.Background(), req)
		var vErr *ledger.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "quantity")
	}
}

func TestSubmitRejectsUnknownGrade(t *testing.T) {
	svc, _, _, _ := newCollectionFixture()

	req := submitReq()
	req.QualityGrade = "exceptional"
	_, err := svc.Submit(context.Background(), req)
	var vErr *ledger.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "qualityGrade")
}

func TestAppendEventOrdering(t *testing.T) {
	svc, _, _, _ := newCollectionFixture()

	resp, err := svc.Submit(context.Background(), submitReq())
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	later := time.Now().UTC().Add(time.Hour)
	_, err = svc.AppendEvent(context.Background(), id, dto.AppendEventRequest{
		EventType: model.EventQualityCheck,
		Status:    model.EventCompleted,
		EventDate: &later,
	})
	require.NoError(t, err)

	// Equal timestamp is allowed.
	_, err = svc.AppendEvent(context.Background(), id, dto.AppendEventRequest{
		EventType: model.EventProcessing,
		Status:    model.EventCompleted,
		EventDate: &later,
	})
	require.NoError(t, err)

	// Earlier timestamp violates the append-only ordering.
	earlier := later.Add(-2 * time.Hour)
	_, err = svc.AppendEvent(context.Background(), id, dto.AppendEventRequest{
		EventType: model.EventPackaging,
		Status:    model.EventCompleted,
		EventDate: &earlier,
	})
	var oErr *ledger.OrderingError
	require.ErrorAs(t, err, &oErr)
	assert.True(t, oErr.Attempted.Before(oErr.Latest))
}

func TestAppendEventRejectsSecondCollectionEvent(t *testing.T) {
	svc, _, events, _ := newCollectionFixture()

	resp, err := svc.Submit(context.Background(), submitReq())
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	// The opening collection event is written by Submit; appending another,
	// even with a later timestamp, must fail and leave the log untouched.
	later := time.Now().UTC().Add(time.Hour)
	_, err = svc.AppendEvent(context.Background(), id, dto.AppendEventRequest{
		EventType: model.EventCollection,
		Status:    model.EventCompleted,
		EventDate: &later,
	})
	var vErr *ledger.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "eventType")

	evs, err := events.ListByCollection(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, model.EventCollection, evs[0].EventType)
}

func TestAppendEventUnknownCollection(t *testing.T) {
	svc, _, _, _ := newCollectionFixture()

	_, err := svc.AppendEvent(context.Background(), uuid.New(), dto.AppendEventRequest{
		EventType: model.EventShipping,
		Status:    model.EventPending,
	})
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestStatusAdvancesForwardOnly(t *testing.T) {
	svc, collections, _, _ := newCollectionFixture()

	resp, err := svc.Submit(context.Background(), submitReq())
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	appendAt := func(eventType string, offset time.Duration) {
		t.Helper()
		at := time.Now().UTC().Add(offset)
		_, err := svc.AppendEvent(context.Background(), id, dto.AppendEventRequest{
			EventType: eventType,
			Status:    model.EventCompleted,
			EventDate: &at,
		})
		require.NoError(t, err)
	}

	status := func() string {
		c, err := collections.FindByID(context.Background(), id)
		require.NoError(t, err)
		return c.Status
	}

	appendAt(model.EventShipping, time.Hour)
	assert.Equal(t, model.StatusInTransit, status())

	appendAt(model.EventProcessing, 2*time.Hour)
	assert.Equal(t, model.StatusProcessed, status())

	appendAt(model.EventDelivered, 3*time.Hour)
	assert.Equal(t, model.StatusDelivered, status())

	// Nothing moves the status backwards.
	appendAt(model.EventShipping, 4*time.Hour)
	assert.Equal(t, model.StatusDelivered, status())
}

func TestAddLabResultBoundsPercentages(t *testing.T) {
	svc, _, _, labs := newCollectionFixture()

	resp, err := svc.Submit(context.Background(), submitReq())
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	over := decimal.NewFromInt(101)
	_, err = svc.AddLabResult(context.Background(), id, dto.AddLabResultRequest{
		LabName:          "AyurLab Delhi",
		PurityPercentage: &over,
	})
	var vErr *ledger.ValidationError
	require.ErrorAs(t, err, &vErr)

	purity := decimal.RequireFromString("98.50")
	moisture := decimal.RequireFromString("7.25")
	lr, err := svc.AddLabResult(context.Background(), id, dto.AddLabResultRequest{
		LabName:            "AyurLab Delhi",
		PurityPercentage:   &purity,
		MoisturePercentage: &moisture,
	})
	require.NoError(t, err)
	assert.Regexp(t, `^0x[0-9a-f]{64}$`, lr.Fingerprint)

	stored, err := labs.ListByCollection(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, stored, 1)
}

func TestAddLabResultUnknownCollection(t *testing.T) {
	svc, _, _, _ := newCollectionFixture()

	_, err := svc.AddLabResult(context.Background(), uuid.New(), dto.AddLabResultRequest{LabName: "AyurLab"})
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}
