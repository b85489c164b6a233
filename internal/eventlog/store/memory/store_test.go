package memory

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"stripelog/internal/eventlog"
	"stripelog/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *Store
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = New()
}

func amount(v int64) *int64 {
	return &v
}

func testRecord(id string, ts time.Time) eventlog.Record {
	return eventlog.Record{
		ID:                 id,
		EventType:          "charge.succeeded",
		ObjectEventID:      "ch_100",
		Object:             "charge",
		CustomerID:         "cus_1",
		Email:              "a@example.com",
		Amount:             amount(500),
		EventDatetime:      ts,
		EventUnixTimestamp: ts.Unix(),
	}
}

func (s *InMemoryStoreSuite) TestAppendAndLookups() {
	ctx := context.Background()
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	record := testRecord("evt_1", t0)

	require.NoError(s.T(), s.store.Append(ctx, record))

	byEmail, err := s.store.LookupByEmail(ctx, "a@example.com")
	require.NoError(s.T(), err)
	require.Len(s.T(), byEmail, 1)
	assert.Equal(s.T(), record, byEmail[0])

	byType, err := s.store.LookupByType(ctx, "charge.succeeded")
	require.NoError(s.T(), err)
	require.Len(s.T(), byType, 1)
	assert.Equal(s.T(), "evt_1", byType[0].ID)

	inRange, err := s.store.LookupByTimeRange(ctx, t0.Add(-time.Minute), t0.Add(time.Minute))
	require.NoError(s.T(), err)
	assert.Len(s.T(), inRange, 1)
}

func (s *InMemoryStoreSuite) TestDuplicateAppendLeavesFirstRecord() {
	ctx := context.Background()
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	first := testRecord("evt_1", t0)
	require.NoError(s.T(), s.store.Append(ctx, first))

	second := testRecord("evt_1", t0.Add(time.Hour))
	second.Email = "b@example.com"
	second.Amount = amount(999)
	err := s.store.Append(ctx, second)
	assert.ErrorIs(s.T(), err, sentinel.ErrConflict)

	byEmail, err := s.store.LookupByEmail(ctx, "a@example.com")
	require.NoError(s.T(), err)
	require.Len(s.T(), byEmail, 1)
	assert.Equal(s.T(), first, byEmail[0])

	gone, err := s.store.LookupByEmail(ctx, "b@example.com")
	require.NoError(s.T(), err)
	assert.Empty(s.T(), gone)
}

func (s *InMemoryStoreSuite) TestNilAmountRoundTripsAsNil() {
	ctx := context.Background()
	record := testRecord("evt_nil", time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	record.Amount = nil

	require.NoError(s.T(), s.store.Append(ctx, record))

	found, err := s.store.LookupByType(ctx, "charge.succeeded")
	require.NoError(s.T(), err)
	require.Len(s.T(), found, 1)
	assert.Nil(s.T(), found[0].Amount)
}

func (s *InMemoryStoreSuite) TestLookupOrderedByEventTime() {
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for _, offset := range []int{3, 1, 2} {
		record := testRecord("evt_"+string(rune('0'+offset)), base.Add(time.Duration(offset)*time.Hour))
		require.NoError(s.T(), s.store.Append(ctx, record))
	}

	records, err := s.store.LookupByEmail(ctx, "a@example.com")
	require.NoError(s.T(), err)
	require.Len(s.T(), records, 3)
	assert.True(s.T(), records[0].EventUnixTimestamp < records[1].EventUnixTimestamp)
	assert.True(s.T(), records[1].EventUnixTimestamp < records[2].EventUnixTimestamp)
}

func (s *InMemoryStoreSuite) TestSameSecondEventsBothStored() {
	ctx := context.Background()
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(s.T(), s.store.Append(ctx, testRecord("evt_a", ts)))
	require.NoError(s.T(), s.store.Append(ctx, testRecord("evt_b", ts)))

	records, err := s.store.LookupByType(ctx, "charge.succeeded")
	require.NoError(s.T(), err)
	require.Len(s.T(), records, 2)
	assert.Equal(s.T(), "evt_a", records[0].ID)
	assert.Equal(s.T(), "evt_b", records[1].ID)
}

func (s *InMemoryStoreSuite) TestTimeRangeIsHalfOpen() {
	ctx := context.Background()
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	require.NoError(s.T(), s.store.Append(ctx, testRecord("evt_start", t0)))
	require.NoError(s.T(), s.store.Append(ctx, testRecord("evt_end", t1)))

	records, err := s.store.LookupByTimeRange(ctx, t0, t1)
	require.NoError(s.T(), err)
	require.Len(s.T(), records, 1)
	assert.Equal(s.T(), "evt_start", records[0].ID)
}

func (s *InMemoryStoreSuite) TestResetEmptiesLog() {
	ctx := context.Background()
	require.NoError(s.T(), s.store.Append(ctx, testRecord("evt_1", time.Now())))
	require.NoError(s.T(), s.store.Put(ctx, eventlog.RawEvent{
		ID:                 "evt_1",
		Object:             "charge",
		EventUnixTimestamp: 1,
		Payload:            json.RawMessage(`{}`),
	}))

	require.NoError(s.T(), s.store.Reset(ctx))

	records, err := s.store.LookupByEmail(ctx, "a@example.com")
	require.NoError(s.T(), err)
	assert.Empty(s.T(), records)

	raw, err := s.store.ListByObjectSince(ctx, "charge", 0)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), raw)
}

func (s *InMemoryStoreSuite) TestStoredRecordDetachedFromCaller() {
	ctx := context.Background()
	record := testRecord("evt_detach", time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(s.T(), s.store.Append(ctx, record))

	*record.Amount = 12345

	found, err := s.store.LookupByType(ctx, "charge.succeeded")
	require.NoError(s.T(), err)
	require.Len(s.T(), found, 1)
	assert.Equal(s.T(), int64(500), *found[0].Amount)
}

func (s *InMemoryStoreSuite) TestRawPutAndListByObjectSince() {
	ctx := context.Background()

	for i, id := range []string{"evt_r3", "evt_r1", "evt_r2"} {
		event := eventlog.RawEvent{
			ID:                 id,
			Object:             "subscription",
			EventUnixTimestamp: int64(100 - i),
			Payload:            json.RawMessage(`{"quantity": 2}`),
		}
		require.NoError(s.T(), s.store.Put(ctx, event))
	}

	err := s.store.Put(ctx, eventlog.RawEvent{
		ID:                 "evt_r1",
		Object:             "subscription",
		EventUnixTimestamp: 50,
		Payload:            json.RawMessage(`{}`),
	})
	assert.ErrorIs(s.T(), err, sentinel.ErrConflict)

	events, err := s.store.ListByObjectSince(ctx, "subscription", 99)
	require.NoError(s.T(), err)
	require.Len(s.T(), events, 2)
	assert.Equal(s.T(), "evt_r1", events[0].ID)
	assert.Equal(s.T(), "evt_r3", events[1].ID)

	none, err := s.store.ListByObjectSince(ctx, "invoice", 0)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), none)
}
