package eventlog

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "stripelog/pkg/errors"
)

func validRecord() Record {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	amount := int64(500)
	return Record{
		ID:                 "evt_1",
		EventType:          "charge.succeeded",
		ObjectEventID:      "ch_100",
		Object:             "charge",
		CustomerID:         "cus_1",
		Email:              "a@example.com",
		Amount:             &amount,
		EventDatetime:      ts,
		EventUnixTimestamp: ts.Unix(),
	}
}

func TestRecordValidate(t *testing.T) {
	negative := int64(-1)

	tests := []struct {
		name    string
		mutate  func(*Record)
		message string
	}{
		{"missing id", func(r *Record) { r.ID = "" }, "event id is required"},
		{"missing event type", func(r *Record) { r.EventType = "" }, "event type is required"},
		{"id too long", func(r *Record) { r.ID = strings.Repeat("x", MaxIDLen+1) }, "event id exceeds"},
		{"object too long", func(r *Record) { r.Object = strings.Repeat("x", MaxObjectLen+1) }, "object exceeds"},
		{"email too long", func(r *Record) { r.Email = strings.Repeat("a", 30) + "@example.com" }, "email exceeds"},
		{"negative amount", func(r *Record) { r.Amount = &negative }, "amount must not be negative"},
		{"negative amount due", func(r *Record) { r.AmountDue = &negative }, "amount_due must not be negative"},
		{"no event time", func(r *Record) { r.EventDatetime = time.Time{}; r.EventUnixTimestamp = 0 }, "event time is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := validRecord()
			tt.mutate(&record)

			err := record.Validate()
			require.Error(t, err)
			assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
			assert.Contains(t, err.Error(), tt.message)
		})
	}

	assert.NoError(t, validRecord().Validate())
}

func TestRecordValidateOverLongEmailIsDeterministic(t *testing.T) {
	record := validRecord()
	record.Email = strings.Repeat("a", MaxEmailLen) + "@example.com"

	first := record.Validate()
	second := record.Validate()
	require.Error(t, first)
	require.Error(t, second)
	assert.Equal(t, first.Error(), second.Error())
}

func TestRecordValidateNilAmountsAllowed(t *testing.T) {
	record := validRecord()
	record.Amount = nil
	record.AmountDue = nil
	record.AmountRefunded = nil
	assert.NoError(t, record.Validate())
}

func TestNormalizeDerivesUnixFromDatetime(t *testing.T) {
	record := validRecord()
	record.EventUnixTimestamp = 0

	record.Normalize()
	assert.Equal(t, record.EventDatetime.Unix(), record.EventUnixTimestamp)
}

func TestNormalizeDerivesDatetimeFromUnix(t *testing.T) {
	record := validRecord()
	record.EventDatetime = time.Time{}

	record.Normalize()
	assert.Equal(t, time.Unix(record.EventUnixTimestamp, 0).UTC(), record.EventDatetime)
}

func TestRawEventValidate(t *testing.T) {
	valid := RawEvent{
		ID:                 "evt_1",
		Object:             "charge",
		EventUnixTimestamp: 1714564800,
		Payload:            json.RawMessage(`{"id":"ch_100"}`),
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*RawEvent)
	}{
		{"missing id", func(r *RawEvent) { r.ID = "" }},
		{"missing object", func(r *RawEvent) { r.Object = "" }},
		{"missing timestamp", func(r *RawEvent) { r.EventUnixTimestamp = 0 }},
		{"empty payload", func(r *RawEvent) { r.Payload = nil }},
		{"malformed payload", func(r *RawEvent) { r.Payload = json.RawMessage(`{"id":`) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := valid
			tt.mutate(&event)

			err := event.Validate()
			require.Error(t, err)
			assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
		})
	}
}
