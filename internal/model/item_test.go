package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTime(t *testing.T) {
	loc := time.FixedZone("CEST", 2*60*60)
	ts := time.Date(2026, 10, 19, 7, 30, 5, 123456789, loc)
	assert.Equal(t, "2026-10-19T05:30:05.123Z", FormatTime(ts))
}

func TestItem_JSONFieldNames(t *testing.T) {
	b, err := json.Marshal(Item{ID: 1760851805123, Text: "Snooze", CreatedAt: "2026-10-19T05:30:05.123Z"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1760851805123,"text":"Snooze","createdAt":"2026-10-19T05:30:05.123Z"}`, string(b))
}

func TestItem_Created(t *testing.T) {
	it := Item{CreatedAt: "2026-10-19T05:30:05.123Z"}
	assert.Equal(t, time.Date(2026, 10, 19, 5, 30, 5, 123000000, time.UTC), it.Created().UTC())

	bad := Item{CreatedAt: "yesterday"}
	assert.True(t, bad.Created().IsZero())
}
