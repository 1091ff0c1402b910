package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOfUsesLocalCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	instant := time.Date(2026, time.October, 19, 23, 30, 0, 0, time.UTC).In(loc)

	assert.Equal(t, "2026-10-20", DateOf(instant).String())
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2026, time.January, 5)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"2026-01-05"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Equal(d))

	assert.Error(t, json.Unmarshal([]byte(`"2026-13-40"`), &back))
	assert.Error(t, json.Unmarshal([]byte(`20260105`), &back))
}

func TestDateScan(t *testing.T) {
	var d Date

	require.NoError(t, d.Scan(time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2026-03-02", d.String())

	require.NoError(t, d.Scan("2026-04-01"))
	assert.Equal(t, "2026-04-01", d.String())

	require.NoError(t, d.Scan([]byte("2026-04-02 00:00:00+00:00")))
	assert.Equal(t, "2026-04-02", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}

func TestDateOrdering(t *testing.T) {
	a := NewDate(2026, time.May, 1)
	b := a.AddDays(1)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Before(a))
	assert.True(t, a.AddDays(1).Equal(b))
}
