package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "hh:mm", input: "09:30", want: "09:30"},
		{name: "postgres time", input: "14:00:00", want: "14:00"},
		{name: "postgres time with fraction", input: "14:00:00.000000", want: "14:00"},
		{name: "end of day", input: "24:00", want: "24:00"},
		{name: "past end of day", input: "24:30", wantErr: true},
		{name: "single digit hour", input: "9:30", wantErr: true},
		{name: "garbage", input: "noon", wantErr: true},
		{name: "minutes overflow", input: "10:60", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := MustTimeString("09:00").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:30"), got)

	got, err = MustTimeString("23:00").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), got)

	_, err = MustTimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_Compare(t *testing.T) {
	a := MustTimeString("09:00")
	b := MustTimeString("10:00")

	assert.True(t, a.IsBefore(b))
	assert.False(t, b.IsBefore(a))
	assert.True(t, b.IsAfter(a))
	assert.True(t, a.Equal(TimeString("09:00:00")))
}

func TestTimeString_On(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	date := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	got := MustTimeString("14:15").On(date, loc)

	assert.Equal(t, time.Date(2026, 3, 9, 14, 15, 0, 0, loc), got)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("08:45:00"))
	assert.Equal(t, TimeString("08:45"), ts)

	require.NoError(t, ts.Scan([]byte("17:00:00")))
	assert.Equal(t, TimeString("17:00"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_UnmarshalJSON(t *testing.T) {
	var payload struct {
		Start TimeString `json:"start"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"start":"11:00"}`), &payload))
	assert.Equal(t, TimeString("11:00"), payload.Start)

	assert.Error(t, json.Unmarshal([]byte(`{"start":"11h"}`), &payload))
}
