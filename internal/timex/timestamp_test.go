package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_UnmarshalLayouts(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{in: `"2025-01-27T12:00:00Z"`, want: time.Date(2025, 1, 27, 12, 0, 0, 0, time.UTC)},
		{in: `"2025-01-27T12:00:00.5"`, want: time.Date(2025, 1, 27, 12, 0, 0, 500_000_000, time.UTC)},
		{in: `"2025-01-27 12:00:00"`, want: time.Date(2025, 1, 27, 12, 0, 0, 0, time.UTC)},
		{in: `"2025-01-27"`, want: time.Date(2025, 1, 27, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.in), &ts))
			assert.True(t, tt.want.Equal(ts.Time), "got %s", ts.Time)
		})
	}
}

func TestTimestamp_NullAndEmpty(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	assert.True(t, ts.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`""`), &ts))
	assert.True(t, ts.IsZero())

	b, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}

func TestTimestamp_Invalid(t *testing.T) {
	var ts Timestamp
	require.ErrorIs(t, json.Unmarshal([]byte(`"yesterday"`), &ts), ErrInvalidTimestamp)
	require.ErrorIs(t, json.Unmarshal([]byte(`42`), &ts), ErrInvalidTimestamp)
}

func TestTimestamp_MarshalRoundTrip(t *testing.T) {
	ts := Timestamp{Time: time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)}
	b, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-01T08:30:00Z"`, string(b))
}
