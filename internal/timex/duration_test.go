package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type holder struct {
	Interval Duration `json:"interval" yaml:"interval"`
}

func TestDuration_JSON(t *testing.T) {
	var h holder
	require.NoError(t, json.Unmarshal([]byte(`{"interval":"2s"}`), &h))
	assert.Equal(t, 2*time.Second, h.Interval.Duration)

	require.NoError(t, json.Unmarshal([]byte(`{"interval":1500000000}`), &h))
	assert.Equal(t, 1500*time.Millisecond, h.Interval.Duration)

	err := json.Unmarshal([]byte(`{"interval":"soon"}`), &h)
	require.ErrorIs(t, err, ErrInvalidDuration)

	err = json.Unmarshal([]byte(`{"interval":true}`), &h)
	require.ErrorIs(t, err, ErrInvalidDuration)

	out, err := json.Marshal(holder{Interval: Duration{3 * time.Second}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"interval":"3s"}`, string(out))
}

func TestDuration_YAML(t *testing.T) {
	var h holder
	require.NoError(t, yaml.Unmarshal([]byte("interval: 250ms\n"), &h))
	assert.Equal(t, 250*time.Millisecond, h.Interval.Duration)

	require.NoError(t, yaml.Unmarshal([]byte("interval: 1000\n"), &h))
	assert.Equal(t, time.Microsecond, h.Interval.Duration)

	require.Error(t, yaml.Unmarshal([]byte("interval: later\n"), &h))
}
