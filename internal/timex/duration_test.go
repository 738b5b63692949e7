package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalString(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"30m"`), &d))
	require.Equal(t, 30*time.Minute, d.Duration)
}

func TestDuration_UnmarshalNanoseconds(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`3000000000`), &d))
	require.Equal(t, 3*time.Second, d.Duration)
}

func TestDuration_UnmarshalInvalid(t *testing.T) {
	var d Duration
	require.Error(t, json.Unmarshal([]byte(`"soon"`), &d))
	require.Error(t, json.Unmarshal([]byte(`true`), &d))
}

func TestDuration_RoundTrip(t *testing.T) {
	out, err := json.Marshal(Duration{Duration: 90 * time.Second})
	require.NoError(t, err)
	require.JSONEq(t, `"1m30s"`, string(out))

	var d Duration
	require.NoError(t, json.Unmarshal(out, &d))
	require.Equal(t, 90*time.Second, d.Duration)
}
