package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeTimeProvider(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "local timezone", timezone: "Local"},
		{name: "UTC timezone", timezone: "UTC"},
		{name: "named timezone", timezone: "Asia/Shanghai"},
		{name: "empty defaults to Local", timezone: ""},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := InitializeTimeProvider(tt.timezone)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid timezone")
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, GetTimeProvider())
		})
	}
}

func TestTimeProvider_FormatWallClock(t *testing.T) {
	provider := &TimeProvider{}
	require.NoError(t, provider.SetTimezone("UTC"))

	at := time.Date(2024, 3, 15, 14, 30, 45, 0, time.UTC)
	assert.Equal(t, "14:30", provider.FormatWallClock(at, false))
	assert.Equal(t, "2:30 PM", provider.FormatWallClock(at, true))
}

func TestTimeProvider_In(t *testing.T) {
	provider := &TimeProvider{}
	require.NoError(t, provider.SetTimezone("Asia/Shanghai"))

	utcTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	converted := provider.In(utcTime)

	assert.True(t, utcTime.Equal(converted))
	assert.Equal(t, 20, converted.Hour())
}

func TestManualClock(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewManualClock(start)

	assert.Equal(t, start, clock.Now())
	clock.Advance(90 * time.Second)
	assert.Equal(t, start.Add(90*time.Second), clock.Now())
}
