package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeFor(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 2, 10, 14, 5, 0, 0, loc)
	endToday := time.Date(2026, 2, 10, 23, 59, 59, 999000000, loc)

	tests := []struct {
		preset     Preset
		start, end time.Time
	}{
		{PresetToday, time.Date(2026, 2, 10, 0, 0, 0, 0, loc), endToday},
		{PresetYesterday, time.Date(2026, 2, 9, 0, 0, 0, 0, loc), time.Date(2026, 2, 9, 23, 59, 59, 999000000, loc)},
		{PresetLast7Days, time.Date(2026, 2, 4, 0, 0, 0, 0, loc), endToday},
		{"", time.Date(2026, 2, 4, 0, 0, 0, 0, loc), endToday},
		{PresetLast30Days, time.Date(2026, 1, 12, 0, 0, 0, 0, loc), endToday},
		{PresetThisMonth, time.Date(2026, 2, 1, 0, 0, 0, 0, loc), time.Date(2026, 2, 28, 23, 59, 59, 999000000, loc)},
		{PresetCustom, time.Date(2026, 2, 3, 0, 0, 0, 0, loc), endToday},
	}
	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			r, err := RangeFor(tt.preset, now, loc, nil, nil)
			require.NoError(t, err)
			assert.True(t, tt.start.Equal(r.Start), "start %s", r.Start)
			assert.True(t, tt.end.Equal(r.End), "end %s", r.End)
		})
	}
}

func TestRangeForCustomDates(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	r, err := RangeFor(PresetCustom, time.Now(), time.UTC, &start, &end)
	require.NoError(t, err)
	assert.Equal(t, start, r.Start)
	assert.Equal(t, end, r.End)

	_, err = RangeFor("fortnight", time.Now(), time.UTC, nil, nil)
	assert.Error(t, err)
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 7, 23, 0, 0, 0, time.UTC)

	assert.Equal(t, "orders-20260201-20260207.csv", Filename("orders", &start, &end, now))
	assert.Equal(t, "orders-20260210.csv", Filename("orders", &start, nil, now))
	assert.Equal(t, "menu-20260210.csv", Filename("menu", nil, nil, now))
}
