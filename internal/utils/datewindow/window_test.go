package datewindow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/innlodge/lodgebook_app/internal/core/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStartAndEndOfDay(t *testing.T) {
	noon := time.Date(2024, time.January, 10, 12, 34, 56, 789, time.UTC)

	start := StartOfDay(noon)
	assert.Equal(t, time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC), start)

	end := EndOfDay(noon)
	assert.Equal(t, time.Date(2024, time.January, 10, 23, 59, 59, int(999*time.Millisecond), time.UTC), end)
	assert.Equal(t, time.Millisecond, StartOfDay(noon.AddDate(0, 0, 1)).Sub(end))
}

func TestStartOfDayKeepsLocation(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	local := time.Date(2024, time.March, 5, 1, 30, 0, 0, loc)
	start := StartOfDay(local)

	assert.Equal(t, loc, start.Location())
	assert.Equal(t, 5, start.Day())
	assert.Equal(t, 0, start.Hour())
}

func TestDayWindowIgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2024, time.January, 10, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, time.January, 10, 22, 45, 0, 0, time.UTC)

	assert.Equal(t, DayWindow(morning), DayWindow(evening))
}

func TestMonthWindowCoversWholeMonth(t *testing.T) {
	tests := []struct {
		name      string
		anchor    time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "mid january",
			anchor:    date(2024, time.January, 10),
			wantStart: date(2024, time.January, 1),
			wantEnd:   date(2024, time.February, 1).Add(-time.Millisecond),
		},
		{
			name:      "leap february",
			anchor:    date(2024, time.February, 29),
			wantStart: date(2024, time.February, 1),
			wantEnd:   date(2024, time.March, 1).Add(-time.Millisecond),
		},
		{
			name:      "december rolls into next year",
			anchor:    date(2023, time.December, 31),
			wantStart: date(2023, time.December, 1),
			wantEnd:   date(2024, time.January, 1).Add(-time.Millisecond),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := MonthWindow(tc.anchor)
			assert.Equal(t, tc.wantStart, w.Start)
			assert.Equal(t, tc.wantEnd, w.End)
		})
	}
}

func TestResolveToday(t *testing.T) {
	anchor := date(2024, time.January, 10)

	w := Resolve(domain.WindowToday, anchor, time.Time{}, time.Time{})

	assert.Equal(t, StartOfDay(anchor), w.Start)
	assert.Equal(t, EndOfDay(anchor), w.End)
	assert.False(t, w.IsEmpty())
}

func TestResolveTodayEqualsSingleDayCustomRange(t *testing.T) {
	anchor := date(2024, time.January, 10)

	today := Resolve(domain.WindowToday, anchor, time.Time{}, time.Time{})
	custom := Resolve(domain.WindowCustom, anchor, anchor, anchor)

	assert.Equal(t, today, custom)
}

func TestResolveLastNDaysSpans(t *testing.T) {
	anchor := date(2024, time.January, 10)

	tests := []struct {
		name      string
		mode      domain.WindowMode
		days      int
		wantStart time.Time
	}{
		{"last 7 days", domain.WindowLast7Days, 7, date(2024, time.January, 4)},
		{"last 30 days", domain.WindowLast30Days, 30, date(2023, time.December, 12)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := Resolve(tc.mode, anchor, time.Time{}, time.Time{})

			assert.Equal(t, tc.wantStart, w.Start)
			assert.Equal(t, EndOfDay(anchor), w.End)

			// The span covers exactly tc.days calendar days including the anchor.
			daysCovered := int(StartOfDay(anchor).Sub(w.Start).Hours()/24) + 1
			assert.Equal(t, tc.days, daysCovered)
			assert.True(t, w.Contains(StartOfDay(anchor)))
			assert.True(t, w.Contains(w.Start))
			assert.False(t, w.Contains(w.Start.Add(-time.Millisecond)))
		})
	}
}

func TestResolveCustomRange(t *testing.T) {
	from := date(2024, time.January, 3)
	to := date(2024, time.January, 8)

	w := Resolve(domain.WindowCustom, date(2024, time.January, 10), from, to)

	assert.Equal(t, StartOfDay(from), w.Start)
	assert.Equal(t, EndOfDay(to), w.End)
	assert.False(t, w.IsEmpty())
}

func TestResolveInvertedCustomRangeIsEmpty(t *testing.T) {
	from := date(2024, time.January, 8)
	to := date(2024, time.January, 3)

	w := Resolve(domain.WindowCustom, date(2024, time.January, 10), from, to)

	assert.True(t, w.IsEmpty())
	assert.False(t, w.Contains(date(2024, time.January, 5)))
}

func TestResolveUnknownModeFallsBackToDay(t *testing.T) {
	anchor := date(2024, time.January, 10)

	w := Resolve(domain.WindowMode("SOMETHING_ELSE"), anchor, time.Time{}, time.Time{})

	assert.Equal(t, DayWindow(anchor), w)
}

func TestMidDay(t *testing.T) {
	d := MidDay(date(2024, time.January, 15))
	assert.Equal(t, 12, d.Hour())
	assert.Equal(t, 0, d.Minute())
	assert.Equal(t, 15, d.Day())
}
