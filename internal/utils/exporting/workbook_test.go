package exporting

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/innlodge/lodgebook_app/internal/core/domain"
)

func sampleSnapshot() *domain.CashbookSnapshot {
	roomID := "room-7"
	stayID := "stay-42"
	anchor := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)

	return &domain.CashbookSnapshot{
		PropertyID: "prop-1",
		WindowMode: domain.WindowToday,
		AnchorDate: anchor,
		Window: domain.TimeWindow{
			Start: time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, time.January, 10, 23, 59, 59, int(999*time.Millisecond), time.UTC),
		},
		Entries: []domain.LedgerEntry{
			{
				EntryID:    "entry-1",
				Kind:       domain.Income,
				Amount:     decimal.NewFromInt(100000),
				Method:     domain.Cash,
				Note:       "room night",
				OccurredAt: time.Date(2024, time.January, 10, 14, 30, 0, 0, time.UTC),
				RoomID:     &roomID,
				StayID:     &stayID,
			},
			{
				EntryID:    "entry-2",
				Kind:       domain.Expense,
				Amount:     decimal.NewFromInt(30000),
				Method:     domain.Transfer,
				Note:       "laundry",
				OccurredAt: time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC),
			},
		},
		RoomNames: map[string]string{roomID: "Deluxe 7"},
		DayTotals: domain.AggregateTotals{
			Income:  decimal.NewFromInt(100000),
			Expense: decimal.NewFromInt(30000),
			Profit:  decimal.NewFromInt(70000),
		},
		MonthTotals: domain.AggregateTotals{
			Income:  decimal.NewFromInt(150000),
			Expense: decimal.NewFromInt(30000),
			Profit:  decimal.NewFromInt(120000),
		},
		RangeTotals: domain.AggregateTotals{
			Income:  decimal.NewFromInt(100000),
			Expense: decimal.NewFromInt(30000),
			Profit:  decimal.NewFromInt(70000),
		},
	}
}

func TestFilename(t *testing.T) {
	day := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		mode   domain.WindowMode
		window domain.TimeWindow
		want   string
	}{
		{
			name:   "today carries a single date",
			mode:   domain.WindowToday,
			window: domain.TimeWindow{Start: day, End: day.Add(24*time.Hour - time.Millisecond)},
			want:   "cashbook_today_2024-01-10.xlsx",
		},
		{
			name:   "last 7 days carries both bounds",
			mode:   domain.WindowLast7Days,
			window: domain.TimeWindow{Start: day.AddDate(0, 0, -6), End: day.Add(24*time.Hour - time.Millisecond)},
			want:   "cashbook_last_7_days_2024-01-04_2024-01-10.xlsx",
		},
		{
			name:   "custom range carries both bounds",
			mode:   domain.WindowCustom,
			window: domain.TimeWindow{Start: day.AddDate(0, 0, -7), End: day.AddDate(0, 0, -2)},
			want:   "cashbook_custom_range_2024-01-03_2024-01-08.xlsx",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Filename(tc.mode, tc.window))
		})
	}
}

func TestBuildWorkbookSheets(t *testing.T) {
	content, err := BuildWorkbook(sampleSnapshot(), time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, content)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{DetailSheet, SummarySheet}, f.GetSheetList())
}

func TestBuildWorkbookDetailRows(t *testing.T) {
	content, err := BuildWorkbook(sampleSnapshot(), time.Now())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	cell := func(ref string) string {
		v, err := f.GetCellValue(DetailSheet, ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Date", cell("A1"))
	assert.Equal(t, "Stay ID", cell("H1"))

	// First row is the newest entry with a resolved room label.
	assert.Equal(t, "2024-01-10 14:30", cell("A2"))
	assert.Equal(t, "Income", cell("B2"))
	assert.Equal(t, "100000", cell("C2"))
	assert.Equal(t, "Cash", cell("D2"))
	assert.Equal(t, "Deluxe 7", cell("E2"))
	assert.Equal(t, "room night", cell("F2"))
	assert.Equal(t, "entry-1", cell("G2"))
	assert.Equal(t, "stay-42", cell("H2"))

	// Second row has no room or stay reference; those cells stay blank.
	assert.Equal(t, "Expense", cell("B3"))
	assert.Equal(t, "", cell("E3"))
	assert.Equal(t, "", cell("H3"))
}

func TestBuildWorkbookSummary(t *testing.T) {
	exportedAt := time.Date(2024, time.January, 11, 8, 0, 0, 0, time.UTC)

	content, err := BuildWorkbook(sampleSnapshot(), exportedAt)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	cell := func(ref string) string {
		v, err := f.GetCellValue(SummarySheet, ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Scope", cell("A1"))
	assert.Equal(t, "Day 2024-01-10", cell("A2"))
	assert.Equal(t, "100000", cell("B2"))
	assert.Equal(t, "30000", cell("C2"))
	assert.Equal(t, "70000", cell("D2"))

	assert.Equal(t, "Month 2024-01", cell("A3"))
	assert.Equal(t, "150000", cell("B3"))
	assert.Equal(t, "120000", cell("D3"))

	assert.Equal(t, "Range 2024-01-10 to 2024-01-10", cell("A4"))
	assert.Equal(t, "70000", cell("D4"))

	assert.Equal(t, "Exported", cell("A5"))
	assert.Equal(t, exportedAt.Format(time.RFC3339), cell("B5"))
	assert.Equal(t, "prop-1", cell("C5"))
}
