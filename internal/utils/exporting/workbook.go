// Package exporting assembles cashbook exports into xlsx workbooks.
package exporting

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/innlodge/lodgebook_app/internal/core/domain"
	"github.com/innlodge/lodgebook_app/internal/utils"
)

const (
	// DetailSheet holds one row per ledger entry of the active window.
	DetailSheet = "Ledger Detail"
	// SummarySheet holds the day, month and range totals plus export metadata.
	SummarySheet = "Summary"

	dateOnly     = "2006-01-02"
	timestampFmt = "2006-01-02 15:04"
)

// Filename encodes the window mode and its concrete bounds, so two exports
// with different settings can never share a name.
// Examples: cashbook_today_2024-01-10.xlsx,
// cashbook_last_7_days_2024-01-04_2024-01-10.xlsx.
func Filename(mode domain.WindowMode, window domain.TimeWindow) string {
	modePart := strings.ToLower(string(mode))
	if mode == domain.WindowToday {
		return fmt.Sprintf("cashbook_%s_%s.xlsx", modePart, window.Start.Format(dateOnly))
	}
	return fmt.Sprintf("cashbook_%s_%s_%s.xlsx", modePart, window.Start.Format(dateOnly), window.End.Format(dateOnly))
}

// BuildWorkbook renders a snapshot into a two sheet workbook and returns the
// serialized file. The caller decides whether there is anything worth
// exporting; an empty entry list here just yields an empty detail sheet.
func BuildWorkbook(snap *domain.CashbookSnapshot, exportedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", DetailSheet); err != nil {
		return nil, fmt.Errorf("failed to create detail sheet: %w", err)
	}

	headers := []string{"Date", "Kind", "Amount", "Method", "Room", "Note", "Entry ID", "Stay ID"}
	for i, h := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(DetailSheet, cell, h)
	}

	for idx, e := range snap.Entries {
		row := idx + 2

		room := ""
		if e.RoomID != nil {
			room = snap.RoomNames[*e.RoomID]
		}
		stayID := ""
		if e.StayID != nil {
			stayID = *e.StayID
		}

		f.SetCellValue(DetailSheet, fmt.Sprintf("A%d", row), e.OccurredAt.Format(timestampFmt))
		f.SetCellValue(DetailSheet, fmt.Sprintf("B%d", row), e.Kind.Label())
		f.SetCellValue(DetailSheet, fmt.Sprintf("C%d", row), utils.FormatWithPrecision(e.Amount, 2))
		f.SetCellValue(DetailSheet, fmt.Sprintf("D%d", row), e.Method.Label())
		f.SetCellValue(DetailSheet, fmt.Sprintf("E%d", row), room)
		f.SetCellValue(DetailSheet, fmt.Sprintf("F%d", row), e.Note)
		f.SetCellValue(DetailSheet, fmt.Sprintf("G%d", row), e.EntryID)
		f.SetCellValue(DetailSheet, fmt.Sprintf("H%d", row), stayID)
	}

	f.SetColWidth(DetailSheet, "A", "A", 18)
	f.SetColWidth(DetailSheet, "B", "B", 10)
	f.SetColWidth(DetailSheet, "C", "C", 14)
	f.SetColWidth(DetailSheet, "D", "D", 10)
	f.SetColWidth(DetailSheet, "E", "E", 14)
	f.SetColWidth(DetailSheet, "F", "F", 30)
	f.SetColWidth(DetailSheet, "G", "H", 38)

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}

	summaryHeaders := []string{"Scope", "Income", "Expense", "Profit"}
	for i, h := range summaryHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(SummarySheet, cell, h)
	}

	writeTotals := func(row int, scope string, totals domain.AggregateTotals) {
		f.SetCellValue(SummarySheet, fmt.Sprintf("A%d", row), scope)
		f.SetCellValue(SummarySheet, fmt.Sprintf("B%d", row), utils.FormatWithPrecision(totals.Income, 2))
		f.SetCellValue(SummarySheet, fmt.Sprintf("C%d", row), utils.FormatWithPrecision(totals.Expense, 2))
		f.SetCellValue(SummarySheet, fmt.Sprintf("D%d", row), utils.FormatWithPrecision(totals.Profit, 2))
	}

	writeTotals(2, fmt.Sprintf("Day %s", snap.AnchorDate.Format(dateOnly)), snap.DayTotals)
	writeTotals(3, fmt.Sprintf("Month %s", snap.AnchorDate.Format("2006-01")), snap.MonthTotals)
	writeTotals(4, fmt.Sprintf("Range %s to %s", snap.Window.Start.Format(dateOnly), snap.Window.End.Format(dateOnly)), snap.RangeTotals)

	f.SetCellValue(SummarySheet, "A5", "Exported")
	f.SetCellValue(SummarySheet, "B5", exportedAt.Format(time.RFC3339))
	f.SetCellValue(SummarySheet, "C5", snap.PropertyID)

	f.SetColWidth(SummarySheet, "A", "A", 28)
	f.SetColWidth(SummarySheet, "B", "D", 16)

	if idx, err := f.GetSheetIndex(DetailSheet); err == nil {
		f.SetActiveSheet(idx)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
