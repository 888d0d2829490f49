// Package workbook serialises an export to an .xlsx workbook with two sheets:
// the session echo first, the timezone conversions second.
package workbook

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/pkordes/tzplanner/internal/domain"
)

// Sheet names, in workbook order.
const (
	SessionsSheet    = "Sessions"
	ConversionsSheet = "Conversions"
)

// ContentType is the MIME type of the bytes produced by Write.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SessionHeaders labels the columns of the Sessions sheet.
var SessionHeaders = []string{
	"ID", "Mode of Training", "Course Name", "Schedule Name", "Start Date",
	"End Date", "Dates", "Base Timezone", "Start Time", "End Time",
}

// ConversionHeaders labels the columns of the Conversions sheet.
var ConversionHeaders = []string{
	"ID", "Country", "City", "Region", "Start Date",
	"Start Time", "End Date", "End Time", "Timezone",
}

// Write encodes exp as an xlsx workbook to w.
func Write(w io.Writer, exp domain.Export) error {
	f := excelize.NewFile()
	defer f.Close()

	// A new file starts with a single default sheet; rename it so Sessions
	// stays at index 0.
	if err := f.SetSheetName(f.GetSheetName(0), SessionsSheet); err != nil {
		return fmt.Errorf("workbook.Write: %w", err)
	}
	if _, err := f.NewSheet(ConversionsSheet); err != nil {
		return fmt.Errorf("workbook.Write: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("workbook.Write: %w", err)
	}

	inputs := make([][]any, len(exp.Inputs))
	for i, r := range exp.Inputs {
		inputs[i] = InputRecord(r)
	}
	if err := writeSheet(f, SessionsSheet, SessionHeaders, inputs, header); err != nil {
		return fmt.Errorf("workbook.Write: %w", err)
	}

	conversions := make([][]any, len(exp.Conversions))
	for i, r := range exp.Conversions {
		conversions[i] = ConversionRecord(r)
	}
	if err := writeSheet(f, ConversionsSheet, ConversionHeaders, conversions, header); err != nil {
		return fmt.Errorf("workbook.Write: %w", err)
	}

	f.SetActiveSheet(0)
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("workbook.Write: %w", err)
	}
	return nil
}

// Encode returns exp as xlsx bytes.
func Encode(exp domain.Export) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, exp); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// InputRecord lays out an InputRow in SessionHeaders order.
func InputRecord(r domain.InputRow) []any {
	return []any{
		r.ID, r.ModeOfTraining, r.CourseName, r.ScheduleName, r.StartDate,
		r.EndDate, r.Dates, r.BaseTimezone, r.StartTime, r.EndTime,
	}
}

// ConversionRecord lays out a ConversionRow in ConversionHeaders order.
func ConversionRecord(r domain.ConversionRow) []any {
	return []any{
		r.ID, r.Country, r.City, r.Region, r.StartDate,
		r.StartTime, r.EndDate, r.EndTime, r.Timezone,
	}
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]any, headerStyle int) error {
	head := make([]any, len(headers))
	for i, h := range headers {
		head[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &head); err != nil {
		return err
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	last, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", last, 18)
}
