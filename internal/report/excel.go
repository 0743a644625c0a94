package report

import (
	"fmt"

	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	defaultSheet = "Sheet1"
	coverSheet   = "Cover"
)

// EncodeExcel writes the table to a workbook. Monthly reports get a cover sheet first.
func EncodeExcel(in *Input, t Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if in.Type == model.ReportMonthly {
		if err := f.SetSheetName(defaultSheet, coverSheet); err != nil {
			return nil, err
		}
		for i, line := range t.Notes {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			if err := f.SetCellStr(coverSheet, cell, line); err != nil {
				return nil, err
			}
		}
		if err := f.SetColWidth(coverSheet, "A", "A", 60); err != nil {
			return nil, err
		}
		if _, err := f.NewSheet(t.Sheet); err != nil {
			return nil, err
		}
		f.SetActiveSheet(0)
	} else if err := f.SetSheetName(defaultSheet, t.Sheet); err != nil {
		return nil, err
	}

	if err := writeSheet(f, t); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, t Table) error {
	header := make([]interface{}, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(t.Sheet, "A1", &header); err != nil {
		return err
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1E3A8A"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(t.Headers), 1)
	if err := f.SetCellStyle(t.Sheet, "A1", last, style); err != nil {
		return err
	}

	for i, h := range t.Headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(t.Sheet, col, col, float64(len(h)+6)); err != nil {
			return err
		}
	}

	for i, row := range t.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := row
		if err := f.SetSheetRow(t.Sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}
