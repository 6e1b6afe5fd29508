// Package report renders measurement exports as XLSX workbooks.
package report

import (
	"bytes"
	"fmt"

	"github.com/dmitrijs2005/recipex/internal/server/models"
	"github.com/dmitrijs2005/recipex/internal/server/vitals"
	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of the produced workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SheetName is the only sheet of a measurements workbook.
const SheetName = "Measurements"

// MeasurementHeader lists the columns in output order.
var MeasurementHeader = []string{
	"ID",
	"Date Time",
	"Kind",
	"Systolic",
	"Diastolic",
	"BPM",
	"Respirations",
	"SpO2",
	"HGT",
	"Degrees",
	"NRS",
	"CHL Level",
}

var columnWidths = []float64{8, 20, 8, 10, 10, 8, 13, 8, 8, 9, 6, 10}

// Measurements builds a workbook with one row per measurement under a frozen
// header row. Fields outside a measurement's kind are left blank.
func Measurements(ms []*models.Measurement) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range MeasurementHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(SheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(SheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}

		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(SheetName, name, name, columnWidths[col]); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, m := range ms {
		if err := writeRow(f, i+2, m); err != nil {
			return nil, err
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, row int, m *models.Measurement) error {
	v := m.Values
	cells := []any{
		m.ID,
		vitals.FormatTimestamp(m.DateTime),
		string(m.Kind),
		intCell(v.Systolic),
		intCell(v.Diastolic),
		intCell(v.BPM),
		intCell(v.Respirations),
		floatCell(v.SpO2),
		floatCell(v.HGT),
		floatCell(v.Degrees),
		intCell(v.NRS),
		intCell(v.CHLLevel),
	}

	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

// intCell and floatCell turn absent values into nil so the cell stays empty.
func intCell(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

func floatCell(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
