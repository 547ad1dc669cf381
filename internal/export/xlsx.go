// Package export renders a stored analysis as an XLSX workbook so estimates
// can be handed off to spreadsheet-based workflows.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/onedaone/reco-ai-demo/pkg/models"
)

const sheet = "Estimate"

// AnalysisXLSX returns an XLSX workbook with one row per line item plus a
// total row, preceded by the analysis summary.
func AnalysisXLSX(rec *models.AnalysisRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	write := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	write(1, 1, "Summary")
	write(2, 1, rec.Summary)
	write(1, 2, "Created")
	write(2, 2, rec.CreatedAt.Format("2006-01-02 15:04"))

	headers := []string{"Description", "Qty", "Unit", "Unit price", "Subtotal"}
	const headerRow = 4
	for i, h := range headers {
		write(i+1, headerRow, h)
	}

	row := headerRow + 1
	for _, item := range rec.Result.Items {
		write(1, row, item.Desc)
		write(2, row, float64(item.Qty))
		write(3, row, item.Unit)
		write(4, row, float64(item.UnitPrice))
		write(5, row, float64(item.Subtotal))
		row++
	}

	write(4, row+1, "Total")
	write(5, row+1, string(rec.Result.EstimatedTotal))

	_ = f.SetColWidth(sheet, "A", "A", 48)
	_ = f.SetColWidth(sheet, "B", "C", 10)
	_ = f.SetColWidth(sheet, "D", "E", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
