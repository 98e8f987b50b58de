package docs

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"repair-workshop-backend/internal/model"
)

// BuildPartsXLSX renders the spare-parts inventory as a spreadsheet, one
// row per inventory line, with a separate sheet listing lines flagged for
// purchase.
func BuildPartsXLSX(parts []model.SparePart) ([]byte, error) {
	f := excelize.NewFile()
	inventorySheet := "inventory"
	purchaseSheet := "to purchase"
	f.SetSheetName("Sheet1", inventorySheet)
	f.NewSheet(purchaseSheet)

	headers := []string{"Name", "Type", "Subtype", "Quantity", "In stock"}
	for _, sheet := range []string{inventorySheet, purchaseSheet} {
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			_ = f.SetCellValue(sheet, cell, h)
		}
	}

	purchaseRow := 2
	for i, p := range parts {
		row := i + 2
		_ = f.SetCellValue(inventorySheet, fmt.Sprintf("A%d", row), p.Name)
		_ = f.SetCellValue(inventorySheet, fmt.Sprintf("B%d", row), string(p.Type))
		_ = f.SetCellValue(inventorySheet, fmt.Sprintf("C%d", row), p.Subtype)
		_ = f.SetCellValue(inventorySheet, fmt.Sprintf("D%d", row), p.Quantity)
		_ = f.SetCellValue(inventorySheet, fmt.Sprintf("E%d", row), p.InStock)

		if !p.InStock {
			_ = f.SetCellValue(purchaseSheet, fmt.Sprintf("A%d", purchaseRow), p.Name)
			_ = f.SetCellValue(purchaseSheet, fmt.Sprintf("B%d", purchaseRow), string(p.Type))
			_ = f.SetCellValue(purchaseSheet, fmt.Sprintf("C%d", purchaseRow), p.Subtype)
			_ = f.SetCellValue(purchaseSheet, fmt.Sprintf("D%d", purchaseRow), p.Quantity)
			_ = f.SetCellValue(purchaseSheet, fmt.Sprintf("E%d", purchaseRow), p.InStock)
			purchaseRow++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
