package deck

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExportXLSX writes one set to an Excel workbook, one card per row, so sets
// can be printed or shared outside the app.
func ExportXLSX(path, setName string, cards []Card) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	if err := f.SetSheetName(sheet, setName); err != nil {
		// Set names can contain characters Excel forbids in sheet names;
		// fall back to the default sheet.
		return writeRows(f, sheet, cards, path)
	}
	return writeRows(f, setName, cards, path)
}

func writeRows(f *excelize.File, sheet string, cards []Card, path string) error {
	headers := []string{"Type", "Front", "Back"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for row, c := range cards {
		values := []any{string(c.Type), c.Front, strings.Join(c.Back.Lines(), "\n")}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}
