package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/counselling-appointment/booking-system/internal/core/ports"
)

// Filename is the deterministic download name for the weekly export.
const Filename = "Weekly_Appointments.xlsx"

const sheetName = "Appointments"

var header = []string{
	"Date", "Slot", "Name", "RegistrationNumber",
	"Phone", "Reason", "Feedback", "SessionComplete",
}

// WriteWorkbook serializes the booked-rows projection into a single-sheet
// xlsx workbook and returns the encoded bytes.
func WriteWorkbook(rows []ports.ExportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("export workbook: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("export workbook: %w", err)
	}

	if err := writeRow(f, 1, header); err != nil {
		return nil, err
	}
	for i, row := range rows {
		cells := []string{
			row.Date, row.Slot, row.Name, row.RegistrationNumber,
			row.Phone, row.Reason, row.Feedback, row.SessionComplete,
		}
		if err := writeRow(f, i+2, cells); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("export workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, rowNum int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("export workbook: %w", err)
	}
	if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
		return fmt.Errorf("export workbook: %w", err)
	}
	return nil
}
