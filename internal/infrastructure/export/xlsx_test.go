package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/counselling-appointment/booking-system/internal/core/ports"
)

func sampleRows() []ports.ExportRow {
	return []ports.ExportRow{
		{
			Date: "2025-03-10", Slot: "9:00-10:00", Name: "A",
			RegistrationNumber: "REG-1", Phone: "123", Reason: "exam stress",
			Feedback: "resolved", SessionComplete: "Yes",
		},
		{
			Date: "2025-03-11", Slot: "2:00-3:00", Name: "B",
			RegistrationNumber: "REG-2", Phone: "456", Reason: "follow-up",
			SessionComplete: "No",
		},
	}
}

func TestWriteWorkbook_HeaderAndRows(t *testing.T) {
	data, err := WriteWorkbook(sampleRows())
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer f.Close()

	got, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(got))
	}

	if got[0][0] != "Date" || got[0][7] != "SessionComplete" {
		t.Errorf("header mismatch: %v", got[0])
	}
	if got[1][0] != "2025-03-10" || got[1][2] != "A" || got[1][7] != "Yes" {
		t.Errorf("first data row mismatch: %v", got[1])
	}
	if got[2][1] != "2:00-3:00" || got[2][7] != "No" {
		t.Errorf("second data row mismatch: %v", got[2])
	}
}

func TestWriteWorkbook_EmptyStillHasHeader(t *testing.T) {
	data, err := WriteWorkbook(nil)
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != sheetName {
		t.Fatalf("expected single %q sheet, got %v", sheetName, sheets)
	}

	got, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected header only, got %d rows", len(got))
	}
}
