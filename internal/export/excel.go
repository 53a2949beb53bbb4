package export

import (
	"fmt"
	"time"

	"factfind/internal/model"

	"github.com/xuri/excelize/v2"
)

// ExcelMeta carries the workbook header fields.
type ExcelMeta struct {
	ClientName  string
	ClientEmail string
	SessionID   int
	CompletedAt time.Time
}

// BuildExcel renders the question/answer pairs into a single-sheet
// workbook: a metadata block, then a Question/Answer table.
func BuildExcel(meta ExcelMeta, pairs []model.QA) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	f.SetCellValue(sheet, "A1", "Insurance Fact Find Summary")
	f.SetCellStyle(sheet, "A1", "A1", titleStyle)

	f.SetCellValue(sheet, "A3", "Session ID")
	f.SetCellValue(sheet, "B3", meta.SessionID)
	f.SetCellValue(sheet, "A4", "Date Completed")
	f.SetCellValue(sheet, "B4", meta.CompletedAt.Format("2006-01-02"))
	f.SetCellValue(sheet, "A5", "Client Name")
	f.SetCellValue(sheet, "B5", meta.ClientName)
	f.SetCellValue(sheet, "A6", "Client Email")
	f.SetCellValue(sheet, "B6", meta.ClientEmail)

	f.SetCellValue(sheet, "A8", "Question")
	f.SetCellValue(sheet, "B8", "Answer")
	f.SetCellStyle(sheet, "A8", "B8", headerStyle)

	for i, qa := range pairs {
		row := 9 + i
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), qa.Question)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), qa.Answer)
	}

	f.SetColWidth(sheet, "A", "A", 40)
	f.SetColWidth(sheet, "B", "B", 60)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render workbook: %w", err)
	}
	return buf.Bytes(), nil
}
