// Package export renders ranked price points as spreadsheet files
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/hmkang/stockquery/internal/common"
	"github.com/hmkang/stockquery/internal/interfaces"
	"github.com/hmkang/stockquery/internal/models"
)

// ContentType is the MIME type for Office Open XML spreadsheets.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Filename returns the attachment name for a ticker's export.
func Filename(ticker string) string {
	return fmt.Sprintf("%s_stock_data.xlsx", ticker)
}

// Service implements ExportService using xlsx workbooks.
type Service struct {
	logger *common.Logger
}

// NewService creates a new export service.
func NewService(logger *common.Logger) *Service {
	return &Service{logger: logger}
}

// Workbook builds a two-column (Date, Close) sheet with a header row, rows
// in the given (ranked) order, and returns the serialized file.
func (s *Service) Workbook(points []models.PricePoint) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	if err := f.SetCellValue(sheet, "A1", "Date"); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.SetCellValue(sheet, "B1", "Close"); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, p := range points {
		row := i + 2
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), p.DateString()); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", row, err)
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", row), p.Close); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", row, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	s.logger.Debug().Int("rows", len(points)).Int("bytes", buf.Len()).Msg("Workbook built")

	return buf.Bytes(), nil
}

// Ensure Service implements ExportService
var _ interfaces.ExportService = (*Service)(nil)
