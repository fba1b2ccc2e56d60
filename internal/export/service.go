package export

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/certkit/copyright-extractor/constants"
	"github.com/certkit/copyright-extractor/internal/entity"
)

const sheetName = "软件著作权清单"

// Column widths tuned for the certificate fields; the software name column
// dominates.
var columnWidths = map[string]float64{
	"A": 8,  // 序号
	"B": 30, // 著作权人
	"C": 50, // 软件名称
	"D": 18, // 首次发表日期
	"E": 15, // 权利取得方式
	"F": 12, // 权利范围
	"G": 20, // 登记号
	"H": 20, // 备注
}

// Columns holding identifiers and dates are centered; free text stays left.
var centeredColumns = map[int]bool{1: true, 4: true, 7: true}

// Service renders cleaned certificate records to an XLSX workbook.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ExportXLSX returns an XLSX workbook (as bytes) listing the given records
// in order. Records arrive already cleaned and numbered.
func (s *Service) ExportXLSX(records []entity.CleanedRecord) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, dataStyle, dataCenterStyle, err := buildStyles(f)
	if err != nil {
		return nil, err
	}

	for i, h := range constants.ExportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, rec := range records {
		row := rowIdx + 2

		remark := ""
		if rec.OriginalSerial != "" {
			remark = fmt.Sprintf("原序号: %s", rec.OriginalSerial)
		}
		values := []any{
			rec.DisplayNumber,
			rec.Owner,
			rec.SoftwareName,
			rec.PublicationDate,
			rec.AcquisitionMethod,
			rec.RightsScope,
			rec.RegistrationNumber,
			remark,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(sheetName, cell, v)
			style := dataStyle
			if centeredColumns[col+1] {
				style = dataCenterStyle
			}
			_ = f.SetCellStyle(sheetName, cell, cell, style)
		}
	}

	for col, width := range columnWidths {
		_ = f.SetColWidth(sheetName, col, col, width)
	}
	_ = f.SetRowHeight(sheetName, 1, 25)
	_ = f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	s.logger.Info("exported certificate list",
		"records", len(records), "duration_ms", time.Since(start).Milliseconds())
	return buf.Bytes(), nil
}

// SaveXLSX writes the workbook for records to path.
func (s *Service) SaveXLSX(path string, records []entity.CleanedRecord) error {
	data, err := s.ExportXLSX(records)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	s.logger.Info("saved workbook", "path", path, "bytes", len(data))
	return nil
}

func buildStyles(f *excelize.File) (header, data, dataCenter int, err error) {
	thin := []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}
	header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "微软雅黑", Size: 11, Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thin,
	})
	if err != nil {
		return 0, 0, 0, fmt.Errorf("header style: %w", err)
	}
	data, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "微软雅黑", Size: 10},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center", WrapText: true},
		Border:    thin,
	})
	if err != nil {
		return 0, 0, 0, fmt.Errorf("data style: %w", err)
	}
	dataCenter, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "微软雅黑", Size: 10},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thin,
	})
	if err != nil {
		return 0, 0, 0, fmt.Errorf("centered data style: %w", err)
	}
	return header, data, dataCenter, nil
}
