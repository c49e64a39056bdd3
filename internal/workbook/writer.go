package workbook

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"clinic-etl/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	// ReportSheet is the sheet name of the coded report.
	ReportSheet = "Pacientes"
	// TemplateSheet is the sheet name of the empty clinical template.
	TemplateSheet = "Formato"

	maxColumnWidth = 60
)

// GenerateReport renders the coded rows as an xlsx document. Cells of the
// RAM column holding 1 are filled red.
func GenerateReport(rows []models.ReportRow) ([]byte, error) {
	data := make([][]any, len(rows))
	for i := range rows {
		data[i] = rows[i].Cells()
	}
	return generateSheet(ReportSheet, models.ReportColumns, data, models.ColRAM)
}

// GenerateTemplate renders the empty clinical-format workbook.
func GenerateTemplate() ([]byte, error) {
	return generateSheet(TemplateSheet, models.TemplateColumns, nil, "")
}

// WriteReport writes the report document to path.
func WriteReport(path string, rows []models.ReportRow) ([]byte, error) {
	data, err := GenerateReport(rows)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return data, nil
}

// WriteTemplate writes the empty template to path.
func WriteTemplate(path string) error {
	data, err := GenerateTemplate()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write template %s: %w", path, err)
	}
	return nil
}

// generateSheet writes headers and data to a single-sheet workbook with a
// bold frozen header row and widths fitted to the content. When highlight
// names a header, cells of that column equal to 1 are filled red.
func generateSheet(sheetName string, headers []string, data [][]any, highlight string) ([]byte, error) {
	f := excelize.NewFile()
	// WriteTo needs the file open; close explicitly on every path.

	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if sheetName != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{
			Vertical: "center",
			WrapText: true,
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	redStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FF0000"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create highlight style: %w", err)
	}

	widths := make([]int, len(headers))
	highlightCol := -1
	for col, header := range headers {
		if err := setCellValue(f, sheetName, col+1, 1, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %d: %w", col+1, err)
		}
		widths[col] = textWidth(header)
		if highlightCol < 0 && header == highlight {
			highlightCol = col
		}
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", lastHeader, headerStyle); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to set header style: %w", err)
	}

	for rowIdx, cells := range data {
		row := rowIdx + 2
		for col, value := range cells {
			if value == nil {
				continue
			}
			if err := setCellValue(f, sheetName, col+1, row, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell value at row %d, col %d: %w", row, col+1, err)
			}
			if col < len(widths) {
				if w := textWidth(fmt.Sprint(value)); w > widths[col] {
					widths[col] = w
				}
			}
			if col == highlightCol && value == 1 {
				cell, _ := excelize.CoordinatesToCellName(col+1, row)
				if err := f.SetCellStyle(sheetName, cell, cell, redStyle); err != nil {
					f.Close()
					return nil, fmt.Errorf("failed to highlight %s: %w", cell, err)
				}
			}
		}
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		width := float64(w + 2)
		if width > maxColumnWidth {
			width = maxColumnWidth
		}
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}
	return buf.Bytes(), nil
}

func setCellValue(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}

// textWidth is the rune length of the longest line of s.
func textWidth(s string) int {
	w := 0
	for _, line := range strings.Split(s, "\n") {
		if n := utf8.RuneCountInString(line); n > w {
			w = n
		}
	}
	return w
}
