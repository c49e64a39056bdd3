// Package workbook reads interview workbooks and writes the coded report.
package workbook

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"clinic-etl/internal/models"

	"github.com/xuri/excelize/v2"
)

// ErrNoSheet is returned for a workbook without any sheet.
var ErrNoSheet = errors.New("workbook has no sheets")

// blockRows is the height of one patient block.
const blockRows = 7

// blockColumns are the (0-based) column triplets a block can sit in. The
// interview sheet lays out up to three patients side by side.
var blockColumns = [][3]int{
	{2, 3, 4},
	{7, 8, 9},
	{12, 13, 14},
}

// ReadBlocks opens an interview workbook and returns its patient blocks.
func ReadBlocks(path string) ([]models.RawBlock, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	return readBlocks(f, path)
}

// ReadBlocksFrom reads blocks from an in-memory workbook. source is
// recorded on every block.
func ReadBlocksFrom(r io.Reader, source string) ([]models.RawBlock, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse workbook %s: %w", source, err)
	}
	defer f.Close()

	return readBlocks(f, source)
}

func readBlocks(f *excelize.File, source string) ([]models.RawBlock, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheet
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of %s: %w", source, err)
	}
	g := grid(rows)

	var blocks []models.RawBlock
	for r := 0; r < len(g); {
		if g.rowEmpty(r) {
			r++
			continue
		}
		for _, cols := range blockColumns {
			if cols[0] >= g.width() || g.blockEmpty(r, cols) {
				continue
			}
			blocks = append(blocks, models.RawBlock{
				SourceFile:   source,
				Row:          r,
				Column:       cols[0],
				Name:         g.cell(r, cols[0]),
				Objective:    g.cell(r+2, cols[1]),
				Observations: g.cell(r+2, cols[2]),
				Evaluation:   g.cell(r+4, cols[0]),
				Clinimetry:   g.cell(r+6, cols[0]),
			})
		}
		r += blockRows
	}
	return blocks, nil
}

// grid is a jagged row set as returned by GetRows; missing cells read as "".
type grid [][]string

func (g grid) cell(r, c int) string {
	if r < 0 || r >= len(g) || c < 0 || c >= len(g[r]) {
		return ""
	}
	return g[r][c]
}

func (g grid) width() int {
	w := 0
	for _, row := range g {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

func (g grid) rowEmpty(r int) bool {
	for _, v := range g[r] {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func (g grid) blockEmpty(r int, cols [3]int) bool {
	for i := r; i < r+blockRows; i++ {
		for _, c := range cols {
			if strings.TrimSpace(g.cell(i, c)) != "" {
				return false
			}
		}
	}
	return true
}
