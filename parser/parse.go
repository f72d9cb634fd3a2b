package parser

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	customerrors "workforce-dashboard/errors"
	"workforce-dashboard/models"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// Format identifies the spreadsheet encoding of an upload.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
)

// maxXLSRows bounds how far a legacy workbook is scanned.
const maxXLSRows = 100000

// DetectFormat picks the decoder from the file extension.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".xls":
		return FormatXLS, nil
	default:
		return "", fmt.Errorf("%w: %q", customerrors.ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// Decode reads an uploaded spreadsheet and returns its data rows.
// Only the first worksheet is read. The first non-blank row is the header row;
// headers are lower-cased and trimmed so lookups are case-insensitive.
// Entirely blank rows are skipped, and cells missing from short rows read as "".
// A file with no data rows yields errors.ErrNoData.
func Decode(ctx context.Context, r io.Reader, filename string) ([]models.RawRow, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &customerrors.DecodeError{
			File:   filename,
			Format: string(format),
			Err:    fmt.Errorf("%w: %v", customerrors.ErrUnreadableFile, err),
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var grid [][]string
	switch format {
	case FormatCSV:
		grid, err = readCSV(data)
	case FormatXLSX:
		grid, err = readXLSX(data)
	case FormatXLS:
		grid, err = readXLS(data)
	}
	if err != nil {
		return nil, &customerrors.DecodeError{
			File:   filename,
			Format: string(format),
			Err:    fmt.Errorf("%w: %v", customerrors.ErrUnreadableFile, err),
		}
	}

	return toRows(ctx, grid)
}

func readCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader.ReadAll()
}

func readXLSX(data []byte) ([][]string, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, customerrors.ErrEmptyWorksheet
	}
	return file.GetRows(sheetName)
}

func readXLS(data []byte) (grid [][]string, err error) {
	// The legacy reader panics on some malformed workbooks.
	defer func() {
		if r := recover(); r != nil {
			grid, err = nil, fmt.Errorf("malformed workbook: %v", r)
		}
	}()

	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	if workbook.NumSheets() == 0 {
		return nil, customerrors.ErrEmptyWorksheet
	}
	sheet := workbook.GetSheet(0)
	if sheet == nil {
		return nil, customerrors.ErrEmptyWorksheet
	}

	width := 0
	for i := 0; i <= int(sheet.MaxRow) && i < maxXLSRows; i++ {
		row := xlsRow(sheet, i)
		if row == nil {
			grid = append(grid, nil)
			continue
		}
		last := row.LastCol()
		// Cells written without a ROW record report no extent.
		if last <= 0 {
			last = width
		}
		cells := make([]string, last)
		for j := max(row.FirstCol(), 0); j < last; j++ {
			cells[j] = row.Col(j)
		}
		width = max(width, last)
		grid = append(grid, cells)
	}
	return grid, nil
}

// xlsRow returns nil for an index the sheet holds no record for.
// WorkSheet.Row dereferences the missing row instead.
func xlsRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}

// toRows turns a cell grid into header-keyed rows.
func toRows(ctx context.Context, grid [][]string) ([]models.RawRow, error) {
	headerIdx := -1
	for i, cells := range grid {
		if !isBlank(cells) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, customerrors.ErrNoData
	}

	headers := make([]string, len(grid[headerIdx]))
	for i, h := range grid[headerIdx] {
		headers[i] = NormalizeHeader(h)
	}

	rows := make([]models.RawRow, 0, len(grid)-headerIdx-1)
	for i, cells := range grid[headerIdx+1:] {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if isBlank(cells) {
			continue
		}

		row := make(models.RawRow, len(headers))
		for j, header := range headers {
			if header == "" {
				continue
			}
			// Duplicate headers: the first non-empty cell wins.
			if existing := row[header]; existing != "" {
				continue
			}
			row[header] = cellValue(cells, j)
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, customerrors.ErrNoData
	}
	return rows, nil
}

// NormalizeHeader lower-cases a header and collapses its whitespace.
func NormalizeHeader(header string) string {
	header = strings.TrimPrefix(header, "\ufeff")
	return strings.ToLower(strings.Join(strings.Fields(header), " "))
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
