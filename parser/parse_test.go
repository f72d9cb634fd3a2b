package parser_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	customerrors "workforce-dashboard/errors"
	"workforce-dashboard/models"
	"workforce-dashboard/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestDecode_CSV(t *testing.T) {
	tests := map[string]struct {
		input         string
		expectedData  []models.RawRow
		expectedError error
	}{
		"ValidInput_HeadersLowerCased": {
			input: `
Name,Date,Shifts,Position
Sun Hengly,5/10/25,9PM-3AM,NOC
`,
			expectedData: []models.RawRow{
				{"name": "Sun Hengly", "date": "5/10/25", "shifts": "9PM-3AM", "position": "NOC"},
			},
		},
		"ValidInput_ShortRowAndBlankLines": {
			input: `
NAME , Date
Dara,05-11-2025

Sokha
`,
			expectedData: []models.RawRow{
				{"name": "Dara", "date": "05-11-2025"},
				{"name": "Sokha", "date": ""},
			},
		},
		"ValidInput_QuotedCells": {
			input: `
Name,Shift
"Chan, Vuthy","8AM-5PM"
`,
			expectedData: []models.RawRow{
				{"name": "Chan, Vuthy", "shift": "8AM-5PM"},
			},
		},
		"ValidInput_ByteOrderMark": {
			input: "\xef\xbb\xbfName,Date\nDara,05-11-2025\n",
			expectedData: []models.RawRow{
				{"name": "Dara", "date": "05-11-2025"},
			},
		},
		"Error_HeaderOnly": {
			input:         `Name,Date`,
			expectedError: customerrors.ErrNoData,
		},
		"Error_Empty": {
			input:         ``,
			expectedError: customerrors.ErrNoData,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			r := strings.NewReader(strings.TrimLeft(tt.input, "\n"))
			got, err := parser.Decode(context.Background(), r, "schedule.csv")

			if tt.expectedError != nil {
				assert.True(t, errors.Is(err, tt.expectedError), "got error %v", err)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedData, got)
		})
	}
}

func TestDecode_XLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Name", "Date", "SHIFTS", "Position"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"Sun Hengly", "5/10/25", "9PM-3AM", "NOC"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"Keo Sothea", "2025-05-11", "8AM-5PM", "Agent"}))

	// A second sheet must be ignored.
	_, err := f.NewSheet("Other")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Other", "A1", &[]any{"Name"}))
	require.NoError(t, f.SetSheetRow("Other", "A2", &[]any{"Ignored"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	got, err := parser.Decode(context.Background(), bytes.NewReader(buf.Bytes()), "Roster.XLSX")
	require.NoError(t, err)
	assert.Equal(t, []models.RawRow{
		{"name": "Sun Hengly", "date": "5/10/25", "shifts": "9PM-3AM", "position": "NOC"},
		{"name": "Keo Sothea", "date": "2025-05-11", "shifts": "8AM-5PM", "position": "Agent"},
	}, got)
}

// testdata/schedule.xls has a header row, a full row, a row with no record,
// a one-cell row, a row whose cells have no ROW record and an empty ROW record.
func TestDecode_XLS(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "schedule.xls"))
	require.NoError(t, err)

	got, err := parser.Decode(context.Background(), bytes.NewReader(data), "schedule.xls")
	require.NoError(t, err)
	assert.Equal(t, []models.RawRow{
		{"name": "Dara", "date": "05-11-2025", "shift": "8AM-5PM"},
		{"name": "Sokha", "date": "", "shift": ""},
		{"name": "Vuthy", "date": "45787", "shift": "9PM-3AM"},
	}, got)
}

func TestDecode_Errors(t *testing.T) {
	tests := map[string]struct {
		filename      string
		content       []byte
		expectedError error
	}{
		"UnsupportedExtension": {
			filename:      "schedule.pdf",
			content:       []byte("%PDF-1.4"),
			expectedError: customerrors.ErrUnsupportedFormat,
		},
		"CorruptXLSX": {
			filename:      "schedule.xlsx",
			content:       []byte("not a zip archive"),
			expectedError: customerrors.ErrUnreadableFile,
		},
		"CorruptXLS": {
			filename:      "schedule.xls",
			content:       []byte("not an ole2 container"),
			expectedError: customerrors.ErrUnreadableFile,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := parser.Decode(context.Background(), bytes.NewReader(tt.content), tt.filename)
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, tt.expectedError), "got error %v", err)
		})
	}
}

func TestDecode_DecodeErrorCarriesFile(t *testing.T) {
	_, err := parser.Decode(context.Background(), strings.NewReader("junk"), "calls.xlsx")
	var decodeErr *customerrors.DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "calls.xlsx", decodeErr.File)
	assert.Equal(t, string(parser.FormatXLSX), decodeErr.Format)
}

func TestDecode_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := parser.Decode(ctx, strings.NewReader("Name\nDara\n"), "a.csv")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]struct {
		filename string
		expected parser.Format
		wantErr  bool
	}{
		"CSV":     {filename: "a.csv", expected: parser.FormatCSV},
		"XLSX":    {filename: "dir/b.XLSX", expected: parser.FormatXLSX},
		"XLSM":    {filename: "b.xlsm", expected: parser.FormatXLSX},
		"XLS":     {filename: "c.xls", expected: parser.FormatXLS},
		"NoExt":   {filename: "schedule", wantErr: true},
		"Unknown": {filename: "d.txt", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := parser.DetectFormat(tt.filename)
			if tt.wantErr {
				assert.ErrorIs(t, err, customerrors.ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "shift date", parser.NormalizeHeader("  Shift   DATE "))
	assert.Equal(t, "name", parser.NormalizeHeader("\ufeffName"))
}
