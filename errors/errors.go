package errors

import "fmt"

// DecodeError wraps a failure to read an uploaded spreadsheet with the file it came from.
type DecodeError struct {
	File   string
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error in %q (%s): %v", e.File, e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DateError reports a date value that matched none of the accepted encodings.
// Input is kept verbatim so callers can retain it on the record.
type DateError struct {
	Input string
	Err   error
}

func (e *DateError) Error() string {
	return fmt.Sprintf("cannot normalize date %q: %v", e.Input, e.Err)
}

func (e *DateError) Unwrap() error {
	return e.Err
}

// Define specific error types for better error handling
var (
	ErrNoData             = fmt.Errorf("no valid data found")
	ErrUnreadableFile     = fmt.Errorf("failed to process file")
	ErrUnsupportedFormat  = fmt.Errorf("unsupported file format")
	ErrEmptyWorksheet     = fmt.Errorf("worksheet is empty")
	ErrMalformedDate      = fmt.Errorf("malformed date")
	ErrMalformedTimestamp = fmt.Errorf("malformed timestamp")
	ErrMissingName        = fmt.Errorf("missing name")
	ErrMissingDate        = fmt.Errorf("missing date")
	ErrStaleIngestion     = fmt.Errorf("superseded by a newer upload")
	ErrUnknownField       = fmt.Errorf("unknown field")
)
