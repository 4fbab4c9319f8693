package csvimport

import "errors"

// Decode errors. Ingest turns any of them into a single diagnostic.
var (
	// ErrEmptyFile is returned when the file has no content
	ErrEmptyFile = errors.New("file is empty")

	// ErrInvalidEncoding is returned when delimited text is not valid UTF-8
	ErrInvalidEncoding = errors.New("invalid file encoding, expected UTF-8")

	// ErrMissingHeader is returned when the file has no header row
	ErrMissingHeader = errors.New("file missing header row")

	// ErrFileTooLarge is returned when the file exceeds maximum size
	ErrFileTooLarge = errors.New("file exceeds maximum allowed size")

	// ErrNoSheets is returned when a workbook contains no worksheet
	ErrNoSheets = errors.New("workbook contains no sheets")
)
