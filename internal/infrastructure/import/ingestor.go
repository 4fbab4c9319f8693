// Package csvimport is the tabular ingestion layer of the import engine. It
// turns uploaded delimited text or spreadsheet workbooks into flat rows keyed
// by header name, reporting decode problems as diagnostics.
package csvimport

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/erp/bulkimport/internal/domain/bulk"
	"go.uber.org/zap"
)

// Ingestor decodes uploaded files into rows
type Ingestor struct {
	maxFileSize int64
	delimiter   rune
	logger      *zap.Logger
}

// IngestorOption is a functional option for Ingestor
type IngestorOption func(*Ingestor)

// WithMaxFileSize sets the maximum accepted file size in bytes (0 disables the check)
func WithMaxFileSize(size int64) IngestorOption {
	return func(i *Ingestor) {
		i.maxFileSize = size
	}
}

// WithFieldDelimiter sets the delimiter used for delimited text
func WithFieldDelimiter(d rune) IngestorOption {
	return func(i *Ingestor) {
		i.delimiter = d
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) IngestorOption {
	return func(i *Ingestor) {
		i.logger = logger
	}
}

// NewIngestor creates an ingestor
func NewIngestor(opts ...IngestorOption) *Ingestor {
	i := &Ingestor{
		maxFileSize: 10 * 1024 * 1024, // 10MB default
		delimiter:   ',',
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// IsSpreadsheet reports whether a file name selects the workbook decoder
func IsSpreadsheet(fileName string) bool {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xlsx", ".xls":
		return true
	}
	return false
}

// Ingest decodes a file into rows. It never fails: a file that cannot be
// decoded yields no rows and a single diagnostic describing why, a
// malformed text record yields a row diagnostic and is skipped.
func (i *Ingestor) Ingest(data []byte, fileName string) (rows []*Row, diags []bulk.Diagnostic) {
	defer func() {
		if r := recover(); r != nil {
			i.logger.Error("Decoder panicked", zap.String("file", fileName), zap.Any("panic", r))
			rows = nil
			diags = []bulk.Diagnostic{decodeFailure(fmt.Errorf("%v", r))}
		}
	}()

	if i.maxFileSize > 0 && int64(len(data)) > i.maxFileSize {
		return nil, []bulk.Diagnostic{decodeFailure(ErrFileTooLarge)}
	}

	if IsSpreadsheet(fileName) {
		parsed, err := parseSpreadsheet(data)
		if err != nil {
			i.logger.Warn("Failed to decode spreadsheet", zap.String("file", fileName), zap.Error(err))
			return nil, []bulk.Diagnostic{decodeFailure(err)}
		}
		i.logger.Debug("Decoded spreadsheet", zap.String("file", fileName), zap.Int("rows", len(parsed)))
		return parsed, nil
	}

	parser, err := ParseFromBytes(data, WithDelimiter(i.delimiter))
	if err != nil {
		i.logger.Warn("Failed to decode delimited text", zap.String("file", fileName), zap.Error(err))
		return nil, []bulk.Diagnostic{decodeFailure(err)}
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, []bulk.Diagnostic{decodeFailure(err)}
	}

	parsed, rowErrs := parser.ReadAllRows()
	for _, rowErr := range rowErrs {
		diags = append(diags, bulk.NewDiagnostic("%s", capitalize(rowErr.Error())))
	}
	i.logger.Debug("Decoded delimited text",
		zap.String("file", fileName),
		zap.Int("rows", len(parsed)),
		zap.Int("malformed", len(rowErrs)),
	)
	return parsed, diags
}

// IngestContext runs Ingest under ctx. Decoding is the only step whose cost
// is not linear in the row count, so it is the only one bounded by a deadline.
func (i *Ingestor) IngestContext(ctx context.Context, data []byte, fileName string) ([]*Row, []bulk.Diagnostic) {
	type result struct {
		rows  []*Row
		diags []bulk.Diagnostic
	}
	done := make(chan result, 1)
	go func() {
		rows, diags := i.Ingest(data, fileName)
		done <- result{rows: rows, diags: diags}
	}()

	select {
	case r := <-done:
		return r.rows, r.diags
	case <-ctx.Done():
		i.logger.Warn("File decode abandoned", zap.String("file", fileName), zap.Error(ctx.Err()))
		return nil, []bulk.Diagnostic{decodeFailure(ctx.Err())}
	}
}

// ToCanonicalText re-serializes the first sheet of a workbook as
// comma-delimited text, padding every record to the header width.
// Delimited text input is returned unchanged.
func (i *Ingestor) ToCanonicalText(data []byte, fileName string) (string, error) {
	if !IsSpreadsheet(fileName) {
		return string(data), nil
	}

	header, records, err := readFirstSheet(data)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}
	for _, record := range records {
		out := make([]string, len(header))
		copy(out, record)
		if err := w.Write(out); err != nil {
			return "", fmt.Errorf("failed to write record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush canonical text: %w", err)
	}
	return buf.String(), nil
}

func decodeFailure(err error) bulk.Diagnostic {
	return bulk.NewDiagnostic("Failed to parse file: %v", err)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
