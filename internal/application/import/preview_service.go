package importapp

import (
	"context"
	"fmt"
	"time"

	"github.com/erp/bulkimport/internal/domain/bulk"
	csvimport "github.com/erp/bulkimport/internal/infrastructure/import"
	"go.uber.org/zap"
)

// CatalogPreview is the reviewable result of a catalog file
type CatalogPreview struct {
	Entities    []*bulk.CatalogItem `json:"entities"`
	Diagnostics []string            `json:"diagnostics"`
	Summary     bulk.Summary        `json:"summary"`
}

// OrderPreview is the reviewable result of an order file. NextSeq is the
// line-item counter to pass when reconciling the next file.
type OrderPreview struct {
	Entities    []*bulk.CommerceOrder `json:"entities"`
	Diagnostics []string              `json:"diagnostics"`
	Summary     bulk.Summary          `json:"summary"`
	NextSeq     int                   `json:"-"`
}

// PreviewService runs ingest, normalize, reconcile, validate and summarize
// over an uploaded file without persisting anything.
type PreviewService struct {
	ingestor       *csvimport.Ingestor
	matcher        OptionMatcher
	decodeTimeout  time.Duration
	maxDiagnostics int
	logger         *zap.Logger
}

// PreviewOption is a functional option for PreviewService
type PreviewOption func(*PreviewService)

// WithOptionMatcher replaces the color/size option matcher
func WithOptionMatcher(m OptionMatcher) PreviewOption {
	return func(s *PreviewService) {
		s.matcher = m
	}
}

// WithDecodeTimeout bounds the file decode step (0 disables the deadline)
func WithDecodeTimeout(d time.Duration) PreviewOption {
	return func(s *PreviewService) {
		s.decodeTimeout = d
	}
}

// WithMaxDiagnostics caps the diagnostics returned in a preview (0 = unlimited)
func WithMaxDiagnostics(n int) PreviewOption {
	return func(s *PreviewService) {
		s.maxDiagnostics = n
	}
}

// WithPreviewLogger sets the logger
func WithPreviewLogger(logger *zap.Logger) PreviewOption {
	return func(s *PreviewService) {
		s.logger = logger
	}
}

// NewPreviewService creates a new PreviewService
func NewPreviewService(ingestor *csvimport.Ingestor, opts ...PreviewOption) *PreviewService {
	if ingestor == nil {
		ingestor = csvimport.NewIngestor()
	}
	s := &PreviewService{
		ingestor: ingestor,
		matcher:  DefaultOptionMatcher(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReconcileCatalogFile decodes a catalog file and returns every diagnostic
// uncapped, in ingest, reconcile, validate order.
func (s *PreviewService) ReconcileCatalogFile(ctx context.Context, data []byte, fileName string) ([]*bulk.CatalogItem, []bulk.Diagnostic, bulk.Summary) {
	rows, diags := s.ingest(ctx, data, fileName)

	items, recDiags := ReconcileCatalog(NormalizeVariantRows(rows, s.matcher))
	diags = append(diags, recDiags...)
	diags = append(diags, ValidateCatalog(items)...)

	return items, diags, Summarize(len(rows), items)
}

// ReconcileOrderFile decodes an order file, numbering synthetic SKUs after seq
func (s *PreviewService) ReconcileOrderFile(ctx context.Context, data []byte, fileName string, seq int) ([]*bulk.CommerceOrder, []bulk.Diagnostic, bulk.Summary, int) {
	rows, diags := s.ingest(ctx, data, fileName)

	orders, recDiags, next := ReconcileOrders(NormalizeLineItemRows(rows), seq)
	diags = append(diags, recDiags...)
	diags = append(diags, ValidateOrders(orders)...)

	return orders, diags, Summarize(len(rows), orders), next
}

// PreviewCatalog builds the catalog preview payload
func (s *PreviewService) PreviewCatalog(ctx context.Context, data []byte, fileName string) *CatalogPreview {
	items, diags, summary := s.ReconcileCatalogFile(ctx, data, fileName)

	s.logger.Info("Catalog preview ready",
		zap.String("file", fileName),
		zap.Int("total_rows", summary.TotalRows),
		zap.Int("entities", summary.ParentsFound),
		zap.Int("children", summary.ChildrenFound),
		zap.Int("diagnostics", len(diags)),
	)

	return &CatalogPreview{
		Entities:    items,
		Diagnostics: s.capDiagnostics(diags),
		Summary:     summary,
	}
}

// PreviewOrders builds the order preview payload starting a fresh line-item counter
func (s *PreviewService) PreviewOrders(ctx context.Context, data []byte, fileName string) *OrderPreview {
	return s.PreviewOrdersFrom(ctx, data, fileName, 0)
}

// PreviewOrdersFrom builds the order preview payload continuing from seq
func (s *PreviewService) PreviewOrdersFrom(ctx context.Context, data []byte, fileName string, seq int) *OrderPreview {
	orders, diags, summary, next := s.ReconcileOrderFile(ctx, data, fileName, seq)

	s.logger.Info("Order preview ready",
		zap.String("file", fileName),
		zap.Int("total_rows", summary.TotalRows),
		zap.Int("entities", summary.ParentsFound),
		zap.Int("children", summary.ChildrenFound),
		zap.Int("diagnostics", len(diags)),
	)

	return &OrderPreview{
		Entities:    orders,
		Diagnostics: s.capDiagnostics(diags),
		Summary:     summary,
		NextSeq:     next,
	}
}

func (s *PreviewService) ingest(ctx context.Context, data []byte, fileName string) ([]*csvimport.Row, []bulk.Diagnostic) {
	if s.decodeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.decodeTimeout)
		defer cancel()
	}
	return s.ingestor.IngestContext(ctx, data, fileName)
}

// capDiagnostics truncates the list, replacing the tail with a count entry
func (s *PreviewService) capDiagnostics(diags []bulk.Diagnostic) []string {
	if s.maxDiagnostics <= 0 || len(diags) <= s.maxDiagnostics {
		return bulk.Messages(diags)
	}
	out := bulk.Messages(diags[:s.maxDiagnostics])
	return append(out, fmt.Sprintf("... %d more diagnostics", len(diags)-s.maxDiagnostics))
}
