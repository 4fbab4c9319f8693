package inventoryapp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/erp/bulkimport/internal/domain/inventory"
	"github.com/erp/bulkimport/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStockMovementWriter is a mock implementation of inventory.StockMovementWriter
type MockStockMovementWriter struct {
	mock.Mock
}

func (m *MockStockMovementWriter) ApplyMovement(ctx context.Context, instr inventory.StockMovementInstruction) error {
	args := m.Called(ctx, instr)
	return args.Error(0)
}

func variant(id string) any {
	return mock.MatchedBy(func(instr inventory.StockMovementInstruction) bool { return instr.VariantID == id })
}

func validRequest() ReceiptRequest {
	return ReceiptRequest{
		ReceiptReference: testRef,
		Entries: []inventory.ReceiptEntry{
			{
				ProductID: "P1",
				VariantQuantities: []inventory.VariantQuantity{
					{VariantID: "V1", Quantity: 3},
					{VariantID: "V2", Quantity: 0},
				},
				UnitCost: "10",
			},
			{
				ProductID:         "P2",
				VariantQuantities: []inventory.VariantQuantity{{VariantID: "V3", Quantity: 2}},
				UnitCost:          "4",
			},
		},
	}
}

func TestReceiptService_Receive(t *testing.T) {
	t.Run("applies every instruction", func(t *testing.T) {
		writer := new(MockStockMovementWriter)
		svc := NewReceiptService(writer, nil)
		writer.On("ApplyMovement", mock.Anything, mock.Anything).Return(nil)

		resp, err := svc.Receive(context.Background(), validRequest())

		require.NoError(t, err)
		assert.Equal(t, int64(5), resp.TotalUnits)
		assert.True(t, decimal.NewFromInt(38).Equal(resp.TotalValue))
		assert.Equal(t, 2, resp.Succeeded)
		assert.Equal(t, 0, resp.Failed)
		writer.AssertNumberOfCalls(t, "ApplyMovement", 2)
	})

	t.Run("repeated variant is applied once per entry", func(t *testing.T) {
		writer := new(MockStockMovementWriter)
		svc := NewReceiptService(writer, nil)
		keys := make(map[string]struct{})
		writer.On("ApplyMovement", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				keys[args.Get(1).(inventory.StockMovementInstruction).DedupKey()] = struct{}{}
			}).
			Return(nil)

		req := validRequest()
		req.Entries = []inventory.ReceiptEntry{
			{ProductID: "P1", VariantQuantities: []inventory.VariantQuantity{{VariantID: "V1", Quantity: 5}}, UnitCost: "10"},
			{ProductID: "P1", VariantQuantities: []inventory.VariantQuantity{{VariantID: "V1", Quantity: 5}}, UnitCost: "12"},
		}

		resp, err := svc.Receive(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, int64(10), resp.TotalUnits)
		assert.Equal(t, 2, resp.Succeeded)
		assert.Len(t, keys, 2)
	})

	t.Run("a failed movement does not stop the rest", func(t *testing.T) {
		writer := new(MockStockMovementWriter)
		svc := NewReceiptService(writer, nil)
		writer.On("ApplyMovement", mock.Anything, variant("V1")).Return(errors.New("variant not found"))
		writer.On("ApplyMovement", mock.Anything, variant("V3")).Return(nil)

		resp, err := svc.Receive(context.Background(), validRequest())

		require.NoError(t, err)
		assert.Equal(t, 1, resp.Succeeded)
		assert.Equal(t, 1, resp.Failed)
		assert.Equal(t, []shared.ItemOutcome{
			{Key: "P1/V1", Error: "variant not found"},
			{Key: "P2/V3"},
		}, resp.Outcomes)
		assert.Equal(t, int64(5), resp.TotalUnits)
	})
}

func TestReceiptService_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ReceiptRequest)
		field  string
	}{
		{"missing supplier", func(r *ReceiptRequest) { r.SupplierID = "" }, "supplierId"},
		{"missing invoice number", func(r *ReceiptRequest) { r.InvoiceNumber = "" }, "invoiceNumber"},
		{"missing invoice date", func(r *ReceiptRequest) { r.InvoiceDate = time.Time{} }, "invoiceDate"},
		{"no entries", func(r *ReceiptRequest) { r.Entries = nil }, "entries"},
		{"missing product", func(r *ReceiptRequest) { r.Entries[0].ProductID = "" }, "productId"},
		{"negative quantity", func(r *ReceiptRequest) { r.Entries[1].VariantQuantities[0].Quantity = -1 }, "quantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer := new(MockStockMovementWriter)
			svc := NewReceiptService(writer, nil)
			req := validRequest()
			tt.mutate(&req)

			_, err := svc.Receive(context.Background(), req)

			require.Error(t, err)
			assert.ErrorIs(t, err, shared.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.field)
			writer.AssertNotCalled(t, "ApplyMovement", mock.Anything, mock.Anything)
		})
	}
}
