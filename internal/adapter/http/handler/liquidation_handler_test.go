package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iho/lendpool/internal/adapter/http/dto"
	"github.com/iho/lendpool/internal/domain"
	"github.com/iho/lendpool/internal/usecase"
)

type liquidationServiceStub struct {
	liquidateFn func(ctx context.Context, liquidator, borrower string, amount *big.Int) (*usecase.LiquidationResult, error)
}

func (s *liquidationServiceStub) Liquidate(ctx context.Context, liquidator, borrower string, amount *big.Int) (*usecase.LiquidationResult, error) {
	return s.liquidateFn(ctx, liquidator, borrower, amount)
}

func TestLiquidationHandler_Create_Success(t *testing.T) {
	h := NewLiquidationHandler(&liquidationServiceStub{
		liquidateFn: func(ctx context.Context, liquidator, borrower string, amount *big.Int) (*usecase.LiquidationResult, error) {
			return &usecase.LiquidationResult{
				Liquidator:   liquidator,
				Borrower:     borrower,
				Repaid:       amount,
				SeizedShares: big.NewInt(163),
				SeizedValue:  big.NewInt(197),
			}, nil
		},
	})

	body, _ := json.Marshal(dto.LiquidateRequest{Liquidator: "liq", Borrower: "bob", Amount: "188"})
	req := httptest.NewRequest(http.MethodPost, "/liquidations", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp dto.LiquidationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.SeizedShares != "163" || resp.SeizedValue != "197" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestLiquidationHandler_Create_BorrowerHealthy(t *testing.T) {
	h := NewLiquidationHandler(&liquidationServiceStub{
		liquidateFn: func(ctx context.Context, liquidator, borrower string, amount *big.Int) (*usecase.LiquidationResult, error) {
			return nil, domain.ErrBorrowerHealthy
		},
	})

	body, _ := json.Marshal(dto.LiquidateRequest{Liquidator: "liq", Borrower: "bob", Amount: "100"})
	req := httptest.NewRequest(http.MethodPost, "/liquidations", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestLiquidationHandler_Create_InvalidAmount(t *testing.T) {
	h := NewLiquidationHandler(&liquidationServiceStub{
		liquidateFn: func(ctx context.Context, liquidator, borrower string, amount *big.Int) (*usecase.LiquidationResult, error) {
			t.Fatal("Liquidate should not be called on invalid amount")
			return nil, nil
		},
	})

	body, _ := json.Marshal(dto.LiquidateRequest{Liquidator: "liq", Borrower: "bob", Amount: "x"})
	req := httptest.NewRequest(http.MethodPost, "/liquidations", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
