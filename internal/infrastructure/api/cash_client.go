package api

import (
	"context"
	"encoding/json"
	"time"

	"github.com/posdesk/pos-engine/internal/domain/cash"
	"github.com/posdesk/pos-engine/internal/domain/sale"
	"github.com/posdesk/pos-engine/internal/pkg/money"
)

// CashClient covers the cash/sales service: session status, open, close and
// sale submission.
type CashClient struct {
	client *Client
}

func NewCashClient(client *Client) *CashClient {
	return &CashClient{client: client}
}

type sessionDTO struct {
	ID             json.Number `json:"id"`
	BranchID       json.Number `json:"branch_id"`
	UserID         json.Number `json:"user_id"`
	Status         string      `json:"status"`
	OpeningBalance float64     `json:"opening_balance"`
	ClosingBalance float64     `json:"closing_balance"`
	TotalCashSales float64     `json:"total_cash_sales"`
	Difference     float64     `json:"difference"`
	OpenedAt       *time.Time  `json:"opened_at"`
	ClosedAt       *time.Time  `json:"closed_at"`
	Notes          string      `json:"notes"`
}

func (dto *sessionDTO) toDomain() cash.Session {
	s := cash.Session{
		ID:       dto.ID.String(),
		BranchID: dto.BranchID.String(),
		UserID:   dto.UserID.String(),
		Status:   cash.Status(dto.Status),
		ClosedAt: dto.ClosedAt,
		Notes:    dto.Notes,
	}
	if dto.OpenedAt != nil {
		s.OpenedAt = *dto.OpenedAt
	}
	s.OpeningBalance, _ = money.FromFloat(dto.OpeningBalance)
	s.ClosingBalance, _ = money.FromFloat(dto.ClosingBalance)
	s.TotalCashSales, _ = money.FromFloat(dto.TotalCashSales)
	s.Difference, _ = money.FromFloat(dto.Difference)
	return s
}

// Status fetches the current session. A null body is the service's
// no-session representation and maps to a closed session.
func (c *CashClient) Status(ctx context.Context) (cash.Session, error) {
	var dto *sessionDTO
	if err := c.client.get(ctx, "/cash/status", nil, &dto); err != nil {
		return cash.Closed(), err
	}
	if dto == nil {
		return cash.Closed(), nil
	}
	return dto.toDomain(), nil
}

type openRequestDTO struct {
	OpeningBalance float64 `json:"opening_balance"`
}

func (c *CashClient) Open(ctx context.Context, openingBalance money.Money) (cash.Session, error) {
	var dto sessionDTO
	body := openRequestDTO{OpeningBalance: openingBalance.Float()}
	if err := c.client.post(ctx, "/cash/open", body, &dto); err != nil {
		return cash.Closed(), err
	}
	return dto.toDomain(), nil
}

type closeRequestDTO struct {
	ClosingBalance float64 `json:"closing_balance"`
	Notes          string  `json:"notes,omitempty"`
}

func (c *CashClient) Close(ctx context.Context, closingBalance money.Money, notes string) (cash.Session, error) {
	var dto sessionDTO
	body := closeRequestDTO{ClosingBalance: closingBalance.Float(), Notes: notes}
	if err := c.client.post(ctx, "/cash/close", body, &dto); err != nil {
		return cash.Closed(), err
	}
	return dto.toDomain(), nil
}

type saleItemDTO struct {
	SellableID string  `json:"sellable_id"`
	SKU        string  `json:"sku"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
}

type salePaymentDTO struct {
	Method       string  `json:"method"`
	Amount       float64 `json:"amount"`
	CashReceived float64 `json:"cash_received,omitempty"`
	Reference    string  `json:"reference,omitempty"`
}

type saleRequestDTO struct {
	Items         []saleItemDTO    `json:"items"`
	Payments      []salePaymentDTO `json:"payments"`
	TotalAmount   float64          `json:"total_amount"`
	BranchID      string           `json:"branch_id,omitempty"`
	CashSessionID string           `json:"cash_session_id,omitempty"`
	CustomerID    string           `json:"customer_id,omitempty"`
}

type receiptDTO struct {
	ID     json.Number `json:"id"`
	SaleID json.Number `json:"sale_id"`
	Folio  string      `json:"folio"`
	Total  float64     `json:"total"`
	Paid   float64     `json:"paid"`
	Change float64     `json:"change"`
	Status string      `json:"status"`
}

func (c *CashClient) SubmitSale(ctx context.Context, req sale.Request) (sale.Receipt, error) {
	body := saleRequestDTO{
		Items:         make([]saleItemDTO, 0, len(req.Items)),
		TotalAmount:   req.TotalAmount.Float(),
		BranchID:      req.BranchID,
		CashSessionID: req.CashSessionID,
		CustomerID:    req.CustomerID,
	}
	for _, item := range req.Items {
		body.Items = append(body.Items, saleItemDTO{
			SellableID: item.SellableID,
			SKU:        item.SKU,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice.Float(),
		})
	}
	payment := salePaymentDTO{
		Method:    string(req.Payment.Method),
		Amount:    req.Payment.Amount.Float(),
		Reference: req.Payment.Reference,
	}
	if req.Payment.Method == sale.MethodCash {
		payment.CashReceived = req.Payment.CashReceived.Float()
	}
	body.Payments = []salePaymentDTO{payment}

	var dto receiptDTO
	if err := c.client.post(ctx, "/sales", body, &dto); err != nil {
		return sale.Receipt{}, err
	}

	// Some deployments answer with "id", others with "sale_id".
	saleID := dto.SaleID.String()
	if saleID == "" {
		saleID = dto.ID.String()
	}

	receipt := sale.Receipt{
		SaleID: saleID,
		Folio:  dto.Folio,
		Status: dto.Status,
	}
	receipt.Total, _ = money.FromFloat(dto.Total)
	receipt.Paid, _ = money.FromFloat(dto.Paid)
	receipt.Change, _ = money.FromFloat(dto.Change)
	return receipt, nil
}
