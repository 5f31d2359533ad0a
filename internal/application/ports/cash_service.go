package ports

import (
	"context"

	"github.com/posdesk/pos-engine/internal/domain/cash"
	"github.com/posdesk/pos-engine/internal/domain/sale"
	"github.com/posdesk/pos-engine/internal/pkg/money"
)

type CashService interface {
	Status(ctx context.Context) (cash.Session, error)
	Open(ctx context.Context, openingBalance money.Money) (cash.Session, error)
	Close(ctx context.Context, closingBalance money.Money, notes string) (cash.Session, error)
	SubmitSale(ctx context.Context, req sale.Request) (sale.Receipt, error)
}
