package sale

import (
	"github.com/posdesk/pos-engine/internal/domain/cart"
	"github.com/posdesk/pos-engine/internal/domain/cash"
	"github.com/posdesk/pos-engine/internal/pkg/money"
)

// RequestItem projects a cart line into the sale payload. Items are
// identified by sellable (variant) id and carry the SKU for the service's
// own lookup.
type RequestItem struct {
	SellableID string
	SKU        string
	Quantity   int
	UnitPrice  money.Money
}

// Request is built once per submission and not retained: it either becomes
// a confirmed sale or is discarded on failure.
type Request struct {
	Items         []RequestItem
	Payment       Payment
	TotalAmount   money.Money
	BranchID      string
	CashSessionID string
	CustomerID    string
}

func BuildRequest(lines []cart.LineItem, payment Payment, session cash.Session, customerID string) Request {
	items := make([]RequestItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, RequestItem{
			SellableID: l.SellableID,
			SKU:        l.SKU,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
		})
	}

	var total money.Money
	for _, l := range lines {
		total = total.Add(l.Total())
	}

	return Request{
		Items:         items,
		Payment:       payment,
		TotalAmount:   total,
		BranchID:      session.BranchID,
		CashSessionID: session.ID,
		CustomerID:    customerID,
	}
}

// Receipt is the confirmed sale as acknowledged by the service.
type Receipt struct {
	SaleID string
	Folio  string
	Total  money.Money
	Paid   money.Money
	Change money.Money
	Status string
}
