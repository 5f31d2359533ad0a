package sale

import (
	"strings"

	"github.com/posdesk/pos-engine/internal/pkg/money"
)

type Method string

const (
	MethodCash     Method = "CASH"
	MethodCard     Method = "CARD"
	MethodTransfer Method = "TRANSFER"
	MethodOther    Method = "OTHER"
)

func ParseMethod(s string) (Method, bool) {
	switch Method(strings.ToUpper(strings.TrimSpace(s))) {
	case MethodCash:
		return MethodCash, true
	case MethodCard:
		return MethodCard, true
	case MethodTransfer:
		return MethodTransfer, true
	case MethodOther:
		return MethodOther, true
	}
	return "", false
}

// Payment is the single tender attached to a sale. For CASH, CashReceived
// is what the customer handed over; for every other method the amount is
// forced equal to the amount due and no received/change concept exists.
type Payment struct {
	Method       Method
	Amount       money.Money
	CashReceived money.Money
	Reference    string
}

// Change computes the amount returned to the customer: received minus due
// for CASH, never negative, always zero for non-cash methods.
func Change(method Method, due, received money.Money) money.Money {
	if method != MethodCash {
		return 0
	}
	change := received.Sub(due)
	if change.IsNegative() {
		return 0
	}
	return change
}
