package cash

import (
	"time"

	"github.com/posdesk/pos-engine/internal/pkg/money"
)

type Status string

const (
	StatusOpen   Status = "OPEN"
	StatusClosed Status = "CLOSED"
)

// Session is the register's accounting period. Only one session is
// meaningful at a time; it is replaced wholesale from the cash service.
type Session struct {
	ID             string
	BranchID       string
	UserID         string
	Status         Status
	OpeningBalance money.Money
	OpenedAt       time.Time
	ClosedAt       *time.Time
	ClosingBalance money.Money
	TotalCashSales money.Money
	Difference     money.Money
	Notes          string
}

// Closed returns the fail-safe no-session value used when the service
// cannot be reached: the register is never assumed open on error.
func Closed() Session {
	return Session{Status: StatusClosed}
}

// IsOpen is the single predicate gating checkout. A session is open only
// when its status says so and no closing timestamp has been recorded;
// services that omit closedAt and services that send it as null are both
// treated as open.
func (s Session) IsOpen() bool {
	return s.Status == StatusOpen && s.ClosedAt == nil
}
