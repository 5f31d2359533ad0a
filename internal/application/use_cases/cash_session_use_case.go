package use_cases

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/posdesk/pos-engine/internal/application/ports"
	"github.com/posdesk/pos-engine/internal/domain/cash"
	domainErrors "github.com/posdesk/pos-engine/internal/domain/errors"
	"github.com/posdesk/pos-engine/internal/infrastructure/monitoring"
	"github.com/posdesk/pos-engine/internal/pkg/money"
)

// CashSessionUseCase is the gate in front of checkout: it tracks the
// register's session and owns the open/close transitions. Local state is
// only replaced after the service acknowledges; the predicate IsOpen is the
// single source of truth everyone else consults.
type CashSessionUseCase struct {
	mu      sync.Mutex
	service ports.CashService
	session cash.Session
	log     *zap.SugaredLogger
}

func NewCashSessionUseCase(service ports.CashService, log *zap.SugaredLogger) *CashSessionUseCase {
	return &CashSessionUseCase{
		service: service,
		// Closed until the first successful refresh: never assume open.
		session: cash.Closed(),
		log:     log,
	}
}

// RefreshStatus replaces the local session wholesale from the service. On
// any failure the session is set to closed and the error is returned.
func (uc *CashSessionUseCase) RefreshStatus(ctx context.Context) error {
	session, err := uc.service.Status(ctx)

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err != nil {
		uc.session = cash.Closed()
		uc.log.Warnw("cash session refresh failed, treating register as closed", "error", err)
		return err
	}

	uc.session = session
	return nil
}

func (uc *CashSessionUseCase) Open(ctx context.Context, openingBalance money.Money) (cash.Session, error) {
	if openingBalance.IsNegative() {
		return uc.Current(), domainErrors.ErrInvalidAmount
	}

	session, err := uc.service.Open(ctx, openingBalance)
	if err != nil {
		// State stays whatever it was before the call.
		return uc.Current(), err
	}

	uc.mu.Lock()
	uc.session = session
	uc.mu.Unlock()

	monitoring.CashSessionsOpenedTotal.Inc()
	uc.log.Infow("cash session opened",
		"session_id", session.ID,
		"branch_id", session.BranchID,
		"opening_balance", openingBalance.Format(),
	)
	return session, nil
}

func (uc *CashSessionUseCase) Close(ctx context.Context, closingBalance money.Money, notes string) (cash.Session, error) {
	if closingBalance.IsNegative() {
		return uc.Current(), domainErrors.ErrInvalidAmount
	}

	session, err := uc.service.Close(ctx, closingBalance, notes)
	if err != nil {
		return uc.Current(), err
	}

	uc.mu.Lock()
	uc.session = session
	uc.mu.Unlock()

	monitoring.CashSessionsClosedTotal.Inc()
	uc.log.Infow("cash session closed",
		"session_id", session.ID,
		"closing_balance", closingBalance.Format(),
		"difference", session.Difference.Format(),
	)
	return session, nil
}

func (uc *CashSessionUseCase) IsOpen() bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.session.IsOpen()
}

func (uc *CashSessionUseCase) Current() cash.Session {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.session
}
