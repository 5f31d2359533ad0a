package use_cases

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/posdesk/pos-engine/internal/application/ports"
	"github.com/posdesk/pos-engine/internal/domain/cart"
	"github.com/posdesk/pos-engine/internal/domain/catalog"
	domainErrors "github.com/posdesk/pos-engine/internal/domain/errors"
	"github.com/posdesk/pos-engine/internal/domain/sale"
	"github.com/posdesk/pos-engine/internal/infrastructure/monitoring"
	"github.com/posdesk/pos-engine/internal/pkg/money"
)

type CheckoutState string

const (
	StateIdle            CheckoutState = "IDLE"
	StateAwaitingPayment CheckoutState = "AWAITING_PAYMENT"
	StateSubmitting      CheckoutState = "SUBMITTING"
	StateCompleted       CheckoutState = "COMPLETED"
)

// CheckoutUseCase owns the cart and the payment inputs for one checkout
// cycle and orchestrates sale submission against the cash/sales service.
// The Submitting state doubles as a mutual-exclusion flag: a confirm while
// a submission is pending is ignored.
type CheckoutUseCase struct {
	mu    sync.Mutex
	cart  *cart.Cart
	gate  *CashSessionUseCase
	sales ports.CashService
	log   *zap.SugaredLogger

	state        CheckoutState
	method       sale.Method
	cashReceived money.Money
	reference    string
	customerID   string
	lastError    string
	lastReceipt  *sale.Receipt
}

func NewCheckoutUseCase(gate *CashSessionUseCase, sales ports.CashService, log *zap.SugaredLogger) *CheckoutUseCase {
	return &CheckoutUseCase{
		cart:   cart.NewCart(),
		gate:   gate,
		sales:  sales,
		log:    log,
		state:  StateIdle,
		method: sale.MethodCash,
	}
}

func (uc *CheckoutUseCase) AddItem(s catalog.Sellable, qty int) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.cart.Add(s, qty); err != nil {
		return err
	}
	monitoring.CartItemsAdded.Inc()
	uc.onCartMutated()
	return nil
}

func (uc *CheckoutUseCase) SetQuantity(sellableID string, qty int) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.cart.SetQuantity(sellableID, qty)
	uc.onCartMutated()
}

func (uc *CheckoutUseCase) RemoveItem(sellableID string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.cart.Remove(sellableID)
	uc.onCartMutated()
}

// Void empties the cart and resets payment inputs without submitting.
func (uc *CheckoutUseCase) Void() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.cart.Clear()
	uc.resetPayment()
	uc.state = StateIdle
	uc.lastError = ""
}

func (uc *CheckoutUseCase) SetPaymentMethod(m sale.Method) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.method = m
}

func (uc *CheckoutUseCase) SetCashReceived(amount money.Money) error {
	if amount.IsNegative() {
		return domainErrors.ErrInvalidAmount
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.cashReceived = amount
	return nil
}

func (uc *CheckoutUseCase) SetReference(reference string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.reference = reference
}

func (uc *CheckoutUseCase) SetCustomer(customerID string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.customerID = customerID
}

func (uc *CheckoutUseCase) Subtotal() money.Money {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.cart.Subtotal()
}

func (uc *CheckoutUseCase) ItemCount() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.cart.ItemCount()
}

func (uc *CheckoutUseCase) Lines() []cart.LineItem {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.cart.Lines()
}

func (uc *CheckoutUseCase) Change() money.Money {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return sale.Change(uc.method, uc.cart.Subtotal(), uc.cashReceived)
}

func (uc *CheckoutUseCase) State() CheckoutState {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.state
}

func (uc *CheckoutUseCase) LastError() string {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.lastError
}

func (uc *CheckoutUseCase) LastReceipt() *sale.Receipt {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.lastReceipt
}

// Confirm validates the checkout and submits the sale. Validation order is
// fixed: open session, non-empty cart, sufficient cash; the first failure
// wins and no network call is made. A nil receipt with a nil error means
// the confirm was ignored because a submission is already pending.
func (uc *CheckoutUseCase) Confirm(ctx context.Context) (*sale.Receipt, error) {
	uc.mu.Lock()

	if uc.state == StateSubmitting {
		uc.mu.Unlock()
		return nil, nil
	}

	if !uc.gate.IsOpen() {
		uc.failLocked(monitoring.ReasonSessionClosed, domainErrors.ErrCashSessionClosed)
		uc.mu.Unlock()
		return nil, domainErrors.ErrCashSessionClosed
	}

	if uc.cart.IsEmpty() {
		uc.failLocked(monitoring.ReasonEmptyCart, domainErrors.ErrEmptyCart)
		uc.mu.Unlock()
		return nil, domainErrors.ErrEmptyCart
	}

	subtotal := uc.cart.Subtotal()
	if uc.method == sale.MethodCash && uc.cashReceived < subtotal {
		err := &domainErrors.InsufficientCashError{Shortfall: subtotal.Sub(uc.cashReceived)}
		uc.failLocked(monitoring.ReasonInsufficientCash, err)
		uc.mu.Unlock()
		return nil, err
	}

	payment := sale.Payment{
		Method:    uc.method,
		Amount:    subtotal,
		Reference: uc.reference,
	}
	if uc.method == sale.MethodCash {
		payment.CashReceived = uc.cashReceived
	}

	req := sale.BuildRequest(uc.cart.Lines(), payment, uc.gate.Current(), uc.customerID)
	uc.state = StateSubmitting
	uc.lastError = ""
	uc.mu.Unlock()

	receipt, err := uc.sales.SubmitSale(ctx, req)

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err != nil {
		// Cart and payment inputs stay intact so the user can retry.
		uc.state = StateAwaitingPayment
		uc.lastError = domainErrors.Message(err)
		monitoring.SaleFailuresTotal.WithLabelValues(submitFailureReason(err)).Inc()
		uc.log.Errorw("sale submission failed", "error", err, "total", req.TotalAmount.Format())
		return nil, err
	}

	uc.cart.Clear()
	uc.resetPayment()
	uc.state = StateCompleted
	uc.lastReceipt = &receipt

	monitoring.SalesSubmittedTotal.Inc()
	monitoring.SaleAmount.Observe(req.TotalAmount.Float())
	uc.log.Infow("sale completed",
		"sale_id", receipt.SaleID,
		"folio", receipt.Folio,
		"total", req.TotalAmount.Format(),
		"change", receipt.Change.Format(),
	)
	return &receipt, nil
}

// onCartMutated moves the state machine out of Idle/Completed once there
// is something to pay for and the register is open. Callers hold uc.mu.
func (uc *CheckoutUseCase) onCartMutated() {
	if uc.state == StateSubmitting {
		return
	}
	if uc.cart.IsEmpty() {
		uc.state = StateIdle
		return
	}
	if uc.gate.IsOpen() {
		uc.state = StateAwaitingPayment
	}
}

func (uc *CheckoutUseCase) failLocked(reason string, err error) {
	uc.lastError = domainErrors.Message(err)
	monitoring.SaleFailuresTotal.WithLabelValues(reason).Inc()
}

func (uc *CheckoutUseCase) resetPayment() {
	uc.method = sale.MethodCash
	uc.cashReceived = 0
	uc.reference = ""
	uc.customerID = ""
}

func submitFailureReason(err error) string {
	var svcErr *domainErrors.ServiceError
	if errors.As(err, &svcErr) {
		return monitoring.ReasonService
	}
	return monitoring.ReasonTransport
}
