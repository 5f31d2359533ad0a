package use_cases

import (
	"context"
	"sync"
	"time"

	"github.com/posdesk/pos-engine/internal/domain/cash"
	"github.com/posdesk/pos-engine/internal/domain/catalog"
	"github.com/posdesk/pos-engine/internal/domain/sale"
	"github.com/posdesk/pos-engine/internal/pkg/money"
)

type fakeCashService struct {
	mu sync.Mutex

	statusSession cash.Session
	statusErr     error
	statusCalls   int

	openSession cash.Session
	openErr     error
	openCalls   int

	closeSession cash.Session
	closeErr     error
	closeCalls   int

	submitReceipt sale.Receipt
	submitErr     error
	submitCalls   int
	lastRequest   sale.Request

	// When set, SubmitSale signals submitEntered and blocks until
	// submitRelease is closed.
	submitEntered chan struct{}
	submitRelease chan struct{}
}

func (f *fakeCashService) Status(context.Context) (cash.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls++
	return f.statusSession, f.statusErr
}

func (f *fakeCashService) Open(_ context.Context, _ money.Money) (cash.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.openCalls++
	return f.openSession, f.openErr
}

func (f *fakeCashService) Close(_ context.Context, _ money.Money, _ string) (cash.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closeCalls++
	return f.closeSession, f.closeErr
}

func (f *fakeCashService) SubmitSale(_ context.Context, req sale.Request) (sale.Receipt, error) {
	f.mu.Lock()
	f.submitCalls++
	f.lastRequest = req
	entered, release := f.submitEntered, f.submitRelease
	receipt, err := f.submitReceipt, f.submitErr
	f.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if release != nil {
		<-release
	}
	return receipt, err
}

func (f *fakeCashService) submitted() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitCalls
}

func (f *fakeCashService) submittedRequest() sale.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastRequest
}

type fakeCatalogService struct {
	mu      sync.Mutex
	results map[string][]catalog.Product
	err     error
	queries []string

	// When set, a search for blockOn signals searchEntered and waits for
	// searchRelease, simulating a slow in-flight request.
	blockOn       string
	searchEntered chan struct{}
	searchRelease chan struct{}
}

func (f *fakeCatalogService) Search(_ context.Context, query string) ([]catalog.Product, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	results := f.results[query]
	err := f.err
	block := query == f.blockOn
	entered, release := f.searchEntered, f.searchRelease
	f.mu.Unlock()

	if block {
		entered <- struct{}{}
		<-release
	}
	return results, err
}

func (f *fakeCatalogService) queryLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.queries))
	copy(out, f.queries)
	return out
}

func openSession(id string) cash.Session {
	return cash.Session{
		ID:       id,
		BranchID: "b1",
		Status:   cash.StatusOpen,
	}
}

func closedSession(id string) cash.Session {
	now := time.Now().UTC()
	return cash.Session{
		ID:       id,
		BranchID: "b1",
		Status:   cash.StatusClosed,
		ClosedAt: &now,
	}
}

func testSellable(id, sku string, cents int64) catalog.Sellable {
	return catalog.Sellable{
		VariantID:   id,
		ProductName: "Product " + id,
		SKU:         sku,
		UnitPrice:   money.FromCents(cents),
	}
}
