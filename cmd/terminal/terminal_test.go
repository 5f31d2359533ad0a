package main

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/posdesk/pos-engine/internal/application/use_cases"
	"github.com/posdesk/pos-engine/internal/domain/cash"
	"github.com/posdesk/pos-engine/internal/domain/catalog"
	"github.com/posdesk/pos-engine/internal/domain/sale"
	"github.com/posdesk/pos-engine/internal/pkg/logger"
	"github.com/posdesk/pos-engine/internal/pkg/money"
)

type recordingCatalog struct {
	mu      sync.Mutex
	results map[string][]catalog.Product
	queries []string
}

func (f *recordingCatalog) Search(_ context.Context, query string) ([]catalog.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	return f.results[query], nil
}

func (f *recordingCatalog) queryLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.queries))
	copy(out, f.queries)
	return out
}

type stubCashService struct{}

func (stubCashService) Status(context.Context) (cash.Session, error) {
	return cash.Session{ID: "s1", BranchID: "b1", Status: cash.StatusOpen}, nil
}

func (stubCashService) Open(context.Context, money.Money) (cash.Session, error) {
	return cash.Session{}, nil
}

func (stubCashService) Close(context.Context, money.Money, string) (cash.Session, error) {
	return cash.Session{}, nil
}

func (stubCashService) SubmitSale(context.Context, sale.Request) (sale.Receipt, error) {
	return sale.Receipt{}, nil
}

func newTestTerminal(t *testing.T, catalogSvc *recordingCatalog) *terminal {
	t.Helper()
	svc := stubCashService{}
	gate := use_cases.NewCashSessionUseCase(svc, logger.NewNop())
	require.NoError(t, gate.RefreshStatus(context.Background()))
	checkout := use_cases.NewCheckoutUseCase(gate, svc, logger.NewNop())

	var loggedOut atomic.Bool
	term := newTerminal(gate, checkout, &loggedOut)
	term.search = use_cases.NewSearchUseCase(catalogSvc, time.Millisecond, term.searchHandlers(), logger.NewNop())
	return term
}

func TestNumericBarcodeIsSearchedNotSelected(t *testing.T) {
	barcode := "7501031311309"
	catalogSvc := &recordingCatalog{
		results: map[string][]catalog.Product{
			barcode: {{
				ID:   "1",
				Name: "Cola 600ml",
				Variants: []catalog.Variant{
					{ID: "11", SKU: "COLA-600", Barcode: barcode, Price: money.FromCents(1850)},
				},
			}},
		},
	}
	term := newTestTerminal(t, catalogSvc)

	// No suggestion list is showing, so the digits are a scanned code: the
	// exact match lands in the ticket without list interaction.
	term.handle(barcode)

	require.Eventually(t, func() bool {
		return term.checkout.ItemCount() == 1
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{barcode}, catalogSvc.queryLog())
	assert.Equal(t, "11", term.checkout.Lines()[0].SellableID)
}

func TestNumericInputPicksFromVisibleSuggestions(t *testing.T) {
	catalogSvc := &recordingCatalog{
		results: map[string][]catalog.Product{
			"cola": {
				{ID: "1", Name: "Cola 600ml", Variants: []catalog.Variant{
					{ID: "11", SKU: "COLA-600", Price: money.FromCents(1850)},
				}},
				{ID: "2", Name: "Cola 2L", Variants: []catalog.Variant{
					{ID: "21", SKU: "COLA-2L", Price: money.FromCents(3200)},
				}},
			},
		},
	}
	term := newTestTerminal(t, catalogSvc)

	term.handle("cola")
	require.Eventually(t, func() bool {
		return len(term.search.Suggestions()) == 2
	}, time.Second, 5*time.Millisecond)

	term.handle("2")

	require.Equal(t, 1, term.checkout.ItemCount())
	assert.Equal(t, "21", term.checkout.Lines()[0].SellableID)
	assert.Empty(t, term.search.Suggestions())
	assert.Equal(t, []string{"cola"}, catalogSvc.queryLog())
}
