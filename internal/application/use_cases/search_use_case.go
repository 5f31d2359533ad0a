package use_cases

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/posdesk/pos-engine/internal/application/ports"
	"github.com/posdesk/pos-engine/internal/domain/catalog"
	domainErrors "github.com/posdesk/pos-engine/internal/domain/errors"
	"github.com/posdesk/pos-engine/internal/infrastructure/monitoring"
	"github.com/posdesk/pos-engine/internal/pkg/clock"
)

const minQueryLength = 2

// SearchHandlers are the callbacks through which search results reach the
// caller. Any of them may be nil.
type SearchHandlers struct {
	// OnSelect receives the sellable picked from the suggestions, either
	// explicitly or through the exact-code fast path.
	OnSelect func(catalog.Sellable)
	// OnUpdate fires whenever the visible suggestion list changes.
	OnUpdate func()
	// OnError receives a user-visible message; search errors never
	// propagate past the controller.
	OnError func(message string)
}

// SearchUseCase debounces catalog queries and applies only the response
// belonging to the most recent query. An in-flight request for a stale
// query is allowed to complete but its result is discarded.
type SearchUseCase struct {
	mu          sync.Mutex
	catalog     ports.CatalogService
	debouncer   *clock.Debouncer
	handlers    SearchHandlers
	log         *zap.SugaredLogger
	seq         uint64
	query       string
	suggestions []catalog.Sellable
}

func NewSearchUseCase(catalogSvc ports.CatalogService, debounceDelay time.Duration, handlers SearchHandlers, log *zap.SugaredLogger) *SearchUseCase {
	return &SearchUseCase{
		catalog:   catalogSvc,
		debouncer: clock.NewDebouncer(debounceDelay),
		handlers:  handlers,
		log:       log,
	}
}

// SetQuery is called on every keystroke. A new query cancels any pending
// dispatch and restarts the debounce window; queries shorter than two
// characters never dispatch and clear the suggestions immediately.
func (uc *SearchUseCase) SetQuery(text string) {
	trimmed := strings.TrimSpace(text)

	uc.mu.Lock()
	uc.query = trimmed
	uc.seq++
	seq := uc.seq

	if len(trimmed) < minQueryLength {
		uc.debouncer.Cancel()
		changed := uc.suggestions != nil
		uc.suggestions = nil
		uc.mu.Unlock()
		if changed {
			uc.notifyUpdate()
		}
		return
	}
	// Scheduled under the lock so trigger order matches sequence order:
	// the timer left standing always belongs to the newest query.
	uc.debouncer.Trigger(func() {
		uc.dispatch(seq, trimmed)
	})
	uc.mu.Unlock()
}

func (uc *SearchUseCase) dispatch(seq uint64, query string) {
	monitoring.SearchQueriesTotal.Inc()

	products, err := uc.catalog.Search(context.Background(), query)

	uc.mu.Lock()
	if seq != uc.seq {
		uc.mu.Unlock()
		monitoring.SearchStaleResponsesTotal.Inc()
		return
	}

	if err != nil {
		uc.suggestions = nil
		uc.mu.Unlock()
		monitoring.SearchFailuresTotal.Inc()
		uc.log.Warnw("catalog search failed", "query", query, "error", err)
		uc.notifyError(domainErrors.Message(err))
		uc.notifyUpdate()
		return
	}

	sellables := make([]catalog.Sellable, 0, len(products))
	for _, p := range products {
		if s, ok := p.Sellable(); ok {
			sellables = append(sellables, s)
		}
	}

	// Barcode-scan workflow: a single candidate whose code equals the
	// query is selected directly, no list interaction needed.
	if len(sellables) == 1 && sellables[0].MatchesCode(query) {
		selected := sellables[0]
		uc.suggestions = nil
		uc.query = ""
		uc.seq++
		uc.mu.Unlock()
		uc.notifySelect(selected)
		uc.notifyUpdate()
		return
	}

	uc.suggestions = sellables
	uc.mu.Unlock()
	uc.notifyUpdate()
}

// Select picks suggestion i, clearing the query and suggestion list.
func (uc *SearchUseCase) Select(i int) error {
	uc.mu.Lock()
	if i < 0 || i >= len(uc.suggestions) {
		uc.mu.Unlock()
		return domainErrors.ErrInvalidItem
	}
	selected := uc.suggestions[i]
	uc.suggestions = nil
	uc.query = ""
	uc.seq++
	uc.debouncer.Cancel()
	uc.mu.Unlock()

	uc.notifySelect(selected)
	uc.notifyUpdate()
	return nil
}

func (uc *SearchUseCase) Query() string {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.query
}

func (uc *SearchUseCase) Suggestions() []catalog.Sellable {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := make([]catalog.Sellable, len(uc.suggestions))
	copy(out, uc.suggestions)
	return out
}

func (uc *SearchUseCase) notifySelect(s catalog.Sellable) {
	if uc.handlers.OnSelect != nil {
		uc.handlers.OnSelect(s)
	}
}

func (uc *SearchUseCase) notifyUpdate() {
	if uc.handlers.OnUpdate != nil {
		uc.handlers.OnUpdate()
	}
}

func (uc *SearchUseCase) notifyError(message string) {
	if uc.handlers.OnError != nil {
		uc.handlers.OnError(message)
	}
}
