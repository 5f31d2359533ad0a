package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/posdesk/pos-engine/internal/application/use_cases"
	"github.com/posdesk/pos-engine/internal/domain/catalog"
	domainErrors "github.com/posdesk/pos-engine/internal/domain/errors"
	"github.com/posdesk/pos-engine/internal/domain/sale"
	"github.com/posdesk/pos-engine/internal/pkg/clock"
	"github.com/posdesk/pos-engine/internal/pkg/money"
)

const helpText = `commands:
  status                 show register status
  open <amount>          open the register with an opening balance
  close <amount> [notes] close the register with the counted balance
  cart                   show the current ticket
  qty <sku> <n>          change a line's quantity (0 removes it)
  rm <sku>               remove a line
  void                   empty the ticket
  pay cash [received]    pay in cash (no amount = exact payment)
  pay card|transfer      pay by card or transfer
  customer <id>          attach a customer to the sale
  confirm                submit the sale
  quit                   exit
anything else is a catalog search; type a number to pick a suggestion`

type terminal struct {
	gate      *use_cases.CashSessionUseCase
	checkout  *use_cases.CheckoutUseCase
	search    *use_cases.SearchUseCase
	clk       clock.Clock
	loggedOut *atomic.Bool
}

func newTerminal(gate *use_cases.CashSessionUseCase, checkout *use_cases.CheckoutUseCase, loggedOut *atomic.Bool) *terminal {
	return &terminal{
		gate:      gate,
		checkout:  checkout,
		clk:       clock.NewRealClock(),
		loggedOut: loggedOut,
	}
}

func (t *terminal) searchHandlers() use_cases.SearchHandlers {
	return use_cases.SearchHandlers{
		OnSelect: func(s catalog.Sellable) {
			if err := t.checkout.AddItem(s, 1); err != nil {
				fmt.Println("!", domainErrors.Message(err))
				return
			}
			fmt.Printf("+ %s (%s) %s\n", s.ProductName, s.SKU, s.UnitPrice.Format())
			t.printCart()
		},
		OnUpdate: func() {
			t.printSuggestions()
		},
		OnError: func(message string) {
			fmt.Println("!", message)
		},
	}
}

func (t *terminal) run(in io.Reader) {
	fmt.Println(helpText)
	t.printStatus()

	scanner := bufio.NewScanner(in)
	fmt.Print("> ")
	for scanner.Scan() {
		if t.loggedOut.Load() {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Print("> ")
			continue
		}
		if line == "quit" || line == "exit" {
			return
		}

		t.handle(line)
		if t.loggedOut.Load() {
			return
		}
		fmt.Print("> ")
	}
}

func (t *terminal) handle(line string) {
	ctx := context.Background()
	fields := strings.Fields(line)

	// A bare number picks from the suggestion list only while one is
	// showing; otherwise it is a scanned numeric barcode and goes to
	// search like any other code.
	if n, err := strconv.Atoi(fields[0]); err == nil && len(fields) == 1 {
		if n >= 1 && n <= len(t.search.Suggestions()) {
			if err := t.search.Select(n - 1); err != nil {
				fmt.Println("! no such suggestion")
			}
			return
		}
	}

	switch fields[0] {
	case "help":
		fmt.Println(helpText)

	case "status":
		if err := t.gate.RefreshStatus(ctx); err != nil {
			fmt.Println("!", domainErrors.Message(err))
		}
		t.printStatus()

	case "open":
		amount, ok := parseAmountArg(fields, 1)
		if !ok {
			fmt.Println("! usage: open <amount>")
			return
		}
		session, err := t.gate.Open(ctx, amount)
		if err != nil {
			fmt.Println("!", domainErrors.Message(err))
			return
		}
		fmt.Printf("register open, session %s\n", session.ID)

	case "close":
		amount, ok := parseAmountArg(fields, 1)
		if !ok {
			fmt.Println("! usage: close <amount> [notes]")
			return
		}
		notes := strings.Join(fields[2:], " ")
		session, err := t.gate.Close(ctx, amount, notes)
		if err != nil {
			fmt.Println("!", domainErrors.Message(err))
			return
		}
		fmt.Printf("register closed, difference %s\n", session.Difference.Format())

	case "cart":
		t.printCart()

	case "qty":
		if len(fields) != 3 {
			fmt.Println("! usage: qty <sku> <n>")
			return
		}
		qty, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			fmt.Println("! usage: qty <sku> <n>")
			return
		}
		id, ok := t.findBySKU(fields[1])
		if !ok {
			fmt.Println("! not in ticket:", fields[1])
			return
		}
		if qty <= 0 {
			t.checkout.SetQuantity(id, 0)
		} else {
			t.checkout.SetQuantity(id, money.CoerceQuantity(qty))
		}
		t.printCart()

	case "rm":
		if len(fields) != 2 {
			fmt.Println("! usage: rm <sku>")
			return
		}
		if id, ok := t.findBySKU(fields[1]); ok {
			t.checkout.RemoveItem(id)
			t.printCart()
		} else {
			fmt.Println("! not in ticket:", fields[1])
		}

	case "void":
		t.checkout.Void()
		fmt.Println("ticket voided")

	case "pay":
		t.handlePay(fields)

	case "customer":
		if len(fields) != 2 {
			fmt.Println("! usage: customer <id>")
			return
		}
		t.checkout.SetCustomer(fields[1])

	case "confirm":
		receipt, err := t.checkout.Confirm(ctx)
		if err != nil {
			fmt.Println("!", domainErrors.Message(err))
			return
		}
		if receipt == nil {
			fmt.Println("! submission already in progress")
			return
		}
		fmt.Printf("sale %s (%s) registered, change %s\n", receipt.SaleID, receipt.Folio, receipt.Change.Format())

	default:
		t.search.SetQuery(line)
	}
}

func (t *terminal) handlePay(fields []string) {
	if len(fields) < 2 {
		fmt.Println("! usage: pay cash [received] | pay card | pay transfer | pay other")
		return
	}

	method, ok := sale.ParseMethod(fields[1])
	if !ok {
		fmt.Println("! unknown payment method:", fields[1])
		return
	}
	t.checkout.SetPaymentMethod(method)

	if method == sale.MethodCash {
		received := t.checkout.Subtotal()
		if len(fields) >= 3 {
			parsed, err := money.Parse(fields[2])
			if err != nil {
				fmt.Println("! invalid amount:", fields[2])
				return
			}
			received = parsed
		}
		if err := t.checkout.SetCashReceived(received); err != nil {
			fmt.Println("!", domainErrors.Message(err))
			return
		}
		fmt.Printf("cash %s received, change %s\n", received.Format(), t.checkout.Change().Format())
		return
	}

	fmt.Printf("paying %s %s\n", strings.ToLower(string(method)), t.checkout.Subtotal().Format())
}

func (t *terminal) findBySKU(sku string) (string, bool) {
	for _, l := range t.checkout.Lines() {
		if strings.EqualFold(l.SKU, sku) {
			return l.SellableID, true
		}
	}
	return "", false
}

func (t *terminal) printStatus() {
	session := t.gate.Current()
	if session.IsOpen() {
		openFor := t.clk.Since(session.OpenedAt).Round(time.Minute)
		fmt.Printf("register OPEN (session %s, open for %s)\n", session.ID, openFor)
	} else {
		fmt.Println("register CLOSED")
	}
}

func (t *terminal) printSuggestions() {
	suggestions := t.search.Suggestions()
	if len(suggestions) == 0 {
		return
	}
	fmt.Println()
	for i, s := range suggestions {
		fmt.Printf("  %d. %-30s %-12s %s\n", i+1, s.ProductName, s.SKU, s.UnitPrice.Format())
	}
	fmt.Print("> ")
}

func (t *terminal) printCart() {
	lines := t.checkout.Lines()
	if len(lines) == 0 {
		fmt.Println("ticket empty")
		return
	}
	for _, l := range lines {
		fmt.Printf("  %-30s %-12s %s x %d = %s\n", l.Name, l.SKU, l.UnitPrice.Format(), l.Quantity, l.Total().Format())
	}
	fmt.Printf("  total: %s (%d items)\n", t.checkout.Subtotal().Format(), t.checkout.ItemCount())
}

func parseAmountArg(fields []string, i int) (money.Money, bool) {
	if len(fields) <= i {
		return 0, false
	}
	amount, err := money.Parse(fields[i])
	if err != nil {
		return 0, false
	}
	return amount, true
}
