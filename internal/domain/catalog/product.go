package catalog

import (
	"strings"

	"github.com/posdesk/pos-engine/internal/pkg/money"
)

// Product is a catalog entry as returned by the catalog service, already
// normalized at the API boundary.
type Product struct {
	ID       string
	Name     string
	Variants []Variant
}

type Variant struct {
	ID      string
	SKU     string
	Barcode string
	Price   money.Money
}

// Sellable is the priced, identified variant that can be added to a cart.
// The first variant of a product is the sellable one.
type Sellable struct {
	VariantID   string
	ProductName string
	SKU         string
	Barcode     string
	UnitPrice   money.Money
}

// Sellable returns the product's sellable variant, or false for broken
// catalog entries that carry no variants.
func (p Product) Sellable() (Sellable, bool) {
	if len(p.Variants) == 0 {
		return Sellable{}, false
	}
	v := p.Variants[0]
	if v.ID == "" {
		return Sellable{}, false
	}
	return Sellable{
		VariantID:   v.ID,
		ProductName: p.Name,
		SKU:         v.SKU,
		Barcode:     v.Barcode,
		UnitPrice:   v.Price,
	}, true
}

// MatchesCode reports whether code equals the sellable's SKU
// (case-insensitive) or barcode (exact), the barcode-scan fast path.
func (s Sellable) MatchesCode(code string) bool {
	if code == "" {
		return false
	}
	if s.SKU != "" && strings.EqualFold(s.SKU, code) {
		return true
	}
	return s.Barcode != "" && s.Barcode == code
}
