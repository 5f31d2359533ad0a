package api

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/posdesk/pos-engine/internal/domain/catalog"
	"github.com/posdesk/pos-engine/internal/pkg/money"
)

// CatalogClient talks to the catalog service. Responses are normalized into
// domain types here, once; nothing downstream re-probes wire shapes.
type CatalogClient struct {
	client *Client
}

func NewCatalogClient(client *Client) *CatalogClient {
	return &CatalogClient{client: client}
}

type productDTO struct {
	ID       json.Number  `json:"id"`
	Name     string       `json:"name"`
	Variants []variantDTO `json:"variants"`
}

type variantDTO struct {
	ID      json.Number `json:"id"`
	SKU     string      `json:"sku"`
	Barcode string      `json:"barcode"`
	Price   float64     `json:"price"`
}

func (c *CatalogClient) Search(ctx context.Context, query string) ([]catalog.Product, error) {
	var dtos []productDTO
	q := url.Values{"q": []string{query}}
	if err := c.client.get(ctx, "/search", q, &dtos); err != nil {
		return nil, err
	}

	products := make([]catalog.Product, 0, len(dtos))
	for _, dto := range dtos {
		// Entries without variants carry nothing sellable; drop them here
		// instead of making every caller defend against them.
		if len(dto.Variants) == 0 {
			continue
		}

		p := catalog.Product{
			ID:       dto.ID.String(),
			Name:     dto.Name,
			Variants: make([]catalog.Variant, 0, len(dto.Variants)),
		}
		for _, v := range dto.Variants {
			price, err := money.FromFloat(v.Price)
			if err != nil {
				price = 0
			}
			p.Variants = append(p.Variants, catalog.Variant{
				ID:      v.ID.String(),
				SKU:     v.SKU,
				Barcode: v.Barcode,
				Price:   price,
			})
		}
		products = append(products, p)
	}
	return products, nil
}
