package view

import (
	"storefront/internal/backend"
	"storefront/internal/pricing"
	"storefront/internal/service"
)

type CartLineView struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Note        string `json:"note,omitempty"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`
}

type CartView struct {
	Lines       []CartLineView `json:"lines"`
	TotalItems  int            `json:"total_items"`
	Subtotal    int64          `json:"subtotal"`
	SubtotalFmt string         `json:"subtotal_formatted"`
	Empty       bool           `json:"empty"`
	CanCheckout bool           `json:"can_checkout"`
	LoadError   string         `json:"load_error,omitempty"`
	Version     uint64         `json:"version"`
}

// CartBadge is what the header counter stream sends.
type CartBadge struct {
	TotalItems int    `json:"total_items"`
	Version    uint64 `json:"version"`
}

func CartPage(s service.CartSnapshot) CartView {
	subtotal := s.Cart.Subtotal()
	v := CartView{
		Lines:       make([]CartLineView, 0, len(s.Cart.Items)),
		TotalItems:  s.TotalItems(),
		Subtotal:    subtotal,
		SubtotalFmt: pricing.FormatIDRInt(subtotal),
		Empty:       s.Loaded && s.Cart.IsEmpty(),
		CanCheckout: subtotal > 0,
		Version:     s.Version,
	}
	for _, it := range s.Cart.Items {
		v.Lines = append(v.Lines, CartLineView{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Note:        it.Note,
			Quantity:    it.Quantity,
			UnitPrice:   pricing.FormatIDRInt(it.Price),
			LineTotal:   pricing.FormatIDRInt(it.Price * int64(it.Quantity)),
		})
	}
	if s.LoadErr != nil {
		v.LoadError = backend.Message(s.LoadErr)
	}
	return v
}

func CartCounter(s service.CartSnapshot) CartBadge {
	return CartBadge{TotalItems: s.TotalItems(), Version: s.Version}
}
