// Package view turns backend data into the JSON shapes the storefront
// pages render. Builders are pure: same input, same output.
package view

import (
	"fmt"
	"net/url"
	"strings"

	"storefront/internal/models"
	"storefront/internal/pricing"
)

const placeholderProductImage = "https://placehold.co/400x400/E0F2E9/333333?text="

type Badge struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
}

// ProductCardView is a product as shown in a listing grid.
type ProductCardView struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Type           string  `json:"type,omitempty"`
	ImageURL       string  `json:"image_url"`
	FinalPrice     int64   `json:"final_price"`
	Price          string  `json:"price"`
	OriginalPrice  string  `json:"original_price,omitempty"`
	Discount       int     `json:"discount"`
	Stock          int     `json:"stock"`
	SoldOut        bool    `json:"sold_out"`
	LowStock       bool    `json:"low_stock"`
	Badges         []Badge `json:"badges"`
	ProductLinkURL string  `json:"link"`
}

// ProductDetailView adds what the detail page needs on top of the card.
type ProductDetailView struct {
	ProductCardView
	Description string `json:"description"`
	Savings     string `json:"savings,omitempty"`
	StockLabel  string `json:"stock_label"`
	CanPurchase bool   `json:"can_purchase"`
	MaxQuantity int    `json:"max_quantity"`
}

func ProductCard(p models.Product) ProductCardView {
	final := pricing.FinalPrice(p.Price, p.Discount)

	v := ProductCardView{
		ID:             p.ID,
		Name:           p.Name,
		Type:           p.Type,
		ImageURL:       productImage(p),
		FinalPrice:     final.Round(0).IntPart(),
		Price:          pricing.FormatIDR(final),
		Discount:       p.Discount,
		Stock:          p.Stock,
		SoldOut:        pricing.IsSoldOut(p.Stock),
		LowStock:       pricing.IsLowStock(p.Stock),
		Badges:         []Badge{},
		ProductLinkURL: fmt.Sprintf("/product/%d", p.ID),
	}
	if p.Discount > 0 {
		v.OriginalPrice = pricing.FormatIDRInt(p.Price)
		v.Badges = append(v.Badges, Badge{Kind: "discount", Label: fmt.Sprintf("%d%% OFF", p.Discount)})
	}
	if v.LowStock {
		v.Badges = append(v.Badges, Badge{Kind: "low_stock", Label: fmt.Sprintf("%d left!", p.Stock)})
	}
	if v.SoldOut {
		v.Badges = append(v.Badges, Badge{Kind: "sold_out", Label: "SOLD OUT"})
	}
	return v
}

func ProductCards(products []models.Product) []ProductCardView {
	out := make([]ProductCardView, 0, len(products))
	for _, p := range products {
		out = append(out, ProductCard(p))
	}
	return out
}

func ProductDetail(p models.Product) ProductDetailView {
	v := ProductDetailView{
		ProductCardView: ProductCard(p),
		Description:     p.Description,
		StockLabel:      fmt.Sprintf("Stok: %d", p.Stock),
		CanPurchase:     p.Stock > 0,
		MaxQuantity:     p.Stock,
	}
	if p.Discount > 0 {
		v.Savings = "Hemat " + pricing.FormatIDR(pricing.Savings(p.Price, p.Discount))
	}
	if v.LowStock {
		v.StockLabel = fmt.Sprintf("Hanya %d tersisa!", p.Stock)
	}
	if v.MaxQuantity < 0 {
		v.MaxQuantity = 0
	}
	return v
}

// productImage falls back to a placeholder labelled with the first word of
// the product name.
func productImage(p models.Product) string {
	if p.ImageURL != "" {
		return p.ImageURL
	}
	label := "Produk"
	if fields := strings.Fields(p.Name); len(fields) > 0 {
		label = fields[0]
	}
	return placeholderProductImage + url.QueryEscape(label)
}
