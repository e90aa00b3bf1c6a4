package view

import (
	"storefront/internal/backend"
	"storefront/internal/models"
	"storefront/internal/pricing"
	"storefront/internal/service"
)

type OrderItemView struct {
	ProductName string `json:"product_name"`
	SellerName  string `json:"seller_name,omitempty"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`
}

type OrderCardView struct {
	ID        int64           `json:"id"`
	Status    StatusView      `json:"status"`
	Date      string          `json:"date"`
	Time      string          `json:"time"`
	Items     []OrderItemView `json:"items"`
	Total     string          `json:"total"`
	CanCancel bool            `json:"can_cancel"`
}

type OrderHistoryView struct {
	Orders    []OrderCardView `json:"orders"`
	Empty     bool            `json:"empty"`
	LoadError string          `json:"load_error,omitempty"`
	Version   uint64          `json:"version"`
}

func OrderCard(o models.OrderWithItems) OrderCardView {
	v := OrderCardView{
		ID:        o.Order.ID,
		Status:    Status(o.Order.Status),
		Items:     make([]OrderItemView, 0, len(o.Items)),
		Total:     pricing.FormatIDRInt(o.Order.TotalPrice),
		CanCancel: models.CanCancel(o.Order.Status),
	}
	if !o.Order.CreatedAt.IsZero() {
		v.Date = LongDate(o.Order.CreatedAt)
		v.Time = ClockWIB(o.Order.CreatedAt)
	}
	for _, it := range o.Items {
		v.Items = append(v.Items, OrderItemView{
			ProductName: it.ProductName,
			SellerName:  it.SellerName,
			Quantity:    it.Quantity,
			UnitPrice:   pricing.FormatIDRInt(it.ProductPrice),
			LineTotal:   pricing.FormatIDRInt(it.ProductPrice * int64(it.Quantity)),
		})
	}
	return v
}

func OrderHistory(s service.OrderSnapshot) OrderHistoryView {
	v := OrderHistoryView{
		Orders:  make([]OrderCardView, 0, len(s.Orders)),
		Empty:   s.Loaded && len(s.Orders) == 0,
		Version: s.Version,
	}
	for _, o := range s.Orders {
		v.Orders = append(v.Orders, OrderCard(o))
	}
	if s.LoadErr != nil {
		v.LoadError = backend.Message(s.LoadErr)
	}
	return v
}
