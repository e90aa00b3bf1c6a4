package view

import "storefront/internal/models"

// StatusTone drives the colour of a status pill.
type StatusTone string

const (
	TonePending  StatusTone = "warning"
	ToneInfo     StatusTone = "info"
	ToneProgress StatusTone = "progress"
	ToneSuccess  StatusTone = "success"
	ToneDanger   StatusTone = "danger"
)

type StatusView struct {
	Code  models.OrderStatus `json:"code"`
	Label string             `json:"label"`
	Tone  StatusTone         `json:"tone"`
	Icon  string             `json:"icon"`
}

var statuses = map[models.OrderStatus]StatusView{
	models.OrderStatusPendingPayment: {Label: "Menunggu Pembayaran", Tone: TonePending, Icon: "clock"},
	models.OrderStatusPaid:           {Label: "Dibayar", Tone: ToneInfo, Icon: "credit-card"},
	models.OrderStatusShipped:        {Label: "Dikirim", Tone: ToneProgress, Icon: "truck"},
	models.OrderStatusDelivered:      {Label: "Selesai", Tone: ToneSuccess, Icon: "check-circle"},
	models.OrderStatusCanceled:       {Label: "Dibatalkan", Tone: ToneDanger, Icon: "x-circle"},
}

// Status presents s. Statuses this build does not know about are shown as
// pending.
func Status(s models.OrderStatus) StatusView {
	v, ok := statuses[s]
	if !ok {
		v = statuses[models.OrderStatusPendingPayment]
	}
	v.Code = s
	return v
}
