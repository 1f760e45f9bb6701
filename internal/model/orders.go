package model

import "time"

type PaymentType string

const (
	PaymentTypeFull        PaymentType = "full"
	PaymentTypePrepay      PaymentType = "prepay"
	PaymentTypePayAfter    PaymentType = "pay_after"
	PaymentTypeInstallment PaymentType = "installment"
	PaymentTypeCrypto      PaymentType = "crypto"
	PaymentTypeTest        PaymentType = "test_payment"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusCanceled PaymentStatus = "canceled"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusDelivering OrderStatus = "delivering"
	OrderStatusComplete   OrderStatus = "complete"
)

type Order struct {
	ID               int64         `json:"id"`
	InvoiceID        string        `json:"invoice_id"`
	UserID           *int64        `json:"user_id,omitempty"`
	PaymentType      PaymentType   `json:"payment_type"`
	PaymentStatus    PaymentStatus `json:"payment_status"`
	Status           OrderStatus   `json:"status"`
	BonusPointsSpent int           `json:"bonus_points_spent"`
	LoyaltyDiscount  float64       `json:"loyalty_discount"`
	CreatedAt        time.Time     `json:"created_at"`
	Items            []OrderItem   `json:"items"`
}

type OrderItem struct {
	ProductID int64   `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size"`
	Color     string  `json:"color,omitempty"`
}

// Total - каноническая сумма заказа: Σ(цена позиции * количество).
// Используется и для подписи платежа, и для расчета бонусов.
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
