// Package notifier отправляет fire-and-forget уведомления об оплате заказа
// в нотификационный мост магазина. Сбой уведомления никогда не влияет
// на судьбу платежа: ошибки логируются вызывающей стороной и глотаются.
package notifier

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/romchhh/13vplus-site-sub001/internal/model"
)

const orderPaidPath = "/api/notifications/order-paid"

type Client struct {
	serviceAddr string
	http        *resty.Client
}

func New(serviceAddr string) *Client {
	client := resty.New().
		SetTimeout(5 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	return &Client{
		serviceAddr: serviceAddr,
		http:        client,
	}
}

type orderPaidEvent struct {
	OrderID   int64   `json:"order_id"`
	InvoiceID string  `json:"invoice_id"`
	UserID    *int64  `json:"user_id,omitempty"`
	Amount    float64 `json:"amount"`
	Bonus     int     `json:"bonus"`
}

// OrderPaid шлет событие "заказ оплачен".
func (c *Client) OrderPaid(ctx context.Context, order *model.Order, bonus int) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(orderPaidEvent{
			OrderID:   order.ID,
			InvoiceID: order.InvoiceID,
			UserID:    order.UserID,
			Amount:    order.Total(),
			Bonus:     bonus,
		}).
		Post(c.serviceAddr + orderPaidPath)
	if err != nil {
		return err
	}

	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("notifier: unexpected status %s", resp.Status())
	}

	return nil
}
