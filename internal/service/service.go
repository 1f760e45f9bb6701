package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/romchhh/13vplus-site-sub001/internal/gateway/plisio"
	"github.com/romchhh/13vplus-site-sub001/internal/gateway/wayforpay"
	"github.com/romchhh/13vplus-site-sub001/internal/model"
)

type StorageRepo interface {
	GetOrderByInvoiceID(ctx context.Context, invoiceID string) (*model.Order, error)
	SettleOrderPaid(ctx context.Context, order *model.Order) (model.Settlement, error)
	CancelPendingOrder(ctx context.Context, orderID int64) error
	Ping() error
}

type NotifySink interface {
	OrderPaid(ctx context.Context, order *model.Order, bonus int) error
}

type GatewayConfig struct {
	WayforpayMerchant string
	WayforpayDomain   string
	WayforpaySecret   string
	PlisioSecret      string
	Currency          string
}

type Service struct {
	storage StorageRepo
	notify  NotifySink
	lg      *zap.SugaredLogger

	gateways GatewayConfig
}

func New(s StorageRepo, n NotifySink, lg *zap.SugaredLogger, gateways GatewayConfig) *Service {
	return &Service{
		storage:  s,
		notify:   n,
		lg:       lg,
		gateways: gateways,
	}
}

// ConfirmWayforpay обрабатывает коллбек WayForPay.
//
// Ошибочный статус возвращается шлюзу только при невалидной подписи и при
// сбое базы: первое - обязательный отказ без каких-либо мутаций, второе
// безопасно, потому что повтор доставки идемпотентен. Все остальное,
// включая неизвестный инвойс и повторную доставку, подтверждается успехом,
// иначе шлюз зациклится на ретраях.
func (s *Service) ConfirmWayforpay(ctx context.Context, cb *wayforpay.Callback) (wayforpay.Ack, *model.APIError) {
	if !wayforpay.VerifyCallback(cb, s.gateways.WayforpaySecret) {
		s.lg.Warnf("wayforpay callback %s: signature mismatch", cb.OrderReference)
		return s.ack(cb.OrderReference, wayforpay.AckDecline), &model.APIError{
			Code:    http.StatusBadRequest,
			Message: model.ErrInvalidSignatureMessage,
		}
	}

	order, err := s.storage.GetOrderByInvoiceID(ctx, cb.OrderReference)
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			// Чужой или давно удаленный инвойс. Подтверждаем успех, иначе
			// шлюз будет ретраить доставку для заказа, которого не будет.
			s.lg.Warnf("wayforpay callback for unknown invoice %s", cb.OrderReference)
			return s.ack(cb.OrderReference, wayforpay.AckAccept), nil
		}
		return wayforpay.Ack{}, &model.APIError{
			Code:    http.StatusInternalServerError,
			Message: model.ErrInternalServerMessage,
		}
	}

	if !cb.Approved() {
		// Отказ/просрочка - информационное событие. Оплаченный заказ
		// никогда не откатывается.
		if err := s.storage.CancelPendingOrder(ctx, order.ID); err != nil {
			return wayforpay.Ack{}, &model.APIError{
				Code:    http.StatusInternalServerError,
				Message: model.ErrInternalServerMessage,
			}
		}

		s.lg.Infof("wayforpay callback %s: transaction %s", cb.OrderReference, cb.TransactionStatus)
		return s.ack(cb.OrderReference, wayforpay.AckAccept), nil
	}

	if total := order.Total(); float64(cb.Amount) != total {
		s.lg.Warnf("wayforpay callback %s: amount %s differs from order total %s",
			cb.OrderReference, wayforpay.FormatAmount(float64(cb.Amount)), wayforpay.FormatAmount(total))
	}

	if apiErr := s.settle(ctx, order); apiErr != nil {
		return wayforpay.Ack{}, apiErr
	}

	return s.ack(cb.OrderReference, wayforpay.AckAccept), nil
}

// ConfirmPlisio обрабатывает коллбек Plisio. Семантика та же, что и у
// ConfirmWayforpay, подписанного ответа протокол не требует.
func (s *Service) ConfirmPlisio(ctx context.Context, cb *plisio.Callback) *model.APIError {
	if err := cb.Verify(s.gateways.PlisioSecret); err != nil {
		s.lg.Warnf("plisio callback %s: %v", cb.OrderNumber(), err)
		return &model.APIError{
			Code:    http.StatusBadRequest,
			Message: model.ErrInvalidSignatureMessage,
		}
	}

	order, err := s.storage.GetOrderByInvoiceID(ctx, cb.OrderNumber())
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			s.lg.Warnf("plisio callback for unknown invoice %s", cb.OrderNumber())
			return nil
		}
		return &model.APIError{
			Code:    http.StatusInternalServerError,
			Message: model.ErrInternalServerMessage,
		}
	}

	if !cb.Completed() {
		switch cb.Status() {
		case "cancelled", "expired", "error":
			if err := s.storage.CancelPendingOrder(ctx, order.ID); err != nil {
				return &model.APIError{
					Code:    http.StatusInternalServerError,
					Message: model.ErrInternalServerMessage,
				}
			}
		}

		s.lg.Infof("plisio callback %s: status %s", cb.OrderNumber(), cb.Status())
		return nil
	}

	return s.settle(ctx, order)
}

// settle - единая точка проведения платежа для обоих шлюзов и поллера.
// Уведомление уходит только из доставки, реально сменившей статус; его сбой
// логируется и глотается - платеж уже зафиксирован.
func (s *Service) settle(ctx context.Context, order *model.Order) *model.APIError {
	settlement, err := s.storage.SettleOrderPaid(ctx, order)
	if err != nil {
		s.lg.Errorf("settle order %s error: %v", order.InvoiceID, err)
		return &model.APIError{
			Code:    http.StatusInternalServerError,
			Message: model.ErrInternalServerMessage,
		}
	}

	if !settlement.Applied {
		s.lg.Infof("order %s already settled, duplicate delivery", order.InvoiceID)
		return nil
	}

	s.lg.Infof("order %s settled, bonus %d", order.InvoiceID, settlement.Bonus)

	if err := s.notify.OrderPaid(ctx, order, settlement.Bonus); err != nil {
		s.lg.Errorf("order paid notification %s error: %v", order.InvoiceID, err)
	}

	return nil
}

// BuildInvoice собирает подписанный набор параметров платежной формы
// WayForPay для страницы оплаты.
func (s *Service) BuildInvoice(ctx context.Context, invoiceID string) (*wayforpay.Invoice, *model.APIError) {
	order, err := s.storage.GetOrderByInvoiceID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			return nil, &model.APIError{
				Code:    http.StatusNotFound,
				Message: model.ErrOrderNotFoundMessage,
			}
		}
		return nil, &model.APIError{
			Code:    http.StatusInternalServerError,
			Message: model.ErrInternalServerMessage,
		}
	}

	invoice := &wayforpay.Invoice{
		MerchantAccount:    s.gateways.WayforpayMerchant,
		MerchantDomainName: s.gateways.WayforpayDomain,
		OrderReference:     order.InvoiceID,
		OrderDate:          order.CreatedAt.Unix(),
		Amount:             order.Total(),
		Currency:           s.gateways.Currency,
	}
	for _, item := range order.Items {
		invoice.ProductNames = append(invoice.ProductNames, item.Title)
		invoice.ProductCounts = append(invoice.ProductCounts, item.Quantity)
		invoice.ProductPrices = append(invoice.ProductPrices, item.Price)
	}

	invoice.MerchantSignature = wayforpay.SignInvoice(invoice, s.gateways.WayforpaySecret)

	return invoice, nil
}

func (s *Service) Ping() error {
	return s.storage.Ping()
}

func (s *Service) ack(orderReference, status string) wayforpay.Ack {
	return wayforpay.NewAck(orderReference, status, time.Now(), s.gateways.WayforpaySecret)
}
