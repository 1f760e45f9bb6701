package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/romchhh/13vplus-site-sub001/internal/gateway/plisio"
	"github.com/romchhh/13vplus-site-sub001/internal/gateway/wayforpay"
	"github.com/romchhh/13vplus-site-sub001/internal/model"
	"github.com/romchhh/13vplus-site-sub001/internal/repository/pg/mocks"
)

const (
	testWfpSecret    = "wfp-secret"
	testPlisioSecret = "plisio-secret"
)

func newTestService(t *testing.T) (*Service, *mocks.MockStorageRepo, *mocks.MockNotifySink) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	storage := mocks.NewMockStorageRepo(ctrl)
	notify := mocks.NewMockNotifySink(ctrl)

	srv := New(storage, notify, zap.NewNop().Sugar(), GatewayConfig{
		WayforpayMerchant: "test_merch_n1",
		WayforpayDomain:   "13vplus.com",
		WayforpaySecret:   testWfpSecret,
		PlisioSecret:      testPlisioSecret,
		Currency:          "UAH",
	})

	return srv, storage, notify
}

func testOrder() *model.Order {
	userID := int64(7)
	return &model.Order{
		ID:            42,
		InvoiceID:     "13VP-100500",
		UserID:        &userID,
		PaymentType:   model.PaymentTypeFull,
		PaymentStatus: model.PaymentStatusPending,
		Status:        model.OrderStatusPending,
		CreatedAt:     time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC),
		Items: []model.OrderItem{
			{ProductID: 1, Title: "Hoodie Black", Price: 1547.36, Quantity: 1, Size: "L", Color: "black"},
		},
	}
}

func signedWfpCallback(status string) *wayforpay.Callback {
	cb := &wayforpay.Callback{
		MerchantAccount:   "test_merch_n1",
		OrderReference:    "13VP-100500",
		Amount:            1547.36,
		Currency:          "UAH",
		AuthCode:          "354112",
		CardPan:           "41****8217",
		TransactionStatus: status,
		ReasonCode:        "1100",
	}
	cb.MerchantSignature = wayforpay.SignCallback(cb, testWfpSecret)
	return cb
}

func TestConfirmWayforpay_Settles(t *testing.T) {
	srv, storage, notify := newTestService(t)
	order := testOrder()
	cb := signedWfpCallback(wayforpay.TransactionApproved)

	storage.EXPECT().GetOrderByInvoiceID(gomock.Any(), "13VP-100500").Return(order, nil)
	storage.EXPECT().SettleOrderPaid(gomock.Any(), order).Return(model.Settlement{Applied: true, Bonus: 46}, nil)
	notify.EXPECT().OrderPaid(gomock.Any(), order, 46).Return(nil)

	ack, apiErr := srv.ConfirmWayforpay(context.Background(), cb)

	require.Nil(t, apiErr)
	assert.Equal(t, wayforpay.AckAccept, ack.Status)
	assert.Equal(t, "13VP-100500", ack.OrderReference)
	assert.NotEmpty(t, ack.Signature)
}

func TestConfirmWayforpay_InvalidSignature(t *testing.T) {
	// Хранилище не трогается вообще: мок без ожиданий это и проверяет.
	srv, _, _ := newTestService(t)
	cb := signedWfpCallback(wayforpay.TransactionApproved)
	cb.Amount = 1.00

	ack, apiErr := srv.ConfirmWayforpay(context.Background(), cb)

	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Code)
	assert.Equal(t, wayforpay.AckDecline, ack.Status)
}

func TestConfirmWayforpay_UnknownInvoice(t *testing.T) {
	srv, storage, _ := newTestService(t)
	cb := signedWfpCallback(wayforpay.TransactionApproved)

	storage.EXPECT().GetOrderByInvoiceID(gomock.Any(), "13VP-100500").Return(nil, model.ErrOrderNotFound)

	ack, apiErr := srv.ConfirmWayforpay(context.Background(), cb)

	require.Nil(t, apiErr)
	assert.Equal(t, wayforpay.AckAccept, ack.Status)
}

func TestConfirmWayforpay_DuplicateDelivery(t *testing.T) {
	srv, storage, _ := newTestService(t)
	order := testOrder()
	cb := signedWfpCallback(wayforpay.TransactionApproved)

	storage.EXPECT().GetOrderByInvoiceID(gomock.Any(), "13VP-100500").Return(order, nil)
	storage.EXPECT().SettleOrderPaid(gomock.Any(), order).Return(model.Settlement{Applied: false}, nil)
	// Уведомления нет: OrderPaid шлется только из сменившей статус доставки.

	ack, apiErr := srv.ConfirmWayforpay(context.Background(), cb)

	require.Nil(t, apiErr)
	assert.Equal(t, wayforpay.AckAccept, ack.Status)
}

func TestConfirmWayforpay_Declined(t *testing.T) {
	srv, storage, _ := newTestService(t)
	order := testOrder()
	cb := signedWfpCallback(wayforpay.TransactionDeclined)

	storage.EXPECT().GetOrderByInvoiceID(gomock.Any(), "13VP-100500").Return(order, nil)
	storage.EXPECT().CancelPendingOrder(gomock.Any(), int64(42)).Return(nil)

	ack, apiErr := srv.ConfirmWayforpay(context.Background(), cb)

	require.Nil(t, apiErr)
	assert.Equal(t, wayforpay.AckAccept, ack.Status)
}

func TestConfirmWayforpay_StorageError(t *testing.T) {
	srv, storage, _ := newTestService(t)
	cb := signedWfpCallback(wayforpay.TransactionApproved)

	storage.EXPECT().GetOrderByInvoiceID(gomock.Any(), "13VP-100500").Return(nil, errors.New("connection refused"))

	_, apiErr := srv.ConfirmWayforpay(context.Background(), cb)

	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Code)
}

func TestConfirmWayforpay_SettleError(t *testing.T) {
	srv, storage, _ := newTestService(t)
	order := testOrder()
	cb := signedWfpCallback(wayforpay.TransactionApproved)

	storage.EXPECT().GetOrderByInvoiceID(gomock.Any(), "13VP-100500").Return(order, nil)
	storage.EXPECT().SettleOrderPaid(gomock.Any(), order).Return(model.Settlement{}, errors.New("tx aborted"))

	_, apiErr := srv.ConfirmWayforpay(context.Background(), cb)

	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Code)
}

func TestConfirmWayforpay_NotifyErrorSwallowed(t *testing.T) {
	srv, storage, notify := newTestService(t)
	order := testOrder()
	cb := signedWfpCallback(wayforpay.TransactionApproved)

	storage.EXPECT().GetOrderByInvoiceID(gomock.Any(), "13VP-100500").Return(order, nil)
	storage.EXPECT().SettleOrderPaid(gomock.Any(), order).Return(model.Settlement{Applied: true, Bonus: 46}, nil)
	notify.EXPECT().OrderPaid(gomock.Any(), order, 46).Return(errors.New("notify service down"))

	_, apiErr := srv.ConfirmWayforpay(context.Background(), cb)

	// Платеж уже зафиксирован, сбой уведомления наружу не выходит.
	assert.Nil(t, apiErr)
}

func signedPlisioCallback(t *testing.T, status string) *plisio.Callback {
	t.Helper()

	payload := fmt.Sprintf(`{"txn_id":"abc123","order_number":"13VP-100500","status":%q,"amount":"0.0015","currency":"BTC"}`, status)

	cb, err := plisio.Parse("application/json", []byte(payload))
	require.NoError(t, err)

	body := fmt.Sprintf(`{"txn_id":"abc123","order_number":"13VP-100500","status":%q,"amount":"0.0015","currency":"BTC","verify_hash":%q}`,
		status, cb.Sign(testPlisioSecret))

	signed, err := plisio.Parse("application/json", []byte(body))
	require.NoError(t, err)
	return signed
}

func TestConfirmPlisio_Settles(t *testing.T) {
	srv, storage, notify := newTestService(t)
	order := testOrder()
	cb := signedPlisioCallback(t, plisio.StatusCompleted)

	storage.EXPECT().GetOrderByInvoiceID(gomock.Any(), "13VP-100500").Return(order, nil)
	storage.EXPECT().SettleOrderPaid(gomock.Any(), order).Return(model.Settlement{Applied: true, Bonus: 46}, nil)
	notify.EXPECT().OrderPaid(gomock.Any(), order, 46).Return(nil)

	assert.Nil(t, srv.ConfirmPlisio(context.Background(), cb))
}

func TestConfirmPlisio_InvalidHash(t *testing.T) {
	srv, _, _ := newTestService(t)

	cb, err := plisio.Parse("application/json",
		[]byte(`{"txn_id":"abc123","order_number":"13VP-100500","status":"completed","verify_hash":"0000"}`))
	require.NoError(t, err)

	apiErr := srv.ConfirmPlisio(context.Background(), cb)

	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Code)
}

func TestConfirmPlisio_Cancelled(t *testing.T) {
	srv, storage, _ := newTestService(t)
	order := testOrder()
	cb := signedPlisioCallback(t, "cancelled")

	storage.EXPECT().GetOrderByInvoiceID(gomock.Any(), "13VP-100500").Return(order, nil)
	storage.EXPECT().CancelPendingOrder(gomock.Any(), int64(42)).Return(nil)

	assert.Nil(t, srv.ConfirmPlisio(context.Background(), cb))
}

func TestConfirmPlisio_PendingStatusIgnored(t *testing.T) {
	// Промежуточные статусы не отменяют заказ и не проводят платеж.
	srv, storage, _ := newTestService(t)
	order := testOrder()
	cb := signedPlisioCallback(t, "pending")

	storage.EXPECT().GetOrderByInvoiceID(gomock.Any(), "13VP-100500").Return(order, nil)

	assert.Nil(t, srv.ConfirmPlisio(context.Background(), cb))
}

func TestConfirmPlisio_UnknownInvoice(t *testing.T) {
	srv, storage, _ := newTestService(t)
	cb := signedPlisioCallback(t, plisio.StatusCompleted)

	storage.EXPECT().GetOrderByInvoiceID(gomock.Any(), "13VP-100500").Return(nil, model.ErrOrderNotFound)

	assert.Nil(t, srv.ConfirmPlisio(context.Background(), cb))
}

func TestBuildInvoice(t *testing.T) {
	srv, storage, _ := newTestService(t)
	order := testOrder()

	storage.EXPECT().GetOrderByInvoiceID(gomock.Any(), "13VP-100500").Return(order, nil)

	invoice, apiErr := srv.BuildInvoice(context.Background(), "13VP-100500")

	require.Nil(t, apiErr)
	assert.Equal(t, "test_merch_n1", invoice.MerchantAccount)
	assert.Equal(t, "13vplus.com", invoice.MerchantDomainName)
	assert.Equal(t, "13VP-100500", invoice.OrderReference)
	assert.Equal(t, order.CreatedAt.Unix(), invoice.OrderDate)
	assert.Equal(t, 1547.36, invoice.Amount)
	assert.Equal(t, []string{"Hoodie Black"}, invoice.ProductNames)
	assert.Equal(t, []int{1}, invoice.ProductCounts)
	assert.Equal(t, []float64{1547.36}, invoice.ProductPrices)
	assert.Equal(t, wayforpay.SignInvoice(invoice, testWfpSecret), invoice.MerchantSignature)
}

func TestBuildInvoice_NotFound(t *testing.T) {
	srv, storage, _ := newTestService(t)

	storage.EXPECT().GetOrderByInvoiceID(gomock.Any(), "no-such").Return(nil, model.ErrOrderNotFound)

	_, apiErr := srv.BuildInvoice(context.Background(), "no-such")

	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Code)
}

func TestPing(t *testing.T) {
	srv, storage, _ := newTestService(t)

	storage.EXPECT().Ping().Return(nil)
	assert.NoError(t, srv.Ping())
}
