package http

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/romchhh/13vplus-site-sub001/internal/gateway/plisio"
	"github.com/romchhh/13vplus-site-sub001/internal/gateway/wayforpay"
	"github.com/romchhh/13vplus-site-sub001/internal/model"
)

type Service interface {
	ConfirmWayforpay(ctx context.Context, cb *wayforpay.Callback) (wayforpay.Ack, *model.APIError)
	ConfirmPlisio(ctx context.Context, cb *plisio.Callback) *model.APIError
	BuildInvoice(ctx context.Context, invoiceID string) (*wayforpay.Invoice, *model.APIError)
	Ping() error
}

type Controller struct {
	service Service
	lg      *zap.SugaredLogger
}

func New(s Service, lg *zap.SugaredLogger) *Controller {
	return &Controller{
		lg:      lg,
		service: s,
	}
}

// WayforpayCallback - serviceUrl для WayForPay. Шлюз повторяет доставку,
// пока не получит корректно подписанный ответ-подтверждение, поэтому тело
// ответа собирает сервис, а не обработчик.
func (c *Controller) WayforpayCallback(w http.ResponseWriter, r *http.Request) {
	// WayForPay шлет JSON с content-type text/plain либо вовсе без него.
	body, err := readBody[wayforpay.Callback](r)
	if err != nil {
		c.lg.Errorf("failed to parse wayforpay callback: %v", err)
		http.Error(w, model.ErrMalformedCallbackMessage, http.StatusBadRequest)
		return
	}

	ack, apiErr := c.service.ConfirmWayforpay(r.Context(), &body)
	if apiErr != nil {
		if apiErr.Code >= http.StatusInternalServerError {
			http.Error(w, apiErr.Message, apiErr.Code)
			return
		}

		writeJSON(w, c.lg, ack, apiErr.Code)
		return
	}

	writeJSON(w, c.lg, ack, http.StatusOK)
}

type plisioResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// PlisioCallback - callback_url для Plisio. Подпись считается по сырому телу
// с сохранением порядка ключей, поэтому тело читается байтами, без
// стандартного JSON-декодера.
func (c *Controller) PlisioCallback(w http.ResponseWriter, r *http.Request) {
	raw, err := readRawBody(r)
	if err != nil {
		c.lg.Errorf("failed to read plisio callback: %v", err)
		writeJSON(w, c.lg, plisioResponse{Status: "error", Message: model.ErrMalformedCallbackMessage}, http.StatusBadRequest)
		return
	}

	cb, err := plisio.Parse(r.Header.Get("Content-Type"), raw)
	if err != nil {
		c.lg.Errorf("failed to parse plisio callback: %v", err)
		writeJSON(w, c.lg, plisioResponse{Status: "error", Message: model.ErrMalformedCallbackMessage}, http.StatusBadRequest)
		return
	}

	if apiErr := c.service.ConfirmPlisio(r.Context(), cb); apiErr != nil {
		writeJSON(w, c.lg, plisioResponse{Status: "error", Message: apiErr.Message}, apiErr.Code)
		return
	}

	writeJSON(w, c.lg, plisioResponse{Status: "ok"}, http.StatusOK)
}

type createInvoiceDTO struct {
	Order string `json:"order"`
}

// CreateInvoice отдает витрине подписанные параметры платежной формы.
// Закрыт межсервисным bearer-токеном.
func (c *Controller) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	body, err := readBody[createInvoiceDTO](r)
	if err != nil {
		c.lg.Errorf("failed to parse request body: %v", err)
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	invoice, apiErr := c.service.BuildInvoice(r.Context(), body.Order)
	if apiErr != nil {
		http.Error(w, apiErr.Message, apiErr.Code)
		return
	}

	writeJSON(w, c.lg, invoice, http.StatusOK)
}

func (c *Controller) Ping(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Ping(); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
