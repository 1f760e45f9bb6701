// Package wayforpay реализует протокол подписи WayForPay: проверку
// merchantSignature входящих коллбеков, подпись ответа-подтверждения и
// подпись параметров инвойса для платежной формы.
//
// Канонический вид - поля в фиксированном порядке, соединенные ";".
// Суммы всегда форматируются с двумя знаками после запятой: "300" и "300.00"
// обязаны давать одинаковую подпись.
package wayforpay

import (
	"bytes"
	"crypto/hmac"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	TransactionApproved = "Approved"
	TransactionDeclined = "Declined"
	TransactionExpired  = "Expired"

	AckAccept  = "accept"
	AckDecline = "decline"
)

// Amount принимает и число, и строку ("300", 300, "300.00").
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*a = 0
		return nil
	}

	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("wayforpay: invalid amount %q: %w", data, err)
	}

	*a = Amount(v)
	return nil
}

// Field принимает и строку, и число: WayForPay передает reasonCode числом.
type Field string

func (f *Field) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Field(s)
		return nil
	}

	*f = Field(data)
	return nil
}

type Callback struct {
	MerchantAccount   string `json:"merchantAccount"`
	OrderReference    string `json:"orderReference"`
	MerchantSignature string `json:"merchantSignature"`
	Amount            Amount `json:"amount"`
	Currency          string `json:"currency"`
	AuthCode          Field  `json:"authCode"`
	CardPan           string `json:"cardPan"`
	TransactionStatus string `json:"transactionStatus"`
	ReasonCode        Field  `json:"reasonCode"`
}

func (c *Callback) Approved() bool {
	return c.TransactionStatus == TransactionApproved
}

// Ack - ответ на коллбек. Без корректно подписанного ответа шлюз считает
// доставку неуспешной и повторяет ее, так что подпись ответа - часть
// контракта, а не формальность.
type Ack struct {
	OrderReference string `json:"orderReference"`
	Status         string `json:"status"`
	Time           int64  `json:"time"`
	Signature      string `json:"signature"`
}

// FormatAmount - обязательный канонический формат суммы.
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}

// SignCallback вычисляет merchantSignature коллбека.
func SignCallback(c *Callback, secret string) string {
	return signFields(secret,
		c.MerchantAccount,
		c.OrderReference,
		FormatAmount(float64(c.Amount)),
		c.Currency,
		string(c.AuthCode),
		c.CardPan,
		c.TransactionStatus,
		string(c.ReasonCode),
	)
}

// VerifyCallback пересчитывает подпись и сравнивает за константное время.
func VerifyCallback(c *Callback, secret string) bool {
	expected := SignCallback(c, secret)
	return hmac.Equal([]byte(expected), []byte(c.MerchantSignature))
}

// NewAck собирает подписанный ответ шлюзу.
func NewAck(orderReference, status string, now time.Time, secret string) Ack {
	ts := now.Unix()
	return Ack{
		OrderReference: orderReference,
		Status:         status,
		Time:           ts,
		Signature:      signFields(secret, orderReference, status, strconv.FormatInt(ts, 10)),
	}
}

// Invoice - подписываемые параметры платежной формы (purchase).
type Invoice struct {
	MerchantAccount    string    `json:"merchantAccount"`
	MerchantDomainName string    `json:"merchantDomainName"`
	OrderReference     string    `json:"orderReference"`
	OrderDate          int64     `json:"orderDate"`
	Amount             float64   `json:"amount"`
	Currency           string    `json:"currency"`
	ProductNames       []string  `json:"productName"`
	ProductCounts      []int     `json:"productCount"`
	ProductPrices      []float64 `json:"productPrice"`
	MerchantSignature  string    `json:"merchantSignature"`
}

// SignInvoice подписывает инвойс. Товарные массивы входят в строку
// поэлементно, в порядке следования.
func SignInvoice(inv *Invoice, secret string) string {
	fields := []string{
		inv.MerchantAccount,
		inv.MerchantDomainName,
		inv.OrderReference,
		strconv.FormatInt(inv.OrderDate, 10),
		FormatAmount(inv.Amount),
		inv.Currency,
	}
	fields = append(fields, inv.ProductNames...)
	for _, cnt := range inv.ProductCounts {
		fields = append(fields, strconv.Itoa(cnt))
	}
	for _, price := range inv.ProductPrices {
		fields = append(fields, FormatAmount(price))
	}

	return signFields(secret, fields...)
}

// SignStatusRequest - подпись запроса CHECK_STATUS.
func SignStatusRequest(merchantAccount, orderReference, secret string) string {
	return signFields(secret, merchantAccount, orderReference)
}

func signFields(secret string, fields ...string) string {
	mac := hmac.New(md5.New, []byte(secret))
	mac.Write([]byte(strings.Join(fields, ";")))
	return hex.EncodeToString(mac.Sum(nil))
}
