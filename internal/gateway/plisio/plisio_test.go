package plisio

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"mime/multipart"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "plisio-secret-key"

// sign считает эталонную подпись поверх сырой JSON-строки без verify_hash.
func sign(payload string) string {
	mac := hmac.New(sha1.New, []byte(testSecret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestParse_JSON_Verify(t *testing.T) {
	payload := `{"txn_id":"abc123","order_number":"13VP-100500","status":"completed","amount":"0.0015","currency":"BTC"}`
	hash := sign(payload)

	body := fmt.Sprintf(`{"txn_id":"abc123","order_number":"13VP-100500","status":"completed","amount":"0.0015","currency":"BTC","verify_hash":%q}`, hash)

	cb, err := Parse("application/json", []byte(body))
	require.NoError(t, err)

	assert.NoError(t, cb.Verify(testSecret))
	assert.Equal(t, "abc123", cb.TxnID())
	assert.Equal(t, "13VP-100500", cb.OrderNumber())
	assert.True(t, cb.Completed())
	assert.Equal(t, "0.0015", cb.Amount())
	assert.Equal(t, "BTC", cb.Currency())
}

func TestParse_JSON_HashInMiddle(t *testing.T) {
	// verify_hash не обязан стоять последним: удаляется из любой позиции.
	payload := `{"txn_id":"abc123","status":"completed"}`
	hash := sign(payload)

	body := fmt.Sprintf(`{"txn_id":"abc123","verify_hash":%q,"status":"completed"}`, hash)

	cb, err := Parse("application/json", []byte(body))
	require.NoError(t, err)
	assert.NoError(t, cb.Verify(testSecret))
}

func TestVerify_TamperedAmount(t *testing.T) {
	payload := `{"txn_id":"abc123","status":"completed","amount":"0.0015"}`
	hash := sign(payload)

	// Сумма изменена после подписания.
	body := fmt.Sprintf(`{"txn_id":"abc123","status":"completed","amount":"1500.00","verify_hash":%q}`, hash)

	cb, err := Parse("application/json", []byte(body))
	require.NoError(t, err)
	assert.Error(t, cb.Verify(testSecret))
}

func TestVerify_ReorderedKeys(t *testing.T) {
	// Подпись зависит от порядка ключей: перестановка ее ломает.
	hash := sign(`{"txn_id":"abc123","status":"completed"}`)

	body := fmt.Sprintf(`{"status":"completed","txn_id":"abc123","verify_hash":%q}`, hash)

	cb, err := Parse("", []byte(body))
	require.NoError(t, err)
	assert.Error(t, cb.Verify(testSecret))
}

func TestVerify_MissingHash(t *testing.T) {
	cb, err := Parse("application/json", []byte(`{"txn_id":"abc123"}`))
	require.NoError(t, err)
	assert.ErrorIs(t, cb.Verify(testSecret), ErrMissingHash)
}

func TestParse_JSON_NonNumericTypesPreserved(t *testing.T) {
	// Числа и bool должны попадать в подписываемую строку байт в байт.
	payload := `{"txn_id":"abc123","confirmations":6,"test":false}`
	hash := sign(payload)

	body := fmt.Sprintf(`{"txn_id":"abc123","confirmations":6,"test":false,"verify_hash":%q}`, hash)

	cb, err := Parse("application/json", []byte(body))
	require.NoError(t, err)
	assert.NoError(t, cb.Verify(testSecret))
	assert.Equal(t, "6", cb.Get("confirmations"))
}

func TestParse_Form(t *testing.T) {
	payload := `{"order_number":"13VP-100500","status":"completed","txn_id":"abc123"}`
	hash := sign(payload)

	form := url.Values{}
	form.Set("txn_id", "abc123")
	form.Set("order_number", "13VP-100500")
	form.Set("status", "completed")
	form.Set("verify_hash", hash)

	// url.Values.Encode сортирует ключи; здесь порядок совпадает с payload.
	cb, err := Parse("application/x-www-form-urlencoded", []byte(form.Encode()))
	require.NoError(t, err)

	assert.NoError(t, cb.Verify(testSecret))
	assert.True(t, cb.Completed())
}

func TestParse_Form_OrderPreserved(t *testing.T) {
	// Порядок полей формы не совпадает с алфавитным - подпись считается
	// именно в порядке получения.
	payload := `{"status":"completed","txn_id":"abc123"}`
	hash := sign(payload)

	body := "status=completed&txn_id=abc123&verify_hash=" + url.QueryEscape(hash)

	cb, err := Parse("application/x-www-form-urlencoded", []byte(body))
	require.NoError(t, err)
	assert.NoError(t, cb.Verify(testSecret))
}

func TestParse_Multipart_SkipsFileParts(t *testing.T) {
	payload := `{"txn_id":"abc123","status":"completed"}`
	hash := sign(payload)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("txn_id", "abc123"))
	require.NoError(t, mw.WriteField("status", "completed"))

	fw, err := mw.CreateFormFile("attachment", "invoice.pdf")
	require.NoError(t, err)
	_, err = fw.Write([]byte("%PDF-1.4 junk"))
	require.NoError(t, err)

	require.NoError(t, mw.WriteField("verify_hash", hash))
	require.NoError(t, mw.Close())

	cb, err := Parse(mw.FormDataContentType(), buf.Bytes())
	require.NoError(t, err)
	assert.NoError(t, cb.Verify(testSecret))
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{"json array", "application/json", `["not","an","object"]`},
		{"truncated json", "application/json", `{"txn_id":"abc`},
		{"empty body", "application/json", ``},
		{"multipart without boundary", "multipart/form-data", `whatever`},
		{"form with bad escape", "application/x-www-form-urlencoded", `txn_id=%zz`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.contentType, []byte(tt.body))
			assert.Error(t, err)
		})
	}
}

func TestGet_MissingField(t *testing.T) {
	cb, err := Parse("application/json", []byte(`{"txn_id":"abc123"}`))
	require.NoError(t, err)
	assert.Equal(t, "", cb.Get("no_such_field"))
}
