// Package plisio проверяет подлинность коллбеков крипто-шлюза Plisio.
//
// Схема подписи: из плоского набора полей удаляется verify_hash, остаток
// сериализуется в JSON строго в порядке получения ключей (без сортировки),
// от строки берется HMAC-SHA1. Порядок ключей - часть контракта, поэтому
// payload разбирается в упорядоченный список пар, а не в map.
package plisio

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/url"
	"strings"
)

const (
	StatusCompleted = "completed"

	hashField = "verify_hash"
)

var (
	ErrMalformedPayload = errors.New("plisio: malformed callback payload")
	ErrMissingHash      = errors.New("plisio: callback without " + hashField)
)

type pair struct {
	key string
	raw json.RawMessage
}

// Callback - нормализованный payload коллбека: плоский набор полей
// с сохраненным порядком ключей.
type Callback struct {
	pairs []pair
}

// Parse нормализует тело коллбека. Plisio шлет либо JSON, либо форму;
// multipart-поля с именем файла в подпись не входят и отбрасываются.
func Parse(contentType string, body []byte) (*Callback, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil && contentType != "" {
		return nil, fmt.Errorf("plisio: content type: %w", err)
	}

	switch {
	case mediaType == "application/x-www-form-urlencoded":
		return parseForm(body)
	case mediaType == "multipart/form-data":
		return parseMultipart(body, params["boundary"])
	default:
		// По умолчанию JSON: шлюз не всегда проставляет content-type.
		return parseJSON(body)
	}
}

func parseJSON(body []byte) (*Callback, error) {
	dec := json.NewDecoder(bytes.NewReader(body))

	tok, err := dec.Token()
	if err != nil {
		return nil, ErrMalformedPayload
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrMalformedPayload
	}

	var c Callback
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, ErrMalformedPayload
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, ErrMalformedPayload
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, ErrMalformedPayload
		}

		c.pairs = append(c.pairs, pair{key: key, raw: raw})
	}

	return &c, nil
}

func parseForm(body []byte) (*Callback, error) {
	var c Callback

	for _, kv := range strings.Split(string(body), "&") {
		if kv == "" {
			continue
		}

		rawKey, rawValue, _ := strings.Cut(kv, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, ErrMalformedPayload
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, ErrMalformedPayload
		}

		c.append(key, value)
	}

	return &c, nil
}

func parseMultipart(body []byte, boundary string) (*Callback, error) {
	if boundary == "" {
		return nil, ErrMalformedPayload
	}

	var c Callback
	reader := multipart.NewReader(bytes.NewReader(body), boundary)

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, ErrMalformedPayload
		}

		// Файловые поля подписью не покрываются.
		if part.FileName() != "" {
			continue
		}

		value, err := io.ReadAll(part)
		if err != nil {
			return nil, ErrMalformedPayload
		}

		c.append(part.FormName(), string(value))
	}

	return &c, nil
}

func (c *Callback) append(key, value string) {
	raw, _ := json.Marshal(value)
	c.pairs = append(c.pairs, pair{key: key, raw: raw})
}

// Get возвращает строковое значение поля, "" если поля нет.
func (c *Callback) Get(key string) string {
	for _, p := range c.pairs {
		if p.key != key {
			continue
		}
		if len(p.raw) > 0 && p.raw[0] == '"' {
			var s string
			if err := json.Unmarshal(p.raw, &s); err == nil {
				return s
			}
		}
		return string(p.raw)
	}
	return ""
}

func (c *Callback) TxnID() string       { return c.Get("txn_id") }
func (c *Callback) OrderNumber() string { return c.Get("order_number") }
func (c *Callback) Status() string      { return c.Get("status") }
func (c *Callback) Amount() string      { return c.Get("amount") }
func (c *Callback) Currency() string    { return c.Get("currency") }

func (c *Callback) Completed() bool {
	return c.Status() == StatusCompleted
}

// Sign сериализует поля без verify_hash в JSON в исходном порядке
// и считает HMAC-SHA1.
func (c *Callback) Sign(secret string) string {
	var buf bytes.Buffer
	buf.WriteByte('{')

	first := true
	for _, p := range c.pairs {
		if p.key == hashField {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false

		keyJSON, _ := json.Marshal(p.key)
		buf.Write(keyJSON)
		buf.WriteByte(':')
		buf.Write(p.raw)
	}
	buf.WriteByte('}')

	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write(buf.Bytes())
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify сравнивает пересчитанную подпись с verify_hash за константное время.
func (c *Callback) Verify(secret string) error {
	got := c.Get(hashField)
	if got == "" {
		return ErrMissingHash
	}

	if !hmac.Equal([]byte(c.Sign(secret)), []byte(got)) {
		return errors.New("plisio: " + hashField + " mismatch")
	}

	return nil
}
