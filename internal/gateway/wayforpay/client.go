package wayforpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/romchhh/13vplus-site-sub001/pgk/retryablehttp"
)

const defaultAPIURL = "https://api.wayforpay.com/api"

// RateLimitError - шлюз просит притормозить; RetryAfter берется из заголовка.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("wayforpay: rate limited, retry after %s", e.RetryAfter)
}

func getRetryAfter(resp *http.Response) time.Duration {
	if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
		if seconds, err := strconv.ParseInt(retryAfter, 10, 64); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return 60 * time.Second // дефолт
}

// Client ходит в API шлюза. Используется фоновым опросом зависших заказов:
// вебхук мог потеряться, CHECK_STATUS - единственный способ узнать исход.
type Client struct {
	apiURL          string
	merchantAccount string
	secret          string
	http            *retryablehttp.Client
}

func NewClient(merchantAccount, secret string) *Client {
	return &Client{
		apiURL:          defaultAPIURL,
		merchantAccount: merchantAccount,
		secret:          secret,
		http:            retryablehttp.New(retryablehttp.Config{}),
	}
}

// NewClientWithURL нужен в тестах и для стейдж-окружения шлюза.
func NewClientWithURL(apiURL, merchantAccount, secret string) *Client {
	c := NewClient(merchantAccount, secret)
	c.apiURL = apiURL
	return c
}

type statusRequest struct {
	TransactionType   string `json:"transactionType"`
	MerchantAccount   string `json:"merchantAccount"`
	OrderReference    string `json:"orderReference"`
	MerchantSignature string `json:"merchantSignature"`
	APIVersion        int    `json:"apiVersion"`
}

type StatusResponse struct {
	OrderReference    string `json:"orderReference"`
	TransactionStatus string `json:"transactionStatus"`
	Amount            Amount `json:"amount"`
	Currency          string `json:"currency"`
	ReasonCode        Field  `json:"reasonCode"`
}

func (r *StatusResponse) Approved() bool {
	return r.TransactionStatus == TransactionApproved
}

// CheckStatus запрашивает актуальный статус транзакции по номеру инвойса.
func (c *Client) CheckStatus(ctx context.Context, orderReference string) (*StatusResponse, error) {
	body, err := json.Marshal(statusRequest{
		TransactionType:   "CHECK_STATUS",
		MerchantAccount:   c.merchantAccount,
		OrderReference:    orderReference,
		MerchantSignature: SignStatusRequest(c.merchantAccount, orderReference, c.secret),
		APIVersion:        1,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := getRetryAfter(resp)
			resp.Body.Close()
			return nil, &RateLimitError{RetryAfter: retryAfter}
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wayforpay: check status failed: %s", resp.Status)
	}

	var status StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("wayforpay: decode status response: %w", err)
	}

	return &status, nil
}
