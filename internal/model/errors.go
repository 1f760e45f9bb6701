package model

import "errors"

type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

const (
	ErrInternalServerMessage    = "internal server error"
	ErrInvalidSignatureMessage  = "invalid signature"
	ErrMalformedCallbackMessage = "malformed callback payload"
	ErrOrderNotFoundMessage     = "order not found"
)

var (
	ErrInvalidSignature = errors.New(ErrInvalidSignatureMessage)
	ErrOrderNotFound    = errors.New(ErrOrderNotFoundMessage)
)
