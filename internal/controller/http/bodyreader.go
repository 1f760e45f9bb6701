package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// readBody читает и парсит JSON тело запроса в структуру T. Платежные шлюзы
// не всегда проставляют content-type, а WayForPay шлет JSON как text/plain,
// поэтому неизвестный content-type трактуется как JSON.
func readBody[T any](r *http.Request) (T, error) {
	var body T

	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		return body, fmt.Errorf("failed to read request body: %w", err)
	}
	defer r.Body.Close()

	contentType := r.Header.Get("Content-Type")
	if contentType != "" &&
		!strings.HasPrefix(contentType, "application/json") &&
		!strings.HasPrefix(contentType, "text/plain") {
		return body, fmt.Errorf("unexpected content type: %s", contentType)
	}

	if err := json.Unmarshal(bodyBytes, &body); err != nil {
		return body, fmt.Errorf("failed to parse request body: %w", err)
	}

	return body, nil
}

// readRawBody отдает тело как есть - для подписей, зависящих от порядка байт.
func readRawBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()

	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}

	return bodyBytes, nil
}
