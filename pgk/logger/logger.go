package logger

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

func New() (*zap.SugaredLogger, error) {
	lg, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}

	return lg.Sugar(), nil
}

type responseData struct {
	status int
	size   int
}

type loggingResponseWriter struct {
	http.ResponseWriter
	responseData *responseData
}

func (w *loggingResponseWriter) WriteHeader(status int) {
	w.responseData.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *loggingResponseWriter) Write(b []byte) (int, error) {
	size, err := w.ResponseWriter.Write(b)
	w.responseData.size += size
	return size, err
}

// LoggingMiddleware логирует каждый входящий запрос: uri, метод, статус,
// размер ответа и длительность обработки.
func LoggingMiddleware(lg *zap.SugaredLogger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			lw := &loggingResponseWriter{
				ResponseWriter: w,
				responseData:   &responseData{status: http.StatusOK},
			}
			next.ServeHTTP(lw, r)

			lg.Infof("request-> uri: %s, method: %s, status: %d, size: %d, duration: %s",
				r.RequestURI, r.Method, lw.responseData.status, lw.responseData.size, time.Since(start))
		})
	}
}
