// internal/api/middleware/audit.go
package middleware

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"
)

// anonymousClient is logged as the client identity; the service never
// authenticates a user principal, only API keys.
const anonymousClient = "Anonymous"

// bufferedWriter is an in-memory tee around the real http.ResponseWriter.
// The inner pipeline writes into the buffer; flush copies it out unchanged
// after the audit record has been captured.
type bufferedWriter struct {
	http.ResponseWriter
	buf         bytes.Buffer
	status      int
	wroteHeader bool
}

func (bw *bufferedWriter) WriteHeader(status int) {
	if bw.wroteHeader {
		return
	}
	bw.status = status
	bw.wroteHeader = true
}

func (bw *bufferedWriter) Write(p []byte) (int, error) {
	if !bw.wroteHeader {
		bw.WriteHeader(http.StatusOK)
	}
	return bw.buf.Write(p)
}

// flush replays the buffered response to the real writer.
func (bw *bufferedWriter) flush() {
	if bw.wroteHeader {
		bw.ResponseWriter.WriteHeader(bw.status)
	}
	if bw.buf.Len() > 0 {
		_, _ = bw.ResponseWriter.Write(bw.buf.Bytes())
	}
}

// Audit returns middleware that emits exactly one structured log record per
// request, whether the inner pipeline completes normally or panics. It
// buffers the request body (for body-carrying methods) and the full response
// so both can be observed without disturbing downstream consumers; the
// response is copied out byte-identical. A fault from the inner pipeline is
// logged at error level and re-raised unmodified.
func Audit(logger *slog.Logger) func(http.Handler) http.Handler {
	hostName, err := os.Hostname()
	if err != nil {
		hostName = "unknown"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestTime := start.UTC()

			var requestBody string
			if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
				if body, readErr := io.ReadAll(r.Body); readErr == nil {
					requestBody = string(body)
					r.Body = io.NopCloser(bytes.NewReader(body))
				}
			}

			bw := &bufferedWriter{ResponseWriter: w, status: http.StatusOK}

			defer func() {
				rec := recover()

				status := bw.status
				if rec != nil {
					logger.Error("An unhandled fault has occurred while executing the request",
						"error", fmt.Sprint(rec),
						"method", r.Method,
						"path", r.URL.Path,
					)
					if !bw.wroteHeader {
						status = http.StatusInternalServerError
					}
				}

				attrs := []any{
					"requestTime", requestTime,
					"clientIp", r.RemoteAddr,
					"clientName", anonymousClient,
					"hostName", hostName,
					"method", r.Method,
					"path", r.URL.Path,
					"queryString", r.URL.RawQuery,
					"requestBody", requestBody,
					"responseStatusCode", status,
					"durationMs", time.Since(start).Milliseconds(),
				}
				if status >= http.StatusInternalServerError {
					logger.Error("Request processed with error", attrs...)
				} else {
					logger.Info("Request processed successfully", attrs...)
				}

				bw.flush()

				if rec != nil {
					panic(rec)
				}
			}()

			next.ServeHTTP(bw, r)
		})
	}
}
