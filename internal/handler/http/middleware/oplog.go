package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/oplog"
	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// maxCapturedBody bounds how much of a request body is read for the log.
const maxCapturedBody = 64 << 10

const redacted = "***"

// OperationLog records authenticated mutating requests through service.
// It must run after AuthRequired.
func OperationLog(service oplog.OperationLogService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isMutating(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			params := captureParams(r)

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			operation := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					operation = pattern
				}
			}

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			requestID := chimiddleware.GetReqID(r.Context())
			if requestID == "" {
				requestID = uuid.NewString()
			}

			entry := oplog.OperationLog{
				RequestID:   strPtr(requestID),
				Operation:   r.Method + " " + operation,
				Method:      r.Method,
				Params:      params,
				IP:          strPtr(clientIP(r)),
				StatusCode:  status,
				ExecuteTime: time.Since(start).Milliseconds(),
			}
			if claims, err := jwt.ClaimsFromContext(r.Context()); err == nil {
				entry.Username = strPtr(claims.Username)
			}

			service.Record(entry)
		})
	}
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// captureParams returns query and body with password-like fields masked,
// restoring the body for the next handler.
func captureParams(r *http.Request) *string {
	var parts []string
	if q := r.URL.RawQuery; q != "" {
		parts = append(parts, q)
	}

	if r.Body != nil && r.Body != http.NoBody {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxCapturedBody))
		if err == nil {
			r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(body), r.Body))
			if s := redactBody(body); s != "" {
				parts = append(parts, s)
			}
		}
	}

	if len(parts) == 0 {
		return nil
	}
	s := oplog.TruncateParams(strings.Join(parts, " "))
	return &s
}

func redactBody(body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return strings.TrimSpace(string(body))
	}
	for k := range payload {
		lower := strings.ToLower(k)
		if strings.Contains(lower, "password") || strings.Contains(lower, "token") {
			payload[k] = redacted
		}
	}
	out, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	return string(out)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func strPtr(s string) *string {
	return &s
}
