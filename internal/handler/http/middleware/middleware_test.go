package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/oplog"
	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogService struct {
	oplog.OperationLogService
	mu      sync.Mutex
	entries []oplog.OperationLog
}

func (s *recordingLogService) Record(entry oplog.OperationLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
}

func newProtectedRouter(t *testing.T, svc jwt.Service, logs oplog.OperationLogService) *chi.Mux {
	t.Helper()
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(svc.JWTAuth()))
		r.Use(AuthRequired(svc.JWTAuth()))
		r.Use(OperationLog(logs))

		r.Post("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		})
		r.Get("/items", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		r.With(RequireAdmin).Delete("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
		r.With(RequirePermission(user.PermissionSalaryManage)).Put("/salary", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})
	return r
}

func bearer(t *testing.T, svc jwt.Service, role user.Role) string {
	t.Helper()
	token, _, err := svc.GenerateAccessToken(7, "tester", role)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAuthRequired(t *testing.T) {
	svc := jwt.NewJWTService("middleware-secret", "1h", "24h")
	router := newProtectedRouter(t, svc, &recordingLogService{})

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("refresh token is rejected", func(t *testing.T) {
		refresh, _, err := svc.GenerateRefreshToken(7)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/items", nil)
		req.Header.Set("Authorization", "Bearer "+refresh)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("access token passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/items", nil)
		req.Header.Set("Authorization", bearer(t, svc, user.RoleUser))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRoleGates(t *testing.T) {
	svc := jwt.NewJWTService("middleware-secret", "1h", "24h")
	router := newProtectedRouter(t, svc, &recordingLogService{})

	cases := []struct {
		name   string
		method string
		path   string
		role   user.Role
		want   int
	}{
		{"admin delete", http.MethodDelete, "/items/1", user.RoleAdmin, http.StatusNoContent},
		{"user delete", http.MethodDelete, "/items/1", user.RoleUser, http.StatusForbidden},
		{"admin salary", http.MethodPut, "/salary", user.RoleAdmin, http.StatusOK},
		{"user salary", http.MethodPut, "/salary", user.RoleUser, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			req.Header.Set("Authorization", bearer(t, svc, tc.role))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestOperationLog(t *testing.T) {
	svc := jwt.NewJWTService("middleware-secret", "1h", "24h")
	logs := &recordingLogService{}
	router := newProtectedRouter(t, svc, logs)

	req := httptest.NewRequest(http.MethodPost, "/items/5?dry_run=1", strings.NewReader(`{"name":"x","password":"secret"}`))
	req.Header.Set("Authorization", bearer(t, svc, user.RoleUser))
	req.Header.Set(chimiddleware.RequestIDHeader, "req-42")
	req.RemoteAddr = "10.0.0.9:5555"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	get := httptest.NewRequest(http.MethodGet, "/items", nil)
	get.Header.Set("Authorization", bearer(t, svc, user.RoleUser))
	router.ServeHTTP(httptest.NewRecorder(), get)

	require.Len(t, logs.entries, 1)
	entry := logs.entries[0]
	assert.Equal(t, "POST /items/{id}", entry.Operation)
	assert.Equal(t, "POST", entry.Method)
	assert.Equal(t, http.StatusCreated, entry.StatusCode)
	require.NotNil(t, entry.Username)
	assert.Equal(t, "tester", *entry.Username)
	require.NotNil(t, entry.IP)
	assert.Equal(t, "10.0.0.9", *entry.IP)
	require.NotNil(t, entry.RequestID)
	assert.Equal(t, "req-42", *entry.RequestID)
	require.NotNil(t, entry.Params)
	assert.Contains(t, *entry.Params, "dry_run=1")
	assert.Contains(t, *entry.Params, `"password":"***"`)
	assert.NotContains(t, *entry.Params, "secret")
}
