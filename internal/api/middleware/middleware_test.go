package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rohits-web03/lumina/internal/models"
	"github.com/rohits-web03/lumina/internal/services"
	"github.com/stretchr/testify/assert"
)

type resolverFunc func(ctx context.Context, token string) (*models.User, error)

func (f resolverFunc) Resolve(ctx context.Context, token string) (*models.User, error) {
	return f(ctx, token)
}

func TestAuthMiddleware(t *testing.T) {
	resolver := resolverFunc(func(_ context.Context, token string) (*models.User, error) {
		switch token {
		case "good":
			return &models.User{ID: 7, Username: "alice"}, nil
		case "broken":
			return nil, errors.New("db down")
		default:
			return nil, services.ErrUnauthorized
		}
	})

	var seen *models.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = CurrentUser(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	handler := AuthMiddleware(resolver)(next)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"valid", "Bearer good", http.StatusNoContent},
		{"scheme is case insensitive", "bearer good", http.StatusNoContent},
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"rejected token", "Bearer bad", http.StatusUnauthorized},
		{"store failure is not a logout", "Bearer broken", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/todos", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tc.want, rec.Code)
			switch tc.want {
			case http.StatusUnauthorized:
				assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
				assert.Nil(t, seen)
			case http.StatusInternalServerError:
				assert.Empty(t, rec.Header().Get("WWW-Authenticate"))
				assert.Contains(t, rec.Body.String(), "Internal server error")
				assert.NotContains(t, rec.Body.String(), "db down")
				assert.Nil(t, seen)
			default:
				assert.Equal(t, uint(7), seen.ID)
			}
		})
	}
}

func TestAuthMiddlewarePassesPreflight(t *testing.T) {
	handler := AuthMiddleware(resolverFunc(func(context.Context, string) (*models.User, error) {
		return nil, services.ErrUnauthorized
	}))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/todos", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoggerRequestID(t *testing.T) {
	var seen string
	handler := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
	assert.Equal(t, rec.Header().Get(RequestIDHeader), seen)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", seen)
	assert.Empty(t, RequestID(context.Background()))
}
