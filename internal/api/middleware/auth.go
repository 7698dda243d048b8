package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/rohits-web03/lumina/internal/models"
	"github.com/rohits-web03/lumina/internal/services"
	"github.com/rohits-web03/lumina/internal/utils"
)

type contextKey string

const UserKey contextKey = "user"

// Resolver maps a bearer token to the live user it was issued for.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*models.User, error)
}

// AuthMiddleware rejects requests without a valid bearer token and stores
// the resolved user in the request context.
func AuthMiddleware(resolver Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				Unauthorized(w)
				return
			}

			user, err := resolver.Resolve(r.Context(), token)
			switch {
			case errors.Is(err, services.ErrUnauthorized):
				Unauthorized(w)
				return
			case err != nil:
				log.Printf("rid=%s resolve token: %v", RequestID(r.Context()), err)
				utils.Failure(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUser returns the user stored by AuthMiddleware.
func CurrentUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserKey).(*models.User)
	return user, ok && user != nil
}

// Unauthorized writes the 401 challenge used for every credential failure.
func Unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	utils.Failure(w, http.StatusUnauthorized, "Could not validate credentials")
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
