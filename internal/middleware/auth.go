package middleware

import (
	"context"
	"net/http"

	"talenttrack-backend/internal/models"
	"talenttrack-backend/internal/token"
)

type contextKey string

const identityKey contextKey = "identity"

// TokenHeader is the header the frontend sends the bearer token in.
const TokenHeader = "x-auth-token"

// Identity is the verified caller attached to the request context.
type Identity struct {
	UserID string
	Role   models.Role
}

// Auth requires a valid x-auth-token header and attaches the decoded
// identity to the request context. A missing token is 401; a bad one is 400.
// The 400 is deliberate: the deployed frontend branches on it to force a
// re-login, so it stays.
func Auth(tokens *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := r.Header.Get(TokenHeader)
			if tokenString == "" {
				respondMsg(w, "No token, authorization denied", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				respondMsg(w, "Token is not valid", http.StatusBadRequest)
				return
			}

			identity := Identity{UserID: claims.UserID, Role: claims.Role}
			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireScout rejects callers whose verified role is not scout. It must run
// after Auth.
func RequireScout(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := GetIdentity(r.Context())
		if identity.Role != models.RoleScout {
			respondMsg(w, "Only scouts can post trials", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetIdentity extracts the verified caller from the context. The zero value
// means the request never went through Auth.
func GetIdentity(ctx context.Context) Identity {
	identity, ok := ctx.Value(identityKey).(Identity)
	if !ok {
		return Identity{}
	}
	return identity
}

// respondMsg sends an error response in the {"msg": ...} shape the frontend
// expects from the auth layer.
func respondMsg(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write([]byte(`{"msg":"` + message + `"}`))
}
