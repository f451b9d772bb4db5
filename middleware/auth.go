package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/mashfikur/Echo-Estates-Server/models"
	"github.com/mashfikur/Echo-Estates-Server/store"
	"github.com/mashfikur/Echo-Estates-Server/utils"
	"go.uber.org/zap"
)

type ContextKey string

// UIDKey carries the authenticated user's external id through the request
// context once VerifyToken has run.
const UIDKey = ContextKey("uid")

// UID returns the authenticated id attached by VerifyToken, if any.
func UID(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(UIDKey).(string)
	return uid, ok
}

func deny(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// VerifyToken is the authentication gate. A missing or garbled bearer
// header and a failed verification both end the request with 401.
func VerifyToken(tokens *utils.TokenService) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenHeader := r.Header.Get("Authorization")
			if tokenHeader == "" {
				zap.S().Infof("Missing Authorization header from request %s %s", r.Method, r.URL)
				deny(w, http.StatusUnauthorized, "Unauthorised Access")
				return
			}

			tokenParts := strings.Split(tokenHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				zap.S().Infof("Invalid Authorization header format from request %s %s", r.Method, r.URL)
				deny(w, http.StatusUnauthorized, "Unauthorised Access")
				return
			}

			claims, err := tokens.Verify(tokenParts[1])
			if err != nil {
				zap.S().Infof("Invalid or expired token: %v", err)
				deny(w, http.StatusUnauthorized, "Unauthorised Access")
				return
			}

			ctx := context.WithValue(r.Context(), UIDKey, claims.UID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Decision is the explicit outcome of a role check, so the gate can be
// exercised directly against a store without spinning up HTTP.
type Decision struct {
	Allowed bool
	Status  int
	Message string
}

func allow() Decision {
	return Decision{Allowed: true, Status: http.StatusOK}
}

// Authorize re-reads the identity store on every call; role is not a token
// claim, so a role change takes effect on the next request. A missing
// identity record fails closed.
func Authorize(ctx context.Context, users store.UserStore, uid string, required models.Role) Decision {
	user, err := users.FindByUserID(ctx, uid)
	if err == store.ErrNotFound {
		return Decision{Status: http.StatusForbidden, Message: "Forbidden Access"}
	}
	if err != nil {
		return Decision{Status: http.StatusInternalServerError, Message: "Failed to check user role"}
	}
	if user.Role != required {
		return Decision{Status: http.StatusForbidden, Message: "Forbidden Access"}
	}
	return allow()
}

// RequireRole is the authorization gate. It must run after VerifyToken.
func RequireRole(users store.UserStore, required models.Role) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid, ok := UID(r.Context())
			if !ok {
				deny(w, http.StatusUnauthorized, "Unauthorised Access")
				return
			}

			decision := Authorize(r.Context(), users, uid, required)
			if !decision.Allowed {
				zap.S().Infof("Role check failed for uid %s on %s %s", uid, r.Method, r.URL)
				deny(w, decision.Status, decision.Message)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
