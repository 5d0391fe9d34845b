package middleware

import (
	"context"
	"errors"
	"net/http"

	"recipebook/auth"
	"recipebook/utils"

	"github.com/julienschmidt/httprouter"
)

type contextKey string

const claimsKey contextKey = "claims"

// Auth wraps handlers that need a verified caller identity. The verifier is
// injected so main decides whether tokens are checked against a shared
// secret or the provider's certificates.
type Auth struct {
	verifier auth.Verifier
}

func NewAuth(v auth.Verifier) *Auth {
	return &Auth{verifier: v}
}

// Authenticate rejects the request unless the Authorization header carries
// a token the verifier accepts, then stores the claims in the context.
func (a *Auth) Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		token, err := auth.BearerToken(r.Header.Get("Authorization"))
		if err != nil {
			if errors.Is(err, auth.ErrMissingToken) {
				utils.RespondWithError(w, http.StatusUnauthorized, "No token provided")
			} else {
				utils.RespondWithError(w, http.StatusUnauthorized, "Invalid token format")
			}
			return
		}

		claims, err := a.verifier.Verify(token)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next(w, r.WithContext(ctx), ps)
	}
}

// OptionalAuth attaches claims when a valid token is present and proceeds
// regardless.
func (a *Auth) OptionalAuth(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if token, err := auth.BearerToken(r.Header.Get("Authorization")); err == nil {
			if claims, err := a.verifier.Verify(token); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), claimsKey, claims))
			}
		}
		next(w, r, ps)
	}
}

// ClaimsFromRequest returns the verified claims placed by Authenticate, or
// nil when the request was not authenticated.
func ClaimsFromRequest(r *http.Request) *auth.Claims {
	claims, _ := r.Context().Value(claimsKey).(*auth.Claims)
	return claims
}
