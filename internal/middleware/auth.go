package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"github.com/mmynk/forkful/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserIDKey is the context key for storing the authenticated user ID.
	UserIDKey contextKey = "user_id"
	// UsernameKey is the context key for storing the authenticated username.
	UsernameKey contextKey = "username"
	// ClaimsKey is the context key for the validated token claims.
	ClaimsKey contextKey = "claims"
)

// ErrRevokedToken is returned for a valid token that has been logged out.
var ErrRevokedToken = errors.New("token has been revoked")

// GetUserID extracts the user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// GetUsername extracts the username from the context.
// Returns empty string if not found.
func GetUsername(ctx context.Context) string {
	username, _ := ctx.Value(UsernameKey).(string)
	return username
}

// GetClaims returns the claims of the token that authenticated the request.
func GetClaims(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(ClaimsKey).(*auth.Claims)
	return claims
}

// WithClaims stores the caller identity on the context.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, UsernameKey, claims.Username)
	return context.WithValue(ctx, ClaimsKey, claims)
}

// Verifier validates bearer tokens and consults the revocation store.
type Verifier struct {
	jwtManager  *auth.JWTManager
	revocations auth.RevocationStore
}

// NewVerifier creates a Verifier. A nil revocations store accepts every
// signature-valid token.
func NewVerifier(jwtManager *auth.JWTManager, revocations auth.RevocationStore) *Verifier {
	if revocations == nil {
		revocations = auth.NoRevocation{}
	}
	return &Verifier{jwtManager: jwtManager, revocations: revocations}
}

// Verify parses an Authorization header value.
func (v *Verifier) Verify(ctx context.Context, authHeader string) (*auth.Claims, error) {
	if authHeader == "" {
		return nil, auth.ErrMissingToken
	}

	// Parse Bearer token
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, auth.ErrInvalidToken
	}

	claims, err := v.jwtManager.Validate(parts[1])
	if err != nil {
		return nil, err
	}

	if claims.ID != "" {
		revoked, err := v.revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, ErrRevokedToken
		}
	}

	return claims, nil
}

// isAuthError reports whether err is the caller's fault rather than a
// revocation store failure.
func isAuthError(err error) bool {
	return errors.Is(err, auth.ErrMissingToken) ||
		errors.Is(err, auth.ErrInvalidToken) ||
		errors.Is(err, ErrRevokedToken)
}

// RequireAuth returns a Connect interceptor that validates JWT tokens and
// requires authentication. The user ID, username and claims are added to the
// request context.
func RequireAuth(verifier *Verifier) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			claims, err := verifier.Verify(ctx, req.Header().Get("Authorization"))
			if err != nil {
				if isAuthError(err) {
					return nil, connect.NewError(connect.CodeUnauthenticated, err)
				}
				slog.Error("Token revocation lookup failed", "procedure", req.Spec().Procedure, "error", err)
				return nil, connect.NewError(connect.CodeInternal, errors.New("internal error"))
			}

			// Call the next handler with enriched context
			return next(WithClaims(ctx, claims), req)
		}
	}
}

// RequireAuthHTTP is the REST counterpart of RequireAuth. Unauthenticated
// requests get 401 {code, message}.
func RequireAuthHTTP(verifier *Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := verifier.Verify(r.Context(), strings.TrimSpace(r.Header.Get("Authorization")))
			if err != nil {
				if isAuthError(err) {
					writeStatus(w, http.StatusUnauthorized, "Unauthorized")
					return
				}
				slog.Error("Token revocation lookup failed", "path", r.URL.Path, "error", err)
				writeStatus(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}
