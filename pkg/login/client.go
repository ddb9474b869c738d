package login

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// AuthUser is the session identity carried on the request context
type AuthUser struct {
	UserId string   `json:"user_id,omitempty"`
	Name   string   `json:"name,omitempty"`
	Email  string   `json:"email,omitempty"`
	Roles  []string `json:"roles,omitempty"`
	// Convenient to have the id as a uuid.UUID as well
	UserUuid uuid.UUID `json:"-"`
}

func (u AuthUser) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("user", u.UserId),
		slog.Any("roles", u.Roles),
	)
}

// HasRole reports whether the session carries the given role
func (u AuthUser) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// contextKey is a value for use with context.WithValue. It's used as
// a pointer so it fits in an interface{} without allocation.
type contextKey struct {
	name string
}

func (k *contextKey) String() string {
	return "login context value " + k.name
}

var (
	AuthUserKey = &contextKey{"AuthUser"}
)

// Verifier checks the JWT from the Authorization header or the session
// cookie without rejecting the request. Anonymous requests pass through;
// route rules decide whether authentication is required.
func Verifier(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return jwtauth.Verify(ja, jwtauth.TokenFromHeader, TokenFromCookie)(next)
	}
}

func TokenFromCookie(r *http.Request) string {
	cookie, err := r.Cookie("accessToken")
	if err != nil {
		return ""
	}
	return cookie.Value
}

// SessionMiddleware attaches the AuthUser from a verified token to the
// request context. Requests without a valid token continue anonymously.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			next.ServeHTTP(w, r)
			return
		}

		authUser := new(AuthUser)
		customClaims, ok := claims["custom_claims"].(map[string]interface{})
		if ok {
			if err := LoadFromMap(customClaims, authUser); err != nil {
				slog.Warn("Failed to load custom claims", "err", err)
				next.ServeHTTP(w, r)
				return
			}
		}
		if err := LoadFromMap(claims, authUser); err != nil {
			slog.Warn("Failed to load claims", "err", err)
			next.ServeHTTP(w, r)
			return
		}
		if authUser.UserId == "" {
			next.ServeHTTP(w, r)
			return
		}
		authUser.UserUuid, err = uuid.Parse(authUser.UserId)
		if err != nil {
			slog.Warn("Failed to parse user id", "userId", authUser.UserId, "err", err)
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), AuthUserKey, authUser)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func LoadFromMap[T any](m map[string]interface{}, c *T) error {
	data, err := json.Marshal(m)
	if err == nil {
		err = json.Unmarshal(data, c)
	}
	return err
}
