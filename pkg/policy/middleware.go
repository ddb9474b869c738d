package policy

import (
	"net/http"
	"strings"

	"github.com/tendant/simple-user-admin/pkg/errors"
	"github.com/tendant/simple-user-admin/pkg/login"
	"golang.org/x/exp/slog"
)

// Middleware enforces the rule table. Unauthenticated requests to a
// restricted API route get a 401 body; restricted pages redirect to the
// login form. A session with the wrong role gets 403 either way.
func Middleware(rules []Rule) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rule, matched := Match(rules, r.URL.Path)
			if !matched {
				next.ServeHTTP(w, r)
				return
			}

			authUser, ok := r.Context().Value(login.AuthUserKey).(*login.AuthUser)
			if !ok {
				if isAPIRoute(r.URL.Path) {
					errors.RenderError(w, errors.Unauthorized("authentication required"))
					return
				}
				http.Redirect(w, r, "/login.html", http.StatusFound)
				return
			}

			if len(rule.AnyRole) > 0 && !hasAnyRole(authUser, rule.AnyRole) {
				slog.Warn("Access denied", "path", r.URL.Path, "user", authUser)
				errors.RenderError(w, errors.Forbidden("access denied"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isAPIRoute(path string) bool {
	return strings.HasPrefix(path, "/api/")
}

func hasAnyRole(authUser *login.AuthUser, roles []string) bool {
	for _, role := range roles {
		if authUser.HasRole(role) {
			return true
		}
	}
	return false
}
