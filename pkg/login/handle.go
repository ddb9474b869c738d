package login

import (
	"net/http"
	"time"

	"github.com/tendant/simple-user-admin/auth"
	"golang.org/x/exp/slog"
)

const (
	ACCESS_TOKEN_NAME = "accessToken"
)

type Handle struct {
	loginService *LoginService
	jwtService   *auth.Jwt
}

func NewHandle(loginService *LoginService, jwtService *auth.Jwt) Handle {
	return Handle{
		loginService: loginService,
		jwtService:   jwtService,
	}
}

func (h Handle) setTokenCookie(w http.ResponseWriter, tokenName, tokenValue string, expire time.Time) {
	tokenCookie := &http.Cookie{
		Name:     tokenName,
		Path:     "/",
		Value:    tokenValue,
		Expires:  expire,
		HttpOnly: h.jwtService.CookieHttpOnly,
		Secure:   h.jwtService.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	http.SetCookie(w, tokenCookie)
}

// PostLogin handles the login form. A successful login sets the session
// cookie and redirects by role; a failed login redirects back to the form
// with an error flag.
// (POST /login)
func (h Handle) PostLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/login.html?error", http.StatusFound)
		return
	}
	email := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := h.loginService.Login(r.Context(), email, password)
	if err != nil {
		http.Redirect(w, r, "/login.html?error", http.StatusFound)
		return
	}

	claims := AuthUser{
		UserId: user.ID.String(),
		Name:   user.Name,
		Email:  user.Email,
		Roles:  user.Roles,
	}
	accessToken, err := h.jwtService.CreateAccessToken(claims)
	if err != nil {
		slog.Error("Failed to create access token", "err", err)
		http.Redirect(w, r, "/login.html?error", http.StatusFound)
		return
	}
	h.setTokenCookie(w, ACCESS_TOKEN_NAME, accessToken.Token, accessToken.Expiry)

	slog.Info("Login succeeded", "user", claims)
	if claims.HasRole("ADMIN") {
		http.Redirect(w, r, "/admin.html", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/user.html", http.StatusFound)
}

// PostLogout expires the session cookie and returns to the login form
// (POST /logout)
func (h Handle) PostLogout(w http.ResponseWriter, r *http.Request) {
	logoutToken, err := h.jwtService.CreateLogoutToken(AuthUser{})
	if err != nil {
		slog.Error("Failed to create logout token", "err", err)
		http.Error(w, "failed to log out", http.StatusInternalServerError)
		return
	}
	h.setTokenCookie(w, ACCESS_TOKEN_NAME, logoutToken.Token, logoutToken.Expiry)
	http.Redirect(w, r, "/login.html", http.StatusFound)
}
