package auth

import (
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const DefaultSessionExpiry = 1 * time.Hour

type Jwt struct {
	Secret         string
	SessionExpiry  time.Duration
	CookieHttpOnly bool
	CookieSecure   bool
}

type Option func(*Jwt)

func WithCookieHttpOnly(httpOnly bool) Option {
	return func(jwt *Jwt) {
		jwt.CookieHttpOnly = httpOnly
	}
}

func WithCookieSecure(secure bool) Option {
	return func(jwt *Jwt) {
		jwt.CookieSecure = secure
	}
}

func WithSessionExpiry(expiry time.Duration) Option {
	return func(jwt *Jwt) {
		jwt.SessionExpiry = expiry
	}
}

func NewJwtServiceOptions(secret string, opts ...Option) *Jwt {
	jwtSvc := &Jwt{Secret: secret, SessionExpiry: DefaultSessionExpiry}

	for _, opt := range opts {
		opt(jwtSvc)
	}

	return jwtSvc
}

type Claims struct {
	CustomClaims interface{} `json:"custom_claims,inline"`
	jwt.RegisteredClaims
}

type SessionToken struct {
	Token  string
	Expiry time.Time
}

func (j Jwt) CreateTokenStr(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signingKey := []byte(j.Secret)
	ss, err := token.SignedString(signingKey)
	if err != nil {
		slog.Error("Failed sign JWT Claim string!", "err", err)
		return "", err
	}
	return ss, nil
}

// CreateAccessToken mints the session token carried in the access token cookie.
func (j Jwt) CreateAccessToken(claimData interface{}) (SessionToken, error) {
	claims := Claims{
		claimData,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(j.SessionExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
			NotBefore: jwt.NewNumericDate(time.Now().UTC().Add(-time.Minute * 5)),
			Issuer:    "simple-user-admin",
			Subject:   "simple-user-admin",
			ID:        uuid.New().String(),
			Audience:  []string{"public"},
		},
	}
	accessToken, err := j.CreateTokenStr(claims)
	return SessionToken{Token: accessToken, Expiry: claims.ExpiresAt.Time}, err
}

// CreateLogoutToken mints an already-expired token so an existing cookie
// stops verifying immediately.
func (j Jwt) CreateLogoutToken(claimData interface{}) (SessionToken, error) {
	claims := Claims{
		claimData,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
			NotBefore: jwt.NewNumericDate(time.Now().UTC().Add(-time.Minute * 5)),
			Issuer:    "simple-user-admin",
			Subject:   "simple-user-admin",
			ID:        uuid.New().String(),
			Audience:  []string{"public"},
		},
	}
	logoutToken, err := j.CreateTokenStr(claims)
	return SessionToken{Token: logoutToken, Expiry: claims.ExpiresAt.Time}, err
}

// ParseTokenStr verifies the signature and returns the parsed token.
func (j Jwt) ParseTokenStr(tokenStr string) (*jwt.Token, error) {
	signingKey := []byte(j.Secret)
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return signingKey, nil
	})
	if err != nil {
		slog.Error("Failed parse JWT string!", "err", err)
		return token, err
	}
	if !token.Valid {
		return token, errors.New("invalid token")
	}
	return token, nil
}

// ValidateToken parses the token and returns its claim map.
func (j Jwt) ValidateToken(tokenStr string) (jwt.MapClaims, error) {
	token, err := j.ParseTokenStr(tokenStr)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("failed_parse_token_claims")
	}
	return claims, nil
}
