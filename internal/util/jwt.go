package util

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session cookie names. The secure-prefixed variant is what browsers
// receive over TLS; both are kept for compatibility with the session
// issuer's cookie namespaces.
const (
	SessionCookieName       = "next-auth.session-token"
	SecureSessionCookieName = "__Secure-next-auth.session-token"
)

var ErrInvalidToken = errors.New("invalid session token")

// SessionCookieNameFor picks the cookie namespace for the request
// transport. TLS termination upstream is a deployment concern; this
// only mirrors the issuer's naming, it is not a security boundary.
func SessionCookieNameFor(secure bool) string {
	if secure {
		return SecureSessionCookieName
	}
	return SessionCookieName
}

// GenerateSessionToken creates a session token carrying the signed-in
// user's email address.
func GenerateSessionToken(email, secret string) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSessionToken validates a session token and extracts the email
// claim. Any failure (bad signature, expired, missing claim) comes
// back as ErrInvalidToken.
func ParseSessionToken(tokenStr, secret string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", ErrInvalidToken
	}

	return email, nil
}

// ExtractSessionToken pulls the session token cookie off a request,
// choosing the cookie namespace by transport. Returns "" when absent.
func ExtractSessionToken(r *http.Request) string {
	c, err := r.Cookie(SessionCookieNameFor(r.TLS != nil))
	if err != nil {
		return ""
	}
	return c.Value
}
