package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const sessionCookieName = "docdle_session"

var (
	errNoToken  = errors.New("no session token")
	errBadToken = errors.New("invalid session token")
)

// sessionClaims names the session a token grants access to.
type sessionClaims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

// signToken creates an HS256 JWT for session id.
func (s *Server) signToken(sid string) (string, time.Time, error) {
	now := s.opts.Now()
	exp := now.Add(s.opts.TokenTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		SID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	ss, err := t.SignedString(s.opts.Secret)
	return ss, exp, err
}

// sessionID extracts and verifies the session token on r.
func (s *Server) sessionID(r *http.Request) (string, error) {
	tok := tokenFrom(r)
	if tok == "" {
		return "", errNoToken
	}
	var claims sessionClaims
	t, err := jwt.ParseWithClaims(tok, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.opts.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.opts.Now))
	if err != nil || !t.Valid || claims.SID == "" {
		return "", errBadToken
	}
	return claims.SID, nil
}

// tokenFrom reads the token from the Authorization header, the session
// cookie, or (for browser websockets) the "token" query parameter.
func tokenFrom(r *http.Request) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(sessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	return r.URL.Query().Get("token")
}

// setSessionCookie writes the token cookie.
func setSessionCookie(w http.ResponseWriter, token string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
}
