// internal/session/cookie.go
package session

import (
	"net/http"
	"time"
)

// IDFromRequest returns the session id carried by r, if it is well formed.
func IDFromRequest(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || !ValidID(cookie.Value) {
		return "", false
	}
	return cookie.Value, true
}

// Ensure returns the request's session id, issuing a new one when the
// request has none. The cookie is always re-sent with a fresh MaxAge.
func Ensure(w http.ResponseWriter, r *http.Request, ttl time.Duration, secure bool) string {
	id, ok := IDFromRequest(r)
	if !ok {
		id = NewID()
	}
	Refresh(w, id, ttl, secure)
	return id
}

// Refresh re-sends the session cookie so it lives as long as the idle TTL
// the store applies on the server side.
func Refresh(w http.ResponseWriter, id string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
