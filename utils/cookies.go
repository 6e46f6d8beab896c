package utils

import (
	"net/http"
	"os"
	"strings"
	"time"
)

// SetCookie sets a cookie with consistent defaults (HttpOnly, SameSite=Lax,
// Secure per IsSecureRequest). If expires.IsZero() the cookie is a session
// cookie (no Expires/MaxAge header).
func SetCookie(w http.ResponseWriter, r *http.Request, name, value string, expires time.Time) {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	}
	if !expires.IsZero() {
		c.Expires = expires
		c.MaxAge = int(time.Until(expires).Round(time.Second).Seconds())
	}
	http.SetCookie(w, c)
}

// ClearCookie removes a cookie using the same security flags.
func ClearCookie(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// CookieValue returns the named cookie's value, or "" when absent.
func CookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

func IsSecureRequest(r *http.Request) bool {
	if dev := os.Getenv("TIMECRAX_DEV_MODE"); dev != "" {
		if strings.EqualFold(dev, "1") || strings.EqualFold(dev, "true") || strings.EqualFold(dev, "yes") {
			return false
		}
	}
	return true
}
