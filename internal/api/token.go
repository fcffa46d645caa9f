package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Expired reports whether the session token carries an expiry claim that has
// passed. The client never verifies signatures (that is the server's job);
// it only decides when to send the researcher back to the login screen.
// Opaque, non-JWT tokens are assumed live and left to the server to reject.
func (c Credentials) Expired(now time.Time) bool {
	if !c.Set() {
		return true
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(c.Token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
