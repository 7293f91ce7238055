package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Tokens holds the credential pair issued by the platform on login,
// registration, or a refresh exchange.
type Tokens struct {
	// AccessToken is the short-lived JWT presented as "Authorization: Bearer <token>".
	AccessToken string `json:"access_token" yaml:"access_token"`

	// RefreshToken is the longer-lived credential exchanged once for a new pair.
	// The platform rotates it on every refresh, so a stored value is single-use.
	RefreshToken string `json:"refresh_token" yaml:"refresh_token"`
}

// Empty reports whether no credentials are held.
func (t Tokens) Empty() bool {
	return t.AccessToken == "" && t.RefreshToken == ""
}

// ExpiresWithin reports whether the access token's "exp" claim falls within d
// from now. The claim is read without signature verification - the client has
// no signing key, and the server remains the authority either way. Tokens that
// cannot be parsed or carry no expiry report false and are sent as-is.
func (t Tokens) ExpiresWithin(d time.Duration) bool {
	if t.AccessToken == "" {
		return false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(t.AccessToken, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Time.Before(NowTimeFunc().Add(d))
}
