package domain

import "errors"

var ErrAuthenticationFailed = errors.New("authentication failed")
var ErrInvalidLoginState = errors.New("invalid or expired login state")

// Identity carries the claims returned by the external identity provider
// after a successful code exchange.
type Identity struct {
	Sub        string
	Email      string
	GivenName  string
	FamilyName string
}
