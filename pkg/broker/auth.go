package broker

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CheckTokenExpiry parses token as a JWT (without verifying its signature,
// since the broker — not this client — is the token's audience) and
// reports an error if its "exp" claim has already passed. Tokens that are
// not JWTs (opaque broker API keys) are treated as non-expiring.
func CheckTokenExpiry(token string) error {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	_, _, err := parser.ParseUnverified(token, claims)
	if err != nil {
		// Not a parseable JWT; treat as an opaque token with no expiry.
		return nil
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	if time.Now().After(exp.Time) {
		return fmt.Errorf("bearer token expired at %s", exp.Time.Format(time.RFC3339))
	}
	return nil
}
