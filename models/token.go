package models

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT bearer token authorizing sync requests of one profile.
//
// The "sub" claim carries the profile id; a pull or push is only served
// when the request's profileID equals it.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// ProfileID is the parsed "sub" claim.
	ProfileID string `json:"-"`
}

// GetProfileID extracts the profile id from the token's subject claim.
func (t *Token) GetProfileID() (string, error) {
	profileID, err := t.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error extracting ProfileID from token: %w", err)
	}
	if profileID == "" {
		return "", fmt.Errorf("error extracting ProfileID from token: empty subject")
	}

	return profileID, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
