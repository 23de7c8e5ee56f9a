package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type Identity struct {
	Email string
	Name  string
}

// IdentityFromIDToken reads the email and name claims of an OpenID id_token
// without verifying its signature.
func IdentityFromIDToken(idToken string) (Identity, error) {
	if strings.TrimSpace(idToken) == "" {
		return Identity{}, errors.New("id token is empty")
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(idToken, claims); err != nil {
		return Identity{}, fmt.Errorf("parse id token: %w", err)
	}

	identity := Identity{}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		identity.Name = name
	}
	if identity.Email == "" {
		return Identity{}, errors.New("id token has no email claim")
	}

	return identity, nil
}
