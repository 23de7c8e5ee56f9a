package domain

import "fmt"

type AuthMethod string

const (
	AuthMethodOAuth  AuthMethod = "oauth"
	AuthMethodManual AuthMethod = "manual"
	AuthMethodImport AuthMethod = "import"
)

type Auth struct {
	Method AuthMethod
	// SecretRef points to the secret-store entry holding the refresh token.
	SecretRef string
}

func RefreshTokenSecretRef(id AccountID) string {
	return fmt.Sprintf("ag/accounts/%s/refresh_token", id)
}
