package domain

// TokenClaims is the payload carried by an issued token. It has no expiry,
// issuer or signature of its own.
//
// Once decoded from a presented token the same value acts as the request's
// authenticated principal; it lives only for the duration of that request.
type TokenClaims struct {
	Subject string `json:"sub"`
	Role    Role   `json:"role"`
}

// HasRole reports whether the claims grant the given role.
func (c *TokenClaims) HasRole(role Role) bool {
	return c != nil && role.Valid() && c.Role == role
}
