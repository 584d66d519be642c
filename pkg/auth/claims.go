package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/harithaceylon/storefront-backend/pkg/enums"
)

// SessionTokenPayload carries the values minted into a session token.
type SessionTokenPayload struct {
	SessionID uuid.UUID
	Role      enums.SessionRole
	JTI       string
}

// SessionTokenClaims is the JWT claim set for storefront sessions.
// Shopper tokens identify a cart session; admin tokens carry a nil
// session id and gate the admin surface by role.
type SessionTokenClaims struct {
	SessionID uuid.UUID         `json:"sid"`
	Role      enums.SessionRole `json:"role"`
	jwt.RegisteredClaims
}
