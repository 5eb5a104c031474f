package out

import (
	"github.com/golang-jwt/jwt/v5"

	sessionout "edura/internal/modules/session/port/out"
	"edura/internal/platform/clock"
)

// JWTTokenInspector reads the exp claim without verifying the signature.
type JWTTokenInspector struct {
	clock  clock.Clock
	parser *jwt.Parser
}

func NewJWTTokenInspector(clk clock.Clock) sessionout.TokenInspector {
	return &JWTTokenInspector{clock: clk, parser: jwt.NewParser()}
}

// Expired is false for opaque (non-JWT) tokens and tokens without exp.
func (i *JWTTokenInspector) Expired(token string) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := i.parser.ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !i.clock.Now().Before(claims.ExpiresAt.Time)
}
