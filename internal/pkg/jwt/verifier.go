// internal/pkg/jwt/verifier.go
package jwt

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type Config struct {
	Secret   string
	Issuer   string
	Audience string
}

// Claims carried by the tokens the external auth provider issues for
// back-office operators. The only claim this service acts on is the
// operator's e-mail.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// OperatorEmail returns the lower-cased e-mail for allow-list checks.
func (c *Claims) OperatorEmail() string {
	return strings.ToLower(strings.TrimSpace(c.Email))
}

type Verifier struct {
	secret   []byte
	issuer   string
	audience string
}

func NewVerifier(cfg Config) (*Verifier, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is not configured")
	}
	return &Verifier{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
	}, nil
}

// Verify validates a token and returns its claims.
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	},
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if claims.OperatorEmail() == "" {
		return nil, fmt.Errorf("token carries no operator email")
	}

	return claims, nil
}
