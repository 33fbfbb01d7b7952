package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Sessions last 7 days from issuance.
const sessionTTL = 7 * 24 * time.Hour

// Claims is the signed session payload.
type Claims struct {
	UserID int64  `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Codec signs and verifies stateless session tokens with HMAC-SHA256.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret), ttl: sessionTTL}
}

// Create issues a signed token for the user.
func (c *Codec) Create(userID int64, email string) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning nil for anything that is
// not a currently valid session: bad signature, wrong algorithm, expired,
// or malformed.
func (c *Codec) Verify(token string) *Claims {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil
	}
	return claims
}
