package token

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is how long an issued bearer token stays valid.
const DefaultTTL = 24 * time.Hour

// ErrInvalid is returned for malformed, tampered or expired tokens.
var ErrInvalid = errors.New("invalid token")

// Issuer signs and verifies bearer tokens bound to a user id.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer fails when the signing secret is empty so a misconfigured
// process never issues unsigned tokens.
func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New("token: signing secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}, nil
}

// Issue returns a signed token embedding userID and an expiry ttl from now.
func (i *Issuer) Issue(userID int64) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	})
	return t.SignedString(i.secret)
}

// Verify checks the signature and expiry and returns the embedded user id.
// All failure modes collapse into ErrInvalid.
func (i *Issuer) Verify(tokenString string) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, ErrInvalid
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return 0, ErrInvalid
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalid
	}
	return userID, nil
}

// RandomToken returns a cryptographically random hex string, used as the
// single-use password reset credential. It is a bare random value, not a JWT.
func RandomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
