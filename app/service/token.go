package service

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/vibast-solutions/ms-go-skillbase/app/entity"

	"github.com/golang-jwt/jwt/v5"
)

const opaqueTokenBytes = 32

// Clock returns the current time.
type Clock func() time.Time

type Claims struct {
	AccountID  string      `json:"account_id"`
	Email      string      `json:"email"`
	Role       entity.Role `json:"role"`
	ProfileID  string      `json:"profile_id"`
	IsVerified bool        `json:"is_verified"`
	jwt.RegisteredClaims
}

// NewClaims builds session claims from the sanitized view of an account.
func NewClaims(account *entity.Account) Claims {
	return Claims{
		AccountID:  account.ID,
		Email:      account.Email,
		Role:       account.Role,
		ProfileID:  account.ProfileID(),
		IsVerified: account.IsVerified,
	}
}

// TokenIssuer signs and verifies HS256 session tokens.
type TokenIssuer struct {
	secret []byte
	clock  Clock
}

func NewTokenIssuer(secret string, clock Clock) *TokenIssuer {
	if clock == nil {
		clock = time.Now
	}
	return &TokenIssuer{secret: []byte(secret), clock: clock}
}

// Sign returns a token valid for ttl and its expiry.
func (i *TokenIssuer) Sign(claims Claims, ttl time.Duration) (string, time.Time, error) {
	now := i.clock()
	expiresAt := now.Add(ttl)

	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.AccountID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify checks algorithm, signature and expiry before returning the claims.
func (i *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.clock),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}
	return claims, nil
}

// NewOpaqueToken returns 32 random bytes, hex encoded.
func NewOpaqueToken() (string, error) {
	buf := make([]byte, opaqueTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
