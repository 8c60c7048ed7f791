// Package token issues and verifies the HS256 bearer tokens used by the API.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Cristiand11/portfolio-sub001/internal/httperr"
)

type Claims struct {
	UserID uint
	Role   string
}

type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

func (i *Issuer) Issue(userID uint, role string, now time.Time) (string, time.Time, error) {
	exp := now.Add(i.ttl)
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (i *Issuer) Parse(raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return i.secret, nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, httperr.ErrUnauthorized("invalid_token")
	}

	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, httperr.ErrUnauthorized("invalid_token_claims")
	}

	sub, ok1 := mc["sub"].(float64)
	role, ok2 := mc["role"].(string)
	if !ok1 || !ok2 || sub <= 0 {
		return Claims{}, httperr.ErrUnauthorized("invalid_token_payload")
	}
	return Claims{UserID: uint(sub), Role: role}, nil
}
