package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrSecretNotConfigured = errors.New("token secret is not configured")
	ErrInvalidToken        = errors.New("invalid token")
)

// Claims is what a signed token carries about the user.
type Claims struct {
	UID       uint      `json:"uid"`
	Name      string    `json:"name"`
	ExpiresIn time.Time `json:"expiresIn"`
	jwt.RegisteredClaims
}

type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *TokenService) Configured() bool {
	return len(s.secret) > 0
}

// Issue signs a token for the user and returns it with its expiry.
func (s *TokenService) Issue(uid uint, name string) (string, time.Time, error) {
	if !s.Configured() {
		return "", time.Time{}, ErrSecretNotConfigured
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := Claims{
		UID:       uid,
		Name:      name,
		ExpiresIn: expiresAt.UTC(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(uid), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt.UTC(), nil
}

// Verify checks signature, algorithm and expiry. Every failure except a
// missing secret is reported as ErrInvalidToken.
func (s *TokenService) Verify(raw string) (*Claims, error) {
	if !s.Configured() {
		return nil, ErrSecretNotConfigured
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
