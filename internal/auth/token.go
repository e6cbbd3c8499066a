package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/apperr"
	"github.com/golang-jwt/jwt/v5"
)

// Token errors. Both surface to callers as apperr.KindUnauthorized.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// TokenManager issues and verifies HS256 session tokens.
type TokenManager struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewTokenManager(secret []byte, expiry time.Duration) *TokenManager {
	return &TokenManager{secret: secret, expiry: expiry, now: time.Now}
}

func (m *TokenManager) Expiry() time.Duration { return m.expiry }

// Issue signs claims with iat=now and exp=now+expiry. Any exp already set is replaced.
func (m *TokenManager) Issue(claims Claims) (string, error) {
	now := m.now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(m.expiry))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Keyfunc only accepts HMAC-signed tokens.
func (m *TokenManager) Keyfunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return m.secret, nil
}

// Verify checks signature and expiry and returns the embedded claims.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, m.Keyfunc,
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.Wrap(apperr.KindUnauthorized, apperr.MsgInvalidToken, ErrExpiredToken)
		}
		return nil, apperr.Wrap(apperr.KindUnauthorized, apperr.MsgInvalidToken, fmt.Errorf("%w: %v", ErrInvalidToken, err))
	}
	if !token.Valid {
		return nil, apperr.Wrap(apperr.KindUnauthorized, apperr.MsgInvalidToken, ErrInvalidToken)
	}
	if err := ValidateClaims(claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// ValidateClaims rejects tokens that verify but lack the claims every session needs.
func ValidateClaims(claims *Claims) error {
	if claims.PrincipalID == 0 || !claims.Role.Valid() {
		return apperr.Wrap(apperr.KindUnauthorized, apperr.MsgInvalidToken, fmt.Errorf("%w: missing id or role", ErrInvalidToken))
	}
	if claims.ExpiresAt == nil {
		return apperr.Wrap(apperr.KindUnauthorized, apperr.MsgInvalidToken, fmt.Errorf("%w: missing exp", ErrInvalidToken))
	}
	return nil
}
