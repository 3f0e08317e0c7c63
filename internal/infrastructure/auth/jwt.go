package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iho/hosteltracker/internal/domain"
)

const issuer = "hosteltracker"

// Scope limits what a device token may do.
type Scope string

const (
	// ScopeFull may read and change the ledger.
	ScopeFull Scope = "full"
	// ScopeReadOnly may only read, e.g. a widget or a shared screen.
	ScopeReadOnly Scope = "read"
)

// ParseScope maps a string to a Scope. Empty means full access.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case "", ScopeFull:
		return ScopeFull, nil
	case ScopeReadOnly:
		return ScopeReadOnly, nil
	default:
		return "", domain.ErrInvalidInput
	}
}

// CanWrite reports whether the scope allows mutations.
func (s Scope) CanWrite() bool {
	return s == ScopeFull
}

// Claims represents the JWT claims of a device token.
type Claims struct {
	DeviceID string `json:"device_id"`
	Scope    Scope  `json:"scope"`
	jwt.RegisteredClaims
}

// JWTManager issues and verifies device tokens signed with HS256.
type JWTManager struct {
	secretKey     []byte
	tokenDuration time.Duration
	now           func() time.Time
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(secretKey string, tokenDuration time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
		now:           time.Now,
	}
}

// Generate issues a token for deviceID.
func (m *JWTManager) Generate(deviceID string, scope Scope) (string, time.Time, error) {
	if deviceID == "" {
		return "", time.Time{}, domain.ErrInvalidInput
	}

	now := m.now()
	expires := now.Add(m.tokenDuration)

	claims := Claims{
		DeviceID: deviceID,
		Scope:    scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   deviceID,
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expires, nil
}

// Verify verifies a token and returns its claims.
func (m *JWTManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			return m.secretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrExpiredToken
		}
		return nil, domain.ErrInvalidToken
	}

	if !token.Valid || claims.DeviceID == "" {
		return nil, domain.ErrInvalidToken
	}
	if claims.Scope == "" {
		claims.Scope = ScopeFull
	}

	return claims, nil
}
