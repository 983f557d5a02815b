package rentals

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// DefaultTokenTTL is the fixed token lifetime; exp is always iat + TTL.
const DefaultTokenTTL = 30 * time.Minute

// TokenService issues and verifies signed, time-bounded tokens. Verification
// is purely computational: no store lookup, no server-side session state, no
// revocation list.
type TokenService interface {
	Generate(identity Identity) (string, error)
	SignClaims(claims *JWTClaims) (string, error)
	Validate(tokenString string) (AuthClaims, error)
	Subject(tokenString string) (string, error)
	IsValidForIdentity(tokenString string, identity Identity) bool
	IsGloballyValid(tokenString string) bool
}

// TokenServiceImpl implements the TokenService interface
type TokenServiceImpl struct {
	signingKey []byte
	tokenTTL   time.Duration
	logger     Logger
}

// NewTokenService creates a new TokenService instance. The signing key is
// injected once at startup and read-only for the process lifetime.
func NewTokenService(signingKey []byte, tokenTTL time.Duration, logger Logger) TokenService {
	if logger == nil {
		logger = defLogger{}
	}
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &TokenServiceImpl{
		signingKey: signingKey,
		tokenTTL:   tokenTTL,
		logger:     logger,
	}
}

// Generate creates a JWT for the given identity. The subject is the
// identity's canonical email.
func (ts *TokenServiceImpl) Generate(identity Identity) (string, error) {
	now := time.Now()
	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Email(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.tokenTTL)),
		},
		DisplayName:  identity.Name(),
		EmailAddress: identity.Email(),
	}

	return ts.SignClaims(claims)
}

// SignClaims signs arbitrary JWT claims using the configured signing key.
func (ts *TokenServiceImpl) SignClaims(claims *JWTClaims) (string, error) {
	if claims == nil {
		return "", errors.New("claims must not be nil", errors.CategoryInternal)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

// Validate parses and verifies a token string, returning structured claims.
// Every decode or signature failure collapses into ErrTokenMalformed; only
// expiry is reported distinctly, as ErrTokenExpired.
func (ts *TokenServiceImpl) Validate(tokenString string) (AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method: %v", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		ts.logger.Error("TokenService validate could not decode claims")
		return nil, ErrTokenMalformed
	}

	if claims.RegisteredClaims.Subject == "" || claims.RegisteredClaims.ExpiresAt == nil {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

// Subject extracts the subject claim from a verified token
func (ts *TokenServiceImpl) Subject(tokenString string) (string, error) {
	claims, err := ts.Validate(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject(), nil
}

// IsValidForIdentity reports whether the token verifies, is not expired, and
// was issued for the given identity's canonical email.
func (ts *TokenServiceImpl) IsValidForIdentity(tokenString string, identity Identity) bool {
	if identity == nil {
		return false
	}

	claims, err := ts.Validate(tokenString)
	if err != nil {
		return false
	}

	return strings.EqualFold(claims.Subject(), identity.Email())
}

// IsGloballyValid reports whether the token verifies and is not expired,
// independent of any identity. Used by lightweight endpoints that resolve
// the subject themselves.
func (ts *TokenServiceImpl) IsGloballyValid(tokenString string) bool {
	_, err := ts.Validate(tokenString)
	return err == nil
}
