package rentals

import (
	"context"

	"github.com/google/uuid"

	"github.com/ouestloc/rentals/middleware/jwtware"
)

// ValidationListener aliases the jwtware listener so consumers can use the
// root package helpers directly.
type ValidationListener = jwtware.ValidationListener

// ContextEnricherAdapter adapts jwtware.AuthClaims to AuthClaims and stores
// the claims in the standard context for downstream handler usage.
func ContextEnricherAdapter(c context.Context, claims jwtware.AuthClaims) context.Context {
	authClaims, ok := claims.(AuthClaims)
	if !ok {
		return c
	}

	return WithClaimsContext(c, authClaims)
}

// IdentityEnricherAdapter stores the resolved principal in the standard
// context so handlers can read it back through FromContext and
// IsAuthenticated without reaching into fiber locals.
func IdentityEnricherAdapter(c context.Context, identity jwtware.Identity) context.Context {
	id, err := uuid.Parse(identity.ID())
	if err != nil {
		id = uuid.Nil
	}

	return WithContext(c, &User{
		ID:    id,
		Name:  identity.Name(),
		Email: identity.Email(),
		Role:  UserRole(identity.Role()),
	})
}

// RegisterValidationListeners appends listeners to a jwtware.Config in a safe, reusable way.
func RegisterValidationListeners(cfg *jwtware.Config, listeners ...ValidationListener) {
	if cfg == nil || len(listeners) == 0 {
		return
	}
	cfg.ValidationListeners = append(cfg.ValidationListeners, listeners...)
}

// TokenValidatorAdapter narrows a TokenService to the validator interface the
// middleware consumes.
type TokenValidatorAdapter struct {
	Tokens TokenService
}

func (a TokenValidatorAdapter) Validate(tokenString string) (jwtware.AuthClaims, error) {
	claims, err := a.Tokens.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

var _ jwtware.TokenValidator = TokenValidatorAdapter{}

// IdentityResolverAdapter maps a verified token subject back to a live
// identity through the configured provider.
func IdentityResolverAdapter(provider IdentityProvider) func(ctx context.Context, subject string) (jwtware.Identity, error) {
	return func(ctx context.Context, subject string) (jwtware.Identity, error) {
		identity, err := provider.FindIdentityByIdentifier(ctx, subject)
		if err != nil {
			return nil, err
		}
		return identity, nil
	}
}

// NewRouteGuard assembles the jwtware middleware config for the given
// dependencies. The policy decides which requests are checked; everything
// else halts with a uniform 401 on any failure.
func NewRouteGuard(policy *RoutePolicy, tokens TokenService, provider IdentityProvider) jwtware.Config {
	return jwtware.Config{
		Policy:           policy,
		TokenValidator:   TokenValidatorAdapter{Tokens: tokens},
		IdentityResolver: IdentityResolverAdapter(provider),
		ContextEnricher:  ContextEnricherAdapter,
		IdentityEnricher: IdentityEnricherAdapter,
	}
}
