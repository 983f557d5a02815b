package rentals

import (
	"github.com/goliatone/go-errors"
)

// Text codes surfaced alongside structured errors so API clients can branch
// without parsing human-readable messages.
const (
	TextCodeInvalidEmail    = "INVALID_EMAIL"
	TextCodeEmailInUse      = "EMAIL_IN_USE"
	TextCodeAuthFailed      = "AUTHENTICATION_FAILED"
	TextCodeInvalidCreds    = "INVALID_CREDENTIALS"
	TextCodeEmptyPassword   = "EMPTY_PASSWORD"
	TextCodeTokenExpired    = "TOKEN_EXPIRED"
	TextCodeTokenMalformed  = "TOKEN_MALFORMED"
	TextCodeMissingAuth     = "MISSING_AUTH_HEADER"
	TextCodeIdentityUnknown = "IDENTITY_NOT_FOUND"
)

// ErrInvalidEmail is returned when a registration email fails validation
var ErrInvalidEmail = errors.New("the email provided is invalid", errors.CategoryValidation).
	WithTextCode(TextCodeInvalidEmail).
	WithCode(errors.CodeBadRequest)

// ErrEmailAlreadyUsed is returned when a registration email is already taken
var ErrEmailAlreadyUsed = errors.New("the email provided is already in use", errors.CategoryConflict).
	WithTextCode(TextCodeEmailInUse).
	WithCode(errors.CodeConflict)

// ErrAuthenticationFailed is the single outcome every login failure collapses
// into; it never distinguishes an unknown identity from a wrong password.
var ErrAuthenticationFailed = errors.New("authentication failed: invalid credentials", errors.CategoryAuth).
	WithTextCode(TextCodeAuthFailed).
	WithCode(errors.CodeUnauthorized)

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryNotFound).
	WithTextCode(TextCodeIdentityUnknown).
	WithCode(errors.CodeNotFound)

// ErrMismatchedHashAndPassword covers both a bcrypt mismatch and a missing
// user record so callers cannot probe for registered emails.
var ErrMismatchedHashAndPassword = errors.New("the credentials provided are invalid", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString rejects empty passwords before hashing
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword).
	WithCode(errors.CodeBadRequest)

// ErrTokenExpired marks a token whose exp claim is in the past
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is the single error every decode or signature failure
// collapses into; internal parser detail never crosses this boundary.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrMissingAuthHeader marks a protected request without a usable
// Authorization header
var ErrMissingAuthHeader = errors.New("missing or malformed authorization header", errors.CategoryAuth).
	WithTextCode(TextCodeMissingAuth).
	WithCode(errors.CodeUnauthorized)
