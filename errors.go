package coverflow

import "errors"

// Sentinel errors for host operations. Model operations never fail.
var (
	ErrSessionNotFound  = errors.New("coverflow: session not found")
	ErrDecryptFailed    = errors.New("coverflow: token decryption failed")
	ErrSignatureInvalid = errors.New("coverflow: token signature verification failed")
	ErrInvalidFormat    = errors.New("coverflow: invalid token format")
	ErrBadClick         = errors.New("coverflow: malformed click")
)

// IsNotFound checks if err is an unknown-session error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound)
}

// IsTokenError checks if err came from a token that failed to decode.
func IsTokenError(err error) bool {
	return errors.Is(err, ErrDecryptFailed) ||
		errors.Is(err, ErrSignatureInvalid) ||
		errors.Is(err, ErrInvalidFormat)
}

// IsBadRequest checks if err was caused by client input.
func IsBadRequest(err error) bool {
	return IsTokenError(err) || errors.Is(err, ErrBadClick)
}
