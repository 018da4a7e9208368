package auth

import "errors"

// Token validation failures. The middleware answers all of them with 401 and
// only distinguishes expiry in the message.
var (
	// ErrInvalidToken covers malformed tokens, bad signatures and unexpected algorithms.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken is returned once exp has passed, allowing for clock skew.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid is returned while nbf is still in the future.
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrWrongTokenType is returned for tokens whose type claim is not "access".
	ErrWrongTokenType = errors.New("wrong token type")
)
