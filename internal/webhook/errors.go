package webhook

import "errors"

var (
	ErrSignatureInvalid  = errors.New("invalid signature")
	ErrSecretMissing     = errors.New("webhook secret not configured")
	ErrIPNotAllowed      = errors.New("ip not whitelisted")
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
)
