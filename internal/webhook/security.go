package webhook

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"line-knowledge-assistant/pkg/line"
)

// SecurityValidator validates webhook requests
type SecurityValidator struct {
	config      SecurityConfig
	rateLimiter *rateLimiter
}

func NewSecurityValidator(config SecurityConfig) *SecurityValidator {
	return &SecurityValidator{
		config:      config,
		rateLimiter: newRateLimiter(config.RateLimitPerMin),
	}
}

// ValidateLineSignature verifies that signature is base64(HMAC-SHA256(secret, payload)).
func (v *SecurityValidator) ValidateLineSignature(payload []byte, signature string) error {
	if v.config.ChannelSecret == "" {
		return ErrSecretMissing
	}
	if !line.ValidateSignature(v.config.ChannelSecret, payload, signature) {
		return ErrSignatureInvalid
	}
	return nil
}

// ValidateIPAddress checks if ip is whitelisted. ip must already be resolved
// against the trusted proxy list; forwarding headers are not consulted here.
func (v *SecurityValidator) ValidateIPAddress(ip string) error {
	if len(v.config.AllowedIPs) == 0 {
		return nil // No IP restriction
	}

	for _, allowedIP := range v.config.AllowedIPs {
		if ip == allowedIP {
			return nil
		}

		// CIDR range
		if strings.Contains(allowedIP, "/") {
			_, ipNet, err := net.ParseCIDR(allowedIP)
			if err != nil {
				continue
			}
			if ipNet.Contains(net.ParseIP(ip)) {
				return nil
			}
		}
	}

	return fmt.Errorf("%w: %s", ErrIPNotAllowed, ip)
}

// CheckRateLimit enforces rate limiting
func (v *SecurityValidator) CheckRateLimit(source string) error {
	return v.rateLimiter.Allow(source)
}

// rateLimiter keeps one token bucket per source, evicted after 5 idle minutes.
type rateLimiter struct {
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newRateLimiter(requestsPerMin int) *rateLimiter {
	burst := requestsPerMin / 10
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](
			1000,          // Max 1000 unique sources
			nil,           // No eviction callback
			time.Minute*5, // TTL: 5 minutes
		),
		rate:  rate.Limit(float64(requestsPerMin) / 60.0), // Per second
		burst: burst,
	}
}

func (rl *rateLimiter) Allow(key string) error {
	limiter, ok := rl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(key, limiter)
	}

	if !limiter.Allow() {
		return fmt.Errorf("%w for %s", ErrRateLimitExceeded, key)
	}
	return nil
}
