package webhook

// SecurityConfig holds webhook security settings
type SecurityConfig struct {
	ChannelSecret   string   // LINE channel secret used to sign request bodies
	AllowedIPs      []string // IP whitelist (optional)
	RateLimitPerMin int      // Max requests per minute per source
}
