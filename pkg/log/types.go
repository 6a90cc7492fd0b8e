package log

// ZapConfig configures the zap-backed logger.
type ZapConfig struct {
	Level        string // debug, info, warn, error
	Mode         string // "production" selects JSON production defaults
	Encoding     string // "console" or "json"
	ColorEnabled bool
}

type ctxKey string

const (
	// RequestIDKey is the context key holding the per-request id.
	RequestIDKey ctxKey = "request_id"

	modeProduction  = "production"
	encodingConsole = "console"
)
