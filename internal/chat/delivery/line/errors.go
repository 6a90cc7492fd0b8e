package line

// Fixed response bodies for rejected callbacks.
const (
	msgInvalidSignature = "Invalid signature"
	msgInvalidBody      = "Invalid request body"
)

// maxBodyBytes caps the callback body read before the signature is checked.
const maxBodyBytes = 1 << 20
