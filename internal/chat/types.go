package chat

import (
	"regexp"

	"line-knowledge-assistant/internal/prompt"
)

// Fixed user-facing texts.
const (
	RestartPrompt  = "เริ่มการสนทนาใหม่แล้วค่ะ กรุณาพิมพ์รายละเอียดที่ต้องการสอบถามเพิ่มเติมได้เลย"
	FollowGreeting = "สวัสดีค่ะ ยินดีต้อนรับ สามารถพิมพ์คำถามเกี่ยวกับสินค้าหรือบริการได้เลยค่ะ"
)

// DefaultTopicPattern matches product codes such as "AB-1234" or "xy99".
const DefaultTopicPattern = `[A-Za-z]{2,}-?\d{2,}`

// TextInput is an inbound text message.
type TextInput struct {
	Text string
}

// Sampling holds completion parameters, passed through unchanged.
type Sampling struct {
	MaxTokens        int
	Temperature      float64
	TopP             float64
	FrequencyPenalty float64
	PresencePenalty  float64
}

// Options configures the chat use case.
type Options struct {
	SystemInstruction string
	Placement         prompt.Placement
	TopicPattern      *regexp.Regexp // nil disables topic hints
	Sampling          Sampling
}
