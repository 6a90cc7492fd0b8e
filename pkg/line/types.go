package line

// Event and message types delivered by the Messaging API webhook.
const (
	EventTypeMessage  = "message"
	EventTypeFollow   = "follow"
	EventTypeUnfollow = "unfollow"
	EventTypePostback = "postback"

	MessageTypeText    = "text"
	MessageTypeImage   = "image"
	MessageTypeSticker = "sticker"

	SourceTypeUser  = "user"
	SourceTypeGroup = "group"
	SourceTypeRoom  = "room"
)

// WebhookRequest is the body LINE posts to the callback endpoint.
type WebhookRequest struct {
	Destination string  `json:"destination"`
	Events      []Event `json:"events"`
}

// Event represents a single webhook event.
type Event struct {
	Type       string   `json:"type"`
	Mode       string   `json:"mode,omitempty"`
	Timestamp  int64    `json:"timestamp"`
	ReplyToken string   `json:"replyToken,omitempty"`
	Source     Source   `json:"source"`
	Message    *Message `json:"message,omitempty"`
}

// MessageType returns the inner message type, or "" for non-message events.
func (e Event) MessageType() string {
	if e.Message == nil {
		return ""
	}
	return e.Message.Type
}

// Source identifies who produced the event.
type Source struct {
	Type    string `json:"type"`
	UserID  string `json:"userId,omitempty"`
	GroupID string `json:"groupId,omitempty"`
	RoomID  string `json:"roomId,omitempty"`
}

// Message is an inbound message payload.
type Message struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// TextMessage is an outbound text message.
type TextMessage struct {
	Type       string      `json:"type"`
	Text       string      `json:"text"`
	QuickReply *QuickReply `json:"quickReply,omitempty"`
}

// QuickReply holds the quick reply buttons attached to a message.
type QuickReply struct {
	Items []QuickReplyItem `json:"items"`
}

// QuickReplyItem is one quick reply button.
type QuickReplyItem struct {
	Type   string        `json:"type"`
	Action MessageAction `json:"action"`
}

// MessageAction sends Text as a user message when tapped.
type MessageAction struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	Text  string `json:"text"`
}

// ReplyRequest is the payload for the reply endpoint.
type ReplyRequest struct {
	ReplyToken string        `json:"replyToken"`
	Messages   []TextMessage `json:"messages"`
}

// WebhookEndpointRequest is the payload for setting the webhook URL.
type WebhookEndpointRequest struct {
	Endpoint string `json:"endpoint"`
}

// APIError is the error body returned by the Messaging API.
type APIError struct {
	Message string `json:"message"`
}
