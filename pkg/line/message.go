package line

// NewTextMessage builds an outbound text message.
func NewTextMessage(text string) TextMessage {
	return TextMessage{Type: MessageTypeText, Text: text}
}

// WithQuickReplies attaches message-action quick replies. Each entry is a
// (label, text) pair.
func (m TextMessage) WithQuickReplies(items ...MessageAction) TextMessage {
	if len(items) == 0 {
		return m
	}
	qr := &QuickReply{Items: make([]QuickReplyItem, 0, len(items))}
	for _, it := range items {
		it.Type = "message"
		qr.Items = append(qr.Items, QuickReplyItem{Type: "action", Action: it})
	}
	m.QuickReply = qr
	return m
}
