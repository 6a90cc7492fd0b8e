package model

// QuickReply is one tappable suggestion attached to an outbound message.
type QuickReply struct {
	Label string // button caption
	Text  string // text sent back when tapped
}

// OutboundMessage is the platform-neutral reply produced for one inbound event.
type OutboundMessage struct {
	Text         string
	QuickReplies []QuickReply
}
