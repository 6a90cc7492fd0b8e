// Package reply turns completion output into outbound LINE messages.
package reply

import (
	"context"
	"fmt"
	"strings"

	"line-knowledge-assistant/internal/model"
	"line-knowledge-assistant/pkg/line"
)

// Fixed user-facing texts.
const (
	ApologyMessage = "ขออภัย ระบบมีปัญหาในการเชื่อมต่อกับระบบตอบคำถาม กรุณาลองใหม่อีกครั้ง"

	RestartCommand = "เริ่มการสนทนาใหม่"
	SearchAgain    = "ค้นหาอีกครั้ง"
	ContactAgent   = "ติดต่อเจ้าหน้าที่"
)

// QuickReplies is the fixed quick reply menu.
func QuickReplies() []model.QuickReply {
	return []model.QuickReply{
		{Label: RestartCommand, Text: RestartCommand},
		{Label: SearchAgain, Text: SearchAgain},
		{Label: ContactAgent, Text: ContactAgent},
	}
}

// Sender delivers messages for a reply token.
type Sender interface {
	Reply(ctx context.Context, replyToken string, messages ...line.TextMessage) error
}

// Dispatcher composes outbound messages and sends them.
type Dispatcher struct {
	sender       Sender
	quickReplies bool
}

// NewDispatcher creates a Dispatcher. quickReplies attaches the fixed menu to every message.
func NewDispatcher(sender Sender, quickReplies bool) *Dispatcher {
	return &Dispatcher{sender: sender, quickReplies: quickReplies}
}

// Compose builds the message for raw, or the apology when failure is set or
// raw is blank. failure is never shown to the user.
func (d *Dispatcher) Compose(raw string, failure error) model.OutboundMessage {
	text := raw
	if failure != nil || strings.TrimSpace(raw) == "" {
		text = ApologyMessage
	}
	return d.Text(text)
}

// Text wraps a fixed text, attaching quick replies when enabled.
func (d *Dispatcher) Text(text string) model.OutboundMessage {
	msg := model.OutboundMessage{Text: text}
	if d.quickReplies {
		msg.QuickReplies = QuickReplies()
	}
	return msg
}

// Dispatch sends msg using replyToken.
func (d *Dispatcher) Dispatch(ctx context.Context, replyToken string, msg model.OutboundMessage) error {
	out := line.NewTextMessage(msg.Text)
	if len(msg.QuickReplies) > 0 {
		actions := make([]line.MessageAction, 0, len(msg.QuickReplies))
		for _, qr := range msg.QuickReplies {
			actions = append(actions, line.MessageAction{Label: qr.Label, Text: qr.Text})
		}
		out = out.WithQuickReplies(actions...)
	}

	if err := d.sender.Reply(ctx, replyToken, out); err != nil {
		return fmt.Errorf("failed to dispatch reply: %w", err)
	}
	return nil
}
