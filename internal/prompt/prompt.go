// Package prompt assembles the ordered message list sent to the completion endpoint.
package prompt

import (
	"fmt"
	"strings"

	"line-knowledge-assistant/internal/model"
)

// Placement selects where grounding text goes in the prompt.
type Placement string

const (
	// PlacementSystem appends grounding to the system turn.
	PlacementSystem Placement = "system"
	// PlacementAssistant adds grounding as a trailing assistant turn.
	PlacementAssistant Placement = "assistant"
)

// DefaultSystemInstruction is used when none is configured.
const DefaultSystemInstruction = "คุณคือผู้ช่วยตอบคำถามของลูกค้า ตอบเป็นภาษาเดียวกับคำถาม " +
	"ใช้เฉพาะข้อมูลอ้างอิงที่ให้ไว้ หากข้อมูลไม่เพียงพอให้แจ้งลูกค้าอย่างสุภาพ"

const topicHintFormat = "(รหัสสินค้าที่กำลังสนทนา: %s)"

// Input is everything Build needs.
type Input struct {
	SystemInstruction string
	History           []model.Turn
	Grounding         string
	TopicHint         string
	UserMessage       string
	Placement         Placement
}

// Build returns the prompt turns: system, history, user, and in assistant
// placement a final grounding turn. It does not drop or reorder turns and
// returns the same output for the same input.
func Build(in Input) []model.Turn {
	instruction := in.SystemInstruction
	if instruction == "" {
		instruction = DefaultSystemInstruction
	}

	var system strings.Builder
	system.WriteString(instruction)
	if hint := strings.TrimSpace(in.TopicHint); hint != "" {
		system.WriteString("\n")
		fmt.Fprintf(&system, topicHintFormat, hint)
	}
	if in.Placement != PlacementAssistant && in.Grounding != "" {
		system.WriteString("\n\n")
		system.WriteString(in.Grounding)
	}

	turns := make([]model.Turn, 0, len(in.History)+3)
	turns = append(turns, model.NewTurn(model.RoleSystem, system.String()))
	turns = append(turns, in.History...)
	turns = append(turns, model.NewTurn(model.RoleUser, in.UserMessage))
	if in.Placement == PlacementAssistant && in.Grounding != "" {
		turns = append(turns, model.NewTurn(model.RoleAssistant, in.Grounding))
	}
	return turns
}
