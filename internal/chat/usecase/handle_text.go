package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"line-knowledge-assistant/internal/chat"
	"line-knowledge-assistant/internal/model"
	"line-knowledge-assistant/internal/prompt"
	"line-knowledge-assistant/internal/reply"
	"line-knowledge-assistant/pkg/llmprovider"
)

// HandleText runs one exchange: ground the question, ask the model, record
// the turns and compose the reply.
func (uc *implUseCase) HandleText(ctx context.Context, sc model.Scope, input chat.TextInput) (model.OutboundMessage, error) {
	if sc.UserID == "" {
		return model.OutboundMessage{}, chat.ErrMissingUser
	}
	if strings.TrimSpace(input.Text) == "" {
		return model.OutboundMessage{}, chat.ErrEmptyInput
	}

	if input.Text == reply.RestartCommand {
		uc.l.Infof(ctx, "chat.HandleText: user=%s restarted the conversation", sc.UserID)
		uc.sessions.Reset(ctx, sc.UserID)
		uc.metrics.Restart()
		return uc.dispatcher.Text(chat.RestartPrompt), nil
	}

	if hint := uc.extractTopicHint(input.Text); hint != "" {
		uc.sessions.RememberTopicHint(ctx, sc.UserID, hint)
	}

	sess := uc.sessions.Get(ctx, sc.UserID)

	g := uc.resolver.Resolve(ctx, input.Text)
	uc.metrics.Grounding(g.Source)
	uc.l.Infof(ctx, "chat.HandleText: user=%s history=%d grounding=%s passages=%d",
		sc.UserID, len(sess.History), g.Source, len(g.Passages))

	turns := prompt.Build(prompt.Input{
		SystemInstruction: uc.instruction,
		History:           sess.History,
		Grounding:         g.Text(),
		TopicHint:         sess.TopicHint,
		UserMessage:       input.Text,
		Placement:         uc.placement,
	})

	answer, err := uc.complete(ctx, turns)
	if err != nil {
		uc.l.Errorf(ctx, "chat.HandleText: user=%s completion failed: %v", sc.UserID, err)
	}

	remembered := answer
	if err != nil {
		remembered = g.Text()
	}
	uc.sessions.Append(ctx, sc.UserID,
		model.NewTurn(model.RoleUser, input.Text),
		model.NewTurn(model.RoleAssistant, remembered),
	)

	return uc.dispatcher.Compose(answer, err), nil
}

// HandleFollow clears any previous conversation and greets the user.
func (uc *implUseCase) HandleFollow(ctx context.Context, sc model.Scope) (model.OutboundMessage, error) {
	if sc.UserID == "" {
		return model.OutboundMessage{}, chat.ErrMissingUser
	}

	uc.l.Infof(ctx, "chat.HandleFollow: user=%s", sc.UserID)
	uc.sessions.Reset(ctx, sc.UserID)
	uc.metrics.Restart()
	return uc.dispatcher.Text(chat.FollowGreeting), nil
}

// complete calls the completion collaborator. Any failure, including an empty
// answer, is reported as ErrCompletionUnavailable.
func (uc *implUseCase) complete(ctx context.Context, turns []model.Turn) (string, error) {
	messages := make([]llmprovider.Message, 0, len(turns))
	for _, t := range turns {
		messages = append(messages, llmprovider.Message{Role: string(t.Role), Content: t.Content})
	}

	start := time.Now()
	resp, err := uc.completer.GenerateContent(ctx, &llmprovider.Request{
		Messages:         messages,
		MaxTokens:        uc.sampling.MaxTokens,
		Temperature:      uc.sampling.Temperature,
		TopP:             uc.sampling.TopP,
		FrequencyPenalty: uc.sampling.FrequencyPenalty,
		PresencePenalty:  uc.sampling.PresencePenalty,
	})
	if err == nil && (resp == nil || strings.TrimSpace(resp.Content) == "") {
		err = fmt.Errorf("empty completion")
	}
	uc.metrics.Completion(err, time.Since(start))
	if err != nil {
		return "", fmt.Errorf("%w: %v", chat.ErrCompletionUnavailable, err)
	}

	return resp.Content, nil
}

// extractTopicHint returns the first product code in text, upper-cased.
func (uc *implUseCase) extractTopicHint(text string) string {
	if uc.topicPattern == nil {
		return ""
	}
	return strings.ToUpper(uc.topicPattern.FindString(text))
}
