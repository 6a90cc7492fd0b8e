package line

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"line-knowledge-assistant/internal/chat"
	"line-knowledge-assistant/internal/model"
	pkgLine "line-knowledge-assistant/pkg/line"
	pkgResponse "line-knowledge-assistant/pkg/response"
)

// Callback handles POST /callback.
// Events are processed and replied to before the response is written; LINE
// only needs a 200 once the signature checks out. The client address comes
// from gin, which honors forwarding headers only from trusted proxies.
//
// @Summary LINE webhook callback
// @Tags webhook
// @Accept json
// @Produce json
// @Param X-Line-Signature header string true "base64 HMAC-SHA256 of the body"
// @Success 200 {object} response.Resp
// @Failure 400 {object} response.Resp
// @Failure 403 {object} response.Resp
// @Failure 429 {object} response.Resp
// @Router /callback [post]
func (h *handler) Callback(c *gin.Context) {
	ctx := c.Request.Context()

	clientIP := c.ClientIP()

	if err := h.security.ValidateIPAddress(clientIP); err != nil {
		h.l.Warnf(ctx, "line.Callback: %v", err)
		pkgResponse.Forbidden(c)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		h.l.Errorf(ctx, "line.Callback: failed to read body: %v", err)
		pkgResponse.BadRequest(c, msgInvalidBody)
		return
	}

	if err := h.security.ValidateLineSignature(body, c.GetHeader(pkgLine.SignatureHeader)); err != nil {
		h.l.Warnf(ctx, "line.Callback: %v", err)
		pkgResponse.BadRequest(c, msgInvalidSignature)
		return
	}

	if err := h.security.CheckRateLimit(clientIP); err != nil {
		h.l.Warnf(ctx, "line.Callback: %v", err)
		pkgResponse.TooManyRequests(c)
		return
	}

	var req pkgLine.WebhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.l.Errorf(ctx, "line.Callback: failed to parse body: %v", err)
		pkgResponse.BadRequest(c, msgInvalidBody)
		return
	}

	for _, ev := range req.Events {
		handled, err := h.router.Dispatch(ctx, ev)
		h.metrics.WebhookEvent(ev.Type, ev.MessageType(), handled)
		if err != nil {
			h.l.Errorf(ctx, "line.Callback: event=%s user=%s: %v", ev.Type, ev.Source.UserID, err)
		}
	}

	pkgResponse.OK(c, map[string]string{"status": "ok"})
}

func (h *handler) handleText(ctx context.Context, ev pkgLine.Event) error {
	out, err := h.uc.HandleText(ctx, scopeOf(ev), chat.TextInput{Text: ev.Message.Text})
	if err != nil {
		if errors.Is(err, chat.ErrEmptyInput) {
			return nil
		}
		return err
	}
	return h.send(ctx, ev.ReplyToken, out)
}

func (h *handler) handleFollow(ctx context.Context, ev pkgLine.Event) error {
	out, err := h.uc.HandleFollow(ctx, scopeOf(ev))
	if err != nil {
		return err
	}
	return h.send(ctx, ev.ReplyToken, out)
}

func (h *handler) send(ctx context.Context, replyToken string, out model.OutboundMessage) error {
	err := h.dispatcher.Dispatch(ctx, replyToken, out)
	h.metrics.Reply(err)
	return err
}

func scopeOf(ev pkgLine.Event) model.Scope {
	return model.Scope{UserID: ev.Source.UserID, Source: ev.Source.Type}
}
