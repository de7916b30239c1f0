package handlers

import (
	"bufio"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/arzan03/AskSolve/internal/middleware"
	"github.com/arzan03/AskSolve/internal/notify"
	"github.com/arzan03/AskSolve/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const keepAliveInterval = 25 * time.Second

// StreamHandler pushes the unanswered-question count to an administrator's
// badge as server-sent events.
type StreamHandler struct {
	questions *services.QuestionService
	broker    notify.Broker
	idp       services.IdentityProvider
	logger    *zap.Logger
}

func NewStreamHandler(questions *services.QuestionService, broker notify.Broker, idp services.IdentityProvider, logger *zap.Logger) *StreamHandler {
	return &StreamHandler{questions: questions, broker: broker, idp: idp, logger: logger}
}

// PendingStream sends the current count, then every replacement count. The
// stream ends when the client goes away or the caller's session signs out.
func (h *StreamHandler) PendingStream(c *fiber.Ctx) error {
	sess := middleware.SessionFrom(c)

	current, err := h.questions.CountUnanswered(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	subCtx, cancelSub := context.WithCancel(context.Background())
	counts, unsubscribe, err := h.broker.Subscribe(subCtx)
	if err != nil {
		cancelSub()
		return respondError(c, h.logger, err)
	}

	ended := make(chan struct{})
	var endOnce sync.Once
	stopWatching := h.idp.OnSessionChange(func(ev services.SessionEvent) {
		if !ev.Active && sess.Identity != nil && ev.SessionID == sess.Identity.SessionID {
			endOnce.Do(func() { close(ended) })
		}
	})

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancelSub()
		defer unsubscribe()
		defer stopWatching()

		if writeCount(w, current) != nil {
			return
		}
		ticker := time.NewTicker(keepAliveInterval)
		defer ticker.Stop()

		for {
			select {
			case n, ok := <-counts:
				if !ok || writeCount(w, n) != nil {
					return
				}
			case <-ticker.C:
				if _, err := w.WriteString(": keepalive\n\n"); err != nil {
					return
				}
				if w.Flush() != nil {
					return
				}
			case <-ended:
				_, _ = w.WriteString("event: end\ndata: signed out\n\n")
				_ = w.Flush()
				return
			}
		}
	}))
	return nil
}

func writeCount(w *bufio.Writer, n int64) error {
	if _, err := fmt.Fprintf(w, "event: pending\ndata: {\"count\":%d}\n\n", n); err != nil {
		return err
	}
	return w.Flush()
}
