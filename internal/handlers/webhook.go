package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"

	"github.com/linemailhq/linemail/internal/bridge"
)

// WebhookHandler receives LINE webhook callbacks and forwards each
// message event as an email.
type WebhookHandler struct {
	mailer        *bridge.Mailer
	channelSecret string
	logger        *slog.Logger
}

func NewWebhookHandler(log *slog.Logger, mailer *bridge.Mailer, channelSecret string) *WebhookHandler {
	return &WebhookHandler{
		mailer:        mailer,
		channelSecret: channelSecret,
		logger:        log.With(slog.String("handler", "webhook")),
	}
}

func (h *WebhookHandler) Register(e *echo.Echo) {
	e.POST("/webhook", h.Handle, middleware.BodyLimit("1M"))
}

func (h *WebhookHandler) Handle(c echo.Context) error {
	cb, err := webhook.ParseRequest(h.channelSecret, c.Request())
	if err != nil {
		if errors.Is(err, webhook.ErrInvalidSignature) {
			h.logger.Warn("signature verification failed", slog.String("remote_ip", c.RealIP()))
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid signature")
		}
		return echo.NewHTTPError(http.StatusBadRequest, "malformed webhook payload")
	}

	results := h.mailer.ProcessBatch(c.Request().Context(), cb.Events)
	return c.JSON(http.StatusOK, map[string]any{
		"status":  "success",
		"results": results,
	})
}
