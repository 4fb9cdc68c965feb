package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/linemailhq/linemail/internal/bridge"
)

// maxPartBytes caps a single multipart part. LINE rejects larger media
// anyway, so there is no point buffering more than this.
const maxPartBytes = 10 << 20

// SubmissionHandler receives multipart email submissions and relays
// them into the chat group.
type SubmissionHandler struct {
	messenger *bridge.Messenger
	logger    *slog.Logger
}

func NewSubmissionHandler(log *slog.Logger, messenger *bridge.Messenger) *SubmissionHandler {
	return &SubmissionHandler{
		messenger: messenger,
		logger:    log.With(slog.String("handler", "submission")),
	}
}

func (h *SubmissionHandler) Register(e *echo.Echo) {
	e.POST("/email", h.Handle)
}

func (h *SubmissionHandler) Handle(c echo.Context) error {
	sub, err := parseSubmission(c.Request())
	if err != nil {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			return httpErr
		}
		return echo.NewHTTPError(http.StatusBadRequest, "malformed multipart form")
	}

	if err := h.messenger.HandleSubmission(c.Request().Context(), sub); err != nil {
		h.logger.Error("submission relay failed", slog.Any("error", err))
		return echo.NewHTTPError(http.StatusInternalServerError, "relay failed")
	}
	return c.NoContent(http.StatusOK)
}

// parseSubmission walks the multipart stream part by part so files keep
// the order they were submitted in. echo's parsed form would bucket
// them into a map and lose it.
func parseSubmission(r *http.Request) (bridge.Submission, error) {
	var sub bridge.Submission

	mr, err := r.MultipartReader()
	if err != nil {
		return sub, echo.NewHTTPError(http.StatusBadRequest, "multipart form required")
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return sub, err
		}

		data, err := io.ReadAll(io.LimitReader(part, maxPartBytes+1))
		part.Close()
		if err != nil {
			return sub, err
		}
		if len(data) > maxPartBytes {
			return sub, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "part exceeds size limit")
		}

		if name := part.FileName(); name != "" {
			sub.Files = append(sub.Files, bridge.SubmissionFile{Name: name, Data: data})
			continue
		}

		switch part.FormName() {
		case "from":
			sub.From = string(data)
		case "subject":
			sub.Subject = string(data)
		case "text":
			sub.Text = string(data)
		}
	}

	return sub, nil
}
