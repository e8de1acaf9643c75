package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
)

// Mailer sends transactional mail on behalf of the worker.
type Mailer interface {
	SendWelcomeEmail(ctx context.Context, to, firstName string) error
}

type Handler struct {
	mailer Mailer
	logger *slog.Logger
}

func NewHandler(mailer Mailer, logger *slog.Logger) *Handler {
	return &Handler{
		mailer: mailer,
		logger: logger,
	}
}

func (h *Handler) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeWelcomeEmail, h.HandleWelcomeEmail)
}

// HandleWelcomeEmail delivers the post-registration welcome mail. Delivery
// failures are logged and swallowed: the mail is best-effort and the task
// must never retry or bubble an error back toward the registration.
func (h *Handler) HandleWelcomeEmail(ctx context.Context, t *asynq.Task) error {
	var payload WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	if h.mailer == nil {
		h.logger.Warn("mailer not configured, skipping welcome email", "email", payload.Email)
		return nil
	}

	if err := h.mailer.SendWelcomeEmail(ctx, payload.Email, payload.FirstName); err != nil {
		h.logger.Error("failed to send welcome email", "email", payload.Email, "error", err)
		return nil
	}

	h.logger.Info("welcome email sent", "email", payload.Email)
	return nil
}
