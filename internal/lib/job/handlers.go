package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/spendly/api/internal/config"
	"github.com/spendly/api/internal/lib/email"
)

// ViewRefresher recomputes and re-caches a user's dashboard views. The
// record service implements it; the indirection keeps this package from
// importing the service layer.
type ViewRefresher interface {
	RefreshViews(ctx context.Context, userID string) error
}

var (
	emailClient *email.Client
	refresher   ViewRefresher
)

// InitHandlers wires the dependencies job handlers need. Must run before
// Start.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	emailClient = email.NewClient(cfg, logger)
}

// RegisterViewRefresher installs the view refresher used by
// TaskViewRevalidate. Without one the task is a logged no-op.
func (j *JobService) RegisterViewRefresher(r ViewRefresher) {
	refresher = r
}

func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %w", err)
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("Processing welcome email task")

	if err := emailClient.SendWelcomeEmail(p.To, p.FirstName); err != nil {
		j.logger.Error().
			Str("type", "welcome").
			Str("to", p.To).
			Err(err).
			Msg("Failed to send welcome email")
		// Returned errors make Asynq schedule a retry.
		return err
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("Successfully sent welcome email")

	return nil
}

func (j *JobService) handleViewRevalidateTask(ctx context.Context, t *asynq.Task) error {
	var p ViewRevalidatePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal view revalidate payload: %w", err)
	}

	if refresher == nil {
		j.logger.Warn().
			Str("user_id", p.UserID).
			Msg("No view refresher registered, skipping revalidation")
		return nil
	}

	j.logger.Info().
		Str("user_id", p.UserID).
		Msg("Revalidating cached views")

	if err := refresher.RefreshViews(ctx, p.UserID); err != nil {
		j.logger.Error().
			Str("user_id", p.UserID).
			Err(err).
			Msg("Failed to revalidate cached views")
		return err
	}

	return nil
}
