package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskWelcome is the task type for the first-sign-in welcome email.
	TaskWelcome = "email:welcome"

	// TaskViewRevalidate is the task type that recomputes a user's
	// cached dashboard views after a record mutation.
	TaskViewRevalidate = "views:revalidate"
)

// WelcomeEmailPayload is the serialized payload for TaskWelcome.
type WelcomeEmailPayload struct {
	To        string `json:"to"`
	FirstName string `json:"first_name"`
}

// ViewRevalidatePayload is the serialized payload for TaskViewRevalidate.
type ViewRevalidatePayload struct {
	UserID string `json:"user_id"`
}

// NewWelcomeEmailTask constructs the welcome email task: three retries,
// default queue, 30 second timeout.
func NewWelcomeEmailTask(to, firstName string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{
		To:        to,
		FirstName: firstName,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// NewViewRevalidateTask constructs a view revalidation task. Stale views
// expire on their own, so this runs on the low-priority queue with a
// single retry.
func NewViewRevalidateTask(userID string) (*asynq.Task, error) {
	payload, err := json.Marshal(ViewRevalidatePayload{UserID: userID})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskViewRevalidate,
		payload,
		asynq.MaxRetry(1),
		asynq.Queue("low"),
		asynq.Timeout(15*time.Second),
	), nil
}
