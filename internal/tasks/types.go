package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task type names
const (
	TypeWelcomeEmail = "email:welcome"
)

// WelcomeEmailPayload contains the data for a welcome email task
type WelcomeEmailPayload struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
}

func NewWelcomeEmailTask(payload WelcomeEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeWelcomeEmail, data), nil
}
