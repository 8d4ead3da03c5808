package services

import (
	"context"
	"fmt"

	"mindmate-backend/internal/models"
)

// EchoGenerator is the local deterministic fallback used when no Gemini
// credential is configured. Its Name makes it distinguishable from the real
// assistant in responses and logs.
type EchoGenerator struct{}

func NewEchoGenerator() *EchoGenerator { return &EchoGenerator{} }

func (e *EchoGenerator) Name() string { return "local-echo" }

func (e *EchoGenerator) Generate(_ context.Context, turns []models.ChatTurn) (string, error) {
	var lastUser string
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == models.RoleUser {
			lastUser = turns[i].Content
			break
		}
	}
	if lastUser == "" {
		return "", fmt.Errorf("no user turn in conversation context")
	}
	return fmt.Sprintf("I hear you: %q — I'm here to listen. Tell me more or ask for an activity to try.", lastUser), nil
}
