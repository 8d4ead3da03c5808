package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"mindmate-backend/internal/models"
)

const systemPrompt = "You are MindMate, an AI-powered mental wellness companion. Your purpose is to provide a secure, empathetic, and supportive environment for users to track their mood, practice mindfulness, and build healthier habits. Your responses should be encouraging, non-judgmental, and focused on helping users improve their mental well-being. You can provide information, suggest activities, and offer a listening ear. Do not provide medical advice, but you can suggest seeking professional help if a user seems to be in distress. Keep your responses concise and easy to understand."

// GeminiGenerator is the remote response generator. The API key is read from
// server config only; it must never reach a client.
type GeminiGenerator struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiGenerator(ctx context.Context, apiKey string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-2.5-flash")
	model.SetTemperature(0.3)
	model.SetTopP(0.95)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Name() string { return "gemini" }

func (g *GeminiGenerator) Close() {
	g.client.Close()
}

// Generate sends the context window as a chat history and returns the reply.
// Single attempt; the caller decides what to do with a failure.
func (g *GeminiGenerator) Generate(ctx context.Context, turns []models.ChatTurn) (string, error) {
	if len(turns) == 0 {
		return "", fmt.Errorf("empty conversation context")
	}

	contents := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		// The API accepts exactly "user" and "model"; anything else is
		// normalized to "model" before transmission.
		role := "model"
		if t.Role == models.RoleUser {
			role = "user"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(t.Content)},
		})
	}

	last := contents[len(contents)-1]
	session := g.model.StartChat()
	session.History = contents[:len(contents)-1]

	resp, err := session.SendMessage(ctx, last.Parts...)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	reply := extractText(resp)
	if reply == "" {
		return "", fmt.Errorf("Gemini returned an empty response")
	}
	return reply, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	return strings.TrimSpace(sb.String())
}
