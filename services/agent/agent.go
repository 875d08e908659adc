package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/zanegreyy/zanos/models"
	ai "github.com/zanegreyy/zanos/services/intelligence"

	"go.uber.org/zap"
)

// DefaultCategory is used whenever classification cannot produce a usable
// answer; a bad classifier response must not fail the request.
const DefaultCategory = "information"

// specialist is a named advisory role with its own system prompt.
type specialist struct {
	Name         string
	SystemPrompt string
}

var specialists = map[string]specialist{
	"information": {
		Name: "Digital Travel Agent",
		SystemPrompt: `You are a specialist in visa, tax, and in-country government regulations for digital nomad travelers.
You provide help with visas, tax, and regulations guidance to digital nomad travelers.
Seek further information from user if unsure, and keep answers concise and helpful.
Focus on practical, actionable advice for remote workers and digital nomads.`,
	},
	"transport": {
		Name: "Transport Agent",
		SystemPrompt: `You are a specialist in arranging accommodation and travel.
You provide help with travel arrangements including searching flights/trains, checking accommodation availability,
helping to share alternate routes and hidden gems within a destination.
Keep your answers concise but comprehensive. Focus on practical travel solutions.`,
	},
	"dining": {
		Name: "Dining Agent",
		SystemPrompt: `You are a specialist in food availability in different regions of the world.
You provide help with eating options while traveling. You take into account the dietary preferences
of the traveler, and suggest suitable options based on price feedback from the user.
Keep responses practical and budget-conscious.`,
	},
}

// Service routes travel questions through a two-stage pipeline: classify
// the query into a category, then answer it with the matching specialist.
// No state is retained between requests.
type Service struct {
	client ai.CompletionClient
	logger *zap.Logger
}

func NewService(client ai.CompletionClient, logger *zap.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// Handle answers one travel query.
func (s *Service) Handle(ctx context.Context, message string) (*models.AgentResponse, error) {
	classification := s.classify(ctx, message)

	response, err := s.runSpecialist(ctx, classification.Category, message)
	if err != nil {
		return nil, err
	}

	return &models.AgentResponse{
		AgentName: specialists[classification.Category].Name,
		Response:  response,
		Category:  classification.Category,
	}, nil
}

// classify asks the model to bucket the query. Any failure, including an
// unparseable or unknown answer, falls back to the default category.
func (s *Service) classify(ctx context.Context, message string) models.TravelCategory {
	fallback := models.TravelCategory{
		Category:  DefaultCategory,
		Reasoning: "Failed to classify, defaulting to information category",
	}
	if s.client == nil {
		return fallback
	}

	prompt := fmt.Sprintf(`You are a classifier. Based on the user's travel question, classify it into one of the following:
- "information": if it's about visas, taxes, or in-country regulations.
- "transport": if it's about travel, accommodation, routes, or how to get around.
- "dining": if it's about food, dietary restrictions, or restaurants.

User query: %q

Respond in JSON format with:
{
  "category": "information|transport|dining",
  "reasoning": "explain your classification decision"
}`, message)

	result, err := s.client.Complete(ctx, ai.CompletionRequest{
		Prompt:      prompt,
		MaxTokens:   1024,
		Temperature: 0.1,
	})
	if err != nil {
		s.logger.Error("classification error", zap.Error(err))
		return fallback
	}

	var classification models.TravelCategory
	if err := json.Unmarshal([]byte(stripCodeFences(result)), &classification); err != nil {
		s.logger.Error("classification parse error", zap.Error(err), zap.String("raw", result))
		return fallback
	}
	if _, ok := specialists[classification.Category]; !ok {
		s.logger.Warn("classifier returned unknown category", zap.String("category", classification.Category))
		return fallback
	}
	return classification
}

func (s *Service) runSpecialist(ctx context.Context, category, message string) (string, error) {
	sp, ok := specialists[category]
	if !ok {
		return "", fmt.Errorf("unknown agent category: %s", category)
	}
	if s.client == nil {
		return "", fmt.Errorf("completion client not configured")
	}

	response, err := s.client.Complete(ctx, ai.CompletionRequest{
		System:      sp.SystemPrompt,
		Prompt:      message,
		MaxTokens:   500,
		Temperature: 0.7,
	})
	if err != nil {
		s.logger.Error("specialist agent error", zap.String("agent", sp.Name), zap.Error(err))
		return "", fmt.Errorf("failed to get response from %s: %w", sp.Name, err)
	}
	if response == "" {
		return "I apologize, but I couldn't generate a response.", nil
	}
	return response, nil
}

// stripCodeFences removes a surrounding markdown code fence, which the
// model sometimes wraps JSON answers in.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
