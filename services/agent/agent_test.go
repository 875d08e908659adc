package agent

import (
	"context"
	"errors"
	"testing"

	ai "github.com/zanegreyy/zanos/services/intelligence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// scriptedClient answers each completion call with the next scripted
// reply, recording requests for inspection.
type scriptedClient struct {
	replies []reply
	calls   []ai.CompletionRequest
}

type reply struct {
	text string
	err  error
}

func (c *scriptedClient) Complete(_ context.Context, req ai.CompletionRequest) (string, error) {
	c.calls = append(c.calls, req)
	if len(c.replies) == 0 {
		return "", errors.New("no scripted reply")
	}
	r := c.replies[0]
	c.replies = c.replies[1:]
	return r.text, r.err
}

func TestHandle_RoutesToClassifiedSpecialist(t *testing.T) {
	client := &scriptedClient{replies: []reply{
		{text: `{"category": "transport", "reasoning": "asks about trains"}`},
		{text: "Take the Alfa Pendular from Porto to Lisbon."},
	}}
	svc := NewService(client, zap.NewNop())

	resp, err := svc.Handle(context.Background(), "How do I get from Porto to Lisbon?")

	require.NoError(t, err)
	assert.Equal(t, "transport", resp.Category)
	assert.Equal(t, "Transport Agent", resp.AgentName)
	assert.Equal(t, "Take the Alfa Pendular from Porto to Lisbon.", resp.Response)

	require.Len(t, client.calls, 2)
	assert.Empty(t, client.calls[0].System)
	assert.Contains(t, client.calls[0].Prompt, "How do I get from Porto to Lisbon?")
	assert.Equal(t, specialists["transport"].SystemPrompt, client.calls[1].System)
	assert.Equal(t, "How do I get from Porto to Lisbon?", client.calls[1].Prompt)
}

func TestHandle_FencedClassifierJSONIsAccepted(t *testing.T) {
	client := &scriptedClient{replies: []reply{
		{text: "```json\n{\"category\": \"dining\", \"reasoning\": \"asks about food\"}\n```"},
		{text: "Try the tascas around Alfama."},
	}}
	svc := NewService(client, zap.NewNop())

	resp, err := svc.Handle(context.Background(), "Where should I eat in Lisbon?")

	require.NoError(t, err)
	assert.Equal(t, "dining", resp.Category)
	assert.Equal(t, "Dining Agent", resp.AgentName)
}

func TestHandle_ClassifierGarbageFallsBackToInformation(t *testing.T) {
	client := &scriptedClient{replies: []reply{
		{text: "I think this is about transport, probably."},
		{text: "You will need a Schengen visa."},
	}}
	svc := NewService(client, zap.NewNop())

	resp, err := svc.Handle(context.Background(), "Do I need a visa for Portugal?")

	require.NoError(t, err)
	assert.Equal(t, DefaultCategory, resp.Category)
	assert.Equal(t, "Digital Travel Agent", resp.AgentName)
}

func TestHandle_UnknownCategoryFallsBackToInformation(t *testing.T) {
	client := &scriptedClient{replies: []reply{
		{text: `{"category": "weather", "reasoning": "asks about climate"}`},
		{text: "Winters in Lisbon are mild."},
	}}
	svc := NewService(client, zap.NewNop())

	resp, err := svc.Handle(context.Background(), "What's the weather like in Lisbon?")

	require.NoError(t, err)
	assert.Equal(t, DefaultCategory, resp.Category)
}

func TestHandle_ClassifierErrorStillAnswers(t *testing.T) {
	client := &scriptedClient{replies: []reply{
		{err: errors.New("model overloaded")},
		{text: "Portugal's NHR regime changed in 2024."},
	}}
	svc := NewService(client, zap.NewNop())

	resp, err := svc.Handle(context.Background(), "How does tax residency work in Portugal?")

	require.NoError(t, err)
	assert.Equal(t, DefaultCategory, resp.Category)
	assert.Equal(t, "Portugal's NHR regime changed in 2024.", resp.Response)
}

func TestHandle_SpecialistErrorFailsRequest(t *testing.T) {
	client := &scriptedClient{replies: []reply{
		{text: `{"category": "information", "reasoning": "visa question"}`},
		{err: errors.New("model overloaded")},
	}}
	svc := NewService(client, zap.NewNop())

	resp, err := svc.Handle(context.Background(), "Do I need a visa?")

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "Digital Travel Agent")
}

func TestHandle_EmptySpecialistResponseGetsApology(t *testing.T) {
	client := &scriptedClient{replies: []reply{
		{text: `{"category": "dining", "reasoning": "food"}`},
		{text: ""},
	}}
	svc := NewService(client, zap.NewNop())

	resp, err := svc.Handle(context.Background(), "Vegan options in Chiang Mai?")

	require.NoError(t, err)
	assert.Equal(t, "I apologize, but I couldn't generate a response.", resp.Response)
}

func TestHandle_NilClientFails(t *testing.T) {
	svc := NewService(nil, zap.NewNop())

	resp, err := svc.Handle(context.Background(), "Do I need a visa?")

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "not configured")
}

func TestStripCodeFences(t *testing.T) {
	cases := map[string]string{
		"{\"a\":1}":                      "{\"a\":1}",
		"```json\n{\"a\":1}\n```":        "{\"a\":1}",
		"```\n{\"a\":1}\n```":            "{\"a\":1}",
		"  \n```json\n{\"a\":1}\n```\n ": "{\"a\":1}",
	}
	for in, want := range cases {
		assert.Equal(t, want, stripCodeFences(in), "input %q", in)
	}
}
