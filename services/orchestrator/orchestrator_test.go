package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/zanegreyy/zanos/models"
	ai "github.com/zanegreyy/zanos/services/intelligence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeCompletionClient records every completion request and can be told
// to fail at a given call index.
type fakeCompletionClient struct {
	calls    []ai.CompletionRequest
	response string
	failAt   int // 1-based call index that errors; 0 means never
}

func (f *fakeCompletionClient) Complete(_ context.Context, req ai.CompletionRequest) (string, error) {
	f.calls = append(f.calls, req)
	if f.failAt > 0 && len(f.calls) == f.failAt {
		return "", errors.New("model unavailable")
	}
	return f.response, nil
}

func lisbonRequest() models.BookingRequest {
	return models.BookingRequest{
		Destination:       "Lisbon",
		CheckIn:           "2024-03-01",
		CheckOut:          "2024-03-08",
		Budget:            1000,
		Guests:            2,
		AccommodationType: "hotel",
	}
}

func stepNames(steps []models.OrchestrationStep) []string {
	names := make([]string, len(steps))
	for i, s := range steps {
		names[i] = s.Step
	}
	return names
}

func TestNew_StepListWithoutFlights(t *testing.T) {
	o := New(false, nil, zap.NewNop())

	require.Len(t, o.steps, 6)
	assert.Equal(t, []string{"search", "compare", "validate", "book", "track", "notify"}, stepNames(o.steps))
	for _, step := range o.steps {
		assert.Equal(t, models.StepPending, step.Status)
	}
}

func TestNew_StepListWithFlights(t *testing.T) {
	o := New(true, nil, zap.NewNop())

	require.Len(t, o.steps, 7)
	assert.Equal(t, []string{"search", "searchFlights", "compare", "validate", "book", "track", "notify"}, stepNames(o.steps))
}

func TestNew_WorkersAssignedToSteps(t *testing.T) {
	o := New(true, nil, zap.NewNop())

	expected := map[string]string{
		"search":        "SearchWorker",
		"searchFlights": "SearchWorker",
		"compare":       "CompareWorker",
		"validate":      "ValidateWorker",
		"book":          "BookingWorker",
		"track":         "TrackingWorker",
		"notify":        "NotificationWorker",
	}
	for _, step := range o.steps {
		assert.Equal(t, expected[step.Step], step.Worker, "step %s", step.Step)
	}
}

func TestNew_FreshIdentifierPerRun(t *testing.T) {
	a := New(false, nil, zap.NewNop())
	b := New(false, nil, zap.NewNop())

	assert.True(t, strings.HasPrefix(a.ID(), "orch_"))
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestRun_NoCredentialCompletesWithMockData(t *testing.T) {
	o := New(false, nil, zap.NewNop())

	result := o.Run(context.Background(), lisbonRequest())

	assert.Equal(t, models.RunCompleted, result.Status)
	require.Len(t, result.Steps, 6)
	for _, step := range result.Steps {
		assert.Equal(t, models.StepCompleted, step.Status, "step %s", step.Step)
		assert.Contains(t, step.Message, "completed with mock data")
		assert.NotNil(t, step.Data)
	}

	require.NotNil(t, result.FinalResult)
	bookingID, _ := result.FinalResult["bookingId"].(string)
	assert.True(t, strings.HasPrefix(bookingID, "BK"))
	assert.Equal(t, "confirmed", result.FinalResult["status"])
	assert.Equal(t, 450.0, result.FinalResult["totalAmount"])
}

func TestRun_FlightStageFeedsBooking(t *testing.T) {
	req := lisbonRequest()
	req.IncludeFlights = true
	req.FlightOrigin = "London"
	req.FlightBudget = 500

	o := New(true, nil, zap.NewNop())
	result := o.Run(context.Background(), req)

	assert.Equal(t, models.RunCompleted, result.Status)
	require.Len(t, result.Steps, 7)
	for _, step := range result.Steps {
		assert.Equal(t, models.StepCompleted, step.Status, "step %s", step.Step)
	}

	require.NotNil(t, result.FinalResult)
	assert.Equal(t, 450.0+500*0.8, result.FinalResult["totalAmount"])
	flightBooking, ok := result.FinalResult["flightBooking"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "British Airways", flightBooking["airline"])
	assert.Equal(t, "confirmed", flightBooking["bookingStatus"])
}

func TestRun_FlightStageSkippedWithoutOrigin(t *testing.T) {
	req := lisbonRequest()
	req.IncludeFlights = true

	o := New(true, nil, zap.NewNop())
	result := o.Run(context.Background(), req)

	assert.Equal(t, models.RunCompleted, result.Status)
	require.Len(t, result.Steps, 7)
	for _, step := range result.Steps {
		if step.Step == "searchFlights" {
			assert.Equal(t, models.StepPending, step.Status)
			continue
		}
		assert.Equal(t, models.StepCompleted, step.Status, "step %s", step.Step)
	}
	assert.NotContains(t, result.FinalResult, "flightBooking")
}

func TestRun_ClientFailureAbortsRun(t *testing.T) {
	client := &fakeCompletionClient{failAt: 2}
	o := New(false, client, zap.NewNop())

	result := o.Run(context.Background(), lisbonRequest())

	assert.Equal(t, models.RunFailed, result.Status)
	assert.Nil(t, result.FinalResult)
	require.Len(t, result.Steps, 6)
	assert.Equal(t, models.StepCompleted, result.Steps[0].Status)
	assert.Equal(t, models.StepFailed, result.Steps[1].Status)
	assert.Contains(t, result.Steps[1].Message, "Failed:")
	for _, step := range result.Steps[2:] {
		assert.Equal(t, models.StepPending, step.Status, "step %s", step.Step)
	}
	// Execution halts at the failing step.
	assert.Len(t, client.calls, 2)
}

func TestRun_ModelOutputOnlyReachesStepMessage(t *testing.T) {
	longText := strings.Repeat("x", 250)
	client := &fakeCompletionClient{response: longText}
	o := New(false, client, zap.NewNop())

	result := o.Run(context.Background(), lisbonRequest())

	assert.Equal(t, models.RunCompleted, result.Status)
	require.Len(t, client.calls, 6)
	for _, step := range result.Steps {
		assert.Equal(t, strings.Repeat("x", 100)+"...", step.Message)
		// Data comes from the canned generator regardless of model output.
		assert.NotNil(t, step.Data)
	}
	bookingID, _ := result.FinalResult["bookingId"].(string)
	assert.True(t, strings.HasPrefix(bookingID, "BK"))
}

func TestRun_WorkerPromptCarriesTaskAndTools(t *testing.T) {
	client := &fakeCompletionClient{response: "done"}
	o := New(false, client, zap.NewNop())

	o.Run(context.Background(), lisbonRequest())

	require.NotEmpty(t, client.calls)
	first := client.calls[0]
	assert.Equal(t, workers["SearchWorker"].Instruction, first.System)
	assert.Contains(t, first.Prompt, "search_accommodations")
	assert.Contains(t, first.Prompt, "Lisbon")
	assert.Contains(t, first.Prompt, "Available tools: search_accommodations, search_flights")

	toolNames := make([]string, len(first.Tools))
	for i, tool := range first.Tools {
		toolNames[i] = tool.Name
	}
	assert.Equal(t, []string{"search_accommodations", "search_flights"}, toolNames)
}

func TestExecuteWorker_UnknownStepIsAnError(t *testing.T) {
	o := New(false, nil, zap.NewNop())

	_, err := o.executeWorker(context.Background(), "SearchWorker", "bogus", task{Action: "search_accommodations"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}
