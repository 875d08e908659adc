package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/zanegreyy/zanos/models"
	ai "github.com/zanegreyy/zanos/services/intelligence"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// task is the payload handed to a worker for one step: the tool action it
// should perform and that action's parameters.
type task struct {
	Action string         `json:"action"`
	Params map[string]any `json:"params"`
}

// runState accumulates the stage outputs that later stages consume.
type runState struct {
	req      models.BookingRequest
	search   map[string]any
	flights  map[string]any
	compare  map[string]any
	validate map[string]any
	booking  map[string]any
}

// stage describes one pipeline step as data: its step name, the worker it
// delegates to, a builder producing the task from accumulated state, and a
// sink storing the step result back into that state. The builder's second
// return reports whether the stage should run at all.
type stage struct {
	step   string
	worker string
	build  func(s *runState) (task, bool)
	sink   func(s *runState, result map[string]any)
}

// BookingOrchestrator runs the fixed accommodation-booking pipeline. Each
// HTTP request gets its own instance; nothing is shared across runs.
type BookingOrchestrator struct {
	id     string
	steps  []models.OrchestrationStep
	stages []stage
	client ai.CompletionClient
	logger *zap.Logger
}

// New builds an orchestrator with the fixed ordered step list. A nil
// client means no model credential is configured and every worker answers
// with canned data.
func New(includeFlights bool, client ai.CompletionClient, logger *zap.Logger) *BookingOrchestrator {
	o := &BookingOrchestrator{
		id:     newOrchestrationID(),
		client: client,
		logger: logger,
	}

	o.stages = []stage{
		{
			step:   "search",
			worker: "SearchWorker",
			build: func(s *runState) (task, bool) {
				return task{Action: "search_accommodations", Params: toParamMap(s.req)}, true
			},
			sink: func(s *runState, result map[string]any) { s.search = result },
		},
		{
			step:   "compare",
			worker: "CompareWorker",
			build: func(s *runState) (task, bool) {
				accommodations, _ := s.search["accommodations"].([]any)
				if accommodations == nil {
					accommodations = []any{}
				}
				return task{Action: "compare_options", Params: map[string]any{
					"accommodations": accommodations,
					"criteria":       []any{"price", "location", "amenities", "reviews"},
				}}, true
			},
			sink: func(s *runState, result map[string]any) { s.compare = result },
		},
		{
			step:   "validate",
			worker: "ValidateWorker",
			build: func(s *runState) (task, bool) {
				recommendedID := "hotel_001"
				if rec, ok := s.compare["recommended"].(map[string]any); ok {
					if id, ok := rec["id"].(string); ok && id != "" {
						recommendedID = id
					}
				}
				return task{Action: "validate_booking", Params: map[string]any{
					"accommodationId": recommendedID,
					"dates":           map[string]any{"checkIn": s.req.CheckIn, "checkOut": s.req.CheckOut},
					"guests":          s.req.Guests,
				}}, true
			},
			sink: func(s *runState, result map[string]any) { s.validate = result },
		},
		{
			step:   "book",
			worker: "BookingWorker",
			build: func(s *runState) (task, bool) {
				accommodationID := "hotel_001"
				if id, ok := s.validate["accommodationId"].(string); ok && id != "" {
					accommodationID = id
				}
				params := map[string]any{
					"accommodationId": accommodationID,
					"guestDetails":    map[string]any{"guests": s.req.Guests, "destination": s.req.Destination},
					"paymentInfo":     map[string]any{"budget": s.req.Budget},
				}
				if s.flights != nil {
					var selected any
					if flights, ok := s.flights["flights"].([]any); ok && len(flights) > 0 {
						selected = flights[0]
					}
					params["flightBooking"] = map[string]any{
						"selectedFlight": selected,
						"budget":         s.req.FlightBudget,
					}
				}
				return task{Action: "create_booking", Params: params}, true
			},
			sink: func(s *runState, result map[string]any) { s.booking = result },
		},
		{
			step:   "track",
			worker: "TrackingWorker",
			build: func(s *runState) (task, bool) {
				bookingID := "booking_001"
				if id, ok := s.booking["bookingId"].(string); ok && id != "" {
					bookingID = id
				}
				return task{Action: "track_booking", Params: map[string]any{"bookingId": bookingID}}, true
			},
			sink: func(s *runState, result map[string]any) {},
		},
		{
			step:   "notify",
			worker: "NotificationWorker",
			build: func(s *runState) (task, bool) {
				content := s.booking
				if content == nil {
					content = map[string]any{}
				}
				return task{Action: "send_notification", Params: map[string]any{
					"type":      "booking_confirmation",
					"recipient": "user@example.com",
					"content":   content,
				}}, true
			},
			sink: func(s *runState, result map[string]any) {},
		},
	}

	if includeFlights {
		flightStage := stage{
			step:   "searchFlights",
			worker: "SearchWorker",
			build: func(s *runState) (task, bool) {
				if s.req.FlightOrigin == "" {
					return task{}, false
				}
				cabinClass := s.req.FlightClass
				if cabinClass == "" {
					cabinClass = "economy"
				}
				return task{Action: "search_flights", Params: map[string]any{
					"origin":        s.req.FlightOrigin,
					"destination":   s.req.Destination,
					"departureDate": s.req.CheckIn,
					"returnDate":    s.req.CheckOut,
					"passengers":    map[string]any{"adults": s.req.Guests, "children": 0, "infants": 0},
					"cabinClass":    cabinClass,
					"budget":        s.req.FlightBudget,
				}}, true
			},
			sink: func(s *runState, result map[string]any) { s.flights = result },
		}
		o.stages = append(o.stages[:1], append([]stage{flightStage}, o.stages[1:]...)...)
	}

	o.steps = make([]models.OrchestrationStep, len(o.stages))
	for i, st := range o.stages {
		o.steps[i] = models.OrchestrationStep{Step: st.step, Worker: st.worker, Status: models.StepPending}
	}
	return o
}

// ID returns the run identifier. It is display-only; runs are never
// persisted or looked up again.
func (o *BookingOrchestrator) ID() string {
	return o.id
}

// Run executes the pipeline stages in strict sequence, each stage feeding
// its successors. The first stage error aborts the run and the partially
// updated step list is returned with status failed.
func (o *BookingOrchestrator) Run(ctx context.Context, req models.BookingRequest) models.RunResult {
	state := &runState{req: req}

	for _, st := range o.stages {
		t, ok := st.build(state)
		if !ok {
			continue
		}
		result, err := o.executeWorker(ctx, st.worker, st.step, t)
		if err != nil {
			o.logger.Error("orchestration failed",
				zap.String("orchestrationId", o.id),
				zap.String("step", st.step),
				zap.Error(err))
			return models.RunResult{
				OrchestrationID: o.id,
				Steps:           o.steps,
				Status:          models.RunFailed,
			}
		}
		st.sink(state, result)
	}

	return models.RunResult{
		OrchestrationID: o.id,
		Steps:           o.steps,
		FinalResult:     state.booking,
		Status:          models.RunCompleted,
	}
}

// executeWorker runs one step through its assigned worker. The model call,
// when a client is configured, only contributes a short preview string to
// the step message; the canned generator remains the authoritative data
// source for downstream stages.
func (o *BookingOrchestrator) executeWorker(ctx context.Context, workerName, stepName string, t task) (map[string]any, error) {
	idx := o.findStep(stepName)
	if idx == -1 {
		// The step list is fixed at construction, so a miss can only be an
		// internal wiring mistake.
		return nil, fmt.Errorf("no step named %q in pipeline", stepName)
	}

	o.steps[idx].Status = models.StepRunning
	o.steps[idx].Message = fmt.Sprintf("Executing %s...", workerName)

	worker, ok := workers[workerName]
	if !ok {
		o.steps[idx].Status = models.StepFailed
		o.steps[idx].Message = fmt.Sprintf("Failed: unknown worker %q", workerName)
		return nil, fmt.Errorf("unknown worker %q", workerName)
	}
	availableTools := toolsFor(worker)

	if o.client == nil {
		o.logger.Warn("model credential not configured, using mock data",
			zap.String("worker", workerName), zap.String("step", stepName))
		mockResults := generateMockResults(t.Action, t.Params)
		o.steps[idx].Status = models.StepCompleted
		o.steps[idx].Message = fmt.Sprintf("%s completed with mock data", workerName)
		o.steps[idx].Data = mockResults
		return mockResults, nil
	}

	prompt := buildWorkerPrompt(worker, t, availableTools)
	completion, err := o.client.Complete(ctx, ai.CompletionRequest{
		System:      worker.Instruction,
		Prompt:      prompt,
		Tools:       availableTools,
		MaxTokens:   1000,
		Temperature: 0.3,
	})
	if err != nil {
		o.steps[idx].Status = models.StepFailed
		o.steps[idx].Message = fmt.Sprintf("Failed: %v", err)
		return nil, fmt.Errorf("worker %s failed: %w", workerName, err)
	}

	// The model output is decorative: a preview reaches the step message
	// while the canned generator supplies the data downstream stages see.
	mockResults := generateMockResults(t.Action, t.Params)
	o.steps[idx].Status = models.StepCompleted
	o.steps[idx].Message = previewMessage(completion, workerName)
	o.steps[idx].Data = mockResults
	return mockResults, nil
}

func (o *BookingOrchestrator) findStep(name string) int {
	for i := range o.steps {
		if o.steps[i].Step == name {
			return i
		}
	}
	return -1
}

func buildWorkerPrompt(w Worker, t task, tools []ai.Tool) string {
	taskJSON, _ := json.MarshalIndent(t, "", "  ")
	names := make([]string, len(tools))
	for i, tool := range tools {
		names[i] = tool.Name
	}
	return fmt.Sprintf(`%s

You need to execute the following task:
%s

Available tools: %s

Please execute the appropriate tool and provide a comprehensive result.`,
		w.Instruction, taskJSON, strings.Join(names, ", "))
}

func previewMessage(completion, workerName string) string {
	if completion == "" {
		return fmt.Sprintf("%s completed successfully", workerName)
	}
	if len(completion) > 100 {
		completion = completion[:100]
	}
	return completion + "..."
}

func newOrchestrationID() string {
	token := strings.ReplaceAll(uuid.New().String(), "-", "")[:9]
	return fmt.Sprintf("orch_%d_%s", time.Now().UnixMilli(), token)
}

// toParamMap converts a struct into the generic parameter map workers
// operate on, going through JSON so field names match the wire format.
func toParamMap(v any) map[string]any {
	data, err := json.Marshal(v)
	if err != nil {
		return map[string]any{}
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return map[string]any{}
	}
	return m
}
