package models

// BookingRequest is the input for one orchestration run. It is supplied
// once per invocation and never mutated during the run.
type BookingRequest struct {
	Destination       string  `json:"destination"`
	CheckIn           string  `json:"checkIn"`
	CheckOut          string  `json:"checkOut"`
	Budget            float64 `json:"budget"`
	Guests            int     `json:"guests"`
	AccommodationType string  `json:"accommodationType"`
	IncludeFlights    bool    `json:"includeFlights,omitempty"`
	FlightOrigin      string  `json:"flightOrigin,omitempty"`
	FlightBudget      float64 `json:"flightBudget,omitempty"`
	FlightClass       string  `json:"flightClass,omitempty"`
}

// StepStatus tracks the lifecycle of a single pipeline step. Transitions
// are monotonic: pending -> running -> completed or failed.
type StepStatus string

const (
	StepPending   StepStatus = "pending"
	StepRunning   StepStatus = "running"
	StepCompleted StepStatus = "completed"
	StepFailed    StepStatus = "failed"
)

// RunStatus is the terminal status of a whole orchestration run.
type RunStatus string

const (
	RunProcessing RunStatus = "processing"
	RunCompleted  RunStatus = "completed"
	RunFailed     RunStatus = "failed"
)

// OrchestrationStep is one stage of the fixed booking pipeline. Status,
// message and data are the only fields mutated after construction.
type OrchestrationStep struct {
	Step    string         `json:"step"`
	Worker  string         `json:"worker"`
	Status  StepStatus     `json:"status"`
	Message string         `json:"message,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

// RunResult is returned to the caller when a run finishes, whether it
// completed or aborted partway.
type RunResult struct {
	OrchestrationID string              `json:"orchestrationId"`
	Steps           []OrchestrationStep `json:"steps"`
	FinalResult     map[string]any      `json:"finalResult,omitempty"`
	Status          RunStatus           `json:"status"`
}
