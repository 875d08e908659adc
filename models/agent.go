package models

// AgentRequest is the body of a travel-advice chat request.
type AgentRequest struct {
	Message string `json:"message"`
}

// TravelCategory is the classifier output used to route a query to a
// specialist agent.
type TravelCategory struct {
	Category  string `json:"category"`
	Reasoning string `json:"reasoning"`
}

// AgentResponse is the structured reply from a specialist agent.
type AgentResponse struct {
	AgentName string `json:"agent_name"`
	Response  string `json:"response"`
	Category  string `json:"category"`
}
