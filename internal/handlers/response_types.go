package handlers

// Response wrapper types for Swagger documentation

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"Something went wrong"`
	Details string `json:"details,omitempty" example:"Validation error details"`
}

// StartSessionResponse carries the id to poll
type StartSessionResponse struct {
	SessionID string `json:"sessionId" example:"1718035200000-9f8e7d6c"`
}

// HealthResponse represents the health probe body
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
