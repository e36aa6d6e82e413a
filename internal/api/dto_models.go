package api

// MessageResponse answers create, update and delete requests.
type MessageResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// ApproveResponse answers POST /sugestoes/aprovar/:id.
type ApproveResponse struct {
	Message string `json:"message"`
	EcoID   string `json:"eco_id"`
}

// StatusMessage is a body carrying only a message.
type StatusMessage struct {
	Message string `json:"message"`
}

// HealthResponse answers GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
