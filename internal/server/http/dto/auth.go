package dto

// AuthRequest describes login/password payload.
type AuthRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// HealthResponse reports service readiness.
type HealthResponse struct {
	Status string `json:"status"`
}
