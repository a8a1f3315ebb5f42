package dto

// ErrorResponse is the body of every failed request. Details carries the
// offending identifiers and states so clients can build their own messages.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
