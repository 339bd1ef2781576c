package ginext

// ErrorResponse is the JSON body returned for failed requests
type ErrorResponse struct {
	Message *string `json:"message,omitempty"`
}

// InfoResponse is the JSON body returned for informational messages
type InfoResponse struct {
	Message *string `json:"message,omitempty"`
}
