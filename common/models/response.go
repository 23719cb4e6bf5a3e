package models

// ErrorResponse is returned for every failed request
type ErrorResponse struct {
	Error string `json:"error"`
	Msg   string `json:"message"`
}

// StatusResponse is returned by the liveness endpoints
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Service string `json:"service,omitempty"`
}
