package httpresp

// ErrAIService is the generic 5xx body; upstream detail stays in server logs.
const ErrAIService = "An error occurred in the AI service."

type ErrorResponse struct {
	Error string `json:"error"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

func NewOKResponse() OKResponse {
	return OKResponse{OK: true}
}

func NewHealthResponse(status, service string) HealthResponse {
	return HealthResponse{Status: status, Service: service}
}
