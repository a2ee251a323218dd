package handler

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// Response is the success envelope as documented in swagger.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data"`
}

// ErrorResponseBody is the error envelope as documented in swagger.
type ErrorResponseBody struct {
	Success bool     `json:"success" example:"false"`
	Error   APIError `json:"error"`
}

// DuplicateErrorBody is returned with 409 when the access key was already imported.
type DuplicateErrorBody struct {
	Success bool `json:"success" example:"false"`
	Error   struct {
		Code    string           `json:"code" example:"DUPLICATE_INVOICE"`
		Message string           `json:"message" example:"invoice 3524... already imported as receiving 6f1c... (status draft)"`
		Details DuplicateDetails `json:"details"`
	} `json:"error"`
}

// UnreadableErrorBody is returned with 422 when the document yielded no access key.
type UnreadableErrorBody struct {
	Success bool `json:"success" example:"false"`
	Error   struct {
		Code    string            `json:"code" example:"UNREADABLE_DOCUMENT"`
		Message string            `json:"message" example:"the document could not be read as an NF-e"`
		Details UnreadableDetails `json:"details"`
	} `json:"error"`
}

// HealthResponse is the body of the health probes.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}
