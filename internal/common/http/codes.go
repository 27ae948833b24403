package http

const (
	CodeInvalidJSON      = "INVALID_JSON"
	CodeValidationError  = "VALIDATION_ERROR"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeRouteNotFound    = "ROUTE_NOT_FOUND"
	CodeRequestTooLarge  = "REQUEST_TOO_LARGE"
	CodeRateLimited      = "RATE_LIMITED"
	CodeInvalidTodoID    = "INVALID_TODO_ID"
	CodeInternalError    = "INTERNAL_ERROR"
)
