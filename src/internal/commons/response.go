package commons

// ErrorCode is a stable, machine-readable reason attached to failed responses.
type ErrorCode string

const (
	CodeMethodNotAllowed   ErrorCode = "METHOD_NOT_ALLOWED"
	CodeInvalidRequest     ErrorCode = "INVALID_REQUEST"
	CodeInvalidPin         ErrorCode = "INVALID_PIN"
	CodeNotFound           ErrorCode = "NOT_FOUND"
	CodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	CodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	CodeTransactionFailed  ErrorCode = "TRANSACTION_FAILED"
)

// Response is the envelope for every teller and account service reply. Code is only
// set when Success is false.
type Response[T any] struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Code    ErrorCode `json:"code,omitempty"`
	Data    *T        `json:"data,omitempty"`
	Errors  []string  `json:"errors,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    &data,
	}
}

func ErrorResponse[T any](code ErrorCode, message string, errors ...string) Response[T] {
	return Response[T]{
		Success: false,
		Message: message,
		Code:    code,
		Errors:  errors,
	}
}
