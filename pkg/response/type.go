package response

// Resp is the JSON envelope of every API response.
// ErrorCode is 0 on success and the HTTP status (or CodeBadRequest) on failure.
type Resp struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Errors    any    `json:"errors,omitempty"`
}

const (
	CodeSuccess    = 0
	CodeBadRequest = 1

	MessageSuccess         = "Success"
	MessageUnauthorized    = "Unauthorized"
	MessageTooManyRequests = "Too many requests"
	DefaultErrorMessage    = "Something went wrong"
)
