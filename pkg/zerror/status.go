package zerror

// Status classifies a ZError independently of any transport.
type Status uint8

const (
	StatusUnknown Status = iota
	StatusBadRequest
	StatusValidationFailed
	StatusNotFound
	StatusMethodNotAllowed
	StatusConflict
	StatusUnprocessableEntity
	StatusInternalServerError
	StatusServiceUnavailable
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusBadRequest:
		return "BAD_REQUEST"
	case StatusValidationFailed:
		return "VALIDATION_FAILED"
	case StatusNotFound:
		return "NOT_FOUND"
	case StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case StatusConflict:
		return "CONFLICT"
	case StatusUnprocessableEntity:
		return "UNPROCESSABLE_ENTITY"
	case StatusInternalServerError:
		return "INTERNAL_SERVER_ERROR"
	case StatusServiceUnavailable:
		return "SERVICE_UNAVAILABLE"
	default:
		return "UNKNOWN"
	}
}
