package response

// ErrCode is a typed error code enum for consistent error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidPayload:
		return "The request could not be read."
	case ErrNotFound:
		return "The requested page does not exist."
	case ErrInternal:
		return "Something went wrong on our side."
	default:
		return "An unexpected error occurred."
	}
}

// StatusMessage returns the short title shown on the error page.
func StatusMessage(code ErrCode) string {
	switch code {
	case ErrNotFound:
		return "Not found"
	case ErrInvalidPayload, ErrValidation:
		return "Bad request"
	default:
		return "Error"
	}
}
