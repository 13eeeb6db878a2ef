package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"
	ErrUnknownFilter  ErrCode = "UNKNOWN_FILTER"
	ErrMissingID      ErrCode = "IDENTIFIER_REQUIRED"

	// ─── Records ───────────────────────────────────────────────────────
	ErrNotFound       ErrCode = "NOT_FOUND"
	ErrStudentMissing ErrCode = "STUDENT_NOT_FOUND"
	ErrAmbiguousMatch ErrCode = "AMBIGUOUS_MATCH"
	ErrDataMissing    ErrCode = "DATA_FILE_NOT_FOUND"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrSourceUnavailable ErrCode = "SOURCE_UNAVAILABLE"
	ErrTimeout           ErrCode = "REQUEST_TIMEOUT"
	ErrInternal          ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidPayload:
		return "Invalid request payload."
	case ErrUnknownFilter:
		return "Filtering on this field is not supported."
	case ErrMissingID:
		return "An enrollment number or registration number is required."

	// ─── Records ───────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrStudentMissing:
		return "No student found. Try using enrollment number or full name."
	case ErrAmbiguousMatch:
		return "More than one student matches. Refine the identifier."
	case ErrDataMissing:
		return "No CSV data file is available."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrSourceUnavailable:
		return "Failed to fetch students. Please try again later."
	case ErrTimeout:
		return "The request was cancelled before it completed."
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
