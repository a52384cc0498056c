package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound       ErrCode = "NOT_FOUND"
	ErrResultNotFound ErrCode = "RESULT_NOT_FOUND"

	// ─── Test window ───────────────────────────────────────────────────
	ErrTestNotStarted ErrCode = "TEST_NOT_STARTED"
	ErrTestFinished   ErrCode = "TEST_FINISHED"
	ErrNoQuestions    ErrCode = "NO_QUESTIONS"

	// ─── Attempts ──────────────────────────────────────────────────────
	ErrAttemptNotFound  ErrCode = "ATTEMPT_NOT_FOUND"
	ErrAttemptSubmitted ErrCode = "ATTEMPT_SUBMITTED"
	ErrAttemptMismatch  ErrCode = "ATTEMPT_MISMATCH"
	ErrInvalidSection   ErrCode = "INVALID_SECTION"

	// ─── Tokens ────────────────────────────────────────────────────────
	ErrTokenRequired ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid  ErrCode = "TOKEN_INVALID"
	ErrTokenExpired  ErrCode = "TOKEN_EXPIRED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrResultNotFound:
		return "We couldn't find the results for this test."

	// ─── Test window ───────────────────────────────────────────────────
	case ErrTestNotStarted:
		return "This test has not started yet."
	case ErrTestFinished:
		return "This test is already over."
	case ErrNoQuestions:
		return "No questions could be read from the input. Nothing was created."

	// ─── Attempts ──────────────────────────────────────────────────────
	case ErrAttemptNotFound:
		return "No active attempt with this ID."
	case ErrAttemptSubmitted:
		return "This attempt has already been submitted."
	case ErrAttemptMismatch:
		return "The token does not grant access to this attempt."
	case ErrInvalidSection:
		return "Unknown section name."

	// ─── Tokens ────────────────────────────────────────────────────────
	case ErrTokenRequired:
		return "An attempt token is required."
	case ErrTokenInvalid:
		return "The attempt token is not valid."
	case ErrTokenExpired:
		return "The attempt token has expired."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
