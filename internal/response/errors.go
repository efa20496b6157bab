package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrEmailTaken         ErrCode = "EMAIL_TAKEN"
	ErrAccountDisabled    ErrCode = "ACCOUNT_DISABLED"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden       ErrCode = "FORBIDDEN"
	ErrAdminAccessOnly ErrCode = "ADMIN_ACCESS_ONLY"
	ErrApprovalPending ErrCode = "APPROVAL_PENDING"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation      ErrCode = "VALIDATION_ERROR"
	ErrInvalidID       ErrCode = "INVALID_ID"
	ErrInvalidPayload  ErrCode = "INVALID_PAYLOAD"
	ErrTooFewOptions   ErrCode = "TOO_FEW_OPTIONS"
	ErrNoCorrectOption ErrCode = "NO_CORRECT_OPTION"
	ErrNoQuestions     ErrCode = "NO_QUESTIONS"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Test-taking ───────────────────────────────────────────────────
	ErrTestNotAvailable     ErrCode = "TEST_NOT_AVAILABLE"
	ErrTestInProgress       ErrCode = "TEST_IN_PROGRESS"
	ErrTestAlreadyCompleted ErrCode = "TEST_ALREADY_COMPLETED"
	ErrQuestionNotInTest    ErrCode = "QUESTION_NOT_IN_TEST"
	ErrResultNotReady       ErrCode = "RESULT_NOT_READY"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Email or password is incorrect."
	case ErrEmailTaken:
		return "An account with this email already exists."
	case ErrAccountDisabled:
		return "This account has been deactivated."
	case ErrSessionInvalidated:
		return "Your session has ended. Please log in again."
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrAdminAccessOnly:
		return "This resource is restricted to administrators."
	case ErrApprovalPending:
		return "Your account is awaiting administrator approval."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "The ID format is invalid."
	case ErrInvalidPayload:
		return "The request payload is invalid."
	case ErrTooFewOptions:
		return "A question requires at least two options."
	case ErrNoCorrectOption:
		return "At least one correct answer is required."
	case ErrNoQuestions:
		return "A test module requires at least one question."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "The requested resource was not found."
	case ErrConflict:
		return "The resource already exists."

	// ─── Test-taking ───────────────────────────────────────────────────
	case ErrTestNotAvailable:
		return "This test is not available."
	case ErrTestInProgress:
		return "This test is already in progress."
	case ErrTestAlreadyCompleted:
		return "This test has already been completed."
	case ErrQuestionNotInTest:
		return "The question does not belong to this test."
	case ErrResultNotReady:
		return "The test has not been submitted yet."

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
