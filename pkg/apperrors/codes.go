package apperrors

// Error codes grouped by domain.
const (
	// Authentication / authorization
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"

	// Validation
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Resources
	CodeUserNotFound         ErrorCode = "USER_NOT_FOUND"
	CodeCandidateNotFound    ErrorCode = "CANDIDATE_NOT_FOUND"
	CodeNoteNotFound         ErrorCode = "NOTE_NOT_FOUND"
	CodeNotificationNotFound ErrorCode = "NOTIFICATION_NOT_FOUND"

	// Business logic
	CodeEmailAlreadyExists    ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeUsernameAlreadyExists ErrorCode = "USERNAME_ALREADY_EXISTS"
	CodeUserAlreadyExists     ErrorCode = "USER_ALREADY_EXISTS"
	CodeEmptyNoteContent      ErrorCode = "EMPTY_NOTE_CONTENT"

	// System
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
)
