package apperrors

import (
	"net/http"
)

// ErrNotFound - фабрика для ошибки "не найдено" (404)
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidStatus - фабрика для невалидных статусов (400)
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// --- Auth ---

// Registration conflicts answer with 400 and a field-keyed reason.
var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already exists.",
	http.StatusBadRequest,
).WithDetails(map[string]string{"email": "Email already exists."})

var ErrUsernameAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Username already exists.",
	http.StatusBadRequest,
).WithDetails(map[string]string{"username": "Username already exists."})

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"No active account found with the given credentials",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Token is invalid or expired",
	http.StatusUnauthorized,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"You do not have permission to perform this action.",
	http.StatusForbidden,
)

// ErrInvalidUserRole - операция не предусмотрена для роли пользователя
var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"business_logic",
	"Invalid user role for this operation",
	http.StatusBadRequest,
)

// --- Creators ---

var ErrCreatorNotFound = New(CodeNotFound, "creator", "Creator not found.", http.StatusNotFound)

var ErrProfileNotFound = New(CodeNotFound, "profile", "Profile not found.", http.StatusNotFound)

var ErrUserNotFound = New(CodeNotFound, "user", "User not found.", http.StatusNotFound)

var ErrInvalidApprovalStatus = New(
	CodeInvalidStatus,
	"approval",
	"Invalid data.",
	http.StatusBadRequest,
)

// --- Reviews ---

var ErrReviewFieldsRequired = New(
	CodeValidationFailed,
	"review",
	"creator_username and content are required.",
	http.StatusBadRequest,
)

var ErrInvalidStars = New(
	CodeValidationFailed,
	"review",
	"Stars must be between 1 and 5.",
	http.StatusBadRequest,
).WithDetails(map[string]string{"stars": "Stars must be between 1 and 5."})

// --- Uploads ---

var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"upload",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

var ErrInvalidFileType = New(
	CodeValidationFailed,
	"upload",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)
