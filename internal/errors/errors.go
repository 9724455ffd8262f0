package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountDeactivated is returned when a deactivated admin tries to log in.
	ErrAccountDeactivated = errors.New("account is deactivated")
	// ErrNotAuthorized is returned when the caller lacks the required role.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrProductExists is returned when a product name is already taken.
	ErrProductExists = errors.New("product already exists")
	// ErrOfferFieldsRequired is returned when a special offer is set without price or expiry.
	ErrOfferFieldsRequired = errors.New("offer price and valid until date are required")

	// ErrAdminNotFound is returned when an admin account is not found.
	ErrAdminNotFound = errors.New("admin not found")
	// ErrAdminExists is returned when an admin email is already registered.
	ErrAdminExists = errors.New("admin already exists")
	// ErrEmailInUse is returned when an email change collides with another admin.
	ErrEmailInUse = errors.New("email is already in use")
	// ErrCurrentPasswordIncorrect is returned when a password change fails verification.
	ErrCurrentPasswordIncorrect = errors.New("current password is incorrect")
	// ErrSelfDelete is returned when an admin tries to delete their own account.
	ErrSelfDelete = errors.New("you cannot delete your own account")
	// ErrSelfDeactivate is returned when an admin tries to deactivate their own account.
	ErrSelfDeactivate = errors.New("you cannot deactivate your own account")
	// ErrLastSuperadmin is returned when an operation would leave no active superadmin.
	ErrLastSuperadmin = errors.New("cannot remove the last active superadmin")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Statuses follow the
// original API: duplicates and bad credentials are 400, deactivated accounts
// and role failures 403, unknown ids 404.
func MapErrorToHTTP(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrAccountDeactivated):
		return NewHTTPError(http.StatusForbidden, err.Error(), "ACCOUNT_DEACTIVATED")
	case errors.Is(err, ErrNotAuthorized):
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_AUTHORIZED")
	case errors.Is(err, ErrProductNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "PRODUCT_NOT_FOUND")
	case errors.Is(err, ErrProductExists):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "PRODUCT_EXISTS")
	case errors.Is(err, ErrOfferFieldsRequired):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "OFFER_FIELDS_REQUIRED")
	case errors.Is(err, ErrAdminNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ADMIN_NOT_FOUND")
	case errors.Is(err, ErrAdminExists):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "ADMIN_EXISTS")
	case errors.Is(err, ErrEmailInUse):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_IN_USE")
	case errors.Is(err, ErrCurrentPasswordIncorrect):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "CURRENT_PASSWORD_INCORRECT")
	case errors.Is(err, ErrSelfDelete):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SELF_DELETE_FORBIDDEN")
	case errors.Is(err, ErrSelfDeactivate):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SELF_DEACTIVATE_FORBIDDEN")
	case errors.Is(err, ErrLastSuperadmin):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "LAST_SUPERADMIN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
