package apify

import "net/http"

// Error is a status-bearing failure signal returned by handlers and hooks.
// It renders as a JSON body {"error": <status text>, "message": <message>}
// with the carried status code. A zero Status is treated as 500.
type Error struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e Error) Error() string {
	return e.Message
}

// WithMessage returns a copy of the error with a custom message.
func (e Error) WithMessage(message string) Error {
	e.Message = message
	return e
}

// Predefined API errors. Messages follow the catalogue the package ships
// with; use WithMessage for endpoint-specific wording.
var (
	ErrBadRequest = Error{
		Status:  http.StatusBadRequest,
		Message: http.StatusText(http.StatusBadRequest),
	}
	ErrUnauthorized = Error{
		Status: http.StatusUnauthorized,
		Message: "The server could not verify that you are authorized to " +
			"access the requested URL.",
	}
	ErrForbidden = Error{
		Status:  http.StatusForbidden,
		Message: "You don't have the permission to access the requested resource.",
	}
	ErrNotFound = Error{
		Status: http.StatusNotFound,
		Message: "The requested resource was not found on the server. If you " +
			"entered the URL manually please check your spelling and try again.",
	}
	ErrNotAcceptable = Error{
		Status: http.StatusNotAcceptable,
		Message: "The API cannot generate a response in a format accepted by " +
			"the client according to the Accept headers sent in the request.",
	}
	ErrUnprocessableEntity = Error{
		Status:  http.StatusUnprocessableEntity,
		Message: "The client missed a required field or sent invalid fields in the request.",
	}
	ErrInternalServerError = Error{
		Status:  http.StatusInternalServerError,
		Message: http.StatusText(http.StatusInternalServerError),
	}
	ErrNotImplemented = Error{
		Status: http.StatusNotImplemented,
		Message: "The API does not support the action requested by the client. " +
			"Consult the documentation for the list of supported methods.",
	}
)

// errorBody is the wire shape of a rendered Error.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
