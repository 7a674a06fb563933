package service

import "fmt"

// Error is a service-level failure carrying the HTTP status the transport
// layer should answer with. Controllers return it as-is; the central error
// handler does the mapping.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

func NewErrorf(code int, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func NewBadRequestError(message string) *Error {
	return NewError(400, message)
}

func NewNotFoundError(message string) *Error {
	return NewError(404, message)
}

func NewUnauthorizedError(message string) *Error {
	return NewError(401, message)
}

func NewConflictError(message string) *Error {
	return NewError(409, message)
}
